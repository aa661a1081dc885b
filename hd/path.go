package hd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/zipevo/bls-signatures/bls"
)

// Path is a sequence of child indices walked from a key.
type Path []uint32

// ParsePath parses paths of the form "m/44'/5'/0'/0/3". A trailing ', h
// or H marks a hardened index. The leading "m" is optional.
func ParsePath(s string) (Path, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "m" || s == "M" {
		return Path{}, nil
	}
	parts := strings.Split(s, "/")
	if parts[0] == "m" || parts[0] == "M" {
		parts = parts[1:]
	}
	path := make(Path, 0, len(parts))
	for _, part := range parts {
		hardened := false
		if n := len(part); n > 0 && (part[n-1] == '\'' || part[n-1] == 'h' || part[n-1] == 'H') {
			hardened = true
			part = part[:n-1]
		}
		v, err := strconv.ParseUint(part, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: path element %q: %w", bls.ErrDecoding, part, err)
		}
		index := uint32(v)
		if hardened {
			if IsHardened(index) {
				return nil, fmt.Errorf("%w: path element %q is out of range", bls.ErrDecoding, part)
			}
			index = HardenedIndex(index)
		}
		path = append(path, index)
	}
	return path, nil
}

// String formats p with the "m/" prefix and ' for hardened indices.
func (p Path) String() string {
	var sb strings.Builder
	sb.WriteString("m")
	for _, index := range p {
		sb.WriteByte('/')
		if IsHardened(index) {
			sb.WriteString(strconv.FormatUint(uint64(index-HardenedOffset), 10))
			sb.WriteByte('\'')
		} else {
			sb.WriteString(strconv.FormatUint(uint64(index), 10))
		}
	}
	return sb.String()
}

// DerivePath walks p from k. Intermediate keys are zeroized.
func (k *ExtendedPrivateKey) DerivePath(p Path) (*ExtendedPrivateKey, error) {
	cur := k
	for _, index := range p {
		next, err := cur.PrivateChild(index)
		if cur != k {
			cur.Zeroize()
		}
		if err != nil {
			return nil, err
		}
		cur = next
	}
	if cur == k {
		return k.WithMode(k.mode), nil
	}
	return cur, nil
}

// DerivePath walks p from k. Any hardened index fails with bls.ErrDomain.
func (k *ExtendedPublicKey) DerivePath(p Path) (*ExtendedPublicKey, error) {
	cur := k
	for _, index := range p {
		next, err := cur.PublicChild(index)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}
