package bls12381

import (
	"errors"
	"io"

	"github.com/consensys/gnark-crypto/ecc"
	curve "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/zipevo/bls-signatures/group"
)

var (
	g1Generator curve.G1Affine
	g2Generator curve.G2Affine
)

func init() {
	_, _, g1Generator, g2Generator = curve.Generators()
}

// G1 implements [group.Group] for the BLS12-381 G1 subgroup, where
// public keys live.
//
// G1 is a zero-sized type. Create an instance with [NewG1] or &G1{}.
type G1 struct{}

// NewG1 returns the G1 group.
func NewG1() *G1 {
	return &G1{}
}

// NewScalar returns a new scalar initialized to zero.
func (g *G1) NewScalar() group.Scalar {
	return NewScalar()
}

// NewPoint returns a new point initialized to the point at infinity.
func (g *G1) NewPoint() group.Point {
	return &G1Point{}
}

// Generator returns the standard G1 base point.
func (g *G1) Generator() group.Point {
	return &G1Point{inner: g1Generator}
}

// RandomScalar generates a cryptographically random scalar.
func (g *G1) RandomScalar(r io.Reader) (group.Scalar, error) {
	return randomScalar(r)
}

// MultiScalarMult returns sum(scalars[i] * points[i]) using a
// Pippenger multi-exponentiation.
func (g *G1) MultiScalarMult(scalars []group.Scalar, points []group.Point) (group.Point, error) {
	if len(scalars) != len(points) {
		return nil, errors.New("scalars and points differ in length")
	}
	if len(points) == 0 {
		return &G1Point{}, nil
	}
	affines := make([]curve.G1Affine, len(points))
	for i, p := range points {
		affines[i] = p.(*G1Point).inner
	}
	res := &G1Point{}
	if _, err := res.inner.MultiExp(affines, frElements(scalars), ecc.MultiExpConfig{}); err != nil {
		return nil, err
	}
	return res, nil
}

// G2 implements [group.Group] for the BLS12-381 G2 subgroup, where
// signatures live.
//
// G2 is a zero-sized type. Create an instance with [NewG2] or &G2{}.
type G2 struct{}

// NewG2 returns the G2 group.
func NewG2() *G2 {
	return &G2{}
}

// NewScalar returns a new scalar initialized to zero.
func (g *G2) NewScalar() group.Scalar {
	return NewScalar()
}

// NewPoint returns a new point initialized to the point at infinity.
func (g *G2) NewPoint() group.Point {
	return &G2Point{}
}

// Generator returns the standard G2 base point.
func (g *G2) Generator() group.Point {
	return &G2Point{inner: g2Generator}
}

// RandomScalar generates a cryptographically random scalar.
func (g *G2) RandomScalar(r io.Reader) (group.Scalar, error) {
	return randomScalar(r)
}

// MultiScalarMult returns sum(scalars[i] * points[i]) using a
// Pippenger multi-exponentiation.
func (g *G2) MultiScalarMult(scalars []group.Scalar, points []group.Point) (group.Point, error) {
	if len(scalars) != len(points) {
		return nil, errors.New("scalars and points differ in length")
	}
	if len(points) == 0 {
		return &G2Point{}, nil
	}
	affines := make([]curve.G2Affine, len(points))
	for i, p := range points {
		affines[i] = p.(*G2Point).inner
	}
	res := &G2Point{}
	if _, err := res.inner.MultiExp(affines, frElements(scalars), ecc.MultiExpConfig{}); err != nil {
		return nil, err
	}
	return res, nil
}

// HashToCurve maps msg to a G2 point with the RFC 9380
// BLS12381G2_XMD:SHA-256_SSWU_RO_ suite under the given domain
// separation tag.
func (g *G2) HashToCurve(msg, dst []byte) (*G2Point, error) {
	h, err := curve.HashToG2(msg, dst)
	if err != nil {
		return nil, err
	}
	return &G2Point{inner: h}, nil
}

// PairingCheck reports whether prod e(g1s[i], g2s[i]) is the identity
// of the target group.
func PairingCheck(g1s []*G1Point, g2s []*G2Point) (bool, error) {
	if len(g1s) != len(g2s) {
		return false, errors.New("G1 and G2 inputs differ in length")
	}
	p := make([]curve.G1Affine, len(g1s))
	q := make([]curve.G2Affine, len(g2s))
	for i := range g1s {
		p[i] = g1s[i].inner
		q[i] = g2s[i].inner
	}
	return curve.PairingCheck(p, q)
}

// randomScalar reads 48 bytes so the reduction modulo r is
// statistically close to uniform.
func randomScalar(r io.Reader) (group.Scalar, error) {
	var buf [48]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return nil, err
	}
	s := NewScalar()
	s.inner.SetBytes(buf[:])
	for i := range buf {
		buf[i] = 0
	}
	return s, nil
}

func frElements(scalars []group.Scalar) []fr.Element {
	out := make([]fr.Element, len(scalars))
	for i, s := range scalars {
		out[i] = s.(*Scalar).inner
	}
	return out
}
