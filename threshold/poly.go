package threshold

import (
	"encoding/binary"
	"fmt"

	"github.com/zipevo/bls-signatures/bls"
	"github.com/zipevo/bls-signatures/bls12381"
	"github.com/zipevo/bls-signatures/group"
)

// IDSize is the width of the IDs produced by [IDFromUint64] and [HashID].
const IDSize = 32

var (
	g1 = bls12381.NewG1()
	g2 = bls12381.NewG2()
)

// IDFromUint64 returns the 32-byte big-endian encoding of n, whose
// interpolation point is n itself.
func IDFromUint64(n uint64) []byte {
	id := make([]byte, IDSize)
	binary.BigEndian.PutUint64(id[IDSize-8:], n)
	return id
}

// idPoint maps an ID to its interpolation point: the big-endian value
// of the bytes reduced modulo the group order. Zero is rejected since
// the polynomial value at zero is the secret itself.
func idPoint(id []byte) (group.Scalar, error) {
	x := g1.NewScalar().SetBytes(id)
	if x.IsZero() {
		return nil, fmt.Errorf("%w: ID %x maps to the zero point", bls.ErrDomain, id)
	}
	return x, nil
}

func idPoints(ids [][]byte) ([]group.Scalar, error) {
	xs := make([]group.Scalar, len(ids))
	for i, id := range ids {
		x, err := idPoint(id)
		if err != nil {
			return nil, err
		}
		xs[i] = x
	}
	return xs, nil
}

func evalScalars(coeffs []group.Scalar, x group.Scalar) group.Scalar {
	result := g1.NewScalar().Set(coeffs[len(coeffs)-1])
	for i := len(coeffs) - 2; i >= 0; i-- {
		result = g1.NewScalar().Mul(result, x)
		result = g1.NewScalar().Add(result, coeffs[i])
	}
	return result
}

func evalPoints(g group.Group, coeffs []group.Point, x group.Scalar) group.Point {
	result := g.NewPoint().Set(coeffs[len(coeffs)-1])
	for i := len(coeffs) - 2; i >= 0; i-- {
		result = g.NewPoint().ScalarMult(x, result)
		result = g.NewPoint().Add(result, coeffs[i])
	}
	return result
}

// lagrangeAtZero returns the coefficients lambda_i = prod_{j!=i} x_j / (x_j - x_i)
// that interpolate a polynomial through the points xs at zero.
func lagrangeAtZero(xs []group.Scalar) ([]group.Scalar, error) {
	lambdas := make([]group.Scalar, len(xs))
	for i, xi := range xs {
		num := g1.NewScalar().SetBytes([]byte{1})
		den := g1.NewScalar().SetBytes([]byte{1})
		for j, xj := range xs {
			if i == j {
				continue
			}
			num = g1.NewScalar().Mul(num, xj)
			diff := g1.NewScalar().Sub(xj, xi)
			den = g1.NewScalar().Mul(den, diff)
		}
		denInv, err := g1.NewScalar().Invert(den)
		if err != nil {
			return nil, fmt.Errorf("%w: duplicate interpolation point at index %d", bls.ErrDomain, i)
		}
		lambdas[i] = g1.NewScalar().Mul(num, denInv)
	}
	return lambdas, nil
}

func checkNonNil[T any](what string, values []*T) error {
	for i, v := range values {
		if v == nil {
			return fmt.Errorf("%w: %s %d is nil", bls.ErrInputShape, what, i)
		}
	}
	return nil
}

func checkRecoverShape(what string, values, ids int) error {
	if values == 0 {
		return fmt.Errorf("%w: no %s provided", bls.ErrInputShape, what)
	}
	if values != ids {
		return fmt.Errorf("%w: %d %s but %d IDs", bls.ErrInputShape, values, what, ids)
	}
	return nil
}

func interpolateScalars(ys []group.Scalar, ids [][]byte) (group.Scalar, error) {
	xs, err := idPoints(ids)
	if err != nil {
		return nil, err
	}
	lambdas, err := lagrangeAtZero(xs)
	if err != nil {
		return nil, err
	}
	result := g1.NewScalar()
	for i, y := range ys {
		term := g1.NewScalar().Mul(lambdas[i], y)
		result = g1.NewScalar().Add(result, term)
	}
	return result, nil
}

func interpolatePoints(g group.Group, ys []group.Point, ids [][]byte) (group.Point, error) {
	xs, err := idPoints(ids)
	if err != nil {
		return nil, err
	}
	lambdas, err := lagrangeAtZero(xs)
	if err != nil {
		return nil, err
	}
	result, err := g.MultiScalarMult(lambdas, ys)
	if err != nil {
		return nil, fmt.Errorf("%w: multi-scalar multiplication: %w", bls.ErrPrimitive, err)
	}
	return result, nil
}
