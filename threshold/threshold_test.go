package threshold

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/zipevo/bls-signatures/bls"
)

// groupOrder is r, the order of both BLS12-381 subgroups, big-endian.
var groupOrder, _ = hex.DecodeString("73eda753299d7d483339d80809a1d80553bda402fffe5bfeffffffff00000001")

func randomKeys(t require.TestingT, n int) []*bls.PrivateKey {
	keys := make([]*bls.PrivateKey, n)
	for i := range keys {
		s, err := g1.RandomScalar(rand.Reader)
		require.NoError(t, err)
		keys[i] = bls.PrivateKeyFromScalar(s)
	}
	return keys
}

func publicKeys(keys []*bls.PrivateKey) []*bls.PublicKey {
	out := make([]*bls.PublicKey, len(keys))
	for i, k := range keys {
		out[i] = k.PublicKey()
	}
	return out
}

func hashIDs(n int) [][]byte {
	ids := make([][]byte, n)
	for i := range ids {
		ids[i] = HashID([]byte(fmt.Sprintf("member-%d", i)))
	}
	return ids
}

func TestThresholdScheme(t *testing.T) {
	const n, m = 5, 3
	msg := []byte("threshold message")

	sks := randomKeys(t, m)
	pks := publicKeys(sks)
	ids := hashIDs(n)

	sig, err := Sign(sks[0], msg)
	require.NoError(t, err)
	require.True(t, Verify(pks[0], msg, sig))

	skShares := make([]*bls.PrivateKey, n)
	pkShares := make([]*bls.PublicKey, n)
	sigShares := make([]*bls.Signature, n)
	for i, id := range ids {
		skShares[i], err = PrivateKeyShare(sks, id)
		require.NoError(t, err)
		pkShares[i], err = PublicKeyShare(pks, id)
		require.NoError(t, err)
		require.True(t, skShares[i].PublicKey().Equal(pkShares[i]))

		sigShares[i], err = Sign(skShares[i], msg)
		require.NoError(t, err)
		require.True(t, Verify(pkShares[i], msg, sigShares[i]))
	}

	t.Run("UnderThresholdDoesNotRecover", func(t *testing.T) {
		sk, err := PrivateKeyRecover(skShares[:m-1], ids[:m-1])
		require.NoError(t, err)
		assert.False(t, sk.Equal(sks[0]))

		pk, err := PublicKeyRecover(pkShares[:m-1], ids[:m-1])
		require.NoError(t, err)
		assert.False(t, pk.Equal(pks[0]))

		s, err := SignatureRecover(sigShares[:m-1], ids[:m-1])
		require.NoError(t, err)
		assert.False(t, Verify(pks[0], msg, s))
	})

	t.Run("ThresholdRecovers", func(t *testing.T) {
		sk, err := PrivateKeyRecover(skShares[:m], ids[:m])
		require.NoError(t, err)
		assert.True(t, sk.Equal(sks[0]))

		pk, err := PublicKeyRecover(pkShares[:m], ids[:m])
		require.NoError(t, err)
		assert.True(t, pk.Equal(pks[0]))

		s, err := SignatureRecover(sigShares[:m], ids[:m])
		require.NoError(t, err)
		assert.True(t, s.Equal(sig))
		assert.True(t, Verify(pks[0], msg, s))
	})

	t.Run("AnySubsetRecovers", func(t *testing.T) {
		subset := []int{4, 1, 3}
		shares := make([]*bls.Signature, len(subset))
		subIDs := make([][]byte, len(subset))
		for i, j := range subset {
			shares[i] = sigShares[j]
			subIDs[i] = ids[j]
		}
		s, err := SignatureRecover(shares, subIDs)
		require.NoError(t, err)
		assert.True(t, s.Equal(sig))
	})

	t.Run("AllSharesRecover", func(t *testing.T) {
		sk, err := PrivateKeyRecover(skShares, ids)
		require.NoError(t, err)
		assert.True(t, sk.Equal(sks[0]))
	})

	t.Run("SignatureShareMatchesCoefficientSignatures", func(t *testing.T) {
		coeffSigs := make([]*bls.Signature, m)
		for i, sk := range sks {
			coeffSigs[i], err = Sign(sk, msg)
			require.NoError(t, err)
		}
		s, err := SignatureShare(coeffSigs, ids[2])
		require.NoError(t, err)
		assert.True(t, s.Equal(sigShares[2]))
	})
}

func TestShareDeterminism(t *testing.T) {
	keys := randomKeys(t, 3)
	a1, err := PrivateKeyShare(keys, IDFromUint64(1))
	require.NoError(t, err)
	a2, err := PrivateKeyShare(keys, IDFromUint64(1))
	require.NoError(t, err)
	b, err := PrivateKeyShare(keys, IDFromUint64(2))
	require.NoError(t, err)

	assert.True(t, a1.Equal(a2))
	assert.False(t, a1.Equal(b))
}

func TestHornerAgainstPowers(t *testing.T) {
	keys := randomKeys(t, 4)
	id := IDFromUint64(7)
	x, err := idPoint(id)
	require.NoError(t, err)

	want := g1.NewScalar()
	power := g1.NewScalar().SetBytes([]byte{1})
	for _, k := range keys {
		want = g1.NewScalar().Add(want, g1.NewScalar().Mul(power, k.Scalar()))
		power = g1.NewScalar().Mul(power, x)
	}

	got, err := PrivateKeyShare(keys, id)
	require.NoError(t, err)
	assert.True(t, got.Scalar().Equal(want))
}

func TestSingleCoefficient(t *testing.T) {
	keys := randomKeys(t, 1)
	share, err := PrivateKeyShare(keys, IDFromUint64(9))
	require.NoError(t, err)
	assert.True(t, share.Equal(keys[0]))

	sk, err := PrivateKeyRecover([]*bls.PrivateKey{share}, [][]byte{IDFromUint64(9)})
	require.NoError(t, err)
	assert.True(t, sk.Equal(keys[0]))
}

func TestErrors(t *testing.T) {
	keys := randomKeys(t, 2)
	id := IDFromUint64(1)

	t.Run("EmptyKeys", func(t *testing.T) {
		_, err := PrivateKeyShare(nil, id)
		assert.ErrorIs(t, err, bls.ErrInputShape)
		_, err = PublicKeyShare(nil, id)
		assert.ErrorIs(t, err, bls.ErrInputShape)
		_, err = SignatureShare(nil, id)
		assert.ErrorIs(t, err, bls.ErrInputShape)
	})

	t.Run("EmptyRecover", func(t *testing.T) {
		_, err := PrivateKeyRecover(nil, nil)
		assert.ErrorIs(t, err, bls.ErrInputShape)
		_, err = PublicKeyRecover(nil, nil)
		assert.ErrorIs(t, err, bls.ErrInputShape)
		_, err = SignatureRecover(nil, nil)
		assert.ErrorIs(t, err, bls.ErrInputShape)
	})

	t.Run("LengthMismatch", func(t *testing.T) {
		ids := [][]byte{IDFromUint64(1)}
		_, err := PrivateKeyRecover(keys, ids)
		assert.ErrorIs(t, err, bls.ErrInputShape)
		_, err = PublicKeyRecover(publicKeys(keys), ids)
		assert.ErrorIs(t, err, bls.ErrInputShape)

		sigs := make([]*bls.Signature, len(keys))
		for i, k := range keys {
			sigs[i], err = Sign(k, []byte("m"))
			require.NoError(t, err)
		}
		_, err = SignatureRecover(sigs, ids)
		assert.ErrorIs(t, err, bls.ErrInputShape)
		_, err = SignatureRecover(sigs[:1], [][]byte{IDFromUint64(1), IDFromUint64(2)})
		assert.ErrorIs(t, err, bls.ErrInputShape)
	})

	t.Run("NilElements", func(t *testing.T) {
		_, err := PrivateKeyShare([]*bls.PrivateKey{keys[0], nil}, id)
		assert.ErrorIs(t, err, bls.ErrInputShape)
		_, err = PublicKeyShare([]*bls.PublicKey{nil}, id)
		assert.ErrorIs(t, err, bls.ErrInputShape)
		_, err = SignatureShare([]*bls.Signature{nil}, id)
		assert.ErrorIs(t, err, bls.ErrInputShape)

		ids := [][]byte{IDFromUint64(1), IDFromUint64(2)}
		_, err = PrivateKeyRecover([]*bls.PrivateKey{keys[0], nil}, ids)
		assert.ErrorIs(t, err, bls.ErrInputShape)
		_, err = PublicKeyRecover([]*bls.PublicKey{nil, keys[1].PublicKey()}, ids)
		assert.ErrorIs(t, err, bls.ErrInputShape)
		_, err = SignatureRecover([]*bls.Signature{nil, nil}, ids)
		assert.ErrorIs(t, err, bls.ErrInputShape)

		_, err = PrivateKeyShares([]*bls.PrivateKey{nil}, ids)
		assert.ErrorIs(t, err, bls.ErrInputShape)
		_, err = Split(nil, 1, ids, rand.Reader)
		assert.ErrorIs(t, err, bls.ErrInputShape)
		err = VerifyPrivateKeyShare(publicKeys(keys), id, nil)
		assert.ErrorIs(t, err, bls.ErrInputShape)
	})

	t.Run("ZeroID", func(t *testing.T) {
		_, err := PrivateKeyShare(keys, IDFromUint64(0))
		assert.ErrorIs(t, err, bls.ErrDomain)
		_, err = PrivateKeyShare(keys, nil)
		assert.ErrorIs(t, err, bls.ErrDomain)
		_, err = PrivateKeyShare(keys, groupOrder)
		assert.ErrorIs(t, err, bls.ErrDomain)
	})

	t.Run("DuplicateID", func(t *testing.T) {
		ids := [][]byte{IDFromUint64(3), IDFromUint64(3)}
		_, err := PrivateKeyRecover(keys, ids)
		assert.ErrorIs(t, err, bls.ErrDomain)
	})

	t.Run("EquivalentIDs", func(t *testing.T) {
		// 3 and 0x0003 name the same interpolation point.
		ids := [][]byte{{3}, IDFromUint64(3)}
		_, err := PublicKeyRecover(publicKeys(keys), ids)
		assert.ErrorIs(t, err, bls.ErrDomain)
	})
}

func TestSplit(t *testing.T) {
	secret := randomKeys(t, 1)[0]
	ids := hashIDs(6)

	d, err := Split(secret, 4, ids, rand.Reader)
	require.NoError(t, err)
	require.Len(t, d.Shares, 6)
	require.Len(t, d.VerificationVector, 4)
	assert.True(t, d.VerificationVector[0].Equal(secret.PublicKey()))

	for i, share := range d.Shares {
		assert.NoError(t, VerifyPrivateKeyShare(d.VerificationVector, ids[i], share))
	}
	assert.ErrorIs(t, VerifyPrivateKeyShare(d.VerificationVector, ids[0], d.Shares[1]), ErrInvalidShare)

	recovered, err := PrivateKeyRecover(d.Shares[2:], ids[2:])
	require.NoError(t, err)
	assert.True(t, recovered.Equal(secret))

	t.Run("BadThreshold", func(t *testing.T) {
		_, err := Split(secret, 0, ids, rand.Reader)
		assert.ErrorIs(t, err, bls.ErrInputShape)
		_, err = Split(secret, 7, ids, rand.Reader)
		assert.ErrorIs(t, err, bls.ErrInputShape)
	})

	t.Run("DuplicateIDs", func(t *testing.T) {
		_, err := Split(secret, 2, [][]byte{ids[0], ids[0]}, rand.Reader)
		assert.ErrorIs(t, err, bls.ErrDomain)
	})

	t.Run("ShortRandomness", func(t *testing.T) {
		_, err := Split(secret, 3, ids, bytes.NewReader(make([]byte, 50)))
		assert.Error(t, err)
	})
}

func TestSplitDeterministic(t *testing.T) {
	secret := randomKeys(t, 1)[0]
	ids := hashIDs(4)
	seed := []byte("dealer seed")

	a, err := SplitDeterministic(secret, 3, ids, seed)
	require.NoError(t, err)
	b, err := SplitDeterministic(secret, 3, ids, seed)
	require.NoError(t, err)
	c, err := SplitDeterministic(secret, 3, ids, []byte("other seed"))
	require.NoError(t, err)

	for i := range ids {
		assert.True(t, a.Shares[i].Equal(b.Shares[i]))
		assert.False(t, a.Shares[i].Equal(c.Shares[i]))
	}

	_, err = SplitDeterministic(secret, 172, hashIDs(172), seed)
	assert.ErrorIs(t, err, bls.ErrInputShape)
}

func TestBatchShares(t *testing.T) {
	keys := randomKeys(t, 3)
	ids := hashIDs(16)

	sks, err := PrivateKeyShares(keys, ids)
	require.NoError(t, err)
	pks, err := PublicKeyShares(publicKeys(keys), ids)
	require.NoError(t, err)

	for i, id := range ids {
		want, err := PrivateKeyShare(keys, id)
		require.NoError(t, err)
		assert.True(t, sks[i].Equal(want))
		assert.True(t, pks[i].Equal(want.PublicKey()))
	}

	_, err = PrivateKeyShares(keys, append(ids, IDFromUint64(0)))
	assert.ErrorIs(t, err, bls.ErrDomain)
	_, err = PublicKeyShares(publicKeys(keys), nil)
	assert.ErrorIs(t, err, bls.ErrInputShape)
}

func TestRecoverProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		threshold := rapid.IntRange(1, 5).Draw(rt, "threshold")
		extra := rapid.IntRange(0, 3).Draw(rt, "extra")
		raw := rapid.SliceOfNDistinct(rapid.Uint64Min(1), threshold+extra, threshold+extra, rapid.ID[uint64]).Draw(rt, "ids")

		ids := make([][]byte, len(raw))
		for i, n := range raw {
			ids[i] = IDFromUint64(n)
		}
		coeffs := randomKeys(rt, threshold)

		shares, err := PrivateKeyShares(coeffs, ids)
		require.NoError(rt, err)

		start := rapid.IntRange(0, extra).Draw(rt, "start")
		sk, err := PrivateKeyRecover(shares[start:start+threshold], ids[start:start+threshold])
		require.NoError(rt, err)
		require.True(rt, sk.Equal(coeffs[0]))

		pkShares := make([]*bls.PublicKey, threshold)
		for i := range pkShares {
			pkShares[i] = shares[start+i].PublicKey()
		}
		pk, err := PublicKeyRecover(pkShares, ids[start:start+threshold])
		require.NoError(rt, err)
		require.True(rt, pk.Equal(sk.PublicKey()))
	})
}
