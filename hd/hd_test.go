package hd

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/zipevo/bls-signatures/bls"
)

var vectorSeed = []byte{1, 50, 6, 244, 24, 199, 1, 25}

func TestSeedVector(t *testing.T) {
	esk, err := NewExtendedPrivateKeyFromSeed(vectorSeed, ModeLegacy)
	require.NoError(t, err)

	assert.Equal(t, "d8b12555b4cc5578951e4a7c80031e22019cc0dce168b3ed88115311b8feb1e3", hex.EncodeToString(esk.ChainCode().Bytes()))
	assert.Equal(t, "3e9f7b3846c1803703f94c764b51f5ace513b2f02c4d6b2c452d8ce66e5975bd", hex.EncodeToString(esk.PrivateKey().Bytes()))
	assert.Equal(t,
		"8aa55db214bc456de83f84caf117d25fb76eafbcf21159571cdbc76627f629b6dc937128c259cae6ebaa180e45de957f",
		hex.EncodeToString(esk.PublicKey().Bytes()))
	assert.Equal(t, uint32(0xa4700b27), esk.PublicKey().Fingerprint(bls.FormatLegacy))
	assert.Equal(t, uint32(0x54c88e23), esk.PublicKey().Fingerprint(bls.FormatStandard))

	t.Run("HardenedChild", func(t *testing.T) {
		child, err := esk.PrivateChild(77 + HardenedOffset)
		require.NoError(t, err)
		assert.Equal(t, uint32(0xa8063dcf), child.PublicKey().Fingerprint(bls.FormatLegacy))
		assert.Equal(t, uint32(0xa4700b27), child.ParentFingerprint())
		assert.Equal(t, uint8(1), child.Depth())
		assert.Equal(t, 77+HardenedOffset, child.ChildNumber())
	})

	t.Run("LegacyNormalChildren", func(t *testing.T) {
		priv, err := esk.PrivateChild(3)
		require.NoError(t, err)
		priv, err = priv.PrivateChild(17)
		require.NoError(t, err)
		assert.Equal(t, uint32(0xff26a31f), priv.PublicKey().Fingerprint(bls.FormatLegacy))

		pub, err := esk.ExtendedPublicKey().PublicChild(3)
		require.NoError(t, err)
		pub, err = pub.PublicChild(17)
		require.NoError(t, err)
		assert.Equal(t, uint32(0xff26a31f), pub.Fingerprint())
		assert.True(t, pub.Equal(priv.ExtendedPublicKey()))
	})

	t.Run("StandardNormalChildren", func(t *testing.T) {
		std := esk.WithMode(ModeStandard)
		priv, err := std.DerivePath(Path{3, 17})
		require.NoError(t, err)
		assert.Equal(t, uint32(0xfde2735e), priv.PublicKey().Fingerprint(bls.FormatStandard))

		pub, err := std.ExtendedPublicKey().DerivePath(Path{3, 17})
		require.NoError(t, err)
		assert.True(t, pub.Equal(priv.ExtendedPublicKey()))
	})
}

func TestEmptySeed(t *testing.T) {
	for _, seed := range [][]byte{nil, {}} {
		esk, err := NewExtendedPrivateKeyFromSeed(seed, ModeStandard)
		require.NoError(t, err)
		assert.Equal(t, "735bc4405499089da4ffd88505dc5296a3368c50415bcc6d64e40766f752e95c", hex.EncodeToString(esk.PrivateKey().Bytes()))
		cc := esk.ChainCode()
		assert.Equal(t, "8095cb35f7485340764619f6adb6d823b53067eca4881cd9b03741df40940ea2", hex.EncodeToString(cc.Bytes()))
	}
}

func TestPublicPrivateAgreement(t *testing.T) {
	seed := []byte("seedweedseedweedseedweedseedweed")

	for _, mode := range []Mode{ModeStandard, ModeLegacy} {
		t.Run(mode.String(), func(t *testing.T) {
			esk, err := NewExtendedPrivateKeyFromSeed(seed, mode)
			require.NoError(t, err)
			epk := esk.ExtendedPublicKey()

			sk, err := esk.PrivateChild(1337)
			require.NoError(t, err)
			sk, err = sk.PrivateChild(420)
			require.NoError(t, err)

			pk, err := epk.PublicChild(1337)
			require.NoError(t, err)
			pk, err = pk.PublicChild(420)
			require.NoError(t, err)

			assert.True(t, pk.Equal(sk.ExtendedPublicKey()))
			assert.Equal(t, sk.ExtendedPublicKey().Bytes(), pk.Bytes())
			assert.True(t, sk.PublicKey().Equal(pk.PublicKey()))
			assert.Equal(t, mode, pk.Mode())

			viaPrivate, err := esk.PublicChild(1337)
			require.NoError(t, err)
			direct, err := epk.PublicChild(1337)
			require.NoError(t, err)
			assert.True(t, viaPrivate.Equal(direct))
		})
	}

	t.Run("ModesDiverge", func(t *testing.T) {
		a, err := NewExtendedPrivateKeyFromSeed(seed, ModeStandard)
		require.NoError(t, err)
		b, err := NewExtendedPrivateKeyFromSeed(seed, ModeLegacy)
		require.NoError(t, err)
		require.True(t, a.Equal(b))

		ca, err := a.PrivateChild(5)
		require.NoError(t, err)
		cb, err := b.PrivateChild(5)
		require.NoError(t, err)
		assert.False(t, ca.Equal(cb))

		ha, err := a.PrivateChild(HardenedIndex(5))
		require.NoError(t, err)
		hb, err := b.PrivateChild(HardenedIndex(5))
		require.NoError(t, err)
		assert.True(t, ha.Equal(hb))
	})
}

func TestHardenedExclusivity(t *testing.T) {
	esk, err := NewExtendedPrivateKeyFromSeed([]byte("hardened"), ModeStandard)
	require.NoError(t, err)
	epk := esk.ExtendedPublicKey()

	for _, index := range []uint32{HardenedOffset, HardenedOffset + 1, HardenedIndex(44), ^uint32(0)} {
		_, err := epk.PublicChild(index)
		assert.ErrorIs(t, err, bls.ErrDomain)

		_, err = esk.PrivateChild(index)
		assert.NoError(t, err)
		_, err = esk.PublicChild(index)
		assert.NoError(t, err)
	}

	_, err = epk.DerivePath(Path{0, HardenedIndex(1)})
	assert.ErrorIs(t, err, bls.ErrDomain)
}

func TestSerialization(t *testing.T) {
	for _, mode := range []Mode{ModeStandard, ModeLegacy} {
		t.Run(mode.String(), func(t *testing.T) {
			root, err := NewExtendedPrivateKeyFromSeed([]byte("serialization"), mode)
			require.NoError(t, err)
			esk, err := root.DerivePath(Path{HardenedIndex(1), 2, 3})
			require.NoError(t, err)

			b := esk.Bytes()
			require.Len(t, b, ExtendedPrivateKeySize)
			restored, err := ExtendedPrivateKeyFromBytes(b, mode)
			require.NoError(t, err)
			assert.True(t, restored.Equal(esk))
			assert.Equal(t, b, restored.Bytes())
			assert.Equal(t, uint8(3), restored.Depth())
			assert.Equal(t, uint32(3), restored.ChildNumber())
			assert.Equal(t, esk.ParentFingerprint(), restored.ParentFingerprint())
			assert.Equal(t, Version, restored.Version())

			epk := esk.ExtendedPublicKey()
			pb := epk.Bytes()
			require.Len(t, pb, ExtendedPublicKeySize)
			restoredPub, err := ExtendedPublicKeyFromBytes(pb, mode)
			require.NoError(t, err)
			assert.True(t, restoredPub.Equal(epk))
			assert.Equal(t, pb, restoredPub.Bytes())

			cc, err := ChainCodeFromBytes(esk.ChainCode().Bytes())
			require.NoError(t, err)
			assert.True(t, cc.Equal(esk.ChainCode()))
			assert.Len(t, cc.Bytes(), ChainCodeSize)
		})
	}

	t.Run("PublicEncodingFollowsMode", func(t *testing.T) {
		esk, err := NewExtendedPrivateKeyFromSeed(vectorSeed, ModeLegacy)
		require.NoError(t, err)
		legacy := esk.ExtendedPublicKey().Bytes()
		standard := esk.WithMode(ModeStandard).ExtendedPublicKey().Bytes()
		assert.Equal(t, byte(0x0a), legacy[headerSize+ChainCodeSize])
		assert.Equal(t, byte(0x8a), standard[headerSize+ChainCodeSize])
	})

	t.Run("Errors", func(t *testing.T) {
		esk, err := NewExtendedPrivateKeyFromSeed([]byte("errors"), ModeStandard)
		require.NoError(t, err)

		_, err = ExtendedPrivateKeyFromBytes(esk.Bytes()[1:], ModeStandard)
		assert.ErrorIs(t, err, bls.ErrDecoding)
		_, err = ExtendedPublicKeyFromBytes(esk.ExtendedPublicKey().Bytes()[:92], ModeStandard)
		assert.ErrorIs(t, err, bls.ErrDecoding)
		_, err = ChainCodeFromBytes(make([]byte, 31))
		assert.ErrorIs(t, err, bls.ErrDecoding)

		bad := esk.Bytes()
		bad[3] = 2
		_, err = ExtendedPrivateKeyFromBytes(bad, ModeStandard)
		assert.ErrorIs(t, err, bls.ErrDecoding)

		badPub := esk.ExtendedPublicKey().Bytes()
		badPub[headerSize+ChainCodeSize] = 0xff
		_, err = ExtendedPublicKeyFromBytes(badPub, ModeStandard)
		assert.ErrorIs(t, err, bls.ErrDecoding)

		_, err = NewExtendedPrivateKeyFromSeed([]byte("x"), Mode(7))
		assert.ErrorIs(t, err, bls.ErrDomain)
	})
}

func TestMaxDepth(t *testing.T) {
	esk, err := NewExtendedPrivateKeyFromSeed([]byte("depth"), ModeStandard)
	require.NoError(t, err)
	b := esk.Bytes()
	b[4] = MaxDepth
	deep, err := ExtendedPrivateKeyFromBytes(b, ModeStandard)
	require.NoError(t, err)

	_, err = deep.PrivateChild(0)
	assert.ErrorIs(t, err, bls.ErrDomain)
	_, err = deep.ExtendedPublicKey().PublicChild(0)
	assert.ErrorIs(t, err, bls.ErrDomain)
}

func TestDeterminism(t *testing.T) {
	seed := []byte("determinism")
	a, err := NewExtendedPrivateKeyFromSeed(seed, ModeStandard)
	require.NoError(t, err)
	b, err := NewExtendedPrivateKeyFromSeed(seed, ModeStandard)
	require.NoError(t, err)
	assert.Equal(t, a.Bytes(), b.Bytes())

	c, err := NewExtendedPrivateKeyFromSeed([]byte("determinism!"), ModeStandard)
	require.NoError(t, err)
	assert.False(t, a.Equal(c))
}

func TestZeroize(t *testing.T) {
	esk, err := NewExtendedPrivateKeyFromSeed([]byte("zeroize"), ModeStandard)
	require.NoError(t, err)
	sk := esk.PrivateKey()

	esk.Zeroize()
	assert.Equal(t, make([]byte, 32), esk.PrivateKey().Bytes())
	assert.Equal(t, ChainCode{}, esk.ChainCode())
	assert.NotEqual(t, make([]byte, 32), sk.Bytes())
}

func TestPath(t *testing.T) {
	cases := []struct {
		in   string
		want Path
		str  string
	}{
		{"m", Path{}, "m"},
		{"", Path{}, "m"},
		{"m/0", Path{0}, "m/0"},
		{"m/44'/5'/0'/0/3", Path{HardenedIndex(44), HardenedIndex(5), HardenedIndex(0), 0, 3}, "m/44'/5'/0'/0/3"},
		{"1h/2H", Path{HardenedIndex(1), HardenedIndex(2)}, "m/1'/2'"},
		{"m/2147483647", Path{HardenedOffset - 1}, "m/2147483647"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			p, err := ParsePath(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, p)
			assert.Equal(t, tc.str, p.String())
		})
	}

	for _, bad := range []string{"m/x", "m//1", "m/2147483648'", "m/4294967296", "m/-1"} {
		_, err := ParsePath(bad)
		assert.ErrorIs(t, err, bls.ErrDecoding, bad)
	}

	t.Run("DeriveMatchesSteps", func(t *testing.T) {
		root, err := NewExtendedPrivateKeyFromSeed([]byte("path"), ModeLegacy)
		require.NoError(t, err)
		p, err := ParsePath("m/1'/2")
		require.NoError(t, err)

		viaPath, err := root.DerivePath(p)
		require.NoError(t, err)
		step, err := root.PrivateChild(HardenedIndex(1))
		require.NoError(t, err)
		step, err = step.PrivateChild(2)
		require.NoError(t, err)
		assert.True(t, viaPath.Equal(step))

		same, err := root.DerivePath(Path{})
		require.NoError(t, err)
		assert.True(t, same.Equal(root))
		assert.NotEqual(t, make([]byte, 32), root.PrivateKey().Bytes())
	})
}

func TestAgreementProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		seed := rapid.SliceOfN(rapid.Byte(), 1, 64).Draw(rt, "seed")
		mode := Mode(rapid.IntRange(0, 1).Draw(rt, "mode"))
		indices := rapid.SliceOfN(rapid.Uint32Range(0, HardenedOffset-1), 1, 3).Draw(rt, "path")

		esk, err := NewExtendedPrivateKeyFromSeed(seed, mode)
		require.NoError(rt, err)
		priv, err := esk.DerivePath(indices)
		require.NoError(rt, err)
		pub, err := esk.ExtendedPublicKey().DerivePath(indices)
		require.NoError(rt, err)

		require.True(rt, pub.Equal(priv.ExtendedPublicKey()))
		require.Equal(rt, priv.ExtendedPublicKey().Bytes(), pub.Bytes())
	})
}
