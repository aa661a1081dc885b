package main

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zipevo/bls-signatures/bls"
	"github.com/zipevo/bls-signatures/bls12381"
	"github.com/zipevo/bls-signatures/hd"
)

func (a *app) keygenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate a private key, randomly or from a seed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var sk *bls.PrivateKey
			if seedHex := a.v.GetString("seed"); seedHex != "" {
				seed, err := decodeHex("seed", seedHex)
				if err != nil {
					return err
				}
				root, err := hd.NewExtendedPrivateKeyFromSeed(seed, a.mode())
				if err != nil {
					return err
				}
				defer root.Zeroize()
				sk = root.PrivateKey()
				a.log.Debug().Int("seed_len", len(seed)).Msg("derived key from seed")
			} else {
				s, err := bls12381.NewG1().RandomScalar(rand.Reader)
				if err != nil {
					return err
				}
				sk = bls.PrivateKeyFromScalar(s)
				s.Zeroize()
			}
			defer sk.Zeroize()

			pk := sk.PublicKey()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "private: %x\n", sk.Bytes())
			fmt.Fprintf(out, "public: %x\n", pk.Serialize(a.mode().Format()))
			fmt.Fprintf(out, "fingerprint: %08x\n", pk.Fingerprint(a.mode().Format()))
			return nil
		},
	}
	cmd.Flags().String("seed", "", "hex seed; derives the HD root key instead of a random key")
	return cmd
}

func (a *app) signCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Sign a message with a private key or key share",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := decodeHex("key", a.v.GetString("key"))
			if err != nil {
				return err
			}
			sk, err := bls.PrivateKeyFromBytes(b)
			if err != nil {
				return err
			}
			defer sk.Zeroize()

			msg, err := a.message()
			if err != nil {
				return err
			}
			sig, err := bls.Sign(sk, msg)
			if err != nil {
				return err
			}
			a.log.Debug().Int("message_len", len(msg)).Msg("signed message")
			fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(sig.Serialize(a.mode().Format())))
			return nil
		},
	}
	cmd.Flags().String("key", "", "hex private key")
	cmd.Flags().String("message", "", "message to sign")
	cmd.Flags().String("message-hex", "", "hex message to sign")
	return cmd
}

func (a *app) verifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify a signature",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pkBytes, err := decodeHex("public key", a.v.GetString("public-key"))
			if err != nil {
				return err
			}
			pk, err := bls.PublicKeyFromBytesFormat(pkBytes, a.mode().Format())
			if err != nil {
				return err
			}
			sigBytes, err := decodeHex("signature", a.v.GetString("signature"))
			if err != nil {
				return err
			}
			sig, err := bls.SignatureFromBytesFormat(sigBytes, a.mode().Format())
			if err != nil {
				return err
			}
			msg, err := a.message()
			if err != nil {
				return err
			}
			if !bls.Verify(pk, msg, sig) {
				a.log.Warn().Str("public_key", hex.EncodeToString(pkBytes)).Msg("signature rejected")
				return errors.New("signature is invalid")
			}
			fmt.Fprintln(cmd.OutOrStdout(), "valid")
			return nil
		},
	}
	cmd.Flags().String("public-key", "", "hex public key")
	cmd.Flags().String("signature", "", "hex signature")
	cmd.Flags().String("message", "", "signed message")
	cmd.Flags().String("message-hex", "", "hex signed message")
	return cmd
}

func (a *app) message() ([]byte, error) {
	if h := a.v.GetString("message-hex"); h != "" {
		return decodeHex("message", h)
	}
	return []byte(a.v.GetString("message")), nil
}
