package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zipevo/bls-signatures/hd"
)

func (a *app) deriveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "derive",
		Short: "Derive an HD key from a seed or extended key",
		Long: "Derive the key at --path from the root of --seed, from an extended\n" +
			"private key (--xprv) or from an extended public key (--xpub).\n" +
			"Extended public keys only derive normal children.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := hd.ParsePath(a.v.GetString("path"))
			if err != nil {
				return err
			}
			mode := a.mode()
			out := cmd.OutOrStdout()

			if xpubHex := a.v.GetString("xpub"); xpubHex != "" {
				b, err := decodeHex("xpub", xpubHex)
				if err != nil {
					return err
				}
				xpub, err := hd.ExtendedPublicKeyFromBytes(b, mode)
				if err != nil {
					return err
				}
				child, err := xpub.DerivePath(path)
				if err != nil {
					return err
				}
				a.log.Debug().Str("path", path.String()).Str("mode", mode.String()).Msg("derived public key")
				printPublic(cmd, child)
				return nil
			}

			var root *hd.ExtendedPrivateKey
			switch {
			case a.v.GetString("xprv") != "":
				b, err := decodeHex("xprv", a.v.GetString("xprv"))
				if err != nil {
					return err
				}
				root, err = hd.ExtendedPrivateKeyFromBytes(b, mode)
				if err != nil {
					return err
				}
			case a.v.GetString("seed") != "":
				seed, err := decodeHex("seed", a.v.GetString("seed"))
				if err != nil {
					return err
				}
				root, err = hd.NewExtendedPrivateKeyFromSeed(seed, mode)
				if err != nil {
					return err
				}
			default:
				return fmt.Errorf("one of --seed, --xprv or --xpub is required")
			}
			defer root.Zeroize()

			child, err := root.DerivePath(path)
			if err != nil {
				return err
			}
			defer child.Zeroize()
			a.log.Debug().Str("path", path.String()).Str("mode", mode.String()).Msg("derived private key")

			if a.v.GetBool("public") {
				printPublic(cmd, child.ExtendedPublicKey())
				return nil
			}
			fmt.Fprintf(out, "path: %s\n", path)
			fmt.Fprintf(out, "xprv: %x\n", child.Bytes())
			fmt.Fprintf(out, "private: %x\n", child.PrivateKey().Bytes())
			printPublic(cmd, child.ExtendedPublicKey())
			return nil
		},
	}
	cmd.Flags().String("seed", "", "hex seed")
	cmd.Flags().String("xprv", "", "hex extended private key")
	cmd.Flags().String("xpub", "", "hex extended public key")
	cmd.Flags().String("path", "m", "derivation path, e.g. m/44'/5'/0'/0/0")
	cmd.Flags().Bool("public", false, "print only the extended public key")
	return cmd
}

func printPublic(cmd *cobra.Command, k *hd.ExtendedPublicKey) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "xpub: %x\n", k.Bytes())
	fmt.Fprintf(out, "public: %x\n", k.PublicKey().Serialize(k.Mode().Format()))
	fmt.Fprintf(out, "fingerprint: %08x\n", k.Fingerprint())
}
