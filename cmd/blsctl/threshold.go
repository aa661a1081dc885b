package main

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/zipevo/bls-signatures/bls"
	"github.com/zipevo/bls-signatures/threshold"
)

func addIDFlags(cmd *cobra.Command) {
	cmd.Flags().StringSlice("ids", nil, "comma separated hex share holder IDs")
	cmd.Flags().Int("members", 0, "use IDs 1..n instead of --ids")
}

// ids returns the share holder IDs named by --ids or --members.
func (a *app) ids() ([][]byte, error) {
	if raw := splitList(a.v.GetStringSlice("ids")); len(raw) > 0 {
		return decodeHexList("id", raw)
	}
	n := a.v.GetInt("members")
	if n <= 0 {
		return nil, errors.New("one of --ids or --members is required")
	}
	ids := make([][]byte, n)
	for i := range ids {
		ids[i] = threshold.IDFromUint64(uint64(i + 1))
	}
	return ids, nil
}

// splitList splits every entry on commas. Values read from BLSCTL_IDS or
// a config file arrive unsplit or split on whitespace only.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func (a *app) splitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "split",
		Short: "Split a private key into threshold shares",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := decodeHex("secret", a.v.GetString("secret"))
			if err != nil {
				return err
			}
			secret, err := bls.PrivateKeyFromBytes(b)
			if err != nil {
				return err
			}
			defer secret.Zeroize()

			ids, err := a.ids()
			if err != nil {
				return err
			}
			t := a.v.GetInt("threshold")

			var d *threshold.Dealing
			if seedHex := a.v.GetString("seed"); seedHex != "" {
				seed, err := decodeHex("seed", seedHex)
				if err != nil {
					return err
				}
				d, err = threshold.SplitDeterministic(secret, t, ids, seed)
				if err != nil {
					return err
				}
			} else {
				d, err = threshold.Split(secret, t, ids, rand.Reader)
				if err != nil {
					return err
				}
			}
			a.log.Info().Int("threshold", t).Int("shares", len(ids)).Msg("split secret")

			out := cmd.OutOrStdout()
			for i, pk := range d.VerificationVector {
				fmt.Fprintf(out, "vvec %d %x\n", i, pk.Serialize(a.mode().Format()))
			}
			for i, share := range d.Shares {
				fmt.Fprintf(out, "share %x %x\n", ids[i], share.Bytes())
				share.Zeroize()
			}
			return nil
		},
	}
	cmd.Flags().String("secret", "", "hex private key to split")
	cmd.Flags().Int("threshold", 2, "shares needed to recover")
	cmd.Flags().String("seed", "", "hex seed for a reproducible dealing")
	addIDFlags(cmd)
	return cmd
}

func (a *app) shareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "share COEFFICIENT...",
		Short: "Evaluate coefficient keys or signatures at an ID",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := decodeHexList("coefficient", args)
			if err != nil {
				return err
			}
			id, err := decodeHex("id", a.v.GetString("id"))
			if err != nil {
				return err
			}

			var result []byte
			switch kind := a.v.GetString("kind"); kind {
			case "private":
				keys, err := decodeAll(raw, bls.PrivateKeyFromBytes)
				if err != nil {
					return err
				}
				share, err := threshold.PrivateKeyShare(keys, id)
				if err != nil {
					return err
				}
				result = share.Bytes()
			case "public":
				keys, err := decodeAll(raw, a.publicKeyFromBytes)
				if err != nil {
					return err
				}
				share, err := threshold.PublicKeyShare(keys, id)
				if err != nil {
					return err
				}
				result = share.Serialize(a.mode().Format())
			case "signature":
				sigs, err := decodeAll(raw, a.signatureFromBytes)
				if err != nil {
					return err
				}
				share, err := threshold.SignatureShare(sigs, id)
				if err != nil {
					return err
				}
				result = share.Serialize(a.mode().Format())
			default:
				return fmt.Errorf("unknown kind %q", kind)
			}
			fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(result))
			return nil
		},
	}
	cmd.Flags().String("kind", "private", "value kind: private, public or signature")
	cmd.Flags().String("id", "", "hex share holder ID")
	return cmd
}

func (a *app) recoverCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recover SHARE...",
		Short: "Recover a key or signature from shares",
		Long: "Recover a private key, public key or signature by Lagrange interpolation.\n" +
			"Shares are given in the same order as --ids.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := decodeHexList("share", args)
			if err != nil {
				return err
			}
			ids, err := a.ids()
			if err != nil {
				return err
			}
			if t := a.v.GetInt("threshold"); t > 0 && len(raw) < t {
				return fmt.Errorf("have %d shares, need %d", len(raw), t)
			}

			var result []byte
			switch kind := a.v.GetString("kind"); kind {
			case "private":
				shares, err := decodeAll(raw, bls.PrivateKeyFromBytes)
				if err != nil {
					return err
				}
				sk, err := threshold.PrivateKeyRecover(shares, ids)
				if err != nil {
					return err
				}
				result = sk.Bytes()
			case "public":
				shares, err := decodeAll(raw, a.publicKeyFromBytes)
				if err != nil {
					return err
				}
				pk, err := threshold.PublicKeyRecover(shares, ids)
				if err != nil {
					return err
				}
				result = pk.Serialize(a.mode().Format())
			case "signature":
				shares, err := decodeAll(raw, a.signatureFromBytes)
				if err != nil {
					return err
				}
				sig, err := threshold.SignatureRecover(shares, ids)
				if err != nil {
					return err
				}
				result = sig.Serialize(a.mode().Format())
			default:
				return fmt.Errorf("unknown kind %q", kind)
			}
			a.log.Info().Int("shares", len(raw)).Str("kind", a.v.GetString("kind")).Msg("recovered")
			fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(result))
			return nil
		},
	}
	cmd.Flags().String("kind", "private", "share kind: private, public or signature")
	cmd.Flags().Int("threshold", 0, "refuse to recover from fewer shares")
	addIDFlags(cmd)
	return cmd
}

func (a *app) publicKeyFromBytes(b []byte) (*bls.PublicKey, error) {
	return bls.PublicKeyFromBytesFormat(b, a.mode().Format())
}

func (a *app) signatureFromBytes(b []byte) (*bls.Signature, error) {
	return bls.SignatureFromBytesFormat(b, a.mode().Format())
}

// decodeAll decodes every buffer, reporting all failures at once.
func decodeAll[T any](raw [][]byte, decode func([]byte) (T, error)) ([]T, error) {
	var result *multierror.Error
	out := make([]T, len(raw))
	for i, b := range raw {
		v, err := decode(b)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("value %d: %w", i, err))
			continue
		}
		out[i] = v
	}
	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}
	return out, nil
}
