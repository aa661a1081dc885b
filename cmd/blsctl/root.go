package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zipevo/bls-signatures/hd"
)

const envPrefix = "BLSCTL"

// app carries the configuration and logger shared by all subcommands.
type app struct {
	v   *viper.Viper
	log zerolog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New(), log: zerolog.Nop()}

	rootCmd := &cobra.Command{
		Use:           "blsctl",
		Short:         "Threshold BLS and HD key tool",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (yaml, json or toml)")
	pf.String("log-level", "info", "log level (trace, debug, info, warn, error)")
	pf.Bool("log-json", false, "log as JSON instead of console output")
	pf.Bool("legacy", false, "use the legacy encoding for HD derivation, public keys and signatures")

	rootCmd.AddCommand(
		a.keygenCmd(),
		a.splitCmd(),
		a.shareCmd(),
		a.recoverCmd(),
		a.signCmd(),
		a.verifyCmd(),
		a.deriveCmd(),
	)
	return rootCmd
}

func (a *app) init(cmd *cobra.Command) error {
	a.v.SetEnvPrefix(envPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()
	if err := a.v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	if cfg := a.v.GetString("config"); cfg != "" {
		a.v.SetConfigFile(cfg)
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config %s: %w", cfg, err)
		}
	}

	level, err := zerolog.ParseLevel(a.v.GetString("log-level"))
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	if a.v.GetBool("log-json") {
		a.log = zerolog.New(os.Stderr)
	} else {
		a.log = zerolog.New(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
			w.Out = os.Stderr
		}))
	}
	a.log = a.log.Level(level).With().Timestamp().Str("cmd", cmd.Name()).Logger()
	return nil
}

func (a *app) mode() hd.Mode {
	if a.v.GetBool("legacy") {
		return hd.ModeLegacy
	}
	return hd.ModeStandard
}

// decodeHexList decodes every entry, reporting all malformed entries at once.
func decodeHexList(what string, values []string) ([][]byte, error) {
	var result *multierror.Error
	out := make([][]byte, len(values))
	for i, s := range values {
		b, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("%s %d: %w", what, i, err))
			continue
		}
		out[i] = b
	}
	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}
	return out, nil
}

func decodeHex(what, s string) ([]byte, error) {
	b, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", what, err)
	}
	return b, nil
}
