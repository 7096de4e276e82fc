package main

import (
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/go-i2p/cryptokit"
	"github.com/go-i2p/cryptokit/buffer"
	"github.com/go-i2p/cryptokit/logging"
	"github.com/go-i2p/cryptokit/selftest"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the library version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), cryptokit.VersionString())
		},
	}
}

func newAlgorithmsCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "algorithms",
		Short: "List registered algorithms",
		Long: `List every (interface, algorithm) pair registered by the configured
algorithm groups, in key order.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := g.open(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer s.Close()

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "INTERFACE\tALGORITHM\tNAME")
			for _, e := range s.reg.Entries() {
				fmt.Fprintf(w, "%s\t%s\t%s\n", e.Interface, e.Algorithm, e.Name)
			}
			return w.Flush()
		},
	}
}

func newSuiteCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "suite",
		Short: "Describe the configured suite",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := g.open(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer s.Close()

			su := s.suite
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "Suite:\t%s (%s)\n", su.Name, su.ID)
			fmt.Fprintf(w, "Hash:\t%s\tdigest %d\n", su.Hash.Name, su.Hash.HashSize)
			fmt.Fprintf(w, "MAC:\t%s\tkey %d, tag %d\n", su.MAC.Name, su.MAC.KeySize, su.MAC.MACSize)
			fmt.Fprintf(w, "Short MAC:\t%s\tkey %d, tag %d\n", su.MACShort.Name, su.MACShort.KeySize, su.MACShort.MACSize)
			fmt.Fprintf(w, "Block:\t%s\tkey %d, block %d\n", su.Block.Name, su.Block.KeySize, su.Block.BlockSize)
			fmt.Fprintf(w, "Stream:\t%s\tkey %d, iv %d\n", su.Stream.Name, su.Stream.KeySize, su.Stream.IVSize)
			for _, ka := range []struct {
				label string
				o     *cryptokit.KeyAgreementOptions
			}{
				{"Auth key agreement:", &su.AuthKeyAgreement},
				{"Cipher key agreement:", &su.CipherKeyAgreement},
			} {
				fmt.Fprintf(w, "%s\t%s\tprivate %d, public %d, secret %d, nonce %d\n", ka.label, ka.o.Name,
					ka.o.PrivateKeySize, ka.o.PublicKeySize, ka.o.SharedSecretSize, ka.o.NonceSize)
			}
			fmt.Fprintf(w, "Key derivation:\t%s\tkey %d, salt %d, rounds %d\n", su.KeyDerivation.Name,
				su.KeyDerivation.KeySize, su.KeyDerivation.SaltSize, su.KeyDerivation.DefaultRounds)
			fmt.Fprintf(w, "Signature:\t%s\tprivate %d, public %d, signature %d\n", su.Signature.Name,
				su.Signature.PrivateKeySize, su.Signature.PublicKeySize, su.Signature.SignatureSize)
			fmt.Fprintf(w, "PRNG:\t%s\n", su.PRNG.Name)
			return w.Flush()
		},
	}
}

func newSelftestCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "selftest",
		Short: "Run round-trip checks over every family of the suite",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := g.open(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer s.Close()

			report, err := selftest.Run(cmd.Context(), s.suite, s.log)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, res := range report.Results {
				result := "ok"
				if res.Err != nil {
					result = "FAIL: " + res.Err.Error()
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", res.Family, res.Duration.Round(time.Microsecond), result)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			if err := report.Err(); err != nil {
				return fmt.Errorf("self test of %s failed: %w", report.Suite, err)
			}
			return nil
		},
	}
}

const (
	formatHex    = "hex"
	formatBase64 = "base64"
	formatUUID   = "uuid"
)

var errUnknownFormat = errors.New("unknown output format")

func newRandomCmd(g *globalFlags) *cobra.Command {
	var (
		n      int
		format string
	)
	cmd := &cobra.Command{
		Use:   "random",
		Short: "Print random bytes from the suite's generator",
		Long: `Print random bytes drawn from the configured suite's generator, encoded
as uppercase hex, base64 or a UUID.

Examples:
  cryptokit random --bytes 16
  cryptokit random --format base64 --bytes 48
  cryptokit random --format uuid`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if n <= 0 {
				return fmt.Errorf("--bytes must be positive, got %d", n)
			}
			s, err := g.open(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer s.Close()

			rng, err := s.suite.NewPRNG()
			if err != nil {
				return err
			}
			defer rng.Dispose()

			if format == formatUUID {
				id, err := rng.ReadUUID()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), id)
				return nil
			}

			raw, err := buffer.New(s.suite.Allocator, n)
			if err != nil {
				return err
			}
			defer raw.Dispose()
			if err := rng.ReadBuffer(raw, n); err != nil {
				return err
			}
			text, err := encode(s.suite, raw, format)
			if err != nil {
				return err
			}
			defer text.Dispose()
			s.log.Debug(cmd.Context(), "random output drawn",
				"generator", s.suite.PRNG.Name, "bytes", n, "format", format, logging.Redacted("value"))
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", text.Bytes())
			return err
		},
	}
	cmd.Flags().IntVar(&n, "bytes", 32, "Number of random bytes")
	cmd.Flags().StringVar(&format, "format", formatHex, "Output format (hex, base64, uuid)")
	return cmd
}

// encode returns a buffer holding exactly the text encoding of raw.
func encode(su *cryptokit.Suite, raw *buffer.Buffer, format string) (*buffer.Buffer, error) {
	switch format {
	case formatHex:
		text, err := buffer.New(su.Allocator, buffer.HexLen(raw.Len()))
		if err != nil {
			return nil, err
		}
		if err := buffer.WriteHex(text, raw); err != nil {
			text.Dispose()
			return nil, err
		}
		return text, nil
	case formatBase64:
		text, err := buffer.New(su.Allocator, buffer.Base64Len(raw.Len()))
		if err != nil {
			return nil, err
		}
		if _, err := buffer.WriteBase64(text, raw); err != nil {
			text.Dispose()
			return nil, err
		}
		return text, nil
	}
	return nil, fmt.Errorf("%w: %q", errUnknownFormat, format)
}
