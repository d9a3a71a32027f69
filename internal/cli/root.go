package cli

import (
	"log/slog"

	"github.com/spf13/cobra"
)

// NewRootCommand builds the qrecc command tree. level is switched to Debug
// when --verbose is set.
func NewRootCommand(version string, level *slog.LevelVar) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "qrecc",
		Short: "Reed-Solomon error correction for 2D barcode codewords",
		Long: `qrecc corrects the codewords read from a QR Code, Data Matrix, Aztec or
MaxiCode symbol using Reed-Solomon decoding over GF(2^m).

The codewords of one error-correction block are given together with the
number of error-correction codewords of the block. Up to half that many
corrupted codewords are repaired.

Features:
- Extended Euclidean key equation solver
- Chien search and Forney error magnitudes
- Predefined fields for common symbologies, or a custom field
- Systematic encoder for building test blocks
- Concurrent stress testing with decode statistics`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			verbose, _ := cmd.Flags().GetBool("verbose")
			if verbose && level != nil {
				level.Set(slog.LevelDebug)
			}
		},
	}

	rootCmd.AddCommand(
		NewDecodeCommand(),
		NewEncodeCommand(),
		NewFieldsCommand(),
		NewStressCommand(),
	)

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringP("config", "c", "", "Config file (default $QRECC_CONFIG or ~/.config/qrecc/config.yaml)")
	rootCmd.PersistentFlags().StringP("field", "f", "", "Field preset (qr, datamatrix, aztec-data-10, ...)")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")

	return rootCmd
}
