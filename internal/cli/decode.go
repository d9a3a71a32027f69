package cli

import (
	"fmt"
	"io"

	"github.com/Davincible/qrecc/internal/metrics"
	"github.com/Davincible/qrecc/internal/validation"
	"github.com/Davincible/qrecc/pkg/reedsolomon"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// DecodeResult is the JSON form of a decode
type DecodeResult struct {
	Field       string `json:"field"`
	ECCodewords int    `json:"ec_codewords"`
	Codewords   string `json:"codewords"`
	Data        string `json:"data"`
	Corrected   int    `json:"corrected"`
	Error       string `json:"error,omitempty"`
	ErrorKind   string `json:"error_kind,omitempty"`
}

func NewDecodeCommand() *cobra.Command {
	var (
		ecCodewords int
		format      string
		showMetrics bool
	)

	cmd := &cobra.Command{
		Use:   "decode [codewords]",
		Short: "Correct the codewords of one error-correction block",
		Long: `Correct up to ec/2 corrupted codewords of a Reed-Solomon block.

The block is the data codewords followed by the error-correction codewords,
given as hex bytes or as decimal integers. Codewords are read from stdin when
no argument is given.`,
		Example: `  # Correct a QR version 1-M block (10 EC codewords)
  qrecc decode --ec 10 10200c566180ec11ec11ec11ec11ec11a524d4c1ed36c7872c55

  # Data Matrix block in decimal
  qrecc decode -f datamatrix --ec 5 --format dec < block.txt

  # Read from a pipe and emit JSON
  cat block.txt | qrecc decode --ec 26 --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			ecCodewords = intFlag(cmd, "ec", s.cfg.Decode.ECCodewords)
			format = stringFlag(cmd, "format", s.cfg.Output.Format)

			input, err := readCodewordInput(cmd, args, "Enter codewords: ")
			if err != nil {
				return err
			}
			received, err := validation.ParseCodewords(input, format, s.field.Size())
			if err != nil {
				return err
			}
			if err := validation.ValidateDecodeParams(len(received), ecCodewords, s.field.Size()); err != nil {
				return fmt.Errorf("invalid parameters: %w", err)
			}

			recorder := metrics.NewRecorder()
			decoder := reedsolomon.NewDecoder(s.field)
			corrected, decodeErr := decoder.Decode(received, ecCodewords)
			recorder.Observe(corrected, decodeErr)

			result := DecodeResult{
				Field:       s.field.String(),
				ECCodewords: ecCodewords,
				Codewords:   validation.FormatCodewords(received, format),
				Data:        validation.FormatCodewords(received[:len(received)-ecCodewords], format),
				Corrected:   corrected,
			}
			if decodeErr != nil {
				result.Error = decodeErr.Error()
				result.ErrorKind = reedsolomon.KindOf(decodeErr).String()
			}

			out := cmd.OutOrStdout()
			if s.outputJSON {
				if err := writeJSON(out, result); err != nil {
					return err
				}
			} else {
				outputDecodeText(out, result)
			}

			if showMetrics {
				if err := displayMetrics(out, recorder); err != nil {
					return err
				}
			}

			if decodeErr != nil {
				return fmt.Errorf("decode failed: %w", decodeErr)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&ecCodewords, "ec", "e", 10, "Number of error-correction codewords in the block")
	cmd.Flags().StringVar(&format, "format", "hex", "Codeword format (hex or dec)")
	cmd.Flags().BoolVar(&showMetrics, "metrics", false, "Print decode statistics")

	return cmd
}

func outputDecodeText(w io.Writer, result DecodeResult) {
	green := color.New(color.FgGreen, color.Bold)
	yellow := color.New(color.FgYellow)
	red := color.New(color.FgRed, color.Bold)

	fmt.Fprintln(w)
	if result.Error != "" {
		red.Fprintln(w, "✗ Block is uncorrectable")
		fmt.Fprintf(w, "  %s\n", result.Error)
		fmt.Fprintln(w)
		fmt.Fprintln(w, "More codewords are damaged than the error-correction capacity allows.")
		fmt.Fprintln(w, "Try another scan or a different scale of the symbol.")
		return
	}

	switch result.Corrected {
	case 0:
		green.Fprintln(w, "✓ No errors found")
	default:
		green.Fprintf(w, "✓ Corrected %d codeword(s)\n", result.Corrected)
	}
	fmt.Fprintln(w)

	yellow.Fprintln(w, "Block details:")
	fmt.Fprintf(w, "  Field:     %s\n", result.Field)
	fmt.Fprintf(w, "  EC words:  %d (corrects up to %d)\n", result.ECCodewords, result.ECCodewords/2)
	fmt.Fprintf(w, "  Codewords: %s\n", result.Codewords)
	fmt.Fprintf(w, "  Data:      %s\n", result.Data)
}
