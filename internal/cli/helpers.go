package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Davincible/qrecc/internal/metrics"
	"github.com/Davincible/qrecc/pkg/config"
	"github.com/Davincible/qrecc/pkg/reedsolomon"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// defaultNoColor is fatih/color's own terminal detection, captured before any
// command overrides it.
var defaultNoColor = color.NoColor

// settings is the resolved configuration for one command invocation
type settings struct {
	cfg        *config.Config
	field      *reedsolomon.Field
	outputJSON bool
}

// loadSettings loads the config file and applies the persistent flags on top
func loadSettings(cmd *cobra.Command) (*settings, error) {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if preset, _ := cmd.Flags().GetString("field"); preset != "" {
		cfg.Field.Preset = preset
	}
	field, err := cfg.Field.Resolve()
	if err != nil {
		return nil, err
	}

	noColor, _ := cmd.Flags().GetBool("no-color")
	color.NoColor = defaultNoColor || noColor || !cfg.Output.Color

	outputJSON, _ := cmd.Flags().GetBool("json")
	return &settings{cfg: cfg, field: field, outputJSON: outputJSON}, nil
}

// intFlag returns the flag value if set on the command line, else fallback
func intFlag(cmd *cobra.Command, name string, fallback int) int {
	if cmd.Flags().Changed(name) {
		v, _ := cmd.Flags().GetInt(name)
		return v
	}
	return fallback
}

func stringFlag(cmd *cobra.Command, name, fallback string) string {
	if cmd.Flags().Changed(name) {
		v, _ := cmd.Flags().GetString(name)
		return v
	}
	return fallback
}

// readCodewordInput takes codewords from the argument, or from stdin
func readCodewordInput(cmd *cobra.Command, args []string, prompt string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}

	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(cmd.ErrOrStderr(), prompt)
		reader := bufio.NewReader(f)
		line, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return "", err
		}
		return strings.TrimSpace(line), nil
	}

	// Fallback for non-terminal
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	input := strings.TrimSpace(string(data))
	if input == "" {
		return "", fmt.Errorf("no codewords given")
	}
	return input, nil
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// displayMetrics prints the decode counters of a recorder
func displayMetrics(w io.Writer, recorder *metrics.Recorder) error {
	snap, err := recorder.Snapshot()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}

	cyan := color.New(color.FgCyan, color.Bold)
	fmt.Fprintln(w)
	cyan.Fprintln(w, "Decode statistics:")
	for _, outcome := range []string{
		metrics.OutcomeClean,
		metrics.OutcomeCorrected,
		metrics.OutcomeUncorrectable,
		metrics.OutcomeMiscorrected,
		metrics.OutcomeInvalid,
	} {
		fmt.Fprintf(w, "  %-14s %d\n", outcome+":", snap.Outcomes[outcome])
	}
	if snap.CorrectedTotal > 0 {
		fmt.Fprintf(w, "  %-14s %.2f\n", "avg corrected:", snap.CorrectedSum/float64(snap.CorrectedTotal))
	}
	return nil
}
