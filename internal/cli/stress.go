package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"slices"
	"sync"
	"time"

	"github.com/Davincible/qrecc/internal/metrics"
	"github.com/Davincible/qrecc/internal/validation"
	"github.com/Davincible/qrecc/pkg/reedsolomon"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// StressParams configures a stress run
type StressParams struct {
	Trials        int
	Workers       int
	DataCodewords int
	ECCodewords   int
	Errors        int // codewords corrupted per trial
	Seed          int64
}

// StressResult summarizes a stress run
type StressResult struct {
	Field         string            `json:"field"`
	Trials        int               `json:"trials"`
	Errors        int               `json:"errors_per_trial"`
	Capacity      int               `json:"capacity"`
	Outcomes      map[string]uint64 `json:"outcomes"`
	AvgCorrected  float64           `json:"avg_corrected"`
	ElapsedMillis int64             `json:"elapsed_ms"`
}

func (p StressParams) validate(fieldSize int) error {
	if p.Trials <= 0 {
		return fmt.Errorf("trials must be positive (got %d)", p.Trials)
	}
	if p.Workers <= 0 {
		return fmt.Errorf("workers must be positive (got %d)", p.Workers)
	}
	if err := validation.ValidateEncodeParams(p.DataCodewords, p.ECCodewords, fieldSize); err != nil {
		return err
	}
	if p.Errors < 0 || p.Errors > p.DataCodewords+p.ECCodewords {
		return fmt.Errorf("errors must be between 0 and %d (got %d)", p.DataCodewords+p.ECCodewords, p.Errors)
	}
	return nil
}

// runStress encodes random blocks, corrupts them and decodes them on a
// worker pool sharing one field. Every worker owns its buffers.
func runStress(ctx context.Context, field *reedsolomon.Field, p StressParams, recorder *metrics.Recorder) error {
	if err := p.validate(field.Size()); err != nil {
		return err
	}

	encoder := reedsolomon.NewEncoder(field)
	decoder := reedsolomon.NewDecoder(field)

	trials := make(chan int)
	errs := make(chan error, p.Workers)
	var wg sync.WaitGroup

	for w := 0; w < p.Workers; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(p.Seed + int64(worker)))
			n := p.DataCodewords + p.ECCodewords
			original := make([]int, n)
			received := make([]int, n)

			for trial := range trials {
				for i := 0; i < p.DataCodewords; i++ {
					original[i] = rng.Intn(field.Size())
				}
				if err := encoder.Encode(original, p.ECCodewords); err != nil {
					errs <- fmt.Errorf("trial %d: %w", trial, err)
					return
				}

				copy(received, original)
				for _, pos := range rng.Perm(n)[:p.Errors] {
					received[pos] = (received[pos] + 1 + rng.Intn(field.Size()-1)) % field.Size()
				}

				corrected, err := decoder.Decode(received, p.ECCodewords)
				if err == nil && !slices.Equal(original, received) {
					slog.Debug("Miscorrection", "trial", trial, "worker", worker, "corrected", corrected)
					recorder.ObserveMiscorrection()
					continue
				}
				recorder.Observe(corrected, err)
			}
		}(w)
	}

	var runErr error
feed:
	for trial := 0; trial < p.Trials; trial++ {
		select {
		case <-ctx.Done():
			runErr = ctx.Err()
			break feed
		case err := <-errs:
			runErr = err
			break feed
		case trials <- trial:
		}
	}
	close(trials)
	wg.Wait()

	if runErr != nil {
		return runErr
	}
	select {
	case err := <-errs:
		return err
	default:
		return nil
	}
}

func NewStressCommand() *cobra.Command {
	var (
		trials        int
		workers       int
		dataCodewords int
		ecCodewords   int
		numErrors     int
		seed          int64
	)

	cmd := &cobra.Command{
		Use:   "stress",
		Short: "Run a randomized encode/corrupt/decode campaign",
		Long: `Encode random blocks, corrupt a number of codewords in each and decode
them concurrently. Reports how many blocks were restored, rejected as
uncorrectable, or miscorrected onto another valid codeword.

Within capacity (errors <= ec/2) every block must be restored. Above it most
blocks are rejected; the rare miscorrection is an inherent limit of
Reed-Solomon decoding.`,
		Example: `  # 10000 QR 1-M blocks with 5 errors each
  qrecc stress --trials 10000 --ec 10 --data 16 --errors 5

  # Over capacity
  qrecc stress --ec 10 --errors 7 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(cmd)
			if err != nil {
				return err
			}

			p := StressParams{
				Trials:        intFlag(cmd, "trials", s.cfg.Stress.Trials),
				Workers:       intFlag(cmd, "workers", s.cfg.Stress.Workers),
				DataCodewords: intFlag(cmd, "data", s.cfg.Stress.DataCodewords),
				ECCodewords:   intFlag(cmd, "ec", s.cfg.Decode.ECCodewords),
				Errors:        intFlag(cmd, "errors", s.cfg.Stress.Errors),
				Seed:          seed,
			}
			if p.Errors < 0 {
				p.Errors = p.ECCodewords / 2
			}
			if !cmd.Flags().Changed("seed") {
				p.Seed = time.Now().UnixNano()
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			recorder := metrics.NewRecorder()
			start := time.Now()
			if err := runStress(ctx, s.field, p, recorder); err != nil {
				return fmt.Errorf("stress run failed: %w", err)
			}

			snap, err := recorder.Snapshot()
			if err != nil {
				return fmt.Errorf("failed to gather metrics: %w", err)
			}
			result := StressResult{
				Field:         s.field.String(),
				Trials:        p.Trials,
				Errors:        p.Errors,
				Capacity:      p.ECCodewords / 2,
				Outcomes:      snap.Outcomes,
				ElapsedMillis: time.Since(start).Milliseconds(),
			}
			if snap.CorrectedTotal > 0 {
				result.AvgCorrected = snap.CorrectedSum / float64(snap.CorrectedTotal)
			}

			out := cmd.OutOrStdout()
			if s.outputJSON {
				return writeJSON(out, result)
			}
			return outputStressText(out, result, recorder)
		},
	}

	cmd.Flags().IntVarP(&trials, "trials", "n", 1000, "Number of blocks to test")
	cmd.Flags().IntVarP(&workers, "workers", "w", 4, "Number of concurrent decoders")
	cmd.Flags().IntVar(&dataCodewords, "data", 16, "Data codewords per block")
	cmd.Flags().IntVarP(&ecCodewords, "ec", "e", 10, "Error-correction codewords per block")
	cmd.Flags().IntVar(&numErrors, "errors", -1, "Codewords corrupted per block (-1 = ec/2)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Random seed (default: time based)")

	return cmd
}

func outputStressText(w io.Writer, result StressResult, recorder *metrics.Recorder) error {
	green := color.New(color.FgGreen, color.Bold)
	red := color.New(color.FgRed, color.Bold)
	yellow := color.New(color.FgYellow)

	fmt.Fprintln(w)
	yellow.Fprintf(w, "Stress run over %s: %d trials, %d errors each (capacity %d)\n",
		result.Field, result.Trials, result.Errors, result.Capacity)

	if err := displayMetrics(w, recorder); err != nil {
		return err
	}
	fmt.Fprintf(w, "  %-14s %dms\n", "elapsed:", result.ElapsedMillis)
	fmt.Fprintln(w)

	failed := result.Outcomes[metrics.OutcomeUncorrectable] + result.Outcomes[metrics.OutcomeMiscorrected]
	switch {
	case result.Errors <= result.Capacity && failed == 0:
		green.Fprintln(w, "✓ Every block within capacity was restored")
	case result.Errors <= result.Capacity:
		red.Fprintf(w, "✗ %d block(s) within capacity were not restored\n", failed)
	default:
		fmt.Fprintf(w, "Over capacity: %d rejected, %d miscorrected\n",
			result.Outcomes[metrics.OutcomeUncorrectable], result.Outcomes[metrics.OutcomeMiscorrected])
	}
	return nil
}
