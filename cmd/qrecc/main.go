package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/Davincible/qrecc/internal/cli"
	"github.com/Davincible/qrecc/pkg/reedsolomon"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	level := new(slog.LevelVar)
	level.Set(slog.LevelWarn)
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	rootCmd := cli.NewRootCommand(
		fmt.Sprintf("%s (built %s, commit %s)", Version, BuildTime, GitCommit),
		level,
	)

	if err := rootCmd.Execute(); err != nil {
		// an uncorrectable block is an expected outcome, not a crash
		if errors.Is(err, reedsolomon.ErrUncorrectable) {
			slog.Info("Block could not be corrected", "error", err)
			os.Exit(2)
		}
		slog.Error("Command execution failed", "error", err)
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
