package main

import (
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/gofta/gofta/internal/analysis"
	"github.com/gofta/gofta/internal/faulttree"
	"github.com/gofta/gofta/internal/fterr"
	"github.com/gofta/gofta/internal/lexing"
	"github.com/gofta/gofta/internal/output"
	"github.com/gofta/gofta/internal/parsing"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	var (
		debug   bool
		noColor bool
	)

	rootCmd := &cobra.Command{
		Use:           "gofta <path>",
		Short:         "Analyse a fault-tree text file",
		Version:       version,
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			useColor := shouldUseColor(noColor)
			logger := newLogger(debug)
			return run(args[0], logger, useColor)
		},
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored error output")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}

func run(path string, logger *slog.Logger, useColor bool) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	logger.Debug("classifying lines")
	lines, err := lexing.Classify(string(source))
	if err != nil {
		return renderAndFail(err, useColor)
	}

	logger.Debug("grouping paragraphs", "count", len(lines))
	paragraphs, err := parsing.Group(lines)
	if err != nil {
		return renderAndFail(err, useColor)
	}

	logger.Debug("typing assemblies", "count", len(paragraphs))
	assemblies, err := parsing.Type(paragraphs)
	if err != nil {
		return renderAndFail(err, useColor)
	}

	logger.Debug("building fault tree", "count", len(assemblies))
	ft, err := faulttree.Build(assemblies)
	if err != nil {
		return renderAndFail(err, useColor)
	}

	logger.Debug("sampling and evaluating",
		"times", len(ft.Times), "sample_size", ft.SampleSize,
		"events", len(ft.Events), "gates", len(ft.Gates))
	result, err := analysis.Run(ft, seededRand(ft.Seed))
	if err != nil {
		return renderAndFail(err, useColor)
	}

	outDir := path + ".out"
	if err := os.RemoveAll(outDir); err != nil {
		return err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	logger.Debug("writing tables", "dir", outDir)
	if err := output.WriteAll(outDir, ft, result); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "wrote %s\n", outDir)
	return nil
}

// seededRand builds the root PRNG stream: the declared seed when
// present, otherwise one derived from the wall clock, so an
// unseeded run still produces a usable (if non-reproducible) result.
func seededRand(seed *int64) *rand.Rand {
	if seed != nil {
		return rand.New(rand.NewSource(*seed))
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// renderAndFail prints a FaultTreeTextError in the colourised,
// explainer/suggestion-aware form (any other error as a plain
// "error:" line) and returns err unchanged; the root command sets
// SilenceErrors/SilenceUsage so cobra does not print it again.
func renderAndFail(err error, useColor bool) error {
	if fe, ok := err.(*fterr.Error); ok {
		printDiagnostic(fe, useColor)
		return err
	}
	fmt.Fprintln(os.Stderr, colorize("error: ", colorRed, useColor)+err.Error())
	return err
}

func printDiagnostic(fe *fterr.Error, useColor bool) {
	header := colorize("error: ", colorRed, useColor)
	if fe.Line != nil {
		fmt.Fprintf(os.Stderr, "%s%s (line %d): %s\n", header, fe.Code, *fe.Line, fe.Msg)
	} else {
		fmt.Fprintf(os.Stderr, "%s%s: %s\n", header, fe.Code, fe.Msg)
	}
	if fe.Explainer != "" {
		fmt.Fprintln(os.Stderr, fe.Explainer)
	}
	if fe.Suggestion != "" {
		fmt.Fprintln(os.Stderr, colorize(fmt.Sprintf("did you mean %q?", fe.Suggestion), colorGray, useColor))
	}
}
