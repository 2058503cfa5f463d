package main

import (
	"fmt"
	"os"

	"github.com/ojrosten/sequoia-sub007/harness"
	"github.com/ojrosten/sequoia-sub007/internal/obslog"
	"github.com/spf13/cobra"
)

var (
	selection       harness.Selection
	async           bool
	asyncDepth      int
	verbose         bool
	recovery        bool
	dump            bool
	outputDir       string
	updateMaterials bool
	exitCode        int
)

var rootCmd = &cobra.Command{
	Use:           "sequoia",
	Short:         "Run registered test families",
	SilenceUsage:  true,
	SilenceErrors: false,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSelected()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&async, "async", false, "set concurrency at least family")
	rootCmd.PersistentFlags().IntVar(&asyncDepth, "async-depth", -1, "set concurrency to 0 (family), 1 (test), or 2 (deep)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "emit per-test detail")
	rootCmd.PersistentFlags().BoolVarP(&recovery, "recovery", "r", false, "enable recovery file")
	rootCmd.PersistentFlags().BoolVar(&dump, "dump", false, "enable dump file")
	rootCmd.PersistentFlags().StringVar(&outputDir, "output-dir", "output", "root of the persisted output tree")

	rootCmd.AddCommand(testCmd, sourceCmd, updateMaterialsCmd, initCmd)
}

func resolveConcurrency() harness.ConcurrencyMode {
	switch {
	case asyncDepth == 0:
		return harness.Family
	case asyncDepth == 1:
		return harness.Test
	case asyncDepth == 2:
		return harness.Deep
	case async:
		return harness.Family
	default:
		return harness.Serial
	}
}

func runSelected() error {
	r := &harness.Runner{
		Families:    harness.Registered(),
		Selection:   selection,
		Concurrency: resolveConcurrency(),
		OutputMode: harness.OutputMode{
			WriteFiles:          true,
			Verbose:             verbose,
			Recovery:            recovery,
			Dump:                dump,
			OutputDir:           outputDir,
			UpdateMaterials:     updateMaterials,
			UpdateMaterialsHard: updateMaterialsHard,
		},
		Out: os.Stdout,
		Log: obslog.New(os.Stderr, obslog.LevelInfo),
	}

	result, err := r.Execute()
	if err != nil {
		return fmt.Errorf("sequoia: %w", err)
	}
	if !result.Summary.Passed() {
		exitCode = 1
	}
	return nil
}

var testCmd = &cobra.Command{
	Use:   "test <family>",
	Short: "add a family to the selection set",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		selection.Families = append(selection.Families, args[0])
		return runSelected()
	},
}

var sourceCmd = &cobra.Command{
	Use:   "source <path>",
	Short: "add a source file to the selection set",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		selection.Sources = append(selection.Sources, args[0])
		return runSelected()
	},
}
