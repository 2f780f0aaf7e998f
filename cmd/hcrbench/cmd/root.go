// Package cmd provides the CLI commands for the hcrbench evaluation harness.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/hcr/internal/config"
	hcrerrors "github.com/Aman-CERP/hcr/internal/errors"
	"github.com/Aman-CERP/hcr/internal/logging"
	"github.com/Aman-CERP/hcr/pkg/version"
)

// ErrKilled is returned by the failfast and full commands when a kill
// criterion trips; main maps it to exit code 2.
var ErrKilled = errors.New("fail-fast verdict: KILLED")

var (
	configPath string
	scale      string
	corpusPath string
	queryPath  string
	resultsDir string
	treeDepth  int
	branching  int
	debugMode  bool

	loggingCleanup func()
)

// NewRootCmd creates the root command for the hcrbench CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hcrbench",
		Short: "Benchmark harness for hierarchical context retrieval",
		Long: `hcrbench evaluates the HCR engine against retrieval baselines:
BM25, hybrid RRF, and a flat cross-encoder (the kill baseline).

Modes are subcommands: sanity, baselines, hcr, failfast, full.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.SetVersionTemplate("hcrbench version {{.Version}}\n")

	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to YAML config file")
	cmd.PersistentFlags().StringVar(&scale, "scale", "small", "Benchmark scale: small|medium|large")
	cmd.PersistentFlags().StringVar(&corpusPath, "corpus", "", "Corpus JSON path (overrides scale default)")
	cmd.PersistentFlags().StringVar(&queryPath, "queries", "", "Query suite JSON path (overrides scale default)")
	cmd.PersistentFlags().StringVar(&resultsDir, "results", "", "Results directory (overrides scale default)")
	cmd.PersistentFlags().IntVar(&treeDepth, "depth", 0, "Tree max depth override")
	cmd.PersistentFlags().IntVar(&branching, "branching", 0, "Tree branching override")
	cmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")

	cmd.PersistentPreRunE = setupLogging
	cmd.PersistentPostRun = func(*cobra.Command, []string) {
		if loggingCleanup != nil {
			loggingCleanup()
		}
	}

	cmd.AddCommand(newSanityCmd())
	cmd.AddCommand(newBaselinesCmd())
	cmd.AddCommand(newHCRCmd())
	cmd.AddCommand(newFailfastCmd())
	cmd.AddCommand(newFullCmd())

	return cmd
}

// Execute runs the root command.
func Execute() error {
	err := NewRootCmd().Execute()
	if err != nil && !errors.Is(err, ErrKilled) {
		fmt.Fprintln(os.Stderr, hcrerrors.FormatForCLI(err))
	}
	return err
}

func setupLogging(*cobra.Command, []string) error {
	logCfg := logging.DefaultConfig()
	if debugMode {
		logCfg = logging.DebugConfig()
	}
	_, cleanup, err := logging.Setup(logCfg)
	if err != nil {
		return err
	}
	loggingCleanup = cleanup
	return nil
}

// loadConfig resolves the three-tier precedence: defaults, YAML file, then
// CLI flags. The scale selector supplies path defaults that explicit path
// flags override.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	switch scale {
	case "small", "medium", "large":
	default:
		return nil, hcrerrors.ConfigError(fmt.Sprintf("unknown scale %q (want small|medium|large)", scale), nil)
	}

	// The scale selector supplies the built-in path defaults; paths set in
	// the YAML file (and path flags below) take precedence.
	if cfg.Paths == config.DefaultConfig().Paths {
		base := filepath.Join("benchmark", scale)
		cfg.Paths.Corpus = filepath.Join(base, "corpus.json")
		cfg.Paths.Queries = filepath.Join(base, "queries.json")
		cfg.Paths.Results = filepath.Join(base, "results")
	}

	cfg.ApplyFlags(config.FlagOverrides{
		Corpus:    corpusPath,
		Queries:   queryPath,
		Results:   resultsDir,
		Depth:     treeDepth,
		Branching: branching,
		Debug:     debugMode,
	})

	return cfg, nil
}
