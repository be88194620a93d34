// Package main implements the forge CLI for spec-driven workshop
// repositories: scaffold and validate specs, generate and promote
// material, and run AI-assisted operations under policy control.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/workshopforge/workshopforge/internal/config"
	"github.com/workshopforge/workshopforge/internal/logging"
	"github.com/workshopforge/workshopforge/internal/spec"
)

var (
	version = "dev"

	// persistent flags
	baseDir    string
	specDir    string
	configPath string

	cfg    *config.Config
	logger *zap.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error: ")+err.Error())
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "forge",
	Short: "Spec-driven workshop repository tool",
	Long: `forge builds and maintains workshop repositories from a specification
directory. The spec is the source of truth: forge scaffolds it, validates
it, generates instructor material from it, and gates every AI-assisted
change behind its policy rules.`,
	Version:           version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&baseDir, "base-dir", ".", "workshop root directory")
	rootCmd.PersistentFlags().StringVar(&specDir, "spec-dir", "", "specification directory (default <base-dir>/spec)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/workshopforge/config.yaml)")
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(promoteCmd)
	rootCmd.AddCommand(aiCmd)
}

// setup loads configuration and the logger before any command runs.
func setup(cmd *cobra.Command, args []string) error {
	path := configPath
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return fmt.Errorf("resolve config path: %w", err)
		}
	}
	var err error
	cfg, err = config.Load(path)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger, err = logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	return nil
}

// resolveSpecDir applies the default spec directory layout.
func resolveSpecDir() string {
	if specDir != "" {
		return specDir
	}
	return filepath.Join(baseDir, "spec")
}

// loadSpec loads and fatally validates the specification: structural
// errors in the spec stop every command that needs one.
func loadSpec() (*spec.Specification, error) {
	s, err := spec.Load(resolveSpecDir())
	if err != nil {
		return nil, err
	}
	if problems := s.Validate(); len(problems) > 0 {
		for _, p := range problems {
			fmt.Fprintln(os.Stderr, errorStyle.Render("spec: ")+p)
		}
		return nil, fmt.Errorf("specification has %d validation error(s)", len(problems))
	}
	return s, nil
}
