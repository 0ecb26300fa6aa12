// Package cli implements the srcjump command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/srcjump/srcjump/internal/config"
)

var (
	rootDirFlag string
	verbose     bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "srcjump",
	Short: "Jump from a rendered UI element to the source that produced it",
	Long: `srcjump indexes the structural units of a workspace (component classes
and their templates) and serves a local resolution API: given a runtime
class name observed in a live page, it finds the defining file and opens
it in your editor at the most relevant line.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. Called once by main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootDirFlag, "root", "", "workspace root (default is the current directory)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// workspaceRoot resolves the workspace root from the flag or the current
// directory.
func workspaceRoot() (string, error) {
	if rootDirFlag != "" {
		return rootDirFlag, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	return wd, nil
}

// loadConfig resolves the workspace root and loads its configuration.
func loadConfig() (string, *config.Config, error) {
	rootDir, err := workspaceRoot()
	if err != nil {
		return "", nil, err
	}
	cfg, err := config.LoadFromDir(rootDir)
	if err != nil {
		return "", nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return rootDir, cfg, nil
}
