package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/srcjump/srcjump/internal/resolver"
)

var navPathFlag string

// resolveCmd represents the resolve command.
var resolveCmd = &cobra.Command{
	Use:   "resolve <identifier>",
	Short: "Resolve a runtime class name to its source record",
	Long: `Resolve looks up an identifier in the persisted index and prints the
best-matching record. When the identifier is declared in several files,
the navigation path (--nav) is used to rank the candidates.

Examples:
  srcjump resolve DashboardWidgetComponent
  srcjump resolve _WidgetComponent --nav /dashboard/settings
`,
	Args: cobra.ExactArgs(1),
	RunE: runResolve,
}

func init() {
	rootCmd.AddCommand(resolveCmd)
	resolveCmd.Flags().StringVar(&navPathFlag, "nav", "", "Navigation path of the inspected page")
}

func runResolve(cmd *cobra.Command, args []string) error {
	rootDir, cfg, err := loadConfig()
	if err != nil {
		return err
	}

	builder, err := buildIndexer(rootDir, cfg, nil)
	if err != nil {
		return err
	}

	idx, err := builder.Store().ReadIndex()
	if err != nil {
		return err
	}
	if idx == nil {
		return fmt.Errorf("no index found, run 'srcjump index' first")
	}

	rec, ok := resolver.New(cfg.Scoring).Resolve(idx, args[0], navPathFlag)
	if !ok {
		return fmt.Errorf("identifier %q not found in index", args[0])
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(rec)
}
