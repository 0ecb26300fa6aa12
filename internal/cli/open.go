package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/srcjump/srcjump/internal/launch"
)

// openCmd represents the open command.
var openCmd = &cobra.Command{
	Use:   "open <path[:line[:column]]>",
	Short: "Open a source location in the configured editor",
	Long: `Open invokes the editor resolution chain for a location:
environment override command first, then the preferred editor, then the
fallback editor.

Examples:
  srcjump open src/app/dashboard/widget.component.ts
  srcjump open src/app/dashboard/widget.component.ts:42
  srcjump open src/app/dashboard/widget.component.ts:42:8
`,
	Args: cobra.ExactArgs(1),
	RunE: runOpen,
}

func init() {
	rootCmd.AddCommand(openCmd)
}

func runOpen(cmd *cobra.Command, args []string) error {
	_, cfg, err := loadConfig()
	if err != nil {
		return err
	}

	target, err := parseTarget(args[0])
	if err != nil {
		return err
	}

	dispatcher := launch.NewDispatcher(cfg.Editor, nil)
	if err := dispatcher.Open(target); err != nil {
		return fmt.Errorf("failed to open %s: %w", target, err)
	}

	return nil
}

// parseTarget parses path[:line[:column]] notation. Both suffix numbers are
// optional and default to 1.
func parseTarget(arg string) (launch.Target, error) {
	target := launch.Target{FilePath: arg, Line: 1, Column: 1}

	// Split from the right so drive letters and paths with colons survive.
	parts := strings.Split(arg, ":")
	if len(parts) >= 2 {
		if line, err := strconv.Atoi(parts[len(parts)-1]); err == nil {
			if len(parts) >= 3 {
				if prevLine, err := strconv.Atoi(parts[len(parts)-2]); err == nil {
					target.FilePath = strings.Join(parts[:len(parts)-2], ":")
					target.Line = prevLine
					target.Column = line
					return target, nil
				}
			}
			target.FilePath = strings.Join(parts[:len(parts)-1], ":")
			target.Line = line
		}
	}

	if target.FilePath == "" {
		return launch.Target{}, fmt.Errorf("invalid open target %q", arg)
	}
	return target, nil
}
