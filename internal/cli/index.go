package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/srcjump/srcjump/internal/index"
	"github.com/srcjump/srcjump/internal/indexer"
)

var (
	quietFlag bool
	watchFlag bool
	forceFlag bool
)

// indexCmd represents the index command.
var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Scan the workspace and build the source index",
	Long: `Index scans the workspace's component files and writes the source index
to .srcjump/index.json.

A fingerprint cache makes repeated runs cheap: when no file changed since
the last scan, the existing snapshot is kept as is.

Examples:
  # Index the current directory
  srcjump index

  # Force a full rescan, ignoring the fingerprint cache
  srcjump index --force

  # Keep watching for changes and rebuild incrementally
  srcjump index --watch
`,
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
	indexCmd.Flags().BoolVarP(&quietFlag, "quiet", "q", false, "Disable progress output")
	indexCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "Watch for file changes and rebuild")
	indexCmd.Flags().BoolVar(&forceFlag, "force", false, "Rebuild even when the fingerprint cache is clean")
}

func runIndex(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nInterrupted! Cancelling scan...")
		cancel()
	}()

	rootDir, cfg, err := loadConfig()
	if err != nil {
		return err
	}

	builder, err := buildIndexer(rootDir, cfg, newCLIProgressReporter(quietFlag))
	if err != nil {
		return err
	}

	var idx *index.SourceIndex
	var rebuilt bool

	if forceFlag {
		files, err := builder.Discovery().DiscoverFiles()
		if err != nil {
			return fmt.Errorf("failed to discover files: %w", err)
		}
		idx, err = builder.BuildFrom(ctx, files)
		if err != nil {
			if ctx.Err() != nil {
				return fmt.Errorf("indexing cancelled")
			}
			return fmt.Errorf("indexing failed: %w", err)
		}
		if err := builder.CommitScanCache(indexer.Fingerprint(files)); err != nil {
			return err
		}
		rebuilt = true
	} else {
		idx, rebuilt, err = builder.Refresh(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return fmt.Errorf("indexing cancelled")
			}
			return fmt.Errorf("indexing failed: %w", err)
		}
	}

	if !quietFlag && !rebuilt {
		fmt.Printf("Index up to date (%d files)\n", len(idx.DetailByFilePath))
	}

	if !watchFlag {
		return nil
	}

	// Watch mode: publish the fresh snapshot and keep it current.
	handle := index.NewHandle(idx)
	rebuilder := indexer.NewRebuilder(builder, handle)

	debounce := time.Duration(cfg.Watch.DebounceMillis) * time.Millisecond
	watcher, err := indexer.NewWatcher(rootDir, rebuilder, builder.Discovery(), debounce)
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer watcher.Stop()

	watcher.Start(ctx)
	if !quietFlag {
		log.Println("Watching for changes (Ctrl+C to stop)...")
	}

	<-ctx.Done()
	return nil
}
