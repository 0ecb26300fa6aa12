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

	"github.com/srcjump/srcjump/internal/api"
	"github.com/srcjump/srcjump/internal/index"
	"github.com/srcjump/srcjump/internal/indexer"
	"github.com/srcjump/srcjump/internal/launch"
	"github.com/srcjump/srcjump/internal/search"
)

var (
	serveHost string
	servePort int
)

// serveCmd represents the serve command.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the local resolution service",
	Long: `Serve starts the HTTP resolution service consumed by the browser-side
overlay. It loads the persisted index (building it first if missing),
watches the workspace for changes, and keeps the served snapshot fresh
through debounced background rebuilds.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Host to bind to (overrides config)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rootDir, cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if serveHost != "" {
		cfg.Server.Host = serveHost
	}
	if servePort != 0 {
		cfg.Server.Port = servePort
	}

	builder, err := buildIndexer(rootDir, cfg, indexer.NoopProgress())
	if err != nil {
		return err
	}

	// Serve the persisted snapshot immediately; build one when missing.
	idx, rebuilt, err := builder.Refresh(ctx)
	if err != nil {
		return fmt.Errorf("failed to prepare index: %w", err)
	}
	if rebuilt {
		log.Printf("Index built: %d files", len(idx.DetailByFilePath))
	} else {
		log.Printf("Index loaded: %d files", len(idx.DetailByFilePath))
	}

	handle := index.NewHandle(idx)
	rebuilder := indexer.NewRebuilder(builder, handle)

	debounce := time.Duration(cfg.Watch.DebounceMillis) * time.Millisecond
	watcher, err := indexer.NewWatcher(rootDir, rebuilder, builder.Discovery(), debounce)
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer watcher.Stop()
	watcher.Start(ctx)

	ranker, err := search.NewRanker(cfg.Scoring)
	if err != nil {
		return fmt.Errorf("failed to create search ranker: %w", err)
	}
	defer ranker.Close()

	dispatcher := launch.NewDispatcher(cfg.Editor, nil)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := api.NewServer(addr, handle, ranker, dispatcher)

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		fmt.Printf("srcjump resolution service listening on http://%s\n", addr)
		fmt.Println("Press Ctrl+C to stop")
		serverErr <- server.Start()
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return err
		}
	case sig := <-shutdown:
		log.Printf("Received %s, shutting down", sig)
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return err
		}
	}

	return nil
}
