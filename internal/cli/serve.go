package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/storeman/graph-uml/internal/server"
	"github.com/storeman/graph-uml/pkg/cache"
	"github.com/storeman/graph-uml/pkg/pipeline"
	"github.com/storeman/graph-uml/pkg/store"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr    string // listen address
	redis   string // redis address for the artifact cache; empty uses the file cache
	mongo   string // mongodb uri for the diagram store; empty uses memory
	mongoDB string // mongodb database name
}

// newServeCmd creates the serve command, which runs the HTTP rendering
// server until the process is interrupted.
//
// Backends:
//   - artifact cache: redis with --redis, otherwise the local file cache
//   - diagram store: mongodb with --mongo, otherwise in-memory
func newServeCmd() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP rendering server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&opts.redis, "redis", "", "redis address for the artifact cache (e.g. localhost:6379)")
	cmd.Flags().StringVar(&opts.mongo, "mongo", "", "mongodb uri for the diagram store (e.g. mongodb://localhost:27017)")
	cmd.Flags().StringVar(&opts.mongoDB, "mongo-db", "umlgraph", "mongodb database name")

	return cmd
}

// runServe assembles the cache and store backends, then serves until
// ctx is cancelled and shuts down gracefully.
func runServe(ctx context.Context, opts *serveOpts) error {
	logger := loggerFromContext(ctx)

	artifacts, err := serveCache(ctx, opts)
	if err != nil {
		return err
	}
	defer artifacts.Close()

	diagrams, err := serveStore(ctx, opts)
	if err != nil {
		return err
	}
	defer diagrams.Close(context.Background())

	srv := &http.Server{
		Addr:         opts.addr,
		Handler:      server.New(pipeline.NewRunner(artifacts, logger), diagrams, logger).Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 2 * time.Minute, // PNG layout of large graphs is slow
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", opts.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return ctx.Err()
}

// serveCache picks the artifact cache backend: redis when configured,
// otherwise the local file cache, degrading to no caching if neither is
// available.
func serveCache(ctx context.Context, opts *serveOpts) (cache.Cache, error) {
	logger := loggerFromContext(ctx)

	if opts.redis != "" {
		c, err := cache.NewRedisCache(ctx, opts.redis)
		if err != nil {
			return nil, err
		}
		logger.Info("artifact cache: redis", "addr", opts.redis)
		return c, nil
	}

	dir, err := cacheDir()
	if err != nil {
		logger.Warn("artifact cache disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	c, err := cache.NewFileCache(dir)
	if err != nil {
		logger.Warn("artifact cache disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	logger.Info("artifact cache: file", "dir", dir)
	return c, nil
}

// serveStore picks the diagram store backend: mongodb when configured,
// otherwise in-memory.
func serveStore(ctx context.Context, opts *serveOpts) (store.Store, error) {
	logger := loggerFromContext(ctx)

	if opts.mongo != "" {
		s, err := store.NewMongoStore(ctx, opts.mongo, opts.mongoDB)
		if err != nil {
			return nil, err
		}
		logger.Info("diagram store: mongodb", "db", opts.mongoDB)
		return s, nil
	}

	logger.Info("diagram store: memory")
	return store.NewMemoryStore(), nil
}
