package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/deckhand-ai/deckhand/internal"
	"github.com/deckhand-ai/deckhand/internal/config"
	"github.com/deckhand-ai/deckhand/internal/hostpath"
	"github.com/deckhand-ai/deckhand/internal/tools"
	"github.com/deckhand-ai/deckhand/internal/upstream"
	"github.com/deckhand-ai/deckhand/mcp"
)

var rootCmd = &cobra.Command{
	Use:   "deckhand",
	Short: "An MCP stdio server for directory, weather, and group lookups",
	Long: `deckhand is an MCP server over stdio. It processes JSON-RPC requests from
stdin one line at a time and writes one response line per request to stdout.

Its tools list local directories, report demo-mode weather, and query the
configured group and repository APIs. Configuration comes from environment
variables, optionally layered over a YAML file given with --config.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		g, ctx := errgroup.WithContext(ctx)

		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		if !verbose {
			logger = slog.New(slog.NewTextHandler(io.Discard, nil))
		}
		logger = logger.With("session_id", uuid.NewString())

		g.Go(func() error {
			cfg, err := config.Load(ctx, configPath)
			if err != nil {
				return fmt.Errorf("error loading configuration: %w", err)
			}

			client := newHTTPClient(cfg.API.Timeout, logger)

			clientOpts := []upstream.ClientOption{
				upstream.WithHTTPClient(client),
				upstream.WithLogger(logger),
			}
			if rps > 0 {
				clientOpts = append(clientOpts, upstream.WithLimiter(rate.NewLimiter(rate.Limit(rps), 1)))
			}

			catalog := tools.Catalog(tools.Deps{
				Resolver: hostpath.Resolver{
					ContainerMode: cfg.Paths.ContainerMode,
					MountRoot:     cfg.Paths.MountRoot,
				},
				Groups: upstream.NewGroupsClient(cfg.API.Endpoint, cfg.API.BearerToken, clientOpts...),
				Teams:  upstream.NewTeamsClient(cfg.GitHub.Endpoint, cfg.GitHub.BearerToken, cfg.GitHub.Org, clientOpts...),
			})

			server, err := mcp.NewServer(
				mcp.WithServerInfo("deckhand", version),
				mcp.WithLogger(logger),
				mcp.WithTools(catalog...),
			)
			if err != nil {
				return fmt.Errorf("error creating server: %w", err)
			}

			logger.Info("server ready", "tools", len(catalog), "container_mode", cfg.Paths.ContainerMode)

			transport := mcp.NewStdioTransport(os.Stdin, os.Stdout, os.Stderr)
			return transport.Run(ctx, server.Handle)
		})

		return g.Wait()
	},
}

// newHTTPClient builds the shared outbound HTTP client. Calls are never
// retried: a failed request must surface its real status to the caller
// instead of being masked by a retry loop.
func newHTTPClient(timeout time.Duration, logger *slog.Logger) *http.Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0
	retryClient.CheckRetry = func(_ context.Context, _ *http.Response, _ error) (bool, error) {
		return false, nil
	}
	retryClient.HTTPClient.Timeout = timeout
	retryClient.Logger = logger

	client := retryClient.StandardClient()
	client.Transport = &internal.HeaderTransport{
		Base: client.Transport,
		Headers: http.Header{
			"User-Agent": []string{"deckhand/" + version},
			"Accept":     []string{"application/json"},
		},
	}
	return client
}

var (
	configPath string
	verbose    bool
	rps        int

	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", "", "Path to an optional YAML config file")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging to stderr")
	rootCmd.Flags().IntVarP(&rps, "rps", "r", 0, "Maximum upstream requests per second (0 for no limit)")

	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built at: %s)", version, commit, date)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
