package main

import (
	"context"
	"fmt"
	"io"

	"github.com/Sternrassler/chute-client/internal/config"
	"github.com/Sternrassler/chute-client/pkg/asset"
	"github.com/Sternrassler/chute-client/pkg/client"
	"github.com/Sternrassler/chute-client/pkg/logging"
	"github.com/Sternrassler/chute-client/pkg/metrics"
	"github.com/Sternrassler/chute-client/pkg/receipt"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "unknown"
)

// app holds what the subcommands share. It is built in PersistentPreRunE.
type app struct {
	cfg      *config.Config
	client   *client.Client
	receipts receipt.Backend
	assets   *asset.Service
	logger   zerolog.Logger

	apiURL      string
	logLevel    string
	metricsAddr string

	stopMetrics context.CancelFunc
}

// run executes the CLI and releases what the command opened.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	a := &app{}
	defer a.close()

	rootCmd := newRootCmd(a)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	return rootCmd.ExecuteContext(ctx)
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "chute",
		Short: "Browse Chute albums and heart assets",
		Long: `chute lists album assets page by page, shows single assets and
toggles hearts. Heart receipts are kept in a local store (memory, redis or
pebble) so an asset can be unhearted later.

Configuration is read from CHUTE_* environment variables and an optional .env
file.`,
		Version:       fmt.Sprintf("%s (commit: %s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd.Context())
		},
	}

	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&a.apiURL, "api-url", "", "API base URL (overrides CHUTE_API_URL)")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error (overrides CHUTE_LOG_LEVEL)")
	rootCmd.PersistentFlags().StringVar(&a.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address while the command runs")

	rootCmd.AddCommand(
		newAssetsCmd(a),
		newAssetCmd(a),
		newHeartCmd(a),
		newWatchCmd(a),
	)

	return rootCmd
}

func (a *app) setup(ctx context.Context) error {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if a.apiURL != "" {
		cfg.APIURL = a.apiURL
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	a.cfg = cfg

	logging.Setup(cfg.Logging())
	a.logger = logging.NewLogger(logging.ComponentCLI)

	a.client, err = client.New(cfg.Client())
	if err != nil {
		return fmt.Errorf("create client: %w", err)
	}

	a.receipts, err = receipt.Open(ctx, cfg.Receipts())
	if err != nil {
		return fmt.Errorf("open receipt store: %w", err)
	}
	a.assets = asset.NewService(a.client, a.receipts)

	if a.metricsAddr != "" {
		metricsCtx, cancel := context.WithCancel(ctx)
		a.stopMetrics = cancel
		go func() {
			if err := metrics.Serve(metricsCtx, a.metricsAddr); err != nil {
				a.logger.Error().Err(err).Msg("Metrics server failed")
			}
		}()
	}

	a.logger.Debug().
		Str("api_url", cfg.APIURL).
		Str("receipts", a.receipts.Name()).
		Msg("Client ready")
	return nil
}

func (a *app) close() {
	if a.stopMetrics != nil {
		a.stopMetrics()
	}
	if a.receipts != nil {
		if err := a.receipts.Close(); err != nil {
			a.logger.Error().Err(err).Msg("Failed to close receipt store")
		}
		a.receipts = nil
	}
}
