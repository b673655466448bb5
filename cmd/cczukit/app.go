package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/CCZU-OSSA/cczukit/internal/config"
	"github.com/CCZU-OSSA/cczukit/internal/database"
	"github.com/CCZU-OSSA/cczukit/internal/log"
	"github.com/CCZU-OSSA/cczukit/internal/portal"
	"github.com/CCZU-OSSA/cczukit/internal/report"
	"github.com/CCZU-OSSA/cczukit/internal/sso"
	"github.com/CCZU-OSSA/cczukit/internal/transport"
)

// app is the wired set of components a command works with.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	store  *database.Store
	portal *portal.Client
}

// stringFlag returns the flag value, or "" when cmd has no such flag.
func stringFlag(cmd *cobra.Command, name string) string {
	if f := cmd.Flags().Lookup(name); f != nil {
		return f.Value.String()
	}
	return ""
}

// boolFlag returns the flag value, or false when cmd has no such flag.
func boolFlag(cmd *cobra.Command, name string) bool {
	f := cmd.Flags().Lookup(name)
	return f != nil && f.Value.String() == "true"
}

// buildConfig loads the config file and environment, then applies flags.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(stringFlag(cmd, "config"), os.LookupEnv)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, fmt.Errorf("%w: %s", err, stringFlag(cmd, "config"))
		}
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if v := stringFlag(cmd, "username"); v != "" {
		cfg.Username = v
	}
	if v := stringFlag(cmd, "password"); v != "" {
		cfg.Password = v
	}
	cfg.Verbose = boolFlag(cmd, "verbose")
	cfg.NoCache = boolFlag(cmd, "no-cache")
	cfg.JSONReport = boolFlag(cmd, "json")
	cfg.MarkdownReport = boolFlag(cmd, "markdown")
	cfg.ReportFile = stringFlag(cmd, "output")

	return cfg, nil
}

// setupLogger creates the redacting stderr logger.
func setupLogger(verbose bool) *slog.Logger {
	return log.NewSecureLogger(os.Stderr, verbose)
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext(logger *slog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			logger.Info("received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()

	return ctx, cancel
}

// openStore opens the cache database unless caching is disabled.
func openStore(cfg *config.Config) (*database.Store, error) {
	if cfg.NoCache {
		return nil, nil
	}
	store, err := database.Open(cfg.CacheDir, database.DefaultOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}
	return store, nil
}

// newApp wires transport, SSO and portal clients from cfg. prefetch
// controls the background training plan load after login.
func newApp(cfg *config.Config, logger *slog.Logger, prefetch bool) (*app, error) {
	store, err := openStore(cfg)
	if err != nil {
		return nil, err
	}

	client, err := transport.NewClient(
		transport.WithTimeout(cfg.Timeout),
		transport.WithMaxBodySize(cfg.MaxBodySize),
		transport.WithProxy(cfg.Proxy),
		transport.WithDefaultHeaders(cfg.HTTPHeaders()),
		transport.WithLogger(logger),
	)
	if err != nil {
		if store != nil {
			_ = store.Close()
		}
		return nil, fmt.Errorf("failed to create HTTP client: %w", err)
	}

	ssoOpts := []sso.Option{
		sso.WithSSOURL(cfg.Endpoints.SSOURL),
		sso.WithVPNURL(cfg.Endpoints.VPNURL),
		sso.WithLogger(logger),
	}
	portalOpts := []portal.Option{
		portal.WithBaseURL(cfg.Endpoints.AppBaseURL),
		portal.WithLogger(logger),
		portal.WithPrefetch(prefetch),
	}
	if store != nil {
		ssoOpts = append(ssoOpts, sso.WithPropertyStore(store))
		portalOpts = append(portalOpts, portal.WithCache(store))
	}

	auth := sso.NewAuthenticator(client, ssoOpts...)
	return &app{
		cfg:    cfg,
		logger: logger,
		store:  store,
		portal: portal.NewClient(client, auth, portalOpts...),
	}, nil
}

// Close waits for background work and closes the cache.
func (a *app) Close() error {
	err := a.portal.Close()
	if a.store != nil {
		err = errors.Join(err, a.store.Close())
	}
	return err
}

// login authenticates with the configured account.
func (a *app) login(ctx context.Context) error {
	if _, err := a.portal.Authenticate(ctx, a.cfg.Credential()); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	return nil
}

// prepare is the common start of every command that talks to the portal:
// config, validation, logger, signal context and wiring.
func prepare(cmd *cobra.Command, prefetch bool) (context.Context, context.CancelFunc, *app, error) {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := cfg.ValidateWithCredentials(); err != nil {
		return nil, nil, nil, fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cfg.Verbose)
	slog.SetDefault(logger)

	a, err := newApp(cfg, logger, prefetch)
	if err != nil {
		return nil, nil, nil, err
	}

	ctx, cancel := signalContext(logger)
	if err := a.login(ctx); err != nil {
		cancel()
		_ = a.Close()
		return nil, nil, nil, err
	}
	return ctx, cancel, a, nil
}

// addReportFlags registers the output format flags.
func addReportFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")
}

// openOutput returns the report destination and a function closing it.
func openOutput(cfg *config.Config, stdout io.Writer) (io.Writer, func() error, error) {
	if cfg.ReportFile == "" {
		return stdout, func() error { return nil }, nil
	}

	dir := filepath.Dir(cfg.ReportFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	// Reports hold personal data, so only the owner may read them.
	f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, f.Close, nil
}

// newReportWriter picks the writer for the configured format.
func newReportWriter(cfg *config.Config, output io.Writer) report.Writer {
	switch {
	case cfg.JSONReport:
		return report.NewJSONWriter(output, report.WithPrettyPrint(), report.WithEnvelope(getVersion()))
	case cfg.MarkdownReport:
		return report.NewMarkdownWriter(output)
	default:
		return report.NewSimpleWriter(output)
	}
}

// writeReport opens the destination, runs write and closes it again.
func writeReport(cmd *cobra.Command, cfg *config.Config, write func(report.Writer) (int, error)) error {
	output, closeOutput, err := openOutput(cfg, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	_, err = write(newReportWriter(cfg, output))
	return errors.Join(err, closeOutput())
}
