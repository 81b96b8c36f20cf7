package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"

	"privsweep/internal/app"
	"privsweep/internal/input"
	"privsweep/internal/platform/config"
	"privsweep/internal/platform/httpserver"
	"privsweep/internal/platform/logger"
	"privsweep/internal/sweep/handler"
)

var (
	// Version is set at build time
	version = "dev"
)

var rootCmd = &cobra.Command{
	Use:   "sweeper",
	Short: "Privileged account inactivity sweeper",
	Long: `sweeper evaluates exported privileged accounts against inactivity
thresholds and drives the warn/disable/delete remediation ladder, notifying
account owners through the configured mail relay.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Sweep one exported batch",
	Long: `Run one sweep over an identity export CSV. The full run report is
written as JSON, and accounts the run could not process can be written back
out as a CSV ready for replay.`,
	RunE: runSweep,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the HTTP admin API",
	Long:  "Expose sweep runs and run history over HTTP, with Prometheus metrics.",
	RunE:  runServe,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.Int("warn-days", config.DefaultWarnDays, "Inactivity days before warning")
	pf.Int("disable-days", config.DefaultDisableDays, "Inactivity days before disabling")
	pf.Int("delete-days", config.DefaultDeleteDays, "Inactivity days before deletion")
	pf.Bool("deletion-enabled", false, "Allow the delete tier to delete instead of disable")
	pf.StringSlice("admin-prefixes", nil, "Privileged account prefixes for owner derivation")
	pf.String("gateway-url", "", "Identity gateway base URL")
	pf.String("smtp-host", "", "SMTP relay host")
	pf.Int("smtp-port", config.DefaultSMTPPort, "SMTP relay port")
	pf.String("smtp-user", "", "SMTP username (password via PRIVSWEEP_SMTP_PASSWORD)")
	pf.String("mail-from", "", "Notification sender address")
	pf.String("postgres-dsn", "", "Postgres DSN for run history (optional)")
	pf.String("redis-url", "", "Redis URL for the run lock (optional)")
	pf.String("lock-tenant", "default", "Tenant name for the run lock")
	pf.Duration("lock-ttl", config.DefaultLockTTL, "Run lock TTL")
	pf.StringSlice("kafka-brokers", nil, "Kafka brokers for the audit trail (optional)")
	pf.String("kafka-topic", config.DefaultKafkaTopic, "Kafka topic for audit events")
	pf.Bool("dry-run", false, "Evaluate without notifying or remediating")
	pf.Bool("verbose", false, "Enable debug logging")

	runCmd.Flags().String("input", "", "Identity export CSV to sweep")
	runCmd.Flags().String("output", "", "Write the JSON run report here instead of stdout")
	runCmd.Flags().String("unprocessed-out", "", "Write unprocessed accounts as CSV for replay")
	_ = runCmd.MarkFlagRequired("input")

	serveCmd.Flags().String("addr", config.DefaultAddr, "HTTP listen address")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)
}

func runSweep(cmd *cobra.Command, _ []string) error {
	cfg, err := config.FromCommand(cmd)
	if err != nil {
		return err
	}
	log := logger.New(cfg.Verbose)

	inputPath, _ := cmd.Flags().GetString("input")
	f, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	accounts, err := input.Load(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("load input: %w", err)
	}

	application, err := app.New(cfg, log)
	if err != nil {
		return err
	}
	defer application.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := application.Sweep(ctx, accounts, cfg.DryRun)
	if err != nil {
		return err
	}

	out := os.Stdout
	if path, _ := cmd.Flags().GetString("output"); path != "" {
		out, err = os.Create(path)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer out.Close()
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	if path, _ := cmd.Flags().GetString("unprocessed-out"); path != "" && len(result.Unprocessed) > 0 {
		uf, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create unprocessed output: %w", err)
		}
		defer uf.Close()
		if err := input.Write(uf, result.Unprocessed); err != nil {
			return fmt.Errorf("write unprocessed output: %w", err)
		}
		log.Info("wrote unprocessed accounts", "path", path, "count", len(result.Unprocessed))
	}

	if !result.Success {
		return fmt.Errorf("run %s aborted: %s", result.RunID, result.Error)
	}
	return nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.FromCommand(cmd)
	if err != nil {
		return err
	}
	log := logger.New(cfg.Verbose)

	application, err := app.New(cfg, log)
	if err != nil {
		return err
	}
	defer application.Close()

	var opts []handler.Option
	if cfg.AdminToken != "" {
		opts = append(opts, handler.WithAdminToken(cfg.AdminToken))
	}
	h, err := handler.New(application, application.Store(), log, opts...)
	if err != nil {
		return err
	}

	router := chi.NewRouter()
	h.Register(router)
	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting sweeper admin API", "addr", cfg.Addr)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
