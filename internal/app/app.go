// Package app wires configuration into the concrete sweep stack and exposes
// one operation, Sweep, shared by the CLI run mode and the HTTP admin
// surface.
package app

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"

	"privsweep/internal/audit"
	"privsweep/internal/gateway"
	"privsweep/internal/notify"
	"privsweep/internal/platform/config"
	platformredis "privsweep/internal/platform/redis"
	"privsweep/internal/report/store"
	"privsweep/internal/runlock"
	"privsweep/internal/sweep"
	"privsweep/internal/sweep/metrics"
	"privsweep/internal/sweep/models"
	dErrors "privsweep/pkg/domain-errors"
	"privsweep/pkg/strutil"
)

// App holds the wired dependencies for sweep runs.
type App struct {
	cfg      *config.Config
	logger   *slog.Logger
	store    store.Store
	lock     *runlock.Lock
	auditPub sweepAuditPublisher
	metrics  *metrics.Metrics

	gateway  *gateway.Client
	notifier *notify.SMTPNotifier

	db    *sql.DB
	redis *platformredis.Client
	kafka *audit.KafkaPublisher
}

type sweepAuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// New builds the application from configuration. Optional backends (Redis,
// Postgres, Kafka) degrade to local equivalents when unconfigured.
func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	if cfg == nil {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	a := &App{cfg: cfg, logger: logger, metrics: metrics.New()}

	gw, err := gateway.New(cfg.GatewayURL, cfg.GatewayToken)
	if err != nil {
		return nil, err
	}
	a.gateway = gw

	smtpOpts := []notify.SMTPOption{}
	if cfg.SMTPUser != "" {
		smtpOpts = append(smtpOpts, notify.WithAuth(cfg.SMTPUser, cfg.SMTPPassword))
	}
	notifier, err := notify.NewSMTPNotifier(cfg.SMTPHost, cfg.SMTPPort, cfg.MailFrom, smtpOpts...)
	if err != nil {
		return nil, err
	}
	a.notifier = notifier

	if cfg.RedisURL != "" {
		redisClient, err := platformredis.New(cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		a.redis = redisClient
		a.lock, err = runlock.New(redisClient.Client, cfg.LockTTL)
		if err != nil {
			return nil, err
		}
	}

	if cfg.PostgresDSN != "" {
		db, err := sql.Open("postgres", cfg.PostgresDSN)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "open postgres")
		}
		if err := db.Ping(); err != nil {
			db.Close()
			return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "ping postgres")
		}
		a.db = db
		a.store = store.NewPostgres(db)
	} else {
		a.store = store.NewInMemoryStore()
	}

	if brokers := strutil.DedupeAndTrimLower(cfg.KafkaBrokers); len(brokers) > 0 {
		kafkaPub, err := audit.NewKafkaPublisher(brokers, cfg.KafkaTopic)
		if err != nil {
			return nil, err
		}
		a.kafka = kafkaPub
		a.auditPub = kafkaPub
	} else {
		a.auditPub = audit.NewPublisher(audit.NewInMemoryStore())
	}

	return a, nil
}

// Store exposes run history for the HTTP layer.
func (a *App) Store() store.Store {
	return a.store
}

// Sweep evaluates one batch. It takes the per-tenant run lock when Redis is
// configured, runs the engine, and persists the result regardless of run
// outcome so failed runs stay reviewable.
func (a *App) Sweep(ctx context.Context, accounts []models.AccountRecord, dryRun bool) (*models.RunResult, error) {
	if a.lock != nil {
		leaseID := uuid.NewString()
		if err := a.lock.Acquire(ctx, a.cfg.LockTenant, leaseID); err != nil {
			return nil, err
		}
		defer func() {
			if err := a.lock.Release(context.WithoutCancel(ctx), a.cfg.LockTenant, leaseID); err != nil {
				a.logger.Warn("release run lock", "error", err)
			}
		}()
	}

	runner, err := a.buildRunner(dryRun)
	if err != nil {
		return nil, err
	}

	result := runner.Run(ctx, accounts)

	if err := a.store.Save(context.WithoutCancel(ctx), result); err != nil {
		a.logger.Warn("persist run result", "run_id", result.RunID, "error", err)
	}
	return result, nil
}

func (a *App) buildRunner(dryRun bool) (*sweep.Runner, error) {
	cloud := a.gateway.CloudDirectory()
	snapshots, err := sweep.NewSnapshotResolver(a.gateway, cloud)
	if err != nil {
		return nil, err
	}
	activity := sweep.NewActivityCalculator()
	owners, err := sweep.NewOwnerResolver(a.gateway, cloud, a.cfg.AdminPrefixes,
		sweep.WithOwnerLogger(a.logger))
	if err != nil {
		return nil, err
	}

	policy := sweep.Policy{
		WarnDays:        a.cfg.WarnDays,
		DisableDays:     a.cfg.DisableDays,
		DeleteDays:      a.cfg.DeleteDays,
		DeletionEnabled: a.cfg.DeletionEnabled,
	}

	return sweep.NewRunner(snapshots, activity, owners, policy, a.gateway, a.notifier,
		sweep.WithLogger(a.logger),
		sweep.WithSession(a.notifier),
		sweep.WithAuditPublisher(a.auditPub),
		sweep.WithMetrics(a.metrics),
		sweep.WithDryRun(dryRun),
	)
}

// Close releases long-lived backends.
func (a *App) Close() {
	if a.db != nil {
		a.db.Close()
	}
	if a.redis != nil {
		a.redis.Close()
	}
	if a.kafka != nil {
		a.kafka.Close()
	}
}
