// Package config holds runtime configuration for the sweeper. Values come
// from cobra flags, PRIVSWEEP_* environment variables, and defaults, merged
// through viper so main stays lean.
package config

import (
	"time"

	dErrors "privsweep/pkg/domain-errors"
)

const (
	// EnvPrefix is the prefix for environment variable overrides,
	// e.g. PRIVSWEEP_DISABLE_DAYS.
	EnvPrefix = "PRIVSWEEP"

	DefaultAddr        = ":8080"
	DefaultWarnDays    = 90
	DefaultDisableDays = 120
	DefaultDeleteDays  = 180
	DefaultSMTPPort    = 25
	DefaultKafkaTopic  = "privsweep.audit"
	DefaultLockTTL     = 30 * time.Minute
)

// Config holds all configuration for the sweeper.
type Config struct {
	// Policy thresholds, in days of inactivity.
	WarnDays        int  `mapstructure:"warn_days"`
	DisableDays     int  `mapstructure:"disable_days"`
	DeleteDays      int  `mapstructure:"delete_days"`
	DeletionEnabled bool `mapstructure:"deletion_enabled"`

	// Owner resolution.
	AdminPrefixes []string `mapstructure:"admin_prefixes"`

	// Identity gateway.
	GatewayURL   string `mapstructure:"gateway_url"`
	GatewayToken string `mapstructure:"gateway_token"`

	// Notification relay.
	SMTPHost     string `mapstructure:"smtp_host"`
	SMTPPort     int    `mapstructure:"smtp_port"`
	SMTPUser     string `mapstructure:"smtp_user"`
	SMTPPassword string `mapstructure:"smtp_password"`
	MailFrom     string `mapstructure:"mail_from"`

	// Storage and coordination. All optional: absent Postgres falls back to
	// the in-memory run store, absent Redis skips the run lock, absent Kafka
	// keeps the audit trail local.
	PostgresDSN  string        `mapstructure:"postgres_dsn"`
	RedisURL     string        `mapstructure:"redis_url"`
	LockTenant   string        `mapstructure:"lock_tenant"`
	LockTTL      time.Duration `mapstructure:"-"`
	KafkaBrokers []string      `mapstructure:"kafka_brokers"`
	KafkaTopic   string        `mapstructure:"kafka_topic"`

	// HTTP admin surface (serve mode). An empty AdminToken leaves the API
	// open, for deployments that gate it at the network layer.
	Addr       string `mapstructure:"addr"`
	AdminToken string `mapstructure:"admin_token"`

	// Behavior.
	DryRun  bool `mapstructure:"dry_run"`
	Verbose bool `mapstructure:"verbose"`
}

// Validate checks the parts of the configuration that every mode needs.
// Threshold ordering is enforced again by the policy engine; failing early
// here gives the operator a message before anything connects.
func (c *Config) Validate() error {
	if c.WarnDays <= 0 {
		return dErrors.New(dErrors.CodeValidation, "warn_days must be positive")
	}
	if c.DisableDays < c.WarnDays {
		return dErrors.New(dErrors.CodeValidation, "disable_days must be at least warn_days")
	}
	if c.DeleteDays < c.DisableDays {
		return dErrors.New(dErrors.CodeValidation, "delete_days must be at least disable_days")
	}
	if c.MailFrom == "" {
		return dErrors.New(dErrors.CodeValidation, "mail_from is required")
	}
	if c.SMTPHost == "" {
		return dErrors.New(dErrors.CodeValidation, "smtp_host is required")
	}
	if len(c.KafkaBrokers) > 0 && c.KafkaTopic == "" {
		return dErrors.New(dErrors.CodeValidation, "kafka_topic is required when brokers are set")
	}
	return nil
}
