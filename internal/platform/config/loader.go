package config

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// FromCommand loads configuration from cobra command flags and environment
// variables. Flags win over environment variables, which win over defaults.
func FromCommand(cmd *cobra.Command) (*Config, error) {
	v := viper.New()

	flags := []struct {
		name string
		key  string
	}{
		{"warn-days", "warn_days"},
		{"disable-days", "disable_days"},
		{"delete-days", "delete_days"},
		{"deletion-enabled", "deletion_enabled"},
		{"admin-prefixes", "admin_prefixes"},
		{"gateway-url", "gateway_url"},
		{"smtp-host", "smtp_host"},
		{"smtp-port", "smtp_port"},
		{"smtp-user", "smtp_user"},
		{"mail-from", "mail_from"},
		{"postgres-dsn", "postgres_dsn"},
		{"redis-url", "redis_url"},
		{"lock-tenant", "lock_tenant"},
		{"lock-ttl", "lock_ttl"},
		{"kafka-brokers", "kafka_brokers"},
		{"kafka-topic", "kafka_topic"},
		{"addr", "addr"},
		{"dry-run", "dry_run"},
		{"verbose", "verbose"},
	}

	for _, f := range flags {
		if flag := cmd.Flags().Lookup(f.name); flag != nil {
			_ = v.BindPFlag(f.key, flag)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	// Secrets come from the environment only, never from flags.
	_ = v.BindEnv("gateway_token", EnvPrefix+"_GATEWAY_TOKEN")
	_ = v.BindEnv("smtp_password", EnvPrefix+"_SMTP_PASSWORD")
	_ = v.BindEnv("admin_token", EnvPrefix+"_ADMIN_TOKEN")

	v.SetDefault("warn_days", DefaultWarnDays)
	v.SetDefault("disable_days", DefaultDisableDays)
	v.SetDefault("delete_days", DefaultDeleteDays)
	v.SetDefault("deletion_enabled", false)
	v.SetDefault("smtp_port", DefaultSMTPPort)
	v.SetDefault("kafka_topic", DefaultKafkaTopic)
	v.SetDefault("lock_tenant", "default")
	v.SetDefault("lock_ttl", DefaultLockTTL)
	v.SetDefault("addr", DefaultAddr)
	v.SetDefault("dry_run", false)
	v.SetDefault("verbose", false)

	result := &Config{}
	if err := v.Unmarshal(result); err != nil {
		return nil, err
	}
	result.LockTTL = v.GetDuration("lock_ttl")
	if result.LockTTL <= 0 {
		result.LockTTL = DefaultLockTTL
	}

	return result, nil
}
