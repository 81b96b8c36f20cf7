package config

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "privsweep/pkg/domain-errors"
)

func validConfig() *Config {
	return &Config{
		WarnDays:    90,
		DisableDays: 120,
		DeleteDays:  180,
		SMTPHost:    "relay.corp.example",
		MailFrom:    "iam-sweeper@corp.example",
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{
			name:    "zero warn days",
			mutate:  func(c *Config) { c.WarnDays = 0 },
			wantErr: "warn_days",
		},
		{
			name:    "disable below warn",
			mutate:  func(c *Config) { c.DisableDays = 30 },
			wantErr: "disable_days",
		},
		{
			name:    "delete below disable",
			mutate:  func(c *Config) { c.DeleteDays = 100 },
			wantErr: "delete_days",
		},
		{
			name:    "missing mail from",
			mutate:  func(c *Config) { c.MailFrom = "" },
			wantErr: "mail_from",
		},
		{
			name:    "missing smtp host",
			mutate:  func(c *Config) { c.SMTPHost = "" },
			wantErr: "smtp_host",
		},
		{
			name:    "brokers without topic",
			mutate:  func(c *Config) { c.KafkaBrokers = []string{"kafka:9092"}; c.KafkaTopic = "" },
			wantErr: "kafka_topic",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, dErrors.CodeValidation, dErrors.CodeOf(err))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestFromCommand(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cmd := newTestCommand()

		cfg, err := FromCommand(cmd)
		require.NoError(t, err)

		assert.Equal(t, DefaultWarnDays, cfg.WarnDays)
		assert.Equal(t, DefaultDisableDays, cfg.DisableDays)
		assert.Equal(t, DefaultDeleteDays, cfg.DeleteDays)
		assert.False(t, cfg.DeletionEnabled)
		assert.Equal(t, DefaultAddr, cfg.Addr)
		assert.Equal(t, DefaultLockTTL, cfg.LockTTL)
	})

	t.Run("flags override defaults", func(t *testing.T) {
		cmd := newTestCommand()
		require.NoError(t, cmd.Flags().Set("disable-days", "150"))
		require.NoError(t, cmd.Flags().Set("admin-prefixes", "admin,svc"))
		require.NoError(t, cmd.Flags().Set("dry-run", "true"))

		cfg, err := FromCommand(cmd)
		require.NoError(t, err)

		assert.Equal(t, 150, cfg.DisableDays)
		assert.Equal(t, []string{"admin", "svc"}, cfg.AdminPrefixes)
		assert.True(t, cfg.DryRun)
	})

	t.Run("secrets come from environment", func(t *testing.T) {
		t.Setenv(EnvPrefix+"_GATEWAY_TOKEN", "tok-1")
		t.Setenv(EnvPrefix+"_SMTP_PASSWORD", "pw-1")

		cfg, err := FromCommand(newTestCommand())
		require.NoError(t, err)

		assert.Equal(t, "tok-1", cfg.GatewayToken)
		assert.Equal(t, "pw-1", cfg.SMTPPassword)
	})
}

func newTestCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().Int("warn-days", DefaultWarnDays, "")
	cmd.Flags().Int("disable-days", DefaultDisableDays, "")
	cmd.Flags().Int("delete-days", DefaultDeleteDays, "")
	cmd.Flags().Bool("deletion-enabled", false, "")
	cmd.Flags().StringSlice("admin-prefixes", nil, "")
	cmd.Flags().String("addr", DefaultAddr, "")
	cmd.Flags().Bool("dry-run", false, "")
	return cmd
}
