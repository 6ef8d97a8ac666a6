package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		JWT: JWTConfig{Secret: "secret"},
		Auth: AuthConfig{
			OTPDigits:     4,
			OTPTTL:        5 * time.Minute,
			NotifyTimeout: 10 * time.Second,
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "Valid", mutate: func(*Config) {}},
		{name: "Missing secret", mutate: func(c *Config) { c.JWT.Secret = "" }, wantErr: "jwt.secret"},
		{name: "Zero OTP digits", mutate: func(c *Config) { c.Auth.OTPDigits = 0 }, wantErr: "auth.otp_digits"},
		{name: "Too many OTP digits", mutate: func(c *Config) { c.Auth.OTPDigits = 10 }, wantErr: "auth.otp_digits"},
		{name: "Zero OTP TTL", mutate: func(c *Config) { c.Auth.OTPTTL = 0 }, wantErr: "auth.otp_ttl"},
		{name: "Zero notify timeout", mutate: func(c *Config) { c.Auth.NotifyTimeout = 0 }, wantErr: "auth.notify_timeout"},
		{name: "Negative notify timeout", mutate: func(c *Config) { c.Auth.NotifyTimeout = -time.Second }, wantErr: "auth.notify_timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, SplitList(" a@example.com, ,b@example.com,"))
	assert.Empty(t, SplitList(""))
}
