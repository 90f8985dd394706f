package config

import (
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "/sys", cfg.SysfsRoot)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, "flat", cfg.Layout)
	assert.Equal(t, "error", cfg.LogLevel)
	assert.Equal(t, 1, cfg.Workers)
	assert.True(t, cfg.SortKeys)
	assert.False(t, cfg.Expanders)

	cfg.Workers = 8
	assert.Equal(t, 1, Default().Workers, "Default returns a copy")
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		Description string
		Modify      func(*Config)
		WantErr     bool
	}{
		{Description: "defaults", Modify: func(*Config) {}},
		{Description: "yaml nested", Modify: func(c *Config) { c.Format = "yaml"; c.Layout = "nested" }},
		{Description: "table with workers", Modify: func(c *Config) { c.Format = "table"; c.Workers = 16 }},
		{Description: "debug level", Modify: func(c *Config) { c.LogLevel = "debug" }},
		{Description: "empty root", Modify: func(c *Config) { c.SysfsRoot = "" }, WantErr: true},
		{Description: "unknown format", Modify: func(c *Config) { c.Format = "xml" }, WantErr: true},
		{Description: "unknown layout", Modify: func(c *Config) { c.Layout = "tree" }, WantErr: true},
		{Description: "unknown level", Modify: func(c *Config) { c.LogLevel = "loud" }, WantErr: true},
		{Description: "zero workers", Modify: func(c *Config) { c.Workers = 0 }, WantErr: true},
		{Description: "too many workers", Modify: func(c *Config) { c.Workers = maxWorkers + 1 }, WantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.Description, func(t *testing.T) {
			cfg := Default()
			tt.Modify(&cfg)
			err := cfg.Validate()
			if tt.WantErr {
				assert.ErrorIs(t, err, ErrInvalid)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_DiscoveryOptions(t *testing.T) {
	logger, _ := test.NewNullLogger()
	cfg := Default()
	cfg.SysfsRoot = "/tmp/sys"
	cfg.Expanders = true
	cfg.Workers = 4

	opts := cfg.DiscoveryOptions(logger)
	assert.Equal(t, "/tmp/sys", opts.Root)
	assert.True(t, opts.Expanders)
	assert.Equal(t, 4, opts.Workers)
	assert.Same(t, logger, opts.Log)
	assert.Nil(t, opts.Hostname)
}
