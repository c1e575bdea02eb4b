package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestConfigFromEnv(t *testing.T) {
	testCases := []struct {
		name       string
		env        map[string]string
		assertions func(*testing.T, Config, error)
	}{
		{
			name: "defaults",
			env:  nil,
			assertions: func(t *testing.T, cfg Config, err error) {
				require.NoError(t, err)
				require.Equal(
					t,
					Config{
						CacheDuration:           10 * time.Second,
						EarlyRefreshWindow:      0,
						EarlyRefreshProbability: 0.1,
						RefreshInterval:         0,
						FetchDelay:              100 * time.Millisecond,
						SaveDelay:               100 * time.Millisecond,
						Concurrency:             100,
						MaxAttempts:             3,
						LogLevel:                "info",
					},
					cfg,
				)
			},
		},
		{
			name: "overrides",
			env: map[string]string{
				"DEMO_CACHE_DURATION": "1m",
				"DEMO_CONCURRENCY":    "5",
				"DEMO_MAX_ATTEMPTS":   "1",
				"DEMO_LOG_LEVEL":      "debug",
			},
			assertions: func(t *testing.T, cfg Config, err error) {
				require.NoError(t, err)
				require.Equal(t, time.Minute, cfg.CacheDuration)
				require.Equal(t, 5, cfg.Concurrency)
				require.Equal(t, 1, cfg.MaxAttempts)
				require.Equal(t, "debug", cfg.LogLevel)
			},
		},
		{
			name: "malformed duration",
			env: map[string]string{
				"DEMO_FETCH_DELAY": "soon",
			},
			assertions: func(t *testing.T, _ Config, err error) {
				require.ErrorContains(t, err, "error processing environment variables")
			},
		},
		{
			name: "early refresh window longer than the cache duration",
			env: map[string]string{
				"DEMO_CACHE_DURATION":       "1s",
				"DEMO_EARLY_REFRESH_WINDOW": "2s",
			},
			assertions: func(t *testing.T, _ Config, err error) {
				require.ErrorContains(t, err, "early refresh window must be between")
			},
		},
		{
			name: "early refresh probability out of range",
			env: map[string]string{
				"DEMO_EARLY_REFRESH_PROBABILITY": "1.5",
			},
			assertions: func(t *testing.T, _ Config, err error) {
				require.ErrorContains(t, err, "early refresh probability must be between 0 and 1")
			},
		},
		{
			name: "zero concurrency",
			env: map[string]string{
				"DEMO_CONCURRENCY": "0",
			},
			assertions: func(t *testing.T, _ Config, err error) {
				require.ErrorContains(t, err, "concurrency must be at least 1")
			},
		},
		{
			name: "zero max attempts",
			env: map[string]string{
				"DEMO_MAX_ATTEMPTS": "0",
			},
			assertions: func(t *testing.T, _ Config, err error) {
				require.ErrorContains(t, err, "max attempts must be at least 1")
			},
		},
		{
			name: "unknown log level",
			env: map[string]string{
				"DEMO_LOG_LEVEL": "loud",
			},
			assertions: func(t *testing.T, _ Config, err error) {
				require.ErrorContains(t, err, "invalid log level")
			},
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			for k, v := range testCase.env {
				t.Setenv(k, v)
			}
			cfg, err := ConfigFromEnv()
			testCase.assertions(t, cfg, err)
		})
	}
}
