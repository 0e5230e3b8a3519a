package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		validate func(t *testing.T, cfg *Config)
	}{
		{
			name:    "load default configuration",
			envVars: map[string]string{},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "development", cfg.AppEnv)
				assert.Equal(t, "8080", cfg.AppPort)
				assert.Equal(t, "", cfg.DatabaseURL)
				assert.Equal(t, 10, cfg.DBMaxConns)
				assert.Equal(t, "info", cfg.LogLevel)
				assert.Equal(t, int64(700), cfg.Provider)
				assert.Equal(t, int64(0), cfg.RangeStart)
				assert.Equal(t, int64(1000), cfg.RangeStop)
				assert.Equal(t, uint64(0), cfg.RandSeed)
				assert.False(t, cfg.DryRun)
				assert.False(t, cfg.ResetProvider)
				assert.Equal(t, "phonefixtures", cfg.MetricsNamespace)
				assert.True(t, cfg.IsDevelopment())
				assert.NoError(t, cfg.Validate())
			},
		},
		{
			name: "load custom seeding configuration",
			envVars: map[string]string{
				"PROVIDER":       "711",
				"RANGE_START":    "100",
				"RANGE_STOP":     "250",
				"RAND_SEED":      "42",
				"FIXTURE_FILE":   "/tmp/phones.ndjson.zst",
				"DRY_RUN":        "true",
				"RESET_PROVIDER": "true",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, int64(711), cfg.Provider)
				assert.Equal(t, int64(100), cfg.RangeStart)
				assert.Equal(t, int64(250), cfg.RangeStop)
				assert.Equal(t, uint64(42), cfg.RandSeed)
				assert.Equal(t, "/tmp/phones.ndjson.zst", cfg.FixtureFile)
				assert.True(t, cfg.DryRun)
				assert.True(t, cfg.ResetProvider)
			},
		},
		{
			name: "load production configuration",
			envVars: map[string]string{
				"APP_ENV":      "production",
				"APP_PORT":     "9090",
				"DATABASE_URL": "postgres://u:p@db:5432/phones",
				"DB_MAX_CONNS": "4",
				"LOG_LEVEL":    "warn",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.False(t, cfg.IsDevelopment())
				assert.Equal(t, "9090", cfg.AppPort)
				assert.Equal(t, "postgres://u:p@db:5432/phones", cfg.DatabaseURL)
				assert.Equal(t, 4, cfg.DBMaxConns)
				assert.Equal(t, "warn", cfg.LogLevel)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Run from an empty directory so no stray .env leaks in.
			t.Chdir(t.TempDir())
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			tt.validate(t, Load())
		})
	}
}

func TestLoad_Validate(t *testing.T) {
	tests := []struct {
		name    string
		envVars map[string]string
		wantErr string
		seed    uint64
	}{
		{name: "large seed", envVars: map[string]string{"RAND_SEED": "18446744073709551615"}, seed: 18446744073709551615},
		{name: "negative seed", envVars: map[string]string{"RAND_SEED": "-1"}, wantErr: "RAND_SEED must be a non-negative integer"},
		{name: "malformed seed", envVars: map[string]string{"RAND_SEED": "abc"}, wantErr: "RAND_SEED"},
		{name: "negative provider", envVars: map[string]string{"PROVIDER": "-700"}, wantErr: "PROVIDER must be non-negative"},
		{name: "negative range", envVars: map[string]string{"RANGE_START": "-5"}, wantErr: "RANGE_START and RANGE_STOP"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			cfg := Load()
			err := cfg.Validate()
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.seed, cfg.RandSeed)
		})
	}
}

func TestLoad_NegativeSeedStaysUnseeded(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("RAND_SEED", "-42")

	assert.Equal(t, uint64(0), Load().RandSeed)
}

func TestLoadDotEnv(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".env"), []byte("PROVIDER=733\n"), 0o600))

	// Register cleanup for the variable godotenv will set.
	t.Setenv("PROVIDER", "")
	require.NoError(t, os.Unsetenv("PROVIDER"))
	t.Chdir(nested)

	assert.Equal(t, int64(733), Load().Provider)
}
