package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Port)
	assert.Equal(t, ":5000", cfg.Addr())
	assert.Equal(t, BackendCSV, cfg.LedgerBackend)
	assert.Equal(t, "orders.csv", cfg.LedgerPath)
	assert.Equal(t, "order_captured", cfg.KafkaTopic)
	assert.False(t, cfg.KafkaEnabled())
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
}

func TestLoad_FromEnvAndDotenv(t *testing.T) {
	dir := t.TempDir()
	dotenv := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(dotenv, []byte("LEDGER_BACKEND=Memory\nKAFKA_TOPIC=from-file\n"), 0o600))
	// godotenv writes straight into the process environment.
	t.Cleanup(func() { _ = os.Unsetenv("LEDGER_BACKEND") })

	t.Setenv("PORT", "8080")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("KAFKA_TOPIC", "from-env")

	cfg, err := Load(dotenv)
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, BackendMemory, cfg.LedgerBackend)
	assert.Equal(t, "from-env", cfg.KafkaTopic)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.True(t, cfg.KafkaEnabled())
}

func TestValidate(t *testing.T) {
	cfg := Config{Port: 5000, LedgerBackend: "postgres"}
	assert.Error(t, cfg.Validate())

	cfg = Config{Port: 5000, LedgerBackend: "sqlite"}
	assert.Error(t, cfg.Validate())

	cfg = Config{Port: 0, LedgerBackend: "memory"}
	assert.Error(t, cfg.Validate())

	cfg = Config{Port: 5000, LedgerBackend: " CSV ", LedgerPath: "x.csv"}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, BackendCSV, cfg.LedgerBackend)
	assert.Equal(t, 5, cfg.DashboardPollSeconds)
}
