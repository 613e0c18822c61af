package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/SscSPs/books_ledger/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("PGSQL_URL", "postgres://ledger@localhost/ledger")
	t.Setenv("PORT", "9090")
	t.Setenv("BACKFILL_LOCK_TTL", "90s")
	t.Setenv("GST_FILING_FREQUENCY", "monthly")
	t.Setenv("RATE_LIMIT", "10-S")
	t.Setenv("POSTING_MAP_FILE", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "postgres://ledger@localhost/ledger", cfg.DatabaseURL)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 90*time.Second, cfg.BackfillLockTTL)
	assert.Equal(t, domain.FilingMonthly, cfg.GSTFilingFrequency)
	assert.Equal(t, "10-S", cfg.RateLimit)
	assert.Equal(t, "1050", cfg.PostingMap.Bank())
}

func TestLoadConfigFallsBackOnBadValues(t *testing.T) {
	t.Setenv("BACKFILL_LOCK_TTL", "soon")
	t.Setenv("GST_FILING_FREQUENCY", "weekly")
	t.Setenv("POSTING_MAP_FILE", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute, cfg.BackfillLockTTL)
	assert.Equal(t, domain.FilingQuarterly, cfg.GSTFilingFrequency)
}

func TestLoadConfigPostingMapFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "posting.yaml")
	require.NoError(t, os.WriteFile(path, []byte("bank: \"1000\"\n"), 0o600))
	t.Setenv("POSTING_MAP_FILE", path)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "1000", cfg.PostingMap.Bank())

	t.Setenv("POSTING_MAP_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	_, err = LoadConfig()
	assert.Error(t, err)
}

func TestParsePostingMapMergesOverrides(t *testing.T) {
	data := []byte(`
categories:
  office_supplies: "5999"
  crypto_mining: "5400"
payment_methods:
  paypal: "1000"
gst_payable: "2150"
`)
	m, err := ParsePostingMap(data)
	require.NoError(t, err)

	assert.Equal(t, "5999", m.ExpenseAccountFor("office_supplies"))
	assert.Equal(t, "5400", m.ExpenseAccountFor("crypto_mining"))
	assert.Equal(t, "5000", m.ExpenseAccountFor("advertising"), "untouched categories keep their built-in code")
	assert.Equal(t, "1000", m.PaymentAccountFor("paypal"))
	assert.Equal(t, "2300", m.PaymentAccountFor("credit_card"))
	assert.Equal(t, "2150", m.GSTPayable())
	assert.Equal(t, "1300", m.GSTReceivable())

	_, err = ParsePostingMap([]byte("categories: [not, a, map]"))
	assert.Error(t, err)
}

func TestLoadConfigCORSOrigins(t *testing.T) {
	t.Setenv("POSTING_MAP_FILE", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://books.example.com, http://localhost:3000")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://books.example.com", "http://localhost:3000"}, cfg.CORSAllowedOrigins)
}
