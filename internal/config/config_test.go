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
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, StoreJSON, cfg.Store.Driver)
	assert.True(t, cfg.Store.Fallback)
	assert.Equal(t, "data/db.json", cfg.JSON.Path)
	assert.Equal(t, "대", cfg.Document.UnitName)
	assert.Equal(t, "0 3 * * *", cfg.Snapshot.Spec)
	assert.Equal(t, 10*time.Second, cfg.RateLimit.FormCooldown)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("STORE_DRIVER", "sheets")
	t.Setenv("SHEETS_URL", "https://script.google.com/macros/s/x/exec")
	t.Setenv("SHEETS_TIMEOUT", "3s")
	t.Setenv("SMTP_RECIPIENTS", "a@example.com, b@example.com")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, StoreSheets, cfg.Store.Driver)
	assert.Equal(t, 3*time.Second, cfg.Sheets.Timeout)
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, cfg.SMTP.Recipients)
}

func TestLoad_SheetsWithoutURL(t *testing.T) {
	t.Setenv("STORE_DRIVER", "sheets")
	_, err := Load("")
	assert.Error(t, err)
}

func TestLoad_UnknownDriver(t *testing.T) {
	t.Setenv("STORE_DRIVER", "mongo")
	_, err := Load("")
	assert.Error(t, err)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
server:
  port: "9090"
store:
  driver: database
database:
  driver: sqlite
  dsn: ":memory:"
document:
  company_name: 한빛기계
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, StoreDatabase, cfg.Store.Driver)
	assert.Equal(t, ":memory:", cfg.Database.DSN)
	assert.Equal(t, "한빛기계", cfg.Document.CompanyName)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
