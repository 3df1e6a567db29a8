package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"bankrates/internal/domain"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	t.Setenv("BOT_TOKEN", "token")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	require.Equal(t, 600*time.Second, cfg.Scheduler.Interval())
	require.Equal(t, 10*time.Second, cfg.HTTPClient.Timeout())
	require.Equal(t, "USD", cfg.Scraper.CurrencyCode)
	require.Equal(t, 3, cfg.Analysis.TrendDays)
	require.Equal(t, 30, cfg.Analysis.StatsDays)
	require.Equal(t, "8080", cfg.HTTPServer.Port)
	require.Len(t, cfg.Endpoints(), 8)
	require.Equal(t, "InfinBank", cfg.Endpoints()[0].Bank)
}

func TestLoad_FileAndEnvOverrides(t *testing.T) {
	t.Setenv("BOT_TOKEN", "from-env")
	t.Setenv("CHECK_INTERVAL_SECONDS", "120")
	t.Setenv("DB_HOST", "db.internal")

	path := writeConfig(t, `
bot:
  token: from-file
db_server:
  name: rates
banks:
  - name: A
    url: http://a.example/usd
  - name: B
    url: http://b.example/usd
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, "from-env", cfg.Bot.Token)
	require.Equal(t, 120*time.Second, cfg.Scheduler.Interval())
	require.Equal(t, "db.internal", cfg.DbServer.Host)
	require.Equal(t, "rates", cfg.DbServer.Name)
	require.Equal(t, []domain.BankEndpoint{
		{Bank: "A", URL: "http://a.example/usd"},
		{Bank: "B", URL: "http://b.example/usd"},
	}, cfg.Endpoints())
}

func TestLoad_MissingTokenFails(t *testing.T) {
	t.Setenv("BOT_TOKEN", "")

	_, err := Load("")
	require.Error(t, err)
	require.ErrorContains(t, err, "bot token is required")
}

func TestValidate_BankWithoutURL(t *testing.T) {
	cfg := &AppConfig{
		Bot:   Bot{Token: "t"},
		Banks: []Bank{{Name: "A"}},
	}
	require.ErrorContains(t, cfg.Validate(), `bank "A": url is required`)
}

func TestValidate_BankNameLength(t *testing.T) {
	longest := strings.Repeat("ў", 50)
	cfg := &AppConfig{
		Bot:   Bot{Token: "t"},
		Banks: []Bank{{Name: " " + longest + " ", URL: "http://a"}},
	}
	require.NoError(t, cfg.Validate())

	cfg.Banks[0].Name = longest + "x"
	require.ErrorContains(t, cfg.Validate(), "name is longer than 50 characters")
}

func TestEndpoints_DropsDuplicatesKeepingFirst(t *testing.T) {
	cfg := &AppConfig{Banks: []Bank{
		{Name: "A", URL: "http://a/1"},
		{Name: " B ", URL: "http://b"},
		{Name: "A", URL: "http://a/2"},
	}}

	require.Equal(t, []domain.BankEndpoint{
		{Bank: "A", URL: "http://a/1"},
		{Bank: "B", URL: "http://b"},
	}, cfg.Endpoints())
}

func TestDbServer_GetConnectionStr(t *testing.T) {
	db := DbServer{Host: "h", Port: "5432", User: "u", Pass: "p", Name: "n"}
	require.Equal(t, "user=u password=p host=h port=5432 dbname=n sslmode=disable", db.GetConnectionStr())
}
