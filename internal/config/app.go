package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"bankrates/internal/domain"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const configPathEnv = "BANKRATES_CONFIG"

// maxBankNameLen matches the rates.bank column width.
const maxBankNameLen = 50

type HTTPServer struct {
	Port string `mapstructure:"port"`
}

type DbServer struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Pass     string `mapstructure:"pass"`
	Name     string `mapstructure:"name"`
	MaxConns int32  `mapstructure:"max_conns"`
}

func (config *DbServer) GetConnectionStr() string {
	return fmt.Sprintf(
		"user=%s password=%s host=%s port=%s dbname=%s sslmode=disable",
		config.User, config.Pass, config.Host, config.Port, config.Name,
	)
}

type HTTPClient struct {
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

func (c HTTPClient) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

type Bot struct {
	Token                 string `mapstructure:"token"`
	UpdateTimeoutSeconds  int    `mapstructure:"update_timeout_seconds"`
	HandlerTimeoutSeconds int    `mapstructure:"handler_timeout_seconds"`
	Debug                 bool   `mapstructure:"debug"`
}

type Scheduler struct {
	IntervalSeconds int `mapstructure:"interval_seconds"`
}

func (s Scheduler) Interval() time.Duration {
	return time.Duration(s.IntervalSeconds) * time.Second
}

type Scraper struct {
	CurrencyCode      string `mapstructure:"currency_code"`
	Workers           int    `mapstructure:"workers"`
	RequestTimeoutSec int    `mapstructure:"request_timeout_seconds"`
	UserAgent         string `mapstructure:"user_agent"`
}

type Analysis struct {
	TrendDays int `mapstructure:"trend_days"`
	StatsDays int `mapstructure:"stats_days"`
}

type Export struct {
	CacheTTLSeconds int   `mapstructure:"cache_ttl_seconds"`
	CacheMaxItems   int64 `mapstructure:"cache_max_items"`
}

type Logging struct {
	Level string `mapstructure:"level"`
}

type Bank struct {
	Name string `mapstructure:"name"`
	URL  string `mapstructure:"url"`
}

type AppConfig struct {
	HTTPServer HTTPServer `mapstructure:"http_server"`
	DbServer   DbServer   `mapstructure:"db_server"`
	HTTPClient HTTPClient `mapstructure:"http_client"`
	Bot        Bot        `mapstructure:"bot"`
	Scheduler  Scheduler  `mapstructure:"scheduler"`
	Scraper    Scraper    `mapstructure:"scraper"`
	Analysis   Analysis   `mapstructure:"analysis"`
	Export     Export     `mapstructure:"export"`
	Logging    Logging    `mapstructure:"logging"`
	Banks      []Bank     `mapstructure:"banks"`
}

// defaultBanks are the bank.uz pages the service was first deployed against.
var defaultBanks = []map[string]any{
	{"name": "InfinBank", "url": "https://bank.uz/uz/currency/bank/invest-finance-bank"},
	{"name": "KapitalBank", "url": "https://bank.uz/uz/currency/bank/kapitalbank"},
	{"name": "Ipoteka Bank", "url": "https://bank.uz/uz/currency/bank/ipoteka-bank"},
	{"name": "Trastbank", "url": "https://bank.uz/uz/currency/bank/trastbank"},
	{"name": "TBC Bank", "url": "https://bank.uz/uz/currency/bank/tbc"},
	{"name": "Xalq Banki", "url": "https://bank.uz/uz/currency/bank/xalqbank"},
	{"name": "Asaka Bank", "url": "https://bank.uz/uz/currency/bank/asaka"},
	{"name": "Orient Finans Bank", "url": "https://bank.uz/uz/currency/bank/orient-finans"},
}

func Init() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	path := os.Getenv(configPathEnv)
	if path == "" {
		path = "config.yaml"
	}
	return Load(path)
}

// Load reads the yaml file at path (skipped when it does not exist), applies
// environment overrides and defaults and validates the result.
func Load(path string) (*AppConfig, error) {
	v := viper.New()
	setDefaults(v)
	bindEnv(v)

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			v.SetConfigType("yaml")
			if err = v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http_server.port", "8080")

	v.SetDefault("db_server.host", "localhost")
	v.SetDefault("db_server.port", "5432")
	v.SetDefault("db_server.max_conns", 10)

	v.SetDefault("http_client.timeout_seconds", 10)

	v.SetDefault("bot.update_timeout_seconds", 60)
	v.SetDefault("bot.handler_timeout_seconds", 60)

	v.SetDefault("scheduler.interval_seconds", 600)

	v.SetDefault("scraper.currency_code", "USD")
	v.SetDefault("scraper.workers", 4)
	v.SetDefault("scraper.request_timeout_seconds", 5)
	v.SetDefault("scraper.user_agent", "bankrates/1.0")

	v.SetDefault("analysis.trend_days", 3)
	v.SetDefault("analysis.stats_days", 30)

	v.SetDefault("export.cache_ttl_seconds", 60)
	v.SetDefault("export.cache_max_items", 16)

	v.SetDefault("logging.level", "info")

	v.SetDefault("banks", defaultBanks)
}

func bindEnv(v *viper.Viper) {
	// bot
	_ = v.BindEnv("bot.token", "BOT_TOKEN")
	_ = v.BindEnv("bot.debug", "BOT_DEBUG")

	// db server env vars
	_ = v.BindEnv("db_server.host", "DB_HOST")
	_ = v.BindEnv("db_server.port", "DB_PORT")
	_ = v.BindEnv("db_server.user", "DB_USER")
	_ = v.BindEnv("db_server.pass", "DB_PASS")
	_ = v.BindEnv("db_server.name", "DB_NAME")
	_ = v.BindEnv("db_server.max_conns", "DB_MAX_CONNS")

	// http client env vars
	_ = v.BindEnv("http_client.timeout_seconds", "HTTP_CLIENT_TIMEOUT_SECONDS")

	_ = v.BindEnv("http_server.port", "HTTP_PORT")
	_ = v.BindEnv("scheduler.interval_seconds", "CHECK_INTERVAL_SECONDS")
	_ = v.BindEnv("logging.level", "LOG_LEVEL")
}

func (c *AppConfig) Validate() error {
	if strings.TrimSpace(c.Bot.Token) == "" {
		return errors.New("bot token is required")
	}
	if len(c.Banks) == 0 {
		return errors.New("at least one bank must be configured")
	}
	for i, b := range c.Banks {
		name := strings.TrimSpace(b.Name)
		if name == "" {
			return fmt.Errorf("bank #%d: name is required", i+1)
		}
		if utf8.RuneCountInString(name) > maxBankNameLen {
			return fmt.Errorf("bank %q: name is longer than %d characters", name, maxBankNameLen)
		}
		if strings.TrimSpace(b.URL) == "" {
			return fmt.Errorf("bank %q: url is required", b.Name)
		}
	}
	return nil
}

// Endpoints returns configured banks in configured order. Repeated bank names are
// dropped, the first occurrence wins.
func (c *AppConfig) Endpoints() []domain.BankEndpoint {
	seen := make(map[string]struct{}, len(c.Banks))
	endpoints := make([]domain.BankEndpoint, 0, len(c.Banks))
	for _, b := range c.Banks {
		name := strings.TrimSpace(b.Name)
		if _, ok := seen[name]; ok {
			logrus.Warnf("Bank %q is configured more than once, keeping the first entry", name)
			continue
		}
		seen[name] = struct{}{}
		endpoints = append(endpoints, domain.BankEndpoint{Bank: name, URL: strings.TrimSpace(b.URL)})
	}
	return endpoints
}
