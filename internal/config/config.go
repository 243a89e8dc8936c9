package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"PairSentinel/internal/model"
)

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	PriceSource struct {
		BaseURL string `yaml:"base_url"`
		Token   string `yaml:"token"`
	} `yaml:"price_source"`
	Feeds struct {
		TWSEBase string `yaml:"twse_base"`
		TPExBase string `yaml:"tpex_base"`
	} `yaml:"feeds"`
	Schedule struct {
		SnapshotCron string `yaml:"snapshot_cron"`
		DailyCron    string `yaml:"daily_cron"`
	} `yaml:"schedule"`
	Analysis struct {
		PeriodDays int `yaml:"period_days"`
	} `yaml:"analysis"`
	Catalog struct {
		File string `yaml:"file"`
	} `yaml:"catalog"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("FINMIND_BASE_URL"); v != "" {
		cfg.PriceSource.BaseURL = v
	}
	if v := os.Getenv("FINMIND_TOKEN"); v != "" {
		cfg.PriceSource.Token = v
	}
	if v := os.Getenv("TWSE_BASE_URL"); v != "" {
		cfg.Feeds.TWSEBase = v
	}
	if v := os.Getenv("TPEX_BASE_URL"); v != "" {
		cfg.Feeds.TPExBase = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("CRON_SNAPSHOT"); v != "" {
		cfg.Schedule.SnapshotCron = v
	}
	if v := os.Getenv("CRON_DAILY"); v != "" {
		cfg.Schedule.DailyCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("CATALOG_FILE"); v != "" {
		cfg.Catalog.File = v
	}

	// Defaults
	if cfg.Schedule.SnapshotCron == "" {
		// Every 5 minutes, matching the snapshot cache TTL.
		cfg.Schedule.SnapshotCron = "0 */5 * * * *"
	}
	if cfg.Schedule.DailyCron == "" {
		// Weekdays after the Taipei market close.
		cfg.Schedule.DailyCron = "0 30 14 * * 1-5"
	}
	if cfg.Analysis.PeriodDays == 0 {
		cfg.Analysis.PeriodDays = model.DefaultAnalysisPeriod
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/pair_sentinel.db"
	}
	if cfg.Catalog.File == "" {
		cfg.Catalog.File = "data/twse_stocks.json"
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required")
	}
	if c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required")
	}
	if c.PriceSource.Token == "" {
		return fmt.Errorf("price_source.token is required")
	}
	validPeriod := false
	for _, p := range model.AnalysisPeriods {
		if c.Analysis.PeriodDays == p {
			validPeriod = true
			break
		}
	}
	if !validPeriod {
		return fmt.Errorf("analysis.period_days must be one of %v", model.AnalysisPeriods)
	}
	return nil
}
