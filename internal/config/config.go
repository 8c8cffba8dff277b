package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Nano struct {
		BaseURL string   `yaml:"base_url"`
		Users   []string `yaml:"users"`
	} `yaml:"nano"`
	Schedule struct {
		FrequentCron string `yaml:"frequent_cron"`
		DailyCron    string `yaml:"daily_cron"`
	} `yaml:"schedule"`
	Tracking struct {
		Start         string `yaml:"start"` // YYYY-MM-DD, day zero of the period
		Days          int    `yaml:"days"`
		Goal          int    `yaml:"goal"`
		PaceThreshold int    `yaml:"pace_threshold"`
	} `yaml:"tracking"`
	Tracker struct {
		StateFile string `yaml:"state_file"`
	} `yaml:"tracker"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Chart struct {
		OutputPath string `yaml:"output_path"`
		Width      int    `yaml:"width"`
		Height     int    `yaml:"height"`
	} `yaml:"chart"`
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
	if v := os.Getenv("NANO_BASE_URL"); v != "" {
		cfg.Nano.BaseURL = v
	}
	if v := os.Getenv("NANO_USERS"); v != "" {
		cfg.Nano.Users = splitUsers(v)
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("CRON_FREQUENT"); v != "" {
		cfg.Schedule.FrequentCron = v
	}
	if v := os.Getenv("CRON_DAILY"); v != "" {
		cfg.Schedule.DailyCron = v
	}
	if v := os.Getenv("STATE_FILE"); v != "" {
		cfg.Tracker.StateFile = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}

	// Defaults
	if cfg.Nano.BaseURL == "" {
		cfg.Nano.BaseURL = "https://nanowrimo.org"
	}
	if len(cfg.Nano.Users) == 0 {
		cfg.Nano.Users = []string{"simon", "lena", "markus", "jule"}
	}
	if cfg.Schedule.FrequentCron == "" {
		cfg.Schedule.FrequentCron = "0 */15 * * * *"
	}
	if cfg.Schedule.DailyCron == "" {
		cfg.Schedule.DailyCron = "0 55 23 * * *"
	}
	if cfg.Tracking.Start == "" {
		cfg.Tracking.Start = fmt.Sprintf("%d-11-01", time.Now().Year())
	}
	if cfg.Tracking.Days == 0 {
		cfg.Tracking.Days = 30
	}
	if cfg.Tracking.Goal == 0 {
		cfg.Tracking.Goal = 50000
	}
	if cfg.Tracking.PaceThreshold == 0 {
		cfg.Tracking.PaceThreshold = 1667
	}
	if cfg.Tracker.StateFile == "" {
		cfg.Tracker.StateFile = "data/tracker_state.json"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/nano_tracker.db"
	}
	if cfg.Chart.OutputPath == "" {
		cfg.Chart.OutputPath = "data/words.png"
	}
	if cfg.Chart.Width == 0 {
		cfg.Chart.Width = 1024
	}
	if cfg.Chart.Height == 0 {
		cfg.Chart.Height = 768
	}

	return cfg, nil
}

// PeriodStart parses the tracking period start date (midnight UTC).
func (c *Config) PeriodStart() (time.Time, error) {
	t, err := time.Parse("2006-01-02", c.Tracking.Start)
	if err != nil {
		return time.Time{}, fmt.Errorf("tracking.start: %w", err)
	}
	return t.UTC(), nil
}

// Validate checks that all required fields are set and well-formed.
func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required")
	}
	if c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required")
	}
	if len(c.Nano.Users) == 0 {
		return fmt.Errorf("nano.users must list at least one user")
	}
	if _, err := c.PeriodStart(); err != nil {
		return err
	}
	if c.Tracking.Days <= 0 {
		return fmt.Errorf("tracking.days must be positive")
	}
	if c.Tracking.Goal <= 0 {
		return fmt.Errorf("tracking.goal must be positive")
	}
	return nil
}

func splitUsers(s string) []string {
	var users []string
	for _, u := range strings.Split(s, ",") {
		if u = strings.TrimSpace(u); u != "" {
			users = append(users, u)
		}
	}
	return users
}
