package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/yurifrl/paydown/pkg/schedule"
)

// Config is the full configuration file: the YNAB connection details plus
// one schedule block per tracked debt account, keyed by an opaque name.
type Config struct {
	YNAB     YNABConfig         `yaml:"ynab"`
	Listen   string             `yaml:"listen"`
	Accounts map[string]Account `yaml:"accounts"`
}

// YNABConfig holds the YNAB specific configuration.
type YNABConfig struct {
	BudgetID string `yaml:"budget_id"`
	TokenEnv string `yaml:"token_env"`
}

// Account is the per-debt schedule configuration. It is immutable for the
// lifetime of a tracking session; everything derived from it is recomputed
// on every evaluation.
type Account struct {
	AccountID     string    `yaml:"account_id"`
	Payee         string    `yaml:"payee"`
	PaymentAmount float64   `yaml:"payment_amount"`
	MinPayment    float64   `yaml:"min_payment"`
	MaxPayment    float64   `yaml:"max_payment"`
	Weekdays      []int     `yaml:"weekdays"`
	Deadline      *Deadline `yaml:"deadline,omitempty"`
}

// Deadline enables deadline-based reporting for an account.
type Deadline struct {
	Date              string `yaml:"date"`
	Enabled           bool   `yaml:"enabled"`
	ShowDaysRemaining bool   `yaml:"show_days_remaining"`
}

// WeekdaySet converts the configured ordinals (Sunday = 0) into the set the
// schedule package consumes.
func (a Account) WeekdaySet() schedule.WeekdaySet {
	return schedule.NewWeekdaySet(a.Weekdays)
}

// When parses the deadline date as a calendar date.
func (d *Deadline) When() (time.Time, error) {
	t, err := time.Parse("2006-01-02", d.Date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid deadline date %q: %w", d.Date, err)
	}
	return t, nil
}

// Active reports whether deadline reporting is turned on.
func (d *Deadline) Active() bool {
	return d != nil && d.Enabled
}

// Load reads a configuration from a YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}

	if cfg.YNAB.TokenEnv == "" {
		cfg.YNAB.TokenEnv = "YNAB_TOKEN"
	}
	if cfg.Listen == "" {
		cfg.Listen = "0.0.0.0:3000"
	}
	if len(cfg.Accounts) == 0 {
		return nil, fmt.Errorf("config has no accounts")
	}
	return &cfg, nil
}

// Build loads the configuration honoring flag overrides: --config picks the
// file (default config.yaml), --budget and --listen override the loaded
// values when set.
func Build(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	if err := v.BindPFlags(flags); err != nil {
		return nil, err
	}

	if cfgFile == "" {
		cfgFile = "config.yaml"
	}
	cfg, err := Load(cfgFile)
	if err != nil {
		return nil, err
	}

	if budget := v.GetString("budget"); budget != "" {
		cfg.YNAB.BudgetID = budget
	}
	if listen := v.GetString("listen"); listen != "" {
		cfg.Listen = listen
	}
	return cfg, nil
}

// Account looks up a tracked account by its opaque name. Unknown names are
// an explicit lookup failure, never a silent default.
func (c *Config) Account(name string) (Account, error) {
	account, ok := c.Accounts[name]
	if !ok {
		return Account{}, fmt.Errorf("no account %q in config", name)
	}
	return account, nil
}

// Names returns the configured account names in arbitrary order.
func (c *Config) Names() []string {
	names := make([]string, 0, len(c.Accounts))
	for name := range c.Accounts {
		names = append(names, name)
	}
	return names
}

// Token resolves the YNAB API token from the configured environment
// variable.
func (c *Config) Token() (string, error) {
	token := os.Getenv(c.YNAB.TokenEnv)
	if token == "" {
		return "", fmt.Errorf("environment variable %s is not set", c.YNAB.TokenEnv)
	}
	return token, nil
}
