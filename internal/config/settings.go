package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Veraticus/destiny-recharge/internal/common"
	"github.com/Veraticus/destiny-recharge/internal/engine"
	"github.com/Veraticus/destiny-recharge/internal/notion"
	"github.com/Veraticus/destiny-recharge/internal/service"
	"github.com/spf13/viper"
)

// Configuration keys.
const (
	KeyAPIKey            = "notion.api_key"
	KeyRequestsPerSecond = "notion.requests_per_second"
	KeyConcurrency       = "notion.concurrency"
	KeyChecklistsPage    = "pages.checklists"
	KeyClassifications   = "pages.classifications"
	KeyLedgerPage        = "pages.ledger"
	KeyTodayPage         = "pages.today"
	KeyMaxRetries        = "retry.max_retries"
	KeyRetryDelay        = "retry.delay"
	KeyJournalPath       = "journal.path"
	KeyJournalEnabled    = "journal.enabled"
)

// legacyEnv maps keys to the bare environment variables older setups export.
var legacyEnv = map[string]string{
	KeyAPIKey:          "NOTION_API_KEY",
	KeyChecklistsPage:  "CHECKLISTS_PAGE_ID",
	KeyClassifications: "CLASSIFICATIONS_PAGE_ID",
	KeyLedgerPage:      "DESTINY_DEBT_PAGE_ID",
	KeyTodayPage:       "TODAY_PAGE_ID",
}

// Settings is everything a run needs from configuration.
type Settings struct {
	Notion         notion.Config
	Pages          engine.Pages
	JournalPath    string
	RetryDelay     time.Duration
	MaxRetries     int
	Concurrency    int
	JournalEnabled bool
}

// RetryOptions returns the fixed-interval policy for mutating calls.
func (s *Settings) RetryOptions() service.RetryOptions {
	return service.FixedRetry(s.MaxRetries, s.RetryDelay)
}

// DefaultJournalPath returns where the run journal lives unless configured.
func DefaultJournalPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "destiny", "journal.db")
	}
	return filepath.Join(home, ".local", "share", "destiny", "journal.db")
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyRequestsPerSecond, 3.0)
	v.SetDefault(KeyConcurrency, 5)
	v.SetDefault(KeyMaxRetries, notion.DefaultMaxRetries)
	v.SetDefault(KeyRetryDelay, notion.DefaultRetryDelay)
	v.SetDefault(KeyJournalPath, DefaultJournalPath())
	v.SetDefault(KeyJournalEnabled, true)
}

// Load reads settings from v, falling back to the legacy environment
// variables for the API key and page IDs, and validates the result.
func Load(v *viper.Viper) (*Settings, error) {
	s := &Settings{
		Notion: notion.Config{
			APIKey:            lookup(v, KeyAPIKey),
			RequestsPerSecond: v.GetFloat64(KeyRequestsPerSecond),
		},
		Pages: engine.Pages{
			Checklists:      lookup(v, KeyChecklistsPage),
			Classifications: lookup(v, KeyClassifications),
			Ledger:          lookup(v, KeyLedgerPage),
			Today:           lookup(v, KeyTodayPage),
		},
		Concurrency:    v.GetInt(KeyConcurrency),
		MaxRetries:     v.GetInt(KeyMaxRetries),
		RetryDelay:     v.GetDuration(KeyRetryDelay),
		JournalPath:    ExpandPath(v.GetString(KeyJournalPath)),
		JournalEnabled: v.GetBool(KeyJournalEnabled),
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks that required values are present and numbers are in range.
func (s *Settings) Validate() error {
	if s.Notion.APIKey == "" {
		return fmt.Errorf("%w: notion API key is required (set NOTION_API_KEY)", common.ErrMissingConfig)
	}
	if err := s.Pages.Validate(); err != nil {
		return err
	}

	switch {
	case s.Notion.RequestsPerSecond <= 0:
		return fmt.Errorf("%w: %s must be positive", common.ErrInvalidConfig, KeyRequestsPerSecond)
	case s.Concurrency <= 0:
		return fmt.Errorf("%w: %s must be positive", common.ErrInvalidConfig, KeyConcurrency)
	case s.MaxRetries < 0:
		return fmt.Errorf("%w: %s cannot be negative", common.ErrInvalidConfig, KeyMaxRetries)
	case s.RetryDelay < 0:
		return fmt.Errorf("%w: %s cannot be negative", common.ErrInvalidConfig, KeyRetryDelay)
	case s.JournalEnabled && s.JournalPath == "":
		return fmt.Errorf("%w: %s is required when the journal is enabled", common.ErrInvalidConfig, KeyJournalPath)
	}
	return nil
}

func lookup(v *viper.Viper, key string) string {
	if value := v.GetString(key); value != "" {
		return value
	}
	if env, ok := legacyEnv[key]; ok {
		if value := os.Getenv(env); value != "" {
			common.LogDebug("Using legacy environment variable", common.Fields{"key": key, "env": env})
			return value
		}
	}
	return ""
}
