package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Veraticus/destiny-recharge/internal/common"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearLegacyEnv(t *testing.T) {
	t.Helper()
	for _, env := range legacyEnv {
		t.Setenv(env, "")
	}
}

func configured() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.Set(KeyAPIKey, "secret_abc")
	v.Set(KeyChecklistsPage, "checklists")
	v.Set(KeyClassifications, "classifications")
	v.Set(KeyLedgerPage, "ledger")
	v.Set(KeyTodayPage, "today")
	return v
}

func TestLoad_Defaults(t *testing.T) {
	clearLegacyEnv(t)

	s, err := Load(configured())
	require.NoError(t, err)

	assert.Equal(t, "secret_abc", s.Notion.APIKey)
	assert.InDelta(t, 3.0, s.Notion.RequestsPerSecond, 0.001)
	assert.Equal(t, 5, s.Concurrency)
	assert.Equal(t, 6, s.RetryOptions().MaxAttempts)
	assert.Equal(t, 2*time.Second, s.RetryOptions().InitialDelay)
	assert.InDelta(t, 1.0, s.RetryOptions().Multiplier, 0.001)
	assert.True(t, s.JournalEnabled)
	assert.Equal(t, DefaultJournalPath(), s.JournalPath)
	assert.Equal(t, "ledger", s.Pages.Ledger)
}

func TestLoad_LegacyEnvironment(t *testing.T) {
	clearLegacyEnv(t)
	t.Setenv("NOTION_API_KEY", "secret_env")
	t.Setenv("CHECKLISTS_PAGE_ID", "env-checklists")
	t.Setenv("CLASSIFICATIONS_PAGE_ID", "env-classifications")
	t.Setenv("DESTINY_DEBT_PAGE_ID", "env-ledger")
	t.Setenv("TODAY_PAGE_ID", "env-today")

	v := viper.New()
	SetDefaults(v)
	v.Set(KeyTodayPage, "configured-today")

	s, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "secret_env", s.Notion.APIKey)
	assert.Equal(t, "env-checklists", s.Pages.Checklists)
	assert.Equal(t, "env-classifications", s.Pages.Classifications)
	assert.Equal(t, "env-ledger", s.Pages.Ledger)
	assert.Equal(t, "configured-today", s.Pages.Today)
}

func TestLoad_Errors(t *testing.T) {
	clearLegacyEnv(t)

	tests := []struct {
		modify  func(*viper.Viper)
		wantErr error
		name    string
		wantMsg string
	}{
		{
			name:    "missing api key",
			modify:  func(v *viper.Viper) { v.Set(KeyAPIKey, "") },
			wantErr: common.ErrMissingConfig,
			wantMsg: "NOTION_API_KEY",
		},
		{
			name:    "missing ledger page",
			modify:  func(v *viper.Viper) { v.Set(KeyLedgerPage, "") },
			wantErr: common.ErrMissingConfig,
			wantMsg: "destiny debt page",
		},
		{
			name:    "zero concurrency",
			modify:  func(v *viper.Viper) { v.Set(KeyConcurrency, 0) },
			wantErr: common.ErrInvalidConfig,
			wantMsg: KeyConcurrency,
		},
		{
			name:    "negative retries",
			modify:  func(v *viper.Viper) { v.Set(KeyMaxRetries, -1) },
			wantErr: common.ErrInvalidConfig,
			wantMsg: KeyMaxRetries,
		},
		{
			name:    "negative rate",
			modify:  func(v *viper.Viper) { v.Set(KeyRequestsPerSecond, -2.0) },
			wantErr: common.ErrInvalidConfig,
			wantMsg: KeyRequestsPerSecond,
		},
		{
			name: "journal without path",
			modify: func(v *viper.Viper) {
				v.Set(KeyJournalPath, "")
			},
			wantErr: common.ErrInvalidConfig,
			wantMsg: KeyJournalPath,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := configured()
			tt.modify(v)

			_, err := Load(v)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestLoad_RetryDelayFromString(t *testing.T) {
	clearLegacyEnv(t)
	v := configured()
	v.Set(KeyRetryDelay, "250ms")
	v.Set(KeyMaxRetries, 2)

	s, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, 3, s.RetryOptions().MaxAttempts)
	assert.Equal(t, 250*time.Millisecond, s.RetryOptions().InitialDelay)
	assert.Equal(t, 250*time.Millisecond, s.RetryOptions().MaxDelay)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "DESTINY_TEST_FRESH=from-file\nDESTINY_TEST_SET=from-file\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	t.Setenv("DESTINY_TEST_SET", "from-shell")
	t.Setenv("DESTINY_TEST_FRESH", "")
	require.NoError(t, os.Unsetenv("DESTINY_TEST_FRESH"))

	require.NoError(t, LoadDotEnv(path, true))

	assert.Equal(t, "from-file", os.Getenv("DESTINY_TEST_FRESH"))
	assert.Equal(t, "from-shell", os.Getenv("DESTINY_TEST_SET"))
}

func TestLoadDotEnv_Missing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.env")

	require.NoError(t, LoadDotEnv(missing, false))
	require.Error(t, LoadDotEnv(missing, true))
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("DESTINY_TEST_DIR", "/srv/destiny")

	assert.Equal(t, "", ExpandPath(""))
	assert.Equal(t, home, ExpandPath("~"))
	assert.Equal(t, filepath.Join(home, "journal.db"), ExpandPath("~/journal.db"))
	assert.Equal(t, "/srv/destiny/journal.db", ExpandPath("$DESTINY_TEST_DIR/journal.db"))
}
