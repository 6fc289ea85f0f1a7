package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/smacpher/frarold/pkg/chat/dialogflow"
	"github.com/smacpher/frarold/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_WritesDefaults(t *testing.T) {
	p := filepath.Join(t.TempDir(), "frarold", "config.toml")

	c, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, p, c.Path)
	assert.Equal(t, slog.LevelInfo, c.LogLevel)
	assert.Equal(t, session.ScopeTurn, c.SessionScope)
	assert.Equal(t, "en", c.Dialogflow.Lang)

	_, err = os.Stat(p)
	require.NoError(t, err)

	again, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, c, again)
}

func TestLoad_File(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(p, []byte(`
loglevel = "DEBUG"
banner = false
session_scope = "conversation"

[dialogflow]
access_token = "file-token"
lang = "fr"
timeout = "3s"

[webhook]
listen_addr = ":9090"
`), 0600))

	c, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, c.LogLevel)
	assert.False(t, c.Banner)
	assert.Equal(t, session.ScopeConversation, c.SessionScope)
	assert.Equal(t, "file-token", c.Dialogflow.AccessToken)
	assert.Equal(t, "fr", c.Dialogflow.Lang)
	assert.Equal(t, 3*time.Second, c.Dialogflow.Timeout)
	assert.Equal(t, dialogflow.DefaultConfig().BaseURL, c.Dialogflow.BaseURL)
	assert.Equal(t, ":9090", c.Webhook.ListenAddr)
}

func TestLoad_EnvOverrides(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(p, []byte(`
[dialogflow]
access_token = "file-token"
lang = "fr"
`), 0600))
	t.Setenv("FRAROLD_DIALOGFLOW_ACCESS_TOKEN", "env-token")
	t.Setenv("FRAROLD_DIALOGFLOW_LANG", "es")
	t.Setenv("FRAROLD_LOGLEVEL", "warn")
	t.Setenv("FRAROLD_SESSION_SCOPE", "conversation")
	t.Setenv("FRAROLD_WEBHOOK_LISTEN_ADDR", "127.0.0.1:7000")

	c, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "env-token", c.Dialogflow.AccessToken)
	assert.Equal(t, "es", c.Dialogflow.Lang)
	assert.Equal(t, slog.LevelWarn, c.LogLevel)
	assert.Equal(t, session.ScopeConversation, c.SessionScope)
	assert.Equal(t, "127.0.0.1:7000", c.Webhook.ListenAddr)
}

func TestLoad_Invalid(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(p, []byte(`session_scope = "weekly"`), 0600))
	_, err := Load(p)
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(p, []byte(`[dialogflow
`), 0600))
	_, err = Load(p)
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(p, []byte("[dialogflow]\nlang = \"\"\n"), 0600))
	_, err = Load(p)
	assert.Error(t, err)
}

func TestDefaultPath_Env(t *testing.T) {
	t.Setenv(PathEnv, "/tmp/elsewhere.toml")
	p, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/elsewhere.toml", p)
}

func TestEnsureToken_AlreadySet(t *testing.T) {
	c := Default()
	c.Dialogflow.AccessToken = "token"
	require.NoError(t, c.EnsureToken(func(string) (string, error) {
		t.Fatal("must not ask")
		return "", nil
	}))
}

func TestEnsureToken_AsksAndSaves(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.toml")
	c, err := Load(p)
	require.NoError(t, err)
	c.Dialogflow.AccessTokenEnv = "FRAROLD_TEST_UNSET_TOKEN"

	var asked int
	require.NoError(t, c.EnsureToken(func(label string) (string, error) {
		asked++
		return "  typed-token \n", nil
	}))
	assert.Equal(t, 1, asked)
	assert.Equal(t, "typed-token", c.Dialogflow.AccessToken)

	saved, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "typed-token", saved.Dialogflow.AccessToken)
}

func TestEnsureToken_KeepsEnvOverridesOffDisk(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(p, []byte(`
[dialogflow]
lang = "fr"
access_token_env = "FRAROLD_TEST_UNSET_TOKEN"
`), 0600))
	t.Setenv("FRAROLD_DIALOGFLOW_LANG", "es")
	t.Setenv("FRAROLD_LOGLEVEL", "debug")
	t.Setenv("FRAROLD_WEBHOOK_MENU_AUTH_TOKEN", "menu-secret")

	c, err := Load(p)
	require.NoError(t, err)
	require.Equal(t, "es", c.Dialogflow.Lang)

	require.NoError(t, c.EnsureToken(func(string) (string, error) {
		return "typed-token", nil
	}))

	onDisk, err := readFile(p)
	require.NoError(t, err)
	assert.Equal(t, "typed-token", onDisk.Dialogflow.AccessToken)
	assert.Equal(t, "fr", onDisk.Dialogflow.Lang)
	assert.Equal(t, slog.LevelInfo, onDisk.LogLevel)
	assert.Empty(t, onDisk.Webhook.MenuAuthToken)

	data, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "menu-secret")
	assert.NotContains(t, string(data), "DEBUG")
}

func TestEnsureToken_NoTerminal(t *testing.T) {
	c := Default()
	c.Dialogflow.AccessTokenEnv = "FRAROLD_TEST_UNSET_TOKEN"
	err := c.EnsureToken(nil)
	assert.ErrorIs(t, err, dialogflow.ErrMissingToken)
	assert.Contains(t, err.Error(), "FRAROLD_TEST_UNSET_TOKEN")
}

func TestEnsureToken_AskFails(t *testing.T) {
	c := Default()
	c.Dialogflow.AccessTokenEnv = "FRAROLD_TEST_UNSET_TOKEN"
	askErr := errors.New("^C")
	err := c.EnsureToken(func(string) (string, error) { return "", askErr })
	assert.ErrorIs(t, err, askErr)
}
