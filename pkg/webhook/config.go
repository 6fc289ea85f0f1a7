package webhook

import (
	"errors"
	"os"
	"strings"
	"time"
)

// ErrMissingMenuToken is returned when no ASPC menu API token is set.
var ErrMissingMenuToken = errors.New("menu auth token is not configured")

type Config struct {
	ListenAddr       string        `toml:"listen_addr" env:"LISTEN_ADDR"`
	MenuBaseURL      string        `toml:"menu_base_url" env:"MENU_BASE_URL"`
	MenuAuthToken    string        `toml:"menu_auth_token" env:"MENU_AUTH_TOKEN"`
	MenuAuthTokenEnv string        `toml:"menu_auth_token_env"`
	Timeout          time.Duration `toml:"timeout"`
}

// Token resolves the menu API token the same way the Dialogflow token is
// resolved: the named env variable first, then the literal value.
func (c *Config) Token() (string, error) {
	if c.MenuAuthTokenEnv != "" {
		if token := strings.TrimSpace(os.Getenv(c.MenuAuthTokenEnv)); token != "" {
			return token, nil
		}
	}
	if token := strings.TrimSpace(c.MenuAuthToken); token != "" {
		return token, nil
	}
	return "", ErrMissingMenuToken
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.ListenAddr) == "" {
		return errors.New("webhook: listen_addr must not be empty")
	}
	if strings.TrimSpace(c.MenuBaseURL) == "" {
		return errors.New("webhook: menu_base_url must not be empty")
	}
	return nil
}

func DefaultConfig() *Config {
	return &Config{
		ListenAddr:       ":8080",
		MenuBaseURL:      "https://aspc.pomona.edu/api/menu/",
		MenuAuthTokenEnv: "ASPC_AUTH_TOKEN",
		Timeout:          10 * time.Second,
	}
}
