package dialogflow

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/smacpher/frarold/pkg/chat/agent"
)

// ErrMissingToken is returned when no client access token is configured.
var ErrMissingToken = errors.New("dialogflow client access token is not configured")

type Config struct {
	BaseURL         string        `toml:"base_url" env:"BASE_URL"`
	AccessToken     string        `toml:"access_token" env:"ACCESS_TOKEN"`
	AccessTokenEnv  string        `toml:"access_token_env"`
	Lang            string        `toml:"lang" env:"LANG"`
	ProtocolVersion string        `toml:"protocol_version"`
	Timeout         time.Duration `toml:"timeout"`
}

// Token resolves the client access token; the env variable named by
// access_token_env wins over access_token.
func (c *Config) Token() (string, error) {
	if c.AccessTokenEnv != "" {
		if token := strings.TrimSpace(os.Getenv(c.AccessTokenEnv)); token != "" {
			return token, nil
		}
	}
	if token := strings.TrimSpace(c.AccessToken); token != "" {
		return token, nil
	}
	return "", ErrMissingToken
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.BaseURL) == "" {
		return errors.New("dialogflow: base_url must not be empty")
	}
	if strings.TrimSpace(c.Lang) == "" {
		return errors.New("dialogflow: lang must not be empty")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("dialogflow: negative timeout %s", c.Timeout)
	}
	return nil
}

var _ agent.Factory = (*Config)(nil)

func (c *Config) NewAgent(ctx context.Context) (agent.Agent, error) {
	a, err := New(c)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func DefaultConfig() *Config {
	return &Config{
		BaseURL:         "https://api.dialogflow.com/v1/",
		AccessTokenEnv:  "DIALOGFLOW_CLIENT_ACCESS_TOKEN",
		Lang:            "en",
		ProtocolVersion: "20150910",
		Timeout:         30 * time.Second,
	}
}
