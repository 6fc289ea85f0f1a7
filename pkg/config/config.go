package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/smacpher/frarold/pkg/chat/dialogflow"
	"github.com/smacpher/frarold/pkg/session"
	"github.com/smacpher/frarold/pkg/webhook"
)

const (
	// PathEnv names the env variable that overrides the config file path.
	PathEnv = "FRAROLD_CONFIG"
	// envPrefix is prepended to every env override, e.g. FRAROLD_LOGLEVEL.
	envPrefix = "FRAROLD_"
)

type Config struct {
	LogLevel     slog.Level    `toml:"loglevel" env:"LOGLEVEL"`
	LogDir       string        `toml:"log_dir,omitempty" env:"LOG_DIR"`
	Banner       bool          `toml:"banner" env:"BANNER"`
	SessionScope session.Scope `toml:"session_scope" env:"SESSION_SCOPE"`

	Dialogflow dialogflow.Config `toml:"dialogflow" envPrefix:"DIALOGFLOW_"`
	Webhook    webhook.Config    `toml:"webhook" envPrefix:"WEBHOOK_"`

	// Path is where the config was read from.
	Path string `toml:"-"`
}

func Default() *Config {
	return &Config{
		LogLevel:     slog.LevelInfo,
		Banner:       true,
		SessionScope: session.ScopeTurn,
		Dialogflow:   *dialogflow.DefaultConfig(),
		Webhook:      *webhook.DefaultConfig(),
	}
}

func (c *Config) Validate() error {
	if err := c.SessionScope.Validate(); err != nil {
		return err
	}
	if err := c.Dialogflow.Validate(); err != nil {
		return err
	}
	return c.Webhook.Validate()
}

// DefaultPath returns $FRAROLD_CONFIG, or config.toml under the user
// config dir.
func DefaultPath() (string, error) {
	if p := os.Getenv(PathEnv); p != "" {
		return p, nil
	}
	userConfigDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(userConfigDir, "frarold", "config.toml"), nil
}

// LoadConfig reads the config at DefaultPath.
func LoadConfig() (*Config, error) {
	p, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return Load(p)
}

// Load reads the config file at p, writing the defaults there first if
// it does not exist yet. A .env file in the working directory and then
// FRAROLD_* env variables override what the file says.
func Load(p string) (*Config, error) {
	config, err := readFile(p)
	if err != nil {
		return nil, err
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	if err := env.ParseWithOptions(config, env.Options{Prefix: envPrefix}); err != nil {
		return nil, fmt.Errorf("error getting env configs: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// readFile returns the config as the file at p has it, without env
// overrides.
func readFile(p string) (*Config, error) {
	config := Default()
	if _, err := os.Stat(p); err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		if err := config.writeFile(p); err != nil {
			return nil, fmt.Errorf("failed to write default config: %w", err)
		}
	} else {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, err
		}
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", p, err)
		}
	}
	config.Path = p
	return config, nil
}

// saveToken stores the access token in the config file. Everything else
// in the file stays as it is, so values that only came from the
// environment never end up on disk.
func (c *Config) saveToken(token string) error {
	if c.Path == "" {
		return errors.New("config has no path to save to")
	}
	onDisk, err := readFile(c.Path)
	if err != nil {
		return err
	}
	onDisk.Dialogflow.AccessToken = token
	return onDisk.writeFile(c.Path)
}

func (c *Config) writeFile(p string) error {
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return err
	}
	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(p, data, 0600)
}
