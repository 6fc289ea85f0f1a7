package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/smacpher/frarold/pkg/chat/dialogflow"
)

// AskFunc asks the user for a secret value.
type AskFunc func(label string) (string, error)

// AskMasked prompts on the terminal without echoing the input.
func AskMasked(label string) (string, error) {
	p := promptui.Prompt{
		Label: label,
		Mask:  '*',
		Validate: func(s string) error {
			if strings.TrimSpace(s) == "" {
				return errors.New("must not be empty")
			}
			return nil
		},
	}
	return p.Run()
}

// EnsureToken makes sure a Dialogflow client access token is available.
// When none is configured it asks for one and saves it into the config
// file. ask may be nil when there is no terminal to ask on.
func (c *Config) EnsureToken(ask AskFunc) error {
	_, err := c.Dialogflow.Token()
	if err == nil {
		return nil
	}
	if !errors.Is(err, dialogflow.ErrMissingToken) || ask == nil {
		return fmt.Errorf("%w: set %s or access_token in %s", err, c.tokenEnv(), c.Path)
	}
	token, err := ask("Dialogflow client access token")
	if err != nil {
		return err
	}
	c.Dialogflow.AccessToken = strings.TrimSpace(token)
	if c.Dialogflow.AccessToken == "" {
		return dialogflow.ErrMissingToken
	}
	if c.Path == "" {
		return nil
	}
	if err := c.saveToken(c.Dialogflow.AccessToken); err != nil {
		return fmt.Errorf("failed to save access token: %w", err)
	}
	return nil
}

func (c *Config) tokenEnv() string {
	if c.Dialogflow.AccessTokenEnv != "" {
		return c.Dialogflow.AccessTokenEnv
	}
	return envPrefix + "DIALOGFLOW_ACCESS_TOKEN"
}
