package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// ErrNoMenu means the menu service had nothing for the requested meal.
var ErrNoMenu = errors.New("no menu found")

// Menu looks up the food served at a dining hall.
type Menu interface {
	FoodItems(ctx context.Context, diningHall string, day time.Weekday, meal string) ([]string, error)
}

type menuEntry struct {
	DiningHall string   `json:"dining_hall"`
	Day        string   `json:"day"`
	Meal       string   `json:"meal"`
	FoodItems  []string `json:"foodItems"`
}

// MenuClient reads menus from the ASPC menu API.
type MenuClient struct {
	client *resty.Client
}

func NewMenuClient(c *Config) (*MenuClient, error) {
	token, err := c.Token()
	if err != nil {
		return nil, err
	}
	baseURL, err := normalizeBaseURL(c.MenuBaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid menu_base_url: %w", err)
	}
	client := resty.New().
		SetBaseURL(baseURL).
		SetQueryParam("auth_token", token).
		SetTimeout(c.Timeout)
	return &MenuClient{client: client}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}
	return strings.TrimRight(u.String(), "/"), nil
}

// dayParam is the three-letter lowercase weekday the menu API expects.
func dayParam(day time.Weekday) string {
	return strings.ToLower(day.String()[:3])
}

// FoodItems implements [Menu].
func (m *MenuClient) FoodItems(ctx context.Context, diningHall string, day time.Weekday, meal string) ([]string, error) {
	resp, err := m.client.R().
		SetContext(ctx).
		SetPathParams(map[string]string{
			"hall": diningHall,
			"day":  dayParam(day),
			"meal": meal,
		}).
		Get("/dining_hall/{hall}/day/{day}/meal/{meal}/")
	if err != nil {
		return nil, fmt.Errorf("menu request: %w", err)
	}
	if resp.StatusCode()/100 != 2 {
		return nil, fmt.Errorf("menu request: status %d: %s", resp.StatusCode(), strings.TrimSpace(string(resp.Body())))
	}
	var entries []menuEntry
	if err := json.Unmarshal(resp.Body(), &entries); err != nil {
		return nil, fmt.Errorf("failed to decode menu: %w", err)
	}
	if len(entries) == 0 {
		return nil, ErrNoMenu
	}
	return entries[0].FoodItems, nil
}
