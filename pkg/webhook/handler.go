// Package webhook serves the Dialogflow fulfillment that answers dining
// menu questions.
package webhook

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

const source = "frarold-webhook"

type parameters struct {
	DiningHall string `json:"dining_hall"`
	Meal       string `json:"meal"`
	Date       string `json:"date"`
}

type fulfillmentRequest struct {
	ID        string `json:"id"`
	SessionID string `json:"sessionId"`
	Result    struct {
		Action     string     `json:"action"`
		Parameters parameters `json:"parameters"`
	} `json:"result"`
}

type fulfillmentResponse struct {
	Speech      string `json:"speech"`
	DisplayText string `json:"displayText"`
	Source      string `json:"source"`
}

type Handler struct {
	menu Menu
	now  func() time.Time
	l    *slog.Logger
}

func New(menu Menu, l *slog.Logger) *Handler {
	return &Handler{
		menu: menu,
		now:  time.Now,
		l:    l,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/webhook", h.handleFulfillment)
	r.Get("/healthz", h.handleHealth)
}

// Router returns a chi router with the routes registered.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return r
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// menuDate picks the day to look up. A missing or unreadable date means
// today.
func (h *Handler) menuDate(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return h.now()
	}
	for _, layout := range []string{time.DateOnly, time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	h.l.Warn("Unreadable date, using today", "date", raw)
	return h.now()
}

func (h *Handler) handleFulfillment(w http.ResponseWriter, r *http.Request) {
	var req fulfillmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.l.Warn("Malformed fulfillment request", "error", err)
		http.Error(w, "malformed request", http.StatusBadRequest)
		return
	}
	params := req.Result.Parameters
	l := h.l.With("session_id", req.SessionID, "dining_hall", params.DiningHall, "meal", params.Meal)

	if params.DiningHall == "" || params.Meal == "" {
		l.Info("Missing parameters")
		h.reply(w, "Which dining hall and which meal?")
		return
	}

	day := h.menuDate(params.Date).Weekday()
	items, err := h.menu.FoodItems(r.Context(), params.DiningHall, day, params.Meal)
	if err != nil {
		l.Error("Menu lookup failed", "error", err)
		if errors.Is(err, ErrNoMenu) {
			h.reply(w, fmt.Sprintf("I couldn't find %s at %s on %s.", params.Meal, params.DiningHall, day))
			return
		}
		h.reply(w, err.Error())
		return
	}
	l.Debug("Menu found", "items", len(items))
	h.reply(w, strings.Join(items, ", "))
}

func (h *Handler) reply(w http.ResponseWriter, speech string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(fulfillmentResponse{
		Speech:      speech,
		DisplayText: speech,
		Source:      source,
	}); err != nil {
		h.l.Error("Failed to write response", "error", err)
	}
}
