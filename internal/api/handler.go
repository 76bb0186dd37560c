package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/confenv/confenv"
)

type contextKey string

const requestIDContextKey contextKey = "requestID"

// Handler wires the resolved configuration snapshot into HTTP handlers.
type Handler struct {
	snapshot *confenv.Snapshot

	clock func() time.Time
}

// HandlerOption configures Handler behaviour.
type HandlerOption func(*Handler)

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) HandlerOption {
	return func(h *Handler) {
		h.clock = clock
	}
}

// NewHandler constructs a Handler serving the provided snapshot.
func NewHandler(snapshot *confenv.Snapshot, opts ...HandlerOption) *Handler {
	h := &Handler{
		snapshot: snapshot,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	_ = r
	resp := healthResponse{
		Status:    "ok",
		Prefix:    h.snapshot.Prefix(),
		Timestamp: h.clock(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	_ = r
	resp := configResponse{
		Prefix:  h.snapshot.Prefix(),
		Options: h.snapshot.All(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleGetOption(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	value, err := h.snapshot.Get(name)
	if err != nil {
		if errors.Is(err, confenv.ErrUnknownOption) {
			writeError(w, http.StatusNotFound, "Unknown option", err.Error())
			return
		}
		writeInternalError(w, err)
		return
	}

	resp := optionResponse{
		Name:   confenv.NormalizeOption(name),
		EnvKey: confenv.EnvKey(h.snapshot.Prefix(), name),
		Value:  value,
		Type:   fmt.Sprintf("%T", value),
	}
	writeJSON(w, http.StatusOK, resp)
}

type healthResponse struct {
	Status    string    `json:"status"`
	Prefix    string    `json:"prefix"`
	Timestamp time.Time `json:"timestamp"`
}

type configResponse struct {
	Prefix  string         `json:"prefix"`
	Options map[string]any `json:"options"`
}

type optionResponse struct {
	Name   string `json:"name"`
	EnvKey string `json:"envKey"`
	Value  any    `json:"value"`
	Type   string `json:"type"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message, details string) {
	writeJSON(w, status, errorResponse{
		Error:   message,
		Details: details,
	})
}

func writeInternalError(w http.ResponseWriter, err error) {
	writeError(w, http.StatusInternalServerError, "Internal error", err.Error())
}
