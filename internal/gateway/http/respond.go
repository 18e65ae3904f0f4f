package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	authapp "github.com/dwikikusuma/shoping-assistant/internal/auth/app"
	cartapp "github.com/dwikikusuma/shoping-assistant/internal/cart/app"
	catalogapp "github.com/dwikikusuma/shoping-assistant/internal/catalog/app"
	chatapp "github.com/dwikikusuma/shoping-assistant/internal/chat/app"
	checkoutapp "github.com/dwikikusuma/shoping-assistant/internal/checkout/app"
)

// envelope is the body of every API response.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("write response", slog.Any("err", err))
	}
}

func ok(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: data})
}

func fail(w http.ResponseWriter, r *http.Request, err error) {
	status, code, msg := httpStatusFromErr(err)
	if status >= http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Any("err", err),
		)
	}
	writeJSON(w, status, envelope{Success: false, Error: msg, Code: code})
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, envelope{Success: false, Error: msg, Code: "INVALID_ARGUMENT"})
}

var notFound = []error{
	catalogapp.ErrNotFound,
	cartapp.ErrSessionNotFound,
	cartapp.ErrProductNotFound,
	cartapp.ErrItemNotFound,
	chatapp.ErrSessionNotFound,
	authapp.ErrNotFound,
	checkoutapp.ErrEmptyCart,
}

var invalid = []error{
	catalogapp.ErrInvalidInput,
	cartapp.ErrInvalidInput,
	chatapp.ErrInvalidInput,
}

// httpStatusFromErr maps service errors to a status, a stable code and
// a client-safe message.
func httpStatusFromErr(err error) (int, string, string) {
	for _, target := range notFound {
		if errors.Is(err, target) {
			return http.StatusNotFound, "NOT_FOUND", sentence(target.Error())
		}
	}
	for _, target := range invalid {
		if errors.Is(err, target) {
			return http.StatusBadRequest, "INVALID_ARGUMENT", sentence(err.Error())
		}
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return http.StatusServiceUnavailable, "UNAVAILABLE", "Service unavailable"
	}
	return http.StatusInternalServerError, "INTERNAL", "Internal error"
}

// sentence upper-cases the first letter, so "session not found" reads
// "Session not found".
func sentence(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
