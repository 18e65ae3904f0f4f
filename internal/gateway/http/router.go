// Package http serves the shopping assistant JSON API under /api.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	authapp "github.com/dwikikusuma/shoping-assistant/internal/auth/app"
	cartapp "github.com/dwikikusuma/shoping-assistant/internal/cart/app"
	catalogapp "github.com/dwikikusuma/shoping-assistant/internal/catalog/app"
	chatapp "github.com/dwikikusuma/shoping-assistant/internal/chat/app"
	checkoutapp "github.com/dwikikusuma/shoping-assistant/internal/checkout/app"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type Deps struct {
	Auth     *authapp.Service
	Catalog  *catalogapp.Service
	Chat     *chatapp.Service
	Cart     *cartapp.Service
	Checkout *checkoutapp.Service

	// Ready reports whether backing stores answer. Nil means always ready.
	Ready func(ctx context.Context) error

	// AllowedOrigin is echoed in CORS responses; empty means "*".
	AllowedOrigin string
}

type handler struct {
	Deps
}

func NewRouter(d Deps) http.Handler {
	h := &handler{Deps: d}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors(d.AllowedOrigin))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/readyz", h.readyz)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", h.login)
		r.Post("/auth/register", h.register)

		r.Get("/products/search", h.searchProducts)
		r.Get("/products/categories", h.categories)
		r.Get("/products/{id}", h.getProduct)

		r.Post("/chat/session", h.createSession)
		r.Get("/chat/session/{id}", h.getSession)
		r.Delete("/chat/session/{id}", h.endSession)
		r.Post("/chat/session/{id}/welcome", h.welcome)
		r.Delete("/chat/session/{id}/messages", h.clearHistory)
		r.Post("/chat/message", h.sendMessage)

		r.Post("/cart/add", h.addToCart)
		r.Put("/cart/update", h.updateCart)
		r.Delete("/cart/remove", h.removeFromCart)
		r.Get("/cart/{sessionId}", h.getCart)
		r.Delete("/cart/{sessionId}", h.clearCart)

		r.Get("/checkout/{sessionId}/quote", h.quote)
	})

	return otelhttp.NewHandler(r, "shopassist.http",
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
	)
}

func (h *handler) readyz(w http.ResponseWriter, r *http.Request) {
	if h.Ready == nil {
		w.WriteHeader(http.StatusOK)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := h.Ready(ctx); err != nil {
		slog.WarnContext(ctx, "not ready", slog.Any("err", err))
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		slog.DebugContext(r.Context(), "http request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			slog.Duration("duration", time.Since(start)),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

func cors(origin string) func(http.Handler) http.Handler {
	if origin == "" {
		origin = "*"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hdr := w.Header()
			hdr.Set("Access-Control-Allow-Origin", origin)
			hdr.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			hdr.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
