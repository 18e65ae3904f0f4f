package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	catalog "github.com/dwikikusuma/shoping-assistant/internal/catalog/domain"
	"github.com/go-chi/chi/v5"
)

const maxBody = 1 << 20

// decode reads a JSON body into dst. An empty body leaves dst zero.
func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBody)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		badRequest(w, "Invalid JSON body")
		return false
	}
	return true
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decode(w, r, &req) {
		return
	}
	u, err := h.Auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		fail(w, r, err)
		return
	}
	ok(w, map[string]any{"user": u})
}

func (h *handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decode(w, r, &req) {
		return
	}
	u, err := h.Auth.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		fail(w, r, err)
		return
	}
	ok(w, map[string]any{"user": u})
}

func (h *handler) searchProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := catalog.SearchQuery{
		Text:     q.Get("q"),
		Category: q.Get("category"),
	}

	var err error
	if query.MinPrice, err = priceParam(q.Get("minPrice")); err != nil {
		badRequest(w, "minPrice: "+err.Error())
		return
	}
	if query.MaxPrice, err = priceParam(q.Get("maxPrice")); err != nil {
		badRequest(w, "maxPrice: "+err.Error())
		return
	}

	products, err := h.Catalog.Search(r.Context(), query)
	if err != nil {
		fail(w, r, err)
		return
	}
	ok(w, products)
}

func priceParam(v string) (*float64, error) {
	if v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, fmt.Errorf("%q is not a number", v)
	}
	return &f, nil
}

func (h *handler) categories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.Catalog.Categories(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}
	ok(w, cats)
}

func (h *handler) getProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.Catalog.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		fail(w, r, err)
		return
	}
	ok(w, p)
}

type createSessionRequest struct {
	UserID string `json:"userId"`
}

func (h *handler) createSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if !decode(w, r, &req) {
		return
	}
	sess, err := h.Chat.StartSession(r.Context(), req.UserID)
	if err != nil {
		fail(w, r, err)
		return
	}
	ok(w, sess)
}

func (h *handler) getSession(w http.ResponseWriter, r *http.Request) {
	sess, err := h.Chat.Session(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		fail(w, r, err)
		return
	}
	ok(w, sess)
}

func (h *handler) endSession(w http.ResponseWriter, r *http.Request) {
	if err := h.Chat.EndSession(r.Context(), chi.URLParam(r, "id")); err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true})
}

type welcomeRequest struct {
	Name string `json:"name"`
}

func (h *handler) welcome(w http.ResponseWriter, r *http.Request) {
	var req welcomeRequest
	if !decode(w, r, &req) {
		return
	}
	msg, err := h.Chat.Welcome(r.Context(), chi.URLParam(r, "id"), req.Name)
	if err != nil {
		fail(w, r, err)
		return
	}
	ok(w, msg)
}

func (h *handler) clearHistory(w http.ResponseWriter, r *http.Request) {
	sess, err := h.Chat.ClearHistory(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		fail(w, r, err)
		return
	}
	ok(w, sess)
}

type sendMessageRequest struct {
	SessionID string `json:"sessionId"`
	Message   string `json:"message"`
}

func (h *handler) sendMessage(w http.ResponseWriter, r *http.Request) {
	var req sendMessageRequest
	if !decode(w, r, &req) {
		return
	}
	ex, err := h.Chat.Send(r.Context(), req.SessionID, req.Message)
	if err != nil {
		fail(w, r, err)
		return
	}
	ok(w, ex)
}

type cartItemRequest struct {
	SessionID string `json:"sessionId"`
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

func (h *handler) addToCart(w http.ResponseWriter, r *http.Request) {
	var req cartItemRequest
	if !decode(w, r, &req) {
		return
	}
	v, err := h.Cart.Add(r.Context(), req.SessionID, req.ProductID, req.Quantity)
	if err != nil {
		fail(w, r, err)
		return
	}
	ok(w, v)
}

func (h *handler) updateCart(w http.ResponseWriter, r *http.Request) {
	var req cartItemRequest
	if !decode(w, r, &req) {
		return
	}
	v, err := h.Cart.Update(r.Context(), req.SessionID, req.ProductID, req.Quantity)
	if err != nil {
		fail(w, r, err)
		return
	}
	ok(w, v)
}

func (h *handler) removeFromCart(w http.ResponseWriter, r *http.Request) {
	var req cartItemRequest
	if !decode(w, r, &req) {
		return
	}
	v, err := h.Cart.Remove(r.Context(), req.SessionID, req.ProductID)
	if err != nil {
		fail(w, r, err)
		return
	}
	ok(w, v)
}

func (h *handler) getCart(w http.ResponseWriter, r *http.Request) {
	v, err := h.Cart.Get(r.Context(), chi.URLParam(r, "sessionId"))
	if err != nil {
		fail(w, r, err)
		return
	}
	ok(w, v)
}

func (h *handler) clearCart(w http.ResponseWriter, r *http.Request) {
	v, err := h.Cart.Clear(r.Context(), chi.URLParam(r, "sessionId"))
	if err != nil {
		fail(w, r, err)
		return
	}
	ok(w, v)
}

func (h *handler) quote(w http.ResponseWriter, r *http.Request) {
	q, err := h.Checkout.Quote(r.Context(), chi.URLParam(r, "sessionId"))
	if err != nil {
		fail(w, r, err)
		return
	}
	ok(w, q)
}
