package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	cart "github.com/dwikikusuma/shoping-assistant/internal/cart/domain"
	catalog "github.com/dwikikusuma/shoping-assistant/internal/catalog/domain"
	"github.com/dwikikusuma/shoping-assistant/internal/chat/domain"
)

// Product card caps per reply.
const (
	searchCap   = 6
	categoryCap = 4
)

const (
	TextLaptops     = "Here are our top laptop recommendations:"
	TextSmartphones = "Check out these amazing smartphones:"
	TextBooks       = "Here are some popular books you might enjoy:"
	TextEmptyCart   = "Your cart is currently empty. Would you like me to help you find some products?"

	TextHelp = "I can help you with:\n\n" +
		"• 🔍 **Product Search** - Find specific items or browse categories\n" +
		"• 📱 **Product Details** - Get detailed information about any product\n" +
		"• 🛒 **Shopping Cart** - Add items, view cart, and checkout\n" +
		"• 💡 **Recommendations** - Get personalized product suggestions\n" +
		"• 📞 **Support** - Answer questions about orders, shipping, and returns\n\n" +
		"Just ask me anything! For example: 'Show me laptops under $1000' or 'I need a good smartphone'"
)

var suggestions = []string{
	"Show me laptops under $1000",
	"I need a new smartphone",
	"Find me some programming books",
	"What are your best sellers?",
}

// TextFallback lists the example queries as bullets.
var TextFallback = "I'd be happy to help you! Here are some things you can try:\n\n" +
	bullets(suggestions) +
	"\n\nOr just tell me what you're looking for!"

func bullets(items []string) string {
	lines := make([]string, len(items))
	for i, s := range items {
		lines[i] = "• " + s
	}
	return strings.Join(lines, "\n")
}

// Catalog is the part of the catalog the router queries.
type Catalog interface {
	Search(ctx context.Context, q catalog.SearchQuery) ([]catalog.Product, error)
	ByCategory(ctx context.Context, category, subcategory string) ([]catalog.Product, error)
}

// Intent names the rule that produced a reply.
type Intent string

const (
	IntentSearch      Intent = "search"
	IntentLaptops     Intent = "laptops"
	IntentSmartphones Intent = "smartphones"
	IntentBooks       Intent = "books"
	IntentCart        Intent = "cart"
	IntentHelp        Intent = "help"
	IntentFallback    Intent = "fallback"
)

type rule struct {
	intent   Intent
	keywords []string
}

// rules are tried in order; the first rule with a keyword contained in
// the lowercased text wins.
var rules = []rule{
	{IntentSearch, []string{"search", "find", "looking for"}},
	{IntentLaptops, []string{"laptop", "computer"}},
	{IntentSmartphones, []string{"phone", "smartphone"}},
	{IntentBooks, []string{"book"}},
	{IntentCart, []string{"cart", "basket"}},
	{IntentHelp, []string{"help", "what can you do"}},
}

// Classify returns the intent for text.
func Classify(text string) Intent {
	lower := strings.ToLower(text)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return r.intent
			}
		}
	}
	return IntentFallback
}

// Router turns user text into exactly one bot message.
type Router struct {
	catalog Catalog
	newID   func() string
	now     func() time.Time
}

func NewRouter(c Catalog, newID func() string, now func() time.Time) *Router {
	return &Router{catalog: c, newID: newID, now: now}
}

// Reply never fails. A catalog error yields the intent's text with no
// products and is logged.
func (r *Router) Reply(ctx context.Context, text string, c cart.Cart) (domain.Message, Intent) {
	intent := Classify(text)

	var content string
	var products []catalog.Product
	var actions []domain.Action

	switch intent {
	case IntentSearch:
		found := r.query(ctx, intent, func() ([]catalog.Product, error) {
			return r.catalog.Search(ctx, catalog.SearchQuery{Text: text})
		})
		content = fmt.Sprintf("I found %d products that match your search. Here are some great options:", len(found))
		products = limit(found, searchCap)
		actions = []domain.Action{
			{Type: domain.ActionSearch, Label: "Refine Search", Data: map[string]any{"query": text}},
			{Type: domain.ActionFilter, Label: "Apply Filters"},
		}
	case IntentLaptops:
		content = TextLaptops
		products = limit(r.byCategory(ctx, intent, "Electronics", "Laptops"), categoryCap)
	case IntentSmartphones:
		content = TextSmartphones
		products = limit(r.byCategory(ctx, intent, "Electronics", "Smartphones"), categoryCap)
	case IntentBooks:
		content = TextBooks
		products = limit(r.byCategory(ctx, intent, "Books", ""), categoryCap)
	case IntentCart:
		if len(c) == 0 {
			content = TextEmptyCart
			break
		}
		content = fmt.Sprintf("You have %d item(s) in your cart with a total of $%s. Would you like to proceed to checkout?",
			c.ItemCount(), cart.FormatPrice(c.TotalPrice()))
		actions = []domain.Action{{Type: domain.ActionCheckout, Label: "Proceed to Checkout"}}
	case IntentHelp:
		content = TextHelp
	default:
		content = TextFallback
	}

	msg := domain.NewBotMessage(r.newID(), content, r.now())
	msg.Products = products
	msg.Actions = actions
	return msg, intent
}

func (r *Router) byCategory(ctx context.Context, intent Intent, category, subcategory string) []catalog.Product {
	return r.query(ctx, intent, func() ([]catalog.Product, error) {
		return r.catalog.ByCategory(ctx, category, subcategory)
	})
}

func (r *Router) query(ctx context.Context, intent Intent, fn func() ([]catalog.Product, error)) []catalog.Product {
	products, err := fn()
	if err != nil {
		slog.WarnContext(ctx, "catalog query failed",
			slog.String("intent", string(intent)),
			slog.Any("err", err),
		)
		return nil
	}
	return products
}

func limit(products []catalog.Product, n int) []catalog.Product {
	if len(products) > n {
		return products[:n:n]
	}
	return products
}
