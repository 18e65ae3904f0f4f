package domain

import (
	"time"

	catalog "github.com/dwikikusuma/shoping-assistant/internal/catalog/domain"
)

type MessageType string

const (
	TypeUser MessageType = "user"
	TypeBot  MessageType = "bot"
)

type ActionType string

const (
	ActionViewProduct ActionType = "view_product"
	ActionAddToCart   ActionType = "add_to_cart"
	ActionFilter      ActionType = "filter"
	ActionSearch      ActionType = "search"
	ActionCheckout    ActionType = "checkout"
)

// Action is a suggestion the client may render as a button.
type Action struct {
	Type  ActionType     `json:"type"`
	Label string         `json:"label"`
	Data  map[string]any `json:"data,omitempty"`
}

// Message is append-only once it is part of a session.
type Message struct {
	ID        string            `json:"id"`
	Content   string            `json:"content"`
	Type      MessageType       `json:"type"`
	Timestamp time.Time         `json:"timestamp"`
	Products  []catalog.Product `json:"products,omitempty"`
	Actions   []Action          `json:"actions,omitempty"`
}

func NewUserMessage(id, content string, at time.Time) Message {
	return Message{ID: id, Content: content, Type: TypeUser, Timestamp: at}
}

func NewBotMessage(id, content string, at time.Time) Message {
	return Message{ID: id, Content: content, Type: TypeBot, Timestamp: at}
}
