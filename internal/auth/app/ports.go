package app

import (
	"context"

	"github.com/dwikikusuma/shoping-assistant/internal/auth/domain"
)

// UserRepo stores registered users keyed by normalized email.
type UserRepo interface {
	Save(ctx context.Context, u domain.User) error
	FindByEmail(ctx context.Context, email string) (domain.User, error)
}
