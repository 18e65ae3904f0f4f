package app

import (
	"context"

	"github.com/dwikikusuma/shoping-assistant/internal/session/domain"
)

// Store persists whole sessions. Get and Update return ErrNotFound for
// unknown ids. Implementations need not serialize writers; Service does.
type Store interface {
	Create(ctx context.Context, s domain.Session) error
	Get(ctx context.Context, id string) (domain.Session, error)
	Update(ctx context.Context, s domain.Session) error
	Delete(ctx context.Context, id string) error
}
