package memory

import (
	"context"
	"sync"

	"github.com/dwikikusuma/shoping-assistant/internal/auth/app"
	"github.com/dwikikusuma/shoping-assistant/internal/auth/domain"
)

type UserRepo struct {
	mu    sync.RWMutex
	users map[string]domain.User
}

func NewUserRepo() *UserRepo {
	return &UserRepo{users: make(map[string]domain.User)}
}

func (r *UserRepo) Save(_ context.Context, u domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[domain.NormalizeEmail(u.Email)] = u
	return nil
}

func (r *UserRepo) FindByEmail(_ context.Context, email string) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[domain.NormalizeEmail(email)]
	if !ok {
		return domain.User{}, app.ErrNotFound
	}
	return u, nil
}
