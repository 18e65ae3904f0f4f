package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dwikikusuma/shoping-assistant/internal/auth/domain"
	"github.com/google/uuid"
)

var ErrNotFound = errors.New("user not found")

// Service issues users without checking credentials. Passwords are
// accepted and ignored, and no input is rejected.
type Service struct {
	repo  UserRepo
	newID func() string
}

func NewService(repo UserRepo) *Service {
	return &Service{repo: repo, newID: uuid.NewString}
}

// Login returns the registered user for email, or a user derived from
// the email when none is registered.
func (s *Service) Login(ctx context.Context, email, _ string) (domain.User, error) {
	email = strings.TrimSpace(email)

	u, err := s.repo.FindByEmail(ctx, domain.NormalizeEmail(email))
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return domain.User{}, fmt.Errorf("find user: %w", err)
	}

	return domain.User{
		ID:     s.newID(),
		Email:  email,
		Name:   domain.NameFromEmail(email),
		Avatar: domain.AvatarFor(email),
	}, nil
}

// Register stores a new user. Registering an email again replaces the
// previous record.
func (s *Service) Register(ctx context.Context, name, email, _ string) (domain.User, error) {
	email = strings.TrimSpace(email)
	name = strings.TrimSpace(name)
	if name == "" {
		name = domain.NameFromEmail(email)
	}

	u := domain.User{
		ID:     s.newID(),
		Email:  email,
		Name:   name,
		Avatar: domain.AvatarFor(email),
	}
	if err := s.repo.Save(ctx, u); err != nil {
		return domain.User{}, fmt.Errorf("save user: %w", err)
	}

	slog.InfoContext(ctx, "user registered", slog.String("user_id", u.ID))
	return u, nil
}
