package app_test

import (
	"context"
	"testing"

	"github.com/dwikikusuma/shoping-assistant/internal/auth/app"
	"github.com/dwikikusuma/shoping-assistant/internal/auth/infra/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc := app.NewService(memory.NewUserRepo())

	t.Run("unknown email derives a user", func(t *testing.T) {
		u, err := svc.Login(ctx, "jane.doe@example.com", "whatever")
		require.NoError(t, err)
		assert.NotEmpty(t, u.ID)
		assert.Equal(t, "jane.doe", u.Name)
		assert.Equal(t, "https://api.dicebear.com/7.x/avataaars/svg?seed=jane.doe%40example.com", u.Avatar)
	})

	t.Run("avatar is deterministic", func(t *testing.T) {
		a, err := svc.Login(ctx, "x@y.z", "")
		require.NoError(t, err)
		b, err := svc.Login(ctx, "x@y.z", "")
		require.NoError(t, err)
		assert.Equal(t, a.Avatar, b.Avatar)
	})

	t.Run("registered email returns the stored user", func(t *testing.T) {
		reg, err := svc.Register(ctx, "Sam", "sam@example.com", "pw")
		require.NoError(t, err)

		u, err := svc.Login(ctx, " SAM@example.com ", "wrong-password")
		require.NoError(t, err)
		assert.Equal(t, reg, u)
	})

	t.Run("blank email still succeeds", func(t *testing.T) {
		u, err := svc.Login(ctx, "  ", "")
		require.NoError(t, err)
		assert.NotEmpty(t, u.ID)
		assert.Empty(t, u.Name)
	})
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	svc := app.NewService(memory.NewUserRepo())

	u, err := svc.Register(ctx, "", "kim@example.com", "")
	require.NoError(t, err)
	assert.Equal(t, "kim", u.Name)

	u, err = svc.Register(ctx, "Kim", "KIM@example.com", "")
	require.NoError(t, err)

	got, err := svc.Login(ctx, "kim@example.com", "")
	require.NoError(t, err)
	assert.Equal(t, u, got)
}
