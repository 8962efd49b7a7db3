package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kutanig/explore-with-me/internal/entity"
)

// TestUserAdmin проверяет административные операции с пользователями
func TestUserAdmin(t *testing.T) {
	env := newTestEnv()
	svc := NewUserService(env.users)

	t.Run("create", func(t *testing.T) {
		user, err := svc.CreateUser(context.Background(), &NewUserRequest{
			Email: "ivan@example.com",
			Name:  "Иван",
		})
		require.NoError(t, err)
		assert.NotZero(t, user.ID)
	})

	t.Run("duplicate email is a conflict", func(t *testing.T) {
		_, err := svc.CreateUser(context.Background(), &NewUserRequest{
			Email: "ivan@example.com",
			Name:  "Другой Иван",
		})
		assert.ErrorIs(t, err, entity.ErrUserEmailExists)
	})

	t.Run("list with ids filter", func(t *testing.T) {
		second, err := svc.CreateUser(context.Background(), &NewUserRequest{
			Email: "petr@example.com",
			Name:  "Петр",
		})
		require.NoError(t, err)

		users, err := svc.GetUsers(context.Background(), []int64{second.ID}, 0, 10)
		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Equal(t, "Петр", users[0].Name)
	})

	t.Run("delete unknown user", func(t *testing.T) {
		err := svc.DeleteUser(context.Background(), 999)
		assert.ErrorIs(t, err, entity.ErrUserNotFound)
	})
}
