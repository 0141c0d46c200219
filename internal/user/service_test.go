package user_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/zetacorp/billing/internal/auth"
	"github.com/zetacorp/billing/internal/user"
)

func newService(t *testing.T) (*user.Service, *user.MockRepository, *auth.Manager) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := user.NewMockRepository(ctrl)
	tokens := auth.NewManager("test-secret", time.Hour)

	return user.NewService(repo, tokens), repo, tokens
}

func TestService_Register(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc, repo, tokens := newService(t)

		repo.EXPECT().GetUserByEmail(gomock.Any(), "new@example.test").Return(nil, user.ErrNotFound)
		repo.EXPECT().
			CreateUser(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, u *user.User) error {
				assert.NotEqual(t, "hunter2", u.PasswordHash)
				u.ID = "u1"
				return nil
			})

		token, err := svc.Register(context.Background(), "New User", "new@example.test", "hunter2")

		require.NoError(t, err)

		userID, err := tokens.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, "u1", userID)
	})

	t.Run("EmailTaken", func(t *testing.T) {
		svc, repo, _ := newService(t)

		repo.EXPECT().
			GetUserByEmail(gomock.Any(), "taken@example.test").
			Return(&user.User{ID: "u1"}, nil)

		_, err := svc.Register(context.Background(), "New User", "taken@example.test", "hunter2")

		require.ErrorIs(t, err, user.ErrEmailTaken)
	})
}

func TestService_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	require.NoError(t, err)

	existing := &user.User{ID: "u1", Email: "u@example.test", PasswordHash: string(hash)}

	t.Run("Success", func(t *testing.T) {
		svc, repo, tokens := newService(t)

		repo.EXPECT().GetUserByEmail(gomock.Any(), "u@example.test").Return(existing, nil)

		token, err := svc.Login(context.Background(), "u@example.test", "hunter2")

		require.NoError(t, err)

		userID, err := tokens.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, "u1", userID)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		svc, repo, _ := newService(t)

		repo.EXPECT().GetUserByEmail(gomock.Any(), "u@example.test").Return(existing, nil)

		_, err := svc.Login(context.Background(), "u@example.test", "wrong")

		require.ErrorIs(t, err, user.ErrInvalidCredentials)
	})

	t.Run("UnknownEmailReportsSameError", func(t *testing.T) {
		svc, repo, _ := newService(t)

		repo.EXPECT().GetUserByEmail(gomock.Any(), "ghost@example.test").Return(nil, user.ErrNotFound)

		_, err := svc.Login(context.Background(), "ghost@example.test", "hunter2")

		require.ErrorIs(t, err, user.ErrInvalidCredentials)
	})
}
