package service

import (
	"strings"
	"testing"
	"time"

	"go-recordshop/internal/model"
	"go-recordshop/internal/repository"
	"go-recordshop/pkg/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAuthService(t *testing.T) AuthService {
	t.Helper()
	users, err := repository.NewUserRepo(model.DefaultUsers)
	require.NoError(t, err)
	return NewAuthService(users, jwt.NewManager("test-secret", "test", time.Hour), zap.NewNop())
}

func TestAuthService_Login(t *testing.T) {
	svc := newAuthService(t)

	res, err := svc.Login("admin@recordshop.com", "password")
	require.NoError(t, err)
	assert.Equal(t, model.Principal{ID: 3, Name: "Alex Admin", Email: "admin@recordshop.com", Role: model.RoleAdmin}, res.Principal)
	assert.NotEmpty(t, res.Token)
}

func TestAuthService_LoginRejected(t *testing.T) {
	svc := newAuthService(t)

	tests := []struct {
		name, email, password string
	}{
		{"wrong password", "admin@recordshop.com", "nope"},
		{"unknown email", "nobody@recordshop.com", "password"},
		{"email case differs", "ADMIN@recordshop.com", "password"},
		{"empty", "", ""},
		{"empty password", "admin@recordshop.com", ""},
		{"NUL suffix", "admin@recordshop.com", "password\x00password"},
		{"NUL repeated past 72 bytes", "admin@recordshop.com", strings.Repeat("password\x00", 8) + "trailing-garbage"},
		{"longer than 72 bytes", "admin@recordshop.com", "password" + strings.Repeat("x", 80)},
		{"upper case", "admin@recordshop.com", "PASSWORD"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := svc.Login(tt.email, tt.password)
			assert.ErrorIs(t, err, ErrInvalidCredentials)
			assert.Nil(t, res)
		})
	}
}

func TestAuthService_ValidateToken(t *testing.T) {
	svc := newAuthService(t)

	res, err := svc.Login("clerk@recordshop.com", "password")
	require.NoError(t, err)

	v, err := svc.ValidateToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, "clerk@recordshop.com", v.User.Email)
	assert.Equal(t, []string{model.PrivRecordView, model.PrivRecordCreate}, v.Privileges)

	_, err = svc.ValidateToken("")
	assert.ErrorIs(t, err, jwt.ErrMissingToken)
}

func TestAuthService_ValidateTokenStaleRole(t *testing.T) {
	users, err := repository.NewUserRepo(model.DefaultUsers)
	require.NoError(t, err)
	tokens := jwt.NewManager("test-secret", "test", time.Hour)
	svc := NewAuthService(users, tokens, zap.NewNop())

	stale, err := tokens.GenerateToken(1, "clerk@recordshop.com", "Chris Clerk", model.RoleAdmin, nil)
	require.NoError(t, err)
	_, err = svc.ValidateToken(stale)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)

	ghost, err := tokens.GenerateToken(99, "ghost@recordshop.com", "Ghost", model.RoleAdmin, nil)
	require.NoError(t, err)
	_, err = svc.ValidateToken(ghost)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
