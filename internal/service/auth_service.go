package service

import (
	"errors"
	"fmt"

	"go-recordshop/internal/model"
	"go-recordshop/internal/repository"
	"go-recordshop/pkg/jwt"

	"go.uber.org/zap"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
)

type AuthService interface {
	Login(email, password string) (*LoginResponse, error)
	Authenticate(email, password string) (*model.Principal, error)
	ValidateToken(tokenString string) (*TokenValidationResponse, error)
}

// LoginResponse is the principal plus a bearer token.
type LoginResponse struct {
	model.Principal
	Token string `json:"token"`
}

type TokenValidationResponse struct {
	User       model.Principal `json:"user"`
	Privileges []string        `json:"privileges"`
}

type authService struct {
	userRepo repository.UserRepository
	tokens   *jwt.Manager
	log      *zap.Logger
}

func NewAuthService(userRepo repository.UserRepository, tokens *jwt.Manager, log *zap.Logger) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
		log:      log,
	}
}

// Authenticate matches email and password exactly. Unknown email and wrong password
// both yield ErrInvalidCredentials.
func (s *authService) Authenticate(email, password string) (*model.Principal, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}
	p := user.ToPrincipal()
	return &p, nil
}

func (s *authService) Login(email, password string) (*LoginResponse, error) {
	principal, err := s.Authenticate(email, password)
	if err != nil {
		s.log.Info("login rejected")
		return nil, err
	}

	token, err := s.tokens.GenerateToken(principal.ID, principal.Email, principal.Name, principal.Role, model.PrivilegesFor(principal.Role))
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	s.log.Info("login", zap.String("email", principal.Email), zap.String("role", principal.Role))
	return &LoginResponse{Principal: *principal, Token: token}, nil
}

func (s *authService) ValidateToken(tokenString string) (*TokenValidationResponse, error) {
	claims, err := s.tokens.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	// The account must still exist and keep the role the token was issued for.
	user, err := s.userRepo.FindByID(claims.UserID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	if user.Role != claims.Role {
		return nil, jwt.ErrInvalidToken
	}

	return &TokenValidationResponse{
		User:       user.ToPrincipal(),
		Privileges: model.PrivilegesFor(user.Role),
	}, nil
}
