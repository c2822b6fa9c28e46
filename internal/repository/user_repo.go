package repository

import (
	"errors"
	"fmt"

	"go-recordshop/internal/model"
)

var ErrUserNotFound = errors.New("user not found")

type UserRepository interface {
	FindByEmail(email string) (*model.User, error)
	FindByID(id int) (*model.User, error)
	FindAll() ([]model.User, error)
}

// userRepo is a fixed list of accounts; nothing in the API creates or edits users.
type userRepo struct {
	users []model.User
}

// NewUserRepo hashes the seed passwords once at start-up.
func NewUserRepo(seed []model.SeedUser) (UserRepository, error) {
	users := make([]model.User, 0, len(seed))
	for _, s := range seed {
		u := model.User{ID: s.ID, Email: s.Email, Role: s.Role, Name: s.Name}
		if err := u.SetPassword(s.Password); err != nil {
			return nil, fmt.Errorf("hash password for %s: %w", s.Email, err)
		}
		users = append(users, u)
	}
	return &userRepo{users: users}, nil
}

// FindByEmail is an exact, case-sensitive match.
func (r *userRepo) FindByEmail(email string) (*model.User, error) {
	for i := range r.users {
		if r.users[i].Email == email {
			u := r.users[i]
			return &u, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *userRepo) FindByID(id int) (*model.User, error) {
	for i := range r.users {
		if r.users[i].ID == id {
			u := r.users[i]
			return &u, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *userRepo) FindAll() ([]model.User, error) {
	out := make([]model.User, len(r.users))
	copy(out, r.users)
	return out, nil
}
