package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/sakif/your-yoda/internal/apperror"
	"github.com/sakif/your-yoda/internal/model"
	"github.com/sakif/your-yoda/internal/repository"
)

var _ repository.UserRepository = (*UserStore)(nil)

type UserStore struct {
	mu    sync.RWMutex
	users []model.User
}

func NewUserStore() *UserStore {
	return &UserStore{}
}

func (s *UserStore) Create(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, user.Email) {
			return apperror.Conflict("user", user.Email)
		}
	}

	stamp(&user.ID, &user.CreatedAt)
	s.users = append(s.users, *user)
	return nil
}

func (s *UserStore) GetByID(_ context.Context, id string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.ID == id {
			found := u
			return &found, nil
		}
	}
	return nil, apperror.NotFound("user", id)
}

func (s *UserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			found := u
			return &found, nil
		}
	}
	return nil, apperror.NotFound("user", email)
}
