package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/user"
)

type UserRepository struct {
	mu    sync.RWMutex
	users map[string]user.User
}

func NewUserRepository(seed ...user.User) *UserRepository {
	r := &UserRepository{users: make(map[string]user.User)}
	for _, u := range seed {
		r.users[u.ID] = u
	}
	return r
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (r *UserRepository) GetByID(_ context.Context, id string) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (r *UserRepository) ListByRole(_ context.Context, role user.Role) ([]user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []user.User
	for _, u := range r.users {
		if u.Role == role {
			result = append(result, u)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *UserRepository) Create(_ context.Context, u user.User) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return user.User{}, user.ErrEmailTaken
		}
	}
	r.users[u.ID] = u
	return u, nil
}
