package users

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/gophprofile/internal/common"
	"github.com/dmitrijs2005/gophprofile/internal/server/models"
)

// MemoryRepository keeps users in process memory. It backs the server when
// no database is configured. Emails and names are unique ignoring case, as
// with the PostgreSQL indexes.
type MemoryRepository struct {
	mu    sync.RWMutex
	users map[string]models.User
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{users: make(map[string]models.User)}
}

func (r *MemoryRepository) Create(_ context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if strings.EqualFold(u.Email, user.Email) || strings.EqualFold(u.Name, user.Name) {
			return nil, common.ErrorAlreadyExists
		}
	}

	user.ID = uuid.NewString()
	user.TokenVersion = 0
	user.CreatedAt = time.Now().UTC()
	r.users[user.ID] = *user

	return user, nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &u, nil
}

func (r *MemoryRepository) GetByName(_ context.Context, name string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if strings.EqualFold(u.Name, name) {
			return &u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *MemoryRepository) UpdateName(_ context.Context, id, name string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	if r.nameHeldByOther(id, name) {
		return nil, common.ErrNameTaken
	}
	u.Name = name
	u.TokenVersion++
	r.users[id] = u

	return &u, nil
}

// nameHeldByOther reports whether a user other than id has name. Callers
// hold r.mu.
func (r *MemoryRepository) nameHeldByOther(id, name string) bool {
	for otherID, u := range r.users {
		if otherID != id && strings.EqualFold(u.Name, name) {
			return true
		}
	}
	return false
}
