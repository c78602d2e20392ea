package accounts

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/accounts/internal/common"
	"github.com/dmitrijs2005/accounts/internal/server/models"
	"github.com/google/uuid"
)

// MemoryRepository keeps accounts in process memory. The email index and the
// records are guarded by one mutex, so check-and-insert and check-and-update
// are atomic. Returned accounts are copies.
type MemoryRepository struct {
	mu      sync.RWMutex
	byID    map[string]models.Account
	byEmail map[string]string
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:    make(map[string]models.Account),
		byEmail: make(map[string]string),
	}
}

func (r *MemoryRepository) Create(ctx context.Context, email, secret string) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byEmail[email]; taken {
		return nil, common.ErrEmailTaken
	}

	a := models.Account{ID: uuid.NewString(), Email: email, Secret: secret}
	r.byID[a.ID] = a
	r.byEmail[email] = a.ID

	return &a, nil
}

func (r *MemoryRepository) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	a := r.byID[id]
	return &a, nil
}

func (r *MemoryRepository) FindByID(ctx context.Context, id string) (*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &a, nil
}

func (r *MemoryRepository) Update(ctx context.Context, id string, patch models.AccountPatch) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}

	if patch.Email != nil && *patch.Email != a.Email {
		if _, taken := r.byEmail[*patch.Email]; taken {
			return nil, common.ErrEmailTaken
		}
		delete(r.byEmail, a.Email)
		a.Email = *patch.Email
		r.byEmail[a.Email] = a.ID
	}
	if patch.Secret != nil {
		a.Secret = *patch.Secret
	}
	r.byID[id] = a

	return &a, nil
}

func (r *MemoryRepository) DeleteByID(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byID[id]
	if !ok {
		return common.ErrorNotFound
	}
	delete(r.byEmail, a.Email)
	delete(r.byID, id)

	return nil
}

// Len returns the number of stored accounts.
func (r *MemoryRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}
