// Package accounts stores account records. Every implementation enforces
// email uniqueness at write time and reports a conflict as
// common.ErrEmailTaken, distinct from any other failure.
package accounts

import (
	"context"

	"github.com/dmitrijs2005/accounts/internal/server/models"
)

type Repository interface {
	// Create assigns a new ID and inserts the account.
	Create(ctx context.Context, email, secret string) (*models.Account, error)
	FindByEmail(ctx context.Context, email string) (*models.Account, error)
	FindByID(ctx context.Context, id string) (*models.Account, error)
	// Update applies patch atomically and returns the resulting record.
	Update(ctx context.Context, id string, patch models.AccountPatch) (*models.Account, error)
	DeleteByID(ctx context.Context, id string) error
}
