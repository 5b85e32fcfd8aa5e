// Package users stores the accounts of the identity service.
package users

import (
	"context"

	"github.com/dmitrijs2005/gophprofile/internal/server/models"
)

// Repository is the persistence contract for users. Lookups of a missing
// user return common.ErrorNotFound.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByName matches names case-insensitively.
	GetByName(ctx context.Context, name string) (*models.User, error)
	// UpdateName stores name and bumps the token version, returning the
	// updated user.
	UpdateName(ctx context.Context, id, name string) (*models.User, error)
}
