package client

import (
	"context"

	"github.com/dmitrijs2005/gophprofile/internal/client/models"
)

// Client is the transport contract between the settings screen and the
// remote identity service.
type Client interface {
	// UpdateProfile asks the service to change the display name of the
	// identity authenticated by credential. On success the service returns
	// the canonical identity and a reissued credential.
	UpdateProfile(ctx context.Context, displayName string, credential models.Credential) (models.ProfileUpdate, error)

	// GetProfile returns the identity authenticated by credential.
	GetProfile(ctx context.Context, credential models.Credential) (models.Identity, error)

	// Ping checks that the service is reachable.
	Ping(ctx context.Context) error

	Close() error
}
