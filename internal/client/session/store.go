// Package session holds the signed-in identity and its credential for the
// whole client application.
//
// Store is the narrow read/write contract the rest of the client depends on.
// Two implementations are provided:
//   - MemoryStore: process-local, used by tests and when no database is configured.
//   - SQLiteStore: MemoryStore semantics plus persistence in the local SQLite
//     database, so the session survives restarts.
//
// Both guarantee that Update writes identity and credential together: a
// reader never observes a new identity with an old credential or vice versa.
package session

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/gophprofile/internal/client/models"
)

var (
	// ErrNoCredential is returned when an operation needs a credential and
	// the store holds none.
	ErrNoCredential = errors.New("no credential in session")
)

// Listener receives the identity after every identity write.
type Listener func(identity models.Identity)

// Store is the shared holder of the current identity and credential.
type Store interface {
	Identity() models.Identity
	Credential() models.Credential

	SetIdentity(ctx context.Context, identity models.Identity) error
	SetCredential(ctx context.Context, credential models.Credential) error

	// Update replaces identity and credential atomically with respect to
	// each other.
	Update(ctx context.Context, identity models.Identity, credential models.Credential) error

	// Clear drops the session (logout).
	Clear(ctx context.Context) error

	// Subscribe registers fn for identity changes and returns a function
	// that removes it.
	Subscribe(fn Listener) (unsubscribe func())
}
