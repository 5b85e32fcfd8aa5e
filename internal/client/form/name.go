// Package form holds the locally edited state of the settings screen.
package form

import (
	"strings"
	"sync"

	"github.com/dmitrijs2005/gophprofile/internal/client/models"
)

// NameForm holds the user's in-progress edit of the display name.
//
// The value is stored exactly as typed; trimming only happens when the
// name is validated or submitted. NameForm is safe for concurrent use.
type NameForm struct {
	mu   sync.RWMutex
	name string
}

// NewNameForm returns a form initialised from identity.
func NewNameForm(identity models.Identity) *NameForm {
	return &NameForm{name: identity.DisplayName}
}

// SetName replaces the edited name verbatim.
func (f *NameForm) SetName(raw string) {
	f.mu.Lock()
	f.name = raw
	f.mu.Unlock()
}

// Name returns the edited name as typed.
func (f *NameForm) Name() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.name
}

// Trimmed returns the edited name without leading/trailing whitespace.
// This is the value sent to the server.
func (f *NameForm) Trimmed() string {
	return strings.TrimSpace(f.Name())
}

// IsValid reports whether the trimmed name is non-empty.
func (f *NameForm) IsValid() bool {
	return f.Trimmed() != ""
}

// SyncFromIdentity resets the edited name to the canonical display name.
func (f *NameForm) SyncFromIdentity(identity models.Identity) {
	f.SetName(identity.DisplayName)
}
