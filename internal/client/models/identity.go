// Package models defines the client-side account types: the signed-in
// identity, its credential and the state of a profile-update attempt.
package models

// Identity is the authenticated user's profile record as returned by the
// identity service. Email is read-only on the settings screen.
type Identity struct {
	ID          string  `json:"id"`
	DisplayName string  `json:"name"`
	Email       string  `json:"email"`
	AvatarRef   *string `json:"avatar,omitempty"`
}

// IsZero reports whether no identity is loaded.
func (i Identity) IsZero() bool {
	return i.ID == "" && i.DisplayName == "" && i.Email == "" && i.AvatarRef == nil
}

// Equal compares identities field by field, including the avatar value.
func (i Identity) Equal(o Identity) bool {
	if i.ID != o.ID || i.DisplayName != o.DisplayName || i.Email != o.Email {
		return false
	}
	switch {
	case i.AvatarRef == nil && o.AvatarRef == nil:
		return true
	case i.AvatarRef == nil || o.AvatarRef == nil:
		return false
	default:
		return *i.AvatarRef == *o.AvatarRef
	}
}

// Credential is the opaque token that authenticates the identity.
// The server reissues it whenever mutable identity fields change.
type Credential string

// Empty reports whether no credential is held.
func (c Credential) Empty() bool {
	return c == ""
}

// ProfileUpdate is the successful result of a profile update: the canonical
// identity and the credential that replaces the one used for the call.
type ProfileUpdate struct {
	Identity   Identity
	Credential Credential
}
