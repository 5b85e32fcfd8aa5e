package models

import "time"

// User is an account of the identity service.
//
// TokenVersion is embedded in every access token; bumping it invalidates
// all tokens issued before.
type User struct {
	ID           string
	Name         string
	Email        string
	AvatarRef    *string
	TokenVersion int64
	CreatedAt    time.Time
}
