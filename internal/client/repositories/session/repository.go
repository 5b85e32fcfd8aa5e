// Package session persists the signed-in session (identity and credential)
// in the client's local SQLite database as key/value rows.
package session

import "context"

// Keys used for the rows of the session table.
const (
	KeyIdentity   = "identity"
	KeyCredential = "credential"
)

// Repository is a key/value view over the session table.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
