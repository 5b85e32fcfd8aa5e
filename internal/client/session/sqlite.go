package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/gophprofile/internal/client/models"
	sessionrepo "github.com/dmitrijs2005/gophprofile/internal/client/repositories/session"
	"github.com/dmitrijs2005/gophprofile/internal/dbx"
)

// SQLiteStore is a MemoryStore that writes through to the local database.
// Reads are served from memory; writes hit the database first and only
// update memory once the database write succeeded.
type SQLiteStore struct {
	*MemoryStore
	db *sql.DB
}

// NewSQLiteStore loads the persisted session from db and returns a store
// backed by it. A missing session yields an empty store.
func NewSQLiteStore(ctx context.Context, db *sql.DB) (*SQLiteStore, error) {
	repo := sessionrepo.NewSQLiteRepository(db)

	rawIdentity, err := repo.Get(ctx, sessionrepo.KeyIdentity)
	if err != nil {
		return nil, err
	}
	rawCredential, err := repo.Get(ctx, sessionrepo.KeyCredential)
	if err != nil {
		return nil, err
	}

	var identity models.Identity
	if len(rawIdentity) > 0 {
		if err := json.Unmarshal(rawIdentity, &identity); err != nil {
			return nil, fmt.Errorf("decode stored identity: %w", err)
		}
	}

	return &SQLiteStore{
		MemoryStore: NewMemoryStore(identity, models.Credential(rawCredential)),
		db:          db,
	}, nil
}

func (s *SQLiteStore) SetIdentity(ctx context.Context, identity models.Identity) error {
	raw, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("encode identity: %w", err)
	}
	if err := sessionrepo.NewSQLiteRepository(s.db).Set(ctx, sessionrepo.KeyIdentity, raw); err != nil {
		return err
	}
	return s.MemoryStore.SetIdentity(ctx, identity)
}

func (s *SQLiteStore) SetCredential(ctx context.Context, credential models.Credential) error {
	if err := sessionrepo.NewSQLiteRepository(s.db).Set(ctx, sessionrepo.KeyCredential, []byte(credential)); err != nil {
		return err
	}
	return s.MemoryStore.SetCredential(ctx, credential)
}

// Update persists identity and credential in one transaction.
func (s *SQLiteStore) Update(ctx context.Context, identity models.Identity, credential models.Credential) error {
	raw, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("encode identity: %w", err)
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := sessionrepo.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, sessionrepo.KeyIdentity, raw); err != nil {
			return err
		}
		return repo.Set(ctx, sessionrepo.KeyCredential, []byte(credential))
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	return s.MemoryStore.Update(ctx, identity, credential)
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	if err := sessionrepo.NewSQLiteRepository(s.db).Clear(ctx); err != nil {
		return err
	}
	return s.MemoryStore.Clear(ctx)
}
