// Package services contains server-side business logic. This file implements
// UserService, which seeds accounts, authenticates access tokens and applies
// profile updates, issuing a fresh token for each one.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophprofile/internal/common"
	"github.com/dmitrijs2005/gophprofile/internal/dbx"
	"github.com/dmitrijs2005/gophprofile/internal/server/auth"
	"github.com/dmitrijs2005/gophprofile/internal/server/config"
	"github.com/dmitrijs2005/gophprofile/internal/server/models"
	"github.com/dmitrijs2005/gophprofile/internal/server/repositories/repomanager"
)

// UserService provides account operations:
// - Seed: create a user and issue its first token
// - Authenticate: resolve an access token to its current user
// - UpdateName: rename a user and rotate its token
type UserService struct {
	db                          *sql.DB
	repomanager                 repomanager.RepositoryManager
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
}

// NewUserService constructs a UserService. db may be nil when m does not
// need a database (in-memory mode).
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                          db,
		repomanager:                 m,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
	}
}

// Seed creates a user and returns it with a valid access token.
func (s *UserService) Seed(ctx context.Context, name, email string) (*models.User, string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, "", common.ErrEmptyName
	}

	repo := s.repomanager.Users(s.conn())
	u, err := repo.Create(ctx, &models.User{Name: name, Email: strings.TrimSpace(email)})
	if err != nil {
		return nil, "", fmt.Errorf("error creating user: %w", err)
	}

	token, err := s.generateAccessToken(u)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// Authenticate returns the user an access token belongs to. Tokens issued
// for an older token version are rejected.
func (s *UserService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	claims, err := auth.ParseToken(token, s.jwtSecret)
	if err != nil {
		return nil, err
	}

	repo := s.repomanager.Users(s.conn())
	u, err := repo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	if u.TokenVersion != claims.TokenVersion {
		return nil, common.ErrInvalidToken
	}
	return u, nil
}

// UpdateName validates name, stores it and returns the updated user with a
// new access token. Names are unique regardless of case.
func (s *UserService) UpdateName(ctx context.Context, userID, name string) (*models.User, string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, "", common.ErrEmptyName
	}

	var (
		updated *models.User
		token   string
	)
	err := s.withTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		holder, err := repo.GetByName(ctx, name)
		switch {
		case err == nil && holder.ID != userID:
			return common.ErrNameTaken
		case err != nil && !errors.Is(err, common.ErrorNotFound):
			return fmt.Errorf("error checking name: %w", err)
		}

		updated, err = repo.UpdateName(ctx, userID, name)
		if err != nil {
			return fmt.Errorf("error updating user: %w", err)
		}

		token, err = s.generateAccessToken(updated)
		return err
	})
	if err != nil {
		return nil, "", err
	}
	return updated, token, nil
}

// --- helpers below ---

func (s *UserService) generateAccessToken(u *models.User) (string, error) {
	token, err := auth.GenerateToken(u.ID, u.TokenVersion, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return "", common.ErrorInternal
	}
	return token, nil
}

// conn returns the handle repositories run on outside a transaction.
func (s *UserService) conn() dbx.DBTX {
	if s.db == nil {
		return nil
	}
	return s.db
}

func (s *UserService) withTx(ctx context.Context, fn dbx.TxFunc) error {
	if s.db == nil {
		return fn(ctx, nil)
	}
	return dbx.WithTx(ctx, s.db, nil, fn)
}
