package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophprofile/internal/client/client"
	"github.com/dmitrijs2005/gophprofile/internal/client/models"
	"github.com/dmitrijs2005/gophprofile/internal/client/session"
	"github.com/dmitrijs2005/gophprofile/internal/logging"
)

// SessionService covers the session chores around the settings screen:
// signing in with a credential, refreshing the stored identity on start,
// logout and the liveness probe.
type SessionService interface {
	SignIn(ctx context.Context, credential models.Credential) error
	Refresh(ctx context.Context) error
	Logout(ctx context.Context) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

type sessionService struct {
	client client.Client
	store  session.Store
	logger logging.Logger
}

// NewSessionService constructs a SessionService bound to the given API client and store.
func NewSessionService(c client.Client, store session.Store, logger logging.Logger) SessionService {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &sessionService{client: c, store: store, logger: logger}
}

// SignIn validates credential against the service and stores it together
// with the identity it belongs to.
func (s *sessionService) SignIn(ctx context.Context, credential models.Credential) error {
	if credential.Empty() {
		return session.ErrNoCredential
	}

	identity, err := s.client.GetProfile(ctx, credential)
	if err != nil {
		return fmt.Errorf("get profile error: %w", err)
	}

	if err := s.store.Update(ctx, identity, credential); err != nil {
		return fmt.Errorf("session saving error: %w", err)
	}

	s.logger.Info(ctx, "signed in", "user_id", identity.ID)
	return nil
}

// Refresh replaces the stored identity with the canonical one from the
// service. Observers of the store (the name form) resync from it.
func (s *sessionService) Refresh(ctx context.Context) error {
	credential := s.store.Credential()
	if credential.Empty() {
		return session.ErrNoCredential
	}

	identity, err := s.client.GetProfile(ctx, credential)
	if err != nil {
		return fmt.Errorf("get profile error: %w", err)
	}

	if err := s.store.SetIdentity(ctx, identity); err != nil {
		return fmt.Errorf("session saving error: %w", err)
	}
	return nil
}

func (s *sessionService) Logout(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("session clearing error: %w", err)
	}
	s.logger.Info(ctx, "logged out")
	return nil
}

func (s *sessionService) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}

func (s *sessionService) Close(ctx context.Context) error {
	return s.client.Close()
}
