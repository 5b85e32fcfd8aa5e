// Package httpapi exposes the identity service over HTTP/JSON.
//
// Routes:
//
//	GET /api/health        liveness probe
//	GET /api/auth/profile  current user (x-auth-token)
//	PUT /api/auth/profile  rename the current user, returns a fresh token
package httpapi

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/dmitrijs2005/gophprofile/internal/common"
	"github.com/dmitrijs2005/gophprofile/internal/logging"
	"github.com/dmitrijs2005/gophprofile/internal/server/models"
)

const shutdownTimeout = 5 * time.Second

// UserService is the account logic the handlers need.
type UserService interface {
	Authenticate(ctx context.Context, token string) (*models.User, error)
	UpdateName(ctx context.Context, userID, name string) (*models.User, string, error)
}

// Server wraps the Fiber application.
type Server struct {
	app    *fiber.App
	addr   string
	logger logging.Logger
	users  UserService

	cache            *redis.Client
	updatesPerMinute int
}

// Option customizes a Server.
type Option func(*Server)

// WithUpdateRateLimit throttles PUT /api/auth/profile to perMinute requests
// per user, counted in cache.
func WithUpdateRateLimit(cache *redis.Client, perMinute int) Option {
	return func(s *Server) {
		s.cache = cache
		s.updatesPerMinute = perMinute
	}
}

// NewServer builds the Fiber app and registers the routes.
func NewServer(addr string, logger logging.Logger, users UserService, opts ...Option) *Server {
	s := &Server{addr: addr, logger: logger, users: users}
	for _, o := range opts {
		o(s)
	}

	s.app = fiber.New(fiber.Config{
		AppName:               "gophprofile",
		ReadTimeout:           30 * time.Second,
		WriteTimeout:          30 * time.Second,
		DisableStartupMessage: true,
		ErrorHandler:          s.errorHandler,
	})

	s.app.Use(requestID())
	s.app.Use(s.requestLogger())

	api := s.app.Group("/api")
	api.Get("/health", s.health)

	api.Get("/auth/profile", s.authRequired(), s.getProfile)
	api.Put("/auth/profile",
		s.authRequired(),
		s.updateRateLimit(s.cache, s.updatesPerMinute),
		s.updateProfile,
	)

	return s
}

// App exposes the underlying Fiber app (tests use app.Test).
func (s *Server) App() *fiber.App { return s.app }

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "HTTP server listening", "addr", s.addr)
		errCh <- s.app.Listen(s.addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info(ctx, "shutting down HTTP server")
		return s.app.ShutdownWithContext(shutdownCtx)
	}
}

// errorHandler renders every error as the JSON envelope.
func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := msgServerError

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		msg = fe.Message
	} else {
		s.logger.Error(c.UserContext(), "request failed", "path", c.Path(), "error", err)
	}

	return c.Status(code).JSON(profileResponse{Success: false, Msg: msg})
}

// statusFor maps service errors onto HTTP errors.
func statusFor(err error) error {
	switch {
	case errors.Is(err, common.ErrEmptyName):
		return fiber.NewError(fiber.StatusBadRequest, msgEmptyName)
	case errors.Is(err, common.ErrNameTaken):
		return fiber.NewError(fiber.StatusConflict, msgNameTaken)
	case errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired),
		errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrorNotFound):
		return fiber.NewError(fiber.StatusUnauthorized, msgInvalidToken)
	default:
		return err
	}
}
