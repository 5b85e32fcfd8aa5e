package httpapi

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/gophprofile/internal/common"
	"github.com/dmitrijs2005/gophprofile/internal/server/models"
)

const (
	requestIDHeader = "X-Request-ID"
	userLocal       = "user"
)

// requestID ensures each request carries an identifier for logging.
func requestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqID := c.Get(requestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Set(requestIDHeader, reqID)
		c.Locals(requestIDHeader, reqID)
		return c.Next()
	}
}

func (s *Server) requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if err != nil {
			// Render now so the logged status is the final one.
			if herr := s.errorHandler(c, err); herr != nil {
				return herr
			}
		}
		s.logger.Debug(c.UserContext(), "request",
			"method", c.Method(),
			"path", c.Path(),
			"status", c.Response().StatusCode(),
			"duration", time.Since(start),
			"request_id", c.Locals(requestIDHeader),
		)
		return nil
	}
}

// authRequired resolves x-auth-token to the current user.
func (s *Server) authRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Get(common.AuthTokenHeaderName)
		if token == "" {
			return fiber.NewError(fiber.StatusUnauthorized, msgNoToken)
		}

		user, err := s.users.Authenticate(c.UserContext(), token)
		if err != nil {
			return statusFor(err)
		}

		c.Locals(userLocal, user)
		return c.Next()
	}
}

func currentUser(c *fiber.Ctx) *models.User {
	u, _ := c.Locals(userLocal).(*models.User)
	return u
}
