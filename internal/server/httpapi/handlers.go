package httpapi

import (
	"github.com/gofiber/fiber/v2"
)

func (s *Server) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (s *Server) getProfile(c *fiber.Ctx) error {
	return c.JSON(profileResponse{Success: true, User: toUserDTO(currentUser(c))})
}

func (s *Server) updateProfile(c *fiber.Ctx) error {
	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, msgBadRequest)
	}
	if req.Name == nil {
		return fiber.NewError(fiber.StatusBadRequest, msgEmptyName)
	}

	user := currentUser(c)
	updated, token, err := s.users.UpdateName(c.UserContext(), user.ID, *req.Name)
	if err != nil {
		return statusFor(err)
	}

	s.logger.Info(c.UserContext(), "profile updated", "user_id", updated.ID)
	return c.JSON(profileResponse{Success: true, User: toUserDTO(updated), Token: token})
}
