package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"feekhata_backend/internals/constants"
)

func uuidFromLocals(c *fiber.Ctx, key string) (uuid.UUID, error) {
	v := c.Locals(key)
	if v == nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, key+" not found in token")
	}
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, key+" empty in token")
	}
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Invalid "+key+" format in token")
	}
	return id, nil
}

// GetInstituteIDFromToken resolves the tenant scope set by the auth middleware.
func GetInstituteIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	return uuidFromLocals(c, "institute_id")
}

func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	return uuidFromLocals(c, "user_id")
}

func GetUserRole(c *fiber.Ctx) string {
	if role, ok := c.Locals("userRole").(string); ok {
		return role
	}
	return ""
}

// IsTeacher reports whether the actor is scoped to their own students only.
func IsTeacher(c *fiber.Ctx) bool {
	return GetUserRole(c) == constants.RoleTeacher
}
