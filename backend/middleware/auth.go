package middleware

import (
	"context"

	"learning_portal/backend/config"
	"learning_portal/backend/models"
	"learning_portal/backend/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const userIDKey = "userID"

// UserFinder resolves the user behind a token.
type UserFinder interface {
	FindUserByID(ctx context.Context, id uint) (*models.User, error)
}

// UserID returns the authenticated user id stored by AuthMiddleware.
func UserID(c *fiber.Ctx) uint {
	id, _ := c.Locals(userIDKey).(uint)
	return id
}

func AuthMiddleware(cfg *config.Config, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := utils.ExtractUserIDFromToken(c, cfg)
		if err != nil {
			return utils.RespondError(c, log, err)
		}
		c.Locals(userIDKey, userID)
		return c.Next()
	}
}

// AdminMiddleware must run after AuthMiddleware. The role is read from the
// store so a demoted admin loses access immediately.
func AdminMiddleware(users UserFinder, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := UserID(c)
		if userID == 0 {
			return utils.RespondError(c, log, utils.Unauthorizedf("unauthorized"))
		}

		user, err := users.FindUserByID(c.UserContext(), userID)
		if utils.IsKind(err, utils.KindNotFound) {
			return utils.RespondError(c, log, utils.Unauthorizedf("unauthorized"))
		}
		if err != nil {
			return utils.RespondError(c, log, err)
		}
		if !user.IsAdmin() {
			return utils.RespondError(c, log, utils.Forbiddenf("admin access required"))
		}
		return c.Next()
	}
}
