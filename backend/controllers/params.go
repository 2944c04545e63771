package controllers

import (
	"strconv"

	"learning_portal/backend/middleware"
	"learning_portal/backend/utils"

	"github.com/gofiber/fiber/v2"
)

func paramID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil || id == 0 {
		return 0, utils.Invalidf("invalid %s", name)
	}
	return uint(id), nil
}

// queryID reads an optional positive integer query parameter; absent is 0.
func queryID(c *fiber.Ctx, name string) (uint, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, utils.Invalidf("invalid %s", name)
	}
	return uint(id), nil
}

// requireSelf rejects requests acting on behalf of another user.
func requireSelf(c *fiber.Ctx, userID uint) error {
	if userID != middleware.UserID(c) {
		return utils.Forbiddenf("cannot act for user %d", userID)
	}
	return nil
}
