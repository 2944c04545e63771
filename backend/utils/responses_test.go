package utils

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestRespondError(t *testing.T) {
	type payload struct {
		Name string `json:"name" validate:"required"`
	}

	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"not found", NotFoundf("course 1 not found"), fiber.StatusNotFound, "course 1 not found"},
		{"invalid", Invalidf("bad id"), fiber.StatusBadRequest, "bad id"},
		{"conflict", Conflictf("taken"), fiber.StatusConflict, "taken"},
		{"unauthorized", Unauthorizedf("no token"), fiber.StatusUnauthorized, "no token"},
		{"forbidden", Forbiddenf("admins only"), fiber.StatusForbidden, "admins only"},
		{"transient", NewError(KindTransient, "store unavailable", errors.New("dial tcp")), fiber.StatusServiceUnavailable, "Service temporarily unavailable, please retry"},
		{"internal hides details", errors.New("secret dsn"), fiber.StatusInternalServerError, "Internal server error"},
		{"fiber error", fiber.NewError(fiber.StatusTeapot, "teapot"), fiber.StatusTeapot, "teapot"},
		{"validation", validate.Struct(payload{}), fiber.StatusBadRequest, "Invalid input"},
	}

	log := zaptest.NewLogger(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error { return RespondError(c, log, tt.err) })

			resp, err := app.Test(httptest.NewRequest("GET", "/", nil), -1)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)

			var body ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.False(t, body.Success)
			assert.Equal(t, tt.message, body.Message)
			if tt.status == fiber.StatusServiceUnavailable {
				assert.Equal(t, "1", resp.Header.Get(fiber.HeaderRetryAfter))
			}
		})
	}
}
