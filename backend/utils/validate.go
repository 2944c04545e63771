package utils

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// ParseAndValidate decodes the JSON body into dst and runs its
// `validate` struct tags.
func ParseAndValidate(c *fiber.Ctx, dst interface{}) error {
	if err := c.BodyParser(dst); err != nil {
		return Invalidf("cannot parse JSON")
	}
	return validate.Struct(dst)
}
