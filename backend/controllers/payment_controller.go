package controllers

import (
	"learning_portal/backend/services"
	"learning_portal/backend/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type PaymentController struct {
	Payments *services.PaymentService
	Log      *zap.Logger
}

func NewPaymentController(payments *services.PaymentService, log *zap.Logger) *PaymentController {
	return &PaymentController{Payments: payments, Log: log}
}

func (pc *PaymentController) Checkout(c *fiber.Ctx) error {
	var input enrollInput
	if err := utils.ParseAndValidate(c, &input); err != nil {
		return utils.RespondError(c, pc.Log, err)
	}
	if err := requireSelf(c, input.UserID); err != nil {
		return utils.RespondError(c, pc.Log, err)
	}

	result, err := pc.Payments.Checkout(c.UserContext(), input.UserID, input.CourseID)
	if err != nil {
		return utils.RespondError(c, pc.Log, err)
	}
	if result.Enrolled {
		return c.Status(fiber.StatusCreated).JSON(result)
	}
	return c.JSON(result)
}

// Webhook receives gateway notifications. Anything other than a bad
// signature or malformed body is acknowledged with 200 so the gateway stops
// retrying.
func (pc *PaymentController) Webhook(c *fiber.Ctx) error {
	var n services.Notification
	if err := c.BodyParser(&n); err != nil {
		return utils.RespondError(c, pc.Log, utils.Invalidf("cannot parse JSON"))
	}

	result, err := pc.Payments.HandleWebhook(c.UserContext(), n)
	if err != nil {
		return utils.RespondError(c, pc.Log, err)
	}
	return c.JSON(result)
}
