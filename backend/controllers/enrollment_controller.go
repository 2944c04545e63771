package controllers

import (
	"learning_portal/backend/services"
	"learning_portal/backend/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type EnrollmentController struct {
	Enrollments *services.EnrollmentService
	Log         *zap.Logger
}

func NewEnrollmentController(enrollments *services.EnrollmentService, log *zap.Logger) *EnrollmentController {
	return &EnrollmentController{Enrollments: enrollments, Log: log}
}

type enrollInput struct {
	UserID   uint `json:"userId" validate:"required"`
	CourseID uint `json:"courseId" validate:"required"`
}

// Enroll is idempotent: a repeated request answers 200 with enrolled=false.
// Only free courses can be joined here.
func (ec *EnrollmentController) Enroll(c *fiber.Ctx) error {
	var input enrollInput
	if err := utils.ParseAndValidate(c, &input); err != nil {
		return utils.RespondError(c, ec.Log, err)
	}
	if err := requireSelf(c, input.UserID); err != nil {
		return utils.RespondError(c, ec.Log, err)
	}

	created, err := ec.Enrollments.EnrollFree(c.UserContext(), input.UserID, input.CourseID)
	if err != nil {
		return utils.RespondError(c, ec.Log, err)
	}
	if !created {
		return utils.Success(c, fiber.StatusOK, "Already enrolled", fiber.Map{"enrolled": false})
	}
	return utils.Success(c, fiber.StatusCreated, "Enrolled", fiber.Map{"enrolled": true})
}
