package controllers

import (
	"learning_portal/backend/models"
	"learning_portal/backend/services"
	"learning_portal/backend/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AuthController struct {
	Users *services.UserService
	Log   *zap.Logger
}

func NewAuthController(users *services.UserService, log *zap.Logger) *AuthController {
	return &AuthController{Users: users, Log: log}
}

func userView(user *models.User) fiber.Map {
	return fiber.Map{
		"id":              user.ID,
		"username":        user.Username,
		"fullname":        user.Fullname,
		"email":           user.Email,
		"role":            user.Role,
		"coursesEnrolled": user.EnrolledCourseIDs,
	}
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Router /auth/register [post]
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var input services.Registration
	if err := utils.ParseAndValidate(c, &input); err != nil {
		return utils.RespondError(c, ac.Log, err)
	}

	user, err := ac.Users.Register(c.UserContext(), input, false)
	if err != nil {
		return utils.RespondError(c, ac.Log, err)
	}
	token, err := ac.Users.Token(user)
	if err != nil {
		return utils.RespondError(c, ac.Log, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token": token,
		"user":  userView(user),
	})
}

// Login godoc
// @Summary User login
// @Tags auth
// @Router /auth/login [post]
func (ac *AuthController) Login(c *fiber.Ctx) error {
	type LoginInput struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	var input LoginInput
	if err := utils.ParseAndValidate(c, &input); err != nil {
		return utils.RespondError(c, ac.Log, err)
	}

	token, user, err := ac.Users.Login(c.UserContext(), input.Username, input.Password)
	if err != nil {
		return utils.RespondError(c, ac.Log, err)
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user":  userView(user),
	})
}
