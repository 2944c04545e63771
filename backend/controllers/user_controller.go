package controllers

import (
	"learning_portal/backend/middleware"
	"learning_portal/backend/services"
	"learning_portal/backend/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type UserController struct {
	Users       *services.UserService
	Enrollments *services.EnrollmentService
	Log         *zap.Logger
}

func NewUserController(users *services.UserService, enrollments *services.EnrollmentService, log *zap.Logger) *UserController {
	return &UserController{Users: users, Enrollments: enrollments, Log: log}
}

func (uc *UserController) GetProfile(c *fiber.Ctx) error {
	user, err := uc.Users.GetUser(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return utils.RespondError(c, uc.Log, err)
	}
	return c.JSON(user)
}

// GetUserCourses lists the courses the user is enrolled in.
func (uc *UserController) GetUserCourses(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.RespondError(c, uc.Log, err)
	}
	if err := requireSelf(c, id); err != nil {
		return utils.RespondError(c, uc.Log, err)
	}
	courses, err := uc.Enrollments.EnrolledCourses(c.UserContext(), id)
	if err != nil {
		return utils.RespondError(c, uc.Log, err)
	}
	return c.JSON(courses)
}

func (uc *UserController) ListUsers(c *fiber.Ctx) error {
	users, err := uc.Users.ListUsers(c.UserContext(), c.Query("role"))
	if err != nil {
		return utils.RespondError(c, uc.Log, err)
	}
	return c.JSON(users)
}

func (uc *UserController) GetUser(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.RespondError(c, uc.Log, err)
	}
	user, err := uc.Users.GetUser(c.UserContext(), id)
	if err != nil {
		return utils.RespondError(c, uc.Log, err)
	}
	return c.JSON(user)
}

func (uc *UserController) CreateUser(c *fiber.Ctx) error {
	var input services.Registration
	if err := utils.ParseAndValidate(c, &input); err != nil {
		return utils.RespondError(c, uc.Log, err)
	}
	user, err := uc.Users.Register(c.UserContext(), input, true)
	if err != nil {
		return utils.RespondError(c, uc.Log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

func (uc *UserController) DeleteUser(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.RespondError(c, uc.Log, err)
	}
	if id == middleware.UserID(c) {
		return utils.RespondError(c, uc.Log, utils.Invalidf("cannot delete your own account"))
	}
	if err := uc.Users.DeleteUser(c.UserContext(), id); err != nil {
		return utils.RespondError(c, uc.Log, err)
	}
	return utils.Success(c, fiber.StatusOK, "User deleted", nil)
}
