package controllers

import (
	"learning_portal/backend/models"
	"learning_portal/backend/repository"
	"learning_portal/backend/services"
	"learning_portal/backend/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type CoursesController struct {
	Catalog *services.CatalogService
	Log     *zap.Logger
}

func NewCoursesController(catalog *services.CatalogService, log *zap.Logger) *CoursesController {
	return &CoursesController{Catalog: catalog, Log: log}
}

// GetCourses lists the catalog, optionally filtered by ?category, ?level and ?search.
func (cc *CoursesController) GetCourses(c *fiber.Ctx) error {
	courses, err := cc.Catalog.ListCourses(c.UserContext(), repository.CourseFilter{
		Category: c.Query("category"),
		Level:    c.Query("level"),
		Search:   c.Query("search"),
	})
	if err != nil {
		return utils.RespondError(c, cc.Log, err)
	}
	return c.JSON(courses)
}

func (cc *CoursesController) GetCourse(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.RespondError(c, cc.Log, err)
	}
	course, err := cc.Catalog.GetCourse(c.UserContext(), id)
	if err != nil {
		return utils.RespondError(c, cc.Log, err)
	}
	return c.JSON(course)
}

func (cc *CoursesController) CreateCourse(c *fiber.Ctx) error {
	var course models.Course
	if err := utils.ParseAndValidate(c, &course); err != nil {
		return utils.RespondError(c, cc.Log, err)
	}
	if err := cc.Catalog.CreateCourse(c.UserContext(), &course); err != nil {
		return utils.RespondError(c, cc.Log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(course)
}

func (cc *CoursesController) UpdateCourse(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.RespondError(c, cc.Log, err)
	}
	var input services.CourseUpdate
	if err := utils.ParseAndValidate(c, &input); err != nil {
		return utils.RespondError(c, cc.Log, err)
	}
	course, err := cc.Catalog.UpdateCourse(c.UserContext(), id, input)
	if err != nil {
		return utils.RespondError(c, cc.Log, err)
	}
	return c.JSON(course)
}

func (cc *CoursesController) DeleteCourse(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.RespondError(c, cc.Log, err)
	}
	if err := cc.Catalog.DeleteCourse(c.UserContext(), id); err != nil {
		return utils.RespondError(c, cc.Log, err)
	}
	return utils.Success(c, fiber.StatusOK, "Course deleted", nil)
}
