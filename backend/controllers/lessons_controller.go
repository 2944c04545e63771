package controllers

import (
	"learning_portal/backend/models"
	"learning_portal/backend/services"
	"learning_portal/backend/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type LessonsController struct {
	Catalog *services.CatalogService
	Log     *zap.Logger
}

func NewLessonsController(catalog *services.CatalogService, log *zap.Logger) *LessonsController {
	return &LessonsController{Catalog: catalog, Log: log}
}

// GetLessons lists lessons in sequence order; ?courseId narrows to one course.
func (lc *LessonsController) GetLessons(c *fiber.Ctx) error {
	courseID, err := queryID(c, "courseId")
	if err != nil {
		return utils.RespondError(c, lc.Log, err)
	}
	lessons, err := lc.Catalog.ListLessons(c.UserContext(), courseID)
	if err != nil {
		return utils.RespondError(c, lc.Log, err)
	}
	return c.JSON(lessons)
}

func (lc *LessonsController) GetLesson(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.RespondError(c, lc.Log, err)
	}
	lesson, err := lc.Catalog.GetLesson(c.UserContext(), id)
	if err != nil {
		return utils.RespondError(c, lc.Log, err)
	}
	return c.JSON(lesson)
}

func (lc *LessonsController) CreateLesson(c *fiber.Ctx) error {
	var lesson models.Lesson
	if err := utils.ParseAndValidate(c, &lesson); err != nil {
		return utils.RespondError(c, lc.Log, err)
	}
	if lesson.CourseID == 0 {
		return utils.RespondError(c, lc.Log, utils.Invalidf("courseId is required"))
	}
	if err := lc.Catalog.CreateLesson(c.UserContext(), &lesson); err != nil {
		return utils.RespondError(c, lc.Log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(lesson)
}

func (lc *LessonsController) UpdateLesson(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.RespondError(c, lc.Log, err)
	}
	var input services.LessonUpdate
	if err := utils.ParseAndValidate(c, &input); err != nil {
		return utils.RespondError(c, lc.Log, err)
	}
	lesson, err := lc.Catalog.UpdateLesson(c.UserContext(), id, input)
	if err != nil {
		return utils.RespondError(c, lc.Log, err)
	}
	return c.JSON(lesson)
}

func (lc *LessonsController) DeleteLesson(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.RespondError(c, lc.Log, err)
	}
	if err := lc.Catalog.DeleteLesson(c.UserContext(), id); err != nil {
		return utils.RespondError(c, lc.Log, err)
	}
	return utils.Success(c, fiber.StatusOK, "Lesson deleted", nil)
}
