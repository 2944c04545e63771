package controllers

import (
	"learning_portal/backend/services"
	"learning_portal/backend/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ProgressController struct {
	Progress *services.ProgressService
	Log      *zap.Logger
}

func NewProgressController(progress *services.ProgressService, log *zap.Logger) *ProgressController {
	return &ProgressController{Progress: progress, Log: log}
}

// GetProgress answers GET /progress?userId=&courseId=. An untouched course
// reports zero progress.
func (pc *ProgressController) GetProgress(c *fiber.Ctx) error {
	userID, err := queryID(c, "userId")
	if err != nil {
		return utils.RespondError(c, pc.Log, err)
	}
	courseID, err := queryID(c, "courseId")
	if err != nil {
		return utils.RespondError(c, pc.Log, err)
	}

	progress, err := pc.Progress.GetProgress(c.UserContext(), userID, courseID)
	if err != nil {
		return utils.RespondError(c, pc.Log, err)
	}
	return c.JSON(fiber.Map{
		"completedLessons":   progress.CompletedLessons,
		"progressPercentage": progress.ProgressPercentage,
	})
}

func (pc *ProgressController) CompleteLesson(c *fiber.Ctx) error {
	type CompleteLessonInput struct {
		UserID   uint `json:"userId" validate:"required"`
		CourseID uint `json:"courseId" validate:"required"`
		LessonID uint `json:"lessonId" validate:"required"`
	}

	var input CompleteLessonInput
	if err := utils.ParseAndValidate(c, &input); err != nil {
		return utils.RespondError(c, pc.Log, err)
	}
	if err := requireSelf(c, input.UserID); err != nil {
		return utils.RespondError(c, pc.Log, err)
	}

	progress, total, err := pc.Progress.MarkLessonComplete(c.UserContext(), input.UserID, input.CourseID, input.LessonID)
	if err != nil {
		return utils.RespondError(c, pc.Log, err)
	}
	return c.JSON(fiber.Map{
		"userId":             progress.UserID,
		"courseId":           progress.CourseID,
		"completedLessons":   progress.CompletedLessons,
		"progressPercentage": progress.ProgressPercentage,
		"totalLessons":       total,
	})
}
