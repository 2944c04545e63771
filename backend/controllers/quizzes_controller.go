package controllers

import (
	"learning_portal/backend/models"
	"learning_portal/backend/services"
	"learning_portal/backend/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type QuizzesController struct {
	Catalog *services.CatalogService
	Quizzes *services.QuizService
	Log     *zap.Logger
}

func NewQuizzesController(catalog *services.CatalogService, quizzes *services.QuizService, log *zap.Logger) *QuizzesController {
	return &QuizzesController{Catalog: catalog, Quizzes: quizzes, Log: log}
}

// GetQuizzes lists quizzes of ?lessonId without their answer keys.
func (qc *QuizzesController) GetQuizzes(c *fiber.Ctx) error {
	lessonID, err := queryID(c, "lessonId")
	if err != nil {
		return utils.RespondError(c, qc.Log, err)
	}
	if lessonID == 0 {
		return utils.RespondError(c, qc.Log, utils.Invalidf("lessonId is required"))
	}
	quizzes, err := qc.Catalog.ListQuizzes(c.UserContext(), lessonID)
	if err != nil {
		return utils.RespondError(c, qc.Log, err)
	}

	views := make([]models.LearnerQuiz, 0, len(quizzes))
	for i := range quizzes {
		views = append(views, quizzes[i].ForLearner())
	}
	return c.JSON(views)
}

func (qc *QuizzesController) GetQuiz(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.RespondError(c, qc.Log, err)
	}
	quiz, err := qc.Quizzes.GetQuiz(c.UserContext(), id)
	if err != nil {
		return utils.RespondError(c, qc.Log, err)
	}
	return c.JSON(quiz)
}

// SubmitQuiz grades a submission. A failed attempt is a normal 200 response
// with passed=false.
func (qc *QuizzesController) SubmitQuiz(c *fiber.Ctx) error {
	var input services.Submission
	if err := utils.ParseAndValidate(c, &input); err != nil {
		return utils.RespondError(c, qc.Log, err)
	}
	if err := requireSelf(c, input.UserID); err != nil {
		return utils.RespondError(c, qc.Log, err)
	}
	result, err := qc.Quizzes.SubmitQuiz(c.UserContext(), input)
	if err != nil {
		return utils.RespondError(c, qc.Log, err)
	}
	return c.JSON(result)
}

// GetQuizAdmin returns the quiz including correct answers.
func (qc *QuizzesController) GetQuizAdmin(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.RespondError(c, qc.Log, err)
	}
	quiz, err := qc.Catalog.GetQuiz(c.UserContext(), id)
	if err != nil {
		return utils.RespondError(c, qc.Log, err)
	}
	return c.JSON(quiz)
}

func (qc *QuizzesController) CreateQuiz(c *fiber.Ctx) error {
	var quiz models.Quiz
	if err := utils.ParseAndValidate(c, &quiz); err != nil {
		return utils.RespondError(c, qc.Log, err)
	}
	if err := qc.Catalog.CreateQuiz(c.UserContext(), &quiz); err != nil {
		return utils.RespondError(c, qc.Log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(quiz)
}

func (qc *QuizzesController) UpdateQuiz(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.RespondError(c, qc.Log, err)
	}
	var quiz models.Quiz
	if err := utils.ParseAndValidate(c, &quiz); err != nil {
		return utils.RespondError(c, qc.Log, err)
	}
	if err := qc.Catalog.UpdateQuiz(c.UserContext(), id, &quiz); err != nil {
		return utils.RespondError(c, qc.Log, err)
	}
	return c.JSON(quiz)
}

func (qc *QuizzesController) DeleteQuiz(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.RespondError(c, qc.Log, err)
	}
	if err := qc.Catalog.DeleteQuiz(c.UserContext(), id); err != nil {
		return utils.RespondError(c, qc.Log, err)
	}
	return utils.Success(c, fiber.StatusOK, "Quiz deleted", nil)
}
