package services

import (
	"context"
	"fmt"

	"learning_portal/backend/models"
	"learning_portal/backend/utils"

	"go.uber.org/zap"
)

// Answer is one selected option. An unknown question id or an out of
// range index is scored as not correct, never rejected.
type Answer struct {
	QuestionID          uint `json:"questionId"`
	SelectedAnswerIndex int  `json:"selectedAnswerIndex"`
}

type Submission struct {
	UserID   uint     `json:"userId" validate:"required"`
	QuizID   uint     `json:"quizId" validate:"required"`
	LessonID uint     `json:"lessonId" validate:"required"`
	Answers  []Answer `json:"userAnswers" validate:"required,min=1"`
}

type SubmissionResult struct {
	Passed             bool   `json:"passed"`
	Score              int    `json:"score"`
	TotalQuestions     int    `json:"totalQuestions"`
	Message            string `json:"message"`
	ProgressPercentage *int   `json:"progressPercentage,omitempty"`
	TotalLessons       *int64 `json:"totalLessons,omitempty"`
}

// Grade scores answers against the quiz. Answers to unknown questions are
// skipped, and a question answered twice counts only its first answer.
func Grade(quiz *models.Quiz, answers []Answer) int {
	correct := make(map[uint]int, len(quiz.Questions))
	for _, q := range quiz.Questions {
		correct[q.ID] = q.CorrectAnswerIndex
	}

	score := 0
	seen := make(map[uint]bool, len(answers))
	for _, a := range answers {
		want, ok := correct[a.QuestionID]
		if !ok || seen[a.QuestionID] {
			continue
		}
		seen[a.QuestionID] = true
		if want == a.SelectedAnswerIndex {
			score++
		}
	}
	return score
}

// QuizService is the quiz grader. A submission passes only with every
// question of the quiz answered correctly; a pass marks the lesson complete.
type QuizService struct {
	catalog  CatalogReader
	progress *ProgressService
	log      *zap.Logger
}

func NewQuizService(catalog CatalogReader, progress *ProgressService, log *zap.Logger) *QuizService {
	return &QuizService{catalog: catalog, progress: progress, log: log}
}

// GetQuiz returns the learner view of a quiz.
func (s *QuizService) GetQuiz(ctx context.Context, quizID uint) (*models.LearnerQuiz, error) {
	quiz, err := s.catalog.FindQuizByID(ctx, quizID)
	if err != nil {
		return nil, err
	}
	view := quiz.ForLearner()
	return &view, nil
}

func (s *QuizService) SubmitQuiz(ctx context.Context, sub Submission) (*SubmissionResult, error) {
	if sub.UserID == 0 || sub.QuizID == 0 || sub.LessonID == 0 {
		return nil, utils.Invalidf("userId, quizId and lessonId are required")
	}
	if len(sub.Answers) == 0 {
		return nil, utils.Invalidf("userAnswers must not be empty")
	}

	quiz, err := s.catalog.FindQuizByID(ctx, sub.QuizID)
	if err != nil {
		return nil, err
	}
	lesson, err := s.catalog.FindLessonByID(ctx, sub.LessonID)
	if err != nil {
		return nil, err
	}
	if quiz.LessonID != lesson.ID {
		return nil, utils.Invalidf("quiz %d does not belong to lesson %d", quiz.ID, lesson.ID)
	}
	total := len(quiz.Questions)
	if total == 0 {
		return nil, utils.Invalidf("quiz %d has no questions", quiz.ID)
	}

	score := Grade(quiz, sub.Answers)
	result := &SubmissionResult{
		Passed:         score == total,
		Score:          score,
		TotalQuestions: total,
		Message:        fmt.Sprintf("%d/%d correct", score, total),
	}
	if !result.Passed {
		s.log.Debug("quiz failed",
			zap.Uint("user_id", sub.UserID), zap.Uint("quiz_id", quiz.ID), zap.Int("score", score), zap.Int("total", total))
		return result, nil
	}

	progress, lessons, err := s.progress.MarkLessonComplete(ctx, sub.UserID, lesson.CourseID, lesson.ID)
	if err != nil {
		return nil, err
	}
	result.Message += ", lesson completed"
	result.ProgressPercentage = &progress.ProgressPercentage
	result.TotalLessons = &lessons
	return result, nil
}
