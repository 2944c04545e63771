package services

import (
	"context"

	"learning_portal/backend/models"
	"learning_portal/backend/repository"
	"learning_portal/backend/utils"

	"go.uber.org/zap"
)

// CatalogService is the back-office over courses, lessons and quizzes.
type CatalogService struct {
	store    CatalogStore
	progress *ProgressService
	log      *zap.Logger
}

func NewCatalogService(store CatalogStore, progress *ProgressService, log *zap.Logger) *CatalogService {
	return &CatalogService{store: store, progress: progress, log: log}
}

func (s *CatalogService) ListCourses(ctx context.Context, filter repository.CourseFilter) ([]models.Course, error) {
	return s.store.ListCourses(ctx, filter)
}

func (s *CatalogService) GetCourse(ctx context.Context, id uint) (*models.Course, error) {
	return s.store.FindCourseByID(ctx, id)
}

func validateCourse(course *models.Course) error {
	if course.Title == "" {
		return utils.Invalidf("title is required")
	}
	if course.Price < 0 {
		return utils.Invalidf("price must not be negative")
	}
	return nil
}

func (s *CatalogService) CreateCourse(ctx context.Context, course *models.Course) error {
	if err := validateCourse(course); err != nil {
		return err
	}
	// counters are derived, never client supplied
	course.ID, course.Students, course.Rating, course.Reviews = 0, 0, 0, 0
	if err := s.store.CreateCourse(ctx, course); err != nil {
		return err
	}
	s.log.Info("course created", zap.Uint("course_id", course.ID))
	return nil
}

// CourseUpdate carries the editable fields; nil leaves a field unchanged.
type CourseUpdate struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Thumbnail   *string `json:"thumbnail"`
	Category    *string `json:"category"`
	Level       *string `json:"level"`
	Price       *int64  `json:"price" validate:"omitempty,gte=0"`
	Duration    *string `json:"duration"`
	Instructor  *string `json:"instructor"`
}

func (s *CatalogService) UpdateCourse(ctx context.Context, id uint, in CourseUpdate) (*models.Course, error) {
	course, err := s.store.FindCourseByID(ctx, id)
	if err != nil {
		return nil, err
	}
	setString(&course.Title, in.Title)
	setString(&course.Description, in.Description)
	setString(&course.Thumbnail, in.Thumbnail)
	setString(&course.Category, in.Category)
	setString(&course.Level, in.Level)
	setString(&course.Duration, in.Duration)
	setString(&course.Instructor, in.Instructor)
	if in.Price != nil {
		course.Price = *in.Price
	}
	if err := validateCourse(course); err != nil {
		return nil, err
	}
	if err := s.store.SaveCourse(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

// DeleteCourse deletes the course and cascades to its lessons and quizzes.
func (s *CatalogService) DeleteCourse(ctx context.Context, id uint) error {
	if err := s.store.DeleteCourse(ctx, id); err != nil {
		return err
	}
	s.log.Info("course deleted", zap.Uint("course_id", id))
	return nil
}

func (s *CatalogService) ListLessons(ctx context.Context, courseID uint) ([]models.Lesson, error) {
	return s.store.ListLessons(ctx, courseID)
}

func (s *CatalogService) GetLesson(ctx context.Context, id uint) (*models.Lesson, error) {
	return s.store.FindLessonByID(ctx, id)
}

// CreateLesson adds a lesson; stored percentages of the course drop to
// reflect the larger lesson count.
func (s *CatalogService) CreateLesson(ctx context.Context, lesson *models.Lesson) error {
	if lesson.Title == "" {
		return utils.Invalidf("title is required")
	}
	if _, err := s.store.FindCourseByID(ctx, lesson.CourseID); err != nil {
		return err
	}
	lesson.ID = 0
	if err := s.store.CreateLesson(ctx, lesson); err != nil {
		return err
	}
	return s.progress.RecomputeCourse(ctx, lesson.CourseID)
}

type LessonUpdate struct {
	CourseID      *uint   `json:"courseId"`
	Title         *string `json:"title"`
	VideoURL      *string `json:"videoUrl"`
	Duration      *string `json:"duration"`
	SequenceOrder *int    `json:"sequenceOrder"`
}

// UpdateLesson edits lesson content. A courseId other than the lesson's
// own is rejected: lessons do not move between courses.
func (s *CatalogService) UpdateLesson(ctx context.Context, id uint, in LessonUpdate) (*models.Lesson, error) {
	lesson, err := s.store.FindLessonByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.CourseID != nil && *in.CourseID != lesson.CourseID {
		return nil, utils.Invalidf("lesson %d cannot move to course %d", lesson.ID, *in.CourseID)
	}
	setString(&lesson.Title, in.Title)
	setString(&lesson.VideoURL, in.VideoURL)
	setString(&lesson.Duration, in.Duration)
	if in.SequenceOrder != nil {
		lesson.SequenceOrder = *in.SequenceOrder
	}
	if lesson.Title == "" {
		return nil, utils.Invalidf("title is required")
	}
	if err := s.store.SaveLesson(ctx, lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

func (s *CatalogService) DeleteLesson(ctx context.Context, id uint) error {
	lesson, err := s.store.FindLessonByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.DeleteLesson(ctx, id); err != nil {
		return err
	}
	return s.progress.RecomputeCourse(ctx, lesson.CourseID)
}

func (s *CatalogService) ListQuizzes(ctx context.Context, lessonID uint) ([]models.Quiz, error) {
	return s.store.ListQuizzes(ctx, lessonID)
}

// GetQuiz returns the full quiz, answers included.
func (s *CatalogService) GetQuiz(ctx context.Context, id uint) (*models.Quiz, error) {
	return s.store.FindQuizByID(ctx, id)
}

// validateQuiz rejects quizzes whose correct answer index falls outside
// the options of its question.
func validateQuiz(quiz *models.Quiz) error {
	if quiz.LessonID == 0 {
		return utils.Invalidf("lessonId is required")
	}
	if len(quiz.Questions) == 0 {
		return utils.Invalidf("a quiz needs at least one question")
	}
	for i := range quiz.Questions {
		q := &quiz.Questions[i]
		if q.QuestionText == "" {
			return utils.Invalidf("question %d has no text", i+1)
		}
		if len(q.Options) < 2 {
			return utils.Invalidf("question %d needs at least two options", i+1)
		}
		if !q.HasValidAnswer() {
			return utils.Invalidf("question %d: correctAnswerIndex %d out of range", i+1, q.CorrectAnswerIndex)
		}
		if q.SequenceOrder == 0 {
			q.SequenceOrder = i + 1
		}
	}
	return nil
}

func (s *CatalogService) CreateQuiz(ctx context.Context, quiz *models.Quiz) error {
	if err := validateQuiz(quiz); err != nil {
		return err
	}
	if _, err := s.store.FindLessonByID(ctx, quiz.LessonID); err != nil {
		return err
	}
	quiz.ID = 0
	for i := range quiz.Questions {
		quiz.Questions[i].ID = 0
	}
	return s.store.CreateQuiz(ctx, quiz)
}

// UpdateQuiz replaces the title, lesson and questions of a quiz.
func (s *CatalogService) UpdateQuiz(ctx context.Context, id uint, quiz *models.Quiz) error {
	existing, err := s.store.FindQuizByID(ctx, id)
	if err != nil {
		return err
	}
	if quiz.LessonID == 0 {
		quiz.LessonID = existing.LessonID
	}
	if err := validateQuiz(quiz); err != nil {
		return err
	}
	if quiz.LessonID != existing.LessonID {
		if _, err := s.store.FindLessonByID(ctx, quiz.LessonID); err != nil {
			return err
		}
	}
	quiz.ID = existing.ID
	quiz.CreatedAt = existing.CreatedAt
	return s.store.ReplaceQuiz(ctx, quiz)
}

func (s *CatalogService) DeleteQuiz(ctx context.Context, id uint) error {
	return s.store.DeleteQuiz(ctx, id)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
