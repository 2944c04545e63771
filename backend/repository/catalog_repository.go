package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"learning_portal/backend/models"
	"learning_portal/backend/utils"

	"gorm.io/gorm"
)

type CourseFilter struct {
	Category string
	Level    string
	Search   string
}

// CatalogRepository stores courses, lessons and quizzes.
type CatalogRepository struct {
	base
}

func NewCatalogRepository(db *gorm.DB, timeout time.Duration) *CatalogRepository {
	return &CatalogRepository{base: newBase(db, timeout)}
}

func (r *CatalogRepository) FindCourseByID(ctx context.Context, id uint) (*models.Course, error) {
	db, cancel := r.conn(ctx)
	defer cancel()

	var course models.Course
	if err := db.First(&course, id).Error; err != nil {
		return nil, utils.ClassifyDBError(err, fmt.Sprintf("course %d", id))
	}
	return &course, nil
}

func (r *CatalogRepository) ListCourses(ctx context.Context, filter CourseFilter) ([]models.Course, error) {
	db, cancel := r.conn(ctx)
	defer cancel()

	query := db.Model(&models.Course{})
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Level != "" {
		query = query.Where("level = ?", filter.Level)
	}
	if filter.Search != "" {
		like := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(instructor) LIKE ?", like, like)
	}

	courses := []models.Course{}
	if err := query.Order("id").Find(&courses).Error; err != nil {
		return nil, utils.ClassifyDBError(err, "courses")
	}
	return courses, nil
}

func (r *CatalogRepository) CreateCourse(ctx context.Context, course *models.Course) error {
	db, cancel := r.conn(ctx)
	defer cancel()
	return utils.ClassifyDBError(db.Create(course).Error, "course")
}

func (r *CatalogRepository) SaveCourse(ctx context.Context, course *models.Course) error {
	db, cancel := r.conn(ctx)
	defer cancel()
	return utils.ClassifyDBError(db.Save(course).Error, fmt.Sprintf("course %d", course.ID))
}

// DeleteCourse removes a course together with its lessons, their quizzes
// and the quiz questions.
func (r *CatalogRepository) DeleteCourse(ctx context.Context, id uint) error {
	db, cancel := r.conn(ctx)
	defer cancel()

	err := db.Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Course{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		lessonIDs := tx.Model(&models.Lesson{}).Select("id").Where("course_id = ?", id)
		if err := deleteQuizzesOf(tx, lessonIDs); err != nil {
			return err
		}
		return tx.Where("course_id = ?", id).Delete(&models.Lesson{}).Error
	})
	return utils.ClassifyDBError(err, fmt.Sprintf("course %d", id))
}

// deleteQuizzesOf soft-deletes the quizzes (and questions) whose lesson_id
// is in lessonIDs, which may be a value or a subquery.
func deleteQuizzesOf(tx *gorm.DB, lessonIDs interface{}) error {
	quizIDs := tx.Model(&models.Quiz{}).Select("id").Where("lesson_id IN (?)", lessonIDs)
	if err := tx.Where("quiz_id IN (?)", quizIDs).Delete(&models.Question{}).Error; err != nil {
		return err
	}
	return tx.Where("lesson_id IN (?)", lessonIDs).Delete(&models.Quiz{}).Error
}

func (r *CatalogRepository) FindLessonByID(ctx context.Context, id uint) (*models.Lesson, error) {
	db, cancel := r.conn(ctx)
	defer cancel()

	var lesson models.Lesson
	if err := db.First(&lesson, id).Error; err != nil {
		return nil, utils.ClassifyDBError(err, fmt.Sprintf("lesson %d", id))
	}
	return &lesson, nil
}

// ListLessons returns lessons in course order; courseID 0 lists all.
func (r *CatalogRepository) ListLessons(ctx context.Context, courseID uint) ([]models.Lesson, error) {
	db, cancel := r.conn(ctx)
	defer cancel()

	query := db.Model(&models.Lesson{})
	if courseID != 0 {
		query = query.Where("course_id = ?", courseID)
	}
	lessons := []models.Lesson{}
	if err := query.Order("sequence_order, id").Find(&lessons).Error; err != nil {
		return nil, utils.ClassifyDBError(err, "lessons")
	}
	return lessons, nil
}

func (r *CatalogRepository) CountLessonsByCourseID(ctx context.Context, courseID uint) (int64, error) {
	db, cancel := r.conn(ctx)
	defer cancel()

	var total int64
	if err := db.Model(&models.Lesson{}).Where("course_id = ?", courseID).Count(&total).Error; err != nil {
		return 0, utils.ClassifyDBError(err, "lessons")
	}
	return total, nil
}

func (r *CatalogRepository) CreateLesson(ctx context.Context, lesson *models.Lesson) error {
	db, cancel := r.conn(ctx)
	defer cancel()
	return utils.ClassifyDBError(db.Create(lesson).Error, "lesson")
}

func (r *CatalogRepository) SaveLesson(ctx context.Context, lesson *models.Lesson) error {
	db, cancel := r.conn(ctx)
	defer cancel()
	return utils.ClassifyDBError(db.Save(lesson).Error, fmt.Sprintf("lesson %d", lesson.ID))
}

// DeleteLesson removes a lesson and its quizzes.
func (r *CatalogRepository) DeleteLesson(ctx context.Context, id uint) error {
	db, cancel := r.conn(ctx)
	defer cancel()

	err := db.Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Lesson{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return deleteQuizzesOf(tx, []uint{id})
	})
	return utils.ClassifyDBError(err, fmt.Sprintf("lesson %d", id))
}

func orderedQuestions(db *gorm.DB) *gorm.DB {
	return db.Order("sequence_order, id")
}

// FindQuizByID loads a quiz with its questions in order.
func (r *CatalogRepository) FindQuizByID(ctx context.Context, id uint) (*models.Quiz, error) {
	db, cancel := r.conn(ctx)
	defer cancel()

	var quiz models.Quiz
	if err := db.Preload("Questions", orderedQuestions).First(&quiz, id).Error; err != nil {
		return nil, utils.ClassifyDBError(err, fmt.Sprintf("quiz %d", id))
	}
	return &quiz, nil
}

// ListQuizzes returns quizzes of a lesson; lessonID 0 lists all.
func (r *CatalogRepository) ListQuizzes(ctx context.Context, lessonID uint) ([]models.Quiz, error) {
	db, cancel := r.conn(ctx)
	defer cancel()

	query := db.Preload("Questions", orderedQuestions)
	if lessonID != 0 {
		query = query.Where("lesson_id = ?", lessonID)
	}
	quizzes := []models.Quiz{}
	if err := query.Order("id").Find(&quizzes).Error; err != nil {
		return nil, utils.ClassifyDBError(err, "quizzes")
	}
	return quizzes, nil
}

// CreateQuiz inserts the quiz and its questions.
func (r *CatalogRepository) CreateQuiz(ctx context.Context, quiz *models.Quiz) error {
	db, cancel := r.conn(ctx)
	defer cancel()
	return utils.ClassifyDBError(db.Create(quiz).Error, "quiz")
}

// ReplaceQuiz saves the quiz header and replaces all of its questions.
func (r *CatalogRepository) ReplaceQuiz(ctx context.Context, quiz *models.Quiz) error {
	db, cancel := r.conn(ctx)
	defer cancel()

	questions := quiz.Questions
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Questions").Save(quiz).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("quiz_id = ?", quiz.ID).Delete(&models.Question{}).Error; err != nil {
			return err
		}
		for i := range questions {
			questions[i].ID = 0
			questions[i].QuizID = quiz.ID
		}
		if len(questions) == 0 {
			return nil
		}
		return tx.Create(&questions).Error
	})
	quiz.Questions = questions
	return utils.ClassifyDBError(err, fmt.Sprintf("quiz %d", quiz.ID))
}

func (r *CatalogRepository) DeleteQuiz(ctx context.Context, id uint) error {
	db, cancel := r.conn(ctx)
	defer cancel()

	err := db.Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Quiz{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("quiz_id = ?", id).Delete(&models.Question{}).Error
	})
	return utils.ClassifyDBError(err, fmt.Sprintf("quiz %d", id))
}
