package services

import (
	"context"

	"learning_portal/backend/models"
	"learning_portal/backend/repository"
)

// CatalogReader is the read access the core needs from the catalog.
type CatalogReader interface {
	FindCourseByID(ctx context.Context, id uint) (*models.Course, error)
	FindLessonByID(ctx context.Context, id uint) (*models.Lesson, error)
	CountLessonsByCourseID(ctx context.Context, courseID uint) (int64, error)
	FindQuizByID(ctx context.Context, id uint) (*models.Quiz, error)
}

type CatalogStore interface {
	CatalogReader
	ListCourses(ctx context.Context, filter repository.CourseFilter) ([]models.Course, error)
	CreateCourse(ctx context.Context, course *models.Course) error
	SaveCourse(ctx context.Context, course *models.Course) error
	DeleteCourse(ctx context.Context, id uint) error
	ListLessons(ctx context.Context, courseID uint) ([]models.Lesson, error)
	CreateLesson(ctx context.Context, lesson *models.Lesson) error
	SaveLesson(ctx context.Context, lesson *models.Lesson) error
	DeleteLesson(ctx context.Context, id uint) error
	ListQuizzes(ctx context.Context, lessonID uint) ([]models.Quiz, error)
	CreateQuiz(ctx context.Context, quiz *models.Quiz) error
	ReplaceQuiz(ctx context.Context, quiz *models.Quiz) error
	DeleteQuiz(ctx context.Context, id uint) error
}

type ProgressStore interface {
	FindProgress(ctx context.Context, userID, courseID uint) (*models.Progress, error)
	CompleteLesson(ctx context.Context, userID, courseID, lessonID uint, percentage repository.PercentageFunc) (*models.Progress, int64, error)
	RecomputeCourse(ctx context.Context, courseID uint, percentage repository.PercentageFunc) (int, error)
}

type UserStore interface {
	FindUserByID(ctx context.Context, id uint) (*models.User, error)
	FindUserByUsername(ctx context.Context, username string) (*models.User, error)
	ListUsers(ctx context.Context, role string) ([]models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, id uint) error
}

type EnrollmentStore interface {
	Enroll(ctx context.Context, userID, courseID uint) (bool, error)
	IsEnrolled(ctx context.Context, userID, courseID uint) (bool, error)
	EnrolledCourses(ctx context.Context, userID uint) ([]models.Course, error)
}

type OrderStore interface {
	CreateOrder(ctx context.Context, order *models.Order) error
	FindOrderByCode(ctx context.Context, code string) (*models.Order, error)
	SetCheckoutURL(ctx context.Context, code, url string) error
	Transition(ctx context.Context, code, status, gatewayRef string) (bool, error)
}

type TestimonialStore interface {
	List(ctx context.Context) ([]models.Testimonial, error)
	Create(ctx context.Context, item *models.Testimonial) error
}
