// Package testutil provides an in-memory database and seed data for tests.
package testutil

import (
	"fmt"
	"testing"
	"time"

	"learning_portal/backend/config"
	"learning_portal/backend/models"
	"learning_portal/backend/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const JWTSecret = "testsecret"

// Config returns a configuration for a private in-memory sqlite database.
func Config() *config.Config {
	return &config.Config{
		DBDriver:     config.DriverSQLite,
		SQLitePath:   fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
		JWTSecret:    JWTSecret,
		ServerPort:   "3001",
		StoreTimeout: 5 * time.Second,
		AutoMigrate:  true,
		CORSOrigins:  "*",
	}
}

// NewDB opens and migrates a fresh database that lives until the test ends.
func NewDB(t *testing.T) (*gorm.DB, *config.Config) {
	t.Helper()

	cfg := Config()
	db, err := utils.InitDB(cfg)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return db, cfg
}

func User(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	hash, err := utils.HashPassword("password")
	require.NoError(t, err)
	user := &models.User{
		Username:     username,
		PasswordHash: hash,
		Fullname:     "Test " + username,
		Email:        username + "@example.com",
		Role:         models.RoleUser,
		Status:       "active",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func Admin(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	user := User(t, db, username)
	require.NoError(t, db.Model(user).Update("role", models.RoleAdmin).Error)
	user.Role = models.RoleAdmin
	return user
}

// Course creates a course with the given price and number of lessons.
func Course(t *testing.T, db *gorm.DB, price int64, lessons int) (*models.Course, []models.Lesson) {
	t.Helper()

	course := &models.Course{Title: "Course " + uuid.NewString()[:8], Category: "programming", Level: "beginner", Price: price}
	require.NoError(t, db.Create(course).Error)

	items := make([]models.Lesson, lessons)
	for i := range items {
		items[i] = models.Lesson{CourseID: course.ID, Title: fmt.Sprintf("Lesson %d", i+1), SequenceOrder: i + 1}
		require.NoError(t, db.Create(&items[i]).Error)
	}
	return course, items
}

// Quiz creates a quiz on lesson with one three-option question per entry
// of correct, each entry being that question's correct answer index.
func Quiz(t *testing.T, db *gorm.DB, lessonID uint, correct ...int) *models.Quiz {
	t.Helper()

	quiz := &models.Quiz{LessonID: lessonID, Title: "Quiz"}
	for i, answer := range correct {
		quiz.Questions = append(quiz.Questions, models.Question{
			QuestionText:       fmt.Sprintf("Question %d", i+1),
			Options:            []string{"a", "b", "c"},
			CorrectAnswerIndex: answer,
			SequenceOrder:      i + 1,
		})
	}
	require.NoError(t, db.Create(quiz).Error)
	return quiz
}
