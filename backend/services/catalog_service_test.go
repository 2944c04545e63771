package services

import (
	"context"
	"testing"

	"learning_portal/backend/models"
	"learning_portal/backend/repository"
	"learning_portal/backend/testutil"
	"learning_portal/backend/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteCourseCascades(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	course, lessons := testutil.Course(t, e.db, 0, 2)
	quiz := testutil.Quiz(t, e.db, lessons[1].ID, 0, 1)
	keep, keepLessons := testutil.Course(t, e.db, 0, 1)

	require.NoError(t, e.catalog.DeleteCourse(ctx, course.ID))

	_, err := e.catalog.GetCourse(ctx, course.ID)
	assert.True(t, utils.IsKind(err, utils.KindNotFound))
	for _, l := range lessons {
		_, err := e.catalog.GetLesson(ctx, l.ID)
		assert.True(t, utils.IsKind(err, utils.KindNotFound), "lesson %d", l.ID)
	}
	_, err = e.catalog.GetQuiz(ctx, quiz.ID)
	assert.True(t, utils.IsKind(err, utils.KindNotFound))

	var questions int64
	require.NoError(t, e.db.Model(&models.Question{}).Where("quiz_id = ?", quiz.ID).Count(&questions).Error)
	assert.Zero(t, questions)

	_, err = e.catalog.GetCourse(ctx, keep.ID)
	assert.NoError(t, err)
	_, err = e.catalog.GetLesson(ctx, keepLessons[0].ID)
	assert.NoError(t, err)

	err = e.catalog.DeleteCourse(ctx, course.ID)
	assert.True(t, utils.IsKind(err, utils.KindNotFound))
}

func TestListCoursesFilters(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	require.NoError(t, e.catalog.CreateCourse(ctx, &models.Course{Title: "Go Basics", Category: "programming", Level: "beginner"}))
	require.NoError(t, e.catalog.CreateCourse(ctx, &models.Course{Title: "Watercolor", Category: "art", Level: "beginner"}))

	courses, err := e.catalog.ListCourses(ctx, repository.CourseFilter{Category: "art"})
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "Watercolor", courses[0].Title)

	courses, err = e.catalog.ListCourses(ctx, repository.CourseFilter{Search: "go"})
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "Go Basics", courses[0].Title)
}

func TestCreateCourseRejectsNegativePrice(t *testing.T) {
	e := newEnv(t)

	err := e.catalog.CreateCourse(context.Background(), &models.Course{Title: "Bad", Price: -1})
	assert.True(t, utils.IsKind(err, utils.KindInvalidInput))
}

func TestUpdateCourseKeepsUnsetFields(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	course, _ := testutil.Course(t, e.db, 100, 0)

	title := "Renamed"
	updated, err := e.catalog.UpdateCourse(ctx, course.ID, CourseUpdate{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, int64(100), updated.Price)
	assert.Equal(t, course.Category, updated.Category)
}

func TestCreateQuizValidatesAnswers(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	_, lessons := testutil.Course(t, e.db, 0, 1)

	quiz := &models.Quiz{LessonID: lessons[0].ID, Title: "Quiz", Questions: []models.Question{
		{QuestionText: "q1", Options: []string{"a", "b"}, CorrectAnswerIndex: 2},
	}}
	err := e.catalog.CreateQuiz(ctx, quiz)
	assert.True(t, utils.IsKind(err, utils.KindInvalidInput), "index out of range: %v", err)

	err = e.catalog.CreateQuiz(ctx, &models.Quiz{LessonID: lessons[0].ID, Title: "Empty"})
	assert.True(t, utils.IsKind(err, utils.KindInvalidInput), "no questions: %v", err)

	err = e.catalog.CreateQuiz(ctx, &models.Quiz{LessonID: 9999, Title: "Orphan", Questions: []models.Question{
		{QuestionText: "q1", Options: []string{"a", "b"}},
	}})
	assert.True(t, utils.IsKind(err, utils.KindNotFound), "unknown lesson: %v", err)

	valid := &models.Quiz{LessonID: lessons[0].ID, Title: "Quiz", Questions: []models.Question{
		{QuestionText: "q1", Options: []string{"a", "b"}, CorrectAnswerIndex: 1},
		{QuestionText: "q2", Options: []string{"a", "b", "c"}},
	}}
	require.NoError(t, e.catalog.CreateQuiz(ctx, valid))
	stored, err := e.catalog.GetQuiz(ctx, valid.ID)
	require.NoError(t, err)
	require.Len(t, stored.Questions, 2)
	assert.Equal(t, 1, stored.Questions[0].CorrectAnswerIndex)
	assert.Equal(t, 2, stored.Questions[1].SequenceOrder)
}

func TestUpdateQuizReplacesQuestions(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	_, lessons := testutil.Course(t, e.db, 0, 1)
	quiz := testutil.Quiz(t, e.db, lessons[0].ID, 0, 1, 2)

	err := e.catalog.UpdateQuiz(ctx, quiz.ID, &models.Quiz{Title: "Shorter", Questions: []models.Question{
		{QuestionText: "only", Options: []string{"yes", "no"}, CorrectAnswerIndex: 1},
	}})
	require.NoError(t, err)

	stored, err := e.catalog.GetQuiz(ctx, quiz.ID)
	require.NoError(t, err)
	assert.Equal(t, "Shorter", stored.Title)
	assert.Equal(t, lessons[0].ID, stored.LessonID)
	require.Len(t, stored.Questions, 1)
	assert.Equal(t, "only", stored.Questions[0].QuestionText)

	var n int64
	require.NoError(t, e.db.Unscoped().Model(&models.Question{}).Where("quiz_id = ?", quiz.ID).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

func TestUpdateLessonRejectsCourseChange(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	course, lessons := testutil.Course(t, e.db, 0, 1)
	other, _ := testutil.Course(t, e.db, 0, 0)

	_, err := e.catalog.UpdateLesson(ctx, lessons[0].ID, LessonUpdate{CourseID: &other.ID})
	assert.True(t, utils.IsKind(err, utils.KindInvalidInput), "got %v", err)

	title := "Renamed"
	updated, err := e.catalog.UpdateLesson(ctx, lessons[0].ID, LessonUpdate{CourseID: &course.ID, Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, course.ID, updated.CourseID)
}
