package services

import (
	"context"
	"sync"
	"testing"

	"learning_portal/backend/models"
	"learning_portal/backend/testutil"
	"learning_portal/backend/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompletionPercentage(t *testing.T) {
	tests := []struct {
		completed, total int64
		want             int
	}{
		{0, 5, 0},
		{1, 5, 20},
		{1, 3, 33},
		{2, 3, 67},
		{1, 2, 50},
		{1, 8, 13},
		{5, 5, 100},
		{7, 5, 100},
		{0, 0, 0},
		{3, 0, 0},
		{1, 200, 1},
		{1, 201, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CompletionPercentage(tt.completed, tt.total), "%d/%d", tt.completed, tt.total)
	}
}

func TestGetProgressWithoutRecordDoesNotCreateOne(t *testing.T) {
	e := newEnv(t)
	user := testutil.User(t, e.db, "alice")
	course, _ := testutil.Course(t, e.db, 0, 3)

	progress, err := e.progress.GetProgress(context.Background(), user.ID, course.ID)
	require.NoError(t, err)
	assert.Empty(t, progress.CompletedLessons)
	assert.NotNil(t, progress.CompletedLessons)
	assert.Equal(t, 0, progress.ProgressPercentage)

	var n int64
	require.NoError(t, e.db.Model(&models.Progress{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestGetProgressRejectsMissingIDs(t *testing.T) {
	e := newEnv(t)

	_, err := e.progress.GetProgress(context.Background(), 0, 1)
	assert.True(t, utils.IsKind(err, utils.KindInvalidInput))
}

func TestMarkLessonCompleteIsIdempotent(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	user := testutil.User(t, e.db, "alice")
	course, lessons := testutil.Course(t, e.db, 0, 5)

	first, total, err := e.progress.MarkLessonComplete(ctx, user.ID, course.ID, lessons[0].ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Equal(t, []uint{lessons[0].ID}, first.CompletedLessons)
	assert.Equal(t, 20, first.ProgressPercentage)

	second, _, err := e.progress.MarkLessonComplete(ctx, user.ID, course.ID, lessons[0].ID)
	require.NoError(t, err)
	assert.Equal(t, first.CompletedLessons, second.CompletedLessons)
	assert.Equal(t, 20, second.ProgressPercentage)

	var n int64
	require.NoError(t, e.db.Model(&models.CompletedLesson{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)

	stored, err := e.progress.GetProgress(ctx, user.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{lessons[0].ID}, stored.CompletedLessons)
	assert.Equal(t, 20, stored.ProgressPercentage)
}

func TestMarkLessonCompleteValidatesLesson(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	user := testutil.User(t, e.db, "alice")
	course, _ := testutil.Course(t, e.db, 0, 2)
	_, other := testutil.Course(t, e.db, 0, 1)

	_, _, err := e.progress.MarkLessonComplete(ctx, user.ID, course.ID, other[0].ID)
	assert.True(t, utils.IsKind(err, utils.KindInvalidInput), "lesson of another course: %v", err)

	_, _, err = e.progress.MarkLessonComplete(ctx, user.ID, course.ID, 9999)
	assert.True(t, utils.IsKind(err, utils.KindNotFound), "unknown lesson: %v", err)

	_, _, err = e.progress.MarkLessonComplete(ctx, 0, course.ID, 1)
	assert.True(t, utils.IsKind(err, utils.KindInvalidInput))

	var n int64
	require.NoError(t, e.db.Model(&models.Progress{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestMarkLessonCompleteConcurrent(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	user := testutil.User(t, e.db, "alice")
	course, lessons := testutil.Course(t, e.db, 0, 5)

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(lessonID uint) {
			defer wg.Done()
			_, _, err := e.progress.MarkLessonComplete(ctx, user.ID, course.ID, lessonID)
			errs <- err
		}(lessons[i%len(lessons)].ID)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	progress, err := e.progress.GetProgress(ctx, user.ID, course.ID)
	require.NoError(t, err)
	assert.Len(t, progress.CompletedLessons, 5)
	assert.Equal(t, 100, progress.ProgressPercentage)

	var records int64
	require.NoError(t, e.db.Model(&models.Progress{}).Count(&records).Error)
	assert.Equal(t, int64(1), records)
}

func TestProgressFollowsLessonSetChanges(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	user := testutil.User(t, e.db, "alice")
	course, lessons := testutil.Course(t, e.db, 0, 2)

	_, _, err := e.progress.MarkLessonComplete(ctx, user.ID, course.ID, lessons[0].ID)
	require.NoError(t, err)

	require.NoError(t, e.catalog.CreateLesson(ctx, &models.Lesson{CourseID: course.ID, Title: "Extra"}))
	progress, err := e.progress.GetProgress(ctx, user.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 33, progress.ProgressPercentage)

	require.NoError(t, e.catalog.DeleteLesson(ctx, lessons[0].ID))
	progress, err = e.progress.GetProgress(ctx, user.ID, course.ID)
	require.NoError(t, err)
	assert.Empty(t, progress.CompletedLessons)
	assert.Equal(t, 0, progress.ProgressPercentage)
}
