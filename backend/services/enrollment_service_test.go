package services

import (
	"context"
	"testing"

	"learning_portal/backend/models"
	"learning_portal/backend/testutil"
	"learning_portal/backend/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnrollIsIdempotent(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	user := testutil.User(t, e.db, "alice")
	course, _ := testutil.Course(t, e.db, 0, 2)

	created, err := e.enrollment.Enroll(ctx, user.ID, course.ID)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = e.enrollment.Enroll(ctx, user.ID, course.ID)
	require.NoError(t, err)
	assert.False(t, created)

	var stored models.Course
	require.NoError(t, e.db.First(&stored, course.ID).Error)
	assert.Equal(t, 1, stored.Students)

	var storedUser models.User
	require.NoError(t, e.db.First(&storedUser, user.ID).Error)
	assert.Equal(t, 1, storedUser.EnrolledCount)

	var records []models.Progress
	require.NoError(t, e.db.Where("user_id = ? AND course_id = ?", user.ID, course.ID).Find(&records).Error)
	require.Len(t, records, 1)
	assert.Equal(t, 0, records[0].ProgressPercentage)

	enrolled, err := e.enrollment.IsEnrolled(ctx, user.ID, course.ID)
	require.NoError(t, err)
	assert.True(t, enrolled)

	courses, err := e.enrollment.EnrolledCourses(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, course.ID, courses[0].ID)
}

func TestEnrollKeepsExistingProgress(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	user := testutil.User(t, e.db, "alice")
	course, lessons := testutil.Course(t, e.db, 0, 2)

	_, _, err := e.progress.MarkLessonComplete(ctx, user.ID, course.ID, lessons[0].ID)
	require.NoError(t, err)

	_, err = e.enrollment.Enroll(ctx, user.ID, course.ID)
	require.NoError(t, err)

	progress, err := e.progress.GetProgress(ctx, user.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, progress.ProgressPercentage)
}

func TestEnrollUnknownReferences(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	user := testutil.User(t, e.db, "alice")
	course, _ := testutil.Course(t, e.db, 0, 1)

	_, err := e.enrollment.Enroll(ctx, 9999, course.ID)
	assert.True(t, utils.IsKind(err, utils.KindNotFound))

	_, err = e.enrollment.Enroll(ctx, user.ID, 9999)
	assert.True(t, utils.IsKind(err, utils.KindNotFound))

	_, err = e.enrollment.Enroll(ctx, 0, course.ID)
	assert.True(t, utils.IsKind(err, utils.KindInvalidInput))

	var n int64
	require.NoError(t, e.db.Model(&models.Enrollment{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestEnrollFreeRefusesPaidCourse(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	user := testutil.User(t, e.db, "alice")
	paid, _ := testutil.Course(t, e.db, 500000, 1)
	free, _ := testutil.Course(t, e.db, 0, 1)

	_, err := e.enrollment.EnrollFree(ctx, user.ID, paid.ID)
	assert.True(t, utils.IsKind(err, utils.KindInvalidInput), "got %v", err)

	created, err := e.enrollment.EnrollFree(ctx, user.ID, free.ID)
	require.NoError(t, err)
	assert.True(t, created)

	enrolled, err := e.enrollment.IsEnrolled(ctx, user.ID, paid.ID)
	require.NoError(t, err)
	assert.False(t, enrolled)

	// the payment path still enrolls into paid courses
	created, err = e.enrollment.Enroll(ctx, user.ID, paid.ID)
	require.NoError(t, err)
	assert.True(t, created)
}
