package repository

import (
	"context"
	"testing"
	"time"

	"learning_portal/backend/models"
	"learning_portal/backend/testutil"
	"learning_portal/backend/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func half(completed, total int64) int {
	if total == 0 {
		return 0
	}
	return int(100 * completed / total)
}

func TestOrderTransitionOnlyFromPending(t *testing.T) {
	db, _ := testutil.NewDB(t)
	ctx := context.Background()
	repo := NewOrderRepository(db, time.Second)
	user := testutil.User(t, db, "alice")
	course, _ := testutil.Course(t, db, 100, 0)

	order := &models.Order{OrderCode: "ORD-1", UserID: user.ID, CourseID: course.ID, Amount: 100, Status: models.OrderPending}
	require.NoError(t, repo.CreateOrder(ctx, order))
	err := repo.CreateOrder(ctx, &models.Order{OrderCode: "ORD-1", UserID: user.ID, CourseID: course.ID, Amount: 100, Status: models.OrderPending})
	assert.True(t, utils.IsKind(err, utils.KindConflict), "duplicate code: %v", err)

	moved, err := repo.Transition(ctx, "ORD-1", models.OrderPaid, "trx-1")
	require.NoError(t, err)
	assert.True(t, moved)

	moved, err = repo.Transition(ctx, "ORD-1", models.OrderCancelled, "trx-2")
	require.NoError(t, err)
	assert.False(t, moved)

	stored, err := repo.FindOrderByCode(ctx, "ORD-1")
	require.NoError(t, err)
	assert.Equal(t, models.OrderPaid, stored.Status)
	assert.Equal(t, "trx-1", stored.GatewayRef)

	_, err = repo.FindOrderByCode(ctx, "ORD-404")
	assert.True(t, utils.IsKind(err, utils.KindNotFound))
}

func TestCompleteLessonUsesPercentageFunc(t *testing.T) {
	db, _ := testutil.NewDB(t)
	ctx := context.Background()
	repo := NewProgressRepository(db, time.Second)
	user := testutil.User(t, db, "alice")
	course, lessons := testutil.Course(t, db, 0, 3)

	progress, total, err := repo.CompleteLesson(ctx, user.ID, course.ID, lessons[2].ID, half)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Equal(t, 33, progress.ProgressPercentage)

	progress, _, err = repo.CompleteLesson(ctx, user.ID, course.ID, lessons[0].ID, half)
	require.NoError(t, err)
	assert.Equal(t, []uint{lessons[0].ID, lessons[2].ID}, progress.CompletedLessons)
	assert.Equal(t, 66, progress.ProgressPercentage)

	_, err = repo.FindProgress(ctx, user.ID, course.ID+1)
	assert.True(t, utils.IsKind(err, utils.KindNotFound))
}

func TestStoreTimeoutIsTransient(t *testing.T) {
	db, _ := testutil.NewDB(t)
	repo := NewCatalogRepository(db, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := repo.FindCourseByID(ctx, 1)
	assert.True(t, utils.IsKind(err, utils.KindTransient), "got %v", err)
}

func TestEnrollCreatesProgressOnce(t *testing.T) {
	db, _ := testutil.NewDB(t)
	ctx := context.Background()
	repo := NewEnrollmentRepository(db, time.Second)
	user := testutil.User(t, db, "alice")
	course, _ := testutil.Course(t, db, 0, 1)

	for i := 0; i < 3; i++ {
		_, err := repo.Enroll(ctx, user.ID, course.ID)
		require.NoError(t, err)
	}

	var enrollments, records int64
	require.NoError(t, db.Model(&models.Enrollment{}).Count(&enrollments).Error)
	require.NoError(t, db.Model(&models.Progress{}).Count(&records).Error)
	assert.Equal(t, int64(1), enrollments)
	assert.Equal(t, int64(1), records)
}
