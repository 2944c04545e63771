package repository

import (
	"context"
	"fmt"
	"time"

	"learning_portal/backend/models"
	"learning_portal/backend/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PercentageFunc derives a completion percentage from the number of
// completed lessons and the number of lessons in the course.
type PercentageFunc func(completed, total int64) int

type ProgressRepository struct {
	base
}

func NewProgressRepository(db *gorm.DB, timeout time.Duration) *ProgressRepository {
	return &ProgressRepository{base: newBase(db, timeout)}
}

// FindProgress loads the record of a pair with its completed lesson ids.
// A missing record is a NotFound error; nothing is created.
func (r *ProgressRepository) FindProgress(ctx context.Context, userID, courseID uint) (*models.Progress, error) {
	db, cancel := r.conn(ctx)
	defer cancel()

	var progress models.Progress
	if err := db.Where("unique_key = ?", models.ProgressKey(userID, courseID)).First(&progress).Error; err != nil {
		return nil, utils.ClassifyDBError(err, "progress "+models.ProgressKey(userID, courseID))
	}
	ids, err := completedLessonIDs(db, userID, courseID)
	if err != nil {
		return nil, utils.ClassifyDBError(err, "completed lessons")
	}
	progress.CompletedLessons = ids
	return &progress, nil
}

// CompleteLesson adds lessonID to the pair's completed set and persists the
// recomputed percentage, all in one transaction:
//
//  1. create the progress row if absent (ON CONFLICT DO NOTHING)
//  2. lock it for the rest of the transaction
//  3. insert the completed lesson if absent (ON CONFLICT DO NOTHING)
//  4. recount and store the percentage
//
// Step 4 runs even when step 3 inserted nothing, so the stored percentage
// always matches the stored set. It returns the updated record and the
// course lesson count.
func (r *ProgressRepository) CompleteLesson(ctx context.Context, userID, courseID, lessonID uint, percentage PercentageFunc) (*models.Progress, int64, error) {
	db, cancel := r.conn(ctx)
	defer cancel()

	var (
		progress models.Progress
		total    int64
	)
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := ensureProgress(tx, userID, courseID); err != nil {
			return err
		}
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("unique_key = ?", models.ProgressKey(userID, courseID)).
			First(&progress).Error; err != nil {
			return err
		}

		completed := models.CompletedLesson{UserID: userID, CourseID: courseID, LessonID: lessonID}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "course_id"}, {Name: "lesson_id"}},
			DoNothing: true,
		}).Create(&completed).Error; err != nil {
			return err
		}

		var err error
		total, err = recompute(tx, &progress, percentage)
		return err
	})
	if err != nil {
		return nil, 0, utils.ClassifyDBError(err, "progress "+models.ProgressKey(userID, courseID))
	}
	return &progress, total, nil
}

// RecomputeCourse re-derives the stored percentage of every progress record
// of a course, e.g. after its lesson set changed.
func (r *ProgressRepository) RecomputeCourse(ctx context.Context, courseID uint, percentage PercentageFunc) (int, error) {
	db, cancel := r.conn(ctx)
	defer cancel()

	updated := 0
	err := db.Transaction(func(tx *gorm.DB) error {
		var records []models.Progress
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("course_id = ?", courseID).
			Order("id").
			Find(&records).Error; err != nil {
			return err
		}
		for i := range records {
			if _, err := recompute(tx, &records[i], percentage); err != nil {
				return err
			}
			updated++
		}
		return nil
	})
	if err != nil {
		return 0, utils.ClassifyDBError(err, fmt.Sprintf("progress of course %d", courseID))
	}
	return updated, nil
}

// recompute reloads the completed set of a locked record, stores the
// derived percentage and returns the course lesson count.
func recompute(tx *gorm.DB, progress *models.Progress, percentage PercentageFunc) (int64, error) {
	ids, err := completedLessonIDs(tx, progress.UserID, progress.CourseID)
	if err != nil {
		return 0, err
	}

	var total int64
	if err := tx.Model(&models.Lesson{}).Where("course_id = ?", progress.CourseID).Count(&total).Error; err != nil {
		return 0, err
	}

	pct := percentage(int64(len(ids)), total)
	if err := tx.Model(progress).Update("progress_percentage", pct).Error; err != nil {
		return 0, err
	}
	progress.ProgressPercentage = pct
	progress.CompletedLessons = ids
	return total, nil
}

// completedLessonIDs returns the completed ids that are still lessons of the
// course, ascending.
func completedLessonIDs(db *gorm.DB, userID, courseID uint) ([]uint, error) {
	ids := []uint{}
	err := db.Model(&models.CompletedLesson{}).
		Joins("JOIN lessons ON lessons.id = completed_lessons.lesson_id AND lessons.deleted_at IS NULL").
		Where("completed_lessons.user_id = ? AND completed_lessons.course_id = ? AND lessons.course_id = ?", userID, courseID, courseID).
		Order("completed_lessons.lesson_id").
		Pluck("completed_lessons.lesson_id", &ids).Error
	return ids, err
}
