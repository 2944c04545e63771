package repository

import (
	"context"
	"time"

	"learning_portal/backend/models"
	"learning_portal/backend/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EnrollmentRepository struct {
	base
}

func NewEnrollmentRepository(db *gorm.DB, timeout time.Duration) *EnrollmentRepository {
	return &EnrollmentRepository{base: newBase(db, timeout)}
}

// Enroll records the enrollment if absent. Only a new enrollment bumps the
// course students counter and the user's enrolled count. A zero Progress
// record is created when the pair has none. created reports whether the
// enrollment is new.
func (r *EnrollmentRepository) Enroll(ctx context.Context, userID, courseID uint) (created bool, err error) {
	db, cancel := r.conn(ctx)
	defer cancel()

	err = db.Transaction(func(tx *gorm.DB) error {
		enrollment := models.Enrollment{UserID: userID, CourseID: courseID}
		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "course_id"}},
			DoNothing: true,
		}).Create(&enrollment)
		if res.Error != nil {
			return res.Error
		}
		created = res.RowsAffected == 1

		if created {
			if err := tx.Model(&models.Course{}).Where("id = ?", courseID).
				UpdateColumn("students", gorm.Expr("students + ?", 1)).Error; err != nil {
				return err
			}
			if err := tx.Model(&models.User{}).Where("id = ?", userID).
				UpdateColumn("enrolled_count", gorm.Expr("enrolled_count + ?", 1)).Error; err != nil {
				return err
			}
		}

		return ensureProgress(tx, userID, courseID)
	})
	if err != nil {
		return false, utils.ClassifyDBError(err, "enrollment")
	}
	return created, nil
}

func (r *EnrollmentRepository) IsEnrolled(ctx context.Context, userID, courseID uint) (bool, error) {
	db, cancel := r.conn(ctx)
	defer cancel()

	var n int64
	err := db.Model(&models.Enrollment{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&n).Error
	if err != nil {
		return false, utils.ClassifyDBError(err, "enrollment")
	}
	return n > 0, nil
}

// EnrolledCourses returns the courses a user is enrolled in.
func (r *EnrollmentRepository) EnrolledCourses(ctx context.Context, userID uint) ([]models.Course, error) {
	db, cancel := r.conn(ctx)
	defer cancel()

	courses := []models.Course{}
	err := db.Joins("JOIN enrollments ON enrollments.course_id = courses.id").
		Where("enrollments.user_id = ?", userID).
		Order("courses.id").
		Find(&courses).Error
	if err != nil {
		return nil, utils.ClassifyDBError(err, "courses")
	}
	return courses, nil
}

// ensureProgress inserts the zero record for a pair. A concurrent insert of
// the same key is not an error: the existing row wins.
func ensureProgress(tx *gorm.DB, userID, courseID uint) error {
	progress := models.NewProgress(userID, courseID)
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "unique_key"}},
		DoNothing: true,
	}).Create(&progress).Error
}
