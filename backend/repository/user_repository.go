package repository

import (
	"context"
	"fmt"
	"time"

	"learning_portal/backend/models"
	"learning_portal/backend/utils"

	"gorm.io/gorm"
)

type UserRepository struct {
	base
}

func NewUserRepository(db *gorm.DB, timeout time.Duration) *UserRepository {
	return &UserRepository{base: newBase(db, timeout)}
}

// FindUserByID loads a user with its enrolled course ids.
func (r *UserRepository) FindUserByID(ctx context.Context, id uint) (*models.User, error) {
	db, cancel := r.conn(ctx)
	defer cancel()

	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		return nil, utils.ClassifyDBError(err, fmt.Sprintf("user %d", id))
	}
	if err := loadEnrolled(db, &user); err != nil {
		return nil, utils.ClassifyDBError(err, "enrollments")
	}
	return &user, nil
}

func (r *UserRepository) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	db, cancel := r.conn(ctx)
	defer cancel()

	var user models.User
	if err := db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, utils.ClassifyDBError(err, "user "+username)
	}
	return &user, nil
}

// ListUsers returns users, optionally filtered by role.
func (r *UserRepository) ListUsers(ctx context.Context, role string) ([]models.User, error) {
	db, cancel := r.conn(ctx)
	defer cancel()

	query := db.Model(&models.User{})
	if role != "" {
		query = query.Where("role = ?", role)
	}
	users := []models.User{}
	if err := query.Order("id").Find(&users).Error; err != nil {
		return nil, utils.ClassifyDBError(err, "users")
	}
	for i := range users {
		if err := loadEnrolled(db, &users[i]); err != nil {
			return nil, utils.ClassifyDBError(err, "enrollments")
		}
	}
	return users, nil
}

func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) error {
	db, cancel := r.conn(ctx)
	defer cancel()
	return utils.ClassifyDBError(db.Create(user).Error, "user "+user.Username)
}

func (r *UserRepository) DeleteUser(ctx context.Context, id uint) error {
	db, cancel := r.conn(ctx)
	defer cancel()

	res := db.Delete(&models.User{}, id)
	if res.Error != nil {
		return utils.ClassifyDBError(res.Error, fmt.Sprintf("user %d", id))
	}
	if res.RowsAffected == 0 {
		return utils.NotFoundf("user %d not found", id)
	}
	return nil
}

func loadEnrolled(db *gorm.DB, user *models.User) error {
	ids := []uint{}
	err := db.Model(&models.Enrollment{}).
		Where("user_id = ?", user.ID).
		Order("course_id").
		Pluck("course_id", &ids).Error
	user.EnrolledCourseIDs = ids
	return err
}
