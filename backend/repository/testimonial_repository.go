package repository

import (
	"context"
	"time"

	"learning_portal/backend/models"
	"learning_portal/backend/utils"

	"gorm.io/gorm"
)

type TestimonialRepository struct {
	base
}

func NewTestimonialRepository(db *gorm.DB, timeout time.Duration) *TestimonialRepository {
	return &TestimonialRepository{base: newBase(db, timeout)}
}

func (r *TestimonialRepository) List(ctx context.Context) ([]models.Testimonial, error) {
	db, cancel := r.conn(ctx)
	defer cancel()

	items := []models.Testimonial{}
	if err := db.Order("id").Find(&items).Error; err != nil {
		return nil, utils.ClassifyDBError(err, "testimonials")
	}
	return items, nil
}

func (r *TestimonialRepository) Create(ctx context.Context, item *models.Testimonial) error {
	db, cancel := r.conn(ctx)
	defer cancel()
	return utils.ClassifyDBError(db.Create(item).Error, "testimonial")
}
