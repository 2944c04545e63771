package models

import (
	"time"

	"gorm.io/gorm"
)

// Base mirrors gorm.Model with the JSON names the web client reads.
type Base struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// All returns every persisted model, in migration order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Course{},
		&Lesson{},
		&Quiz{},
		&Question{},
		&Enrollment{},
		&Progress{},
		&CompletedLesson{},
		&Order{},
		&Testimonial{},
	}
}
