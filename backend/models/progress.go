package models

import (
	"fmt"
	"time"
)

// Progress is the per (user, course) completion record.
type Progress struct {
	Base
	UserID             uint   `gorm:"index;not null" json:"userId"`
	CourseID           uint   `gorm:"index;not null" json:"courseId"`
	UniqueKey          string `gorm:"uniqueIndex;size:64;not null" json:"-"`
	ProgressPercentage int    `gorm:"default:0" json:"progressPercentage"`
	CompletedLessons   []uint `gorm:"-" json:"completedLessons"`
}

// CompletedLesson is one member of a Progress record's completed set.
// The unique index keeps a lesson from being recorded twice.
type CompletedLesson struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"uniqueIndex:idx_completed_user_course_lesson;not null"`
	CourseID  uint      `gorm:"uniqueIndex:idx_completed_user_course_lesson;not null"`
	LessonID  uint      `gorm:"uniqueIndex:idx_completed_user_course_lesson;not null"`
	CreatedAt time.Time
}

// ProgressKey is the composite key of a Progress record.
func ProgressKey(userID, courseID uint) string {
	return fmt.Sprintf("%d-%d", userID, courseID)
}

// NewProgress returns the zero-value record for a pair.
func NewProgress(userID, courseID uint) Progress {
	return Progress{
		UserID:           userID,
		CourseID:         courseID,
		UniqueKey:        ProgressKey(userID, courseID),
		CompletedLessons: []uint{},
	}
}
