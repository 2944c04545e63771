package models

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	Base
	Username          string `gorm:"uniqueIndex;not null" json:"username"`
	PasswordHash      string `gorm:"not null" json:"-"`
	Fullname          string `gorm:"not null" json:"fullname"`
	Email             string `gorm:"uniqueIndex;not null" json:"email"`
	Role              string `gorm:"default:user" json:"role"` // user, admin
	Status            string `gorm:"default:active" json:"status"`
	JoinDate          string `json:"joinDate"`
	EnrolledCount     int    `gorm:"default:0" json:"coursesEnrolledCount"`
	EnrolledCourseIDs []uint `gorm:"-" json:"coursesEnrolled"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Enrollment records that a user has access to a course.
type Enrollment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex:idx_enrollment_user_course;not null" json:"userId"`
	CourseID  uint      `gorm:"uniqueIndex:idx_enrollment_user_course;not null" json:"courseId"`
	CreatedAt time.Time `json:"createdAt"`
}
