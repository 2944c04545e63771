package services

import (
	"context"

	"learning_portal/backend/models"
	"learning_portal/backend/utils"

	"go.uber.org/zap"
)

type EnrollmentService struct {
	catalog     CatalogReader
	users       UserStore
	enrollments EnrollmentStore
	log         *zap.Logger
}

func NewEnrollmentService(catalog CatalogReader, users UserStore, enrollments EnrollmentStore, log *zap.Logger) *EnrollmentService {
	return &EnrollmentService{catalog: catalog, users: users, enrollments: enrollments, log: log}
}

// Enroll gives a user access to a course. Enrolling twice is a no-op; the
// result reports whether this call created the enrollment. It does not
// look at the price: paid access goes through PaymentService.
func (s *EnrollmentService) Enroll(ctx context.Context, userID, courseID uint) (bool, error) {
	course, err := s.lookup(ctx, userID, courseID)
	if err != nil {
		return false, err
	}
	return s.enroll(ctx, userID, course.ID)
}

// EnrollFree is the self-service enrollment. Paid courses are refused.
func (s *EnrollmentService) EnrollFree(ctx context.Context, userID, courseID uint) (bool, error) {
	course, err := s.lookup(ctx, userID, courseID)
	if err != nil {
		return false, err
	}
	if !course.IsFree() {
		return false, utils.Invalidf("course %d is paid, use /payments/checkout", course.ID)
	}
	return s.enroll(ctx, userID, course.ID)
}

func (s *EnrollmentService) lookup(ctx context.Context, userID, courseID uint) (*models.Course, error) {
	if userID == 0 || courseID == 0 {
		return nil, utils.Invalidf("userId and courseId are required")
	}
	if _, err := s.users.FindUserByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.catalog.FindCourseByID(ctx, courseID)
}

func (s *EnrollmentService) enroll(ctx context.Context, userID, courseID uint) (bool, error) {
	created, err := s.enrollments.Enroll(ctx, userID, courseID)
	if err != nil {
		return false, err
	}
	if created {
		s.log.Info("enrollment created", zap.Uint("user_id", userID), zap.Uint("course_id", courseID))
	}
	return created, nil
}

func (s *EnrollmentService) IsEnrolled(ctx context.Context, userID, courseID uint) (bool, error) {
	return s.enrollments.IsEnrolled(ctx, userID, courseID)
}

func (s *EnrollmentService) EnrolledCourses(ctx context.Context, userID uint) ([]models.Course, error) {
	if _, err := s.users.FindUserByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.enrollments.EnrolledCourses(ctx, userID)
}
