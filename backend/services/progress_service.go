package services

import (
	"context"

	"learning_portal/backend/models"
	"learning_portal/backend/utils"

	"go.uber.org/zap"
)

// CompletionPercentage is round(100 * completed / total), rounding half up,
// clamped to [0, 100]. A course without lessons is 0%.
func CompletionPercentage(completed, total int64) int {
	if total <= 0 || completed <= 0 {
		return 0
	}
	if completed > total {
		completed = total
	}
	// integer form of floor(100*c/t + 0.5)
	return int((200*completed + total) / (2 * total))
}

// ProgressService is the progress tracker: it owns the completed-lesson
// set and the derived percentage of each (user, course) pair.
type ProgressService struct {
	catalog  CatalogReader
	progress ProgressStore
	log      *zap.Logger
}

func NewProgressService(catalog CatalogReader, progress ProgressStore, log *zap.Logger) *ProgressService {
	return &ProgressService{catalog: catalog, progress: progress, log: log}
}

// GetProgress returns the stored record, or the zero value when the pair
// has none. It never writes.
func (s *ProgressService) GetProgress(ctx context.Context, userID, courseID uint) (*models.Progress, error) {
	if userID == 0 || courseID == 0 {
		return nil, utils.Invalidf("userId and courseId are required")
	}
	progress, err := s.progress.FindProgress(ctx, userID, courseID)
	if utils.IsKind(err, utils.KindNotFound) {
		zero := models.NewProgress(userID, courseID)
		return &zero, nil
	}
	if err != nil {
		return nil, err
	}
	return progress, nil
}

// MarkLessonComplete records lessonID as completed for the pair and returns
// the updated record and the course lesson count. Repeating the call with
// the same lesson changes nothing.
func (s *ProgressService) MarkLessonComplete(ctx context.Context, userID, courseID, lessonID uint) (*models.Progress, int64, error) {
	if userID == 0 || courseID == 0 || lessonID == 0 {
		return nil, 0, utils.Invalidf("userId, courseId and lessonId are required")
	}
	lesson, err := s.catalog.FindLessonByID(ctx, lessonID)
	if err != nil {
		return nil, 0, err
	}
	if lesson.CourseID != courseID {
		return nil, 0, utils.Invalidf("lesson %d does not belong to course %d", lessonID, courseID)
	}

	progress, total, err := s.progress.CompleteLesson(ctx, userID, courseID, lessonID, CompletionPercentage)
	if err != nil {
		s.log.Error("complete lesson failed",
			zap.Uint("user_id", userID), zap.Uint("course_id", courseID), zap.Uint("lesson_id", lessonID), zap.Error(err))
		return nil, 0, err
	}

	s.log.Info("lesson completed",
		zap.Uint("user_id", userID),
		zap.Uint("course_id", courseID),
		zap.Uint("lesson_id", lessonID),
		zap.Int("progress_percentage", progress.ProgressPercentage),
		zap.Int64("total_lessons", total))
	return progress, total, nil
}

// RecomputeCourse refreshes stored percentages after the lesson set of a
// course changed.
func (s *ProgressService) RecomputeCourse(ctx context.Context, courseID uint) error {
	n, err := s.progress.RecomputeCourse(ctx, courseID, CompletionPercentage)
	if err != nil {
		return err
	}
	s.log.Debug("course progress recomputed", zap.Uint("course_id", courseID), zap.Int("records", n))
	return nil
}
