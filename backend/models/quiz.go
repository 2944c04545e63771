package models

import "gorm.io/datatypes"

type Quiz struct {
	Base
	LessonID  uint       `gorm:"index;not null" json:"lessonId"`
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
}

type Question struct {
	Base
	QuizID             uint                        `gorm:"index;not null" json:"quizId"`
	QuestionText       string                      `gorm:"not null" json:"questionText"`
	Options            datatypes.JSONSlice[string] `json:"options"`
	CorrectAnswerIndex int                         `json:"correctAnswerIndex"`
	SequenceOrder      int                         `json:"sequenceOrder"`
}

// HasValidAnswer reports whether the correct index points at an option.
func (q *Question) HasValidAnswer() bool {
	return q.CorrectAnswerIndex >= 0 && q.CorrectAnswerIndex < len(q.Options)
}

// LearnerQuestion is a question as shown to a learner, without the answer.
type LearnerQuestion struct {
	ID           uint     `json:"id"`
	QuestionText string   `json:"questionText"`
	Options      []string `json:"options"`
}

type LearnerQuiz struct {
	ID        uint              `json:"id"`
	LessonID  uint              `json:"lessonId"`
	Title     string            `json:"title"`
	Questions []LearnerQuestion `json:"questions"`
}

// ForLearner strips correct answers from the quiz.
func (q *Quiz) ForLearner() LearnerQuiz {
	out := LearnerQuiz{
		ID:        q.ID,
		LessonID:  q.LessonID,
		Title:     q.Title,
		Questions: make([]LearnerQuestion, 0, len(q.Questions)),
	}
	for _, question := range q.Questions {
		out.Questions = append(out.Questions, LearnerQuestion{
			ID:           question.ID,
			QuestionText: question.QuestionText,
			Options:      append([]string(nil), question.Options...),
		})
	}
	return out
}
