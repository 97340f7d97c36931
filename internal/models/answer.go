package models

import "time"

// Answer belongs to one question and one author. The composite unique index
// keeps a user to a single answer per question.
type Answer struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	QuestionID uint      `gorm:"not null;uniqueIndex:idx_answer_question_user" json:"question_id"`
	Question   *Question `gorm:"foreignKey:QuestionID" json:"question,omitempty"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_answer_question_user;index" json:"user_id"`
	User       User      `gorm:"foreignKey:UserID" json:"user"`
	Text       string    `gorm:"type:text;not null" json:"text"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type AnswerRequest struct {
	Text string `json:"text" form:"text" binding:"required,notblank"`
}
