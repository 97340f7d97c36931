package models

import "time"

// Vote - a user's single vote on either a question or an answer.
// Exactly one of QuestionID and AnswerID is set.
type Vote struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_vote_user_question;uniqueIndex:idx_vote_user_answer" json:"user_id"`
	QuestionID *uint     `gorm:"uniqueIndex:idx_vote_user_question" json:"question_id,omitempty"`
	AnswerID   *uint     `gorm:"uniqueIndex:idx_vote_user_answer" json:"answer_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type TargetKind string

const (
	TargetQuestion TargetKind = "question"
	TargetAnswer   TargetKind = "answer"
)

// VoteRequest mirrors the vote form: the question is always sent, the
// answer only when voting on an answer.
type VoteRequest struct {
	Question string `json:"question" form:"question" binding:"required"`
	Answer   string `json:"answer" form:"answer"`
}

// VoteResult reports the state after a toggle.
type VoteResult struct {
	Target     TargetKind `json:"target"`
	TargetID   uint       `json:"target_id"`
	QuestionID uint       `json:"question_id"`
	Voted      bool       `json:"voted"`
	Votes      int64      `json:"votes"`
}
