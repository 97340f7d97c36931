package database

import (
	"context"

	"github.com/emilythestrangee/qanda/backend/internal/models"
)

// DB defines the storage operations used by the HTTP layer.
type DB interface {
	// Users
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserActivity(ctx context.Context, username string) (*UserActivity, error)
	GetSelf(ctx context.Context, actorID uint, username string) (*models.User, error)
	UpdateUser(ctx context.Context, actorID uint, username string, in models.UpdateUserRequest) (*models.User, error)
	DeactivateUser(ctx context.Context, actorID uint, username string) (*models.User, error)

	// Questions
	ListQuestions(ctx context.Context, query string, page, pageSize int) (*QuestionPage, error)
	GetQuestion(ctx context.Context, id uint) (*models.Question, error)
	GetQuestionDetail(ctx context.Context, id, viewerID uint) (*QuestionDetail, error)
	CreateQuestion(ctx context.Context, userID uint, in models.QuestionRequest) (*models.Question, error)
	GetOwnedQuestion(ctx context.Context, id, userID uint) (*models.Question, error)
	UpdateQuestion(ctx context.Context, id, userID uint, in models.QuestionRequest) (*models.Question, error)
	DeleteQuestion(ctx context.Context, id, userID uint) error

	// Answers
	HasAnswered(ctx context.Context, questionID, userID uint) (bool, error)
	CreateAnswer(ctx context.Context, questionID, userID uint, in models.AnswerRequest) (*models.Answer, error)
	GetOwnedAnswer(ctx context.Context, questionID, answerID, userID uint) (*models.Answer, error)
	UpdateAnswer(ctx context.Context, questionID, answerID, userID uint, in models.AnswerRequest) (*models.Answer, error)
	DeleteAnswer(ctx context.Context, questionID, answerID, userID uint) error

	// Votes
	ToggleVote(ctx context.Context, userID uint, req models.VoteRequest) (*models.VoteResult, error)

	// Utility
	Health(ctx context.Context) map[string]string
	Migrate(ctx context.Context) error
	Close() error
}
