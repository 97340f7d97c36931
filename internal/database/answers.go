package database

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"

	"github.com/emilythestrangee/qanda/backend/internal/models"
)

func (c *Client) HasAnswered(ctx context.Context, questionID, userID uint) (bool, error) {
	var count int64
	if err := c.db.WithContext(ctx).Model(&models.Answer{}).
		Where("question_id = ? AND user_id = ?", questionID, userID).
		Count(&count).Error; err != nil {
		return false, mapError(err)
	}
	return count > 0, nil
}

// CreateAnswer posts userID's answer to the question. A second answer by
// the same user is ErrAlreadyAnswered.
func (c *Client) CreateAnswer(ctx context.Context, questionID, userID uint, in models.AnswerRequest) (*models.Answer, error) {
	q, err := c.GetQuestion(ctx, questionID)
	if err != nil {
		return nil, err
	}

	answered, err := c.HasAnswered(ctx, q.ID, userID)
	if err != nil {
		return nil, err
	}
	if answered {
		return nil, ErrAlreadyAnswered
	}

	a := models.Answer{
		QuestionID: q.ID,
		UserID:     userID,
		Text:       in.Text,
	}
	if err := c.db.WithContext(ctx).Create(&a).Error; err != nil {
		// lost a race against a concurrent answer from the same user
		if err := mapError(err); errors.Is(err, ErrDuplicate) {
			return nil, ErrAlreadyAnswered
		}
		log.Error("failed to create answer", "question", q.ID, "error", err)
		return nil, mapError(err)
	}
	return c.getAnswer(ctx, q.ID, a.ID)
}

func (c *Client) getAnswer(ctx context.Context, questionID, answerID uint) (*models.Answer, error) {
	var a models.Answer
	if err := c.db.WithContext(ctx).
		Preload("User").
		Preload("Question").
		Where("question_id = ?", questionID).
		First(&a, answerID).Error; err != nil {
		return nil, mapError(err)
	}
	return &a, nil
}

// GetOwnedAnswer returns the answer if it belongs to the question and userID wrote it.
func (c *Client) GetOwnedAnswer(ctx context.Context, questionID, answerID, userID uint) (*models.Answer, error) {
	a, err := c.getAnswer(ctx, questionID, answerID)
	if err != nil {
		return nil, err
	}
	if a.UserID != userID {
		return nil, ErrPermissionDenied
	}
	return a, nil
}

func (c *Client) UpdateAnswer(ctx context.Context, questionID, answerID, userID uint, in models.AnswerRequest) (*models.Answer, error) {
	a, err := c.GetOwnedAnswer(ctx, questionID, answerID, userID)
	if err != nil {
		return nil, err
	}

	if err := c.db.WithContext(ctx).Model(a).Update("text", in.Text).Error; err != nil {
		return nil, mapError(err)
	}
	return c.getAnswer(ctx, questionID, a.ID)
}

// DeleteAnswer removes the answer and the votes cast on it.
func (c *Client) DeleteAnswer(ctx context.Context, questionID, answerID, userID uint) error {
	a, err := c.GetOwnedAnswer(ctx, questionID, answerID, userID)
	if err != nil {
		return err
	}

	err = c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("answer_id = ?", a.ID).Delete(&models.Vote{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Answer{}, a.ID).Error
	})
	if err != nil {
		log.Error("failed to delete answer", "id", a.ID, "error", err)
		return mapError(err)
	}
	return nil
}
