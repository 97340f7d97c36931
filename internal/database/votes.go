package database

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"

	"github.com/emilythestrangee/qanda/backend/internal/models"
)

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || id == 0 {
		return 0, ErrInvalidTarget
	}
	return uint(id), nil
}

// resolveTarget picks the vote target for req. The question must exist.
// The answer is looked up by id alone; if that lookup fails for any reason
// (empty, malformed or unknown id) the vote goes to the question instead.
func (c *Client) resolveTarget(ctx context.Context, req models.VoteRequest) (models.TargetKind, uint, uint, error) {
	questionID, err := parseID(req.Question)
	if err != nil {
		return "", 0, 0, err
	}
	q, err := c.GetQuestion(ctx, questionID)
	if err != nil {
		return "", 0, 0, err
	}

	if strings.TrimSpace(req.Answer) == "" {
		return models.TargetQuestion, q.ID, q.ID, nil
	}

	answerID, err := parseID(req.Answer)
	if err != nil {
		log.Debug("malformed vote answer, voting on question", "answer", req.Answer, "question", q.ID)
		return models.TargetQuestion, q.ID, q.ID, nil
	}

	var a models.Answer
	if err := c.db.WithContext(ctx).First(&a, answerID).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn("vote answer lookup failed, voting on question", "answer", answerID, "question", q.ID, "error", err)
		} else {
			log.Debug("vote answer not found, voting on question", "answer", answerID, "question", q.ID)
		}
		return models.TargetQuestion, q.ID, q.ID, nil
	}
	return models.TargetAnswer, a.ID, q.ID, nil
}

// ToggleVote removes the user's vote on the target if there is one and
// casts it otherwise.
func (c *Client) ToggleVote(ctx context.Context, userID uint, req models.VoteRequest) (*models.VoteResult, error) {
	kind, targetID, questionID, err := c.resolveTarget(ctx, req)
	if err != nil {
		return nil, err
	}

	column := "question_id"
	if kind == models.TargetAnswer {
		column = "answer_id"
	}

	result := &models.VoteResult{
		Target:     kind,
		TargetID:   targetID,
		QuestionID: questionID,
	}

	err = c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Vote
		err := tx.Where("user_id = ? AND "+column+" = ?", userID, targetID).First(&existing).Error
		switch {
		case err == nil:
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
			result.Voted = false
		case errors.Is(err, gorm.ErrRecordNotFound):
			vote := models.Vote{UserID: userID}
			if kind == models.TargetAnswer {
				vote.AnswerID = &targetID
			} else {
				vote.QuestionID = &targetID
			}
			if err := tx.Create(&vote).Error; err != nil {
				return err
			}
			result.Voted = true
		default:
			return err
		}

		return tx.Model(&models.Vote{}).Where(column+" = ?", targetID).Count(&result.Votes).Error
	})
	if err != nil {
		return nil, mapError(err)
	}

	return result, nil
}
