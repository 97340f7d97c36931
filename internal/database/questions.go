package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/samber/lo"
	"gorm.io/gorm"

	"github.com/emilythestrangee/qanda/backend/internal/models"
)

// QuestionSummary is a list entry with its vote and answer counts.
type QuestionSummary struct {
	models.Question
	Votes       int64 `json:"votes"`
	AnswerCount int64 `json:"answer_count"`
}

// QuestionPage is one page of a question listing.
type QuestionPage struct {
	Questions   []QuestionSummary `json:"questions"`
	Query       string            `json:"query,omitempty"`
	Page        int               `json:"page"`
	PageSize    int               `json:"page_size"`
	NumPages    int               `json:"num_pages"`
	Total       int64             `json:"total"`
	HasNext     bool              `json:"has_next"`
	HasPrevious bool              `json:"has_previous"`
}

// AnswerView is an answer with its vote count and the viewer's vote state.
type AnswerView struct {
	models.Answer
	Votes int64 `json:"votes"`
	Voted bool  `json:"voted"`
}

// QuestionDetail is everything the question page shows.
type QuestionDetail struct {
	Question    models.Question `json:"question"`
	Votes       int64           `json:"votes"`
	Voted       bool            `json:"voted"`
	Answers     []AnswerView    `json:"answers"`
	UserAnswers []models.Answer `json:"user_answers"`
}

type countRow struct {
	ID    uint
	Count int64
}

// ListQuestions returns a page of questions, newest first. A non-empty query
// restricts the result to titles containing it, ignoring case.
// Pages are 1-based; a page past the end is ErrNotFound, except that an
// empty listing always has a first page.
func (c *Client) ListQuestions(ctx context.Context, query string, page, pageSize int) (*QuestionPage, error) {
	if pageSize <= 0 {
		return nil, fmt.Errorf("invalid page size %d", pageSize)
	}
	if page < 1 {
		return nil, ErrNotFound
	}

	scope := c.db.WithContext(ctx).Model(&models.Question{})
	if query = strings.TrimSpace(query); query != "" {
		scope = scope.Where(`LOWER(questions.title) LIKE ? ESCAPE '\'`, "%"+escapeLike(strings.ToLower(query))+"%")
	}

	var total int64
	if err := scope.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, mapError(err)
	}

	numPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	if numPages == 0 {
		numPages = 1
	}
	if page > numPages {
		return nil, ErrNotFound
	}

	var questions []models.Question
	if err := scope.Session(&gorm.Session{}).
		Preload("User").
		Order("questions.created_at desc, questions.id desc").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&questions).Error; err != nil {
		return nil, mapError(err)
	}

	ids := lo.Map(questions, func(q models.Question, _ int) uint { return q.ID })
	votes, err := c.countBy(ctx, &models.Vote{}, "question_id", ids)
	if err != nil {
		return nil, err
	}
	answers, err := c.countBy(ctx, &models.Answer{}, "question_id", ids)
	if err != nil {
		return nil, err
	}

	return &QuestionPage{
		Questions: lo.Map(questions, func(q models.Question, _ int) QuestionSummary {
			return QuestionSummary{Question: q, Votes: votes[q.ID], AnswerCount: answers[q.ID]}
		}),
		Query:       query,
		Page:        page,
		PageSize:    pageSize,
		NumPages:    numPages,
		Total:       total,
		HasNext:     page < numPages,
		HasPrevious: page > 1,
	}, nil
}

// countBy counts rows of model grouped by column for the given ids.
func (c *Client) countBy(ctx context.Context, model any, column string, ids []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(ids))
	if len(ids) == 0 {
		return counts, nil
	}

	var rows []countRow
	if err := c.db.WithContext(ctx).Model(model).
		Select(column+" AS id, COUNT(*) AS count").
		Where(column+" IN ?", ids).
		Group(column).
		Scan(&rows).Error; err != nil {
		return nil, mapError(err)
	}
	for _, r := range rows {
		counts[r.ID] = r.Count
	}
	return counts, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func (c *Client) GetQuestion(ctx context.Context, id uint) (*models.Question, error) {
	var q models.Question
	if err := c.db.WithContext(ctx).Preload("User").First(&q, id).Error; err != nil {
		return nil, mapError(err)
	}
	return &q, nil
}

// GetQuestionDetail loads a question with its answers. viewerID 0 means an
// anonymous viewer, who has no answers and no votes.
func (c *Client) GetQuestionDetail(ctx context.Context, id, viewerID uint) (*QuestionDetail, error) {
	q, err := c.GetQuestion(ctx, id)
	if err != nil {
		return nil, err
	}

	var answers []models.Answer
	if err := c.db.WithContext(ctx).
		Preload("User").
		Where("question_id = ?", q.ID).
		Order("created_at asc, id asc").
		Find(&answers).Error; err != nil {
		return nil, mapError(err)
	}

	answerIDs := lo.Map(answers, func(a models.Answer, _ int) uint { return a.ID })
	answerVotes, err := c.countBy(ctx, &models.Vote{}, "answer_id", answerIDs)
	if err != nil {
		return nil, err
	}
	questionVotes, err := c.countBy(ctx, &models.Vote{}, "question_id", []uint{q.ID})
	if err != nil {
		return nil, err
	}

	detail := &QuestionDetail{
		Question:    *q,
		Votes:       questionVotes[q.ID],
		UserAnswers: []models.Answer{},
	}

	var viewerVotes []models.Vote
	if viewerID != 0 {
		if err := c.db.WithContext(ctx).
			Where("user_id = ? AND (question_id = ? OR answer_id IN ?)", viewerID, q.ID, append(answerIDs, 0)).
			Find(&viewerVotes).Error; err != nil {
			return nil, mapError(err)
		}
	}
	votedAnswers := make(map[uint]bool, len(viewerVotes))
	for _, v := range viewerVotes {
		switch {
		case v.QuestionID != nil && *v.QuestionID == q.ID:
			detail.Voted = true
		case v.AnswerID != nil:
			votedAnswers[*v.AnswerID] = true
		}
	}

	detail.Answers = lo.Map(answers, func(a models.Answer, _ int) AnswerView {
		return AnswerView{Answer: a, Votes: answerVotes[a.ID], Voted: votedAnswers[a.ID]}
	})
	if viewerID != 0 {
		detail.UserAnswers = lo.Filter(answers, func(a models.Answer, _ int) bool { return a.UserID == viewerID })
	}

	return detail, nil
}

func (c *Client) CreateQuestion(ctx context.Context, userID uint, in models.QuestionRequest) (*models.Question, error) {
	q := models.Question{
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		UserID:      userID,
	}
	if err := c.db.WithContext(ctx).Create(&q).Error; err != nil {
		log.Error("failed to create question", "error", err)
		return nil, mapError(err)
	}
	return c.GetQuestion(ctx, q.ID)
}

// GetOwnedQuestion returns the question if userID owns it.
func (c *Client) GetOwnedQuestion(ctx context.Context, id, userID uint) (*models.Question, error) {
	q, err := c.GetQuestion(ctx, id)
	if err != nil {
		return nil, err
	}
	if q.UserID != userID {
		return nil, ErrPermissionDenied
	}
	return q, nil
}

func (c *Client) UpdateQuestion(ctx context.Context, id, userID uint, in models.QuestionRequest) (*models.Question, error) {
	q, err := c.GetOwnedQuestion(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if err := c.db.WithContext(ctx).Model(q).Select("title", "description").Updates(models.Question{
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
	}).Error; err != nil {
		return nil, mapError(err)
	}
	return c.GetQuestion(ctx, q.ID)
}

// DeleteQuestion removes the question, its answers and every vote on either.
func (c *Client) DeleteQuestion(ctx context.Context, id, userID uint) error {
	q, err := c.GetOwnedQuestion(ctx, id, userID)
	if err != nil {
		return err
	}

	err = c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		answerIDs := tx.Model(&models.Answer{}).Select("id").Where("question_id = ?", q.ID)
		if err := tx.Where("question_id = ? OR answer_id IN (?)", q.ID, answerIDs).Delete(&models.Vote{}).Error; err != nil {
			return err
		}
		if err := tx.Where("question_id = ?", q.ID).Delete(&models.Answer{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Question{}, q.ID).Error
	})
	if err != nil {
		log.Error("failed to delete question", "id", q.ID, "error", err)
		return mapError(err)
	}
	return nil
}
