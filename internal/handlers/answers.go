package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/qanda/backend/internal/database"
	"github.com/emilythestrangee/qanda/backend/internal/middleware"
	"github.com/emilythestrangee/qanda/backend/internal/models"
)

type AnswerHandler struct {
	db database.DB
}

func NewAnswerHandler(db database.DB) *AnswerHandler {
	return &AnswerHandler{db: db}
}

func answerParams(c *gin.Context) (questionID, answerID uint, ok bool) {
	if questionID, ok = paramID(c, "id"); !ok {
		return 0, 0, false
	}
	if answerID, ok = paramID(c, "answer_id"); !ok {
		return 0, 0, false
	}
	return questionID, answerID, true
}

// NewAnswerForm renders the answer form for a question (PROTECTED)
func (h *AnswerHandler) NewAnswerForm(c *gin.Context) {
	questionID, ok := paramID(c, "id")
	if !ok {
		return
	}

	q, err := h.db.GetQuestion(c.Request.Context(), questionID)
	if err != nil {
		handleError(c, err)
		return
	}

	render(c, http.StatusOK, "answer_form.html", gin.H{"title": "Answer", "question": q}, gin.H{
		"question": q,
		"fields":   []string{"text"},
	})
}

// CreateAnswer posts an answer, one per user and question (PROTECTED)
func (h *AnswerHandler) CreateAnswer(c *gin.Context) {
	questionID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var input models.AnswerRequest
	if !bind(c, &input) {
		return
	}

	answer, err := h.db.CreateAnswer(c.Request.Context(), questionID, middleware.CurrentUserID(c), input)
	if err != nil {
		handleError(c, err)
		return
	}

	success(c, questionURL(answer.QuestionID), http.StatusCreated, answer)
}

// EditAnswerForm renders the answer form for its author (PROTECTED - requires ownership)
func (h *AnswerHandler) EditAnswerForm(c *gin.Context) {
	questionID, answerID, ok := answerParams(c)
	if !ok {
		return
	}

	answer, err := h.db.GetOwnedAnswer(c.Request.Context(), questionID, answerID, middleware.CurrentUserID(c))
	if err != nil {
		handleError(c, err)
		return
	}

	render(c, http.StatusOK, "answer_form.html", gin.H{
		"title":    "Edit answer",
		"question": answer.Question,
		"answer":   answer,
	}, answer)
}

// UpdateAnswer updates an answer (PROTECTED - requires ownership)
func (h *AnswerHandler) UpdateAnswer(c *gin.Context) {
	questionID, answerID, ok := answerParams(c)
	if !ok {
		return
	}

	var input models.AnswerRequest
	if !bind(c, &input) {
		return
	}

	answer, err := h.db.UpdateAnswer(c.Request.Context(), questionID, answerID, middleware.CurrentUserID(c), input)
	if err != nil {
		handleError(c, err)
		return
	}

	success(c, questionURL(answer.QuestionID), http.StatusOK, answer)
}

// DeleteAnswerConfirm renders the delete confirmation (PROTECTED - requires ownership)
func (h *AnswerHandler) DeleteAnswerConfirm(c *gin.Context) {
	questionID, answerID, ok := answerParams(c)
	if !ok {
		return
	}

	answer, err := h.db.GetOwnedAnswer(c.Request.Context(), questionID, answerID, middleware.CurrentUserID(c))
	if err != nil {
		handleError(c, err)
		return
	}

	render(c, http.StatusOK, "answer_confirm_delete.html", gin.H{
		"title":    "Delete answer",
		"question": answer.Question,
		"answer":   answer,
	}, answer)
}

// DeleteAnswer deletes an answer and its votes (PROTECTED - requires ownership)
func (h *AnswerHandler) DeleteAnswer(c *gin.Context) {
	questionID, answerID, ok := answerParams(c)
	if !ok {
		return
	}

	if err := h.db.DeleteAnswer(c.Request.Context(), questionID, answerID, middleware.CurrentUserID(c)); err != nil {
		handleError(c, err)
		return
	}

	success(c, questionURL(questionID), http.StatusOK, gin.H{"message": "Answer deleted successfully"})
}
