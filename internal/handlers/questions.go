package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/qanda/backend/internal/database"
	"github.com/emilythestrangee/qanda/backend/internal/middleware"
	"github.com/emilythestrangee/qanda/backend/internal/models"
)

type QuestionHandler struct {
	db       database.DB
	pageSize int
}

func NewQuestionHandler(db database.DB, pageSize int) *QuestionHandler {
	return &QuestionHandler{db: db, pageSize: pageSize}
}

func questionURL(id uint) string {
	return fmt.Sprintf("/questions/%d", id)
}

// Home renders the landing page.
func (h *QuestionHandler) Home(c *gin.Context) {
	render(c, http.StatusOK, "home.html", gin.H{}, gin.H{
		"name":      "qanda",
		"questions": "/questions",
	})
}

// GetQuestions returns one page of questions, newest first.
func (h *QuestionHandler) GetQuestions(c *gin.Context) {
	h.list(c, "")
}

// SearchQuestions filters questions by a case-insensitive title substring.
func (h *QuestionHandler) SearchQuestions(c *gin.Context) {
	h.list(c, c.Query("query"))
}

func (h *QuestionHandler) list(c *gin.Context, query string) {
	page := 1
	if raw := c.Query("page"); raw != "" {
		p, err := strconv.Atoi(raw)
		if err != nil {
			fail(c, http.StatusNotFound, "Invalid page")
			return
		}
		page = p
	}

	result, err := h.db.ListQuestions(c.Request.Context(), query, page, h.pageSize)
	if err != nil {
		handleError(c, err)
		return
	}

	render(c, http.StatusOK, "question_list.html", gin.H{
		"title": "Questions",
		"query": query,
		"page":  result,
	}, result)
}

// GetQuestion returns a question with its answers and the viewer's own answers.
func (h *QuestionHandler) GetQuestion(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	detail, err := h.db.GetQuestionDetail(c.Request.Context(), id, middleware.CurrentUserID(c))
	if err != nil {
		handleError(c, err)
		return
	}

	render(c, http.StatusOK, "question_detail.html", gin.H{
		"title":  detail.Question.Title,
		"detail": detail,
	}, detail)
}

// NewQuestionForm renders the empty question form (PROTECTED)
func (h *QuestionHandler) NewQuestionForm(c *gin.Context) {
	render(c, http.StatusOK, "question_form.html", gin.H{"title": "Ask a question"}, gin.H{
		"fields": []string{"title", "description"},
	})
}

// CreateQuestion creates a question owned by the requester (PROTECTED)
func (h *QuestionHandler) CreateQuestion(c *gin.Context) {
	var input models.QuestionRequest
	if !bind(c, &input) {
		return
	}

	q, err := h.db.CreateQuestion(c.Request.Context(), middleware.CurrentUserID(c), input)
	if err != nil {
		handleError(c, err)
		return
	}

	success(c, "/questions", http.StatusCreated, q)
}

// EditQuestionForm renders the question form for its owner (PROTECTED - requires ownership)
func (h *QuestionHandler) EditQuestionForm(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	q, err := h.db.GetOwnedQuestion(c.Request.Context(), id, middleware.CurrentUserID(c))
	if err != nil {
		handleError(c, err)
		return
	}

	render(c, http.StatusOK, "question_form.html", gin.H{"title": "Edit question", "question": q}, q)
}

// UpdateQuestion updates an existing question (PROTECTED - requires ownership)
func (h *QuestionHandler) UpdateQuestion(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var input models.QuestionRequest
	if !bind(c, &input) {
		return
	}

	q, err := h.db.UpdateQuestion(c.Request.Context(), id, middleware.CurrentUserID(c), input)
	if err != nil {
		handleError(c, err)
		return
	}

	success(c, questionURL(q.ID), http.StatusOK, q)
}

// DeleteQuestionConfirm renders the delete confirmation (PROTECTED - requires ownership)
func (h *QuestionHandler) DeleteQuestionConfirm(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	q, err := h.db.GetOwnedQuestion(c.Request.Context(), id, middleware.CurrentUserID(c))
	if err != nil {
		handleError(c, err)
		return
	}

	render(c, http.StatusOK, "question_confirm_delete.html", gin.H{"title": "Delete question", "question": q}, q)
}

// DeleteQuestion deletes a question with its answers and votes (PROTECTED - requires ownership)
func (h *QuestionHandler) DeleteQuestion(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.db.DeleteQuestion(c.Request.Context(), id, middleware.CurrentUserID(c)); err != nil {
		handleError(c, err)
		return
	}

	success(c, "/questions", http.StatusOK, gin.H{"message": "Question deleted successfully"})
}
