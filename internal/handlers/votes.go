package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/qanda/backend/internal/database"
	"github.com/emilythestrangee/qanda/backend/internal/middleware"
	"github.com/emilythestrangee/qanda/backend/internal/models"
)

type VoteHandler struct {
	db database.DB
}

func NewVoteHandler(db database.DB) *VoteHandler {
	return &VoteHandler{db: db}
}

// Vote toggles the user's vote on a question or an answer (PROTECTED)
// Answer votes return to the question page, question votes to the list.
func (h *VoteHandler) Vote(c *gin.Context) {
	var input models.VoteRequest
	if !bind(c, &input) {
		return
	}

	result, err := h.db.ToggleVote(c.Request.Context(), middleware.CurrentUserID(c), input)
	if err != nil {
		handleError(c, err)
		return
	}

	location := "/questions"
	if result.Target == models.TargetAnswer {
		location = questionURL(result.QuestionID)
	}
	success(c, location, http.StatusOK, result)
}
