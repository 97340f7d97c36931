package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/qanda/backend/internal/auth"
	"github.com/emilythestrangee/qanda/backend/internal/config"
	"github.com/emilythestrangee/qanda/backend/internal/database"
	"github.com/emilythestrangee/qanda/backend/internal/middleware"
)

// Handler combines all handler types
type Handler struct {
	Auth     *AuthHandler
	Question *QuestionHandler
	Answer   *AnswerHandler
	Vote     *VoteHandler
	User     *UserHandler
}

// NewHandler creates a unified handler with all sub-handlers
func NewHandler(db database.DB, tokens *auth.Manager, cfg *config.Config) *Handler {
	registerValidators()
	return &Handler{
		Auth:     NewAuthHandler(db, tokens),
		Question: NewQuestionHandler(db, cfg.GetPageSize()),
		Answer:   NewAnswerHandler(db),
		Vote:     NewVoteHandler(db),
		User:     NewUserHandler(db),
	}
}

// render writes page with data for browsers and payload as JSON otherwise.
func render(c *gin.Context, status int, page string, data gin.H, payload any) {
	if middleware.WantsHTML(c) {
		if data == nil {
			data = gin.H{}
		}
		if user, ok := middleware.CurrentUser(c); ok {
			data["current_user"] = user
		}
		c.HTML(status, page, data)
		return
	}
	c.JSON(status, payload)
}

// success redirects browsers to location and answers JSON clients with payload.
func success(c *gin.Context, location string, status int, payload any) {
	if middleware.WantsHTML(c) {
		c.Redirect(http.StatusSeeOther, location)
		return
	}
	c.JSON(status, payload)
}

// fail writes an error response in the client's preferred format.
func fail(c *gin.Context, status int, message string) {
	render(c, status, "error.html", gin.H{
		"title":  http.StatusText(status),
		"status": status,
		"error":  message,
	}, gin.H{"error": message})
}

// handleError maps storage errors to HTTP responses.
func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, database.ErrNotFound):
		fail(c, http.StatusNotFound, "Not found")
	case errors.Is(err, database.ErrPermissionDenied), errors.Is(err, database.ErrAlreadyAnswered):
		fail(c, http.StatusForbidden, "Permission denied")
	case errors.Is(err, database.ErrDuplicate):
		fail(c, http.StatusConflict, "Already exists")
	case errors.Is(err, database.ErrInvalidTarget):
		fail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, database.ErrInactiveUser):
		fail(c, http.StatusUnauthorized, "Account is inactive")
	default:
		_ = c.Error(err)
		log.Error("request failed", "path", c.Request.URL.Path, "error", err)
		fail(c, http.StatusInternalServerError, "Internal server error")
	}
}

// bind decodes a form or JSON body into obj, writing 400 on failure.
func bind(c *gin.Context, obj any) bool {
	if err := c.ShouldBind(obj); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// paramID parses a positive numeric path parameter. Anything else is a 404,
// the same as an unmatched route.
func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		fail(c, http.StatusNotFound, "Not found")
		return 0, false
	}
	return uint(id), true
}
