package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/qanda/backend/internal/database"
	"github.com/emilythestrangee/qanda/backend/internal/middleware"
	"github.com/emilythestrangee/qanda/backend/internal/models"
	"github.com/emilythestrangee/qanda/backend/internal/web"
)

type UserHandler struct {
	db database.DB
}

func NewUserHandler(db database.DB) *UserHandler {
	return &UserHandler{db: db}
}

// GetUserProfile returns a user's profile with their questions and answers
func (h *UserHandler) GetUserProfile(c *gin.Context) {
	activity, err := h.db.GetUserActivity(c.Request.Context(), c.Param("username"))
	if err != nil {
		handleError(c, err)
		return
	}

	render(c, http.StatusOK, "user_detail.html", gin.H{
		"title":    activity.User.Username,
		"activity": activity,
	}, activity)
}

// EditUserForm renders the profile form (PROTECTED - self only)
func (h *UserHandler) EditUserForm(c *gin.Context) {
	user, err := h.db.GetSelf(c.Request.Context(), middleware.CurrentUserID(c), c.Param("username"))
	if err != nil {
		handleError(c, err)
		return
	}

	render(c, http.StatusOK, "user_form.html", gin.H{"title": "Edit profile", "user": user}, user)
}

// UpdateUserProfile updates email and names (PROTECTED - self only)
func (h *UserHandler) UpdateUserProfile(c *gin.Context) {
	var input models.UpdateUserRequest
	if !bind(c, &input) {
		return
	}

	user, err := h.db.UpdateUser(c.Request.Context(), middleware.CurrentUserID(c), c.Param("username"), input)
	if err != nil {
		handleError(c, err)
		return
	}

	success(c, web.UserPath(user.Username), http.StatusOK, user)
}

// DeleteUserConfirm renders the deactivation confirmation (PROTECTED - self only)
func (h *UserHandler) DeleteUserConfirm(c *gin.Context) {
	user, err := h.db.GetSelf(c.Request.Context(), middleware.CurrentUserID(c), c.Param("username"))
	if err != nil {
		handleError(c, err)
		return
	}

	render(c, http.StatusOK, "user_confirm_delete.html", gin.H{"title": "Deactivate account", "user": user}, user)
}

// DeleteUser deactivates the account and ends the session (PROTECTED - self only)
func (h *UserHandler) DeleteUser(c *gin.Context) {
	user, err := h.db.DeactivateUser(c.Request.Context(), middleware.CurrentUserID(c), c.Param("username"))
	if err != nil {
		handleError(c, err)
		return
	}

	middleware.ClearSession(c)
	success(c, "/", http.StatusOK, gin.H{
		"message": "Account deactivated",
		"user":    user,
	})
}
