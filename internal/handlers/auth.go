package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/qanda/backend/internal/auth"
	"github.com/emilythestrangee/qanda/backend/internal/database"
	"github.com/emilythestrangee/qanda/backend/internal/middleware"
	"github.com/emilythestrangee/qanda/backend/internal/models"
)

type AuthHandler struct {
	db     database.DB
	tokens *auth.Manager
}

func NewAuthHandler(db database.DB, tokens *auth.Manager) *AuthHandler {
	return &AuthHandler{db: db, tokens: tokens}
}

// safeNext only allows local redirect targets.
func safeNext(next string) string {
	if strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") && !strings.HasPrefix(next, "/\\") {
		return next
	}
	return "/"
}

func (h *AuthHandler) RegisterPage(c *gin.Context) {
	render(c, http.StatusOK, "register.html", gin.H{"title": "Register"}, gin.H{
		"fields": []string{"username", "email", "first_name", "last_name", "password"},
	})
}

// Register handles user registration
func (h *AuthHandler) Register(c *gin.Context) {
	var input models.RegisterRequest
	if !bind(c, &input) {
		return
	}

	hashedPassword, err := h.tokens.HashPassword(input.Password)
	if err != nil {
		handleError(c, err)
		return
	}

	user := models.User{
		Username:  strings.TrimSpace(input.Username),
		Email:     strings.TrimSpace(input.Email),
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Password:  hashedPassword,
	}

	if err := h.db.CreateUser(c.Request.Context(), &user); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			render(c, http.StatusConflict, "register.html", gin.H{
				"title": "Register",
				"error": "Username or email already exists",
			}, gin.H{"error": "Username or email already exists"})
			return
		}
		handleError(c, err)
		return
	}

	h.issue(c, &user, http.StatusCreated, "User registered successfully", "/")
}

func (h *AuthHandler) LoginPage(c *gin.Context) {
	render(c, http.StatusOK, "login.html", gin.H{
		"title": "Log in",
		"next":  c.Query("next"),
	}, gin.H{"fields": []string{"username", "password"}})
}

// Login handles user login
func (h *AuthHandler) Login(c *gin.Context) {
	var input models.LoginRequest
	if !bind(c, &input) {
		return
	}

	user, err := h.authenticate(c, input)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			render(c, http.StatusUnauthorized, "login.html", gin.H{
				"title": "Log in",
				"next":  c.PostForm("next"),
				"error": "Invalid credentials",
			}, gin.H{"error": "Invalid credentials"})
			return
		}
		handleError(c, err)
		return
	}

	h.issue(c, user, http.StatusOK, "Login successful", safeNext(c.PostForm("next")))
}

// authenticate checks the password. Unknown accounts are reported as invalid
// credentials; a deactivated account with the right password is rejected
// with ErrInactiveUser.
func (h *AuthHandler) authenticate(c *gin.Context, input models.LoginRequest) (*models.User, error) {
	user, err := h.db.GetUserByUsername(c.Request.Context(), input.Username)
	if errors.Is(err, database.ErrNotFound) {
		return nil, auth.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := h.tokens.CheckPassword(user.Password, input.Password); err != nil {
		return nil, err
	}
	if !user.IsActive {
		log.Debug("login attempt for inactive user", "user", user.Username)
		return nil, database.ErrInactiveUser
	}
	return user, nil
}

// issue starts a browser session and returns a bearer token to API clients.
func (h *AuthHandler) issue(c *gin.Context, user *models.User, status int, message, next string) {
	if err := middleware.Login(c, user); err != nil {
		handleError(c, err)
		return
	}

	if middleware.WantsHTML(c) {
		c.Redirect(http.StatusSeeOther, next)
		return
	}

	token, err := h.tokens.IssueToken(user)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(status, models.AuthResponse{
		Token:   token,
		User:    *user,
		Message: message,
	})
}

// Logout ends the browser session.
func (h *AuthHandler) Logout(c *gin.Context) {
	middleware.ClearSession(c)
	success(c, "/", http.StatusOK, gin.H{"message": "Logged out"})
}

// GetMe returns the current authenticated user
func (h *AuthHandler) GetMe(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		fail(c, http.StatusUnauthorized, "Unauthorized")
		return
	}
	c.JSON(http.StatusOK, user)
}
