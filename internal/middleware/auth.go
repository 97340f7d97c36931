package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/qanda/backend/internal/auth"
	"github.com/emilythestrangee/qanda/backend/internal/database"
	"github.com/emilythestrangee/qanda/backend/internal/models"
)

const (
	userKey       = "user"
	userIDKey     = "user_id"
	SessionUserID = "user_id"
)

// Authenticate resolves the acting user from a bearer token or the session
// cookie. Anonymous requests pass through; deactivated accounts are treated
// as anonymous and their session is cleared.
func Authenticate(db database.DB, tokens *auth.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, fromSession := resolveUserID(c, tokens)
		if userID == 0 {
			c.Next()
			return
		}

		user, err := db.GetUserByID(c.Request.Context(), userID)
		switch {
		case err == nil && user.IsActive:
			c.Set(userKey, user)
			c.Set(userIDKey, user.ID)
		case err == nil || err == database.ErrNotFound:
			if fromSession {
				ClearSession(c)
			}
		default:
			log.Error("failed to load authenticated user", "user_id", userID, "error", err)
		}
		c.Next()
	}
}

func resolveUserID(c *gin.Context, tokens *auth.Manager) (uint, bool) {
	if header := c.GetHeader("Authorization"); header != "" {
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			return 0, false
		}
		claims, err := tokens.ParseToken(strings.TrimSpace(raw))
		if err != nil {
			return 0, false
		}
		return claims.UserID, false
	}

	session := sessions.Default(c)
	if id, ok := session.Get(SessionUserID).(uint); ok {
		return id, true
	}
	return 0, false
}

// RequireAuth rejects anonymous requests: JSON clients get 401, browsers
// are sent to the login page.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); ok {
			c.Next()
			return
		}
		if WantsHTML(c) {
			c.Redirect(http.StatusSeeOther, "/login?next="+url.QueryEscape(c.Request.URL.RequestURI()))
			c.Abort()
			return
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
	}
}

// CurrentUser returns the authenticated user, if any.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(userKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok && user != nil
}

// CurrentUserID returns the authenticated user's id, or 0 when anonymous.
func CurrentUserID(c *gin.Context) uint {
	if user, ok := CurrentUser(c); ok {
		return user.ID
	}
	return 0
}

// Login stores the user in the browser session.
func Login(c *gin.Context, user *models.User) error {
	session := sessions.Default(c)
	session.Set(SessionUserID, user.ID)
	return session.Save()
}

// ClearSession drops all session values.
func ClearSession(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		log.Error("failed to clear session", "error", err)
	}
}

// WantsHTML reports whether the client prefers an HTML response.
func WantsHTML(c *gin.Context) bool {
	return c.NegotiateFormat(gin.MIMEJSON, gin.MIMEHTML) == gin.MIMEHTML
}
