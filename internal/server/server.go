package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"github.com/emilythestrangee/qanda/backend/internal/auth"
	"github.com/emilythestrangee/qanda/backend/internal/config"
	"github.com/emilythestrangee/qanda/backend/internal/database"
	"github.com/emilythestrangee/qanda/backend/internal/handlers"
	"github.com/emilythestrangee/qanda/backend/internal/middleware"
	"github.com/emilythestrangee/qanda/backend/internal/web"
)

const sessionName = "qanda_session"

type Server struct {
	cfg     *config.Config
	db      database.DB
	tokens  *auth.Manager
	handler *handlers.Handler
}

// New wires the handlers for cfg on top of db.
func New(cfg *config.Config, db database.DB) *Server {
	tokens := auth.NewManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, cfg.Auth.BcryptCost)
	return &Server{
		cfg:     cfg,
		db:      db,
		tokens:  tokens,
		handler: handlers.NewHandler(db, tokens, cfg),
	}
}

// HTTPServer creates the configured http.Server.
func (s *Server) HTTPServer() (*http.Server, error) {
	router, err := s.RegisterRoutes()
	if err != nil {
		return nil, err
	}

	return &http.Server{
		Addr:              s.cfg.Listen,
		Handler:           router,
		IdleTimeout:       time.Minute,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
	}, nil
}

// RegisterRoutes sets up all application routes
func (s *Server) RegisterRoutes() (*gin.Engine, error) {
	r := gin.New()
	r.Use(middleware.RequestLogger(), gin.Recovery())

	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}
	r.SetHTMLTemplate(tmpl)

	r.Use(cors.New(cors.Config{
		AllowOrigins:     s.cfg.CORS.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-Requested-With", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: !lo.Contains(s.cfg.CORS.AllowOrigins, "*"),
		MaxAge:           12 * time.Hour,
	}))
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	store := cookie.NewStore([]byte(s.cfg.Auth.SessionKey))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int(s.cfg.Auth.SessionMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   s.cfg.Auth.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(sessionName, store))
	r.Use(middleware.Authenticate(s.db, s.tokens))

	r.GET("/health", func(c *gin.Context) {
		stats := s.db.Health(c.Request.Context())
		status := http.StatusOK
		if stats["status"] != "up" {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, stats)
	})

	h := s.handler

	// Public routes
	r.GET("/", h.Question.Home)
	r.GET("/register", h.Auth.RegisterPage)
	r.POST("/register", h.Auth.Register)
	r.GET("/login", h.Auth.LoginPage)
	r.POST("/login", h.Auth.Login)
	r.POST("/logout", h.Auth.Logout)

	r.GET("/questions", h.Question.GetQuestions)
	r.GET("/questions/search", h.Question.SearchQuestions)
	r.GET("/questions/:id", h.Question.GetQuestion)
	r.GET("/users/:username", h.User.GetUserProfile)

	// Protected routes (authentication required)
	protected := r.Group("")
	protected.Use(middleware.RequireAuth())
	{
		protected.GET("/me", h.Auth.GetMe)

		// Question routes; POST variants serve HTML forms
		protected.GET("/questions/new", h.Question.NewQuestionForm)
		protected.POST("/questions", h.Question.CreateQuestion)
		protected.GET("/questions/:id/edit", h.Question.EditQuestionForm)
		protected.PUT("/questions/:id", h.Question.UpdateQuestion)
		protected.POST("/questions/:id/edit", h.Question.UpdateQuestion)
		protected.GET("/questions/:id/delete", h.Question.DeleteQuestionConfirm)
		protected.DELETE("/questions/:id", h.Question.DeleteQuestion)
		protected.POST("/questions/:id/delete", h.Question.DeleteQuestion)

		// Answer routes
		protected.GET("/questions/:id/answers/new", h.Answer.NewAnswerForm)
		protected.POST("/questions/:id/answers", h.Answer.CreateAnswer)
		protected.GET("/questions/:id/answers/:answer_id/edit", h.Answer.EditAnswerForm)
		protected.PUT("/questions/:id/answers/:answer_id", h.Answer.UpdateAnswer)
		protected.POST("/questions/:id/answers/:answer_id/edit", h.Answer.UpdateAnswer)
		protected.GET("/questions/:id/answers/:answer_id/delete", h.Answer.DeleteAnswerConfirm)
		protected.DELETE("/questions/:id/answers/:answer_id", h.Answer.DeleteAnswer)
		protected.POST("/questions/:id/answers/:answer_id/delete", h.Answer.DeleteAnswer)

		protected.POST("/vote", h.Vote.Vote)

		// User routes
		protected.GET("/users/:username/edit", h.User.EditUserForm)
		protected.PUT("/users/:username", h.User.UpdateUserProfile)
		protected.POST("/users/:username/edit", h.User.UpdateUserProfile)
		protected.GET("/users/:username/delete", h.User.DeleteUserConfirm)
		protected.DELETE("/users/:username", h.User.DeleteUser)
		protected.POST("/users/:username/delete", h.User.DeleteUser)
	}

	return r, nil
}
