package database

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/emilythestrangee/qanda/backend/internal/models"
)

// UserActivity is a user's profile together with everything they posted.
type UserActivity struct {
	User      models.User       `json:"user"`
	Questions []models.Question `json:"questions"`
	Answers   []models.Answer   `json:"answers"`
}

func (c *Client) CreateUser(ctx context.Context, user *models.User) error {
	user.IsActive = true
	if err := c.db.WithContext(ctx).Create(user).Error; err != nil {
		err = mapError(err)
		if err != ErrDuplicate {
			log.Error("failed to create user", "error", err)
		}
		return err
	}
	return nil
}

func (c *Client) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := c.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, mapError(err)
	}
	return &user, nil
}

func (c *Client) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := c.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, mapError(err)
	}
	return &user, nil
}

// GetUserActivity loads the user with their questions and answers.
func (c *Client) GetUserActivity(ctx context.Context, username string) (*UserActivity, error) {
	user, err := c.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	activity := &UserActivity{
		User:      *user,
		Questions: []models.Question{},
		Answers:   []models.Answer{},
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return c.db.WithContext(gctx).
			Where("user_id = ?", user.ID).
			Order("created_at desc, id desc").
			Find(&activity.Questions).Error
	})
	g.Go(func() error {
		return c.db.WithContext(gctx).
			Preload("Question").
			Where("user_id = ?", user.ID).
			Order("created_at desc, id desc").
			Find(&activity.Answers).Error
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load activity for %s: %w", username, mapError(err))
	}

	return activity, nil
}

// GetSelf returns the user named username if it is the acting user.
func (c *Client) GetSelf(ctx context.Context, actorID uint, username string) (*models.User, error) {
	user, err := c.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user.ID != actorID {
		return nil, ErrPermissionDenied
	}
	return user, nil
}

func (c *Client) UpdateUser(ctx context.Context, actorID uint, username string, in models.UpdateUserRequest) (*models.User, error) {
	user, err := c.GetSelf(ctx, actorID, username)
	if err != nil {
		return nil, err
	}

	user.Email = in.Email
	user.FirstName = in.FirstName
	user.LastName = in.LastName

	if err := c.db.WithContext(ctx).Model(user).Select("email", "first_name", "last_name").Updates(user).Error; err != nil {
		return nil, mapError(err)
	}
	return user, nil
}

// DeactivateUser clears the active flag instead of removing the row.
func (c *Client) DeactivateUser(ctx context.Context, actorID uint, username string) (*models.User, error) {
	user, err := c.GetSelf(ctx, actorID, username)
	if err != nil {
		return nil, err
	}

	if err := c.db.WithContext(ctx).Model(user).Update("is_active", false).Error; err != nil {
		log.Error("failed to deactivate user", "user", username, "error", err)
		return nil, mapError(err)
	}
	user.IsActive = false
	return user, nil
}
