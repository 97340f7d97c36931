package models

import "time"

type Question struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:200;not null;index" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	User        User      `gorm:"foreignKey:UserID" json:"user"`
	Answers     []Answer  `gorm:"foreignKey:QuestionID" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type QuestionRequest struct {
	Title       string `json:"title" form:"title" binding:"required,notblank,max=200"`
	Description string `json:"description" form:"description"`
}
