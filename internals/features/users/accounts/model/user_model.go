package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;column:id" json:"id"`
	UserName     string    `gorm:"size:50;not null;uniqueIndex:uq_users_user_name;column:user_name" json:"user_name"`
	Email        string    `gorm:"size:255;not null;uniqueIndex:uq_users_email;column:email" json:"email"`
	PasswordHash string    `gorm:"not null;column:password_hash" json:"-"`
	IsActive     bool      `gorm:"not null;default:true;column:is_active" json:"is_active"`
	CreatedAt    time.Time `gorm:"not null;autoCreateTime;column:created_at" json:"created_at"`
	LastEditedAt time.Time `gorm:"not null;autoUpdateTime;column:last_edited_at" json:"last_edited_at"`
}

func (UserModel) TableName() string { return "users" }

func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
