package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type RoleModel struct {
	RoleID        uuid.UUID `gorm:"type:uuid;primaryKey;column:role_id" json:"role_id"`
	RoleName      string    `gorm:"size:32;not null;uniqueIndex:uq_roles_name;column:role_name" json:"role_name"`
	RoleCreatedAt time.Time `gorm:"not null;autoCreateTime;column:role_created_at" json:"role_created_at"`
}

func (RoleModel) TableName() string { return "roles" }

func (r *RoleModel) BeforeCreate(tx *gorm.DB) error {
	if r.RoleID == uuid.Nil {
		r.RoleID = uuid.New()
	}
	return nil
}

// UserRoleModel carries assignment metadata, not just the link.
type UserRoleModel struct {
	UserRoleUserID     uuid.UUID      `gorm:"type:uuid;primaryKey;column:user_role_user_id" json:"user_role_user_id"`
	UserRoleRoleID     uuid.UUID      `gorm:"type:uuid;primaryKey;index:idx_user_roles_role;column:user_role_role_id" json:"user_role_role_id"`
	UserRoleAssignedAt time.Time      `gorm:"not null;autoCreateTime;column:user_role_assigned_at" json:"user_role_assigned_at"`
	UserRoleAssignedBy *uuid.UUID     `gorm:"type:uuid;column:user_role_assigned_by" json:"user_role_assigned_by,omitempty"`
	UserRoleMetadata   datatypes.JSON `gorm:"column:user_role_metadata" json:"user_role_metadata,omitempty"`
}

func (UserRoleModel) TableName() string { return "user_roles" }
