package dto

import (
	"encoding/json"

	"schedules_backend/internals/features/users/accounts/service"
)

type RegisterRequest struct {
	UserName string `json:"user_name" validate:"required,min=3,max=50"`
	Email    string `json:"email"     validate:"required,email,max=255"`
	Password string `json:"password"  validate:"required,min=8,max=72"`
}

func (r RegisterRequest) ToInput() service.RegisterInput {
	return service.RegisterInput{UserName: r.UserName, Email: r.Email, Password: r.Password}
}

type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password"   validate:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=8,max=72"`
}

type AssignRoleRequest struct {
	RoleName string          `json:"role_name"          validate:"required,max=32"`
	Metadata json.RawMessage `json:"metadata,omitempty"`
}

type CreateRoleRequest struct {
	RoleName string `json:"role_name" validate:"required,max=32"`
}

type SetActiveRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}
