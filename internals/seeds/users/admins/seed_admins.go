package admins

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"

	"schedules_backend/internals/constants"
	"schedules_backend/internals/features/users/accounts/service"
	"schedules_backend/internals/helpers/apperr"
)

type AdminSeed struct {
	UserName string   `json:"user_name"`
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Roles    []string `json:"roles"`
}

// SeedAdminsFromJSON registers each account and grants its roles. Existing
// accounts (same user name or email) are skipped.
func SeedAdminsFromJSON(ctx context.Context, accounts *service.AccountService, filePath string) error {
	log.Println("[SEED] admins:", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("read %s: %w", filePath, err)
	}
	var inputs []AdminSeed
	if err := json.Unmarshal(file, &inputs); err != nil {
		return fmt.Errorf("decode %s: %w", filePath, err)
	}

	if err := accounts.SeedRoles(ctx); err != nil {
		return err
	}

	for _, data := range inputs {
		u, err := accounts.Register(ctx, service.RegisterInput{
			UserName: data.UserName,
			Email:    data.Email,
			Password: data.Password,
		})
		var ve *apperr.ValidationError
		if errors.As(err, &ve) && (hasTaken(ve, "user_name") || hasTaken(ve, "email")) {
			log.Printf("[SEED] user '%s' exists, skipped", data.UserName)
			continue
		}
		if err != nil {
			return fmt.Errorf("seed user %s: %w", data.UserName, err)
		}

		roles := data.Roles
		if len(roles) == 0 {
			roles = []string{constants.RoleAdmin}
		}
		for _, role := range roles {
			if _, err := accounts.AssignRole(ctx, u.ID, role, nil, []byte(`{"source":"seed"}`)); err != nil {
				return fmt.Errorf("seed role %s for %s: %w", role, data.UserName, err)
			}
		}
		log.Printf("[SEED] user '%s' created with roles %v", data.UserName, roles)
	}
	return nil
}

func hasTaken(ve *apperr.ValidationError, field string) bool {
	for _, msg := range ve.Fields[field] {
		if msg == "already taken" || msg == "already registered" {
			return true
		}
	}
	return false
}
