// internals/middlewares/auth/claims_utils.go
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	accountModel "schedules_backend/internals/features/users/accounts/model"
	helper "schedules_backend/internals/helpers"
)

/* ======== Extractors ======== */

func extractBearerToken(c *fiber.Ctx) (string, error) {
	auth := strings.TrimSpace(c.Get("Authorization"))
	if auth == "" {
		if cookieTok := c.Cookies("access_token"); cookieTok != "" {
			auth = "Bearer " + cookieTok
		}
	}
	if auth == "" {
		return "", fmt.Errorf("unauthorized - no token provided")
	}

	// tolerate repeated spaces and any case of "bearer"
	fields := strings.Fields(auth)
	if len(fields) < 2 || !strings.EqualFold(fields[0], "Bearer") {
		return "", fmt.Errorf("unauthorized - invalid token format")
	}
	tok := strings.Trim(strings.TrimSpace(fields[1]), "\"'")
	if tok == "" {
		return "", fmt.Errorf("unauthorized - empty token")
	}
	return tok, nil
}

func extractUserID(claims *helper.AccessClaims) (uuid.UUID, error) {
	raw := claims.UserID
	if raw == "" {
		raw = claims.Subject
	}
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, fmt.Errorf("user_id missing or invalid")
	}
	return id, nil
}

/* ======== DB checks ======== */

var errUserInactive = errors.New("user is inactive")

func ensureUserActive(db *gorm.DB, userID uuid.UUID) error {
	var u accountModel.UserModel
	if err := db.Select("id", "is_active").Where("id = ?", userID).First(&u).Error; err != nil {
		return err
	}
	if !u.IsActive {
		return errUserInactive
	}
	return nil
}

func isBlacklisted(db *gorm.DB, raw string) (bool, error) {
	var n int64
	err := db.Model(&accountModel.TokenBlacklistModel{}).
		Where("token_hash = ? AND expired_at > ?", helper.TokenHash(raw), time.Now().UTC()).
		Count(&n).Error
	return n > 0, err
}

/* ======== Locals ======== */

func storeClaimsToLocals(c *fiber.Ctx, userID uuid.UUID, claims *helper.AccessClaims) {
	c.Locals(helper.LocUserID, userID.String())
	c.Locals(helper.LocUserName, claims.UserName)

	roles := make([]string, 0, len(claims.Roles))
	for _, r := range claims.Roles {
		if r = strings.ToLower(strings.TrimSpace(r)); r != "" {
			roles = append(roles, r)
		}
	}
	c.Locals(helper.LocRoles, roles)
}
