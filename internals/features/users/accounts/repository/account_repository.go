package repository

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "schedules_backend/internals/features/users/accounts/model"
	helper "schedules_backend/internals/helpers"
)

/* ====================== USER ====================== */

func FindUserByEmailOrUsername(db *gorm.DB, identifier string) (*model.UserModel, error) {
	var user model.UserModel
	if err := db.Where("email = ? OR user_name = ?", identifier, identifier).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func FindUserByID(db *gorm.DB, userID uuid.UUID) (*model.UserModel, error) {
	var user model.UserModel
	if err := db.Where("id = ?", userID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func IsUsernameOrEmailTaken(db *gorm.DB, userName, email string) (userTaken, emailTaken bool, err error) {
	var rows []model.UserModel
	if err = db.Select("user_name", "email").
		Where("user_name = ? OR email = ?", userName, email).
		Find(&rows).Error; err != nil {
		return false, false, err
	}
	for _, r := range rows {
		userTaken = userTaken || r.UserName == userName
		emailTaken = emailTaken || r.Email == email
	}
	return userTaken, emailTaken, nil
}

func UpdateUserPassword(db *gorm.DB, userID uuid.UUID, hash string) error {
	return db.Model(&model.UserModel{}).Where("id = ?", userID).Update("password_hash", hash).Error
}

/* ====================== ROLES ====================== */

func FindRoleByName(db *gorm.DB, name string) (*model.RoleModel, error) {
	var role model.RoleModel
	if err := db.Where("role_name = ?", name).First(&role).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

// RoleNamesForUser returns the user's role names, sorted.
func RoleNamesForUser(db *gorm.DB, userID uuid.UUID) ([]string, error) {
	names := []string{}
	err := db.Table("user_roles").
		Select("roles.role_name").
		Joins("JOIN roles ON roles.role_id = user_roles.user_role_role_id").
		Where("user_roles.user_role_user_id = ?", userID).
		Order("roles.role_name").
		Pluck("roles.role_name", &names).Error
	return names, err
}

/* ====================== BLACKLIST TOKEN ====================== */

func BlacklistToken(db *gorm.DB, raw string, expiresAt time.Time) error {
	return db.Save(&model.TokenBlacklistModel{
		TokenHash: helper.TokenHash(raw),
		ExpiredAt: expiresAt.UTC(),
	}).Error
}

func CleanupExpiredBlacklist(db *gorm.DB) (int64, error) {
	res := db.Where("expired_at <= ?", time.Now().UTC()).Delete(&model.TokenBlacklistModel{})
	return res.RowsAffected, res.Error
}
