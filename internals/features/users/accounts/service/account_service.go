package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"schedules_backend/internals/constants"
	"schedules_backend/internals/databases/catalog"
	"schedules_backend/internals/databases/schema"
	"schedules_backend/internals/databases/store"
	model "schedules_backend/internals/features/users/accounts/model"
	repo "schedules_backend/internals/features/users/accounts/repository"
	helper "schedules_backend/internals/helpers"
	"schedules_backend/internals/helpers/apperr"
)

var (
	ErrInvalidCredentials = errors.New("invalid username/email or password")
	ErrUserInactive       = errors.New("account is deactivated")
)

type AccountService struct {
	DB        *gorm.DB
	Registry  *schema.Registry
	JWTSecret string
	TokenTTL  time.Duration
}

func NewAccountService(db *gorm.DB, reg *schema.Registry, secret string, ttl time.Duration) *AccountService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &AccountService{DB: db, Registry: reg, JWTSecret: secret, TokenTTL: ttl}
}

// User is what the API returns for an account: the row plus its role names.
type User struct {
	model.UserModel
	Roles []string `json:"roles"`
}

type RegisterInput struct {
	UserName string
	Email    string
	Password string
}

type LoginResult struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	User        User      `json:"user"`
}

/* ============================================
   Roles
============================================ */

// SeedRoles makes sure every built-in role exists. Safe to run on every start.
func (s *AccountService) SeedRoles(ctx context.Context) error {
	for _, name := range constants.AllRoles {
		role := model.RoleModel{RoleName: name}
		res := s.DB.WithContext(ctx).Where("role_name = ?", name).FirstOrCreate(&role)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			log.Printf("[INFO] role seeded: %s", name)
		}
	}
	return nil
}

func (s *AccountService) ListRoles(ctx context.Context) ([]model.RoleModel, error) {
	var out []model.RoleModel
	err := s.DB.WithContext(ctx).Order("role_name").Find(&out).Error
	return out, err
}

func (s *AccountService) CreateRole(ctx context.Context, name string) (*model.RoleModel, error) {
	name = strings.ToLower(helper.NormalizeText(name))
	if name == "" || len(name) > 32 {
		return nil, apperr.Validation(catalog.EntityRole, "role_name", "required, max=32")
	}
	m := &model.RoleModel{RoleName: name}
	if err := store.Create(ctx, s.DB, catalog.EntityRole, m); err != nil {
		return nil, err
	}
	return m, nil
}

// DeleteRole is refused while users hold the role.
func (s *AccountService) DeleteRole(ctx context.Context, id uuid.UUID) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.Registry.DeleteByID(ctx, tx, catalog.EntityRole, "roles", "role_id", id)
	})
}

// AssignRole grants roleName to userID. Assigning a held role again only refreshes its metadata.
func (s *AccountService) AssignRole(ctx context.Context, userID uuid.UUID, roleName string, assignedBy *uuid.UUID, metadata []byte) (*model.UserRoleModel, error) {
	roleName = strings.ToLower(strings.TrimSpace(roleName))
	var link model.UserRoleModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := store.MustExist(ctx, tx, catalog.EntityUser, "users", "id", userID); err != nil {
			return err
		}
		role, err := repo.FindRoleByName(tx.WithContext(ctx), roleName)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.Validation(catalog.EntityUserRole, "role_name", "unknown role")
			}
			return err
		}
		link = model.UserRoleModel{
			UserRoleUserID:     userID,
			UserRoleRoleID:     role.RoleID,
			UserRoleAssignedAt: time.Now(),
			UserRoleAssignedBy: assignedBy,
			UserRoleMetadata:   metadata,
		}
		return tx.WithContext(ctx).Save(&link).Error
	})
	if err != nil {
		return nil, err
	}
	log.Printf("[UserRole] assigned user=%s role=%s", userID, roleName)
	return &link, nil
}

func (s *AccountService) RevokeRole(ctx context.Context, userID, roleID uuid.UUID) error {
	res := s.DB.WithContext(ctx).
		Where("user_role_user_id = ? AND user_role_role_id = ?", userID, roleID).
		Delete(&model.UserRoleModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound(catalog.EntityUserRole, roleID)
	}
	log.Printf("[UserRole] revoked user=%s role=%s", userID, roleID)
	return nil
}

func (s *AccountService) RolesForUser(ctx context.Context, userID uuid.UUID) ([]string, error) {
	if err := store.MustExist(ctx, s.DB, catalog.EntityUser, "users", "id", userID); err != nil {
		return nil, err
	}
	return repo.RoleNamesForUser(s.DB.WithContext(ctx), userID)
}

/* ============================================
   Users
============================================ */

func validateRegister(in RegisterInput) error {
	verr := apperr.NewValidation(catalog.EntityUser)
	if n := len(in.UserName); n < 3 || n > 50 {
		verr.Add("user_name", "length 3..50")
	}
	if in.Email == "" {
		verr.Add("email", "required")
	}
	if len(in.Password) < 8 {
		verr.Add("password", "min=8")
	}
	return verr.OrNil()
}

// Register creates an active user holding the student role.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (*User, error) {
	in.UserName = strings.TrimSpace(in.UserName)
	if e := helper.NormalizeEmail(&in.Email); e != nil {
		in.Email = *e
	} else {
		in.Email = ""
	}
	if err := validateRegister(in); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &model.UserModel{UserName: in.UserName, Email: in.Email, PasswordHash: string(hash), IsActive: true}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		userTaken, emailTaken, err := repo.IsUsernameOrEmailTaken(tx.WithContext(ctx), in.UserName, in.Email)
		if err != nil {
			return err
		}
		if userTaken || emailTaken {
			verr := apperr.NewValidation(catalog.EntityUser)
			if userTaken {
				verr.Add("user_name", "already taken")
			}
			if emailTaken {
				verr.Add("email", "already registered")
			}
			return verr
		}
		if err := store.Create(ctx, tx, catalog.EntityUser, u); err != nil {
			return err
		}
		role, err := repo.FindRoleByName(tx.WithContext(ctx), constants.RoleStudent)
		if err != nil {
			return err
		}
		return tx.WithContext(ctx).Create(&model.UserRoleModel{UserRoleUserID: u.ID, UserRoleRoleID: role.RoleID}).Error
	})
	if err != nil {
		return nil, err
	}
	log.Printf("[Account] registered user=%s name=%s", u.ID, u.UserName)
	return &User{UserModel: *u, Roles: []string{constants.RoleStudent}}, nil
}

// Login accepts either the user name or the email as identifier.
func (s *AccountService) Login(ctx context.Context, identifier, password string) (*LoginResult, error) {
	identifier = strings.TrimSpace(identifier)
	if strings.Contains(identifier, "@") {
		identifier = strings.ToLower(identifier)
	}
	u, err := repo.FindUserByEmailOrUsername(s.DB.WithContext(ctx), identifier)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	if !u.IsActive {
		return nil, ErrUserInactive
	}

	roles, err := repo.RoleNamesForUser(s.DB.WithContext(ctx), u.ID)
	if err != nil {
		return nil, err
	}
	token, exp, err := helper.IssueAccessToken(s.JWTSecret, u.ID, u.UserName, roles, s.TokenTTL)
	if err != nil {
		return nil, err
	}
	return &LoginResult{AccessToken: token, ExpiresAt: exp, User: User{UserModel: *u, Roles: roles}}, nil
}

// Logout blacklists the token until it would have expired anyway.
func (s *AccountService) Logout(ctx context.Context, rawToken string) error {
	claims, err := helper.ParseAccessToken(s.JWTSecret, rawToken)
	if err != nil {
		return ErrInvalidCredentials
	}
	exp := time.Now().Add(s.TokenTTL)
	if claims.ExpiresAt != nil {
		exp = claims.ExpiresAt.Time
	}
	return repo.BlacklistToken(s.DB.WithContext(ctx), rawToken, exp)
}

func (s *AccountService) ChangePassword(ctx context.Context, userID uuid.UUID, current, next string) error {
	u, err := repo.FindUserByID(s.DB.WithContext(ctx), userID)
	if err != nil {
		return apperr.FromDB(catalog.EntityUser, userID, err)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(current)) != nil {
		return ErrInvalidCredentials
	}
	if len(next) < 8 {
		return apperr.Validation(catalog.EntityUser, "new_password", "min=8")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return repo.UpdateUserPassword(s.DB.WithContext(ctx), userID, string(hash))
}

func (s *AccountService) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	u, err := repo.FindUserByID(s.DB.WithContext(ctx), id)
	if err != nil {
		return nil, apperr.FromDB(catalog.EntityUser, id, err)
	}
	roles, err := repo.RoleNamesForUser(s.DB.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	return &User{UserModel: *u, Roles: roles}, nil
}

func (s *AccountService) ListUsers(ctx context.Context, offset, limit int) ([]model.UserModel, int64, error) {
	var out []model.UserModel
	total, err := store.Page(ctx, s.DB.WithContext(ctx).Model(&model.UserModel{}), offset, limit, "user_name ASC", &out)
	return out, total, err
}

func (s *AccountService) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	res := s.DB.WithContext(ctx).Model(&model.UserModel{}).Where("id = ?", id).Update("is_active", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound(catalog.EntityUser, id)
	}
	return nil
}

// DeleteUser removes the account and its role assignments.
func (s *AccountService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.Registry.DeleteByID(ctx, tx, catalog.EntityUser, "users", "id", id)
	})
}
