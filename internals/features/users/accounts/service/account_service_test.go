package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"schedules_backend/internals/constants"
	"schedules_backend/internals/databases/dbtest"
	model "schedules_backend/internals/features/users/accounts/model"
	repo "schedules_backend/internals/features/users/accounts/repository"
	helper "schedules_backend/internals/helpers"
	"schedules_backend/internals/helpers/apperr"
)

const testSecret = "test-secret"

func newService(t *testing.T) *AccountService {
	db, reg := dbtest.Open(t)
	s := NewAccountService(db, reg, testSecret, time.Hour)
	if err := s.SeedRoles(context.Background()); err != nil {
		t.Fatal(err)
	}
	return s
}

func TestSeedRolesIsIdempotent(t *testing.T) {
	s := newService(t)
	if err := s.SeedRoles(context.Background()); err != nil {
		t.Fatal(err)
	}
	roles, err := s.ListRoles(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(roles) != len(constants.AllRoles) {
		t.Fatalf("roles = %d, want %d", len(roles), len(constants.AllRoles))
	}
}

func TestRegisterAndLogin(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	u, err := s.Register(ctx, RegisterInput{UserName: "dispatcher1", Email: "Disp@Univ.edu", Password: "s3cret-pass"})
	if err != nil {
		t.Fatal(err)
	}
	if u.Email != "disp@univ.edu" || u.PasswordHash == "s3cret-pass" {
		t.Fatalf("user = %+v", u.UserModel)
	}
	if len(u.Roles) != 1 || u.Roles[0] != constants.RoleStudent {
		t.Fatalf("roles = %v", u.Roles)
	}

	var ve *apperr.ValidationError
	_, err = s.Register(ctx, RegisterInput{UserName: "dispatcher1", Email: "disp@univ.edu", Password: "another-pass"})
	if !errors.As(err, &ve) || len(ve.Fields["user_name"]) == 0 || len(ve.Fields["email"]) == 0 {
		t.Fatalf("duplicate register: %v", err)
	}

	if _, err := s.Login(ctx, "dispatcher1", "wrong-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: %v", err)
	}
	res, err := s.Login(ctx, "DISP@univ.edu", "s3cret-pass")
	if err != nil {
		t.Fatal(err)
	}
	claims, err := helper.ParseAccessToken(testSecret, res.AccessToken)
	if err != nil {
		t.Fatal(err)
	}
	if claims.UserID != u.ID.String() || len(claims.Roles) != 1 {
		t.Fatalf("claims = %+v", claims)
	}
}

func TestAssignAndRevokeRole(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	u, err := s.Register(ctx, RegisterInput{UserName: "teacher1", Email: "t1@univ.edu", Password: "password1"})
	if err != nil {
		t.Fatal(err)
	}
	admin := uuid.New()
	link, err := s.AssignRole(ctx, u.ID, "Dispatcher", &admin, []byte(`{"reason":"timetable office"}`))
	if err != nil {
		t.Fatal(err)
	}
	if link.UserRoleAssignedBy == nil || *link.UserRoleAssignedBy != admin {
		t.Fatalf("assigned_by = %v", link.UserRoleAssignedBy)
	}

	// again: no duplicate row
	if _, err := s.AssignRole(ctx, u.ID, constants.RoleDispatcher, nil, nil); err != nil {
		t.Fatal(err)
	}
	roles, err := s.RolesForUser(ctx, u.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(roles) != 2 || roles[0] != constants.RoleDispatcher || roles[1] != constants.RoleStudent {
		t.Fatalf("roles = %v", roles)
	}

	var ve *apperr.ValidationError
	if _, err := s.AssignRole(ctx, u.ID, "rector", nil, nil); !errors.As(err, &ve) {
		t.Fatalf("unknown role: %v", err)
	}

	role, err := repo.FindRoleByName(s.DB, constants.RoleDispatcher)
	if err != nil {
		t.Fatal(err)
	}
	var ri *apperr.ReferentialIntegrityError
	if err := s.DeleteRole(ctx, role.RoleID); !errors.As(err, &ri) {
		t.Fatalf("role in use deleted: %v", err)
	}
	if err := s.RevokeRole(ctx, u.ID, role.RoleID); err != nil {
		t.Fatal(err)
	}
	var nf *apperr.NotFoundError
	if err := s.RevokeRole(ctx, u.ID, role.RoleID); !errors.As(err, &nf) {
		t.Fatalf("second revoke: %v", err)
	}
}

func TestDeleteUserCascadesRoles(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	u, err := s.Register(ctx, RegisterInput{UserName: "student1", Email: "s1@univ.edu", Password: "password1"})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.DeleteUser(ctx, u.ID); err != nil {
		t.Fatal(err)
	}
	var n int64
	s.DB.Model(&model.UserRoleModel{}).Where("user_role_user_id = ?", u.ID).Count(&n)
	if n != 0 {
		t.Fatalf("user_roles left: %d", n)
	}
}

func TestInactiveUserCannotLogin(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	u, err := s.Register(ctx, RegisterInput{UserName: "student2", Email: "s2@univ.edu", Password: "password1"})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SetActive(ctx, u.ID, false); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Login(ctx, "student2", "password1"); !errors.Is(err, ErrUserInactive) {
		t.Fatalf("inactive login: %v", err)
	}
}

func TestLogoutBlacklistsToken(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	if _, err := s.Register(ctx, RegisterInput{UserName: "student3", Email: "s3@univ.edu", Password: "password1"}); err != nil {
		t.Fatal(err)
	}
	res, err := s.Login(ctx, "student3", "password1")
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Logout(ctx, res.AccessToken); err != nil {
		t.Fatal(err)
	}
	var row model.TokenBlacklistModel
	if err := s.DB.Where("token_hash = ?", helper.TokenHash(res.AccessToken)).First(&row).Error; err != nil {
		t.Fatalf("token not blacklisted: %v", err)
	}

	// expired rows are swept
	if err := repo.BlacklistToken(s.DB, "old-token", time.Now().Add(-time.Minute)); err != nil {
		t.Fatal(err)
	}
	n, err := repo.CleanupExpiredBlacklist(s.DB)
	if err != nil || n != 1 {
		t.Fatalf("cleanup = %d, %v", n, err)
	}
}
