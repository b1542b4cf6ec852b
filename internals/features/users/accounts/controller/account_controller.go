package controller

import (
	"encoding/json"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"schedules_backend/internals/databases/catalog"
	"schedules_backend/internals/features/users/accounts/dto"
	"schedules_backend/internals/features/users/accounts/service"
	helper "schedules_backend/internals/helpers"
)

type AccountController struct {
	Svc       *service.AccountService
	Validator *validator.Validate
}

func NewAccountController(svc *service.AccountService, v *validator.Validate) *AccountController {
	if v == nil {
		v = helper.Validator()
	}
	return &AccountController{Svc: svc, Validator: v}
}

func (ctl *AccountController) authError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrUserInactive):
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	}
	return helper.JsonAppError(c, err)
}

/* ============================================
   /api/auth
============================================ */

func (ctl *AccountController) Register(c *fiber.Ctx) error {
	var p dto.RegisterRequest
	if err := helper.BindAndValidate(c, ctl.Validator, catalog.EntityUser, &p); err != nil {
		return helper.JsonAppError(c, err)
	}
	u, err := ctl.Svc.Register(c.UserContext(), p.ToInput())
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonCreated(c, "registration successful", u)
}

func (ctl *AccountController) Login(c *fiber.Ctx) error {
	var p dto.LoginRequest
	if err := helper.BindAndValidate(c, ctl.Validator, catalog.EntityUser, &p); err != nil {
		return helper.JsonAppError(c, err)
	}
	res, err := ctl.Svc.Login(c.UserContext(), p.Identifier, p.Password)
	if err != nil {
		return ctl.authError(c, err)
	}
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    res.AccessToken,
		Expires:  res.ExpiresAt,
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Strict",
	})
	return helper.JsonOK(c, "login successful", res)
}

/* ============================================
   /api/a/auth (signed in)
============================================ */

func (ctl *AccountController) Logout(c *fiber.Ctx) error {
	if err := ctl.Svc.Logout(c.UserContext(), helper.GetRawAccessToken(c)); err != nil {
		return ctl.authError(c, err)
	}
	c.ClearCookie("access_token")
	return helper.JsonOK(c, "logged out", nil)
}

func (ctl *AccountController) Me(c *fiber.Ctx) error {
	id, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	u, err := ctl.Svc.GetUser(c.UserContext(), id)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "ok", u)
}

func (ctl *AccountController) ChangePassword(c *fiber.Ctx) error {
	id, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	var p dto.ChangePasswordRequest
	if err := helper.BindAndValidate(c, ctl.Validator, catalog.EntityUser, &p); err != nil {
		return helper.JsonAppError(c, err)
	}
	if err := ctl.Svc.ChangePassword(c.UserContext(), id, p.CurrentPassword, p.NewPassword); err != nil {
		return ctl.authError(c, err)
	}
	return helper.JsonUpdated(c, "password changed", nil)
}

/* ============================================
   /api/a/users, /api/a/roles (admin)
============================================ */

func (ctl *AccountController) ListUsers(c *fiber.Ctx) error {
	pg := helper.ParseFiber(c, "", "asc", helper.AdminOpts)
	rows, total, err := ctl.Svc.ListUsers(c.UserContext(), pg.Offset(), pg.Limit())
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonList(c, "ok", rows, pg.Pagination(total))
}

func (ctl *AccountController) GetUser(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	u, err := ctl.Svc.GetUser(c.UserContext(), id)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "ok", u)
}

// PATCH /api/a/users/:id/active
func (ctl *AccountController) SetActive(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	var p dto.SetActiveRequest
	if err := helper.BindAndValidate(c, ctl.Validator, catalog.EntityUser, &p); err != nil {
		return helper.JsonAppError(c, err)
	}
	if err := ctl.Svc.SetActive(c.UserContext(), id, *p.IsActive); err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonUpdated(c, "user updated", fiber.Map{"id": id, "is_active": *p.IsActive})
}

func (ctl *AccountController) DeleteUser(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	if err := ctl.Svc.DeleteUser(c.UserContext(), id); err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonDeleted(c, "user deleted", fiber.Map{"id": id})
}

// POST /api/a/users/:id/roles
func (ctl *AccountController) AssignRole(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	var p dto.AssignRoleRequest
	if err := helper.BindAndValidate(c, ctl.Validator, catalog.EntityUserRole, &p); err != nil {
		return helper.JsonAppError(c, err)
	}
	if len(p.Metadata) > 0 && !json.Valid(p.Metadata) {
		return helper.JsonError(c, fiber.StatusBadRequest, "metadata must be valid JSON")
	}

	var assignedBy *uuid.UUID
	if by, err := helper.GetUserIDFromToken(c); err == nil {
		assignedBy = &by
	}
	link, err := ctl.Svc.AssignRole(c.UserContext(), id, p.RoleName, assignedBy, p.Metadata)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonCreated(c, "role assigned", link)
}

// DELETE /api/a/users/:id/roles/:role_id
func (ctl *AccountController) RevokeRole(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	roleID, err := helper.ParseUUIDParam(c, "role_id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	if err := ctl.Svc.RevokeRole(c.UserContext(), id, roleID); err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonDeleted(c, "role revoked", fiber.Map{"id": id, "role_id": roleID})
}

func (ctl *AccountController) ListRoles(c *fiber.Ctx) error {
	roles, err := ctl.Svc.ListRoles(c.UserContext())
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "ok", roles)
}

func (ctl *AccountController) CreateRole(c *fiber.Ctx) error {
	var p dto.CreateRoleRequest
	if err := helper.BindAndValidate(c, ctl.Validator, catalog.EntityRole, &p); err != nil {
		return helper.JsonAppError(c, err)
	}
	role, err := ctl.Svc.CreateRole(c.UserContext(), p.RoleName)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonCreated(c, "role created", role)
}

func (ctl *AccountController) DeleteRole(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	if err := ctl.Svc.DeleteRole(c.UserContext(), id); err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonDeleted(c, "role deleted", fiber.Map{"role_id": id})
}
