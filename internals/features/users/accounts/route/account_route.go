package route

import (
	"github.com/gofiber/fiber/v2"

	"schedules_backend/internals/constants"
	accountCtl "schedules_backend/internals/features/users/accounts/controller"
	"schedules_backend/internals/features/users/accounts/service"
	"schedules_backend/internals/middlewares"
	authMiddleware "schedules_backend/internals/middlewares/auth"
)

// AuthPublicRoutes: /api/auth/register, /api/auth/login
func AuthPublicRoutes(app fiber.Router, svc *service.AccountService) {
	ctl := accountCtl.NewAccountController(svc, nil)

	r := app.Group("/auth")
	r.Post("/register", middlewares.RegisterRateLimiter(), ctl.Register)
	r.Post("/login", middlewares.LoginRateLimiter(), ctl.Login)
}

// AuthUserRoutes: any signed-in caller
func AuthUserRoutes(user fiber.Router, svc *service.AccountService) {
	ctl := accountCtl.NewAccountController(svc, nil)

	r := user.Group("/auth")
	r.Get("/me", ctl.Me)
	r.Post("/logout", ctl.Logout)
	r.Post("/change-password", ctl.ChangePassword)
}

// AccountAdminRoutes: user and role management (admin only)
func AccountAdminRoutes(admin fiber.Router, svc *service.AccountService) {
	ctl := accountCtl.NewAccountController(svc, nil)
	guard := authMiddleware.OnlyRolesSlice(constants.RoleErrorAdmin("user management"), constants.AdminOnly)

	users := admin.Group("/users", guard)
	users.Get("/", ctl.ListUsers)
	users.Get("/:id", ctl.GetUser)
	users.Patch("/:id/active", ctl.SetActive)
	users.Delete("/:id", ctl.DeleteUser)
	users.Post("/:id/roles", ctl.AssignRole)
	users.Delete("/:id/roles/:role_id", ctl.RevokeRole)

	roles := admin.Group("/roles", guard)
	roles.Get("/", ctl.ListRoles)
	roles.Post("/", ctl.CreateRole)
	roles.Delete("/:id", ctl.DeleteRole)
}
