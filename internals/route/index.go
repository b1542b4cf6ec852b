package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schedules_backend/internals/databases/schema"
	academicRoute "schedules_backend/internals/features/academics/academic_terms/route"
	academicService "schedules_backend/internals/features/academics/academic_terms/service"
	fieldOfStudyRoute "schedules_backend/internals/features/academics/fields_of_study/route"
	groupRoute "schedules_backend/internals/features/academics/groups/route"
	subjectRoute "schedules_backend/internals/features/academics/subjects/route"
	examRoute "schedules_backend/internals/features/schedules/exams/route"
	recordRoute "schedules_backend/internals/features/schedules/records/route"
	recordService "schedules_backend/internals/features/schedules/records/service"
	accountRoute "schedules_backend/internals/features/users/accounts/route"
	accountService "schedules_backend/internals/features/users/accounts/service"
	teacherRoute "schedules_backend/internals/features/users/teachers/route"
	labelRoute "schedules_backend/internals/features/utils/labels/route"
	authMiddleware "schedules_backend/internals/middlewares/auth"
)

var startTime time.Time

// Services are built once in main and shared by every route group.
type Services struct {
	Records  *recordService.RecordService
	Academic *academicService.AcademicService
	Accounts *accountService.AccountService
}

func SetupRoutes(app *fiber.App, db *gorm.DB, reg *schema.Registry, svc Services) {
	startTime = time.Now()

	BaseRoutes(app, db)

	api := app.Group("/api")

	// /api/auth shares the "/api/a" prefix; its handlers must be on the stack
	// before the signed-in middleware so they answer first.
	log.Println("[INFO] Mounting auth routes...")
	accountRoute.AuthPublicRoutes(api, svc.Accounts)

	// ===================== GROUPS =====================
	log.Println("[INFO] Setting up PUBLIC group...")
	public := api.Group("/public")

	log.Println("[INFO] Setting up SIGNED-IN group...")
	signedIn := api.Group("/a", authMiddleware.AuthMiddleware(db))

	// ===================== MOUNT ROUTES =====================
	accountRoute.AuthUserRoutes(signedIn, svc.Accounts)
	accountRoute.AccountAdminRoutes(signedIn, svc.Accounts)

	log.Println("[INFO] Mounting academic routes...")
	academicRoute.AcademicPublicRoutes(public, svc.Academic)
	academicRoute.AcademicAdminRoutes(signedIn, svc.Academic)
	fieldOfStudyRoute.FieldOfStudyPublicRoutes(public, db, reg)
	fieldOfStudyRoute.FieldOfStudyAdminRoutes(signedIn, db, reg)
	groupRoute.GroupPublicRoutes(public, db, reg)
	groupRoute.GroupAdminRoutes(signedIn, db, reg)
	subjectRoute.SubjectPublicRoutes(public, db, reg)
	subjectRoute.SubjectAdminRoutes(signedIn, db, reg)
	teacherRoute.TeacherPublicRoutes(public, db, reg)
	teacherRoute.TeacherAdminRoutes(signedIn, db, reg)

	log.Println("[INFO] Mounting schedule routes...")
	recordRoute.RecordPublicRoutes(public, svc.Records)
	recordRoute.RecordAdminRoutes(signedIn, svc.Records)
	examRoute.ExamPublicRoutes(public, db, reg)
	examRoute.ExamAdminRoutes(signedIn, db, reg)

	labelRoute.LabelPublicRoutes(public)
}
