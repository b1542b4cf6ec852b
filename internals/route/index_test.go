package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"schedules_backend/internals/configs"
	"schedules_backend/internals/constants"
	"schedules_backend/internals/databases/dbtest"
	academicService "schedules_backend/internals/features/academics/academic_terms/service"
	recordService "schedules_backend/internals/features/schedules/records/service"
	accountService "schedules_backend/internals/features/users/accounts/service"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newApp(t *testing.T) (*fiber.App, *accountService.AccountService) {
	t.Helper()
	db, reg := dbtest.Open(t)
	configs.JWTSecret = "test-secret"

	accounts := accountService.NewAccountService(db, reg, configs.JWTSecret, time.Hour)
	if err := accounts.SeedRoles(context.Background()); err != nil {
		t.Fatal(err)
	}
	app := fiber.New()
	SetupRoutes(app, db, reg, Services{
		Records:  recordService.NewRecordService(db, reg),
		Academic: academicService.NewAcademicService(db, reg),
		Accounts: accounts,
	})
	return app, accounts
}

func call(t *testing.T, app *fiber.App, method, path, token string, body any) (int, envelope) {
	t.Helper()
	var rdr io.Reader
	if body != nil {
		buf, _ := json.Marshal(body)
		rdr = bytes.NewReader(buf)
	}
	req := httptest.NewRequest(method, path, rdr)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var env envelope
	raw, _ := io.ReadAll(resp.Body)
	_ = json.Unmarshal(raw, &env)
	return resp.StatusCode, env
}

func login(t *testing.T, app *fiber.App, identifier, password string) string {
	t.Helper()
	status, env := call(t, app, "POST", "/api/auth/login", "", map[string]string{
		"identifier": identifier,
		"password":   password,
	})
	if status != fiber.StatusOK {
		t.Fatalf("login status = %d (%s)", status, env.Message)
	}
	var res struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(env.Data, &res); err != nil || res.AccessToken == "" {
		t.Fatalf("login data = %s", env.Data)
	}
	return res.AccessToken
}

func TestAuthFlow(t *testing.T) {
	app, accounts := newApp(t)

	status, env := call(t, app, "POST", "/api/auth/register", "", map[string]string{
		"user_name": "dispatcher1",
		"email":     "dispatcher1@univ.edu",
		"password":  "s3cret-pass",
	})
	if status != fiber.StatusCreated {
		t.Fatalf("register status = %d (%s)", status, env.Message)
	}
	var u struct {
		ID    string   `json:"id"`
		Roles []string `json:"roles"`
	}
	if err := json.Unmarshal(env.Data, &u); err != nil {
		t.Fatal(err)
	}

	if status, _ := call(t, app, "POST", "/api/auth/login", "", map[string]string{
		"identifier": "dispatcher1", "password": "wrong-pass",
	}); status != fiber.StatusUnauthorized {
		t.Fatalf("wrong password status = %d", status)
	}

	token := login(t, app, "dispatcher1", "s3cret-pass")
	if status, _ := call(t, app, "GET", "/api/a/auth/me", token, nil); status != fiber.StatusOK {
		t.Fatalf("me status = %d", status)
	}
	if status, _ := call(t, app, "GET", "/api/a/auth/me", "", nil); status != fiber.StatusUnauthorized {
		t.Fatalf("me without token status = %d", status)
	}

	// a student may not touch the schedule
	if status, _ := call(t, app, "POST", "/api/a/subjects", token, map[string]string{
		"subject_short_title": "БД", "subject_title": "Бази даних",
	}); status != fiber.StatusForbidden {
		t.Fatalf("student create subject status = %d", status)
	}

	userID := uuid.MustParse(u.ID)
	if _, err := accounts.AssignRole(context.Background(), userID, constants.RoleDispatcher, nil, nil); err != nil {
		t.Fatal(err)
	}
	// roles travel in the token, so a fresh login is needed
	token = login(t, app, "dispatcher1@univ.edu", "s3cret-pass")
	if status, env := call(t, app, "POST", "/api/a/subjects", token, map[string]string{
		"subject_short_title": "БД", "subject_title": "Бази даних",
	}); status != fiber.StatusCreated {
		t.Fatalf("dispatcher create subject status = %d (%s)", status, env.Message)
	}
	if status, _ := call(t, app, "GET", "/api/a/users", token, nil); status != fiber.StatusForbidden {
		t.Fatalf("dispatcher list users status = %d", status)
	}

	if status, _ := call(t, app, "POST", "/api/a/auth/logout", token, nil); status != fiber.StatusOK {
		t.Fatalf("logout status = %d", status)
	}
	if status, env := call(t, app, "GET", "/api/a/auth/me", token, nil); status != fiber.StatusUnauthorized {
		t.Fatalf("revoked token status = %d (%s)", status, env.Message)
	}
}

func TestPublicReads(t *testing.T) {
	app, _ := newApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil), -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("health status = %d", resp.StatusCode)
	}

	for _, path := range []string{
		"/api/public/labels?lang=en",
		"/api/public/subjects",
		"/api/public/teachers",
		"/api/public/groups",
		"/api/public/academic-terms",
		"/api/public/schedule/records",
		"/api/public/exams",
	} {
		if status, env := call(t, app, "GET", path, "", nil); status != fiber.StatusOK || !env.Success {
			t.Errorf("GET %s status = %d (%s)", path, status, env.Message)
		}
	}
}
