package route

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"schedules_backend/internals/constants"
	"schedules_backend/internals/databases/dbtest"
	"schedules_backend/internals/features/schedules/records/service"
	helper "schedules_backend/internals/helpers"
)

type envelope struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	ErrorCode string          `json:"error_code"`
	Data      json.RawMessage `json:"data"`
	Errors    json.RawMessage `json:"errors"`
}

func newApp(t *testing.T, roles ...string) (*fiber.App, map[string]uuid.UUID) {
	db, reg := dbtest.Open(t)
	svc := service.NewRecordService(db, reg)

	term := dbtest.Term(t, db)
	ids := map[string]uuid.UUID{
		"g1": dbtest.Group(t, db, "КН-11", term),
		"t1": dbtest.Teacher(t, db, "Шевченко"),
		"t2": dbtest.Teacher(t, db, "Франко"),
	}
	subj := dbtest.Subject(t, db, "БД", "Бази даних")
	ids["st1"] = dbtest.SubjectTeacher(t, db, subj, ids["t1"], constants.LessonLecture)
	ids["st2"] = dbtest.SubjectTeacher(t, db, subj, ids["t2"], constants.LessonLaboratory)

	app := fiber.New()
	admin := app.Group("/api/a", func(c *fiber.Ctx) error {
		c.Locals(helper.LocRoles, roles)
		return c.Next()
	})
	RecordAdminRoutes(admin, svc)
	RecordPublicRoutes(app.Group("/api/public"), svc)
	return app, ids
}

func do(t *testing.T, app *fiber.App, method, path string, body any) (int, envelope) {
	t.Helper()
	var rdr io.Reader
	if body != nil {
		buf, _ := json.Marshal(body)
		rdr = bytes.NewReader(buf)
	}
	req := httptest.NewRequest(method, path, rdr)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var env envelope
	raw, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(raw, &env); err != nil {
		t.Fatalf("decode %s: %v", raw, err)
	}
	return resp.StatusCode, env
}

func recordBody(st, group uuid.UUID, week string) map[string]any {
	return map[string]any{
		"record_subject_teacher_id": st,
		"record_day_of_week":        1,
		"record_pair_num":           1,
		"record_type_of_week":       week,
		"record_group_ids":          []uuid.UUID{group},
	}
}

func TestCreateConflictReturns409(t *testing.T) {
	app, ids := newApp(t, constants.RoleDispatcher)

	status, env := do(t, app, http.MethodPost, "/api/a/schedule/records", recordBody(ids["st1"], ids["g1"], "even"))
	if status != http.StatusCreated || !env.Success {
		t.Fatalf("create: %d %+v", status, env)
	}
	var created struct {
		RecordID uuid.UUID `json:"record_id"`
	}
	_ = json.Unmarshal(env.Data, &created)

	status, env = do(t, app, http.MethodPost, "/api/a/schedule/records", recordBody(ids["st2"], ids["g1"], "both"))
	if status != http.StatusConflict || env.ErrorCode != "SCHEDULE_CONFLICT" {
		t.Fatalf("conflict: %d %+v", status, env)
	}
	var details struct {
		Conflicts []struct {
			RecordID uuid.UUID `json:"record_id"`
			Reasons  []string  `json:"reasons"`
		} `json:"conflicts"`
	}
	if err := json.Unmarshal(env.Errors, &details); err != nil {
		t.Fatal(err)
	}
	if len(details.Conflicts) != 1 || details.Conflicts[0].RecordID != created.RecordID {
		t.Fatalf("details = %+v", details)
	}

	status, _ = do(t, app, http.MethodPost, "/api/a/schedule/records/check", recordBody(ids["st2"], ids["g1"], "odd"))
	if status != http.StatusOK {
		t.Fatalf("check: %d", status)
	}
	status, _ = do(t, app, http.MethodGet, fmt.Sprintf("/api/public/schedule/records?group_id=%s&day_of_week=1", ids["g1"]), nil)
	if status != http.StatusOK {
		t.Fatalf("list: %d", status)
	}
}

func TestCreateValidationReturns422(t *testing.T) {
	app, ids := newApp(t, constants.RoleAdmin)
	body := recordBody(ids["st1"], ids["g1"], "fortnightly")
	body["record_pair_num"] = 7

	status, env := do(t, app, http.MethodPost, "/api/a/schedule/records", body)
	if status != http.StatusUnprocessableEntity || env.ErrorCode != "VALIDATION_ERROR" {
		t.Fatalf("%d %+v", status, env)
	}
	var fields map[string][]string
	_ = json.Unmarshal(env.Errors, &fields)
	if len(fields["record_pair_num"]) == 0 || len(fields["record_type_of_week"]) == 0 {
		t.Fatalf("fields = %v", fields)
	}
}

func TestAdminRoutesRequireRole(t *testing.T) {
	app, ids := newApp(t, constants.RoleStudent)
	status, env := do(t, app, http.MethodPost, "/api/a/schedule/records", recordBody(ids["st1"], ids["g1"], "both"))
	if status != http.StatusForbidden || env.Success {
		t.Fatalf("%d %+v", status, env)
	}
}

func TestUnknownRecordReturns404(t *testing.T) {
	app, _ := newApp(t)
	status, env := do(t, app, http.MethodGet, "/api/public/schedule/records/"+uuid.NewString(), nil)
	if status != http.StatusNotFound || env.ErrorCode != "NOT_FOUND" {
		t.Fatalf("%d %+v", status, env)
	}
	status, _ = do(t, app, http.MethodGet, "/api/public/schedule/records/not-a-uuid", nil)
	if status != http.StatusBadRequest {
		t.Fatalf("%d", status)
	}
}
