package route

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func get(t *testing.T, path string) (int, map[string]json.RawMessage) {
	t.Helper()
	app := fiber.New()
	LabelPublicRoutes(app.Group("/api/public"))

	resp, err := app.Test(httptest.NewRequest("GET", path, nil), -1)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	var body map[string]json.RawMessage
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("decode %s: %v", raw, err)
	}
	return resp.StatusCode, body
}

func TestLabelsDefaultLanguage(t *testing.T) {
	status, body := get(t, "/api/public/labels?lang=fr")
	if status != fiber.StatusOK {
		t.Fatalf("status = %d", status)
	}
	var data map[string]map[string]string
	if err := json.Unmarshal(body["data"], &data); err != nil {
		t.Fatal(err)
	}
	if data["day_of_week"]["1"] != "Понеділок" {
		t.Fatalf("day 1 = %q", data["day_of_week"]["1"])
	}
	if len(data["type_of_lesson"]) != 4 {
		t.Fatalf("lesson types = %v", data["type_of_lesson"])
	}
}

func TestLabelsByKind(t *testing.T) {
	status, body := get(t, "/api/public/labels/type_of_week?lang=EN")
	if status != fiber.StatusOK {
		t.Fatalf("status = %d", status)
	}
	var data map[string]string
	if err := json.Unmarshal(body["data"], &data); err != nil {
		t.Fatal(err)
	}
	if data["even"] != "Even week" {
		t.Fatalf("even = %q", data["even"])
	}

	if status, _ := get(t, "/api/public/labels/colour"); status != fiber.StatusNotFound {
		t.Fatalf("unknown kind status = %d", status)
	}
}
