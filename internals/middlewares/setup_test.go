package middlewares

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func TestSetupMiddlewaresSetsRequestID(t *testing.T) {
	app := fiber.New()
	SetupMiddlewares(app)
	app.Get("/ping", func(c *fiber.Ctx) error { return c.SendString("pong") })

	resp, err := app.Test(httptest.NewRequest("GET", "/ping", nil), -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	id := resp.Header.Get(fiber.HeaderXRequestID)
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("request id %q: %v", id, err)
	}

	// a caller-supplied id is passed through
	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set(fiber.HeaderXRequestID, "trace-42")
	resp, err = app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if got := resp.Header.Get(fiber.HeaderXRequestID); got != "trace-42" {
		t.Fatalf("request id = %q", got)
	}
}

func TestSetupMiddlewaresRecoversPanics(t *testing.T) {
	app := fiber.New()
	SetupMiddlewares(app)
	app.Get("/boom", func(c *fiber.Ctx) error { panic("boom") })

	resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil), -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusInternalServerError {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}
