package gpx

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func passThrough(c *fiber.Ctx) error { return c.Next() }

func TestPreviewHandler(t *testing.T) {
	app := fiber.New()
	RegisterRoutes(app.Group("/gpx"), NewStore(t.TempDir()), passThrough)

	req := httptest.NewRequest(http.MethodPost, "/gpx/preview", bytes.NewReader([]byte(sampleGPX)))
	req.Header.Set("Content-Type", "application/gpx+xml")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("preview status: %v %d", err, resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	var preview Preview
	if err := json.Unmarshal(body, &preview); err != nil {
		t.Fatalf("unmarshal preview: %v", err)
	}
	if preview.TempFileKey == "" {
		t.Fatalf("expected temp file key")
	}
	if len(preview.DetectedWaypoints) != 2 {
		t.Fatalf("expected detected waypoints")
	}
}

func TestPreviewHandlerRejectsNonGPX(t *testing.T) {
	app := fiber.New()
	RegisterRoutes(app.Group("/gpx"), NewStore(t.TempDir()), passThrough)

	req := httptest.NewRequest(http.MethodPost, "/gpx/preview", bytes.NewReader([]byte("not xml at all")))
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}
}

func TestPreviewHandlerEmptyBody(t *testing.T) {
	app := fiber.New()
	RegisterRoutes(app.Group("/gpx"), NewStore(t.TempDir()), passThrough)

	req := httptest.NewRequest(http.MethodPost, "/gpx/preview", nil)
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected bad request, got %d", resp.StatusCode)
	}
}
