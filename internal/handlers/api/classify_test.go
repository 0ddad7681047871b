package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"

	"uuidy/internal/classify"
	"uuidy/internal/config"
	"uuidy/internal/db"
	"uuidy/internal/models"
)

type stubCache struct {
	records map[string]*models.Classification
}

func (s *stubCache) Get(ctx context.Context, id string) (*models.Classification, error) {
	if rec, ok := s.records[id]; ok {
		cp := *rec
		return &cp, nil
	}
	return nil, db.ErrNotFound
}

func (s *stubCache) Put(ctx context.Context, rec *models.Classification) error {
	return nil
}

type stubSearcher struct{}

func (stubSearcher) Search(ctx context.Context, id string) []models.Source { return nil }

func newTestApp() *fiber.App {
	svc := classify.NewService(
		&stubCache{records: map[string]*models.Classification{}},
		stubSearcher{},
		&config.Config{CacheTimeout: time.Second},
	)
	h := NewClassifyHandler(svc)

	app := fiber.New()
	app.Get("/api/classify/:uuid", h.Get)
	app.Post("/api/classify", h.Post)
	return app
}

type envelope struct {
	Status string                `json:"status"`
	Error  string                `json:"error"`
	Data   models.Classification `json:"data"`
}

func decodeEnvelope(t *testing.T, resp *http.Response) envelope {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		t.Fatalf("decode response %s: %v", body, err)
	}
	return env
}

func TestClassifyGet(t *testing.T) {
	app := newTestApp()

	req, _ := http.NewRequest("GET", "/api/classify/0000180D-0000-1000-8000-00805F9B34FB", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	env := decodeEnvelope(t, resp)
	if env.Status != "ok" {
		t.Errorf("status = %q, want ok", env.Status)
	}
	if env.Data.UUID != "0000180d-0000-1000-8000-00805f9b34fb" {
		t.Errorf("uuid = %q, want normalized lowercase", env.Data.UUID)
	}
	if env.Data.Name != "Heart Rate" {
		t.Errorf("name = %q, want Heart Rate", env.Data.Name)
	}
	if env.Data.Cached {
		t.Error("cached = true, want false on first lookup")
	}
}

func TestClassifyGetInvalidUUID(t *testing.T) {
	app := newTestApp()

	req, _ := http.NewRequest("GET", "/api/classify/not-a-uuid", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}

	env := decodeEnvelope(t, resp)
	if env.Status != "error" {
		t.Errorf("status = %q, want error", env.Status)
	}
	if !strings.Contains(env.Error, "invalid UUID format") {
		t.Errorf("error = %q, want invalid UUID message", env.Error)
	}
}

func TestClassifyPost(t *testing.T) {
	app := newTestApp()

	body := strings.NewReader(`{"uuid": "0000180f-0000-1000-8000-00805f9b34fb"}`)
	req, _ := http.NewRequest("POST", "/api/classify", body)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	env := decodeEnvelope(t, resp)
	if env.Data.Name != "Battery Service" {
		t.Errorf("name = %q, want Battery Service", env.Data.Name)
	}
}

func TestClassifyPostMalformedBody(t *testing.T) {
	app := newTestApp()

	req, _ := http.NewRequest("POST", "/api/classify", strings.NewReader(`{"uuid": `))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestClassifyGetCachedRecord(t *testing.T) {
	id := "12345678-1234-5678-1234-567812345678"
	cache := &stubCache{records: map[string]*models.Classification{
		id: {
			UUID:       id,
			Name:       "Telemetry",
			Type:       models.TypeVendorSpecific,
			Confidence: models.ConfidenceMedium,
		},
	}}
	svc := classify.NewService(cache, stubSearcher{}, &config.Config{CacheTimeout: time.Second})
	h := NewClassifyHandler(svc)

	app := fiber.New()
	app.Get("/api/classify/:uuid", h.Get)

	req, _ := http.NewRequest("GET", "/api/classify/"+id, nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	env := decodeEnvelope(t, resp)
	if !env.Data.Cached {
		t.Error("cached = false, want true for a cache hit")
	}
	if env.Data.Name != "Telemetry" {
		t.Errorf("name = %q, want cached record", env.Data.Name)
	}
}
