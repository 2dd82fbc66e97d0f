package patient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func newTestServer() (*echo.Echo, *Service) {
	e := echo.New()
	svc := NewService(NewMemRepository())
	h := NewHandler(svc)
	h.RegisterRoutes(e.Group("/api/v1"))
	return e, svc
}

func doGet(e *echo.Echo, target string) (*httptest.ResponseRecorder, map[string]interface{}) {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var parsed map[string]interface{}
	json.Unmarshal(rec.Body.Bytes(), &parsed)
	return rec, parsed
}

func TestGetPatientEndpoint(t *testing.T) {
	e, svc := newTestServer()
	r, err := svc.Register(context.Background(), "Asha", 27.0, map[string]int{"q1": 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rec, body := doGet(e, "/api/v1/patients/"+r.ID.String())
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body["name"] != "Asha" {
		t.Errorf("unexpected name %v", body["name"])
	}
	if body["score"].(float64) != 27.0 {
		t.Errorf("unexpected score %v", body["score"])
	}

	rec, _ = doGet(e, "/api/v1/patients/"+uuid.NewString())
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown patient, got %d", rec.Code)
	}
	rec, _ = doGet(e, "/api/v1/patients/not-a-uuid")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for malformed id, got %d", rec.Code)
	}
}

func TestListPatientsEndpoint(t *testing.T) {
	e, svc := newTestServer()
	for _, n := range []string{"Asha", "Ravi"} {
		if _, err := svc.Register(context.Background(), n, 0, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	rec, body := doGet(e, "/api/v1/patients?limit=1")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body["total"].(float64) != 2 {
		t.Errorf("expected total 2, got %v", body["total"])
	}
	data := body["data"].([]interface{})
	if len(data) != 1 {
		t.Fatalf("expected 1 item, got %d", len(data))
	}
	if !body["has_more"].(bool) {
		t.Error("expected has_more")
	}
}
