package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

// postJSON invokes a handler directly with a JSON body. Validation failures
// return before any database access, so these tests need no DB.
func postJSON(t *testing.T, handlerFn gin.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	handlerFn(c)
	return w
}

func TestCreateMilestoneRejectsEqualBaselineDates(t *testing.T) {
	body := `{
		"project_id": "proj-1",
		"phase": "FRAMING",
		"description": "Walls",
		"baseline_start_date": "2024-02-01T00:00:00Z",
		"baseline_end_date": "2024-02-01T00:00:00Z"
	}`
	w := postJSON(t, CreateMilestone, body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "must be after") {
		t.Fatalf("expected date-order message, got %q", w.Body.String())
	}
}

func TestCreateMilestoneRejectsEndBeforeStart(t *testing.T) {
	body := `{
		"project_id": "proj-1",
		"phase": "FRAMING",
		"description": "Walls",
		"baseline_start_date": "2024-03-01T00:00:00Z",
		"baseline_end_date": "2024-02-01T00:00:00Z"
	}`
	w := postJSON(t, CreateMilestone, body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestCreateMaterialRejectsZeroQuantity(t *testing.T) {
	body := `{
		"project_id": "proj-1",
		"category": "FRAMING",
		"description": "2x4 studs",
		"quantity": 0,
		"unit": "EA",
		"unit_cost": 3.25
	}`
	w := postJSON(t, CreateMaterial, body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "quantity must be greater than zero") {
		t.Fatalf("expected quantity message, got %q", w.Body.String())
	}
}

func TestCreateMaterialRejectsNegativeQuantity(t *testing.T) {
	body := `{
		"project_id": "proj-1",
		"category": "FRAMING",
		"description": "2x4 studs",
		"quantity": -5,
		"unit": "EA",
		"unit_cost": 3.25
	}`
	w := postJSON(t, CreateMaterial, body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}
