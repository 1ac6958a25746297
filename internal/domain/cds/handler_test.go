package cds

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func postVisitCheck(t *testing.T, body string) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/cds/visit-check", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return rec, NewHandler().VisitCheck(c)
}

func TestVisitCheck_FullEvaluation(t *testing.T) {
	body := `{"diagnosis":"upper respiratory infection","vitals":{"blood_pressure":"150/95","heart_rate":"105","weight":"70","height":"170"}}`
	rec, err := postVisitCheck(t, body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp VisitCheckResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.BMI == nil || *resp.BMI != 24.2 {
		t.Errorf("expected BMI 24.2, got %v", resp.BMI)
	}
	if !hasAlert(resp.Alerts, AlertElevatedBP) || !hasAlert(resp.Alerts, AlertTachy) {
		t.Errorf("expected BP and tachycardia alerts, got %v", resp.Alerts)
	}
	if len(resp.Suggestions) == 0 {
		t.Error("expected medication suggestions")
	}
	if resp.Instruction == "" {
		t.Error("expected instruction note")
	}
}

func TestVisitCheck_EmptyDraft(t *testing.T) {
	rec, err := postVisitCheck(t, `{"diagnosis":"","vitals":{}}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var resp VisitCheckResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.BMI != nil {
		t.Errorf("expected undefined BMI, got %v", *resp.BMI)
	}
	if len(resp.Alerts) != 0 {
		t.Errorf("expected no alerts, got %v", resp.Alerts)
	}
	if len(resp.Suggestions) != 0 {
		t.Errorf("expected no suggestions, got %v", resp.Suggestions)
	}
}

func TestVisitCheck_BadBody(t *testing.T) {
	_, err := postVisitCheck(t, `{not json`)
	if err == nil {
		t.Fatal("expected bind error")
	}
}

func TestMedicationSuggestions_Endpoint(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/cds/medication-suggestions?diagnosis=asthma", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := NewHandler().MedicationSuggestions(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Salbutamol") {
		t.Errorf("expected Salbutamol for asthma, got %s", rec.Body.String())
	}
}
