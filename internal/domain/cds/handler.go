package cds

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clinic/clinic/internal/platform/auth"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	role := auth.RequireRole("physician", "nurse")
	api.POST("/cds/visit-check", h.VisitCheck, role)
	api.GET("/cds/medication-suggestions", h.MedicationSuggestions, role)
}

// VisitCheckRequest is the draft state a client submits for evaluation.
type VisitCheckRequest struct {
	Diagnosis string `json:"diagnosis"`
	Vitals    Vitals `json:"vitals"`
}

// VisitCheckResponse carries everything derived from one evaluation pass.
type VisitCheckResponse struct {
	BMI         *float64               `json:"bmi,omitempty"`
	Alerts      []string               `json:"alerts"`
	Suggestions []MedicationSuggestion `json:"suggestions"`
	Instruction string                 `json:"instruction,omitempty"`
}

// VisitCheck evaluates a visit draft's vitals and diagnosis in one pass:
// BMI, vital-sign alerts, and medication suggestions.
func (h *Handler) VisitCheck(c echo.Context) error {
	var req VisitCheckRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	resp := VisitCheckResponse{
		BMI:    ComputeBMI(req.Vitals.Weight, req.Vitals.Height),
		Alerts: EvaluateVitals(req.Vitals),
	}
	if req.Diagnosis != "" {
		resp.Suggestions, resp.Instruction = Suggest(req.Diagnosis)
	}
	if resp.Suggestions == nil {
		resp.Suggestions = []MedicationSuggestion{}
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) MedicationSuggestions(c echo.Context) error {
	diagnosis := c.QueryParam("diagnosis")
	suggestions, instruction := Suggest(diagnosis)
	if suggestions == nil {
		suggestions = []MedicationSuggestion{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"suggestions": suggestions,
		"instruction": instruction,
	})
}
