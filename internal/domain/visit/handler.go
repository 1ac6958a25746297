package visit

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/clinic/clinic/internal/domain/cds"
	"github.com/clinic/clinic/internal/platform/auth"
	"github.com/clinic/clinic/pkg/pagination"
)

type Handler struct {
	svc *Service

	// autosaveSecs is advertised to clients so their save cadence matches
	// the server's expectation.
	autosaveSecs int
}

func NewHandler(svc *Service, autosaveSecs int) *Handler {
	if autosaveSecs <= 0 {
		autosaveSecs = 30
	}
	return &Handler{svc: svc, autosaveSecs: autosaveSecs}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	clinical := auth.RequireRole("physician", "nurse")

	g.GET("/patients/:id/visits", h.listByPatient, clinical)
	g.POST("/patients/:id/visits", h.submit, auth.RequireRole("physician"))
	g.GET("/visits/:id", h.get, clinical)
	g.DELETE("/visits/:id", h.delete, auth.RequireRole("admin"))

	g.GET("/patients/:id/visit-draft", h.loadDraft, clinical)
	g.PUT("/patients/:id/visit-draft", h.saveDraft, clinical)
	g.DELETE("/patients/:id/visit-draft", h.clearDraft, clinical)
	g.POST("/patients/:id/visit-draft/notice", h.dismissNotice, clinical)
	g.POST("/patients/:id/visit-draft/medications", h.appendMedication, clinical)
	g.POST("/patients/:id/visit-draft/restore", h.restoreDraft, clinical)
}

func (h *Handler) submit(c echo.Context) error {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}
	var d VisitDraft
	if err := c.Bind(&d); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	var createdBy *string
	if uid := auth.UserIDFromContext(c.Request().Context()); uid != "" {
		createdBy = &uid
	}
	v, err := h.svc.Submit(c.Request().Context(), patientID, &d, createdBy)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, v)
}

func (h *Handler) get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid visit id")
	}
	v, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "visit not found")
	}
	return c.JSON(http.StatusOK, v)
}

func (h *Handler) delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid visit id")
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to delete visit")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) listByPatient(c echo.Context) error {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}
	p := pagination.FromContext(c)
	items, total, err := h.svc.ListByPatient(c.Request().Context(), patientID, p.Limit, p.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list visits")
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, p.Limit, p.Offset))
}

// draftResponse pairs a restorable snapshot with the derived state a
// client needs to render it. NoticeSeen tells the client whether it has
// already announced the restored draft.
type draftResponse struct {
	Snapshot        *DraftSnapshot `json:"snapshot"`
	State           *DraftState    `json:"state,omitempty"`
	NoticeSeen      bool           `json:"noticeSeen"`
	AutosaveSeconds int            `json:"autosaveSeconds"`
}

func (h *Handler) loadDraft(c echo.Context) error {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}
	snap, found, err := h.svc.Drafts().Load(c.Request().Context(), patientID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load draft")
	}
	if !found {
		return c.JSON(http.StatusOK, draftResponse{AutosaveSeconds: h.autosaveSecs})
	}
	seen, _ := h.svc.Drafts().NoticeSeen(c.Request().Context(), patientID)
	state := h.svc.OnFieldChange(&snap.Draft)
	return c.JSON(http.StatusOK, draftResponse{Snapshot: snap, State: &state, NoticeSeen: seen, AutosaveSeconds: h.autosaveSecs})
}

func (h *Handler) dismissNotice(c echo.Context) error {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}
	if err := h.svc.Drafts().MarkNoticeSeen(c.Request().Context(), patientID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to record dismissal")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) saveDraft(c echo.Context) error {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}
	var d VisitDraft
	if err := c.Bind(&d); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	snap, err := h.svc.Drafts().Save(c.Request().Context(), patientID, &d)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to save draft")
	}
	state := h.svc.OnFieldChange(&d)
	return c.JSON(http.StatusOK, draftResponse{Snapshot: snap, State: &state, AutosaveSeconds: h.autosaveSecs})
}

// appendMedication folds a suggested medication into the stored draft.
// Repeated appends of the same name leave the draft unchanged.
func (h *Handler) appendMedication(c echo.Context) error {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}
	var m cds.MedicationSuggestion
	if err := c.Bind(&m); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if m.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "medication name is required")
	}
	snap, found, err := h.svc.Drafts().Load(c.Request().Context(), patientID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load draft")
	}
	if !found {
		return echo.NewHTTPError(http.StatusNotFound, "no draft to update")
	}
	d := snap.Draft
	h.svc.AppendMedication(&d, m)
	updated, err := h.svc.Drafts().Save(c.Request().Context(), patientID, &d)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to save draft")
	}
	state := h.svc.OnFieldChange(&d)
	return c.JSON(http.StatusOK, draftResponse{Snapshot: updated, State: &state, AutosaveSeconds: h.autosaveSecs})
}

// restoreResponse carries the working draft after a stored snapshot's list
// state has been folded into it.
type restoreResponse struct {
	Draft    VisitDraft  `json:"draft"`
	State    *DraftState `json:"state"`
	Restored bool        `json:"restored"`
}

// restoreDraft merges the stored snapshot's list state into the draft the
// client opened with. Without a stored snapshot the draft comes back as
// sent.
func (h *Handler) restoreDraft(c echo.Context) error {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}
	var d VisitDraft
	if err := c.Bind(&d); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	snap, found, err := h.svc.Drafts().Load(c.Request().Context(), patientID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load draft")
	}
	if found {
		h.svc.MergeSnapshot(&d, snap)
	}
	state := h.svc.OnFieldChange(&d)
	return c.JSON(http.StatusOK, restoreResponse{Draft: d, State: &state, Restored: found})
}

func (h *Handler) clearDraft(c echo.Context) error {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}
	if err := h.svc.Drafts().Clear(c.Request().Context(), patientID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to clear draft")
	}
	return c.NoContent(http.StatusNoContent)
}
