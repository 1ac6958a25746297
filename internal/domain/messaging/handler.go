package messaging

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/clinic/clinic/internal/platform/auth"
	"github.com/clinic/clinic/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	staff := auth.RequireRole("physician", "nurse", "receptionist")

	g.POST("/messages", h.send, staff)
	g.GET("/messages", h.list, staff)
	g.GET("/messages/:id", h.get, staff)
	g.GET("/patients/:id/messages", h.listByPatient, staff)

	g.GET("/message-templates", h.listTemplates, staff)
	g.GET("/patients/:id/template-suggestions", h.suggest, staff)
	g.POST("/patients/:id/fill-template", h.fill, staff)
}

func (h *Handler) send(c echo.Context) error {
	var m Message
	if err := c.Bind(&m); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if uid := auth.UserIDFromContext(c.Request().Context()); uid != "" {
		m.SentBy = &uid
	}
	if err := h.svc.Send(c.Request().Context(), &m); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, m)
}

func (h *Handler) get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid message id")
	}
	m, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "message not found")
	}
	return c.JSON(http.StatusOK, m)
}

func (h *Handler) list(c echo.Context) error {
	p := pagination.FromContext(c)
	items, total, err := h.svc.List(c.Request().Context(), p.Limit, p.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list messages")
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, p.Limit, p.Offset))
}

func (h *Handler) listByPatient(c echo.Context) error {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}
	p := pagination.FromContext(c)
	items, total, err := h.svc.ListByPatient(c.Request().Context(), patientID, p.Limit, p.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list messages")
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, p.Limit, p.Offset))
}

func (h *Handler) listTemplates(c echo.Context) error {
	return c.JSON(http.StatusOK, Templates())
}

func (h *Handler) suggest(c echo.Context) error {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}
	suggestions, err := h.svc.SuggestForPatient(c.Request().Context(), patientID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "patient not found")
	}
	return c.JSON(http.StatusOK, suggestions)
}

type fillRequest struct {
	TemplateID string `json:"templateId"`
}

type fillResponse struct {
	TemplateID string `json:"templateId"`
	Body       string `json:"body"`
}

func (h *Handler) fill(c echo.Context) error {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}
	var req fillRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.TemplateID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "templateId is required")
	}
	body, err := h.svc.FillForPatient(c.Request().Context(), patientID, req.TemplateID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, fillResponse{TemplateID: req.TemplateID, Body: body})
}
