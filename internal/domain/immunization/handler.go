package immunization

import (
	"net/http"
	"strconv"
	"time"

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
	read := auth.RequireRole("physician", "nurse")
	write := auth.RequireRole("physician", "nurse")

	g.POST("/immunizations", h.create, write)
	g.GET("/immunizations/:id", h.get, read)
	g.PUT("/immunizations/:id", h.update, write)
	g.DELETE("/immunizations/:id", h.delete, auth.RequireRole("admin"))
	g.GET("/patients/:id/immunizations", h.listByPatient, read)
	g.GET("/patients/:id/immunizations/due", h.listDue, read)
}

func (h *Handler) create(c echo.Context) error {
	var im Immunization
	if err := c.Bind(&im); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := h.svc.Record(c.Request().Context(), &im); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, im)
}

func (h *Handler) get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid immunization id")
	}
	im, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "immunization not found")
	}
	return c.JSON(http.StatusOK, im)
}

func (h *Handler) update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid immunization id")
	}
	im, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "immunization not found")
	}
	if err := c.Bind(im); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	im.ID = id
	if err := h.svc.Update(c.Request().Context(), im); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, im)
}

func (h *Handler) delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid immunization id")
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to delete immunization")
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
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list immunizations")
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, p.Limit, p.Offset))
}

func (h *Handler) listDue(c echo.Context) error {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}
	window := 30 * 24 * time.Hour
	if d := c.QueryParam("days"); d != "" {
		if days, err := strconv.Atoi(d); err == nil && days > 0 {
			window = time.Duration(days) * 24 * time.Hour
		}
	}
	items, err := h.svc.DueForPatient(c.Request().Context(), patientID, window)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list due immunizations")
	}
	return c.JSON(http.StatusOK, items)
}
