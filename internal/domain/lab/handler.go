package lab

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
	read := auth.RequireRole("physician", "nurse")
	write := auth.RequireRole("physician", "nurse")

	g.POST("/lab-orders", h.createOrder, write)
	g.GET("/lab-orders/:id", h.getOrder, read)
	g.PUT("/lab-orders/:id", h.updateOrder, write)
	g.DELETE("/lab-orders/:id", h.deleteOrder, auth.RequireRole("admin"))
	g.GET("/patients/:id/lab-orders", h.listOrders, read)

	g.POST("/lab-results", h.recordResult, write)
	g.GET("/lab-results/:id", h.getResult, read)
	g.GET("/patients/:id/lab-results", h.listResults, read)
}

func (h *Handler) createOrder(c echo.Context) error {
	var o Order
	if err := c.Bind(&o); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := h.svc.CreateOrder(c.Request().Context(), &o); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, o)
}

func (h *Handler) getOrder(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid order id")
	}
	o, err := h.svc.GetOrder(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "lab order not found")
	}
	return c.JSON(http.StatusOK, o)
}

func (h *Handler) updateOrder(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid order id")
	}
	o, err := h.svc.GetOrder(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "lab order not found")
	}
	if err := c.Bind(o); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	o.ID = id
	if err := h.svc.UpdateOrder(c.Request().Context(), o); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, o)
}

func (h *Handler) deleteOrder(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid order id")
	}
	if err := h.svc.DeleteOrder(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to delete lab order")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) listOrders(c echo.Context) error {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}
	p := pagination.FromContext(c)
	items, total, err := h.svc.ListOrdersByPatient(c.Request().Context(), patientID, p.Limit, p.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list lab orders")
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, p.Limit, p.Offset))
}

func (h *Handler) recordResult(c echo.Context) error {
	var res Result
	if err := c.Bind(&res); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := h.svc.RecordResult(c.Request().Context(), &res); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, res)
}

func (h *Handler) getResult(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid result id")
	}
	res, err := h.svc.GetResult(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "lab result not found")
	}
	return c.JSON(http.StatusOK, res)
}

func (h *Handler) listResults(c echo.Context) error {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}
	p := pagination.FromContext(c)
	items, total, err := h.svc.ListResultsByPatient(c.Request().Context(), patientID, p.Limit, p.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list lab results")
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, p.Limit, p.Offset))
}
