// Package transport exposes the connector operations over HTTP. Each route
// carries the supplier credentials in its request body, so the server itself
// stays credential-free and one deployment can serve many resellers.
package transport

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	availabilityuc "rezdyLink/internal/modules/availability/application/usecase"
	bookingsdomain "rezdyLink/internal/modules/bookings/domain"
	bookingsuc "rezdyLink/internal/modules/bookings/application/usecase"
	"rezdyLink/internal/platform/metrics"
	"rezdyLink/internal/platform/rezdy"
	"rezdyLink/internal/platform/stream"
	"rezdyLink/internal/plugin"
	"rezdyLink/internal/shared/auth"
	"rezdyLink/internal/shared/httputil"
)

// Handler binds the plugin facade to echo routes.
type Handler struct {
	plugin *plugin.Plugin
	hub    *stream.Hub
	mapper *httputil.ErrorMapper
}

func NewHandler(p *plugin.Plugin, hub *stream.Hub) *Handler {
	mapper := httputil.NewErrorMapper().
		WithMapping(rezdy.ErrInvalidEndpoint, http.StatusBadRequest, "").
		WithMapping(auth.ErrSecretNotConfigured, http.StatusInternalServerError, "availability key signing is not configured").
		WithMapping(auth.ErrInvalidAvailabilityKey, http.StatusBadRequest, "").
		WithMapping(availabilityuc.ErrLengthMismatch, http.StatusBadRequest, "").
		WithMapping(availabilityuc.ErrMissingProductOption, http.StatusBadRequest, "").
		WithMapping(bookingsdomain.ErrMissingAvailabilityKey, http.StatusBadRequest, "").
		WithMapping(bookingsdomain.ErrMissingHolderName, http.StatusBadRequest, "").
		WithMapping(bookingsdomain.ErrMissingHolderSurname, http.StatusBadRequest, "").
		WithMapping(bookingsuc.ErrMissingBookingID, http.StatusBadRequest, "").
		WithMapping(bookingsuc.ErrMissingSearchParams, http.StatusBadRequest, "").
		WithMapping(bookingsuc.ErrSearchExhausted, http.StatusBadGateway, "").
		WithMapping(bookingsuc.ErrEmptyBookingResponse, http.StatusBadGateway, "").
		WithMapping(rezdy.ErrNotFound, http.StatusNotFound, "").
		WithDefault(http.StatusBadGateway, "upstream api error")
	return &Handler{plugin: p, hub: hub, mapper: mapper}
}

// Register mounts every route on the echo instance.
func (h *Handler) Register(e *echo.Echo) {
	api := e.Group("/api/v1")
	api.POST("/validate-token", h.validateToken)
	api.POST("/products/search", h.searchProducts)
	api.POST("/availability/search", h.searchAvailability)
	api.POST("/availability/calendar", h.availabilityCalendar)
	api.POST("/bookings", h.createBooking)
	api.POST("/bookings/search", h.searchBooking)
	api.POST("/bookings/cancel", h.cancelBooking)
	api.POST("/quotes/search", h.searchQuote)
	api.GET("/credential-template", h.credentialTemplate)

	e.GET("/healthz", h.health)
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))
	if h.hub != nil {
		e.GET("/ws/bookings", h.bookingStream)
	}
}

func (h *Handler) fail(c echo.Context, err error) error {
	info := h.mapper.Map(err)
	if info.Status >= http.StatusInternalServerError {
		slog.Error("operation failed", slog.String("path", c.Path()), slog.Any("error", err))
	}
	return c.JSON(info.Status, map[string]string{"error": info.Message})
}

type tokenRequest struct {
	Token plugin.Token `json:"token"`
}

func (h *Handler) validateToken(c echo.Context) error {
	var req tokenRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	valid := h.plugin.ValidateToken(c.Request().Context(), req.Token)
	return c.JSON(http.StatusOK, map[string]bool{"valid": valid})
}

func (h *Handler) searchProducts(c echo.Context) error {
	var req struct {
		Token plugin.Token `json:"token"`
		plugin.SearchProductsPayload
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	result, err := h.plugin.SearchProducts(c.Request().Context(), req.Token, req.SearchProductsPayload)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *Handler) searchAvailability(c echo.Context) error {
	var req struct {
		Token plugin.Token `json:"token"`
		plugin.AvailabilityPayload
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	result, err := h.plugin.SearchAvailability(c.Request().Context(), req.Token, req.AvailabilityPayload)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *Handler) availabilityCalendar(c echo.Context) error {
	var req struct {
		Token plugin.Token `json:"token"`
		plugin.AvailabilityPayload
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	result, err := h.plugin.AvailabilityCalendar(c.Request().Context(), req.Token, req.AvailabilityPayload)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *Handler) createBooking(c echo.Context) error {
	var req struct {
		Token plugin.Token `json:"token"`
		plugin.CreateBookingPayload
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	result, err := h.plugin.CreateBooking(c.Request().Context(), req.Token, req.CreateBookingPayload)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusCreated, result)
}

func (h *Handler) searchBooking(c echo.Context) error {
	var req struct {
		Token plugin.Token `json:"token"`
		plugin.SearchBookingPayload
		// "id" is tolerated as an alias for bookingId.
		ID string `json:"id,omitempty"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	payload := req.SearchBookingPayload
	if payload.BookingID == "" {
		payload.BookingID = req.ID
	}
	result, err := h.plugin.SearchBooking(c.Request().Context(), req.Token, payload)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *Handler) cancelBooking(c echo.Context) error {
	var req struct {
		Token plugin.Token `json:"token"`
		plugin.CancelBookingPayload
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	result, err := h.plugin.CancelBooking(c.Request().Context(), req.Token, req.CancelBookingPayload)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *Handler) searchQuote(c echo.Context) error {
	var req tokenRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	result, err := h.plugin.SearchQuote(c.Request().Context(), req.Token)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *Handler) credentialTemplate(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{"fields": plugin.CredentialTemplate()})
}

func (h *Handler) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) bookingStream(c echo.Context) error {
	conn, err := stream.Upgrade(c.Response(), c.Request())
	if err != nil {
		return err
	}
	stream.Attach(h.hub, conn)
	return nil
}
