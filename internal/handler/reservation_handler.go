package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/Eursukkul/reservation-service/internal/dto"
	"github.com/Eursukkul/reservation-service/internal/models"
	"github.com/Eursukkul/reservation-service/internal/sequence"
	"github.com/Eursukkul/reservation-service/internal/service"
	"github.com/labstack/echo/v4"
	"gorm.io/datatypes"
)

const (
	HeaderTenantID = "X-Tenant-ID"

	defaultListLimit = 50
	maxListLimit     = 500
	maxPreviewCount  = 100
)

type ReservationHandler struct {
	svc service.ReservationService
}

func NewReservationHandler(svc service.ReservationService) *ReservationHandler {
	return &ReservationHandler{svc: svc}
}

func (h *ReservationHandler) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	locations := api.Group("/locations")
	locations.POST("/:id/reservations", h.CreateReservations)
	locations.GET("/:id/reservations", h.ListReservations)
	locations.GET("/:id/reservation-numbers/next", h.NextNumbers)

	api.GET("/reservations/:id", h.GetReservation)
	api.GET("/booking-groups/:id", h.GetBookingGroup)
}

func tenantID(c echo.Context) (string, error) {
	t := strings.TrimSpace(c.Request().Header.Get(HeaderTenantID))
	if t == "" {
		return "", echo.NewHTTPError(http.StatusBadRequest, HeaderTenantID+" header is required")
	}
	return t, nil
}

func (h *ReservationHandler) CreateReservations(c echo.Context) error {
	tenant, err := tenantID(c)
	if err != nil {
		return err
	}
	locationID := strings.TrimSpace(c.Param("id"))
	if locationID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid location id")
	}

	var req dto.CreateReservationsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	records := make([]models.Reservation, len(req.Rooms))
	for i, room := range req.Rooms {
		records[i] = models.Reservation{
			RoomID:      room.RoomID,
			GuestName:   room.GuestName,
			GuestEmail:  room.GuestEmail,
			CheckIn:     room.CheckIn,
			CheckOut:    room.CheckOut,
			TotalAmount: room.TotalAmount,
		}
		if len(room.GuestDetails) > 0 {
			records[i].GuestDetails = datatypes.JSON(room.GuestDetails)
		}
	}

	res, err := h.svc.CreateReservations(c.Request().Context(), tenant, locationID, records)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoRooms), errors.Is(err, service.ErrMissingScope):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrCreateFailed):
			return echo.NewHTTPError(http.StatusInternalServerError, service.ErrCreateFailed.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusCreated, dto.ToCreateReservationsResponse(res))
}

func (h *ReservationHandler) NextNumbers(c echo.Context) error {
	tenant, err := tenantID(c)
	if err != nil {
		return err
	}

	count := 1
	if s := c.QueryParam("count"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > maxPreviewCount {
			return echo.NewHTTPError(http.StatusBadRequest, "count must be between 1 and 100")
		}
		count = n
	}

	block, err := h.svc.PreviewNumbers(c.Request().Context(), tenant, c.Param("id"), count)
	if err != nil {
		if errors.Is(err, sequence.ErrInvalidCount) || errors.Is(err, service.ErrMissingScope) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, dto.ToNextNumbersResponse(block))
}

func (h *ReservationHandler) ListReservations(c echo.Context) error {
	tenant, err := tenantID(c)
	if err != nil {
		return err
	}

	limit := defaultListLimit
	if s := c.QueryParam("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid limit")
		}
		limit = min(n, maxListLimit)
	}

	reservations, err := h.svc.ListByLocation(c.Request().Context(), tenant, c.Param("id"), limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, dto.ToReservationResponses(reservations))
}

func (h *ReservationHandler) GetReservation(c echo.Context) error {
	tenant, err := tenantID(c)
	if err != nil {
		return err
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid reservation id")
	}

	res, err := h.svc.GetReservation(c.Request().Context(), tenant, uint(id))
	if err != nil {
		if errors.Is(err, service.ErrReservationNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, dto.ToReservationResponse(res))
}

func (h *ReservationHandler) GetBookingGroup(c echo.Context) error {
	tenant, err := tenantID(c)
	if err != nil {
		return err
	}

	reservations, err := h.svc.ListBookingGroup(c.Request().Context(), tenant, c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if len(reservations) == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "booking group not found")
	}

	return c.JSON(http.StatusOK, dto.ToReservationResponses(reservations))
}
