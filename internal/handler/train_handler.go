package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/railbook/railbook/internal/dto"
	"github.com/railbook/railbook/internal/models"
	"github.com/railbook/railbook/internal/service"
)

type TrainHandler struct {
	inventory    service.InventoryService
	availability service.AvailabilityService
}

func NewTrainHandler(inventory service.InventoryService, availability service.AvailabilityService) *TrainHandler {
	return &TrainHandler{inventory: inventory, availability: availability}
}

// RegisterPublicRoutes registers the unauthenticated read side.
func (h *TrainHandler) RegisterPublicRoutes(g *echo.Group) {
	g.GET("", h.ListTrains)
	g.GET("/search", h.SearchTrains)
}

// RegisterAdminRoutes registers inventory management on an admin group.
func (h *TrainHandler) RegisterAdminRoutes(g *echo.Group) {
	g.POST("", h.CreateTrain)
	g.POST("/:id/classes", h.AddFareClass)
	g.POST("/:id/classes/adjust", h.AdjustSeats)
}

func (h *TrainHandler) SearchTrains(c echo.Context) error {
	origin := c.QueryParam("origin")
	destination := c.QueryParam("destination")
	date := strings.TrimSpace(c.QueryParam("date"))

	if _, err := time.Parse("2006-01-02", date); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "date must be YYYY-MM-DD")
	}

	trains, err := h.availability.Search(c.Request().Context(), origin, destination, date)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := make([]dto.TrainAvailability, len(trains))
	for i := range trains {
		resp[i] = dto.ToTrainAvailability(&trains[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *TrainHandler) ListTrains(c echo.Context) error {
	trains, err := h.inventory.ListTrains(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := make([]dto.TrainAvailability, len(trains))
	for i := range trains {
		resp[i] = dto.ToTrainAvailability(&trains[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *TrainHandler) CreateTrain(c echo.Context) error {
	var req dto.CreateTrainRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	train := &models.Train{
		TrainNumber:   req.TrainNumber,
		TrainName:     req.TrainName,
		Origin:        req.Origin,
		Destination:   req.Destination,
		Date:          req.Date,
		DepartureTime: req.DepartureTime,
		ArrivalTime:   req.ArrivalTime,
	}
	classes := make([]models.FareClass, len(req.Classes))
	for i, fc := range req.Classes {
		classes[i] = models.FareClass{
			Class:          fc.Class,
			Quota:          fc.Quota,
			SeatsAvailable: fc.SeatsAvailable,
			Price:          fc.Price,
		}
	}

	if err := h.inventory.CreateTrain(c.Request().Context(), train, classes); err != nil {
		switch {
		case errors.Is(err, service.ErrDuplicateTrainNumber):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrDuplicateClassQuota):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrInvalidClass),
			errors.Is(err, service.ErrInvalidQuota),
			errors.Is(err, service.ErrInvalidSeatCount),
			errors.Is(err, service.ErrInvalidPrice):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusCreated, dto.ToTrainAvailability(train))
}

func (h *TrainHandler) AddFareClass(c echo.Context) error {
	trainID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid train id")
	}

	var req dto.AddFareClassRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	fc, err := h.inventory.AddFareClass(c.Request().Context(), uint(trainID), req.Class, req.Quota, req.SeatsAvailable, req.Price)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTrainNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrDuplicateClassQuota):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrInvalidClass),
			errors.Is(err, service.ErrInvalidQuota),
			errors.Is(err, service.ErrInvalidSeatCount),
			errors.Is(err, service.ErrInvalidPrice):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusCreated, dto.ToFareClassResponse(fc))
}

func (h *TrainHandler) AdjustSeats(c echo.Context) error {
	trainID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid train id")
	}

	var req dto.AdjustSeatsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	seats, err := h.inventory.AdjustSeats(c.Request().Context(), uint(trainID), req.Class, req.Quota, req.Delta)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrClassQuotaNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrOversell):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusOK, dto.SeatAdjustmentResponse{
		TrainID:        uint(trainID),
		Class:          req.Class,
		Quota:          req.Quota,
		SeatsAvailable: seats,
	})
}
