package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/railbook/railbook/internal/dto"
	"github.com/railbook/railbook/internal/middleware"
	"github.com/railbook/railbook/internal/service"
)

type PassengerHandler struct {
	svc service.PassengerService
}

func NewPassengerHandler(svc service.PassengerService) *PassengerHandler {
	return &PassengerHandler{svc: svc}
}

func (h *PassengerHandler) RegisterRoutes(g *echo.Group) {
	g.POST("", h.AddPassenger)
	g.GET("", h.ListPassengers)
	g.GET("/:id", h.GetPassenger)
}

func (h *PassengerHandler) AddPassenger(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	var req dto.AddPassengerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	passenger, err := h.svc.AddPassenger(c.Request().Context(), userID, req.Name, req.Age, req.Gender, req.BerthPreference)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyPassengerName),
			errors.Is(err, service.ErrInvalidPassengerAge),
			errors.Is(err, service.ErrInvalidGender):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusCreated, passenger)
}

func (h *PassengerHandler) ListPassengers(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	passengers, err := h.svc.ListPassengers(c.Request().Context(), userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, passengers)
}

func (h *PassengerHandler) GetPassenger(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid passenger id")
	}

	passenger, err := h.svc.GetPassenger(c.Request().Context(), uint(id), userID)
	if err != nil {
		if errors.Is(err, service.ErrPassengerNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, passenger)
}
