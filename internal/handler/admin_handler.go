package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/railbook/railbook/internal/dto"
	"github.com/railbook/railbook/internal/repository"
	"github.com/railbook/railbook/internal/service"
)

// AdminHandler exposes the aggregate views the admin dashboard reads.
type AdminHandler struct {
	userRepo repository.UserRepository
	svc      service.ReservationService
}

func NewAdminHandler(userRepo repository.UserRepository, svc service.ReservationService) *AdminHandler {
	return &AdminHandler{userRepo: userRepo, svc: svc}
}

func (h *AdminHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/users", h.ListUsers)
	g.GET("/bookings", h.ListBookings)
}

func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.userRepo.ListAll(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := make([]dto.UserResponse, len(users))
	for i := range users {
		resp[i] = dto.ToUserResponse(&users[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *AdminHandler) ListBookings(c echo.Context) error {
	bookings, err := h.svc.ListAllBookings(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := make([]dto.BookingResponse, len(bookings))
	for i := range bookings {
		resp[i] = dto.ToBookingResponse(&bookings[i])
	}
	return c.JSON(http.StatusOK, resp)
}
