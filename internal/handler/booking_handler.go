package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/sawa-travel/marketplace/internal/dto"
	"github.com/sawa-travel/marketplace/internal/middleware"
	"github.com/sawa-travel/marketplace/internal/models"
	"github.com/sawa-travel/marketplace/internal/service"
)

type BookingHandler struct {
	bookingSvc service.BookingService
	offerSvc   service.OfferService
}

func NewBookingHandler(bookingSvc service.BookingService, offerSvc service.OfferService) *BookingHandler {
	return &BookingHandler{bookingSvc: bookingSvc, offerSvc: offerSvc}
}

func (h *BookingHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/bookings", h.CreateBooking)
	g.GET("/bookings", h.ListBookings)
	g.GET("/bookings/:id", h.GetBooking)
	g.DELETE("/bookings/:id", h.CancelBooking)
	g.POST("/bookings/:id/complete", h.CompleteBooking)
	g.GET("/bookings/:id/offers", h.ListOffers)
	g.GET("/bookings/:id/hosts", h.HostResponses)
}

func (h *BookingHandler) CreateBooking(c echo.Context) error {
	user := middleware.CurrentUser(c)

	var req dto.CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.CityID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "city_id is required")
	}

	booking, err := h.bookingSvc.CreateBooking(c.Request().Context(), user.Email, service.CreateBookingInput{
		CityID:     req.CityID,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		Adults:     req.Adults,
		Children:   req.Children,
		ServiceIDs: req.ServiceIDs,
		Notes:      req.Notes,
	})
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusCreated, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) GetBooking(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	booking, err := h.bookingSvc.GetBooking(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) ListBookings(c echo.Context) error {
	user := middleware.CurrentUser(c)

	var status *models.BookingStatus
	if s := c.QueryParam("status"); s != "" {
		bs := models.BookingStatus(s)
		status = &bs
	}

	bookings, err := h.bookingSvc.ListBookings(c.Request().Context(), user.Email, status)
	if err != nil {
		return toHTTPError(err)
	}

	resp := make([]dto.BookingResponse, len(bookings))
	for i, b := range bookings {
		resp[i] = dto.ToBookingResponse(&b)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *BookingHandler) CancelBooking(c echo.Context) error {
	user := middleware.CurrentUser(c)
	id, err := pathID(c)
	if err != nil {
		return err
	}

	booking, err := h.bookingSvc.CancelBooking(c.Request().Context(), user.Email, id)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) CompleteBooking(c echo.Context) error {
	user := middleware.CurrentUser(c)
	id, err := pathID(c)
	if err != nil {
		return err
	}

	booking, err := h.bookingSvc.CompleteBooking(c.Request().Context(), user.Email, id)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) ListOffers(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	offers, err := h.offerSvc.ListOffers(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}

	resp := make([]dto.OfferResponse, len(offers))
	for i, o := range offers {
		resp[i] = dto.ToOfferResponse(&o)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *BookingHandler) HostResponses(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	responses, err := h.bookingSvc.HostResponses(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, responses)
}

func pathID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}
