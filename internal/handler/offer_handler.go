package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sawa-travel/marketplace/internal/dto"
	"github.com/sawa-travel/marketplace/internal/middleware"
	"github.com/sawa-travel/marketplace/internal/models"
	"github.com/sawa-travel/marketplace/internal/service"
)

type OfferHandler struct {
	offerSvc service.OfferService
}

func NewOfferHandler(offerSvc service.OfferService) *OfferHandler {
	return &OfferHandler{offerSvc: offerSvc}
}

func (h *OfferHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/conversations/:id/offers", h.SubmitOffer)
	g.POST("/offers/:id/accept", h.AcceptOffer)
	g.POST("/offers/:id/decline", h.DeclineOffer)
	g.POST("/bookings/:id/pass", h.PassOnBooking)
}

func (h *OfferHandler) SubmitOffer(c echo.Context) error {
	user := middleware.CurrentUser(c)
	conversationID, err := pathID(c)
	if err != nil {
		return err
	}

	var req dto.SubmitOfferRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	offerType := models.OfferType(req.OfferType)
	if offerType != models.OfferTypeService && offerType != models.OfferTypeRental {
		return echo.NewHTTPError(http.StatusBadRequest, "offer_type must be service or rental")
	}

	offer, err := h.offerSvc.SubmitOffer(c.Request().Context(), user, service.SubmitOfferInput{
		ConversationID: conversationID,
		OfferType:      offerType,
		PriceBase:      req.PriceBase,
		Inclusions:     req.Inclusions,
		RentalDetails:  req.RentalDetails,
		ExpiryDate:     req.ExpiryDate,
	})
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusCreated, dto.ToOfferResponse(offer))
}

func (h *OfferHandler) AcceptOffer(c echo.Context) error {
	user := middleware.CurrentUser(c)
	offerID, err := pathID(c)
	if err != nil {
		return err
	}

	offer, err := h.offerSvc.AcceptOffer(c.Request().Context(), user.Email, offerID)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.ToOfferResponse(offer))
}

func (h *OfferHandler) DeclineOffer(c echo.Context) error {
	user := middleware.CurrentUser(c)
	offerID, err := pathID(c)
	if err != nil {
		return err
	}

	offer, err := h.offerSvc.DeclineOffer(c.Request().Context(), user.Email, offerID)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.ToOfferResponse(offer))
}

func (h *OfferHandler) PassOnBooking(c echo.Context) error {
	user := middleware.CurrentUser(c)
	bookingID, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.offerSvc.PassOnBooking(c.Request().Context(), user, bookingID); err != nil {
		return toHTTPError(err)
	}

	return c.NoContent(http.StatusNoContent)
}
