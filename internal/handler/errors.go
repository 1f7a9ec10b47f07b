package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sawa-travel/marketplace/internal/service"
)

// toHTTPError maps service sentinel errors onto HTTP status codes. Anything
// unmapped is a 500.
func toHTTPError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, service.ErrBookingNotFound),
		errors.Is(err, service.ErrCityNotFound),
		errors.Is(err, service.ErrOfferNotFound),
		errors.Is(err, service.ErrConversationNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())

	case errors.Is(err, service.ErrNotBookingOwner),
		errors.Is(err, service.ErrNotParticipant),
		errors.Is(err, service.ErrNotAHost):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())

	case errors.Is(err, service.ErrBookingTaken),
		errors.Is(err, service.ErrOfferNotPending),
		errors.Is(err, service.ErrOfferAlreadyStands),
		errors.Is(err, service.ErrOfferExpired),
		errors.Is(err, service.ErrBookingNotActive),
		errors.Is(err, service.ErrBookingNotPending),
		errors.Is(err, service.ErrConversationClosed):
		return echo.NewHTTPError(http.StatusConflict, err.Error())

	case errors.Is(err, service.ErrInvalidDateRange),
		errors.Is(err, service.ErrInvalidPrice),
		errors.Is(err, service.ErrEmptyMessage),
		errors.Is(err, service.ErrInvalidClientKey),
		errors.Is(err, service.ErrNoHosts):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())

	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
