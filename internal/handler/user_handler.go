package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/sawa-travel/marketplace/internal/middleware"
	"github.com/sawa-travel/marketplace/internal/repository"
)

type UserHandler struct {
	userRepo repository.UserRepository
}

func NewUserHandler(userRepo repository.UserRepository) *UserHandler {
	return &UserHandler{userRepo: userRepo}
}

func (h *UserHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/me", h.Me)
}

// Me returns the caller's profile record, provisioning it from the token
// claims on first sight. Identity lives in the token; this row only anchors
// foreign references and host categorization.
func (h *UserHandler) Me(c echo.Context) error {
	claims := middleware.CurrentUser(c)

	user, err := h.userRepo.FindByEmail(c.Request().Context(), claims.Email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = claims
		if err := h.userRepo.Create(c.Request().Context(), user); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	} else if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, user)
}
