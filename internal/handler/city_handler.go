package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sawa-travel/marketplace/internal/repository"
)

type CityHandler struct {
	cityRepo repository.CityRepository
}

func NewCityHandler(cityRepo repository.CityRepository) *CityHandler {
	return &CityHandler{cityRepo: cityRepo}
}

// City lookups are public: travelers search destinations before signing in.
func (h *CityHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/v1/cities", h.ListCities)
	e.GET("/api/v1/cities/search", h.SearchCities)
	e.GET("/api/v1/cities/:id", h.GetCity)
}

func (h *CityHandler) ListCities(c echo.Context) error {
	cities, err := h.cityRepo.FindAll(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, cities)
}

func (h *CityHandler) GetCity(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	city, err := h.cityRepo.FindByID(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "city not found")
	}
	return c.JSON(http.StatusOK, city)
}

func (h *CityHandler) SearchCities(c echo.Context) error {
	q := c.QueryParam("q")
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "q is required")
	}

	cities, err := h.cityRepo.SearchByName(c.Request().Context(), q)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, cities)
}
