package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sawa-travel/marketplace/internal/dto"
	"github.com/sawa-travel/marketplace/internal/service"
)

type PlannerHandler struct {
	plannerSvc service.PlannerService
}

func NewPlannerHandler(plannerSvc service.PlannerService) *PlannerHandler {
	return &PlannerHandler{plannerSvc: plannerSvc}
}

func (h *PlannerHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/planner/itinerary", h.GenerateItinerary)
}

func (h *PlannerHandler) GenerateItinerary(c echo.Context) error {
	var req dto.PlanItineraryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.CityName == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "city_name is required")
	}
	if !req.EndDate.After(req.StartDate) {
		return echo.NewHTTPError(http.StatusBadRequest, "end_date must be after start_date")
	}

	result, err := h.plannerSvc.GenerateItinerary(c.Request().Context(), service.PlanRequest{
		CityName:  req.CityName,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Adults:    req.Adults,
		Children:  req.Children,
		Interests: req.Interests,
	})
	if err != nil {
		// Transport failure, not a data-format problem; the extractor's
		// fallback already absorbed those.
		return echo.NewHTTPError(http.StatusBadGateway, "itinerary generation unavailable: "+err.Error())
	}

	return c.JSON(http.StatusOK, result)
}
