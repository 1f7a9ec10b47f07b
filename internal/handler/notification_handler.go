package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sawa-travel/marketplace/internal/middleware"
	"github.com/sawa-travel/marketplace/internal/service"
)

type NotificationHandler struct {
	notificationSvc service.NotificationService
}

func NewNotificationHandler(notificationSvc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationSvc: notificationSvc}
}

func (h *NotificationHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/notifications", h.ListNotifications)
	g.POST("/notifications/:id/read", h.MarkRead)
}

func (h *NotificationHandler) ListNotifications(c echo.Context) error {
	user := middleware.CurrentUser(c)
	unreadOnly := c.QueryParam("unread") == "true"

	notifications, err := h.notificationSvc.List(c.Request().Context(), user.Email, unreadOnly)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, notifications)
}

func (h *NotificationHandler) MarkRead(c echo.Context) error {
	user := middleware.CurrentUser(c)
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.notificationSvc.MarkRead(c.Request().Context(), id, user.Email); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
