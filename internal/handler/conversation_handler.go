package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sawa-travel/marketplace/internal/dto"
	"github.com/sawa-travel/marketplace/internal/middleware"
	"github.com/sawa-travel/marketplace/internal/service"
)

type ConversationHandler struct {
	conversationSvc service.ConversationService
}

func NewConversationHandler(conversationSvc service.ConversationService) *ConversationHandler {
	return &ConversationHandler{conversationSvc: conversationSvc}
}

func (h *ConversationHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/bookings/:id/conversations", h.CreateConversation)
	g.GET("/bookings/:id/conversations", h.ListConversations)
	g.GET("/conversations/:id", h.GetConversation)
	g.POST("/conversations/:id/messages", h.SendMessage)
	g.GET("/conversations/:id/messages", h.ListMessages)
	g.POST("/conversations/:id/read", h.MarkRead)
	g.POST("/conversations/:id/close", h.CloseConversation)
}

func (h *ConversationHandler) CreateConversation(c echo.Context) error {
	user := middleware.CurrentUser(c)
	bookingID, err := pathID(c)
	if err != nil {
		return err
	}

	var req dto.CreateConversationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	conversation, err := h.conversationSvc.CreateConversation(c.Request().Context(), user.Email, bookingID, req.HostEmails)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusCreated, conversation)
}

func (h *ConversationHandler) ListConversations(c echo.Context) error {
	user := middleware.CurrentUser(c)
	bookingID, err := pathID(c)
	if err != nil {
		return err
	}

	conversations, err := h.conversationSvc.ListConversations(c.Request().Context(), user.Email, bookingID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, conversations)
}

func (h *ConversationHandler) GetConversation(c echo.Context) error {
	user := middleware.CurrentUser(c)
	conversationID, err := pathID(c)
	if err != nil {
		return err
	}

	conversation, err := h.conversationSvc.GetConversation(c.Request().Context(), user.Email, conversationID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, conversation)
}

func (h *ConversationHandler) SendMessage(c echo.Context) error {
	user := middleware.CurrentUser(c)
	conversationID, err := pathID(c)
	if err != nil {
		return err
	}

	var req dto.SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	message, err := h.conversationSvc.SendMessage(c.Request().Context(), user.Email, service.SendMessageInput{
		ConversationID: conversationID,
		ClientKey:      req.ClientKey,
		Body:           req.Body,
		SourceLang:     req.SourceLang,
		Attachments:    req.Attachments,
	})
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusCreated, message)
}

func (h *ConversationHandler) ListMessages(c echo.Context) error {
	user := middleware.CurrentUser(c)
	conversationID, err := pathID(c)
	if err != nil {
		return err
	}

	messages, err := h.conversationSvc.ListMessages(c.Request().Context(), user.Email, conversationID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, messages)
}

func (h *ConversationHandler) CloseConversation(c echo.Context) error {
	user := middleware.CurrentUser(c)
	conversationID, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.conversationSvc.CloseConversation(c.Request().Context(), user.Email, conversationID); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ConversationHandler) MarkRead(c echo.Context) error {
	user := middleware.CurrentUser(c)
	conversationID, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.conversationSvc.MarkRead(c.Request().Context(), user.Email, conversationID); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
