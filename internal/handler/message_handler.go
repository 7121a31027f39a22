package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"campusbarter/internal/errors"
	"campusbarter/internal/model"
	"campusbarter/internal/service"
)

// MessageHandler handles message endpoints.
type MessageHandler struct {
	messageService service.MessageService
}

// NewMessageHandler creates a new message handler.
func NewMessageHandler(messageService service.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

// List godoc
// @Summary List messages between two users
// @Tags messages
// @Produce json
// @Param user1 query string true "First username"
// @Param user2 query string true "Second username"
// @Param itemId query string false "Scope to one item"
// @Success 200 {array} model.Message
// @Failure 500 {object} errors.ErrorResponse
// @Router /messages [get]
func (h *MessageHandler) List(c echo.Context) error {
	user1 := c.QueryParam("user1")
	user2 := c.QueryParam("user2")
	itemID := c.QueryParam("itemId")

	msgs, err := h.messageService.ListBetween(c.Request().Context(), user1, user2, itemID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, msgs)
}

// Send godoc
// @Summary Send a message
// @Tags messages
// @Accept json
// @Produce json
// @Param message body model.Message true "Message payload"
// @Success 200 {object} model.Message
// @Failure 400 {object} errors.ErrorResponse
// @Router /messages [post]
func (h *MessageHandler) Send(c echo.Context) error {
	var msg model.Message
	if err := c.Bind(&msg); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_BODY",
		})
	}

	saved, err := h.messageService.Send(c.Request().Context(), &msg)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, saved)
}

// Conversations godoc
// @Summary List conversation summaries for a user
// @Tags messages
// @Produce json
// @Param username query string true "Viewing username"
// @Success 200 {array} model.ConversationSummary
// @Failure 500 {object} errors.ErrorResponse
// @Router /messages/conversations [get]
func (h *MessageHandler) Conversations(c echo.Context) error {
	username := c.QueryParam("username")

	summaries, err := h.messageService.Conversations(c.Request().Context(), username)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, summaries)
}

// MarkRead godoc
// @Summary Mark messages from sender to receiver as read
// @Tags messages
// @Produce plain
// @Param receiver query string true "Receiving username"
// @Param sender query string true "Sending username"
// @Success 200 {string} string "Messages marked as read"
// @Failure 500 {object} errors.ErrorResponse
// @Router /messages/mark-read [put]
func (h *MessageHandler) MarkRead(c echo.Context) error {
	receiver := c.QueryParam("receiver")
	sender := c.QueryParam("sender")

	if err := h.messageService.MarkRead(c.Request().Context(), receiver, sender); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.String(http.StatusOK, "Messages marked as read")
}
