package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"campusbarter/internal/errors"
	"campusbarter/internal/model"
	"campusbarter/internal/service"
)

// ItemHandler handles listing endpoints.
type ItemHandler struct {
	itemService service.ItemService
}

// NewItemHandler creates a new item handler.
func NewItemHandler(itemService service.ItemService) *ItemHandler {
	return &ItemHandler{itemService: itemService}
}

// ClaimRequest carries the new owning username for a claim.
type ClaimRequest struct {
	OwnerUsername string `json:"ownerUsername"`
}

// List godoc
// @Summary List all items
// @Tags items
// @Produce json
// @Success 200 {array} model.Item
// @Failure 500 {object} errors.ErrorResponse
// @Router /items [get]
func (h *ItemHandler) List(c echo.Context) error {
	items, err := h.itemService.List(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, items)
}

// Create godoc
// @Summary Create a new item
// @Tags items
// @Accept json
// @Produce json
// @Param item body model.Item true "Item payload"
// @Success 201 {object} model.Item
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /items [post]
func (h *ItemHandler) Create(c echo.Context) error {
	var item model.Item
	if err := c.Bind(&item); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_BODY",
		})
	}

	created, err := h.itemService.Create(c.Request().Context(), &item)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, created)
}

// Claim godoc
// @Summary Claim ownership of an item
// @Tags items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Item ID"
// @Param request body ClaimRequest true "New owner"
// @Success 200 {object} model.Item
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /items/{id}/claim [put]
func (h *ItemHandler) Claim(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, errors.ErrorResponse{
			Error: "item not found",
			Code:  "ITEM_NOT_FOUND",
		})
	}

	var req ClaimRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_BODY",
		})
	}

	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	item, err := h.itemService.Claim(c.Request().Context(), id, req.OwnerUsername, authHeader)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, item)
}

// Delete godoc
// @Summary Delete an item
// @Tags items
// @Security BearerAuth
// @Param id path string true "Item ID"
// @Success 204
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /items/{id} [delete]
func (h *ItemHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, errors.ErrorResponse{
			Error: "item not found",
			Code:  "ITEM_NOT_FOUND",
		})
	}

	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if err := h.itemService.Delete(c.Request().Context(), id, authHeader); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteAll godoc
// @Summary Delete all items
// @Tags items
// @Security BearerAuth
// @Success 204
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /items/all [delete]
func (h *ItemHandler) DeleteAll(c echo.Context) error {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if err := h.itemService.DeleteAll(c.Request().Context(), authHeader); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.NoContent(http.StatusNoContent)
}
