package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"shopapi/internal/errors"
	"shopapi/internal/service"
)

// ProductHandler bundles product HTTP handlers.
type ProductHandler struct {
	svc service.ProductService
}

// NewProductHandler creates a handler layer over the product service.
func NewProductHandler(svc service.ProductService) *ProductHandler {
	return &ProductHandler{svc: svc}
}

// ProductRequest represents a product create or full-update payload.
type ProductRequest struct {
	Title    string `json:"title" validate:"required"`
	Text     string `json:"text" validate:"required"`
	State    string `json:"state" validate:"required"`
	Category string `json:"category" validate:"required"`
}

// Create godoc
// @Summary Create a product
// @Tags products
// @Accept json
// @Produce json
// @Security BasicAuth
// @Param request body ProductRequest true "Product data"
// @Success 200 {object} errors.MessageResponse
// @Failure 400 {object} errors.MessageResponse
// @Failure 409 {object} errors.MessageResponse
// @Router /products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	_, err := h.svc.Create(c.Request().Context(), productInput(req))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, errors.MessageResponse{Message: "Product was successfully created"})
}

// GetByID godoc
// @Summary Get a product by id
// @Tags products
// @Produce json
// @Security BasicAuth
// @Param id path int true "Product ID"
// @Success 200 {object} model.Product
// @Failure 404 {object} errors.ValidationResponse
// @Router /products/{id} [get]
func (h *ProductHandler) GetByID(c echo.Context) error {
	id, err := parseID(c, errors.ErrProductNotFound)
	if err != nil {
		return respondError(c, err)
	}
	product, err := h.svc.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, product)
}

// List godoc
// @Summary List all products
// @Tags products
// @Produce json
// @Success 200 {array} model.Product
// @Router /products [get]
func (h *ProductHandler) List(c echo.Context) error {
	products, err := h.svc.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, products)
}

// UpdateByID godoc
// @Summary Update a product by id
// @Tags products
// @Accept json
// @Produce json
// @Security BasicAuth
// @Param id path int true "Product ID"
// @Param request body ProductRequest true "Product data"
// @Success 200 {object} errors.MessageResponse
// @Failure 404 {object} errors.ValidationResponse
// @Failure 409 {object} errors.MessageResponse
// @Router /products/{id} [put]
func (h *ProductHandler) UpdateByID(c echo.Context) error {
	id, err := parseID(c, errors.ErrProductNotFound)
	if err != nil {
		return respondError(c, err)
	}

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if _, err := h.svc.UpdateByID(c.Request().Context(), id, productInput(req)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, errors.MessageResponse{Message: "Product was successfully updated"})
}

// DeleteByID godoc
// @Summary Delete a product by id
// @Tags products
// @Produce json
// @Security BasicAuth
// @Param id path int true "Product ID"
// @Success 200 {object} model.Product
// @Failure 404 {object} errors.ValidationResponse
// @Router /products/{id} [delete]
func (h *ProductHandler) DeleteByID(c echo.Context) error {
	id, err := parseID(c, errors.ErrProductNotFound)
	if err != nil {
		return respondError(c, err)
	}
	product, err := h.svc.DeleteByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, product)
}

func productInput(req ProductRequest) service.ProductInput {
	return service.ProductInput{
		Title:    req.Title,
		Text:     req.Text,
		State:    req.State,
		Category: req.Category,
	}
}
