package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/invensys/inventory-api/internal/core/domain"
	"github.com/invensys/inventory-api/internal/core/ports"
)

// ProductHandler handles HTTP requests for catalog operations.
type ProductHandler struct {
	service ports.ProductService
}

func NewProductHandler(service ports.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

type productRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"gte=0"`
	Quantity    int     `json:"quantity" validate:"gte=0"`
}

type productResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

type productPageResponse struct {
	Items      []productResponse `json:"items"`
	Page       int               `json:"page"`
	Size       int               `json:"size"`
	TotalItems int64             `json:"total_items"`
	TotalPages int               `json:"total_pages"`
}

func toProductResponse(p *domain.Product) productResponse {
	return productResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Quantity:    p.Quantity,
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   p.UpdatedAt.Format(time.RFC3339),
	}
}

// Create handles POST /products.
//
// @Summary      Create a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      productRequest  true  "Product details"
// @Success      201   {object}  productResponse
// @Failure      400   {object}  map[string]string
// @Router       /products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	product, err := h.service.Create(c.Request().Context(), ports.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Quantity:    req.Quantity,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toProductResponse(product))
}

// Get handles GET /products/:id.
//
// @Summary      Get a product by id
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  productResponse
// @Failure      404  {object}  map[string]string
// @Router       /products/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	product, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProductResponse(product))
}

// Update handles PUT /products/:id.
//
// @Summary      Update a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Product id"
// @Param        body  body      productRequest  true  "Product details"
// @Success      200   {object}  productResponse
// @Failure      404   {object}  map[string]string
// @Router       /products/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	product, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Quantity:    req.Quantity,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toProductResponse(product))
}

// Delete handles DELETE /products/:id. Stored images go with the product.
//
// @Summary      Delete a product
// @Tags         products
// @Security     BearerAuth
// @Param        id  path  string  true  "Product id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// List handles GET /products with page/size pagination and an optional
// case-insensitive name filter.
//
// @Summary      List products
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        page  query     int     false  "Page number (1-based)"
// @Param        size  query     int     false  "Page size"
// @Param        name  query     string  false  "Name filter"
// @Success      200   {object}  productPageResponse
// @Router       /products [get]
func (h *ProductHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("size"))

	result, err := h.service.List(c.Request().Context(), page, size, c.QueryParam("name"))
	if err != nil {
		return err
	}

	items := make([]productResponse, 0, len(result.Items))
	for i := range result.Items {
		items = append(items, toProductResponse(&result.Items[i]))
	}

	return c.JSON(http.StatusOK, productPageResponse{
		Items:      items,
		Page:       result.Page,
		Size:       result.Size,
		TotalItems: result.TotalItems,
		TotalPages: result.TotalPages,
	})
}
