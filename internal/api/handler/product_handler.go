package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/modavn/storefront-api/internal/core/domain"
	"github.com/modavn/storefront-api/internal/core/ports"
)

// ProductHandler serves the public catalog browsing endpoints.
type ProductHandler struct {
	service ports.ProductService
}

func NewProductHandler(service ports.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

type productsResponse struct {
	Products []*domain.Product `json:"products"`
}

type productResponse struct {
	Product *domain.Product `json:"product"`
}

type categoriesResponse struct {
	Categories []string `json:"categories"`
}

// List handles GET /products.
//
// @Summary      List catalog products
// @Tags         products
// @Produce      json
// @Success      200  {object}  productsResponse
// @Router       /products [get]
func (h *ProductHandler) List(c echo.Context) error {
	products, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	if products == nil {
		products = []*domain.Product{}
	}
	return c.JSON(http.StatusOK, productsResponse{Products: products})
}

// Get handles GET /products/:id.
//
// @Summary      Get a product by id
// @Tags         products
// @Produce      json
// @Param        id   path      int  true  "Product id"
// @Success      200  {object}  productResponse
// @Failure      404  {object}  map[string]string
// @Router       /products/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	product, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, productResponse{Product: product})
}

// Categories handles GET /products/categories/list.
//
// @Summary      List distinct product categories
// @Tags         products
// @Produce      json
// @Success      200  {object}  categoriesResponse
// @Router       /products/categories/list [get]
func (h *ProductHandler) Categories(c echo.Context) error {
	categories, err := h.service.Categories(c.Request().Context())
	if err != nil {
		return err
	}
	if categories == nil {
		categories = []string{}
	}
	return c.JSON(http.StatusOK, categoriesResponse{Categories: categories})
}
