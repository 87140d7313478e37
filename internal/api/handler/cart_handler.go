package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/modavn/storefront-api/internal/core/ports"
)

// CartHandler serves the authenticated cart endpoints. Ownership is always
// the token's identity; there is no way to address another user's cart.
type CartHandler struct {
	service ports.CartService
}

func NewCartHandler(service ports.CartService) *CartHandler {
	return &CartHandler{service: service}
}

type addToCartRequest struct {
	ProductID int64 `json:"productId" validate:"required,gt=0"`
	Quantity  int   `json:"quantity" validate:"required,min=1"`
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// Get handles GET /cart.
//
// @Summary      Get the current user's cart
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.Cart
// @Failure      401  {object}  map[string]string
// @Router       /cart [get]
func (h *CartHandler) Get(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	cart, err := h.service.Get(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cart)
}

// Add handles POST /cart/add. Returns 201 for a new line, 200 when the
// quantity was merged into an existing line.
//
// @Summary      Add a product to the cart
// @Tags         cart
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      addToCartRequest  true  "Product and quantity"
// @Success      200   {object}  messageResponse
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /cart/add [post]
func (h *CartHandler) Add(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req addToCartRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, err := h.service.Add(c.Request().Context(), userID, req.ProductID, req.Quantity)
	if err != nil {
		return err
	}

	if created {
		return c.JSON(http.StatusCreated, messageResponse{Message: "added to cart"})
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "cart quantity updated"})
}

// UpdateQuantity handles PUT /cart/update/:id.
//
// @Summary      Update a cart line's quantity
// @Tags         cart
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                    true  "Cart line id"
// @Param        body  body      updateQuantityRequest  true  "New quantity"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /cart/update/{id} [put]
func (h *CartHandler) UpdateQuantity(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	itemID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid cart item id")
	}

	var req updateQuantityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.UpdateQuantity(c.Request().Context(), userID, itemID, req.Quantity); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "quantity updated"})
}

// Remove handles DELETE /cart/remove/:id.
//
// @Summary      Remove a cart line
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Cart line id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  map[string]string
// @Router       /cart/remove/{id} [delete]
func (h *CartHandler) Remove(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	itemID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid cart item id")
	}

	if err := h.service.Remove(c.Request().Context(), userID, itemID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "removed from cart"})
}

// Clear handles DELETE /cart/clear.
//
// @Summary      Clear the cart
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  messageResponse
// @Router       /cart/clear [delete]
func (h *CartHandler) Clear(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	if err := h.service.Clear(c.Request().Context(), userID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "cart cleared"})
}
