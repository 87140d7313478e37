package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/modavn/storefront-api/internal/core/domain"
	"github.com/modavn/storefront-api/internal/core/ports"
)

// OrderHandler serves the authenticated order endpoints.
type OrderHandler struct {
	service ports.OrderService
}

func NewOrderHandler(service ports.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

type orderItemRequest struct {
	ProductID int64   `json:"productId" validate:"required,gt=0"`
	Name      string  `json:"name" validate:"required"`
	Price     float64 `json:"price" validate:"gte=0"`
	Quantity  int     `json:"quantity" validate:"required,min=1"`
}

type createOrderRequest struct {
	Items []orderItemRequest `json:"items" validate:"required,min=1,dive"`
	Total float64            `json:"total" validate:"gte=0"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending processing shipped delivered cancelled"`
}

type orderResponse struct {
	Order *domain.Order `json:"order"`
}

type ordersResponse struct {
	Orders []*domain.Order `json:"orders"`
}

// Create handles POST /orders. Placement clears the cart: from the user's
// perspective the cart moves into the order.
//
// @Summary      Place an order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createOrderRequest  true  "Order items and total"
// @Success      201   {object}  orderResponse
// @Failure      400   {object}  map[string]string
// @Router       /orders [post]
func (h *OrderHandler) Create(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	items := make([]domain.OrderItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, domain.OrderItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     it.Price,
			Quantity:  it.Quantity,
		})
	}

	order, err := h.service.Create(c.Request().Context(), userID, items, req.Total)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, orderResponse{Order: order})
}

// List handles GET /orders: the caller's own orders, newest first.
//
// @Summary      List the current user's orders
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ordersResponse
// @Router       /orders [get]
func (h *OrderHandler) List(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	orders, err := h.service.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	if orders == nil {
		orders = []*domain.Order{}
	}
	return c.JSON(http.StatusOK, ordersResponse{Orders: orders})
}

// Get handles GET /orders/:id, scoped to the caller.
//
// @Summary      Get one of the current user's orders
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Order id"
// @Success      200  {object}  orderResponse
// @Failure      404  {object}  map[string]string
// @Router       /orders/{id} [get]
func (h *OrderHandler) Get(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	order, err := h.service.Get(c.Request().Context(), userID, orderID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orderResponse{Order: order})
}

// UpdateStatus handles PUT /orders/:id/status. Admin only; the role gate runs
// before this handler.
//
// @Summary      Update an order's status
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                  true  "Order id"
// @Param        body  body      updateStatusRequest  true  "New status"
// @Success      200   {object}  messageResponse
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /orders/{id}/status [put]
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.UpdateStatus(c.Request().Context(), userID, orderID, req.Status); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "order status updated"})
}
