package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/modavn/storefront-api/internal/core/domain"
	"github.com/modavn/storefront-api/internal/core/ports"
)

// AdminHandler serves the admin console endpoints. All routes are mounted
// behind Auth + RequireRole(admin); handlers only deal with payloads.
type AdminHandler struct {
	service ports.AdminService
}

func NewAdminHandler(service ports.AdminService) *AdminHandler {
	return &AdminHandler{service: service}
}

type customersResponse struct {
	Customers []*domain.User `json:"customers"`
}

type customerResponse struct {
	Customer *domain.User `json:"customer"`
}

type paymentsResponse struct {
	Payments []*domain.Order `json:"payments"`
}

type membersResponse struct {
	Members []*domain.User `json:"members"`
}

type inviteResponse struct {
	Member   *domain.User `json:"member"`
	Password string       `json:"password"`
}

type notificationsResponse struct {
	Notifications *domain.NotificationSettings `json:"notifications"`
}

type createCustomerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required"`
}

type inviteMemberRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"required"`
}

type updateProfileRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

type changePasswordRequest struct {
	Current     string `json:"current" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

type updateAvatarRequest struct {
	Avatar string `json:"avatar" validate:"required"`
}

type updateNotificationsRequest struct {
	Email            bool `json:"email"`
	Desktop          bool `json:"desktop"`
	ProductUpdates   bool `json:"product_updates"`
	WeeklyDigest     bool `json:"weekly_digest"`
	ImportantUpdates bool `json:"important_updates"`
}

// --- Customers ---

// ListCustomers handles GET /admin/customers.
//
// @Summary      List customers
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  customersResponse
// @Router       /admin/customers [get]
func (h *AdminHandler) ListCustomers(c echo.Context) error {
	customers, err := h.service.ListCustomers(c.Request().Context())
	if err != nil {
		return err
	}
	if customers == nil {
		customers = []*domain.User{}
	}
	return c.JSON(http.StatusOK, customersResponse{Customers: customers})
}

// GetCustomer handles GET /admin/customers/:id.
func (h *AdminHandler) GetCustomer(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	customer, err := h.service.GetCustomer(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profileResponse{User: customer})
}

// CustomerPayments handles GET /admin/customers/:id/payments.
func (h *AdminHandler) CustomerPayments(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	payments, err := h.service.CustomerPayments(c.Request().Context(), id)
	if err != nil {
		return err
	}
	if payments == nil {
		payments = []*domain.Order{}
	}
	return c.JSON(http.StatusOK, paymentsResponse{Payments: payments})
}

// CreateCustomer handles POST /admin/customers.
func (h *AdminHandler) CreateCustomer(c echo.Context) error {
	var req createCustomerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	customer, err := h.service.CreateCustomer(c.Request().Context(), req.Email, req.Password, req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, customerResponse{Customer: customer})
}

// DeleteCustomer handles DELETE /admin/customers/:id. Admin targets are
// refused regardless of the requester's own role.
func (h *AdminHandler) DeleteCustomer(c echo.Context) error {
	actorID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteCustomer(c.Request().Context(), actorID, id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "customer and related data deleted"})
}

// --- Members ---

// ListMembers handles GET /admin/members.
func (h *AdminHandler) ListMembers(c echo.Context) error {
	members, err := h.service.ListMembers(c.Request().Context())
	if err != nil {
		return err
	}
	if members == nil {
		members = []*domain.User{}
	}
	return c.JSON(http.StatusOK, membersResponse{Members: members})
}

// InviteMember handles POST /admin/members/invite. The generated password is
// included in the response exactly once and never stored in the clear.
func (h *AdminHandler) InviteMember(c echo.Context) error {
	actorID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req inviteMemberRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	member, password, err := h.service.InviteMember(c.Request().Context(), actorID, req.Email, req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, inviteResponse{Member: member, Password: password})
}

// DeleteMember handles DELETE /admin/members/:id.
func (h *AdminHandler) DeleteMember(c echo.Context) error {
	actorID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteMember(c.Request().Context(), actorID, id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "member deleted"})
}

// --- Admin account ---

// Profile handles GET /admin/admin/profile.
func (h *AdminHandler) Profile(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	user, err := h.service.Profile(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profileResponse{User: user})
}

// UpdateProfile handles PUT /admin/admin/profile.
func (h *AdminHandler) UpdateProfile(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.UpdateProfile(c.Request().Context(), userID, req.Name, req.Email); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "profile updated"})
}

// ChangePassword handles PUT /admin/admin/password.
func (h *AdminHandler) ChangePassword(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.ChangePassword(c.Request().Context(), userID, req.Current, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "password changed"})
}

// UpdateAvatar handles PUT /admin/admin/avatar.
func (h *AdminHandler) UpdateAvatar(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req updateAvatarRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.UpdateAvatar(c.Request().Context(), userID, req.Avatar); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "avatar updated"})
}

// DeleteAccount handles DELETE /admin/admin.
func (h *AdminHandler) DeleteAccount(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteAccount(c.Request().Context(), userID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "account deleted"})
}

// --- Notification settings ---

// Notifications handles GET /admin/admin/notifications, creating defaults on
// first read.
func (h *AdminHandler) Notifications(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	settings, err := h.service.Notifications(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, notificationsResponse{Notifications: settings})
}

// UpdateNotifications handles PUT /admin/admin/notifications.
func (h *AdminHandler) UpdateNotifications(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req updateNotificationsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	settings := &domain.NotificationSettings{
		UserID:           userID,
		Email:            req.Email,
		Desktop:          req.Desktop,
		ProductUpdates:   req.ProductUpdates,
		WeeklyDigest:     req.WeeklyDigest,
		ImportantUpdates: req.ImportantUpdates,
	}
	if err := h.service.UpdateNotifications(c.Request().Context(), settings); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "notification settings updated"})
}

// pathID parses the :id path parameter.
func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}
