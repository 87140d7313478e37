package domain

import (
	"errors"
	"time"
)

const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
	RoleUser  = "user"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserExists = errors.New("email already registered")
var ErrUserNotFound = errors.New("user not found")
var ErrForbidden = errors.New("access forbidden")
var ErrCannotDeleteAdmin = errors.New("admin accounts cannot be deleted")
var ErrTooManyAttempts = errors.New("too many login attempts")

// ValidRole reports whether role is one of the known role values.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleStaff || role == RoleUser
}

// User models a registered account. PasswordHash is never serialized.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	Avatar       string    `json:"avatar,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// NotificationSettings holds per-user notification preferences, one row per user.
type NotificationSettings struct {
	UserID           int64 `json:"user_id"`
	Email            bool  `json:"email"`
	Desktop          bool  `json:"desktop"`
	ProductUpdates   bool  `json:"product_updates"`
	WeeklyDigest     bool  `json:"weekly_digest"`
	ImportantUpdates bool  `json:"important_updates"`
}

// DefaultNotificationSettings returns the settings created on first read.
func DefaultNotificationSettings(userID int64) *NotificationSettings {
	return &NotificationSettings{
		UserID:           userID,
		Email:            true,
		Desktop:          true,
		ProductUpdates:   true,
		WeeklyDigest:     false,
		ImportantUpdates: true,
	}
}
