package domain

import "time"

// ActivityEventType classifies an entry in the auth/admin audit trail.
type ActivityEventType string

const (
	ActivityLoginSuccess    ActivityEventType = "login_success"
	ActivityLoginFailure    ActivityEventType = "login_failure"
	ActivityRegister        ActivityEventType = "register"
	ActivityCustomerDeleted ActivityEventType = "customer_deleted"
	ActivityMemberInvited   ActivityEventType = "member_invited"
	ActivityMemberDeleted   ActivityEventType = "member_deleted"
	ActivityOrderStatusSet  ActivityEventType = "order_status_set"
)

// ActivityEvent records a single security-relevant action for the audit trail.
type ActivityEvent struct {
	Type       ActivityEventType
	UserID     int64  // subject of the event; 0 when unknown (e.g. failed login)
	ActorID    int64  // who performed it; equals UserID for self-service actions
	Email      string // identifier supplied by the client, useful on failures
	Metadata   map[string]string
	OccurredAt time.Time
}
