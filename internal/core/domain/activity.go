package domain

import "time"

// ActivityKind classifies a session lifecycle event.
type ActivityKind string

const (
	ActivityLogin       ActivityKind = "login"
	ActivityLoginFailed ActivityKind = "login_failed"
	ActivityLogout      ActivityKind = "logout"
	ActivityTeardown401 ActivityKind = "teardown_401"
	ActivityGuardBounce ActivityKind = "guard_redirect"
)

// ActivityEvent is an audit-trail entry for the session lifecycle. Events are
// recorded asynchronously; the request path never waits on them.
type ActivityEvent struct {
	UserID    string       `json:"user_id" bson:"user_id"`
	SessionID string       `json:"session_id,omitempty" bson:"session_id,omitempty"`
	Kind      ActivityKind `json:"kind" bson:"kind"`
	Role      Role         `json:"role,omitempty" bson:"role,omitempty"`
	Detail    string       `json:"detail,omitempty" bson:"detail,omitempty"`
	At        time.Time    `json:"at" bson:"at"`
}
