package domain

import "time"

// Preferences are per-user UI settings. They are keyed by the canonical user
// ID and deliberately stored outside the session: logging out or a forced
// teardown never touches them.
type Preferences struct {
	UserID    string    `json:"user_id" bson:"_id"`
	AvatarURL string    `json:"avatar_url,omitempty" bson:"avatar_url,omitempty"`
	Theme     string    `json:"theme,omitempty" bson:"theme,omitempty"`
	GridSize  int       `json:"grid_size,omitempty" bson:"grid_size,omitempty"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}
