package domain

import "encoding/json"

// User is the identity record cached alongside the bearer token.
type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username,omitempty"`
	Name     string `json:"name,omitempty"`
}

// userWire mirrors the loose shapes the backend returns. Different endpoints
// have been seen using _id, userId or photographerId for the same value.
type userWire struct {
	ID             string `json:"id"`
	MongoID        string `json:"_id"`
	UserID         string `json:"userId"`
	PhotographerID string `json:"photographerId"`
	Email          string `json:"email"`
	Username       string `json:"username"`
	Name           string `json:"name"`
}

// UnmarshalJSON collapses the four possible identifier fields into User.ID,
// in precedence order id, _id, userId, photographerId. Everything past this
// boundary deals in the canonical ID only.
func (u *User) UnmarshalJSON(data []byte) error {
	var w userWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	id := w.ID
	for _, alt := range []string{w.MongoID, w.UserID, w.PhotographerID} {
		if id != "" {
			break
		}
		id = alt
	}
	*u = User{
		ID:       id,
		Email:    w.Email,
		Username: w.Username,
		Name:     w.Name,
	}
	return nil
}
