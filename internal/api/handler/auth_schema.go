package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// loginRequest is the login form. Role is only a hint forwarded upstream; the
// authoritative role comes back in the backend response.
type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role"     validate:"omitempty"`
}

// registerRequest is the sign-up form. The password confirmation never leaves
// the gateway: a mismatch is rejected here with zero upstream calls.
type registerRequest struct {
	Username        string `json:"username"         validate:"required,min=3"`
	Email           string `json:"email"            validate:"required,email"`
	Password        string `json:"password"         validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
	Role            string `json:"role"             validate:"omitempty,oneof=buyer photographer user"`
}

type sessionUserResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username,omitempty"`
}

// loginResponse tells the client who it is and where to navigate next.
type loginResponse struct {
	User        sessionUserResponse `json:"user"`
	Role        string              `json:"role"`
	LandingPath string              `json:"landing_path"`
	ExpiresAt   string              `json:"expires_at"`
}

type meResponse struct {
	User      sessionUserResponse `json:"user"`
	Role      string              `json:"role"`
	ExpiresAt string              `json:"expires_at"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// payoutRequest asks for a wallet payout. Money mutations are never retried.
type payoutRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
	Method string  `json:"method" validate:"required,oneof=bank_transfer paypal"`
}

// cartItemRequest adds a media item to the buyer's cart.
type cartItemRequest struct {
	MediaID string `json:"media_id" validate:"required"`
	License string `json:"license"  validate:"omitempty,oneof=standard extended"`
}

// preferencesRequest replaces the user's UI preferences.
type preferencesRequest struct {
	AvatarURL string `json:"avatar_url" validate:"omitempty,url"`
	Theme     string `json:"theme"      validate:"omitempty,oneof=light dark"`
	GridSize  int    `json:"grid_size"  validate:"omitempty,min=1,max=8"`
}
