package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/photomarket/gateway/internal/core/domain"
	"github.com/photomarket/gateway/internal/core/ports"
)

// AuthGateway implements ports.AuthGateway against the backend auth endpoints.
type AuthGateway struct {
	client *Client
}

func NewAuthGateway(client *Client) *AuthGateway {
	return &AuthGateway{client: client}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

// loginResponse keeps the user record raw so the role string nested inside it
// can be extracted before the canonical decode discards it.
type loginResponse struct {
	Token string          `json:"token"`
	Role  string          `json:"role"`
	User  json.RawMessage `json:"user"`
	Data  struct {
		Role string `json:"role"`
	} `json:"data"`
}

// Login posts credentials and decodes the token, user record, and every
// location the backend is known to hide the role in.
func (g *AuthGateway) Login(ctx context.Context, creds ports.Credentials) (*ports.UpstreamAuth, error) {
	body, err := g.client.postJSON(ctx, http.MethodPost, "/auth/login", "", loginRequest{
		Email:    creds.Email,
		Password: creds.Password,
		Role:     creds.Role,
	})
	if err != nil {
		var ue *Error
		if errors.As(err, &ue) && (ue.Status == http.StatusUnauthorized || ue.Status == http.StatusBadRequest || ue.Status == http.StatusNotFound) {
			return nil, fmt.Errorf("%w: %s", domain.ErrInvalidCredentials, ue.Message)
		}
		return nil, err
	}

	var resp loginResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode login response: %w", err)
	}
	if resp.Token == "" {
		return nil, fmt.Errorf("login response missing token")
	}

	auth := &ports.UpstreamAuth{Token: resp.Token}
	auth.RoleHints[0] = resp.Role
	auth.RoleHints[2] = resp.Data.Role

	if len(resp.User) > 0 {
		if err := json.Unmarshal(resp.User, &auth.User); err != nil {
			return nil, fmt.Errorf("decode user record: %w", err)
		}
		var nested struct {
			Role string `json:"role"`
		}
		if err := json.Unmarshal(resp.User, &nested); err == nil {
			auth.RoleHints[1] = nested.Role
		}
	}

	return auth, nil
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

// Register creates an account upstream. Duplicate accounts map to
// domain.ErrUserExists.
func (g *AuthGateway) Register(ctx context.Context, reg ports.Registration) error {
	_, err := g.client.postJSON(ctx, http.MethodPost, "/auth/register", "", registerRequest{
		Username: reg.Username,
		Email:    reg.Email,
		Password: reg.Password,
		Role:     reg.Role,
	})
	if err != nil {
		var ue *Error
		if errors.As(err, &ue) && ue.Status == http.StatusConflict {
			return fmt.Errorf("%w: %s", domain.ErrUserExists, ue.Message)
		}
		return err
	}
	return nil
}
