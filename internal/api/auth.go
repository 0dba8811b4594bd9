package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"booking-console/internal/model"
)

// Credentials is the login payload.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the sign-up payload. Specialization and license number
// only matter for the doctor role; the backend ignores them otherwise.
type Registration struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
	Specialization       string `json:"specialization,omitempty"`
	LicenseNumber        string `json:"license_number,omitempty"`
	Phone                string `json:"phone,omitempty"`
}

// AuthResult is what login and register hand back: the bearer token and the
// role the backend assigned. Nothing else is guaranteed to be present.
type AuthResult struct {
	Token string     `json:"token"`
	Role  model.Role `json:"role"`
}

// Login exchanges credentials for a token/role pair.
func (c *Client) Login(ctx context.Context, creds Credentials) (AuthResult, error) {
	if err := c.waitAuth(ctx); err != nil {
		return AuthResult{}, err
	}
	body, err := c.do(ctx, http.MethodPost, "/login", creds)
	if err != nil {
		return AuthResult{}, err
	}
	return decodeAuth(body)
}

// Register creates an account for the given role ("user" or "doctor";
// admins are provisioned out of band).
func (c *Client) Register(ctx context.Context, reg Registration, role model.Role) (AuthResult, error) {
	if err := c.waitAuth(ctx); err != nil {
		return AuthResult{}, err
	}
	body, err := c.do(ctx, http.MethodPost, "/register/"+string(role), reg)
	if err != nil {
		return AuthResult{}, err
	}
	return decodeAuth(body)
}

func decodeAuth(body []byte) (AuthResult, error) {
	var res AuthResult
	if err := json.Unmarshal(body, &res); err != nil {
		return AuthResult{}, fmt.Errorf("api: decode auth response: %w", err)
	}
	if res.Token == "" || res.Role == "" {
		return AuthResult{}, fmt.Errorf("api: auth response missing token or role")
	}
	return res, nil
}
