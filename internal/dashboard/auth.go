// Package dashboard holds the role-scoped view models (patient, doctor,
// admin) and the auth flows that lead into them. View state lives here for
// the lifetime of one run; the backend stays authoritative for everything.
package dashboard

import (
	"context"
	"regexp"
	"strings"

	"booking-console/internal/api"
	"booking-console/internal/model"
	"booking-console/internal/session"
)

// FieldErrors maps form field names to validation messages. A non-empty
// map means the submission never reached the network.
type FieldErrors map[string]string

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// ValidateLogin mirrors the login form checks: both fields present, email
// roughly well-formed.
func ValidateLogin(creds api.Credentials) FieldErrors {
	errs := FieldErrors{}
	switch {
	case strings.TrimSpace(creds.Email) == "":
		errs["email"] = "Email is required"
	case !emailPattern.MatchString(creds.Email):
		errs["email"] = "Please enter a valid email address"
	}
	if creds.Password == "" {
		errs["password"] = "Password is required"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ValidateRegistration checks the sign-up form for the given role. Doctors
// additionally need a specialization and license number.
func ValidateRegistration(reg api.Registration, role model.Role) FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(reg.Name) == "" {
		errs["name"] = "Name is required"
	}
	switch {
	case strings.TrimSpace(reg.Email) == "":
		errs["email"] = "Email is required"
	case !emailPattern.MatchString(reg.Email):
		errs["email"] = "Please enter a valid email address"
	}
	switch {
	case reg.Password == "":
		errs["password"] = "Password is required"
	case len(reg.Password) < 8:
		errs["password"] = "Password must be at least 8 characters"
	}
	if reg.Password != reg.PasswordConfirmation {
		errs["password_confirmation"] = "Passwords do not match"
	}
	if role == model.RoleDoctor {
		if strings.TrimSpace(reg.Specialization) == "" {
			errs["specialization"] = "Specialization is required"
		}
		if strings.TrimSpace(reg.LicenseNumber) == "" {
			errs["license_number"] = "License number is required"
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Login authenticates and persists the session. The stored identity is
// deliberately minimal: only the role is known at this point, name and
// email stay blank. Returns the dashboard path to land on.
func Login(ctx context.Context, client *api.Client, store session.Store, creds api.Credentials) (string, FieldErrors, error) {
	if errs := ValidateLogin(creds); errs != nil {
		return "", errs, nil
	}
	res, err := client.Login(ctx, creds)
	if err != nil {
		return "", nil, err
	}
	id := model.Identity{Role: res.Role}
	if err := store.Save(id, res.Token); err != nil {
		return "", nil, err
	}
	return res.Role.DashboardPath(), nil, nil
}

// Register signs up and persists a session with the name and email the form
// already knows. The caller then sends the user through login.
func Register(ctx context.Context, client *api.Client, store session.Store, reg api.Registration, role model.Role) (FieldErrors, error) {
	if errs := ValidateRegistration(reg, role); errs != nil {
		return errs, nil
	}
	res, err := client.Register(ctx, reg, role)
	if err != nil {
		return nil, err
	}
	id := model.Identity{Name: reg.Name, Email: reg.Email, Role: res.Role}
	if err := store.Save(id, res.Token); err != nil {
		return nil, err
	}
	return nil, nil
}

// Logout drops the stored session.
func Logout(store session.Store) error {
	return store.Clear()
}

// Landing returns where an already-authenticated session should go, "" when
// nobody is logged in. Reading a forged or stale role only misroutes the
// shell; every data call is still authorized by the backend against the
// bearer token. Cosmetic routing, not a security boundary.
func Landing(store session.Store) string {
	sess, ok := store.Load()
	if !ok || !sess.Role.Valid() {
		return ""
	}
	return sess.Role.DashboardPath()
}
