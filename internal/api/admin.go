package api

import (
	"context"
	"net/http"

	"booking-console/internal/model"
)

func (c *Client) AdminListUsers(ctx context.Context) ([]model.User, error) {
	body, err := c.do(ctx, http.MethodGet, "/admin/users", nil)
	if err != nil {
		return nil, err
	}
	return decodeUsers(body), nil
}

func (c *Client) AdminListDoctors(ctx context.Context) ([]model.Doctor, error) {
	body, err := c.do(ctx, http.MethodGet, "/admin/doctors", nil)
	if err != nil {
		return nil, err
	}
	return decodeDoctors(body), nil
}

func (c *Client) AdminListAppointments(ctx context.Context) ([]model.Appointment, error) {
	body, err := c.do(ctx, http.MethodGet, "/admin/appointments", nil)
	if err != nil {
		return nil, err
	}
	return decodeAppointments(body), nil
}

// AdminDeleteUser removes a patient account. Callers patch their local list
// instead of re-fetching; the row is gone either way.
func (c *Client) AdminDeleteUser(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/admin/users/"+id, nil)
	return err
}

// AdminDeleteAppointment removes an appointment record.
func (c *Client) AdminDeleteAppointment(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/admin/appointments/"+id, nil)
	return err
}
