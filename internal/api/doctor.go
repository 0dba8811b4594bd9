package api

import (
	"context"
	"net/http"

	"booking-console/internal/model"
)

// ListDoctorAppointments returns the appointments assigned to the
// authenticated doctor, in canonical shape.
func (c *Client) ListDoctorAppointments(ctx context.Context) ([]model.Appointment, error) {
	body, err := c.do(ctx, http.MethodGet, "/doctors/appointments", nil)
	if err != nil {
		return nil, err
	}
	return decodeAppointments(body), nil
}

// AcceptAppointment moves a pending appointment to accepted. Callers
// re-fetch the collection afterwards instead of trusting the response body.
func (c *Client) AcceptAppointment(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodPost, "/doctors/appointments/"+id+"/accept", nil)
	return err
}

// RejectAppointment moves a pending appointment to rejected.
func (c *Client) RejectAppointment(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodPost, "/doctors/appointments/"+id+"/reject", nil)
	return err
}
