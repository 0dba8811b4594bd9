package api

import (
	"context"
	"net/http"

	"booking-console/internal/model"
)

// BookingRequest is the appointment creation payload. AppointmentTime is
// the date and slot joined as "YYYY-MM-DD HH:MM" (see slots.Combine).
type BookingRequest struct {
	DoctorID        string `json:"doctor_id"`
	AppointmentTime string `json:"appointment_time"`
	Notes           string `json:"notes,omitempty"`
}

// ListDoctors returns the bookable doctors, with backend gaps already
// defaulted (blank specialization reads "N/A", missing availability reads
// available).
func (c *Client) ListDoctors(ctx context.Context) ([]model.Doctor, error) {
	body, err := c.do(ctx, http.MethodGet, "/users/doctors", nil)
	if err != nil {
		return nil, err
	}
	return decodeDoctors(body), nil
}

// BookAppointment creates a pending appointment with the chosen doctor.
// The response body is not relied on; the new appointment starts pending by
// contract.
func (c *Client) BookAppointment(ctx context.Context, req BookingRequest) error {
	_, err := c.do(ctx, http.MethodPost, "/users/appointments", req)
	return err
}
