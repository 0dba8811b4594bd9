package dashboard

import (
	"context"

	"github.com/rs/zerolog"

	"booking-console/internal/api"
	"booking-console/internal/model"
)

// Doctor is the doctor-facing view: the appointment queue bucketed by
// status, with accept/reject actions.
type Doctor struct {
	client *api.Client
	log    zerolog.Logger

	Appointments []model.Appointment
	Loading      bool
}

func NewDoctor(client *api.Client, log zerolog.Logger) *Doctor {
	return &Doctor{client: client, log: log}
}

func (d *Doctor) Load(ctx context.Context) error {
	d.Loading = true
	defer func() { d.Loading = false }()

	appts, err := d.client.ListDoctorAppointments(ctx)
	if err != nil {
		d.log.Error().Err(err).Msg("load appointments")
		return err
	}
	d.Appointments = appts
	return nil
}

// Buckets splits the current list into pending / upcoming / archived.
func (d *Doctor) Buckets() model.Buckets {
	return model.Bucket(d.Appointments)
}

// Stats returns the dashboard counters: pending requests, upcoming
// appointments, and the total.
func (d *Doctor) Stats() (pending, upcoming, total int) {
	b := d.Buckets()
	return len(b.Pending), len(b.Upcoming), len(d.Appointments)
}

// Accept transitions an appointment to accepted and then re-fetches the
// whole collection. Status transitions always re-fetch rather than patch
// locally: the backend owns the authoritative status, and the round trip
// buys consistency.
func (d *Doctor) Accept(ctx context.Context, id string) error {
	if err := d.client.AcceptAppointment(ctx, id); err != nil {
		return err
	}
	d.log.Info().Str("appointment_id", id).Msg("appointment accepted")
	return d.Load(ctx)
}

// Reject transitions an appointment to rejected, then re-fetches.
func (d *Doctor) Reject(ctx context.Context, id string) error {
	if err := d.client.RejectAppointment(ctx, id); err != nil {
		return err
	}
	d.log.Info().Str("appointment_id", id).Msg("appointment rejected")
	return d.Load(ctx)
}
