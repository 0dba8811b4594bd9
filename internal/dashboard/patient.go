package dashboard

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"booking-console/internal/api"
	"booking-console/internal/model"
	"booking-console/internal/slots"
)

// Patient is the patient-facing view: browse doctors, book a slot.
type Patient struct {
	client *api.Client
	log    zerolog.Logger
	clock  Clock

	Doctors []model.Doctor
	Loading bool
}

func NewPatient(client *api.Client, log zerolog.Logger) *Patient {
	return &Patient{client: client, log: log, clock: systemClock{}}
}

// WithClock overrides the booking-date clock, for tests.
func (p *Patient) WithClock(c Clock) *Patient {
	p.clock = c
	return p
}

// Load fetches the doctor list. A backend failure leaves any previous list
// in place so the view can keep showing what it had.
func (p *Patient) Load(ctx context.Context) error {
	p.Loading = true
	defer func() { p.Loading = false }()

	doctors, err := p.client.ListDoctors(ctx)
	if err != nil {
		p.log.Error().Err(err).Msg("load doctors")
		return err
	}
	p.Doctors = doctors
	return nil
}

// Filter returns the doctors whose name or specialization contains term,
// case-insensitive. An empty term returns everything.
func (p *Patient) Filter(term string) []model.Doctor {
	if term == "" {
		return p.Doctors
	}
	term = strings.ToLower(term)
	out := []model.Doctor{}
	for _, d := range p.Doctors {
		if strings.Contains(strings.ToLower(d.Name), term) ||
			strings.Contains(strings.ToLower(d.Specialization), term) {
			out = append(out, d)
		}
	}
	return out
}

// Book validates the form and creates a pending appointment. Empty date or
// slot, a slot off the half-hour grid, or a date before tomorrow all abort
// before any network call. On success the chosen doctor is marked booked
// locally (optimistic; the backend does not report this flag).
func (p *Patient) Book(ctx context.Context, doctorID, date, slot, notes string) (FieldErrors, error) {
	errs := FieldErrors{}
	if doctorID == "" {
		errs["doctor_id"] = "Doctor is required"
	}
	switch {
	case date == "":
		errs["appointment_date"] = "Please select a date"
	case !slots.ValidDate(date, p.clock.Now()):
		errs["appointment_date"] = "Bookings open from tomorrow onwards"
	}
	switch {
	case slot == "":
		errs["appointment_time"] = "Please select a time"
	case !slots.ValidTime(slot):
		errs["appointment_time"] = "Please pick one of the offered times"
	}
	if len(errs) > 0 {
		return errs, nil
	}

	req := api.BookingRequest{
		DoctorID:        doctorID,
		AppointmentTime: slots.Combine(date, slot),
		Notes:           notes,
	}
	if err := p.client.BookAppointment(ctx, req); err != nil {
		return nil, err
	}

	for i := range p.Doctors {
		if p.Doctors[i].ID == doctorID {
			p.Doctors[i].Booked = true
		}
	}
	p.log.Info().Str("doctor_id", doctorID).Str("when", req.AppointmentTime).Msg("appointment booked")
	return nil, nil
}
