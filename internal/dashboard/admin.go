package dashboard

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"booking-console/internal/api"
	"booking-console/internal/model"
	"booking-console/internal/upload"
)

// Admin is the administrative view: every user, doctor and appointment in
// the system, plus the session-local report uploads.
type Admin struct {
	client  *api.Client
	uploads *upload.Client
	log     zerolog.Logger

	Users        []model.User
	Doctors      []model.Doctor
	Appointments []model.Appointment
	Reports      []model.Report

	Loading   bool
	Uploading bool
}

func NewAdmin(client *api.Client, uploads *upload.Client, log zerolog.Logger) *Admin {
	return &Admin{client: client, uploads: uploads, log: log}
}

// Load fetches users, doctors and appointments concurrently and joins the
// three. All or nothing: if any fetch fails the whole load fails and no
// view state changes, so the screen never renders a partial snapshot.
func (a *Admin) Load(ctx context.Context) error {
	a.Loading = true
	defer func() { a.Loading = false }()

	var (
		users   []model.User
		doctors []model.Doctor
		appts   []model.Appointment
	)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		users, err = a.client.AdminListUsers(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		doctors, err = a.client.AdminListDoctors(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		appts, err = a.client.AdminListAppointments(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		a.log.Error().Err(err).Msg("load admin data")
		return err
	}

	a.Users = users
	a.Doctors = doctors
	a.Appointments = appts
	return nil
}

// DeleteUser removes the account on the backend and filters it out of the
// local list without re-fetching. Deletions patch locally: the row is gone
// whichever way it is read back, so the round trip buys nothing.
func (a *Admin) DeleteUser(ctx context.Context, id string) error {
	if err := a.client.AdminDeleteUser(ctx, id); err != nil {
		return err
	}
	kept := a.Users[:0:0]
	for _, u := range a.Users {
		if u.ID != id {
			kept = append(kept, u)
		}
	}
	a.Users = kept
	a.log.Info().Str("user_id", id).Msg("user deleted")
	return nil
}

// DeleteAppointment removes the record and patches the local list, same
// strategy as DeleteUser.
func (a *Admin) DeleteAppointment(ctx context.Context, id string) error {
	if err := a.client.AdminDeleteAppointment(ctx, id); err != nil {
		return err
	}
	kept := a.Appointments[:0:0]
	for _, ap := range a.Appointments {
		if ap.ID != id {
			kept = append(kept, ap)
		}
	}
	a.Appointments = kept
	a.log.Info().Str("appointment_id", id).Msg("appointment deleted")
	return nil
}

// UploadReport sends one file to the upload service and prepends the
// returned reference to the session-local report list. The list has no
// backend counterpart and is lost with the view.
func (a *Admin) UploadReport(ctx context.Context, filename string, contents io.Reader) (model.Report, error) {
	if filename == "" {
		return model.Report{}, &EmptyUploadError{}
	}
	a.Uploading = true
	defer func() { a.Uploading = false }()

	rep, err := a.uploads.Send(ctx, filename, contents)
	if err != nil {
		return model.Report{}, err
	}
	a.Reports = append([]model.Report{rep}, a.Reports...)
	a.log.Info().Str("report_id", rep.ID).Str("file", filename).Msg("report uploaded")
	return rep, nil
}

// DownloadReport fetches the bytes of a previously uploaded report.
func (a *Admin) DownloadReport(ctx context.Context, id string) ([]byte, error) {
	for _, rep := range a.Reports {
		if rep.ID == id {
			return a.uploads.Fetch(ctx, rep)
		}
	}
	return nil, &UnknownReportError{ID: id}
}

// EmptyUploadError means the upload form was submitted without a file.
type EmptyUploadError struct{}

func (*EmptyUploadError) Error() string { return "no file selected" }

// UnknownReportError means the requested report is not in this session's
// list.
type UnknownReportError struct{ ID string }

func (e *UnknownReportError) Error() string { return "unknown report " + e.ID }
