// bookingctl is the terminal front end for the appointment-booking
// backend: login and registration, a dashboard per role, and the booking,
// accept/reject and admin actions those dashboards expose.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"booking-console/internal/api"
	"booking-console/internal/config"
	"booking-console/internal/session"
	"booking-console/internal/upload"
)

// app carries the wired-up pieces every command shares.
type app struct {
	cfg     config.Config
	log     zerolog.Logger
	store   session.Store
	client  *api.Client
	uploads *upload.Client
}

func newApp() *app {
	cfg := config.Load()

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	store := session.NewFileStore(cfg.StateDir)
	client := api.New(cfg.APIBaseURL,
		api.WithLogger(log),
		api.WithTokenFunc(func() string {
			sess, _ := store.Load()
			return sess.Token
		}),
		// the backend throttles auth endpoints; stay under its ceiling
		api.WithAuthLimiter(rate.NewLimiter(rate.Limit(5), 10)),
	)
	uploads := upload.New(cfg.UploadURL, upload.WithLogger(log))

	return &app{cfg: cfg, log: log, store: store, client: client, uploads: uploads}
}

func main() {
	a := newApp()

	root := &cobra.Command{
		Use:           "bookingctl",
		Short:         "Terminal front end for the appointment-booking service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		a.loginCmd(),
		a.logoutCmd(),
		a.registerCmd(),
		a.whoamiCmd(),
		a.dashboardCmd(),
		a.doctorsCmd(),
		a.bookCmd(),
		a.slotsCmd(),
		a.appointmentsCmd(),
		a.acceptCmd(),
		a.rejectCmd(),
		a.adminCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
