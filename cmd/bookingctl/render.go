package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"booking-console/internal/dashboard"
	"booking-console/internal/model"
)

// dashboardCmd renders whatever dashboard the stored role points at. The
// role only picks the shell; every data call below is authorized by the
// backend against the bearer token, so a tampered role buys nothing.
func (a *app) dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Open the dashboard for the logged-in role",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, ok := a.store.Load()
			if !ok {
				return fmt.Errorf("not logged in")
			}

			switch sess.Role {
			case model.RolePatient:
				view := dashboard.NewPatient(a.client, a.log)
				if err := view.Load(cmd.Context()); err != nil {
					return err
				}
				renderDoctors(view.Doctors)
			case model.RoleDoctor:
				view := dashboard.NewDoctor(a.client, a.log)
				if err := view.Load(cmd.Context()); err != nil {
					return err
				}
				renderDoctorView(view)
			case model.RoleAdmin:
				view := dashboard.NewAdmin(a.client, a.uploads, a.log)
				if err := view.Load(cmd.Context()); err != nil {
					return err
				}
				renderUsers(view.Users)
				renderDoctors(view.Doctors)
				renderAppointmentSection("APPOINTMENTS", view.Appointments)
			default:
				return fmt.Errorf("unknown role %q in stored session", sess.Role)
			}
			return nil
		},
	}
}

func renderDoctors(doctors []model.Doctor) {
	if len(doctors) == 0 {
		fmt.Println("no doctors found")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSPECIALIZATION\tEMAIL\tSTATUS")
	for _, d := range doctors {
		status := "available"
		if !d.Available {
			status = "busy"
		}
		if d.Booked {
			status = "booked"
		}
		fmt.Fprintf(w, "%s\tDr. %s\t%s\t%s\t%s\n", d.ID, d.Name, d.Specialization, d.Email, status)
	}
	w.Flush()
	fmt.Println()
}

func renderUsers(users []model.User) {
	if len(users) == 0 {
		fmt.Println("no users found")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tJOINED")
	for _, u := range users {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", u.ID, u.Name, u.Email, u.CreatedAt)
	}
	w.Flush()
	fmt.Println()
}

func renderAppointmentSection(title string, appts []model.Appointment) {
	fmt.Println(title)
	if len(appts) == 0 {
		fmt.Println("  none")
		fmt.Println()
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "  ID\tPATIENT\tDOCTOR\tWHEN\tSTATUS\tNOTES")
	for _, ap := range appts {
		fmt.Fprintf(w, "  %s\t%s\t%s\t%s\t%s\t%s\n",
			ap.ID, ap.PatientName, ap.DoctorName, ap.When, ap.Status, ap.Notes)
	}
	w.Flush()
	fmt.Println()
}
