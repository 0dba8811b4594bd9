package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"booking-console/internal/dashboard"
)

func (a *app) appointmentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "appointments",
		Short: "Show the doctor appointment queue",
		RunE: func(cmd *cobra.Command, args []string) error {
			view := dashboard.NewDoctor(a.client, a.log)
			if err := view.Load(cmd.Context()); err != nil {
				return err
			}
			renderDoctorView(view)
			return nil
		},
	}
}

func (a *app) acceptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "accept <appointment-id>",
		Short: "Accept a pending appointment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view := dashboard.NewDoctor(a.client, a.log)
			if err := view.Accept(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Println("appointment accepted")
			renderDoctorView(view)
			return nil
		},
	}
}

func (a *app) rejectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reject <appointment-id>",
		Short: "Reject a pending appointment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view := dashboard.NewDoctor(a.client, a.log)
			if err := view.Reject(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Println("appointment rejected")
			renderDoctorView(view)
			return nil
		},
	}
}

func renderDoctorView(view *dashboard.Doctor) {
	pending, upcoming, total := view.Stats()
	fmt.Printf("pending: %d  upcoming: %d  total: %d\n\n", pending, upcoming, total)

	b := view.Buckets()
	renderAppointmentSection("PENDING REQUESTS", b.Pending)
	renderAppointmentSection("UPCOMING", b.Upcoming)
	renderAppointmentSection("ARCHIVED", b.Archived)
}
