package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"booking-console/internal/dashboard"
)

func (a *app) adminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Administrative actions",
	}
	cmd.AddCommand(
		a.adminOverviewCmd(),
		a.adminDeleteUserCmd(),
		a.adminDeleteAppointmentCmd(),
		a.adminUploadCmd(),
	)
	return cmd
}

func (a *app) adminOverviewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "overview",
		Short: "List all users, doctors and appointments",
		RunE: func(cmd *cobra.Command, args []string) error {
			view := dashboard.NewAdmin(a.client, a.uploads, a.log)
			if err := view.Load(cmd.Context()); err != nil {
				return err
			}
			renderUsers(view.Users)
			renderDoctors(view.Doctors)
			renderAppointmentSection("APPOINTMENTS", view.Appointments)
			return nil
		},
	}
}

func (a *app) adminDeleteUserCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete-user <user-id>",
		Short: "Delete a patient account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view := dashboard.NewAdmin(a.client, a.uploads, a.log)
			if err := view.DeleteUser(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Println("user deleted")
			return nil
		},
	}
}

func (a *app) adminDeleteAppointmentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete-appointment <appointment-id>",
		Short: "Delete an appointment record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view := dashboard.NewAdmin(a.client, a.uploads, a.log)
			if err := view.DeleteAppointment(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Println("appointment deleted")
			return nil
		},
	}
}

func (a *app) adminUploadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "upload-report <file>",
		Short: "Upload a report file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			view := dashboard.NewAdmin(a.client, a.uploads, a.log)
			rep, err := view.UploadReport(cmd.Context(), filepath.Base(args[0]), f)
			if err != nil {
				return err
			}
			fmt.Printf("uploaded %s (id %s)\n", rep.Filename, rep.ID)
			if rep.FileURL != "" {
				fmt.Printf("url: %s\n", rep.FileURL)
			}
			return nil
		},
	}
}
