package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"booking-console/internal/api"
	"booking-console/internal/dashboard"
	"booking-console/internal/model"
)

func (a *app) loginCmd() *cobra.Command {
	var creds api.Credentials

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate and store the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			// already logged in: just point at the dashboard
			if path := dashboard.Landing(a.store); path != "" {
				fmt.Printf("already logged in, dashboard: %s\n", path)
				return nil
			}

			path, fieldErrs, err := dashboard.Login(cmd.Context(), a.client, a.store, creds)
			if err != nil {
				return err
			}
			if fieldErrs != nil {
				printFieldErrors(fieldErrs)
				return fmt.Errorf("login aborted")
			}
			fmt.Printf("logged in, dashboard: %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVar(&creds.Email, "email", "", "account email")
	cmd.Flags().StringVar(&creds.Password, "password", "", "account password")
	return cmd
}

func (a *app) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := dashboard.Logout(a.store); err != nil {
				return err
			}
			fmt.Println("logged out")
			return nil
		},
	}
}

func (a *app) registerCmd() *cobra.Command {
	var reg api.Registration

	cmd := &cobra.Command{
		Use:       "register [user|doctor]",
		Short:     "Create an account",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"user", "doctor"},
		RunE: func(cmd *cobra.Command, args []string) error {
			role := model.Role(args[0])

			fieldErrs, err := dashboard.Register(cmd.Context(), a.client, a.store, reg, role)
			if err != nil {
				return err
			}
			if fieldErrs != nil {
				printFieldErrors(fieldErrs)
				return fmt.Errorf("registration aborted")
			}
			fmt.Printf("welcome, %s! please run `bookingctl login` to continue\n", reg.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&reg.Name, "name", "", "full name")
	cmd.Flags().StringVar(&reg.Email, "email", "", "email")
	cmd.Flags().StringVar(&reg.Password, "password", "", "password (min 8 chars)")
	cmd.Flags().StringVar(&reg.PasswordConfirmation, "confirm", "", "password confirmation")
	cmd.Flags().StringVar(&reg.Specialization, "specialization", "", "doctor specialization")
	cmd.Flags().StringVar(&reg.LicenseNumber, "license", "", "doctor license number")
	cmd.Flags().StringVar(&reg.Phone, "phone", "", "phone number")
	return cmd
}

func (a *app) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, ok := a.store.Load()
			if !ok {
				fmt.Println("not logged in")
				return nil
			}
			// login stores a role-only identity; blanks are expected
			fmt.Printf("role:  %s\n", sess.Role)
			if sess.Name != "" {
				fmt.Printf("name:  %s\n", sess.Name)
			}
			if sess.Email != "" {
				fmt.Printf("email: %s\n", sess.Email)
			}
			fmt.Printf("dashboard: %s\n", sess.Role.DashboardPath())
			return nil
		},
	}
}

func printFieldErrors(errs dashboard.FieldErrors) {
	for field, msg := range errs {
		fmt.Printf("  %s: %s\n", field, msg)
	}
}
