package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"booking-console/internal/dashboard"
	"booking-console/internal/slots"
)

func (a *app) doctorsCmd() *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   "doctors",
		Short: "Browse bookable doctors",
		RunE: func(cmd *cobra.Command, args []string) error {
			view := dashboard.NewPatient(a.client, a.log)
			if err := view.Load(cmd.Context()); err != nil {
				return err
			}
			renderDoctors(view.Filter(search))
			return nil
		},
	}
	cmd.Flags().StringVar(&search, "search", "", "filter by name or specialization")
	return cmd
}

func (a *app) bookCmd() *cobra.Command {
	var doctorID, date, slot, notes string

	cmd := &cobra.Command{
		Use:   "book",
		Short: "Book an appointment",
		RunE: func(cmd *cobra.Command, args []string) error {
			view := dashboard.NewPatient(a.client, a.log)
			fieldErrs, err := view.Book(cmd.Context(), doctorID, date, slot, notes)
			if err != nil {
				return err
			}
			if fieldErrs != nil {
				printFieldErrors(fieldErrs)
				return fmt.Errorf("booking aborted")
			}
			fmt.Printf("appointment requested for %s %s\n", date, slot)
			return nil
		},
	}
	cmd.Flags().StringVar(&doctorID, "doctor", "", "doctor id")
	cmd.Flags().StringVar(&date, "date", "", "date (YYYY-MM-DD, from tomorrow)")
	cmd.Flags().StringVar(&slot, "time", "", "time slot (HH:MM)")
	cmd.Flags().StringVar(&notes, "notes", "", "optional notes")
	return cmd
}

func (a *app) slotsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "slots",
		Short: "Show bookable time slots",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("earliest date: %s\n", slots.MinDate(time.Now()))
			for _, s := range slots.Times() {
				fmt.Println(s)
			}
			return nil
		},
	}
}
