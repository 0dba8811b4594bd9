package dashboard_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"booking-console/internal/api"
	"booking-console/internal/apitest"
	"booking-console/internal/dashboard"
	"booking-console/internal/model"
	"booking-console/internal/session"
)

// tomorrow in the wire date format, relative to the fixed test clock
const (
	testDay      = "2026-09-01"
	testTomorrow = "2026-09-02"
)

func fixedClock() dashboard.FixedClock {
	return dashboard.FixedClock{T: time.Date(2026, 9, 1, 12, 0, 0, 0, time.Local)}
}

func patientView(t *testing.T, backend *apitest.Server) *dashboard.Patient {
	t.Helper()
	store := session.NewMemoryStore()
	patientID := backend.SeedAccount("Pat", "pat@test.com", "longenough1", "user")
	require.NoError(t, store.Save(identityFor(model.RolePatient), backend.Token(patientID)))
	client := clientFor(backend, store)
	return dashboard.NewPatient(client, nopLog()).WithClock(fixedClock())
}

func TestPatientLoadAndFilter(t *testing.T) {
	backend := newBackend(t)
	backend.SeedDoctor("Dr Grey", "grey@test.com", "longenough1", "Cardiology", "L-1")
	backend.SeedDoctor("Dr House", "house@test.com", "longenough1", "Diagnostics", "L-2")
	backend.SeedDoctor("Dr Cardio Jr", "jr@test.com", "longenough1", "", "L-3")

	view := patientView(t, backend)
	require.NoError(t, view.Load(context.Background()))
	require.Len(t, view.Doctors, 3)
	assert.False(t, view.Loading)

	// blank specialization reads as the placeholder
	var placeholders int
	for _, d := range view.Doctors {
		assert.True(t, d.Available)
		if d.Specialization == "N/A" {
			placeholders++
		}
	}
	assert.Equal(t, 1, placeholders)

	// filter matches name or specialization, case-insensitive
	assert.Len(t, view.Filter("cardio"), 2)
	assert.Len(t, view.Filter("HOUSE"), 1)
	assert.Len(t, view.Filter("nobody"), 0)
	assert.Len(t, view.Filter(""), 3)
}

func TestPatientBook(t *testing.T) {
	backend := newBackend(t)
	docID := backend.SeedDoctor("Dr Grey", "grey@test.com", "longenough1", "Cardiology", "L-1")

	view := patientView(t, backend)
	require.NoError(t, view.Load(context.Background()))

	fieldErrs, err := view.Book(context.Background(), docID, testTomorrow, "09:30", "first visit")
	require.NoError(t, err)
	require.Nil(t, fieldErrs)

	assert.Equal(t, 1, backend.Calls("POST", "/users/appointments"))
	require.Len(t, view.Doctors, 1)
	assert.True(t, view.Doctors[0].Booked, "booked flag is set locally after success")
}

func TestPatientBookValidationSkipsNetwork(t *testing.T) {
	backend := newBackend(t)
	docID := backend.SeedDoctor("Dr Grey", "grey@test.com", "longenough1", "Cardiology", "L-1")
	view := patientView(t, backend)

	tests := []struct {
		name  string
		doc   string
		date  string
		slot  string
		field string
	}{
		{"missing doctor", "", testTomorrow, "09:30", "doctor_id"},
		{"missing date", docID, "", "09:30", "appointment_date"},
		{"same-day date", docID, testDay, "09:30", "appointment_date"},
		{"past date", docID, "2026-08-31", "09:30", "appointment_date"},
		{"missing slot", docID, testTomorrow, "", "appointment_time"},
		{"off-grid slot", docID, testTomorrow, "09:15", "appointment_time"},
		{"after hours", docID, testTomorrow, "18:00", "appointment_time"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fieldErrs, err := view.Book(context.Background(), tt.doc, tt.date, tt.slot, "")
			require.NoError(t, err)
			assert.Contains(t, fieldErrs, tt.field)
		})
	}
	assert.Zero(t, backend.Calls("POST", "/users/appointments"), "invalid forms must not reach the network")
}

func TestPatientBookUnknownDoctor(t *testing.T) {
	backend := newBackend(t)
	view := patientView(t, backend)

	fieldErrs, err := view.Book(context.Background(), "id-999", testTomorrow, "10:00", "")
	require.Error(t, err)
	assert.Nil(t, fieldErrs)

	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 404, apiErr.Status)
}

func TestPatientLoadFailureKeepsList(t *testing.T) {
	backend := newBackend(t)
	backend.SeedDoctor("Dr Grey", "grey@test.com", "longenough1", "Cardiology", "L-1")

	view := patientView(t, backend)
	require.NoError(t, view.Load(context.Background()))
	require.Len(t, view.Doctors, 1)

	backend.Close()
	require.Error(t, view.Load(context.Background()))
	assert.Len(t, view.Doctors, 1, "failed reload keeps the previous list")
	assert.False(t, view.Loading)
}
