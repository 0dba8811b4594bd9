package dashboard_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"booking-console/internal/api"
	"booking-console/internal/apitest"
	"booking-console/internal/dashboard"
	"booking-console/internal/model"
	"booking-console/internal/session"
	"booking-console/internal/upload"
)

func adminView(t *testing.T, backend *apitest.Server, accountID string, uploads *upload.Client) *dashboard.Admin {
	t.Helper()
	store := session.NewMemoryStore()
	require.NoError(t, store.Save(identityFor(model.RoleAdmin), backend.Token(accountID)))
	return dashboard.NewAdmin(clientFor(backend, store), uploads, nopLog())
}

func seedSystem(backend *apitest.Server) (adminID, patID, docID, apptID string) {
	adminID = backend.SeedAccount("Root", "root@test.com", "rootpass123", "admin")
	patID = backend.SeedAccount("Pat", "pat@test.com", "longenough1", "user")
	docID = backend.SeedDoctor("Dr Grey", "grey@test.com", "longenough1", "Cardiology", "L-1")
	apptID = backend.SeedAppointment(patID, docID, "2026-09-10 09:30", "pending")
	return
}

func TestAdminLoad(t *testing.T) {
	backend := newBackend(t)
	adminID, _, _, _ := seedSystem(backend)

	view := adminView(t, backend, adminID, nil)
	require.NoError(t, view.Load(context.Background()))

	assert.Len(t, view.Users, 1, "only patient accounts count as users")
	assert.Len(t, view.Doctors, 1)
	require.Len(t, view.Appointments, 1)

	// admin rows carry flat names and the legacy datetime field
	ap := view.Appointments[0]
	assert.Equal(t, "Pat", ap.PatientName)
	assert.Equal(t, "Dr Grey", ap.DoctorName)
	assert.Equal(t, "2026-09-10 09:30", ap.When)

	assert.Equal(t, 1, backend.Calls("GET", "/admin/users"))
	assert.Equal(t, 1, backend.Calls("GET", "/admin/doctors"))
	assert.Equal(t, 1, backend.Calls("GET", "/admin/appointments"))
}

func TestAdminLoadRequiresAdminRole(t *testing.T) {
	backend := newBackend(t)
	_, patID, _, _ := seedSystem(backend)

	view := adminView(t, backend, patID, nil)
	err := view.Load(context.Background())
	require.Error(t, err)

	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 403, apiErr.Status)

	// all or nothing: no partial snapshot reaches the view
	assert.Empty(t, view.Users)
	assert.Empty(t, view.Doctors)
	assert.Empty(t, view.Appointments)
	assert.False(t, view.Loading)
}

func TestAdminDeleteUserPatchesLocally(t *testing.T) {
	backend := newBackend(t)
	adminID, patID, _, _ := seedSystem(backend)
	other := backend.SeedAccount("Sam", "sam@test.com", "longenough1", "user")

	view := adminView(t, backend, adminID, nil)
	require.NoError(t, view.Load(context.Background()))
	require.Len(t, view.Users, 2)

	require.NoError(t, view.DeleteUser(context.Background(), patID))

	assert.False(t, backend.HasUser(patID))
	require.Len(t, view.Users, 1)
	assert.Equal(t, other, view.Users[0].ID)
	assert.Equal(t, 1, backend.Calls("GET", "/admin/users"), "delete never re-fetches")
}

func TestAdminDeleteAppointmentPatchesLocally(t *testing.T) {
	backend := newBackend(t)
	adminID, _, _, apptID := seedSystem(backend)

	view := adminView(t, backend, adminID, nil)
	require.NoError(t, view.Load(context.Background()))

	require.NoError(t, view.DeleteAppointment(context.Background(), apptID))

	assert.Empty(t, backend.AppointmentStatus(apptID))
	assert.Empty(t, view.Appointments)
	assert.Equal(t, 1, backend.Calls("GET", "/admin/appointments"), "delete never re-fetches")
}

func TestAdminDeleteFailureKeepsRow(t *testing.T) {
	backend := newBackend(t)
	adminID, _, _, _ := seedSystem(backend)

	view := adminView(t, backend, adminID, nil)
	require.NoError(t, view.Load(context.Background()))

	err := view.DeleteUser(context.Background(), "id-999")
	require.Error(t, err)
	assert.Len(t, view.Users, 1, "failed delete leaves the local list alone")
}

func TestAdminUploadAndDownloadReport(t *testing.T) {
	var (
		fileServer *httptest.Server
		uploaded   int
	)
	fileServer = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			if err := r.ParseMultipartForm(1 << 20); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			uploaded++
			id := "rep-" + strconv.Itoa(uploaded)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"id":       id,
				"file_url": fileServer.URL + "/files/" + id,
			})
		case http.MethodGet:
			_, _ = w.Write([]byte("quarterly numbers"))
		}
	}))
	defer fileServer.Close()

	backend := newBackend(t)
	adminID, _, _, _ := seedSystem(backend)
	uploads := upload.New(fileServer.URL)

	view := adminView(t, backend, adminID, uploads)

	rep, err := view.UploadReport(context.Background(), "q3.pdf", strings.NewReader("quarterly numbers"))
	require.NoError(t, err)
	assert.Equal(t, "rep-1", rep.ID)
	assert.Equal(t, "q3.pdf", rep.Filename)
	assert.False(t, view.Uploading)

	// newest first
	rep2, err := view.UploadReport(context.Background(), "q4.pdf", strings.NewReader("more numbers"))
	require.NoError(t, err)
	require.Len(t, view.Reports, 2)
	assert.Equal(t, rep2.ID, view.Reports[0].ID)

	body, err := view.DownloadReport(context.Background(), "rep-1")
	require.NoError(t, err)
	assert.Equal(t, "quarterly numbers", string(body))
}

func TestAdminUploadValidation(t *testing.T) {
	backend := newBackend(t)
	adminID, _, _, _ := seedSystem(backend)
	view := adminView(t, backend, adminID, nil)

	_, err := view.UploadReport(context.Background(), "", strings.NewReader("x"))
	var emptyErr *dashboard.EmptyUploadError
	require.ErrorAs(t, err, &emptyErr)

	_, err = view.DownloadReport(context.Background(), "nope")
	var unknownErr *dashboard.UnknownReportError
	require.ErrorAs(t, err, &unknownErr)
	assert.Equal(t, "nope", unknownErr.ID)
}
