package model

import "time"

// Role selects which dashboard a session can reach. The backend re-checks
// every call against the bearer token, so the role here is routing only.
type Role string

const (
	RolePatient Role = "user"
	RoleDoctor  Role = "doctor"
	RoleAdmin   Role = "admin"
)

func (r Role) Valid() bool {
	return r == RolePatient || r == RoleDoctor || r == RoleAdmin
}

// DashboardPath is where a freshly authenticated session gets sent.
func (r Role) DashboardPath() string {
	return "/dashboard/" + string(r)
}

// Identity is the client-held record of who is logged in. Login stores a
// minimal identity carrying only the role; name and email stay blank until
// some later fetch fills them in. Callers must tolerate that.
type Identity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// Session couples an identity with its bearer token. Either both halves are
// present or the session is absent, never anything in between.
type Session struct {
	Identity
	Token string `json:"-"`
}

type User struct {
	ID        string
	Name      string
	Email     string
	CreatedAt string
}

type Doctor struct {
	ID             string
	Name           string
	Email          string
	Specialization string
	LicenseNumber  string
	Available      bool
	CreatedAt      string

	// Booked is view-local: set after this client books the doctor,
	// never reported by the backend.
	Booked bool
}

type Appointment struct {
	ID           string
	PatientName  string
	PatientEmail string
	DoctorName   string
	When         string // "YYYY-MM-DD HH:MM", as the backend sends it
	Status       Status
	Notes        string
	CreatedAt    string
}

// Report is a session-local record of an uploaded file. The backend has no
// listing endpoint for these, so the list dies with the view.
type Report struct {
	ID         string
	Filename   string
	UploadedAt time.Time
	FileURL    string
}
