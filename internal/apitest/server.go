// Package apitest runs an in-process double of the booking backend for
// tests: the documented REST contract, bearer-token auth, and the same
// inconsistent response envelopes the real service ships.
package apitest

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type account struct {
	ID             string
	Name           string
	Email          string
	PasswordHash   string
	Role           string
	Specialization string
	LicenseNumber  string
	CreatedAt      string
}

type appointment struct {
	ID           string
	PatientID    string
	PatientName  string
	PatientEmail string
	DoctorID     string
	DoctorName   string
	When         string
	Status       string
	Notes        string
	CreatedAt    string
}

// Server is the fake backend. State is guarded by mu; handlers mutate it
// the way the real service would.
type Server struct {
	*httptest.Server

	secret string

	mu       sync.Mutex
	accounts map[string]*account
	appts    map[string]*appointment
	nextID   int
	calls    map[string]int
}

func New() *Server {
	s := &Server{
		secret:   "apitest-secret",
		accounts: make(map[string]*account),
		appts:    make(map[string]*appointment),
		calls:    make(map[string]int),
	}

	r := chi.NewRouter()
	r.Use(s.count)
	r.Post("/login", s.login)
	r.Post("/register/{role}", s.register)

	r.Group(func(r chi.Router) {
		r.Use(s.auth)
		r.Get("/users/doctors", s.listDoctors)
		r.Post("/users/appointments", s.bookAppointment)
		r.Get("/doctors/appointments", s.doctorAppointments)
		r.Post("/doctors/appointments/{id}/accept", s.transition("accepted"))
		r.Post("/doctors/appointments/{id}/reject", s.transition("rejected"))
		r.Get("/admin/users", s.adminOnly(s.adminUsers))
		r.Get("/admin/doctors", s.adminOnly(s.adminDoctors))
		r.Get("/admin/appointments", s.adminOnly(s.adminAppointments))
		r.Delete("/admin/users/{id}", s.adminOnly(s.deleteUser))
		r.Delete("/admin/appointments/{id}", s.adminOnly(s.deleteAppointment))
	})

	s.Server = httptest.NewServer(r)
	return s
}

// Calls reports how many requests hit "METHOD path" (chi route pattern).
func (s *Server) Calls(method, pattern string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[method+" "+pattern]
}

func (s *Server) count(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r)
		if rc := chi.RouteContext(r.Context()); rc != nil {
			s.mu.Lock()
			s.calls[r.Method+" "+rc.RoutePattern()]++
			s.mu.Unlock()
		}
	})
}

// ----- seeding -----

func (s *Server) id() string {
	s.nextID++
	return "id-" + strconv.Itoa(s.nextID)
}

// SeedAccount creates a user directly, bypassing the register endpoint.
// Returns the account id.
func (s *Server) SeedAccount(name, email, password, role string) string {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.id()
	s.accounts[id] = &account{
		ID: id, Name: name, Email: email,
		PasswordHash: string(hash), Role: role,
		CreatedAt: "2026-01-01 00:00:00",
	}
	return id
}

// SeedDoctor creates a doctor account with profile fields.
func (s *Server) SeedDoctor(name, email, password, specialization, license string) string {
	id := s.SeedAccount(name, email, password, "doctor")
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[id].Specialization = specialization
	s.accounts[id].LicenseNumber = license
	return id
}

// SeedAppointment creates an appointment in the given status.
func (s *Server) SeedAppointment(patientID, doctorID, when, status string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.id()
	ap := &appointment{
		ID: id, PatientID: patientID, DoctorID: doctorID,
		When: when, Status: status, CreatedAt: "2026-01-02 00:00:00",
	}
	if p, ok := s.accounts[patientID]; ok {
		ap.PatientName, ap.PatientEmail = p.Name, p.Email
	}
	if d, ok := s.accounts[doctorID]; ok {
		ap.DoctorName = d.Name
	}
	s.appts[id] = ap
	return id
}

// Appointment returns the stored status for an id, "" if gone.
func (s *Server) AppointmentStatus(id string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ap, ok := s.appts[id]; ok {
		return ap.Status
	}
	return ""
}

// HasUser reports whether an account still exists.
func (s *Server) HasUser(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.accounts[id]
	return ok
}

// Token mints a bearer token for a seeded account, for tests that skip the
// login round trip.
func (s *Server) Token(accountID string) string {
	s.mu.Lock()
	acct := s.accounts[accountID]
	s.mu.Unlock()
	if acct == nil {
		return ""
	}
	return s.mint(acct)
}

func (s *Server) mint(acct *account) string {
	claims := jwt.MapClaims{"uid": acct.ID, "role": acct.Role}
	tok, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.secret))
	return tok
}
