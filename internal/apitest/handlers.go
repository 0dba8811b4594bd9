package apitest

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type ctxKey string

const accountKey ctxKey = "account"

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func fail(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

// ----- auth -----

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)
	if body.Email == "" || body.Password == "" {
		fail(w, http.StatusBadRequest, "email and password required")
		return
	}

	s.mu.Lock()
	var acct *account
	for _, a := range s.accounts {
		if a.Email == body.Email {
			acct = a
			break
		}
	}
	s.mu.Unlock()

	if acct == nil || bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(body.Password)) != nil {
		fail(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	// auth responses carry token+role at the top level, no data wrapper
	writeJSON(w, http.StatusOK, map[string]string{
		"token": s.mint(acct),
		"role":  acct.Role,
	})
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	role := chi.URLParam(r, "role")
	if role != "user" && role != "doctor" {
		fail(w, http.StatusBadRequest, "unknown role")
		return
	}

	var body struct {
		Name           string `json:"name"`
		Email          string `json:"email"`
		Password       string `json:"password"`
		Specialization string `json:"specialization"`
		LicenseNumber  string `json:"license_number"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)
	if body.Email == "" || body.Password == "" || body.Name == "" {
		fail(w, http.StatusBadRequest, "all fields required")
		return
	}
	if len(body.Password) < 8 {
		fail(w, http.StatusBadRequest, "password too short")
		return
	}

	s.mu.Lock()
	for _, a := range s.accounts {
		if a.Email == body.Email {
			s.mu.Unlock()
			// don't reveal which part failed
			fail(w, http.StatusConflict, "registration failed")
			return
		}
	}
	hash, _ := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.MinCost)
	id := s.id()
	acct := &account{
		ID: id, Name: body.Name, Email: body.Email,
		PasswordHash: string(hash), Role: role,
		Specialization: body.Specialization, LicenseNumber: body.LicenseNumber,
		CreatedAt: "2026-01-01 00:00:00",
	}
	s.accounts[id] = acct
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, map[string]string{
		"token": s.mint(acct),
		"role":  role,
	})
}

func (s *Server) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if raw == "" || raw == r.Header.Get("Authorization") {
			fail(w, http.StatusUnauthorized, "no token")
			return
		}
		tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenUnverifiable
			}
			return []byte(s.secret), nil
		})
		if err != nil || !tok.Valid {
			fail(w, http.StatusUnauthorized, "bad token")
			return
		}
		claims, _ := tok.Claims.(jwt.MapClaims)
		uid, _ := claims["uid"].(string)

		s.mu.Lock()
		acct := s.accounts[uid]
		s.mu.Unlock()
		if acct == nil {
			fail(w, http.StatusUnauthorized, "bad token")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), accountKey, acct)))
	})
}

func caller(r *http.Request) *account {
	acct, _ := r.Context().Value(accountKey).(*account)
	return acct
}

func (s *Server) adminOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if caller(r).Role != "admin" {
			fail(w, http.StatusForbidden, "admin only")
			return
		}
		next(w, r)
	}
}

// ----- patient -----

func (s *Server) listDoctors(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	var out []map[string]any
	for _, a := range s.accounts {
		if a.Role != "doctor" {
			continue
		}
		out = append(out, map[string]any{
			"id": a.ID, "name": a.Name, "email": a.Email,
			"specialization": a.Specialization,
			"license_number": a.LicenseNumber,
			"created_at":     a.CreatedAt,
		})
	}
	s.mu.Unlock()
	sortByID(out)

	// resource endpoints wrap in a data envelope
	writeJSON(w, http.StatusOK, map[string]any{"data": out})
}

func (s *Server) bookAppointment(w http.ResponseWriter, r *http.Request) {
	var body struct {
		DoctorID        string `json:"doctor_id"`
		AppointmentTime string `json:"appointment_time"`
		Notes           string `json:"notes"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)
	if body.DoctorID == "" || body.AppointmentTime == "" {
		fail(w, http.StatusBadRequest, "doctor and time required")
		return
	}

	me := caller(r)
	s.mu.Lock()
	doc, ok := s.accounts[body.DoctorID]
	if !ok || doc.Role != "doctor" {
		s.mu.Unlock()
		fail(w, http.StatusNotFound, "doctor not found")
		return
	}
	id := s.id()
	s.appts[id] = &appointment{
		ID: id, PatientID: me.ID, PatientName: me.Name, PatientEmail: me.Email,
		DoctorID: doc.ID, DoctorName: doc.Name,
		When: body.AppointmentTime, Status: "pending", Notes: body.Notes,
		CreatedAt: "2026-01-02 00:00:00",
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, map[string]any{
		"data": map[string]string{"id": id, "status": "pending"},
	})
}

// ----- doctor -----

func (s *Server) doctorAppointments(w http.ResponseWriter, r *http.Request) {
	me := caller(r)
	s.mu.Lock()
	var out []map[string]any
	for _, ap := range s.appts {
		if ap.DoctorID != me.ID {
			continue
		}
		// nested user object instead of flat patient fields, and the
		// appointment_time name for the timestamp
		out = append(out, map[string]any{
			"id":               ap.ID,
			"appointment_time": ap.When,
			"status":           ap.Status,
			"notes":            ap.Notes,
			"created_at":       ap.CreatedAt,
			"user": map[string]string{
				"name":  ap.PatientName,
				"email": ap.PatientEmail,
			},
		})
	}
	s.mu.Unlock()
	sortByID(out)

	// doubly nested: {appointments: {data: [...]}}
	writeJSON(w, http.StatusOK, map[string]any{
		"appointments": map[string]any{"data": out},
	})
}

func (s *Server) transition(to string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		me := caller(r)

		s.mu.Lock()
		defer s.mu.Unlock()
		ap, ok := s.appts[id]
		if !ok || ap.DoctorID != me.ID {
			fail(w, http.StatusNotFound, "appointment not found")
			return
		}
		if ap.Status != "pending" {
			fail(w, http.StatusConflict, "appointment already "+ap.Status)
			return
		}
		ap.Status = to
		writeJSON(w, http.StatusOK, map[string]any{
			"data": map[string]string{"id": id, "status": to},
		})
	}
}

// ----- admin -----

func (s *Server) adminUsers(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	var out []map[string]any
	for _, a := range s.accounts {
		if a.Role != "user" {
			continue
		}
		out = append(out, map[string]any{
			"id": a.ID, "name": a.Name, "email": a.Email, "created_at": a.CreatedAt,
		})
	}
	s.mu.Unlock()
	sortByID(out)
	writeJSON(w, http.StatusOK, map[string]any{
		"users": map[string]any{"data": out},
	})
}

func (s *Server) adminDoctors(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	var out []map[string]any
	for _, a := range s.accounts {
		if a.Role != "doctor" {
			continue
		}
		out = append(out, map[string]any{
			"id": a.ID, "name": a.Name, "email": a.Email,
			"specialization": a.Specialization,
			"license_number": a.LicenseNumber,
			"created_at":     a.CreatedAt,
		})
	}
	s.mu.Unlock()
	sortByID(out)
	writeJSON(w, http.StatusOK, map[string]any{
		"doctors": map[string]any{"data": out},
	})
}

func (s *Server) adminAppointments(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	var out []map[string]any
	for _, ap := range s.appts {
		// flat fields plus the legacy appointment_datetime name
		out = append(out, map[string]any{
			"id":                   ap.ID,
			"patient_name":         ap.PatientName,
			"patient_email":        ap.PatientEmail,
			"doctor_name":          ap.DoctorName,
			"appointment_datetime": ap.When,
			"status":               ap.Status,
			"created_at":           ap.CreatedAt,
		})
	}
	s.mu.Unlock()
	sortByID(out)
	writeJSON(w, http.StatusOK, map[string]any{
		"appointments": map[string]any{"data": out},
	})
}

func (s *Server) deleteUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.mu.Lock()
	defer s.mu.Unlock()
	acct, ok := s.accounts[id]
	if !ok || acct.Role != "user" {
		fail(w, http.StatusNotFound, "user not found")
		return
	}
	delete(s.accounts, id)
	writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
}

func (s *Server) deleteAppointment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.appts[id]; !ok {
		fail(w, http.StatusNotFound, "appointment not found")
		return
	}
	delete(s.appts, id)
	writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
}

func sortByID(rows []map[string]any) {
	sort.Slice(rows, func(i, j int) bool {
		a, _ := rows[i]["id"].(string)
		b, _ := rows[j]["id"].(string)
		return a < b
	})
}
