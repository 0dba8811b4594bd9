package api

import (
	"bytes"
	"encoding/json"

	"booking-console/internal/model"
)

// The backend never settled on one shape per concept. Everything below maps
// its variants into the canonical model types right at the gateway boundary
// so no consumer re-implements the fallback chains.

// flexString accepts a JSON string or number; some endpoints send ids as
// integers.
type flexString string

func (s *flexString) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*s = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = flexString(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*s = flexString(n.String())
	return nil
}

type wireUser struct {
	ID        flexString `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	CreatedAt string     `json:"created_at"`
}

func (w wireUser) canonical() model.User {
	return model.User{
		ID:        string(w.ID),
		Name:      w.Name,
		Email:     w.Email,
		CreatedAt: w.CreatedAt,
	}
}

type wireDoctor struct {
	ID             flexString `json:"id"`
	Name           string     `json:"name"`
	Email          string     `json:"email"`
	Specialization string     `json:"specialization"`
	LicenseNumber  string     `json:"license_number"`
	Available      *bool      `json:"available"`
	CreatedAt      string     `json:"created_at"`
}

func (w wireDoctor) canonical() model.Doctor {
	d := model.Doctor{
		ID:             string(w.ID),
		Name:           w.Name,
		Email:          w.Email,
		Specialization: w.Specialization,
		LicenseNumber:  w.LicenseNumber,
		Available:      true, // absent means bookable
		CreatedAt:      w.CreatedAt,
	}
	if d.Specialization == "" {
		d.Specialization = "N/A"
	}
	if w.Available != nil {
		d.Available = *w.Available
	}
	return d
}

type wireAppointment struct {
	ID           flexString `json:"id"`
	PatientName  string     `json:"patient_name"`
	PatientEmail string     `json:"patient_email"`
	DoctorName   string     `json:"doctor_name"`
	// two names for the same timestamp; appointment_time wins
	AppointmentDatetime string `json:"appointment_datetime"`
	AppointmentTime     string `json:"appointment_time"`
	Status              string `json:"status"`
	Notes               string `json:"notes"`
	CreatedAt           string `json:"created_at"`
	User                *struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"user"`
	Doctor *struct {
		Name string `json:"name"`
	} `json:"doctor"`
}

func (w wireAppointment) canonical() model.Appointment {
	a := model.Appointment{
		ID:           string(w.ID),
		PatientName:  w.PatientName,
		PatientEmail: w.PatientEmail,
		DoctorName:   w.DoctorName,
		When:         w.AppointmentDatetime,
		Status:       model.Status(w.Status),
		Notes:        w.Notes,
		CreatedAt:    w.CreatedAt,
	}
	if w.AppointmentTime != "" {
		a.When = w.AppointmentTime
	}
	if a.PatientName == "" && w.User != nil {
		a.PatientName = w.User.Name
	}
	if a.PatientEmail == "" && w.User != nil {
		a.PatientEmail = w.User.Email
	}
	if a.DoctorName == "" && w.Doctor != nil {
		a.DoctorName = w.Doctor.Name
	}
	return a
}

// collection digs the element list out of a normalized body. Observed
// shapes: a bare array, {"data":[...]}, or {"<key>":{"data":[...]}} with
// key being "users", "doctors" or "appointments". Anything else degrades to
// an empty list so the view renders "no data" instead of crashing.
func collection(body []byte, key string) []json.RawMessage {
	var arr []json.RawMessage
	if json.Unmarshal(body, &arr) == nil {
		return arr
	}
	var obj map[string]json.RawMessage
	if json.Unmarshal(body, &obj) != nil {
		return nil
	}
	if raw, ok := obj[key]; ok {
		if json.Unmarshal(raw, &arr) == nil {
			return arr
		}
		var inner struct {
			Data []json.RawMessage `json:"data"`
		}
		if json.Unmarshal(raw, &inner) == nil && inner.Data != nil {
			return inner.Data
		}
	}
	if raw, ok := obj["data"]; ok && json.Unmarshal(raw, &arr) == nil {
		return arr
	}
	return nil
}

func decodeUsers(body []byte) []model.User {
	out := []model.User{}
	for _, raw := range collection(body, "users") {
		var w wireUser
		if json.Unmarshal(raw, &w) == nil {
			out = append(out, w.canonical())
		}
	}
	return out
}

func decodeDoctors(body []byte) []model.Doctor {
	out := []model.Doctor{}
	for _, raw := range collection(body, "doctors") {
		var w wireDoctor
		if json.Unmarshal(raw, &w) == nil {
			out = append(out, w.canonical())
		}
	}
	return out
}

func decodeAppointments(body []byte) []model.Appointment {
	out := []model.Appointment{}
	for _, raw := range collection(body, "appointments") {
		var w wireAppointment
		if json.Unmarshal(raw, &w) == nil {
			out = append(out, w.canonical())
		}
	}
	return out
}
