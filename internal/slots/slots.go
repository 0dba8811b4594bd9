// Package slots enumerates the bookable half-hour grid and the date rules
// the booking form enforces before anything goes over the wire.
package slots

import (
	"fmt"
	"time"
)

const (
	openHour  = 9
	closeHour = 17 // last slot starts 17:30
	stepMin   = 30
)

// Times returns every bookable time of day, "09:00" through "17:30"
// inclusive in 30-minute steps.
func Times() []string {
	var out []string
	for hour := openHour; hour <= closeHour; hour++ {
		for min := 0; min < 60; min += stepMin {
			out = append(out, fmt.Sprintf("%02d:%02d", hour, min))
		}
	}
	return out
}

// ValidTime reports whether t is one of the bookable slots.
func ValidTime(t string) bool {
	for _, s := range Times() {
		if s == t {
			return true
		}
	}
	return false
}

// MinDate is the earliest selectable booking date: tomorrow on the local
// clock. Same-day booking is refused client-side only.
func MinDate(now time.Time) string {
	return now.AddDate(0, 0, 1).Format("2006-01-02")
}

// ValidDate reports whether date ("YYYY-MM-DD") is on or after MinDate.
func ValidDate(date string, now time.Time) bool {
	d, err := time.ParseInLocation("2006-01-02", date, now.Location())
	if err != nil {
		return false
	}
	min, _ := time.ParseInLocation("2006-01-02", MinDate(now), now.Location())
	return !d.Before(min)
}

// Combine joins a date and a slot time into the wire format the backend
// expects for appointment_time.
func Combine(date, t string) string {
	return date + " " + t
}
