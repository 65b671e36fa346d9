package models

import (
	"fmt"
	"time"
)

// Appointment is a scheduled, time-specific visit. Status moves one way only:
// confirmada -> en_curso -> completada, or confirmada -> cancelada/no_show.
type Appointment struct {
	AppointmentID    string     `json:"appointment_id"`
	UserID           string     `json:"user_id"`
	SedeID           string     `json:"sede_id"`
	SedeName         string     `json:"sede_name,omitempty"`
	ServiceID        string     `json:"service_id"`
	ServiceName      string     `json:"service_name,omitempty"`
	ProfessionalID   string     `json:"professional_id,omitempty"`
	ProfessionalName string     `json:"professional_name,omitempty"`
	Date             string     `json:"date"`
	Time             string     `json:"time"`
	Status           string     `json:"status"`
	ConfirmToken     string     `json:"confirm_token,omitempty"`
	CheckInAt        *time.Time `json:"check_in_at,omitempty"`
	QRCode           string     `json:"qr_code,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

const (
	AppointmentConfirmed  = "confirmada"
	AppointmentInProgress = "en_curso"
	AppointmentCompleted  = "completada"
	AppointmentCancelled  = "cancelada"
	AppointmentNoShow     = "no_show"
)

const scheduleLayout = "2006-01-02 15:04"

// ScheduledAt combines the stored date and time fields into a single instant.
func (a Appointment) ScheduledAt() (time.Time, error) {
	value, err := time.Parse(scheduleLayout, a.Date+" "+a.Time)
	if err != nil {
		return time.Time{}, fmt.Errorf("appointment %s has invalid schedule: %w", a.AppointmentID, err)
	}
	return value, nil
}

// QRLog is an immutable audit record of one scan attempt. Rows are appended
// once and never updated or deleted.
type QRLog struct {
	LogID         string    `json:"log_id"`
	Code          string    `json:"code"`
	AppointmentID string    `json:"appointment_id,omitempty"`
	TurnID        string    `json:"turn_id,omitempty"`
	UserID        string    `json:"user_id,omitempty"`
	IP            string    `json:"ip,omitempty"`
	UserAgent     string    `json:"user_agent,omitempty"`
	Outcome       string    `json:"outcome"`
	CreatedAt     time.Time `json:"created_at"`
}

const (
	ScanSuccess = "exitoso"
	ScanUsed    = "usado"
	ScanExpired = "vencido"
	ScanError   = "error"
)
