package models

import "time"

// Queue is a waiting line for one service at one sede. A queue accepts new
// turns only while active and not closed.
type Queue struct {
	QueueID      string `json:"queue_id"`
	Name         string `json:"name"`
	SedeID       string `json:"sede_id"`
	ServiceID    string `json:"service_id"`
	Active       bool   `json:"active"`
	Closed       bool   `json:"closed"`
	CurrentTurns int    `json:"turnos_actuales"`
}

// Turn is one numbered ticket in a queue. The queue is referenced by id;
// QueueName is carried for display only.
type Turn struct {
	TurnID          string    `json:"turn_id"`
	UserID          string    `json:"user_id"`
	UserName        string    `json:"user_name,omitempty"`
	SedeID          string    `json:"sede_id"`
	ServiceID       string    `json:"service_id"`
	QueueID         string    `json:"queue_id"`
	QueueName       string    `json:"queue_name,omitempty"`
	Number          int       `json:"number"`
	Status          string    `json:"status"`
	DurationMinutes int       `json:"duration_minutes"`
	QRCode          string    `json:"qr_code,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

const (
	TurnWaiting   = "en_espera"
	TurnAttending = "en_atencion"
	TurnAttended  = "atendido"
	TurnCancelled = "cancelado"
)
