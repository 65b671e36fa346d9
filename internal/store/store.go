package store

import (
	"context"
	"encoding/json"
	"time"

	"citaverde/internal/models"
)

type CreateAppointmentInput struct {
	UserID         string
	SedeID         string
	ServiceID      string
	ProfessionalID string
	Date           string
	Time           string
	CreatedAt      time.Time
}

type Store interface {
	// Queues and turns.
	ListQueuesByService(ctx context.Context, sedeID, serviceID string) ([]models.Queue, error)
	ListWaitingTurns(ctx context.Context, queueID string) ([]models.Turn, error)
	InsertTurn(ctx context.Context, turn models.Turn) (models.Turn, error)
	GetTurn(ctx context.Context, turnID string) (models.Turn, bool, error)
	SnapshotQueue(ctx context.Context, sedeID, serviceID string) ([]models.Turn, error)
	UpdateTurnStatus(ctx context.Context, turnID string, from []string, to string) (models.Turn, error)

	// Appointments.
	InsertAppointment(ctx context.Context, input CreateAppointmentInput) (models.Appointment, error)
	ListAppointmentsByUser(ctx context.Context, userID string) ([]models.Appointment, error)
	GetAppointmentByToken(ctx context.Context, token string) (models.Appointment, bool, error)
	UpdateAppointmentStatus(ctx context.Context, appointmentID string, from []string, to string) (models.Appointment, error)

	// QR check-in.
	GetAppointmentByCode(ctx context.Context, code string) (models.Appointment, bool, error)
	GetTurnByCode(ctx context.Context, code string) (models.Turn, bool, error)
	HasSuccessfulScan(ctx context.Context, code string) (bool, error)
	MarkAppointmentCheckIn(ctx context.Context, appointmentID string, at time.Time) error
	InsertQRLog(ctx context.Context, entry models.QRLog) error

	// Catalog.
	GetService(ctx context.Context, serviceID string) (models.Service, bool, error)
	ListSedes(ctx context.Context) ([]models.Sede, error)
	CreateSede(ctx context.Context, sede models.Sede) (models.Sede, error)
	UpdateSede(ctx context.Context, sede models.Sede) (models.Sede, error)
	ListServices(ctx context.Context, sedeID string) ([]models.Service, error)
	CreateService(ctx context.Context, service models.Service) (models.Service, error)
	UpdateService(ctx context.Context, service models.Service) (models.Service, error)
	ListProfessionals(ctx context.Context, sedeID string) ([]models.Professional, error)
	CreateProfessional(ctx context.Context, professional models.Professional) (models.Professional, error)
	UpdateProfessional(ctx context.Context, professional models.Professional) (models.Professional, error)

	// Configuration.
	GetSettingInt(ctx context.Context, key string, fallback int) (int, error)
}

type OutboxEvent struct {
	EventID   string          `json:"event_id"`
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}

type Notification struct {
	NotificationID string
	Channel        string
	Recipient      string
	Status         string
	Attempts       int
	LastError      string
	CreatedAt      time.Time
}
