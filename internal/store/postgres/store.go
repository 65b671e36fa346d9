package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"citaverde/internal/models"
	"citaverde/internal/store"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

const appointmentColumns = `appointment_id, user_id, sede_id, sede_name, service_id, service_name,
	professional_id, professional_name, date, time, status, confirm_token, check_in_at, qr_code, created_at`

const turnColumns = `turn_id, user_id, user_name, sede_id, service_id, queue_id, queue_name,
	number, status, duration_minutes, qr_code, created_at`

func (s *Store) ListQueuesByService(ctx context.Context, sedeID, serviceID string) ([]models.Queue, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT q.queue_id, q.name, q.sede_id, q.service_id, q.active, q.closed,
			(SELECT COUNT(*) FROM turns t WHERE t.queue_id = q.queue_id AND t.status = 'en_espera')
		FROM queues q
		WHERE q.sede_id = $1 AND q.service_id = $2
		ORDER BY q.name ASC
	`, sedeID, serviceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var queues []models.Queue
	for rows.Next() {
		var queue models.Queue
		if err := rows.Scan(&queue.QueueID, &queue.Name, &queue.SedeID, &queue.ServiceID, &queue.Active, &queue.Closed, &queue.CurrentTurns); err != nil {
			return nil, err
		}
		queues = append(queues, queue)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return queues, nil
}

func (s *Store) ListWaitingTurns(ctx context.Context, queueID string) ([]models.Turn, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+turnColumns+`
		FROM turns
		WHERE queue_id = $1 AND status = 'en_espera'
		ORDER BY number ASC
	`, queueID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTurns(rows)
}

func (s *Store) InsertTurn(ctx context.Context, turn models.Turn) (models.Turn, error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return models.Turn{}, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	createdAt := turn.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	var created models.Turn
	row := tx.QueryRow(ctx, `
		INSERT INTO turns (
			turn_id, user_id, user_name, sede_id, service_id, queue_id, queue_name,
			number, status, duration_minutes, qr_code, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		RETURNING `+turnColumns+`
	`, turn.TurnID, turn.UserID, nullIfEmpty(turn.UserName), turn.SedeID, turn.ServiceID,
		turn.QueueID, nullIfEmpty(turn.QueueName), turn.Number, turn.Status,
		turn.DurationMinutes, nullIfEmpty(turn.QRCode), createdAt)
	if created, err = scanTurn(row); err != nil {
		return models.Turn{}, err
	}

	if err = insertOutboxEvent(ctx, tx, "turno.created", map[string]interface{}{
		"turn_id":    created.TurnID,
		"number":     created.Number,
		"queue_id":   created.QueueID,
		"queue_name": created.QueueName,
		"sede_id":    created.SedeID,
		"service_id": created.ServiceID,
		"user_id":    created.UserID,
		"user_name":  created.UserName,
	}); err != nil {
		return models.Turn{}, err
	}

	if err = tx.Commit(ctx); err != nil {
		return models.Turn{}, err
	}
	return created, nil
}

func (s *Store) GetTurn(ctx context.Context, turnID string) (models.Turn, bool, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+turnColumns+`
		FROM turns
		WHERE turn_id = $1
	`, turnID)
	turn, err := scanTurn(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Turn{}, false, nil
		}
		return models.Turn{}, false, err
	}
	return turn, true, nil
}

func (s *Store) SnapshotQueue(ctx context.Context, sedeID, serviceID string) ([]models.Turn, error) {
	query := `
		SELECT ` + turnColumns + `
		FROM turns
		WHERE sede_id = $1 AND status IN ('en_espera','en_atencion')
	`
	args := []interface{}{sedeID}
	if serviceID != "" {
		query += " AND service_id = $2"
		args = append(args, serviceID)
	}
	query += " ORDER BY number ASC"

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTurns(rows)
}

func (s *Store) UpdateTurnStatus(ctx context.Context, turnID string, from []string, to string) (models.Turn, error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return models.Turn{}, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	row := tx.QueryRow(ctx, `
		UPDATE turns
		SET status = $1
		WHERE turn_id = $2 AND status = ANY($3)
		RETURNING `+turnColumns+`
	`, to, turnID, from)
	var turn models.Turn
	if turn, err = scanTurn(row); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			var exists bool
			if err = tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM turns WHERE turn_id = $1)`, turnID).Scan(&exists); err != nil {
				return models.Turn{}, err
			}
			_ = tx.Rollback(ctx)
			if !exists {
				return models.Turn{}, store.ErrNotFound
			}
			return models.Turn{}, store.ErrInvalidState
		}
		return models.Turn{}, err
	}

	if err = insertOutboxEvent(ctx, tx, "turno."+to, map[string]interface{}{
		"turn_id":    turn.TurnID,
		"number":     turn.Number,
		"queue_id":   turn.QueueID,
		"sede_id":    turn.SedeID,
		"service_id": turn.ServiceID,
		"user_id":    turn.UserID,
		"status":     turn.Status,
	}); err != nil {
		return models.Turn{}, err
	}

	if err = tx.Commit(ctx); err != nil {
		return models.Turn{}, err
	}
	return turn, nil
}

func (s *Store) InsertAppointment(ctx context.Context, input store.CreateAppointmentInput) (models.Appointment, error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return models.Appointment{}, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	var sedeName string
	if err = tx.QueryRow(ctx, `SELECT name FROM sedes WHERE sede_id = $1 AND active = TRUE`, input.SedeID).Scan(&sedeName); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Appointment{}, store.ErrNotFound
		}
		return models.Appointment{}, err
	}
	var serviceName string
	if err = tx.QueryRow(ctx, `SELECT name FROM services WHERE service_id = $1 AND active = TRUE`, input.ServiceID).Scan(&serviceName); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Appointment{}, store.ErrNotFound
		}
		return models.Appointment{}, err
	}
	professionalName := ""
	if input.ProfessionalID != "" {
		if err = tx.QueryRow(ctx, `SELECT name FROM professionals WHERE professional_id = $1 AND active = TRUE`, input.ProfessionalID).Scan(&professionalName); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return models.Appointment{}, store.ErrNotFound
			}
			return models.Appointment{}, err
		}
	}

	createdAt := input.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	row := tx.QueryRow(ctx, `
		INSERT INTO appointments (
			appointment_id, user_id, sede_id, sede_name, service_id, service_name,
			professional_id, professional_name, date, time, status, confirm_token, qr_code, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
		RETURNING `+appointmentColumns+`
	`, uuid.NewString(), input.UserID, input.SedeID, sedeName, input.ServiceID, serviceName,
		nullIfEmpty(input.ProfessionalID), nullIfEmpty(professionalName), input.Date, input.Time,
		models.AppointmentConfirmed, uuid.NewString(), uuid.NewString(), createdAt)
	var appointment models.Appointment
	if appointment, err = scanAppointment(row); err != nil {
		return models.Appointment{}, err
	}

	if err = insertOutboxEvent(ctx, tx, "cita.created", map[string]interface{}{
		"appointment_id": appointment.AppointmentID,
		"user_id":        appointment.UserID,
		"sede_name":      appointment.SedeName,
		"service_name":   appointment.ServiceName,
		"date":           appointment.Date,
		"time":           appointment.Time,
		"confirm_token":  appointment.ConfirmToken,
	}); err != nil {
		return models.Appointment{}, err
	}

	if err = tx.Commit(ctx); err != nil {
		return models.Appointment{}, err
	}
	return appointment, nil
}

func (s *Store) ListAppointmentsByUser(ctx context.Context, userID string) ([]models.Appointment, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+appointmentColumns+`
		FROM appointments
		WHERE user_id = $1
		ORDER BY date ASC, time ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var appointments []models.Appointment
	for rows.Next() {
		appointment, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		appointments = append(appointments, appointment)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return appointments, nil
}

func (s *Store) GetAppointmentByToken(ctx context.Context, token string) (models.Appointment, bool, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+appointmentColumns+`
		FROM appointments
		WHERE confirm_token = $1
	`, token)
	appointment, err := scanAppointment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Appointment{}, false, nil
		}
		return models.Appointment{}, false, err
	}
	return appointment, true, nil
}

func (s *Store) UpdateAppointmentStatus(ctx context.Context, appointmentID string, from []string, to string) (models.Appointment, error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return models.Appointment{}, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	row := tx.QueryRow(ctx, `
		UPDATE appointments
		SET status = $1
		WHERE appointment_id = $2 AND status = ANY($3)
		RETURNING `+appointmentColumns+`
	`, to, appointmentID, from)
	var appointment models.Appointment
	if appointment, err = scanAppointment(row); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			var exists bool
			if err = tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM appointments WHERE appointment_id = $1)`, appointmentID).Scan(&exists); err != nil {
				return models.Appointment{}, err
			}
			_ = tx.Rollback(ctx)
			if !exists {
				return models.Appointment{}, store.ErrNotFound
			}
			return models.Appointment{}, store.ErrInvalidState
		}
		return models.Appointment{}, err
	}

	if err = insertOutboxEvent(ctx, tx, "cita."+to, map[string]interface{}{
		"appointment_id": appointment.AppointmentID,
		"user_id":        appointment.UserID,
		"sede_name":      appointment.SedeName,
		"service_name":   appointment.ServiceName,
		"date":           appointment.Date,
		"time":           appointment.Time,
		"status":         appointment.Status,
	}); err != nil {
		return models.Appointment{}, err
	}

	if err = tx.Commit(ctx); err != nil {
		return models.Appointment{}, err
	}
	return appointment, nil
}

func (s *Store) GetAppointmentByCode(ctx context.Context, code string) (models.Appointment, bool, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+appointmentColumns+`
		FROM appointments
		WHERE qr_code = $1
	`, code)
	appointment, err := scanAppointment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Appointment{}, false, nil
		}
		return models.Appointment{}, false, err
	}
	return appointment, true, nil
}

func (s *Store) GetTurnByCode(ctx context.Context, code string) (models.Turn, bool, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+turnColumns+`
		FROM turns
		WHERE qr_code = $1
	`, code)
	turn, err := scanTurn(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Turn{}, false, nil
		}
		return models.Turn{}, false, err
	}
	return turn, true, nil
}

func (s *Store) HasSuccessfulScan(ctx context.Context, code string) (bool, error) {
	var exists bool
	row := s.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM qr_logs WHERE code = $1 AND outcome = 'exitoso'
		)
	`, code)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (s *Store) MarkAppointmentCheckIn(ctx context.Context, appointmentID string, at time.Time) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	tag, err := tx.Exec(ctx, `
		UPDATE appointments
		SET check_in_at = $1
		WHERE appointment_id = $2
	`, at, appointmentID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		_ = tx.Rollback(ctx)
		return store.ErrNotFound
	}

	if err = insertOutboxEvent(ctx, tx, "cita.checked_in", map[string]interface{}{
		"appointment_id": appointmentID,
		"check_in_at":    at,
	}); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// qr_logs is append-only: rows are inserted here and never updated or deleted.
func (s *Store) InsertQRLog(ctx context.Context, entry models.QRLog) error {
	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO qr_logs (log_id, code, appointment_id, turn_id, user_id, ip, user_agent, outcome, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`, entry.LogID, entry.Code, nullIfEmpty(entry.AppointmentID), nullIfEmpty(entry.TurnID),
		nullIfEmpty(entry.UserID), nullIfEmpty(entry.IP), nullIfEmpty(entry.UserAgent), entry.Outcome, createdAt)
	return err
}

func (s *Store) GetService(ctx context.Context, serviceID string) (models.Service, bool, error) {
	var service models.Service
	row := s.pool.QueryRow(ctx, `
		SELECT service_id, sede_id, name, duration_minutes, active
		FROM services
		WHERE service_id = $1
	`, serviceID)
	if err := row.Scan(&service.ServiceID, &service.SedeID, &service.Name, &service.DurationMinutes, &service.Active); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Service{}, false, nil
		}
		return models.Service{}, false, err
	}
	return service, true, nil
}

func (s *Store) ListSedes(ctx context.Context) ([]models.Sede, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT sede_id, name, COALESCE(address, ''), COALESCE(city, ''), active
		FROM sedes
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sedes []models.Sede
	for rows.Next() {
		var sede models.Sede
		if err := rows.Scan(&sede.SedeID, &sede.Name, &sede.Address, &sede.City, &sede.Active); err != nil {
			return nil, err
		}
		sedes = append(sedes, sede)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sedes, nil
}

func (s *Store) CreateSede(ctx context.Context, sede models.Sede) (models.Sede, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO sedes (sede_id, name, address, city, active)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING sede_id, name, COALESCE(address, ''), COALESCE(city, ''), active
	`, uuid.NewString(), sede.Name, nullIfEmpty(sede.Address), nullIfEmpty(sede.City), true)
	var created models.Sede
	if err := row.Scan(&created.SedeID, &created.Name, &created.Address, &created.City, &created.Active); err != nil {
		return models.Sede{}, err
	}
	return created, nil
}

func (s *Store) UpdateSede(ctx context.Context, sede models.Sede) (models.Sede, error) {
	row := s.pool.QueryRow(ctx, `
		UPDATE sedes
		SET name = $1, address = $2, city = $3, active = $4
		WHERE sede_id = $5
		RETURNING sede_id, name, COALESCE(address, ''), COALESCE(city, ''), active
	`, sede.Name, nullIfEmpty(sede.Address), nullIfEmpty(sede.City), sede.Active, sede.SedeID)
	var updated models.Sede
	if err := row.Scan(&updated.SedeID, &updated.Name, &updated.Address, &updated.City, &updated.Active); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Sede{}, store.ErrNotFound
		}
		return models.Sede{}, err
	}
	return updated, nil
}

func (s *Store) ListServices(ctx context.Context, sedeID string) ([]models.Service, error) {
	query := `
		SELECT service_id, sede_id, name, duration_minutes, active
		FROM services
	`
	args := []interface{}{}
	if sedeID != "" {
		query += " WHERE sede_id = $1"
		args = append(args, sedeID)
	}
	query += " ORDER BY name ASC"

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var services []models.Service
	for rows.Next() {
		var service models.Service
		if err := rows.Scan(&service.ServiceID, &service.SedeID, &service.Name, &service.DurationMinutes, &service.Active); err != nil {
			return nil, err
		}
		services = append(services, service)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return services, nil
}

func (s *Store) CreateService(ctx context.Context, service models.Service) (models.Service, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO services (service_id, sede_id, name, duration_minutes, active)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING service_id, sede_id, name, duration_minutes, active
	`, uuid.NewString(), service.SedeID, service.Name, service.DurationMinutes, true)
	var created models.Service
	if err := row.Scan(&created.ServiceID, &created.SedeID, &created.Name, &created.DurationMinutes, &created.Active); err != nil {
		return models.Service{}, err
	}
	return created, nil
}

func (s *Store) UpdateService(ctx context.Context, service models.Service) (models.Service, error) {
	row := s.pool.QueryRow(ctx, `
		UPDATE services
		SET name = $1, duration_minutes = $2, active = $3
		WHERE service_id = $4
		RETURNING service_id, sede_id, name, duration_minutes, active
	`, service.Name, service.DurationMinutes, service.Active, service.ServiceID)
	var updated models.Service
	if err := row.Scan(&updated.ServiceID, &updated.SedeID, &updated.Name, &updated.DurationMinutes, &updated.Active); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Service{}, store.ErrNotFound
		}
		return models.Service{}, err
	}
	return updated, nil
}

func (s *Store) ListProfessionals(ctx context.Context, sedeID string) ([]models.Professional, error) {
	query := `
		SELECT professional_id, sede_id, name, COALESCE(specialty, ''), active
		FROM professionals
	`
	args := []interface{}{}
	if sedeID != "" {
		query += " WHERE sede_id = $1"
		args = append(args, sedeID)
	}
	query += " ORDER BY name ASC"

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var professionals []models.Professional
	for rows.Next() {
		var professional models.Professional
		if err := rows.Scan(&professional.ProfessionalID, &professional.SedeID, &professional.Name, &professional.Specialty, &professional.Active); err != nil {
			return nil, err
		}
		professionals = append(professionals, professional)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return professionals, nil
}

func (s *Store) CreateProfessional(ctx context.Context, professional models.Professional) (models.Professional, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO professionals (professional_id, sede_id, name, specialty, active)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING professional_id, sede_id, name, COALESCE(specialty, ''), active
	`, uuid.NewString(), professional.SedeID, professional.Name, nullIfEmpty(professional.Specialty), true)
	var created models.Professional
	if err := row.Scan(&created.ProfessionalID, &created.SedeID, &created.Name, &created.Specialty, &created.Active); err != nil {
		return models.Professional{}, err
	}
	return created, nil
}

func (s *Store) UpdateProfessional(ctx context.Context, professional models.Professional) (models.Professional, error) {
	row := s.pool.QueryRow(ctx, `
		UPDATE professionals
		SET name = $1, specialty = $2, active = $3
		WHERE professional_id = $4
		RETURNING professional_id, sede_id, name, COALESCE(specialty, ''), active
	`, professional.Name, nullIfEmpty(professional.Specialty), professional.Active, professional.ProfessionalID)
	var updated models.Professional
	if err := row.Scan(&updated.ProfessionalID, &updated.SedeID, &updated.Name, &updated.Specialty, &updated.Active); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Professional{}, store.ErrNotFound
		}
		return models.Professional{}, err
	}
	return updated, nil
}

func (s *Store) GetSettingInt(ctx context.Context, key string, fallback int) (int, error) {
	var raw string
	row := s.pool.QueryRow(ctx, `SELECT value FROM settings WHERE key = $1`, key)
	if err := row.Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fallback, nil
		}
		return fallback, err
	}
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || value <= 0 {
		return fallback, nil
	}
	return value, nil
}

func (s *Store) ListOutboxEvents(ctx context.Context, after time.Time, limit int) ([]store.OutboxEvent, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.pool.Query(ctx, `
		SELECT event_id, type, payload_json, created_at
		FROM outbox_events
		WHERE created_at > $1
		ORDER BY created_at ASC
		LIMIT $2
	`, after, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []store.OutboxEvent
	for rows.Next() {
		var event store.OutboxEvent
		if err := rows.Scan(&event.EventID, &event.Type, &event.Payload, &event.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

func (s *Store) GetLastOffset(ctx context.Context) (time.Time, error) {
	var last time.Time
	row := s.pool.QueryRow(ctx, `SELECT last_event_at FROM worker_offsets WHERE name = 'notifier'`)
	if err := row.Scan(&last); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return time.Time{}, nil
		}
		return time.Time{}, err
	}
	return last, nil
}

func (s *Store) UpdateOffset(ctx context.Context, value time.Time) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO worker_offsets (name, last_event_at)
		VALUES ('notifier', $1)
		ON CONFLICT (name) DO UPDATE SET last_event_at = EXCLUDED.last_event_at
	`, value)
	return err
}

func (s *Store) InsertNotification(ctx context.Context, notification store.Notification) error {
	createdAt := notification.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO notifications (notification_id, channel, recipient, status, attempts, created_at)
		VALUES ($1,$2,$3,$4,$5,$6)
	`, notification.NotificationID, notification.Channel, notification.Recipient, notification.Status, notification.Attempts, createdAt)
	return err
}

func (s *Store) MarkNotificationSent(ctx context.Context, notificationID string) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE notifications SET status = 'sent' WHERE notification_id = $1
	`, notificationID)
	return err
}

func (s *Store) MarkNotificationFailed(ctx context.Context, notificationID, lastError string) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE notifications SET status = 'failed', last_error = $1 WHERE notification_id = $2
	`, lastError, notificationID)
	return err
}

func (s *Store) InsertDLQ(ctx context.Context, notificationID, reason string) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO notification_dlq (notification_id, reason, created_at)
		VALUES ($1,$2,$3)
	`, notificationID, reason, time.Now().UTC())
	return err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTurn(row rowScanner) (models.Turn, error) {
	var turn models.Turn
	var userNameNull sql.NullString
	var queueNameNull sql.NullString
	var qrCodeNull sql.NullString
	if err := row.Scan(&turn.TurnID, &turn.UserID, &userNameNull, &turn.SedeID, &turn.ServiceID,
		&turn.QueueID, &queueNameNull, &turn.Number, &turn.Status, &turn.DurationMinutes,
		&qrCodeNull, &turn.CreatedAt); err != nil {
		return models.Turn{}, err
	}
	turn.UserName = userNameNull.String
	turn.QueueName = queueNameNull.String
	turn.QRCode = qrCodeNull.String
	return turn, nil
}

func collectTurns(rows pgx.Rows) ([]models.Turn, error) {
	var turns []models.Turn
	for rows.Next() {
		turn, err := scanTurn(rows)
		if err != nil {
			return nil, err
		}
		turns = append(turns, turn)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return turns, nil
}

func scanAppointment(row rowScanner) (models.Appointment, error) {
	var appointment models.Appointment
	var professionalIDNull sql.NullString
	var professionalNameNull sql.NullString
	var checkInNull sql.NullTime
	var qrCodeNull sql.NullString
	if err := row.Scan(&appointment.AppointmentID, &appointment.UserID, &appointment.SedeID, &appointment.SedeName,
		&appointment.ServiceID, &appointment.ServiceName, &professionalIDNull, &professionalNameNull,
		&appointment.Date, &appointment.Time, &appointment.Status, &appointment.ConfirmToken,
		&checkInNull, &qrCodeNull, &appointment.CreatedAt); err != nil {
		return models.Appointment{}, err
	}
	appointment.ProfessionalID = professionalIDNull.String
	appointment.ProfessionalName = professionalNameNull.String
	if checkInNull.Valid {
		checkIn := checkInNull.Time
		appointment.CheckInAt = &checkIn
	}
	appointment.QRCode = qrCodeNull.String
	return appointment, nil
}

func insertOutboxEvent(ctx context.Context, tx pgx.Tx, eventType string, payload map[string]interface{}) error {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, `
		INSERT INTO outbox_events (event_id, type, payload_json, created_at)
		VALUES ($1,$2,$3,$4)
	`, uuid.NewString(), eventType, payloadJSON, time.Now().UTC())
	return err
}

func nullIfEmpty(value string) interface{} {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return value
}
