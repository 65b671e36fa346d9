package checkin

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"citaverde/internal/models"
	"citaverde/internal/store"

	"github.com/google/uuid"
)

const (
	// SettingWindowKey is the settings-table key for the check-in window.
	SettingWindowKey = "checkin_window_minutes"

	DefaultWindowMinutes = 15
)

// Store is the slice of the persistence layer the verifier needs. The
// already-used check is a read followed by a later log insert; there is no
// uniqueness constraint at this layer, so two simultaneous scans of the same
// valid code can both pass it.
type Store interface {
	GetAppointmentByCode(ctx context.Context, code string) (models.Appointment, bool, error)
	GetTurnByCode(ctx context.Context, code string) (models.Turn, bool, error)
	HasSuccessfulScan(ctx context.Context, code string) (bool, error)
	MarkAppointmentCheckIn(ctx context.Context, appointmentID string, at time.Time) error
	InsertQRLog(ctx context.Context, entry models.QRLog) error
	GetSettingInt(ctx context.Context, key string, fallback int) (int, error)
}

type Request struct {
	Code      string
	IP        string
	UserAgent string
}

type Result struct {
	Outcome     string              `json:"outcome"`
	Appointment *models.Appointment `json:"appointment,omitempty"`
	Turn        *models.Turn        `json:"turn,omitempty"`
	CheckedInAt time.Time           `json:"checked_in_at"`
}

type Verifier struct {
	store Store
	now   func() time.Time
}

func NewVerifier(store Store) *Verifier {
	return &Verifier{store: store, now: time.Now}
}

// Verify resolves a scanned code, applies the already-used and time-window
// rules, records the check-in and appends one audit log row for the attempt.
// Only an empty code or an unresolvable code skips the log; every other
// outcome leaves an entry.
func (v *Verifier) Verify(ctx context.Context, req Request) (Result, error) {
	code := strings.TrimSpace(req.Code)
	if code == "" {
		return Result{}, store.ErrInvalidInput
	}

	appointment, foundAppointment, err := v.store.GetAppointmentByCode(ctx, code)
	if err != nil {
		return Result{}, err
	}
	var turn models.Turn
	if !foundAppointment {
		var foundTurn bool
		turn, foundTurn, err = v.store.GetTurnByCode(ctx, code)
		if err != nil {
			return Result{}, err
		}
		if !foundTurn {
			return Result{}, store.ErrCodeNotFound
		}
	}

	entry := models.QRLog{
		Code:      code,
		IP:        req.IP,
		UserAgent: req.UserAgent,
	}
	if foundAppointment {
		entry.AppointmentID = appointment.AppointmentID
		entry.UserID = appointment.UserID
	} else {
		entry.TurnID = turn.TurnID
		entry.UserID = turn.UserID
	}

	used, err := v.store.HasSuccessfulScan(ctx, code)
	if err != nil {
		v.logAttempt(ctx, entry, models.ScanError)
		return Result{}, err
	}
	if used {
		v.logAttempt(ctx, entry, models.ScanUsed)
		return Result{}, store.ErrAlreadyUsed
	}

	now := v.now().UTC()

	if foundAppointment {
		if appointment.Status != models.AppointmentConfirmed {
			v.logAttempt(ctx, entry, models.ScanError)
			return Result{}, fmt.Errorf("%w: la cita esta %s", store.ErrInvalidState, appointment.Status)
		}

		scheduledAt, err := appointment.ScheduledAt()
		if err != nil {
			v.logAttempt(ctx, entry, models.ScanError)
			return Result{}, err
		}

		window, err := v.store.GetSettingInt(ctx, SettingWindowKey, DefaultWindowMinutes)
		if err != nil || window <= 0 {
			window = DefaultWindowMinutes
		}
		opensAt := scheduledAt.Add(-time.Duration(window) * time.Minute)
		if now.Before(opensAt) {
			v.logAttempt(ctx, entry, models.ScanExpired)
			return Result{}, fmt.Errorf("%w: el registro abre %d minutos antes de la cita (%s %s)",
				store.ErrOutOfWindow, window, appointment.Date, appointment.Time)
		}
		if now.After(scheduledAt) {
			v.logAttempt(ctx, entry, models.ScanExpired)
			return Result{}, fmt.Errorf("%w: la hora de la cita (%s %s) ya paso",
				store.ErrOutOfWindow, appointment.Date, appointment.Time)
		}

		if err := v.store.MarkAppointmentCheckIn(ctx, appointment.AppointmentID, now); err != nil {
			v.logAttempt(ctx, entry, models.ScanError)
			return Result{}, err
		}
		appointment.CheckInAt = &now
	}

	entry.LogID = uuid.NewString()
	entry.Outcome = models.ScanSuccess
	entry.CreatedAt = now
	if err := v.store.InsertQRLog(ctx, entry); err != nil {
		return Result{}, err
	}

	result := Result{Outcome: models.ScanSuccess, CheckedInAt: now}
	if foundAppointment {
		result.Appointment = &appointment
	} else {
		result.Turn = &turn
	}
	return result, nil
}

// logAttempt records a failed attempt. The semantic failure is what the
// caller needs, so a log write error here is reported but not returned.
func (v *Verifier) logAttempt(ctx context.Context, entry models.QRLog, outcome string) {
	entry.LogID = uuid.NewString()
	entry.Outcome = outcome
	entry.CreatedAt = v.now().UTC()
	if err := v.store.InsertQRLog(ctx, entry); err != nil {
		log.Printf("qr log insert error: code=%s outcome=%s err=%v", entry.Code, outcome, err)
	}
}
