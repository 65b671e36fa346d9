package postgres

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"citaverde/internal/models"
	"citaverde/internal/store"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

func TestInsertTurnWritesOutboxEvent(t *testing.T) {
	ctx := context.Background()
	st, pool, cleanup := setupTestStore(t, ctx)
	t.Cleanup(cleanup)

	sedeID, serviceID, queueID := seedBaseData(t, ctx, pool)

	turn, err := st.InsertTurn(ctx, models.Turn{
		TurnID:          uuid.NewString(),
		UserID:          "user-1",
		UserName:        "Ana",
		SedeID:          sedeID,
		ServiceID:       serviceID,
		QueueID:         queueID,
		QueueName:       "Caja",
		Number:          1,
		Status:          models.TurnWaiting,
		DurationMinutes: 15,
		QRCode:          uuid.NewString(),
	})
	if err != nil {
		t.Fatalf("insert turn: %v", err)
	}
	if turn.Number != 1 {
		t.Fatalf("expected number 1, got %d", turn.Number)
	}

	var count int
	row := pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM outbox_events WHERE type = 'turno.created'
	`)
	if err := row.Scan(&count); err != nil {
		t.Fatalf("count outbox events: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 turno.created event, got %d", count)
	}

	waiting, err := st.ListWaitingTurns(ctx, queueID)
	if err != nil {
		t.Fatalf("list waiting turns: %v", err)
	}
	if len(waiting) != 1 {
		t.Fatalf("expected 1 waiting turn, got %d", len(waiting))
	}
}

func TestUpdateTurnStatusGuards(t *testing.T) {
	ctx := context.Background()
	st, pool, cleanup := setupTestStore(t, ctx)
	t.Cleanup(cleanup)

	sedeID, serviceID, queueID := seedBaseData(t, ctx, pool)

	turn, err := st.InsertTurn(ctx, models.Turn{
		TurnID:          uuid.NewString(),
		UserID:          "user-1",
		SedeID:          sedeID,
		ServiceID:       serviceID,
		QueueID:         queueID,
		Number:          1,
		Status:          models.TurnWaiting,
		DurationMinutes: 15,
		QRCode:          uuid.NewString(),
	})
	if err != nil {
		t.Fatalf("insert turn: %v", err)
	}

	updated, err := st.UpdateTurnStatus(ctx, turn.TurnID, []string{models.TurnWaiting}, models.TurnAttending)
	if err != nil {
		t.Fatalf("update turn status: %v", err)
	}
	if updated.Status != models.TurnAttending {
		t.Fatalf("expected status %q, got %q", models.TurnAttending, updated.Status)
	}

	if _, err := st.UpdateTurnStatus(ctx, turn.TurnID, []string{models.TurnWaiting}, models.TurnAttending); err != store.ErrInvalidState {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
	if _, err := st.UpdateTurnStatus(ctx, uuid.NewString(), []string{models.TurnWaiting}, models.TurnAttending); err != store.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCheckInMarksAppointmentAndLogsAreAppendOnly(t *testing.T) {
	ctx := context.Background()
	st, pool, cleanup := setupTestStore(t, ctx)
	t.Cleanup(cleanup)

	sedeID, serviceID, _ := seedBaseData(t, ctx, pool)

	appointment, err := st.InsertAppointment(ctx, store.CreateAppointmentInput{
		UserID:    "user-1",
		SedeID:    sedeID,
		ServiceID: serviceID,
		Date:      "2026-09-01",
		Time:      "10:00",
	})
	if err != nil {
		t.Fatalf("insert appointment: %v", err)
	}
	if appointment.Status != models.AppointmentConfirmed {
		t.Fatalf("expected status %q, got %q", models.AppointmentConfirmed, appointment.Status)
	}
	if appointment.QRCode == "" || appointment.ConfirmToken == "" {
		t.Fatalf("expected qr code and confirm token to be set")
	}

	at := time.Now().UTC().Truncate(time.Second)
	if err := st.MarkAppointmentCheckIn(ctx, appointment.AppointmentID, at); err != nil {
		t.Fatalf("mark check-in: %v", err)
	}

	fetched, found, err := st.GetAppointmentByCode(ctx, appointment.QRCode)
	if err != nil || !found {
		t.Fatalf("get appointment by code: found=%v err=%v", found, err)
	}
	if fetched.CheckInAt == nil {
		t.Fatalf("expected check_in_at to be set")
	}

	for _, outcome := range []string{models.ScanSuccess, models.ScanUsed} {
		if err := st.InsertQRLog(ctx, models.QRLog{
			LogID:         uuid.NewString(),
			Code:          appointment.QRCode,
			AppointmentID: appointment.AppointmentID,
			UserID:        appointment.UserID,
			Outcome:       outcome,
		}); err != nil {
			t.Fatalf("insert qr log: %v", err)
		}
	}

	used, err := st.HasSuccessfulScan(ctx, appointment.QRCode)
	if err != nil {
		t.Fatalf("has successful scan: %v", err)
	}
	if !used {
		t.Fatalf("expected successful scan to be recorded")
	}

	var count int
	row := pool.QueryRow(ctx, `SELECT COUNT(*) FROM qr_logs WHERE code = $1`, appointment.QRCode)
	if err := row.Scan(&count); err != nil {
		t.Fatalf("count qr logs: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 log rows, got %d", count)
	}
}

func TestGetSettingIntFallsBack(t *testing.T) {
	ctx := context.Background()
	st, pool, cleanup := setupTestStore(t, ctx)
	t.Cleanup(cleanup)

	value, err := st.GetSettingInt(ctx, "checkin_window_minutes", 15)
	if err != nil {
		t.Fatalf("get setting: %v", err)
	}
	if value != 15 {
		t.Fatalf("expected seeded window 15, got %d", value)
	}

	if _, err := pool.Exec(ctx, `UPDATE settings SET value = '30' WHERE key = 'checkin_window_minutes'`); err != nil {
		t.Fatalf("update setting: %v", err)
	}
	value, err = st.GetSettingInt(ctx, "checkin_window_minutes", 15)
	if err != nil {
		t.Fatalf("get setting: %v", err)
	}
	if value != 30 {
		t.Fatalf("expected window 30, got %d", value)
	}

	value, err = st.GetSettingInt(ctx, "missing_key", 7)
	if err != nil {
		t.Fatalf("get missing setting: %v", err)
	}
	if value != 7 {
		t.Fatalf("expected fallback 7, got %d", value)
	}
}

func setupTestStore(t *testing.T, ctx context.Context) (*Store, *pgxpool.Pool, func()) {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		dsn = os.Getenv("DB_DSN")
	}
	if dsn == "" {
		t.Skip("TEST_DB_DSN or DB_DSN is required for integration tests")
	}

	schema := "test_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	if err := createSchema(ctx, dsn, schema); err != nil {
		t.Fatalf("create schema: %v", err)
	}

	pool, err := newPoolWithSchema(ctx, dsn, schema)
	if err != nil {
		t.Fatalf("open pool: %v", err)
	}

	if err := applyMigrations(ctx, pool); err != nil {
		pool.Close()
		t.Fatalf("apply migrations: %v", err)
	}

	st := NewStore(pool)
	cleanup := func() {
		pool.Close()
		_ = dropSchema(context.Background(), dsn, schema)
	}
	return st, pool, cleanup
}

func createSchema(ctx context.Context, dsn, schema string) error {
	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		return err
	}
	defer conn.Close(ctx)
	_, err = conn.Exec(ctx, "CREATE SCHEMA "+schema)
	return err
}

func dropSchema(ctx context.Context, dsn, schema string) error {
	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		return err
	}
	defer conn.Close(ctx)
	_, err = conn.Exec(ctx, "DROP SCHEMA "+schema+" CASCADE")
	return err
}

func newPoolWithSchema(ctx context.Context, dsn, schema string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	cfg.ConnConfig.RuntimeParams["search_path"] = schema
	return pgxpool.NewWithConfig(ctx, cfg)
}

func applyMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	dir := filepath.Join("..", "..", "..", "migrations")
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		files = append(files, entry.Name())
	}
	sort.Strings(files)
	for _, name := range files {
		content, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return err
		}
		if strings.TrimSpace(string(content)) == "" {
			continue
		}
		if _, err := pool.Exec(ctx, string(content)); err != nil {
			return err
		}
	}
	return nil
}

func seedBaseData(t *testing.T, ctx context.Context, pool *pgxpool.Pool) (sedeID, serviceID, queueID string) {
	t.Helper()
	sedeID = uuid.NewString()
	serviceID = uuid.NewString()
	queueID = uuid.NewString()

	if _, err := pool.Exec(ctx, `
		INSERT INTO sedes (sede_id, name, city, active) VALUES ($1, 'Sede Centro', 'Bogota', true)
	`, sedeID); err != nil {
		t.Fatalf("insert sede: %v", err)
	}
	if _, err := pool.Exec(ctx, `
		INSERT INTO services (service_id, sede_id, name, duration_minutes, active)
		VALUES ($1, $2, 'Consulta General', 20, true)
	`, serviceID, sedeID); err != nil {
		t.Fatalf("insert service: %v", err)
	}
	if _, err := pool.Exec(ctx, `
		INSERT INTO queues (queue_id, sede_id, service_id, name, active, closed)
		VALUES ($1, $2, $3, 'Caja', true, false)
	`, queueID, sedeID, serviceID); err != nil {
		t.Fatalf("insert queue: %v", err)
	}
	return sedeID, serviceID, queueID
}
