package booking

import (
	"context"
	"strings"
	"time"

	"citaverde/internal/models"
	"citaverde/internal/store"

	"github.com/google/uuid"
)

// DefaultDurationMinutes is used when the requested service cannot be
// resolved to a catalog record.
const DefaultDurationMinutes = 15

// Store is the slice of the persistence layer the assigner needs. Every call
// is an independent round trip; there is no transaction spanning them.
type Store interface {
	GetService(ctx context.Context, serviceID string) (models.Service, bool, error)
	ListQueuesByService(ctx context.Context, sedeID, serviceID string) ([]models.Queue, error)
	ListWaitingTurns(ctx context.Context, queueID string) ([]models.Turn, error)
	InsertTurn(ctx context.Context, turn models.Turn) (models.Turn, error)
}

type Request struct {
	UserID    string
	UserName  string
	SedeID    string
	ServiceID string
}

type Assigner struct {
	store Store
	now   func() time.Time
}

func NewAssigner(store Store) *Assigner {
	return &Assigner{store: store, now: time.Now}
}

// Assign picks an eligible queue for the requested service at the sede and
// issues the next sequential ticket number. Numbering is computed from a read
// of the waiting turns, so two concurrent requests against the same queue can
// draw the same number; the hosted store is the only arbiter.
func (a *Assigner) Assign(ctx context.Context, req Request) (models.Turn, error) {
	req.UserID = strings.TrimSpace(req.UserID)
	req.SedeID = strings.TrimSpace(req.SedeID)
	req.ServiceID = strings.TrimSpace(req.ServiceID)
	if req.UserID == "" || req.SedeID == "" || req.ServiceID == "" {
		return models.Turn{}, store.ErrInvalidInput
	}

	duration := DefaultDurationMinutes
	service, found, err := a.store.GetService(ctx, req.ServiceID)
	if err != nil {
		return models.Turn{}, err
	}
	if found && service.DurationMinutes > 0 {
		duration = service.DurationMinutes
	}

	queues, err := a.store.ListQueuesByService(ctx, req.SedeID, req.ServiceID)
	if err != nil {
		return models.Turn{}, err
	}
	chosen, ok := pickQueue(queues)
	if !ok {
		return models.Turn{}, store.ErrNoQueueAvailable
	}

	waiting, err := a.store.ListWaitingTurns(ctx, chosen.QueueID)
	if err != nil {
		return models.Turn{}, err
	}

	turn := models.Turn{
		TurnID:          uuid.NewString(),
		UserID:          req.UserID,
		UserName:        strings.TrimSpace(req.UserName),
		SedeID:          req.SedeID,
		ServiceID:       req.ServiceID,
		QueueID:         chosen.QueueID,
		QueueName:       chosen.Name,
		Number:          nextNumber(waiting),
		Status:          models.TurnWaiting,
		DurationMinutes: duration,
		QRCode:          uuid.NewString(),
		CreatedAt:       a.now().UTC(),
	}
	return a.store.InsertTurn(ctx, turn)
}

// pickQueue filters to active, open queues and returns the one with the
// fewest current turns. Ties keep the first match in fetch order; this is a
// heuristic, not a fair balancer.
func pickQueue(queues []models.Queue) (models.Queue, bool) {
	var chosen models.Queue
	found := false
	for _, q := range queues {
		if !q.Active || q.Closed {
			continue
		}
		if !found || q.CurrentTurns < chosen.CurrentTurns {
			chosen = q
			found = true
		}
	}
	return chosen, found
}

func nextNumber(waiting []models.Turn) int {
	next := 1
	for _, turn := range waiting {
		if turn.Number >= next {
			next = turn.Number + 1
		}
	}
	return next
}
