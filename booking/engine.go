// Package booking holds the reservation core: the PENDING/APPROVED/REJECTED
// lifecycle, year-scoped usage stats and the guarded year rollover. It is
// stateless between calls and never retries; every failure is a typed
// outcome the caller can inspect.
package booking

import (
	"context"
	"errors"
	"time"

	"Gin_postgres_redis_booking_tool/models"
	"Gin_postgres_redis_booking_tool/store"

	"github.com/google/uuid"
)

var (
	// ErrInvalidTransition: decision on a non-PENDING record, or cancellation
	// of a non-APPROVED one. Also what a lost decide/decide race surfaces as.
	ErrInvalidTransition = errors.New("invalid reservation transition")
	ErrUnknownAction     = errors.New("unknown decision action")

	// ErrSetupRequired gates every admin operation until the first
	// administrator has been provisioned.
	ErrSetupRequired = errors.New("initial setup not completed")
	ErrSetupDone     = errors.New("setup already completed")

	ErrUnknownEquipment = errors.New("unknown equipment")
)

type Engine struct {
	store store.Store
	now   func() time.Time
}

func New(st store.Store) *Engine {
	return &Engine{store: st, now: time.Now}
}

type CreateInput struct {
	EquipmentID    string
	Date           string // "YYYY-MM-DD"
	StartTime      string // optional "HH:MM"
	EndTime        string
	RequesterName  string
	RequesterEmail string
	Purpose        string
}

// Create stamps the record with the current active year and inserts it as
// PENDING. Validation (name, equipment, date shape) happens in the store so
// it holds for both backends.
func (e *Engine) Create(ctx context.Context, in CreateInput) (*models.Reservation, error) {
	cfg, err := e.store.GetConfig(ctx)
	if err != nil {
		return nil, err
	}
	r := &models.Reservation{
		ID:             uuid.NewString(),
		Year:           cfg.ActiveYear,
		EquipmentID:    in.EquipmentID,
		Date:           in.Date,
		StartTime:      in.StartTime,
		EndTime:        in.EndTime,
		RequesterName:  in.RequesterName,
		RequesterEmail: in.RequesterEmail,
		Purpose:        in.Purpose,
		Status:         models.StatusPending,
		CreatedAt:      e.now().UTC(),
	}
	if err := e.store.InsertReservation(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// Decide applies a one-shot APPROVE or REJECT to a pending reservation,
// recording who decided, when and why. Re-deciding is refused so the
// original decision trail is never overwritten.
func (e *Engine) Decide(ctx context.Context, id, action, note, actor string) (*models.Reservation, error) {
	if action != ActionApprove && action != ActionReject {
		return nil, ErrUnknownAction
	}
	return e.apply(ctx, id, action, note, actor)
}

// CancelApproved withdraws a previously granted slot: APPROVED -> REJECTED
// with the same decision metadata contract.
func (e *Engine) CancelApproved(ctx context.Context, id, note, actor string) (*models.Reservation, error) {
	return e.apply(ctx, id, ActionCancel, note, actor)
}

// apply is read -> verify expected status -> conditional write. Under the
// Postgres backend the write is a row-level compare-and-set, so of two
// racing admins exactly one wins and the other sees ErrInvalidTransition.
// The local backend serializes writers, which gives the same outcome.
func (e *Engine) apply(ctx context.Context, id, action, note, actor string) (*models.Reservation, error) {
	if err := e.requireSetup(ctx); err != nil {
		return nil, err
	}
	tr, ok := transitionMap[action]
	if !ok {
		return nil, ErrUnknownAction
	}
	cur, err := e.store.GetReservation(ctx, id)
	if err != nil {
		return nil, err
	}
	if cur.Status != tr.From {
		return nil, ErrInvalidTransition
	}
	updated, err := e.store.UpdateReservationStatus(ctx, id, store.DecisionPatch{
		Status:         tr.To,
		DecidedAt:      e.now().UTC(),
		DecidedBy:      actor,
		DecisionNote:   note,
		ExpectedStatus: tr.From,
	})
	if errors.Is(err, store.ErrStatusConflict) {
		return nil, ErrInvalidTransition
	}
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Bootstrap provisions the first administrator and flips setupDone. It runs
// once; afterwards it fails with ErrSetupDone. If a previous attempt created
// the admin but died before flipping the flag, retrying with the same email
// resumes instead of failing on the duplicate.
func (e *Engine) Bootstrap(ctx context.Context, email, displayName string, passwordHash []byte) (*models.User, error) {
	cfg, err := e.store.GetConfig(ctx)
	if err != nil {
		return nil, err
	}
	if cfg.SetupDone {
		return nil, ErrSetupDone
	}
	u := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: passwordHash,
		IsAdmin:      true,
		CreatedAt:    e.now().UTC(),
	}
	if err := e.store.CreateUser(ctx, u); err != nil {
		if !errors.Is(err, store.ErrEmailTaken) {
			return nil, err
		}
		existing, ferr := e.store.FindUserByEmail(ctx, email)
		if ferr != nil || !existing.IsAdmin {
			return nil, err
		}
		u = existing
	}
	if err := e.store.MarkSetupDone(ctx); err != nil {
		return nil, err
	}
	return u, nil
}

func (e *Engine) requireSetup(ctx context.Context) error {
	cfg, err := e.store.GetConfig(ctx)
	if err != nil {
		return err
	}
	if !cfg.SetupDone {
		return ErrSetupRequired
	}
	return nil
}
