package booking

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"Gin_postgres_redis_booking_tool/localdb"
	"Gin_postgres_redis_booking_tool/models"
	"Gin_postgres_redis_booking_tool/store"
)

func newTestEngine(t *testing.T) (*Engine, store.Store) {
	t.Helper()
	st, err := localdb.Open(filepath.Join(t.TempDir(), "data.json"))
	if err != nil {
		t.Fatalf("open local store: %v", err)
	}
	return New(st), st
}

func mustBootstrap(t *testing.T, e *Engine) *models.User {
	t.Helper()
	u, err := e.Bootstrap(context.Background(), "admin@lab.test", "Admin", []byte("hash"))
	if err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	return u
}

func validInput() CreateInput {
	return CreateInput{
		EquipmentID:   "greenhouse",
		Date:          "2025-06-10",
		RequesterName: "Maria",
	}
}

func TestCreateStampsPendingAndActiveYear(t *testing.T) {
	e, st := newTestEngine(t)
	ctx := context.Background()

	cfg, err := st.GetConfig(ctx)
	if err != nil {
		t.Fatalf("get config: %v", err)
	}

	r1, err := e.Create(ctx, validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if r1.Status != models.StatusPending {
		t.Errorf("status = %q, want %q", r1.Status, models.StatusPending)
	}
	if r1.Year != cfg.ActiveYear {
		t.Errorf("year = %d, want active year %d", r1.Year, cfg.ActiveYear)
	}
	if r1.ID == "" {
		t.Error("id not assigned")
	}
	if r1.CreatedAt.IsZero() {
		t.Error("createdAt not set")
	}
	if r1.DecidedAt != nil {
		t.Error("decidedAt set on a fresh record")
	}

	r2, err := e.Create(ctx, validInput())
	if err != nil {
		t.Fatalf("create second: %v", err)
	}
	if r1.ID == r2.ID {
		t.Errorf("ids not unique: %q", r1.ID)
	}
}

func TestCreateValidation(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*CreateInput)
	}{
		{"empty requester name", func(in *CreateInput) { in.RequesterName = "  " }},
		{"unknown equipment", func(in *CreateInput) { in.EquipmentID = "teleporter" }},
		{"malformed date", func(in *CreateInput) { in.Date = "10/06/2025" }},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)
			if _, err := e.Create(ctx, in); !store.IsValidation(err) {
				t.Fatalf("err = %v, want ValidationError", err)
			}
		})
	}
}

func TestDecideApproveIsOneShot(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()
	mustBootstrap(t, e)

	r, err := e.Create(ctx, validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	first, err := e.Decide(ctx, r.ID, ActionApprove, "", "admin@lab.test")
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if first.Status != models.StatusApproved {
		t.Errorf("status = %q, want APPROVED", first.Status)
	}
	if first.DecidedAt == nil || first.DecidedBy != "admin@lab.test" {
		t.Errorf("decision metadata missing: %+v", first)
	}

	if _, err := e.Decide(ctx, r.ID, ActionApprove, "", "other@lab.test"); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("second approve err = %v, want ErrInvalidTransition", err)
	}

	// The original decision trail must be untouched.
	after, err := e.store.GetReservation(ctx, r.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !after.DecidedAt.Equal(*first.DecidedAt) || after.DecidedBy != "admin@lab.test" {
		t.Errorf("decision overwritten: %+v", after)
	}
}

func TestDecideRejectStoresNote(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()
	mustBootstrap(t, e)

	r, _ := e.Create(ctx, validInput())
	got, err := e.Decide(ctx, r.ID, ActionReject, "no slots", "admin@lab.test")
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if got.Status != models.StatusRejected {
		t.Errorf("status = %q, want REJECTED", got.Status)
	}
	if got.DecisionNote != "no slots" {
		t.Errorf("decisionNote = %q, want %q", got.DecisionNote, "no slots")
	}
}

func TestDecideErrors(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()
	mustBootstrap(t, e)

	if _, err := e.Decide(ctx, "nope", ActionApprove, "", "a"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("unknown id err = %v, want ErrNotFound", err)
	}

	r, _ := e.Create(ctx, validInput())
	if _, err := e.Decide(ctx, r.ID, "ESCALATE", "", "a"); !errors.Is(err, ErrUnknownAction) {
		t.Errorf("unknown action err = %v, want ErrUnknownAction", err)
	}
	if _, err := e.Decide(ctx, r.ID, ActionCancel, "", "a"); !errors.Is(err, ErrUnknownAction) {
		t.Errorf("cancel via Decide err = %v, want ErrUnknownAction", err)
	}
}

func TestDecideRequiresSetup(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	r, _ := e.Create(ctx, validInput())
	if _, err := e.Decide(ctx, r.ID, ActionApprove, "", "a"); !errors.Is(err, ErrSetupRequired) {
		t.Fatalf("err = %v, want ErrSetupRequired", err)
	}
}

func TestCancelApproved(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()
	mustBootstrap(t, e)

	r, _ := e.Create(ctx, validInput())

	// Cancelling a pending request is not a thing.
	if _, err := e.CancelApproved(ctx, r.ID, "", "a"); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("cancel pending err = %v, want ErrInvalidTransition", err)
	}

	if _, err := e.Decide(ctx, r.ID, ActionApprove, "", "a"); err != nil {
		t.Fatalf("approve: %v", err)
	}
	got, err := e.CancelApproved(ctx, r.ID, "equipment broke", "admin@lab.test")
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if got.Status != models.StatusRejected {
		t.Errorf("status = %q, want REJECTED", got.Status)
	}
	if got.DecisionNote != "equipment broke" {
		t.Errorf("decisionNote = %q", got.DecisionNote)
	}

	// REJECTED is terminal.
	if _, err := e.CancelApproved(ctx, r.ID, "", "a"); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("cancel rejected err = %v, want ErrInvalidTransition", err)
	}
}

func TestBootstrapRunsOnce(t *testing.T) {
	e, st := newTestEngine(t)
	ctx := context.Background()

	u := mustBootstrap(t, e)
	if !u.IsAdmin {
		t.Error("bootstrap user not admin")
	}
	cfg, _ := st.GetConfig(ctx)
	if !cfg.SetupDone {
		t.Error("setupDone not flipped")
	}

	if _, err := e.Bootstrap(ctx, "second@lab.test", "Second", []byte("h")); !errors.Is(err, ErrSetupDone) {
		t.Fatalf("second bootstrap err = %v, want ErrSetupDone", err)
	}
}

func TestBootstrapResumesAfterPartialFailure(t *testing.T) {
	e, st := newTestEngine(t)
	ctx := context.Background()

	// Admin row exists but setupDone was never flipped (crash between the
	// two writes).
	pre := &models.User{ID: "u1", Email: "admin@lab.test", DisplayName: "Admin", PasswordHash: []byte("h"), IsAdmin: true}
	if err := st.CreateUser(ctx, pre); err != nil {
		t.Fatalf("create user: %v", err)
	}

	u, err := e.Bootstrap(ctx, "admin@lab.test", "Admin", []byte("h"))
	if err != nil {
		t.Fatalf("retry bootstrap: %v", err)
	}
	if u.ID != "u1" {
		t.Errorf("user id = %q, want the existing admin", u.ID)
	}
	cfg, _ := st.GetConfig(ctx)
	if !cfg.SetupDone {
		t.Error("setupDone not flipped on resume")
	}
}

func TestBootstrapRefusesNonAdminEmail(t *testing.T) {
	e, st := newTestEngine(t)
	ctx := context.Background()

	pre := &models.User{ID: "u1", Email: "someone@lab.test", DisplayName: "Someone"}
	if err := st.CreateUser(ctx, pre); err != nil {
		t.Fatalf("create user: %v", err)
	}

	if _, err := e.Bootstrap(ctx, "someone@lab.test", "Someone", []byte("h")); !errors.Is(err, store.ErrEmailTaken) {
		t.Fatalf("err = %v, want ErrEmailTaken", err)
	}
	cfg, _ := st.GetConfig(ctx)
	if cfg.SetupDone {
		t.Error("setupDone flipped for a non-admin account")
	}
}

func TestEndToEndFlow(t *testing.T) {
	e, st := newTestEngine(t)
	ctx := context.Background()
	mustBootstrap(t, e)

	cfg, _ := st.GetConfig(ctx)
	year := cfg.ActiveYear

	r, err := e.Create(ctx, CreateInput{
		EquipmentID:   "greenhouse",
		Date:          "2025-06-10",
		RequesterName: "João",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	pending, _ := st.ReservationsByYear(ctx, year, models.StatusPending)
	if len(pending) != 1 || pending[0].ID != r.ID {
		t.Fatalf("pending queue = %+v, want the new request", pending)
	}

	if _, err := e.Decide(ctx, r.ID, ActionApprove, "", "admin@lab.test"); err != nil {
		t.Fatalf("approve: %v", err)
	}

	pending, _ = st.ReservationsByYear(ctx, year, models.StatusPending)
	if len(pending) != 0 {
		t.Fatalf("pending queue not drained: %+v", pending)
	}
	approved, _ := st.ReservationsByYear(ctx, year, models.StatusApproved)
	if len(approved) != 1 || approved[0].ID != r.ID {
		t.Fatalf("approved list = %+v", approved)
	}

	stats, err := e.UsageStats(ctx, year)
	if err != nil {
		t.Fatalf("usage stats: %v", err)
	}
	for _, stat := range stats {
		if stat.EquipmentID == "greenhouse" && stat.DaysUsed != 1 {
			t.Errorf("greenhouse daysUsed = %d, want 1", stat.DaysUsed)
		}
	}
}
