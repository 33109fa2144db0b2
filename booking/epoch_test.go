package booking

import (
	"context"
	"errors"
	"testing"
)

func TestRolloverAdvancesExactlyOneYear(t *testing.T) {
	e, st := newTestEngine(t)
	ctx := context.Background()
	mustBootstrap(t, e)

	before, _ := st.GetConfig(ctx)

	cfg, err := e.Rollover(ctx, ConfirmPhrase)
	if err != nil {
		t.Fatalf("rollover: %v", err)
	}
	if cfg.ActiveYear != before.ActiveYear+1 {
		t.Errorf("activeYear = %d, want %d", cfg.ActiveYear, before.ActiveYear+1)
	}

	// Persisted, not just returned.
	after, _ := st.GetConfig(ctx)
	if after.ActiveYear != before.ActiveYear+1 {
		t.Errorf("stored activeYear = %d, want %d", after.ActiveYear, before.ActiveYear+1)
	}
}

func TestRolloverConfirmationMismatch(t *testing.T) {
	e, st := newTestEngine(t)
	ctx := context.Background()
	mustBootstrap(t, e)

	before, _ := st.GetConfig(ctx)

	for _, phrase := range []string{"wrong", "iniciar", "INICIAR ", ""} {
		if _, err := e.Rollover(ctx, phrase); !errors.Is(err, ErrConfirmationMismatch) {
			t.Errorf("Rollover(%q) err = %v, want ErrConfirmationMismatch", phrase, err)
		}
	}

	after, _ := st.GetConfig(ctx)
	if after.ActiveYear != before.ActiveYear {
		t.Errorf("activeYear moved to %d on failed confirmation", after.ActiveYear)
	}
}

func TestRolloverRequiresSetup(t *testing.T) {
	e, _ := newTestEngine(t)

	if _, err := e.Rollover(context.Background(), ConfirmPhrase); !errors.Is(err, ErrSetupRequired) {
		t.Fatalf("err = %v, want ErrSetupRequired", err)
	}
}

func TestRolloverKeepsExistingReservations(t *testing.T) {
	e, st := newTestEngine(t)
	ctx := context.Background()
	mustBootstrap(t, e)

	r, err := e.Create(ctx, validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	oldYear := r.Year

	if _, err := e.Rollover(ctx, ConfirmPhrase); err != nil {
		t.Fatalf("rollover: %v", err)
	}

	kept, err := st.GetReservation(ctx, r.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if kept.Year != oldYear {
		t.Errorf("reservation re-stamped to year %d", kept.Year)
	}

	// New requests land in the new year.
	r2, _ := e.Create(ctx, validInput())
	if r2.Year != oldYear+1 {
		t.Errorf("new reservation year = %d, want %d", r2.Year, oldYear+1)
	}
}
