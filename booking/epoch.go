package booking

import (
	"context"
	"errors"

	"Gin_postgres_redis_booking_tool/models"
)

// ConfirmPhrase is the exact, case-sensitive phrase the operator types to
// start a new year. A deliberate speed bump, not a credential: rollover is
// irreversible and moves the whole working view to the next year.
const ConfirmPhrase = "INICIAR"

var ErrConfirmationMismatch = errors.New("confirmation phrase mismatch")

// Rollover advances the active year by one. Existing reservations keep
// their original year; only new requests and the active queue move. There
// is no inverse operation.
func (e *Engine) Rollover(ctx context.Context, confirm string) (*models.AppConfig, error) {
	if err := e.requireSetup(ctx); err != nil {
		return nil, err
	}
	if confirm != ConfirmPhrase {
		return nil, ErrConfirmationMismatch
	}
	return e.store.AdvanceActiveYear(ctx)
}
