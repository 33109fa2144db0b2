// Package store defines the persistence contract shared by the Postgres
// backend (db) and the single-file local backend (localdb). The two differ
// only in atomicity: Postgres gives row-level compare-and-set, the local
// store rewrites the whole collection under a process mutex. Everything
// above is written against the weaker of the two.
package store

import (
	"context"
	"time"

	"Gin_postgres_redis_booking_tool/models"
)

// DecisionPatch is the only mutation ever applied to a reservation after
// insert. ExpectedStatus makes the write conditional: if the record is no
// longer in that status the store returns ErrStatusConflict and changes
// nothing, so a lost race never silently overwrites a decision.
type DecisionPatch struct {
	Status       string
	DecidedAt    time.Time
	DecidedBy    string
	DecisionNote string

	ExpectedStatus string
}

type Store interface {
	// Reservations. InsertReservation validates the record (see ValidateNew)
	// and persists it untouched; it never modifies other records.
	InsertReservation(ctx context.Context, r *models.Reservation) error
	GetReservation(ctx context.Context, id string) (*models.Reservation, error)
	UpdateReservationStatus(ctx context.Context, id string, patch DecisionPatch) (*models.Reservation, error)

	// ReservationsByYear returns records with exactly that year. status may
	// be empty (all statuses). Ordering: PENDING by createdAt asc (FIFO
	// triage), APPROVED by date asc (calendar order).
	ReservationsByYear(ctx context.Context, year int, status string) ([]models.Reservation, error)
	ReservationsForEquipmentOnDate(ctx context.Context, equipmentID, date string, year int) ([]models.Reservation, error)

	// App config singleton. GetConfig creates the default row on first
	// access. AdvanceActiveYear is the rollover write: activeYear += 1,
	// atomic where the backend allows it.
	GetConfig(ctx context.Context) (*models.AppConfig, error)
	AdvanceActiveYear(ctx context.Context) (*models.AppConfig, error)
	MarkSetupDone(ctx context.Context) error

	// Admin users + passkeys.
	CreateUser(ctx context.Context, u *models.User) error
	FindUserByID(ctx context.Context, id string) (*models.User, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	TouchUserLogin(ctx context.Context, id string) error

	AddCredential(ctx context.Context, c *models.Credential) error
	LoadUserCredentials(ctx context.Context, userID string) ([]models.Credential, error)
	UpdateCredentialCounter(ctx context.Context, credID []byte, signCount uint32, cloneWarn bool) error
	FindUserByCredentialID(ctx context.Context, credID []byte) (*models.User, *models.Credential, error)
}
