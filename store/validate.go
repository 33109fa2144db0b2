package store

import (
	"strings"
	"time"

	"Gin_postgres_redis_booking_tool/models"
)

const DateLayout = "2006-01-02"

// ValidateNew checks a reservation before insert. Both backends call this so
// the ValidationError contract holds regardless of storage. Time windows are
// deliberately not cross-checked (both-or-neither is convention, not schema).
func ValidateNew(r *models.Reservation) error {
	if strings.TrimSpace(r.RequesterName) == "" {
		return &ValidationError{Field: "requesterName", Reason: "must not be empty"}
	}
	if !models.KnownEquipment(r.EquipmentID) {
		return &ValidationError{Field: "equipmentId", Reason: "unknown equipment"}
	}
	if _, err := time.Parse(DateLayout, r.Date); err != nil {
		return &ValidationError{Field: "date", Reason: "must be YYYY-MM-DD"}
	}
	return nil
}
