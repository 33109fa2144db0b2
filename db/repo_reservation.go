package db

import (
	"context"
	"errors"

	"Gin_postgres_redis_booking_tool/models"
	"Gin_postgres_redis_booking_tool/store"

	"gorm.io/gorm"
)

// Reservations

func (r *Repo) InsertReservation(ctx context.Context, res *models.Reservation) error {
	if err := store.ValidateNew(res); err != nil {
		return err
	}
	return r.DB.WithContext(ctx).Create(res).Error
}

func (r *Repo) GetReservation(ctx context.Context, id string) (*models.Reservation, error) {
	var res models.Reservation
	if err := r.DB.WithContext(ctx).First(&res, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &res, nil
}

// UpdateReservationStatus is a single conditional UPDATE: id AND expected
// status. Two racing admins hit the same row; exactly one matches, the
// loser gets ErrStatusConflict and the original decision survives.
func (r *Repo) UpdateReservationStatus(ctx context.Context, id string, patch store.DecisionPatch) (*models.Reservation, error) {
	tx := r.DB.WithContext(ctx).Model(&models.Reservation{}).
		Where("id = ? AND status = ?", id, patch.ExpectedStatus).
		Updates(map[string]interface{}{
			"status":        patch.Status,
			"decided_at":    patch.DecidedAt,
			"decided_by":    patch.DecidedBy,
			"decision_note": patch.DecisionNote,
		})
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		// Distinguish a missing row from a stale status.
		if _, err := r.GetReservation(ctx, id); err != nil {
			return nil, err
		}
		return nil, store.ErrStatusConflict
	}
	return r.GetReservation(ctx, id)
}

func (r *Repo) ReservationsByYear(ctx context.Context, year int, status string) ([]models.Reservation, error) {
	q := r.DB.WithContext(ctx).Model(&models.Reservation{}).Where("year = ?", year)
	switch status {
	case "":
		q = q.Order("created_at ASC")
	case models.StatusApproved:
		// Calendar order.
		q = q.Where("status = ?", status).Order("date ASC, created_at ASC")
	default:
		// FIFO triage: oldest request first.
		q = q.Where("status = ?", status).Order("created_at ASC")
	}
	var out []models.Reservation
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo) ReservationsForEquipmentOnDate(ctx context.Context, equipmentID, date string, year int) ([]models.Reservation, error) {
	var out []models.Reservation
	err := r.DB.WithContext(ctx).
		Where("equipment_id = ? AND date = ? AND year = ? AND status = ?",
			equipmentID, date, year, models.StatusApproved).
		Order("start_time ASC, created_at ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
