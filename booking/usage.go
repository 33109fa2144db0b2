package booking

import (
	"context"

	"Gin_postgres_redis_booking_tool/models"
)

// UsageStat measures occupancy in days-used, not bookings-made: a day with
// three approved time windows still counts once.
type UsageStat struct {
	EquipmentID   string  `json:"equipmentId"`
	DaysUsed      int     `json:"daysUsed"`
	OccupancyRate float64 `json:"occupancyRate"`
}

// UsageStats counts, per equipment, the distinct dates carrying at least one
// APPROVED reservation in year. Every catalog entry appears, zero or not,
// in catalog order.
func (e *Engine) UsageStats(ctx context.Context, year int) ([]UsageStat, error) {
	approved, err := e.store.ReservationsByYear(ctx, year, models.StatusApproved)
	if err != nil {
		return nil, err
	}

	days := make(map[string]map[string]struct{})
	for _, r := range approved {
		if days[r.EquipmentID] == nil {
			days[r.EquipmentID] = make(map[string]struct{})
		}
		days[r.EquipmentID][r.Date] = struct{}{}
	}

	total := float64(DaysInYear(year))
	stats := make([]UsageStat, 0, len(models.Equipments))
	for _, eq := range models.Equipments {
		n := len(days[eq.ID])
		stats = append(stats, UsageStat{
			EquipmentID:   eq.ID,
			DaysUsed:      n,
			OccupancyRate: float64(n) / total,
		})
	}
	return stats, nil
}

// OccupancyRate is the display percentage denominator'd by the Gregorian
// year length.
func (e *Engine) OccupancyRate(ctx context.Context, equipmentID string, year int) (float64, error) {
	if !models.KnownEquipment(equipmentID) {
		return 0, ErrUnknownEquipment
	}
	stats, err := e.UsageStats(ctx, year)
	if err != nil {
		return 0, err
	}
	for _, st := range stats {
		if st.EquipmentID == equipmentID {
			return st.OccupancyRate, nil
		}
	}
	return 0, ErrUnknownEquipment
}

func DaysInYear(year int) int {
	if year%4 == 0 && (year%100 != 0 || year%400 == 0) {
		return 366
	}
	return 365
}
