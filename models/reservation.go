// models/reservation.go
package models

import "time"

const ReservationTable = "erb_reservations"

// Reservation lifecycle statuses. PENDING is the only initial status;
// APPROVED and REJECTED are terminal except for the admin cancellation
// override (APPROVED -> REJECTED).
const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

type Reservation struct {
	ID          string `gorm:"type:uuid;primaryKey" json:"id"`
	Year        int    `gorm:"index:idx_erb_year_status;not null" json:"year"`
	EquipmentID string `gorm:"size:64;index;not null" json:"equipmentId"`
	Date        string `gorm:"size:10;index;not null" json:"date"` // "YYYY-MM-DD"
	StartTime   string `gorm:"size:5" json:"startTime,omitempty"`  // "HH:MM"
	EndTime     string `gorm:"size:5" json:"endTime,omitempty"`

	RequesterName  string `gorm:"size:200;not null" json:"requesterName"`
	RequesterEmail string `gorm:"size:255" json:"requesterEmail,omitempty"`
	Purpose        string `gorm:"size:500" json:"purpose,omitempty"`

	Status    string    `gorm:"size:10;index:idx_erb_year_status;not null;default:'PENDING'" json:"status"`
	CreatedAt time.Time `gorm:"index;not null" json:"createdAt"`

	DecidedAt    *time.Time `json:"decidedAt,omitempty"`
	DecidedBy    string     `gorm:"size:255" json:"decidedBy,omitempty"`
	DecisionNote string     `gorm:"size:500" json:"decisionNote,omitempty"`
}

func (Reservation) TableName() string { return ReservationTable }
