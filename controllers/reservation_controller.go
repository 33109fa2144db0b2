// controllers/reservation_controller.go
package controllers

import (
	"net/http"
	"strconv"

	"Gin_postgres_redis_booking_tool/app"
	"Gin_postgres_redis_booking_tool/booking"
	"Gin_postgres_redis_booking_tool/models"

	"github.com/gin-gonic/gin"
)

type ReservationController struct{ *Srv }

func NewReservationController(s *Srv) *ReservationController { return &ReservationController{Srv: s} }

func (rc *ReservationController) GetAppConfig(c *gin.Context) {
	cfg, err := rc.Store.GetConfig(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"activeYear": cfg.ActiveYear, "setupDone": cfg.SetupDone})
}

func (rc *ReservationController) ListEquipments(c *gin.Context) {
	c.JSON(http.StatusOK, app.H{"equipments": models.Equipments})
}

// Create is public: anyone may request a slot. The record always starts
// PENDING in the current active year.
func (rc *ReservationController) Create(c *gin.Context) {
	var in struct {
		EquipmentID    string `json:"equipmentId" binding:"required"`
		Date           string `json:"date" binding:"required"`
		StartTime      string `json:"startTime"`
		EndTime        string `json:"endTime"`
		RequesterName  string `json:"requesterName" binding:"required"`
		RequesterEmail string `json:"requesterEmail"`
		Purpose        string `json:"purpose"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	r, err := rc.Engine.Create(c.Request.Context(), booking.CreateInput{
		EquipmentID:    in.EquipmentID,
		Date:           in.Date,
		StartTime:      in.StartTime,
		EndTime:        in.EndTime,
		RequesterName:  in.RequesterName,
		RequesterEmail: in.RequesterEmail,
		Purpose:        in.Purpose,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, r)
}

// yearParam reads ?year= and falls back to the active year.
func (rc *ReservationController) yearParam(c *gin.Context) (int, error) {
	if v := c.Query("year"); v != "" {
		return strconv.Atoi(v)
	}
	cfg, err := rc.Store.GetConfig(c.Request.Context())
	if err != nil {
		return 0, err
	}
	return cfg.ActiveYear, nil
}

// ListApproved feeds the public calendar: approved slots for one equipment,
// chronological.
func (rc *ReservationController) ListApproved(c *gin.Context) {
	equipmentID := c.Query("equipmentId")
	if !models.KnownEquipment(equipmentID) {
		c.JSON(http.StatusBadRequest, app.H{"error": "unknown equipment"})
		return
	}
	year, err := rc.yearParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "invalid year"})
		return
	}
	all, err := rc.Store.ReservationsByYear(c.Request.Context(), year, models.StatusApproved)
	if err != nil {
		fail(c, err)
		return
	}
	items := make([]models.Reservation, 0, len(all))
	for _, r := range all {
		if r.EquipmentID == equipmentID {
			items = append(items, r)
		}
	}
	c.JSON(http.StatusOK, app.H{"items": items})
}

// ListForDay backs the day-details panel: approved windows for one
// equipment on one date, plus the catalog entry for the header.
func (rc *ReservationController) ListForDay(c *gin.Context) {
	eq, ok := models.GetEquipmentByID(c.Query("equipmentId"))
	date := c.Query("date")
	if !ok || date == "" {
		c.JSON(http.StatusBadRequest, app.H{"error": "equipmentId and date required"})
		return
	}
	year, err := rc.yearParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "invalid year"})
		return
	}
	items, err := rc.Store.ReservationsForEquipmentOnDate(c.Request.Context(), eq.ID, date, year)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"equipment": eq, "items": items})
}
