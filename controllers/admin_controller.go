// controllers/admin_controller.go
package controllers

import (
	"net/http"
	"strconv"

	"Gin_postgres_redis_booking_tool/app"
	"Gin_postgres_redis_booking_tool/booking"
	"Gin_postgres_redis_booking_tool/models"

	"github.com/gin-gonic/gin"
)

type AdminController struct{ *Srv }

func NewAdminController(s *Srv) *AdminController { return &AdminController{Srv: s} }

func (ac *AdminController) yearParam(c *gin.Context) (int, bool) {
	if v := c.Query("year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, app.H{"error": "invalid year"})
			return 0, false
		}
		return y, true
	}
	cfg, err := ac.Store.GetConfig(c.Request.Context())
	if err != nil {
		fail(c, err)
		return 0, false
	}
	return cfg.ActiveYear, true
}

// ListPending is the triage queue, oldest request first.
func (ac *AdminController) ListPending(c *gin.Context) {
	year, ok := ac.yearParam(c)
	if !ok {
		return
	}
	items, err := ac.Store.ReservationsByYear(c.Request.Context(), year, models.StatusPending)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"items": items})
}

type decisionReq struct {
	Note string `json:"note"`
}

func (ac *AdminController) Approve(c *gin.Context) { ac.decide(c, booking.ActionApprove) }
func (ac *AdminController) Reject(c *gin.Context)  { ac.decide(c, booking.ActionReject) }

func (ac *AdminController) decide(c *gin.Context, action string) {
	id := c.Param("id")
	var in decisionReq
	_ = c.ShouldBindJSON(&in)

	r, err := ac.Engine.Decide(c.Request.Context(), id, action, in.Note, actor(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// Cancel withdraws an already-approved booking.
func (ac *AdminController) Cancel(c *gin.Context) {
	id := c.Param("id")
	var in decisionReq
	_ = c.ShouldBindJSON(&in)

	r, err := ac.Engine.CancelApproved(c.Request.Context(), id, in.Note, actor(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// Stats returns days-used and occupancy per equipment for the year.
func (ac *AdminController) Stats(c *gin.Context) {
	year, ok := ac.yearParam(c)
	if !ok {
		return
	}
	stats, err := ac.Engine.UsageStats(c.Request.Context(), year)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{
		"year":       year,
		"daysInYear": booking.DaysInYear(year),
		"stats":      stats,
	})
}

// Rollover starts a new year. The confirmation phrase is the whole guard;
// it comes in the body so the speed bump lives server-side, not in a UI
// prompt.
func (ac *AdminController) Rollover(c *gin.Context) {
	var in struct {
		Confirm string `json:"confirm" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	cfg, err := ac.Engine.Rollover(c.Request.Context(), in.Confirm)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"activeYear": cfg.ActiveYear})
}
