package controllers

import (
	"context"
	"net/http"
	"testing"

	"Gin_postgres_redis_booking_tool/booking"
	"Gin_postgres_redis_booking_tool/models"

	"github.com/gin-gonic/gin"
)

// Admin handlers are registered without the auth middleware here; the
// middleware itself is exercised against a live Redis, not in unit tests.
func newAdminRouter(s *Srv) *gin.Engine {
	r := gin.New()
	ac := NewAdminController(s)
	r.GET("/api/admin/reservations/pending", ac.ListPending)
	r.POST("/api/admin/reservations/:id/approve", ac.Approve)
	r.POST("/api/admin/reservations/:id/reject", ac.Reject)
	r.POST("/api/admin/reservations/:id/cancel", ac.Cancel)
	r.GET("/api/admin/stats", ac.Stats)
	r.POST("/api/admin/rollover", ac.Rollover)
	return r
}

func mustSetup(t *testing.T, s *Srv) {
	t.Helper()
	if _, err := s.Engine.Bootstrap(context.Background(), "admin@lab.test", "Admin", []byte("h")); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
}

func createPending(t *testing.T, s *Srv) *models.Reservation {
	t.Helper()
	r, err := s.Engine.Create(context.Background(), booking.CreateInput{
		EquipmentID:   "greenhouse",
		Date:          "2025-06-10",
		RequesterName: "Maria",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	return r
}

func TestApproveEndpoint(t *testing.T) {
	s := newTestSrv(t)
	mustSetup(t, s)
	r := newAdminRouter(s)
	res := createPending(t, s)

	w, body := doJSON(t, r, http.MethodPost, "/api/admin/reservations/"+res.ID+"/approve", `{}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %v", w.Code, body)
	}
	if body["status"] != "APPROVED" {
		t.Errorf("status field = %v, want APPROVED", body["status"])
	}

	// One-shot: deciding again conflicts.
	w, _ = doJSON(t, r, http.MethodPost, "/api/admin/reservations/"+res.ID+"/approve", `{}`)
	if w.Code != http.StatusConflict {
		t.Errorf("second approve status = %d, want 409", w.Code)
	}

	w, _ = doJSON(t, r, http.MethodPost, "/api/admin/reservations/ghost/approve", `{}`)
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown id status = %d, want 404", w.Code)
	}
}

func TestRejectEndpointStoresNote(t *testing.T) {
	s := newTestSrv(t)
	mustSetup(t, s)
	r := newAdminRouter(s)
	res := createPending(t, s)

	w, body := doJSON(t, r, http.MethodPost, "/api/admin/reservations/"+res.ID+"/reject", `{"note":"no slots"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %v", w.Code, body)
	}
	if body["status"] != "REJECTED" || body["decisionNote"] != "no slots" {
		t.Errorf("body = %v", body)
	}
}

func TestCancelEndpoint(t *testing.T) {
	s := newTestSrv(t)
	mustSetup(t, s)
	r := newAdminRouter(s)
	res := createPending(t, s)

	// Cancel only applies to approved bookings.
	w, _ := doJSON(t, r, http.MethodPost, "/api/admin/reservations/"+res.ID+"/cancel", `{}`)
	if w.Code != http.StatusConflict {
		t.Fatalf("cancel pending status = %d, want 409", w.Code)
	}

	doJSON(t, r, http.MethodPost, "/api/admin/reservations/"+res.ID+"/approve", `{}`)
	w, body := doJSON(t, r, http.MethodPost, "/api/admin/reservations/"+res.ID+"/cancel", `{"note":"maintenance"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %v", w.Code, body)
	}
	if body["status"] != "REJECTED" {
		t.Errorf("status field = %v, want REJECTED", body["status"])
	}
}

func TestPendingQueueEndpoint(t *testing.T) {
	s := newTestSrv(t)
	mustSetup(t, s)
	r := newAdminRouter(s)
	res := createPending(t, s)

	w, body := doJSON(t, r, http.MethodGet, "/api/admin/reservations/pending", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	items, _ := body["items"].([]any)
	if len(items) != 1 {
		t.Fatalf("items = %v, want one pending", body["items"])
	}
	first, _ := items[0].(map[string]any)
	if first["id"] != res.ID {
		t.Errorf("pending id = %v, want %s", first["id"], res.ID)
	}
}

func TestStatsEndpoint(t *testing.T) {
	s := newTestSrv(t)
	mustSetup(t, s)
	r := newAdminRouter(s)
	res := createPending(t, s)
	doJSON(t, r, http.MethodPost, "/api/admin/reservations/"+res.ID+"/approve", `{}`)

	w, body := doJSON(t, r, http.MethodGet, "/api/admin/stats", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	stats, _ := body["stats"].([]any)
	if len(stats) != 3 {
		t.Fatalf("stats = %v, want full catalog", body["stats"])
	}
	var greenhouseDays float64
	for _, it := range stats {
		m, _ := it.(map[string]any)
		if m["equipmentId"] == "greenhouse" {
			greenhouseDays, _ = m["daysUsed"].(float64)
		}
	}
	if greenhouseDays != 1 {
		t.Errorf("greenhouse daysUsed = %v, want 1", greenhouseDays)
	}
}

func TestRolloverEndpoint(t *testing.T) {
	s := newTestSrv(t)
	mustSetup(t, s)
	r := newAdminRouter(s)

	cfg, err := s.Store.GetConfig(context.Background())
	if err != nil {
		t.Fatalf("get config: %v", err)
	}

	w, _ := doJSON(t, r, http.MethodPost, "/api/admin/rollover", `{"confirm":"wrong"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("wrong phrase status = %d, want 400", w.Code)
	}

	w, body := doJSON(t, r, http.MethodPost, "/api/admin/rollover", `{"confirm":"INICIAR"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %v", w.Code, body)
	}
	if int(body["activeYear"].(float64)) != cfg.ActiveYear+1 {
		t.Errorf("activeYear = %v, want %d", body["activeYear"], cfg.ActiveYear+1)
	}
}
