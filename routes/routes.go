package routes

import (
	"Gin_postgres_redis_booking_tool/app"
	"Gin_postgres_redis_booking_tool/controllers"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, a *app.App) {
	s := controllers.GetSrv(a)
	resCtl := controllers.NewReservationController(s)
	adminCtl := controllers.NewAdminController(s)
	authCtl := controllers.NewAuthController(s)
	setupCtl := controllers.NewSetupController(s)

	authMW := app.AuthRequired(a.AppSessions(), a.Store)
	adminMW := app.AdminOnly()

	// ------------------------------
	// Public: config, catalog, requests, calendar
	// ------------------------------
	api := r.Group("/api")
	{
		api.GET("/config", resCtl.GetAppConfig)
		api.GET("/equipments", resCtl.ListEquipments)

		api.POST("/reservations", resCtl.Create)
		api.GET("/reservations/approved", resCtl.ListApproved) // ?equipmentId=&year=
		api.GET("/reservations/day", resCtl.ListForDay)        // ?equipmentId=&date=&year=
	}

	// ------------------------------
	// One-time setup (BOOTSTRAP_PASSWORD gated)
	// ------------------------------
	api.POST("/setup/bootstrap", setupCtl.Bootstrap)

	// ------------------------------
	// Auth: password + passkeys
	// ------------------------------
	api.POST("/auth/login", authCtl.Login)
	authed := api.Group("/auth", authMW)
	{
		authed.POST("/logout", authCtl.Logout)
		authed.GET("/whoami", authCtl.WhoAmI)
	}

	wa := r.Group("/webauthn")
	{
		wa.POST("/login/begin", s.BeginLogin)
		wa.POST("/login/finish", s.FinishLogin)
	}
	creds := api.Group("/credentials", authMW)
	{
		creds.POST("/add/begin", s.BeginAddCredential)
		creds.POST("/add/finish", s.FinishAddCredential)
	}

	// ------------------------------
	// Admin: triage, decisions, stats, year rollover
	// ------------------------------
	admin := api.Group("/admin", authMW, adminMW)
	{
		admin.GET("/reservations/pending", adminCtl.ListPending) // ?year=
		admin.POST("/reservations/:id/approve", adminCtl.Approve)
		admin.POST("/reservations/:id/reject", adminCtl.Reject)
		admin.POST("/reservations/:id/cancel", adminCtl.Cancel)

		admin.GET("/stats", adminCtl.Stats) // ?year=
		admin.POST("/rollover", adminCtl.Rollover)
	}
}
