// controllers/setup_controller.go
package controllers

import (
	"net/http"

	"Gin_postgres_redis_booking_tool/app"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type SetupController struct{ *Srv }

func NewSetupController(s *Srv) *SetupController { return &SetupController{Srv: s} }

// Bootstrap provisions the first administrator, gated by a deployment
// password. One-shot: once setupDone is set this returns 409 forever.
func (sc *SetupController) Bootstrap(c *gin.Context) {
	var in struct {
		BootstrapPassword string `json:"bootstrapPassword" binding:"required"`
		AdminEmail        string `json:"adminEmail" binding:"required,email"`
		AdminPassword     string `json:"adminPassword" binding:"required,min=8"`
		DisplayName       string `json:"displayName"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	if sc.Cfg.BootstrapPassword == "" || in.BootstrapPassword != sc.Cfg.BootstrapPassword {
		c.JSON(http.StatusUnauthorized, app.H{"error": "invalid bootstrap password"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	name := in.DisplayName
	if name == "" {
		name = in.AdminEmail
	}
	u, err := sc.Engine.Bootstrap(c.Request.Context(), in.AdminEmail, name, hash)
	if err != nil {
		fail(c, err)
		return
	}

	// First admin is logged in right away.
	if err := sc.issueSession(c.Request.Context(), c.Writer, u.ID); err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": "create app session failed"})
		return
	}
	c.JSON(http.StatusCreated, app.H{"ok": true, "email": u.Email})
}
