// app/bootstrap.go
package app

import (
	"context"
	"log"
)

// LogSetupHint prints a reminder at startup while no administrator exists.
// Provisioning itself happens through POST /api/setup/bootstrap, gated by
// BOOTSTRAP_PASSWORD.
func LogSetupHint(ctx context.Context, a *App) {
	cfg, err := a.Store.GetConfig(ctx)
	if err != nil {
		log.Printf("setup check failed: %v", err)
		return
	}
	if cfg.SetupDone {
		return
	}
	if a.Config.BootstrapPassword == "" {
		log.Printf("[SETUP] no admin provisioned and BOOTSTRAP_PASSWORD is unset; set it and POST /api/setup/bootstrap")
		return
	}
	log.Printf("[SETUP] no admin provisioned yet, POST /api/setup/bootstrap to create the first admin (active year %d)", cfg.ActiveYear)
}
