package db

import (
	"context"
	"fmt"
	"time"

	"Gin_postgres_redis_booking_tool/models"
)

// App config singleton (row id = 1, seeded by Migrate).

func (r *Repo) GetConfig(ctx context.Context) (*models.AppConfig, error) {
	var cfg models.AppConfig
	def := models.DefaultAppConfig(time.Now())
	err := r.DB.WithContext(ctx).
		Where(models.AppConfig{ID: models.AppConfigID}).
		Attrs(models.AppConfig{ActiveYear: def.ActiveYear, SetupDone: false}).
		FirstOrCreate(&cfg).Error
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// AdvanceActiveYear increments in the database so concurrent rollovers can
// never skip or repeat a year.
func (r *Repo) AdvanceActiveYear(ctx context.Context) (*models.AppConfig, error) {
	var cfg models.AppConfig
	err := r.DB.WithContext(ctx).Raw(fmt.Sprintf(`
	  UPDATE %s SET active_year = active_year + 1, updated_at = NOW()
	  WHERE id = ?
	  RETURNING id, active_year, setup_done, updated_at
	`, models.AppConfigTable), models.AppConfigID).Scan(&cfg).Error
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *Repo) MarkSetupDone(ctx context.Context) error {
	return r.DB.WithContext(ctx).Model(&models.AppConfig{}).
		Where("id = ?", models.AppConfigID).
		Update("setup_done", true).Error
}
