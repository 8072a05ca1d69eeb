package logging

import (
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/reportdesk/internal/models"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// StartCleanup schedules a purge of system_logs older than retentionDays.
// The returned scheduler is already running; stop it on shutdown.
func StartCleanup(db *gorm.DB, schedule string, retentionDays int) (*cron.Cron, error) {
	c := cron.New()
	if _, err := c.AddFunc(schedule, func() {
		PurgeSystemLogs(db, retentionDays, time.Now())
	}); err != nil {
		return nil, err
	}
	c.Start()
	slog.Info("log cleanup scheduled", "schedule", schedule, "retention_days", retentionDays)
	return c, nil
}

// PurgeSystemLogs deletes system_logs recorded before now minus retentionDays.
func PurgeSystemLogs(db *gorm.DB, retentionDays int, now time.Time) int64 {
	cutoff := now.AddDate(0, 0, -retentionDays)
	result := db.Where("timestamp < ?", cutoff).Delete(&models.SystemLog{})
	if result.Error != nil {
		slog.Error("log cleanup failed", "error", result.Error)
		return 0
	}
	if result.RowsAffected > 0 {
		slog.Info("log cleanup completed", "deleted", result.RowsAffected)
	}
	return result.RowsAffected
}
