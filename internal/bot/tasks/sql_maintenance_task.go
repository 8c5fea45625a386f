package tasks

import (
	"context"
	"fmt"
	"time"
)

// newSQLMaintenanceTask purges moderation events past their retention and then
// runs database maintenance.
func newSQLMaintenanceTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", "sql_maintenance")

	return func(ctx context.Context) error {
		log.InfoContext(ctx, "Starting scheduled SQL maintenance task...")
		startTime := time.Now()

		cutoff := startTime.Add(-deps.Config.Database.EventRetention)
		purged, err := deps.Store.PurgeModerationEvents(ctx, cutoff)
		if err != nil {
			log.ErrorContext(ctx, "Failed to purge moderation events", "error", err, "cutoff", cutoff)
			return fmt.Errorf("purge moderation events: %w", err)
		}
		log.InfoContext(ctx, "Purged old moderation events", "count", purged, "cutoff", cutoff)

		if err := deps.Store.RunSQLMaintenance(ctx); err != nil {
			log.ErrorContext(ctx, "SQL maintenance task failed", "error", err, "duration", time.Since(startTime))
			return fmt.Errorf("sql maintenance failed: %w", err)
		}

		log.InfoContext(ctx, "Scheduled SQL maintenance task completed successfully", "duration", time.Since(startTime))
		return nil
	}
}
