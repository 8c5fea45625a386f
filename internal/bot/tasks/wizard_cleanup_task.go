package tasks

import (
	"context"
	"fmt"
)

// newWizardCleanupTask drops lottery dialogues abandoned for longer than the
// configured session TTL.
func newWizardCleanupTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", "wizard_cleanup")

	return func(ctx context.Context) error {
		if deps.Wizard == nil {
			return fmt.Errorf("wizard cleanup: no wizard configured")
		}

		expired := deps.Wizard.ExpireIdle(ctx, deps.Config.Wizard.SessionTTL)
		log.DebugContext(ctx, "Wizard cleanup finished", "expired", expired, "ttl", deps.Config.Wizard.SessionTTL)
		return nil
	}
}
