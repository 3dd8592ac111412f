package usecase

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"

	"github.com/costpulse/costpulse/internal/shared/types"
)

// RunOnSchedule runs one summary pass immediately, then repeats it on
// the given cron schedule until ctx is canceled. The first pass must
// succeed; later failures are logged and the schedule keeps running.
func (uc *SummaryUseCase) RunOnSchedule(ctx context.Context, args *types.CLIArgs, schedule string) error {
	if _, err := cron.ParseStandard(schedule); err != nil {
		return fmt.Errorf("invalid schedule %q: %w", schedule, err)
	}

	if err := uc.Run(ctx, args); err != nil {
		return err
	}

	c := cron.New()
	if _, err := c.AddFunc(schedule, func() {
		if err := uc.Run(ctx, args); err != nil {
			uc.console.LogError("Scheduled refresh failed: %s", err)
		}
	}); err != nil {
		return fmt.Errorf("scheduling refresh: %w", err)
	}

	c.Start()
	uc.console.LogInfo("Refreshing on schedule %q. Press Ctrl+C to stop.", schedule)

	<-ctx.Done()

	// Let an in-flight refresh finish before returning.
	<-c.Stop().Done()
	return nil
}
