package repository

import (
	"context"

	"github.com/costpulse/costpulse/internal/domain/entity"
	"github.com/costpulse/costpulse/internal/domain/period"
)

// BillingRepository defines the interface for billing API interactions.
// All operations are read-only and idempotent against the billing
// account; each call may incur provider-side query charges.
type BillingRepository interface {
	// Identity
	GetAccountID(ctx context.Context) (string, error)

	// Cost Operations
	GetActualCost(ctx context.Context, window period.Window) (entity.CostFigure, error)
	GetForecastCost(ctx context.Context, window period.Window) (entity.CostFigure, error)
	GetMonthlyCosts(ctx context.Context, windows []period.Window) ([]entity.MonthlyCost, error)
}
