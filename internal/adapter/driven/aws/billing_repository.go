package aws

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	ceTypes "github.com/aws/aws-sdk-go-v2/service/costexplorer/types"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/aws/smithy-go"
	"github.com/shopspring/decimal"

	"github.com/costpulse/costpulse/internal/domain/entity"
	"github.com/costpulse/costpulse/internal/domain/period"
	"github.com/costpulse/costpulse/internal/shared/types"
)

const (
	// Cost Explorer is served from a single region.
	costExplorerRegion = "us-east-1"

	costMetric      = "UnblendedCost"
	defaultCurrency = "USD"
)

// CostExplorerAPI captures the Cost Explorer operations the repository
// issues, so tests can substitute them.
type CostExplorerAPI interface {
	GetCostAndUsage(ctx context.Context, params *costexplorer.GetCostAndUsageInput, optFns ...func(*costexplorer.Options)) (*costexplorer.GetCostAndUsageOutput, error)
	GetCostForecast(ctx context.Context, params *costexplorer.GetCostForecastInput, optFns ...func(*costexplorer.Options)) (*costexplorer.GetCostForecastOutput, error)
}

// STSAPI captures the STS call used to resolve the account identity.
type STSAPI interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

// BillingRepositoryImpl implements repository.BillingRepository against
// Cost Explorer and STS.
type BillingRepositoryImpl struct {
	ce  CostExplorerAPI
	sts STSAPI
}

// NewBillingRepository builds the repository over real AWS clients using
// the supplied credential providers, tried in order. An empty region
// falls back to the Cost Explorer home region.
func NewBillingRepository(region string, providers []aws.CredentialsProvider) *BillingRepositoryImpl {
	if region == "" {
		region = costExplorerRegion
	}
	cfg := aws.Config{
		Region:      region,
		Credentials: aws.NewCredentialsCache(NewChainProvider(providers)),
	}
	return &BillingRepositoryImpl{
		ce:  costexplorer.NewFromConfig(cfg),
		sts: sts.NewFromConfig(cfg),
	}
}

// NewBillingRepositoryWithAPI wires explicit API implementations, used
// by tests.
func NewBillingRepositoryWithAPI(ce CostExplorerAPI, stsAPI STSAPI) *BillingRepositoryImpl {
	return &BillingRepositoryImpl{ce: ce, sts: stsAPI}
}

func (r *BillingRepositoryImpl) GetAccountID(ctx context.Context) (string, error) {
	result, err := r.sts.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", classifyError("GetCallerIdentity", err)
	}
	return aws.ToString(result.Account), nil
}

func (r *BillingRepositoryImpl) GetActualCost(ctx context.Context, window period.Window) (entity.CostFigure, error) {
	start, end := window.Format()
	input := &costexplorer.GetCostAndUsageInput{
		TimePeriod: &ceTypes.DateInterval{
			Start: aws.String(start),
			End:   aws.String(end),
		},
		Granularity: ceTypes.GranularityMonthly,
		Metrics:     []string{costMetric},
	}

	result, err := r.ce.GetCostAndUsage(ctx, input)
	if err != nil {
		return entity.CostFigure{}, classifyError("GetCostAndUsage", err)
	}

	total := decimal.Zero
	currency := defaultCurrency
	for _, bucket := range result.ResultsByTime {
		val, ok := bucket.Total[costMetric]
		if !ok {
			continue
		}
		amount, err := decimal.NewFromString(aws.ToString(val.Amount))
		if err != nil {
			return entity.CostFigure{}, fmt.Errorf("parsing cost amount %q: %w", aws.ToString(val.Amount), err)
		}
		total = total.Add(amount)
		if unit := aws.ToString(val.Unit); unit != "" {
			currency = unit
		}
	}

	return entity.CostFigure{Amount: total, Currency: currency}, nil
}

func (r *BillingRepositoryImpl) GetForecastCost(ctx context.Context, window period.Window) (entity.CostFigure, error) {
	start, end := window.Format()
	input := &costexplorer.GetCostForecastInput{
		TimePeriod: &ceTypes.DateInterval{
			Start: aws.String(start),
			End:   aws.String(end),
		},
		Granularity: ceTypes.GranularityMonthly,
		Metric:      ceTypes.MetricUnblendedCost,
	}

	result, err := r.ce.GetCostForecast(ctx, input)
	if err != nil {
		return entity.CostFigure{}, classifyError("GetCostForecast", err)
	}

	if result.Total == nil || result.Total.Amount == nil {
		return entity.ZeroCost(defaultCurrency), nil
	}

	amount, err := decimal.NewFromString(aws.ToString(result.Total.Amount))
	if err != nil {
		return entity.CostFigure{}, fmt.Errorf("parsing forecast amount %q: %w", aws.ToString(result.Total.Amount), err)
	}

	currency := aws.ToString(result.Total.Unit)
	if currency == "" {
		currency = defaultCurrency
	}
	return entity.CostFigure{Amount: amount, Currency: currency}, nil
}

// GetMonthlyCosts resolves a set of month windows with a single query
// spanning them, then maps the monthly buckets back onto the windows.
// Windows the response has no bucket for come back as zero figures.
func (r *BillingRepositoryImpl) GetMonthlyCosts(ctx context.Context, windows []period.Window) ([]entity.MonthlyCost, error) {
	if len(windows) == 0 {
		return nil, nil
	}

	span := period.Window{Start: windows[0].Start, End: windows[len(windows)-1].End}
	start, end := span.Format()
	input := &costexplorer.GetCostAndUsageInput{
		TimePeriod: &ceTypes.DateInterval{
			Start: aws.String(start),
			End:   aws.String(end),
		},
		Granularity: ceTypes.GranularityMonthly,
		Metrics:     []string{costMetric},
	}

	result, err := r.ce.GetCostAndUsage(ctx, input)
	if err != nil {
		return nil, classifyError("GetCostAndUsage", err)
	}

	figures := make(map[string]entity.CostFigure, len(result.ResultsByTime))
	for _, bucket := range result.ResultsByTime {
		if bucket.TimePeriod == nil {
			continue
		}
		val, ok := bucket.Total[costMetric]
		if !ok {
			continue
		}
		amount, err := decimal.NewFromString(aws.ToString(val.Amount))
		if err != nil {
			return nil, fmt.Errorf("parsing cost amount %q: %w", aws.ToString(val.Amount), err)
		}
		currency := aws.ToString(val.Unit)
		if currency == "" {
			currency = defaultCurrency
		}
		figures[aws.ToString(bucket.TimePeriod.Start)] = entity.CostFigure{Amount: amount, Currency: currency}
	}

	months := make([]entity.MonthlyCost, 0, len(windows))
	for _, w := range windows {
		startKey, _ := w.Format()
		fig, ok := figures[startKey]
		if !ok {
			fig = entity.ZeroCost(defaultCurrency)
		}
		months = append(months, entity.MonthlyCost{Month: w.Month(), Window: w, Cost: fig})
	}
	return months, nil
}

// classifyError maps AWS faults onto the error taxonomy. Credential
// chain failures keep their sentinel so callers can tell missing
// configuration from a service fault.
func classifyError(op string, err error) error {
	if errors.Is(err, types.ErrNoCredentials) {
		return err
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "DataUnavailableException":
			return fmt.Errorf("%s: %w", op, types.ErrNoBillingData)
		case "ValidationException":
			return fmt.Errorf("%w: %v", types.ErrInvalidRange, err)
		}
	}

	return &types.APIError{Op: op, Err: err}
}
