package analysis

import (
	"context"
	"fmt"
	"time"

	"github.com/dytfght/m365-license-optimizer-sub001/internal/app/ds"
	"github.com/dytfght/m365-license-optimizer-sub001/internal/app/pricing"
	"github.com/dytfght/m365-license-optimizer-sub001/internal/app/scoring"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Directory lists the organization users of a tenant.
type Directory interface {
	ListOrgUsers(ctx context.Context, tenantID uuid.UUID) ([]ds.OrgUser, error)
}

// Assignments resolves a user's current SKU; nil means unlicensed.
type Assignments interface {
	CurrentSku(ctx context.Context, orgUserID uuid.UUID) (*string, error)
}

// UsageSource loads the usage record with the latest period end for a
// user; nil means the user has never synced usage.
type UsageSource interface {
	LatestUsage(ctx context.Context, orgUserID uuid.UUID) (*ds.UsageRecord, error)
}

// RunStore persists the analysis run and its recommendations.
type RunStore interface {
	CreateAnalysis(ctx context.Context, a *ds.Analysis) error
	SaveRecommendation(ctx context.Context, rec *ds.Recommendation) error
	// FinishAnalysis persists the terminal status together with the
	// summary (completed) or error message (failed).
	FinishAnalysis(ctx context.Context, a *ds.Analysis) error
}

// Orchestrator runs one analysis for a tenant: score every user, invoke
// the engine, persist recommendations and aggregate the summary.
type Orchestrator struct {
	Directory   Directory
	Assignments Assignments
	Usage       UsageSource
	Prices      pricing.Resolver
	Store       RunStore
	Engine      Engine

	// Now is overridable for tests; defaults to time.Now.
	Now func() time.Time
}

func NewOrchestrator(dir Directory, assign Assignments, usage UsageSource, prices pricing.Resolver, store RunStore) *Orchestrator {
	return &Orchestrator{
		Directory:   dir,
		Assignments: assign,
		Usage:       usage,
		Prices:      prices,
		Store:       store,
		Now:         time.Now,
	}
}

// Run executes one analysis for the tenant and returns the terminal
// Analysis row. A failed run is reported through the row's status and
// error message, not through the returned error; the error is non-nil
// only when the run record itself could not be persisted. Partial
// recommendations written before a failure are deliberately kept for
// inspection.
func (o *Orchestrator) Run(ctx context.Context, tenant ds.Tenant) (*ds.Analysis, error) {
	// One as-of instant for every price lookup in this run, so a price
	// row changing mid-run cannot split the run's view of the catalog.
	asOf := o.Now()

	a := &ds.Analysis{
		TenantID:  tenant.ID,
		Status:    ds.AnalysisPending,
		StartedAt: asOf,
	}
	if err := o.Store.CreateAnalysis(ctx, a); err != nil {
		return nil, fmt.Errorf("creating analysis for tenant %s: %w", tenant.ID, err)
	}

	scope := pricing.Scope{Market: tenant.Market, Currency: tenant.Currency, Segment: tenant.Segment}
	tierPrice := func(skuID string) (decimal.Decimal, error) {
		return o.Prices.Effective(ctx, skuID, scope, asOf)
	}

	users, err := o.Directory.ListOrgUsers(ctx, tenant.ID)
	if err != nil {
		return o.fail(ctx, a, fmt.Sprintf("listing users of tenant %s: %v", tenant.ID, err))
	}

	licensedUsers := 0
	totalCost := decimal.Zero
	var recs []ds.Recommendation

	for _, user := range users {
		skuID, err := o.Assignments.CurrentSku(ctx, user.ID)
		if err != nil {
			return o.fail(ctx, a, fmt.Sprintf("loading license assignment of user %s: %v", user.UserPrincipalName, err))
		}

		currentCost := decimal.Zero
		if skuID != nil {
			licensedUsers++
			currentCost, err = tierPrice(*skuID)
			if err != nil {
				return o.fail(ctx, a, fmt.Sprintf("resolving price of sku %s assigned to user %s: %v", *skuID, user.UserPrincipalName, err))
			}
			totalCost = totalCost.Add(currentCost)
		}

		usage, err := o.Usage.LatestUsage(ctx, user.ID)
		if err != nil {
			return o.fail(ctx, a, fmt.Sprintf("loading usage of user %s: %v", user.UserPrincipalName, err))
		}

		outcome, err := o.Engine.Evaluate(EvalInput{
			User:               user,
			Signal:             scoring.Score(usage),
			CurrentSkuID:       skuID,
			CurrentMonthlyCost: currentCost,
			TierPrice:          tierPrice,
		})
		if err != nil {
			return o.fail(ctx, a, fmt.Sprintf("evaluating user %s: %v", user.UserPrincipalName, err))
		}
		if outcome == nil {
			continue
		}

		rec := ds.Recommendation{
			AnalysisID:       a.ID,
			OrgUserID:        user.ID,
			CurrentSkuID:     skuID,
			RecommendedSkuID: outcome.TargetSkuID,
			MonthlySavings:   outcome.MonthlySavings,
			Reason:           outcome.Reason,
			Category:         outcome.Category,
			Status:           ds.RecommendationPending,
			CreatedAt:        asOf,
		}
		if err := o.Store.SaveRecommendation(ctx, &rec); err != nil {
			return o.fail(ctx, a, fmt.Sprintf("persisting recommendation for user %s: %v", user.UserPrincipalName, err))
		}
		recs = append(recs, rec)
	}

	Summarize(len(users), licensedUsers, totalCost, recs).Apply(a)

	finishedAt := o.Now()
	a.Status = ds.AnalysisCompleted
	a.FinishedAt = &finishedAt
	if err := o.Store.FinishAnalysis(ctx, a); err != nil {
		return nil, fmt.Errorf("completing analysis %d: %w", a.ID, err)
	}

	logrus.Infof("analysis %d completed for tenant %s: %d users, %d recommendations, %s monthly savings",
		a.ID, tenant.ID, a.TotalUsers, len(recs), a.MonthlySavings)
	return a, nil
}

// fail marks the run failed with a non-empty message. No retries and no
// rollback: recommendations already written stay visible.
func (o *Orchestrator) fail(ctx context.Context, a *ds.Analysis, msg string) (*ds.Analysis, error) {
	logrus.Errorf("analysis %d failed: %s", a.ID, msg)

	finishedAt := o.Now()
	a.Status = ds.AnalysisFailed
	a.ErrorMessage = msg
	a.FinishedAt = &finishedAt
	if err := o.Store.FinishAnalysis(ctx, a); err != nil {
		return nil, fmt.Errorf("recording analysis failure: %w", err)
	}
	return a, nil
}
