// Package analysis contains the recommendation engine and the
// orchestrator that runs it over a tenant's directory.
package analysis

import (
	"fmt"

	"github.com/dytfght/m365-license-optimizer-sub001/internal/app/catalog"
	"github.com/dytfght/m365-license-optimizer-sub001/internal/app/ds"
	"github.com/dytfght/m365-license-optimizer-sub001/internal/app/scoring"

	"github.com/shopspring/decimal"
)

// InactivityThreshold: a user whose every usage score falls below this
// value is treated as inactive.
const InactivityThreshold = 0.05

// Action is the kind of license change an outcome proposes.
type Action string

const (
	ActionRemove    Action = "remove"
	ActionDowngrade Action = "downgrade"
)

// Outcome is the tagged result of a fired rule. A nil *Outcome means no
// action: the user's provisioning matches their usage.
type Outcome struct {
	Action         Action
	TargetSkuID    *string // nil for remove
	MonthlySavings decimal.Decimal
	Reason         string
	Category       string
}

// PriceFunc resolves the effective monthly price of a catalog tier at
// the run's as-of instant. The orchestrator binds it to the price
// resolver with the tenant's scope.
type PriceFunc func(skuID string) (decimal.Decimal, error)

// EvalInput is everything the engine needs to judge one user.
type EvalInput struct {
	User               ds.OrgUser
	Signal             scoring.UsageSignal
	CurrentSkuID       *string
	CurrentMonthlyCost decimal.Decimal
	TierPrice          PriceFunc
}

// Engine evaluates the ordered decision rules for a single user. Rules
// are checked top-down and the first match wins; scoring and predicates
// never fail, only the tier price lookups of a downgrade target can
// return an error (a data inconsistency that fails the whole run).
type Engine struct{}

// Evaluate returns the recommendation outcome for one user, or nil when
// nothing should change.
func (Engine) Evaluate(in EvalInput) (*Outcome, error) {
	// Rule 1: unlicensed users have nothing to optimize.
	if in.CurrentSkuID == nil {
		return nil, nil
	}

	// Rule 2: a disabled account pays for a license nobody can use.
	if !in.User.AccountEnabled {
		return &Outcome{
			Action:         ActionRemove,
			MonthlySavings: in.CurrentMonthlyCost,
			Reason:         fmt.Sprintf("account %s is disabled; remove the unused license", in.User.UserPrincipalName),
			Category:       ds.CategoryDisabledAccount,
		}, nil
	}

	// Rule 3: near-zero activity on every dimension.
	if in.Signal.AllBelow(InactivityThreshold) {
		return &Outcome{
			Action:         ActionRemove,
			MonthlySavings: in.CurrentMonthlyCost,
			Reason:         fmt.Sprintf("user %s is inactive across all services in the latest period; remove the license", in.User.UserPrincipalName),
			Category:       ds.CategoryInactive,
		}, nil
	}

	// Rule 4: top tier without usage of its advanced capabilities.
	if *in.CurrentSkuID == catalog.SkuTop && !catalog.AdvancedFeaturesUsed(in.Signal) {
		midPrice, err := in.TierPrice(catalog.SkuMid)
		if err != nil {
			return nil, fmt.Errorf("resolving downgrade target %s: %w", catalog.SkuMid, err)
		}
		savings := in.CurrentMonthlyCost.Sub(midPrice)
		if savings.Sign() > 0 {
			target := catalog.SkuMid
			return &Outcome{
				Action:         ActionDowngrade,
				TargetSkuID:    &target,
				MonthlySavings: savings,
				Reason:         fmt.Sprintf("usage does not exercise the advanced features of %s; %s covers the observed workload", catalog.SkuTop, catalog.SkuMid),
				Category:       ds.CategoryAdvancedFeatures,
			}, nil
		}
		return nil, nil
	}

	// Rule 5: mid tier with an untouched Office entitlement.
	if *in.CurrentSkuID == catalog.SkuMid && !catalog.OfficeDesktopJustified(in.Signal) {
		basePrice, err := in.TierPrice(catalog.SkuBase)
		if err != nil {
			return nil, fmt.Errorf("resolving downgrade target %s: %w", catalog.SkuBase, err)
		}
		target := catalog.SkuBase
		return &Outcome{
			Action:         ActionDowngrade,
			TargetSkuID:    &target,
			MonthlySavings: in.CurrentMonthlyCost.Sub(basePrice),
			Reason:         fmt.Sprintf("no desktop or web office usage observed; %s covers mail, storage and collaboration", catalog.SkuBase),
			Category:       ds.CategoryOfficeUnused,
		}, nil
	}

	// Rule 6: provisioning matches usage.
	return nil, nil
}
