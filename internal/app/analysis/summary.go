package analysis

import (
	"encoding/json"

	"github.com/dytfght/m365-license-optimizer-sub001/internal/app/ds"

	"github.com/shopspring/decimal"
)

// Summary aggregates one analysis run. It is a pure function of the
// persisted recommendation set plus the per-run user/cost totals, so
// recomputing it over the same rows always yields the same values.
type Summary struct {
	TotalUsers        int
	LicensedUsers     int
	TotalMonthlyCost  decimal.Decimal
	TargetMonthlyCost decimal.Decimal
	MonthlySavings    decimal.Decimal
	AnnualSavings     decimal.Decimal
	CategoryBreakdown map[string]int
}

// Summarize computes the tenant-level savings summary. Savings of
// rejected recommendations are excluded from the target cost; pending
// and accepted ones count.
func Summarize(totalUsers, licensedUsers int, totalMonthlyCost decimal.Decimal, recs []ds.Recommendation) Summary {
	savings := decimal.Zero
	breakdown := make(map[string]int)

	for _, rec := range recs {
		breakdown[rec.Category]++
		if rec.Status == ds.RecommendationRejected {
			continue
		}
		savings = savings.Add(rec.MonthlySavings)
	}

	return Summary{
		TotalUsers:        totalUsers,
		LicensedUsers:     licensedUsers,
		TotalMonthlyCost:  totalMonthlyCost,
		TargetMonthlyCost: totalMonthlyCost.Sub(savings),
		MonthlySavings:    savings,
		AnnualSavings:     savings.Mul(decimal.NewFromInt(12)),
		CategoryBreakdown: breakdown,
	}
}

// Apply copies the summary onto an analysis row.
func (s Summary) Apply(a *ds.Analysis) {
	a.TotalUsers = s.TotalUsers
	a.LicensedUsers = s.LicensedUsers
	a.TotalMonthlyCost = s.TotalMonthlyCost
	a.TargetMonthlyCost = s.TargetMonthlyCost
	a.MonthlySavings = s.MonthlySavings
	a.AnnualSavings = s.AnnualSavings

	// Map keys marshal in sorted order, so the column is deterministic.
	raw, err := json.Marshal(s.CategoryBreakdown)
	if err == nil {
		a.CategoryBreakdown = string(raw)
	}
}
