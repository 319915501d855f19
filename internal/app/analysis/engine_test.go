package analysis

import (
	"errors"
	"strings"
	"testing"

	"github.com/dytfght/m365-license-optimizer-sub001/internal/app/catalog"
	"github.com/dytfght/m365-license-optimizer-sub001/internal/app/ds"
	"github.com/dytfght/m365-license-optimizer-sub001/internal/app/scoring"

	"github.com/shopspring/decimal"
)

func tierPrices(prices map[string]string) PriceFunc {
	return func(skuID string) (decimal.Decimal, error) {
		p, ok := prices[skuID]
		if !ok {
			return decimal.Zero, errors.New("no effective price for sku " + skuID)
		}
		return decimal.RequireFromString(p), nil
	}
}

var standardPrices = tierPrices(map[string]string{
	catalog.SkuTop:  "57.00",
	catalog.SkuMid:  "36.00",
	catalog.SkuBase: "10.00",
})

func sku(s string) *string { return &s }

// healthySignal is active enough to defeat the inactivity rule without
// reaching the advanced envelope.
var healthySignal = scoring.UsageSignal{Exchange: 0.6, OneDrive: 0.2, Teams: 0.3, Office: 0.4}

func TestEvaluateNoLicense(t *testing.T) {
	out, err := Engine{}.Evaluate(EvalInput{
		User:      ds.OrgUser{AccountEnabled: true},
		Signal:    healthySignal,
		TierPrice: standardPrices,
	})
	if err != nil || out != nil {
		t.Fatalf("unlicensed user must yield no recommendation, got %+v, %v", out, err)
	}
}

func TestEvaluateDisabledAccount(t *testing.T) {
	cost := decimal.RequireFromString("57.00")
	out, err := Engine{}.Evaluate(EvalInput{
		User:               ds.OrgUser{UserPrincipalName: "g.ivanov@contoso.com", AccountEnabled: false},
		Signal:             healthySignal, // usage is irrelevant for disabled accounts
		CurrentSkuID:       sku(catalog.SkuTop),
		CurrentMonthlyCost: cost,
		TierPrice:          standardPrices,
	})
	if err != nil {
		t.Fatal(err)
	}
	if out == nil || out.Action != ActionRemove {
		t.Fatalf("disabled account must yield remove, got %+v", out)
	}
	if out.TargetSkuID != nil {
		t.Error("remove outcome must carry no target sku")
	}
	if !out.MonthlySavings.Equal(cost) {
		t.Errorf("savings = %s, want the full current cost %s", out.MonthlySavings, cost)
	}
	if !strings.Contains(out.Reason, "disabled") {
		t.Errorf("reason %q must mention disablement", out.Reason)
	}
	if out.Category != ds.CategoryDisabledAccount {
		t.Errorf("category = %s", out.Category)
	}
}

func TestEvaluateInactiveUser(t *testing.T) {
	cost := decimal.RequireFromString("36.00")
	out, err := Engine{}.Evaluate(EvalInput{
		User:               ds.OrgUser{UserPrincipalName: "p.sidorov@contoso.com", AccountEnabled: true},
		Signal:             scoring.UsageSignal{Exchange: 0.04, Teams: 0.02},
		CurrentSkuID:       sku(catalog.SkuMid),
		CurrentMonthlyCost: cost,
		TierPrice:          standardPrices,
	})
	if err != nil {
		t.Fatal(err)
	}
	if out == nil || out.Action != ActionRemove {
		t.Fatalf("near-zero usage must yield remove, got %+v", out)
	}
	if !out.MonthlySavings.Equal(cost) {
		t.Errorf("savings = %s, want %s", out.MonthlySavings, cost)
	}
	if !strings.Contains(out.Reason, "inactive") {
		t.Errorf("reason %q must mention inactivity", out.Reason)
	}
}

func TestEvaluateTopTierOverProvisioned(t *testing.T) {
	out, err := Engine{}.Evaluate(EvalInput{
		User:               ds.OrgUser{AccountEnabled: true},
		Signal:             healthySignal,
		CurrentSkuID:       sku(catalog.SkuTop),
		CurrentMonthlyCost: decimal.RequireFromString("57.00"),
		TierPrice:          standardPrices,
	})
	if err != nil {
		t.Fatal(err)
	}
	if out == nil || out.Action != ActionDowngrade {
		t.Fatalf("healthy-but-not-advanced top-tier usage must yield downgrade, got %+v", out)
	}
	if out.TargetSkuID == nil || *out.TargetSkuID != catalog.SkuMid {
		t.Errorf("target = %v, want %s", out.TargetSkuID, catalog.SkuMid)
	}
	// Exact decimal arithmetic: 57.00 - 36.00.
	if !out.MonthlySavings.Equal(decimal.RequireFromString("21.00")) {
		t.Errorf("savings = %s, want 21.00", out.MonthlySavings)
	}
	if out.MonthlySavings.Sign() <= 0 {
		t.Error("downgrade savings must be strictly positive")
	}
	if !strings.Contains(out.Reason, "advanced") {
		t.Errorf("reason %q must mention advanced features", out.Reason)
	}
}

func TestEvaluateTopTierAdvancedUsageKeepsLicense(t *testing.T) {
	out, err := Engine{}.Evaluate(EvalInput{
		User:               ds.OrgUser{AccountEnabled: true},
		Signal:             scoring.UsageSignal{Exchange: 0.9, OneDrive: 0.8, SharePoint: 0.7, Teams: 0.9, Office: 1.2},
		CurrentSkuID:       sku(catalog.SkuTop),
		CurrentMonthlyCost: decimal.RequireFromString("57.00"),
		TierPrice:          standardPrices,
	})
	if err != nil || out != nil {
		t.Fatalf("advanced usage on the top tier must yield no recommendation, got %+v, %v", out, err)
	}
}

func TestEvaluateTopTierNonPositiveSavingsDoesNotFire(t *testing.T) {
	out, err := Engine{}.Evaluate(EvalInput{
		User:               ds.OrgUser{AccountEnabled: true},
		Signal:             healthySignal,
		CurrentSkuID:       sku(catalog.SkuTop),
		CurrentMonthlyCost: decimal.RequireFromString("30.00"), // discounted below the mid list price
		TierPrice:          standardPrices,
	})
	if err != nil {
		t.Fatal(err)
	}
	if out != nil {
		t.Fatalf("downgrade without positive savings must not fire, got %+v", out)
	}
}

func TestEvaluateTopTierUnresolvableMidPriceIsAnError(t *testing.T) {
	out, err := Engine{}.Evaluate(EvalInput{
		User:               ds.OrgUser{AccountEnabled: true},
		Signal:             healthySignal,
		CurrentSkuID:       sku(catalog.SkuTop),
		CurrentMonthlyCost: decimal.RequireFromString("57.00"),
		TierPrice:          tierPrices(map[string]string{catalog.SkuTop: "57.00"}),
	})
	if err == nil {
		t.Fatal("unresolvable downgrade-target price must surface as a data error")
	}
	if out != nil {
		t.Errorf("no outcome may accompany an error, got %+v", out)
	}
}

func TestEvaluateMidTierOfficeUnused(t *testing.T) {
	out, err := Engine{}.Evaluate(EvalInput{
		User:               ds.OrgUser{AccountEnabled: true},
		Signal:             scoring.UsageSignal{Exchange: 0.7, OneDrive: 0.4, Teams: 0.5, Office: 0},
		CurrentSkuID:       sku(catalog.SkuMid),
		CurrentMonthlyCost: decimal.RequireFromString("36.00"),
		TierPrice:          standardPrices,
	})
	if err != nil {
		t.Fatal(err)
	}
	if out == nil || out.Action != ActionDowngrade {
		t.Fatalf("mid tier without office usage must yield downgrade, got %+v", out)
	}
	if out.TargetSkuID == nil || *out.TargetSkuID != catalog.SkuBase {
		t.Errorf("target = %v, want %s", out.TargetSkuID, catalog.SkuBase)
	}
	if !out.MonthlySavings.Equal(decimal.RequireFromString("26.00")) {
		t.Errorf("savings = %s, want 26.00", out.MonthlySavings)
	}
	if !strings.Contains(out.Reason, "office") {
		t.Errorf("reason %q must mention office", out.Reason)
	}
}

func TestEvaluateMidTierWithOfficeUsageKeepsLicense(t *testing.T) {
	out, err := Engine{}.Evaluate(EvalInput{
		User:               ds.OrgUser{AccountEnabled: true},
		Signal:             healthySignal,
		CurrentSkuID:       sku(catalog.SkuMid),
		CurrentMonthlyCost: decimal.RequireFromString("36.00"),
		TierPrice:          standardPrices,
	})
	if err != nil || out != nil {
		t.Fatalf("mid tier matching its envelope must yield no recommendation, got %+v, %v", out, err)
	}
}

func TestEvaluateBaseTierMatchesEnvelope(t *testing.T) {
	out, err := Engine{}.Evaluate(EvalInput{
		User:               ds.OrgUser{AccountEnabled: true},
		Signal:             scoring.UsageSignal{Exchange: 0.9, OneDrive: 0.3},
		CurrentSkuID:       sku(catalog.SkuBase),
		CurrentMonthlyCost: decimal.RequireFromString("10.00"),
		TierPrice:          standardPrices,
	})
	if err != nil || out != nil {
		t.Fatalf("base tier usage within its envelope must yield no recommendation, got %+v, %v", out, err)
	}
}
