package catalog

import (
	"testing"

	"github.com/dytfght/m365-license-optimizer-sub001/internal/app/scoring"
)

func TestTiersAreAStrictTotalOrder(t *testing.T) {
	ts := Tiers()
	if len(ts) != 3 {
		t.Fatalf("catalog is closed over three tiers, got %d", len(ts))
	}
	for i := 1; i < len(ts); i++ {
		if ts[i].Rank >= ts[i-1].Rank {
			t.Errorf("ranks must strictly decrease top-down: %s(%d) then %s(%d)",
				ts[i-1].SkuID, ts[i-1].Rank, ts[i].SkuID, ts[i].Rank)
		}
	}
}

func TestLowerTierChain(t *testing.T) {
	if lower := LowerTier(SkuTop); lower == nil || *lower != SkuMid {
		t.Errorf("LowerTier(top) = %v, want %s", lower, SkuMid)
	}
	if lower := LowerTier(SkuMid); lower == nil || *lower != SkuBase {
		t.Errorf("LowerTier(mid) = %v, want %s", lower, SkuBase)
	}
	if lower := LowerTier(SkuBase); lower != nil {
		t.Errorf("LowerTier(base) = %v, want nil", *lower)
	}
	if lower := LowerTier("UNKNOWN_SKU"); lower != nil {
		t.Errorf("LowerTier(unknown) = %v, want nil", *lower)
	}
}

func TestLookup(t *testing.T) {
	tier, ok := Lookup(SkuMid)
	if !ok || tier.Rank != 2 {
		t.Errorf("Lookup(mid) = %+v, %v", tier, ok)
	}
	if _, ok := Lookup("VISIOCLIENT"); ok {
		t.Error("SKUs outside the catalog must not resolve")
	}
}

func TestAdvancedFeaturesUsed(t *testing.T) {
	heavy := scoring.UsageSignal{Exchange: 0.9, OneDrive: 0.8, SharePoint: 0.7, Teams: 0.9}
	if !AdvancedFeaturesUsed(heavy) {
		t.Error("heavy engagement across mail/storage/collaboration must justify the top tier")
	}

	moderate := scoring.UsageSignal{Exchange: 0.5, OneDrive: 0.3, SharePoint: 0.2, Teams: 0.6, Office: 0.9}
	if AdvancedFeaturesUsed(moderate) {
		t.Error("moderate engagement must not justify the top tier")
	}

	// The office dimension does not contribute to the advanced envelope.
	officeOnly := scoring.UsageSignal{Office: 5.0}
	if AdvancedFeaturesUsed(officeOnly) {
		t.Error("office-only usage must not justify the top tier")
	}
}

func TestOfficeDesktopJustified(t *testing.T) {
	if OfficeDesktopJustified(scoring.UsageSignal{Office: 0}) {
		t.Error("zero office score means the entitlement is unused")
	}
	if !OfficeDesktopJustified(scoring.UsageSignal{Office: 0.01}) {
		t.Error("any office activity justifies the entitlement")
	}
}
