// Package catalog defines the closed, ordered set of license tiers the
// optimizer reasons about. The three-tier assumption lives here and
// nowhere else; extending the hierarchy means editing this table.
package catalog

import "github.com/dytfght/m365-license-optimizer-sub001/internal/app/scoring"

// SKU identifiers of the three supported tiers.
const (
	SkuTop  = "ENTERPRISEPREMIUM" // E5: rich collaboration + advanced security
	SkuMid  = "ENTERPRISEPACK"    // E3: collaboration, no advanced security
	SkuBase = "STANDARDPACK"      // E1: mail/file only, no desktop Office
)

// Tier is one catalog entry. Higher rank means more capability.
type Tier struct {
	SkuID string
	Rank  int
	Name  string
}

// Ordered top-down; each tier's next-lower tier is the following entry.
var tiers = []Tier{
	{SkuID: SkuTop, Rank: 3, Name: "Office 365 E5"},
	{SkuID: SkuMid, Rank: 2, Name: "Office 365 E3"},
	{SkuID: SkuBase, Rank: 1, Name: "Office 365 E1"},
}

// Combined engagement at or above this level on the mail, storage and
// collaboration dimensions is taken as exercising the top tier's
// advanced capability envelope.
const advancedEngagementMean = 0.7

// Tiers returns the catalog entries ordered from top to base.
func Tiers() []Tier {
	out := make([]Tier, len(tiers))
	copy(out, tiers)
	return out
}

// Lookup returns the tier for a SKU, or false for SKUs outside the
// catalog.
func Lookup(skuID string) (Tier, bool) {
	for _, t := range tiers {
		if t.SkuID == skuID {
			return t, true
		}
	}
	return Tier{}, false
}

// LowerTier returns the SKU of the next-lower tier, or nil when the SKU
// is the base tier or not in the catalog.
func LowerTier(skuID string) *string {
	for i, t := range tiers {
		if t.SkuID == skuID && i+1 < len(tiers) {
			lower := tiers[i+1].SkuID
			return &lower
		}
	}
	return nil
}

// AdvancedFeaturesUsed reports whether overall engagement justifies the
// top tier over the mid tier: the mean of the four non-office dimensions
// (mail, both storages, collaboration) must reach the advanced envelope.
func AdvancedFeaturesUsed(sig scoring.UsageSignal) bool {
	mean := (sig.Exchange + sig.OneDrive + sig.SharePoint + sig.Teams) / 4
	return mean >= advancedEngagementMean
}

// OfficeDesktopJustified reports whether any desktop/web Office activity
// was observed; zero activity means the mid tier's Office entitlement is
// unused.
func OfficeDesktopJustified(sig scoring.UsageSignal) bool {
	return sig.Office > 0
}
