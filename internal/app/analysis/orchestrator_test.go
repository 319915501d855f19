package analysis

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/dytfght/m365-license-optimizer-sub001/internal/app/catalog"
	"github.com/dytfght/m365-license-optimizer-sub001/internal/app/ds"
	"github.com/dytfght/m365-license-optimizer-sub001/internal/app/pricing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ============ In-memory collaborators ============

type fakeWorld struct {
	users       []ds.OrgUser
	assignments map[uuid.UUID]string
	usage       map[uuid.UUID]*ds.UsageRecord
	quotations  []ds.PriceQuotation

	analyses []*ds.Analysis
	recs     []ds.Recommendation
	nextID   uint
}

func (w *fakeWorld) ListOrgUsers(_ context.Context, _ uuid.UUID) ([]ds.OrgUser, error) {
	return w.users, nil
}

func (w *fakeWorld) CurrentSku(_ context.Context, id uuid.UUID) (*string, error) {
	if sku, ok := w.assignments[id]; ok {
		return &sku, nil
	}
	return nil, nil
}

func (w *fakeWorld) LatestUsage(_ context.Context, id uuid.UUID) (*ds.UsageRecord, error) {
	return w.usage[id], nil
}

func (w *fakeWorld) QuotationsForSku(_ context.Context, skuID string, _ pricing.Scope) ([]ds.PriceQuotation, error) {
	var rows []ds.PriceQuotation
	for _, q := range w.quotations {
		if q.SkuID == skuID {
			rows = append(rows, q)
		}
	}
	return rows, nil
}

func (w *fakeWorld) CreateAnalysis(_ context.Context, a *ds.Analysis) error {
	w.nextID++
	a.ID = w.nextID
	w.analyses = append(w.analyses, a)
	return nil
}

func (w *fakeWorld) SaveRecommendation(_ context.Context, rec *ds.Recommendation) error {
	rec.ID = uint(len(w.recs) + 1)
	w.recs = append(w.recs, *rec)
	return nil
}

func (w *fakeWorld) FinishAnalysis(_ context.Context, _ *ds.Analysis) error {
	return nil
}

var runStart = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func newWorld() *fakeWorld {
	w := &fakeWorld{
		assignments: make(map[uuid.UUID]string),
		usage:       make(map[uuid.UUID]*ds.UsageRecord),
	}
	for _, p := range []struct {
		sku   string
		price string
	}{
		{catalog.SkuTop, "57.00"},
		{catalog.SkuMid, "36.00"},
		{catalog.SkuBase, "10.00"},
	} {
		w.quotations = append(w.quotations, ds.PriceQuotation{
			SkuID:          p.sku,
			UnitPrice:      decimal.RequireFromString(p.price),
			EffectiveStart: runStart.AddDate(-1, 0, 0),
			EffectiveEnd:   runStart.AddDate(1, 0, 0),
		})
	}
	return w
}

func (w *fakeWorld) addUser(name string, enabled bool, skuID string, usage *ds.UsageRecord) ds.OrgUser {
	u := ds.OrgUser{
		ID:                uuid.New(),
		UserPrincipalName: name,
		AccountEnabled:    enabled,
	}
	w.users = append(w.users, u)
	if skuID != "" {
		w.assignments[u.ID] = skuID
	}
	if usage != nil {
		w.usage[u.ID] = usage
	}
	return u
}

func newOrchestrator(w *fakeWorld) *Orchestrator {
	o := NewOrchestrator(w, w, w, pricing.NewCatalogResolver(w), w)
	o.Now = func() time.Time { return runStart }
	return o
}

// activeUsage scores well above the inactivity threshold, keeps office
// in use and stays below the advanced envelope.
func activeUsage() *ds.UsageRecord {
	return &ds.UsageRecord{
		EmailsSent:         30,
		EmailsReceived:     25,
		TeamsChatMessages:  35,
		OfficeFilesTouched: 8,
		PeriodEnd:          runStart.AddDate(0, 0, -3),
	}
}

// ============ End-to-end run ============

func TestRunEndToEnd(t *testing.T) {
	w := newWorld()

	// 100 healthy mid-tier users: provisioning matches usage.
	for i := 0; i < 100; i++ {
		w.addUser(fmt.Sprintf("active%d@contoso.com", i), true, catalog.SkuMid, activeUsage())
	}
	// 20 licensed users with no usage at all.
	for i := 0; i < 20; i++ {
		w.addUser(fmt.Sprintf("idle%d@contoso.com", i), true, catalog.SkuMid, nil)
	}
	// 5 disabled accounts still holding the top tier.
	for i := 0; i < 5; i++ {
		w.addUser(fmt.Sprintf("left%d@contoso.com", i), false, catalog.SkuTop, nil)
	}
	// 10 top-tier users whose usage never touches advanced features.
	for i := 0; i < 10; i++ {
		w.addUser(fmt.Sprintf("over%d@contoso.com", i), true, catalog.SkuTop, activeUsage())
	}
	// 15 unlicensed users.
	for i := 0; i < 15; i++ {
		w.addUser(fmt.Sprintf("guest%d@contoso.com", i), true, "", activeUsage())
	}

	tenant := ds.Tenant{ID: uuid.New(), Market: "US", Currency: "USD", Segment: "Corporate"}
	a, err := newOrchestrator(w).Run(context.Background(), tenant)
	if err != nil {
		t.Fatal(err)
	}

	if a.Status != ds.AnalysisCompleted {
		t.Fatalf("status = %s, want completed", a.Status)
	}
	if a.ErrorMessage != "" {
		t.Errorf("a completed analysis must not carry an error message, got %q", a.ErrorMessage)
	}
	if a.TotalUsers != 150 {
		t.Errorf("total users = %d, want 150", a.TotalUsers)
	}
	if a.LicensedUsers != 135 {
		t.Errorf("licensed users = %d, want 135", a.LicensedUsers)
	}

	removes := 0
	for _, rec := range w.recs {
		if rec.RecommendedSkuID != nil {
			continue
		}
		removes++
		if !strings.Contains(rec.Reason, "inactive") && !strings.Contains(rec.Reason, "disabled") {
			t.Errorf("remove reason %q must reference inactivity or disablement", rec.Reason)
		}
	}
	if removes < 25 {
		t.Errorf("removes = %d, want at least 25", removes)
	}

	// 120 mid + 15 top at list prices.
	wantTotal := decimal.RequireFromString("36.00").Mul(decimal.NewFromInt(120)).
		Add(decimal.RequireFromString("57.00").Mul(decimal.NewFromInt(15)))
	if !a.TotalMonthlyCost.Equal(wantTotal) {
		t.Errorf("total monthly cost = %s, want %s", a.TotalMonthlyCost, wantTotal)
	}

	// 20 idle mid removes + 5 disabled top removes + 10 top->mid downgrades.
	wantSavings := decimal.RequireFromString("36.00").Mul(decimal.NewFromInt(20)).
		Add(decimal.RequireFromString("57.00").Mul(decimal.NewFromInt(5))).
		Add(decimal.RequireFromString("21.00").Mul(decimal.NewFromInt(10)))
	if !a.MonthlySavings.Equal(wantSavings) {
		t.Errorf("monthly savings = %s, want %s", a.MonthlySavings, wantSavings)
	}
	if !a.AnnualSavings.Equal(wantSavings.Mul(decimal.NewFromInt(12))) {
		t.Errorf("annual savings = %s, want monthly x 12", a.AnnualSavings)
	}
	if !a.TargetMonthlyCost.Equal(wantTotal.Sub(wantSavings)) {
		t.Errorf("target monthly cost = %s, want %s", a.TargetMonthlyCost, wantTotal.Sub(wantSavings))
	}
}

// ============ Failure path ============

func TestRunFailsOnUnresolvablePrice(t *testing.T) {
	w := newWorld()

	// The first user produces a recommendation before the failure.
	w.addUser("idle@contoso.com", true, catalog.SkuMid, nil)
	// VISIOCLIENT has no quotation in the catalog.
	w.addUser("odd@contoso.com", true, "VISIOCLIENT", activeUsage())

	tenant := ds.Tenant{ID: uuid.New(), Market: "US", Currency: "USD", Segment: "Corporate"}
	a, err := newOrchestrator(w).Run(context.Background(), tenant)
	if err != nil {
		t.Fatal(err)
	}

	if a.Status != ds.AnalysisFailed {
		t.Fatalf("status = %s, want failed", a.Status)
	}
	if a.ErrorMessage == "" {
		t.Fatal("a failed analysis must carry a non-empty error message")
	}
	if !strings.Contains(a.ErrorMessage, "VISIOCLIENT") || !strings.Contains(a.ErrorMessage, "odd@contoso.com") {
		t.Errorf("error message %q must name the offending sku and user", a.ErrorMessage)
	}

	// Partial results are kept for inspection, not rolled back.
	if len(w.recs) != 1 {
		t.Fatalf("recommendations written before the failure must survive, got %d", len(w.recs))
	}
}

// ============ Summary ============

func TestSummarizeIsIdempotent(t *testing.T) {
	recs := []ds.Recommendation{
		{MonthlySavings: decimal.RequireFromString("36.00"), Category: ds.CategoryInactive, Status: ds.RecommendationPending},
		{MonthlySavings: decimal.RequireFromString("21.00"), Category: ds.CategoryAdvancedFeatures, Status: ds.RecommendationAccepted},
		{MonthlySavings: decimal.RequireFromString("57.00"), Category: ds.CategoryDisabledAccount, Status: ds.RecommendationRejected},
	}
	total := decimal.RequireFromString("500.00")

	first := Summarize(10, 8, total, recs)
	second := Summarize(10, 8, total, recs)

	if !first.MonthlySavings.Equal(second.MonthlySavings) ||
		!first.TargetMonthlyCost.Equal(second.TargetMonthlyCost) ||
		!first.AnnualSavings.Equal(second.AnnualSavings) {
		t.Errorf("summaries differ: %+v vs %+v", first, second)
	}

	// Rejected savings are excluded; pending and accepted count.
	if !first.MonthlySavings.Equal(decimal.RequireFromString("57.00")) {
		t.Errorf("monthly savings = %s, want 57.00 (36.00 + 21.00)", first.MonthlySavings)
	}
	if !first.TargetMonthlyCost.Equal(decimal.RequireFromString("443.00")) {
		t.Errorf("target cost = %s, want 443.00", first.TargetMonthlyCost)
	}

	// The breakdown counts every recommendation, rejected included.
	if first.CategoryBreakdown[ds.CategoryDisabledAccount] != 1 ||
		first.CategoryBreakdown[ds.CategoryInactive] != 1 ||
		first.CategoryBreakdown[ds.CategoryAdvancedFeatures] != 1 {
		t.Errorf("breakdown = %v", first.CategoryBreakdown)
	}
}

func TestSummaryApplySerializesBreakdownDeterministically(t *testing.T) {
	s := Summarize(1, 1, decimal.Zero, []ds.Recommendation{
		{Category: ds.CategoryOfficeUnused, Status: ds.RecommendationPending},
		{Category: ds.CategoryInactive, Status: ds.RecommendationPending},
	})

	var a, b ds.Analysis
	s.Apply(&a)
	s.Apply(&b)
	if a.CategoryBreakdown != b.CategoryBreakdown {
		t.Errorf("breakdown serialization must be deterministic: %s vs %s", a.CategoryBreakdown, b.CategoryBreakdown)
	}
	if !strings.Contains(a.CategoryBreakdown, ds.CategoryInactive) {
		t.Errorf("breakdown %q must list categories", a.CategoryBreakdown)
	}
}
