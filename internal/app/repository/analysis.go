package repository

import (
	"context"
	"errors"

	"github.com/dytfght/m365-license-optimizer-sub001/internal/app/ds"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Analysis run persistence (the orchestrator's RunStore).

func (r *Repository) CreateAnalysis(ctx context.Context, a *ds.Analysis) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *Repository) SaveRecommendation(ctx context.Context, rec *ds.Recommendation) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

// FinishAnalysis moves a pending run to its terminal status together
// with the summary or error message. The WHERE on status makes an
// illegal second transition a no-op caught by RowsAffected.
func (r *Repository) FinishAnalysis(ctx context.Context, a *ds.Analysis) error {
	if !ds.AnalysisPending.CanTransitionTo(a.Status) {
		return errors.New("analysis can only finish as completed or failed")
	}

	result := r.db.WithContext(ctx).Model(&ds.Analysis{}).
		Where("id = ? AND status = ?", a.ID, ds.AnalysisPending).
		Updates(map[string]interface{}{
			"status":              a.Status,
			"finished_at":         a.FinishedAt,
			"error_message":       a.ErrorMessage,
			"total_users":         a.TotalUsers,
			"licensed_users":      a.LicensedUsers,
			"total_monthly_cost":  a.TotalMonthlyCost,
			"target_monthly_cost": a.TargetMonthlyCost,
			"monthly_savings":     a.MonthlySavings,
			"annual_savings":      a.AnnualSavings,
			"category_breakdown":  a.CategoryBreakdown,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("analysis is not pending - cannot finish")
	}
	return nil
}

// Read views

func (r *Repository) GetAnalysisByID(ctx context.Context, id uint) (*ds.Analysis, error) {
	var a ds.Analysis
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&a).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *Repository) GetRecommendationsByAnalysis(ctx context.Context, analysisID uint) ([]ds.Recommendation, error) {
	var recs []ds.Recommendation
	err := r.db.WithContext(ctx).
		Where("analysis_id = ?", analysisID).
		Order("id").
		Find(&recs).Error
	return recs, err
}

func (r *Repository) GetAnalysesByTenant(ctx context.Context, tenantID uuid.UUID) ([]ds.Analysis, error) {
	var analyses []ds.Analysis
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("started_at DESC").
		Find(&analyses).Error
	return analyses, err
}

// Operator actions on recommendations

func (r *Repository) GetRecommendationByID(ctx context.Context, id uint) (*ds.Recommendation, error) {
	var rec ds.Recommendation
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// ApplyRecommendation moves a pending recommendation to accepted or
// rejected. Acting on an already-terminal recommendation fails with
// ErrNotPending and mutates nothing.
func (r *Repository) ApplyRecommendation(ctx context.Context, id uint, next ds.RecommendationStatus) (*ds.Recommendation, error) {
	rec, err := r.GetRecommendationByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !rec.Status.CanTransitionTo(next) {
		return nil, ErrNotPending
	}

	result := r.db.WithContext(ctx).Model(&ds.Recommendation{}).
		Where("id = ? AND status = ?", id, ds.RecommendationPending).
		Update("status", next)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		// Lost the race against a concurrent operator action.
		return nil, ErrNotPending
	}

	rec.Status = next
	return rec, nil
}
