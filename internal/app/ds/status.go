package ds

// AnalysisStatus is the lifecycle state of an analysis run.
type AnalysisStatus string

const (
	AnalysisPending   AnalysisStatus = "pending"
	AnalysisCompleted AnalysisStatus = "completed"
	AnalysisFailed    AnalysisStatus = "failed"
)

// Terminal reports whether no further transition is allowed.
func (s AnalysisStatus) Terminal() bool {
	return s == AnalysisCompleted || s == AnalysisFailed
}

// CanTransitionTo encodes the allowed transitions:
// pending -> completed, pending -> failed.
func (s AnalysisStatus) CanTransitionTo(next AnalysisStatus) bool {
	if s != AnalysisPending {
		return false
	}
	return next == AnalysisCompleted || next == AnalysisFailed
}

// RecommendationStatus is the lifecycle state of a single recommendation.
type RecommendationStatus string

const (
	RecommendationPending  RecommendationStatus = "pending"
	RecommendationAccepted RecommendationStatus = "accepted"
	RecommendationRejected RecommendationStatus = "rejected"
)

// Terminal reports whether no further transition is allowed.
func (s RecommendationStatus) Terminal() bool {
	return s == RecommendationAccepted || s == RecommendationRejected
}

// CanTransitionTo encodes the allowed transitions:
// pending -> accepted, pending -> rejected.
func (s RecommendationStatus) CanTransitionTo(next RecommendationStatus) bool {
	if s != RecommendationPending {
		return false
	}
	return next == RecommendationAccepted || next == RecommendationRejected
}

// Reason categories used for the summary breakdown.
const (
	CategoryDisabledAccount  = "disabled_account"
	CategoryInactive         = "inactive"
	CategoryAdvancedFeatures = "advanced_features"
	CategoryOfficeUnused     = "office_unused"
)
