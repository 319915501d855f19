// Package scoring converts raw per-service activity counters into the
// five-dimension normalized usage signal consumed by the recommendation
// engine.
package scoring

import "github.com/dytfght/m365-license-optimizer-sub001/internal/app/ds"

// Normalization constants: the raw counter volume that maps to a score
// of 1.0 on each dimension.
const (
	exchangeNorm   = 100.0 // emails sent + received per period
	oneDriveNorm   = 50.0
	sharePointNorm = 50.0
	teamsNorm      = 100.0
	officeNorm     = 30.0

	// A meeting is a much stronger collaboration signal than a single
	// chat message, so it carries 10x the weight in the Teams score.
	meetingWeight = 10
)

// UsageSignal is the normalized engagement vector for one user in one
// period. Scores are open-ended ratios: 0 means no activity, 1.0 means
// activity at the normalization volume, and heavy users exceed 1.0.
// Scores are intentionally not clamped.
type UsageSignal struct {
	Exchange   float64 `json:"exchange"`
	OneDrive   float64 `json:"onedrive"`
	SharePoint float64 `json:"sharepoint"`
	Teams      float64 `json:"teams"`
	Office     float64 `json:"office"`
}

// AllBelow reports whether every dimension is below the given threshold.
func (s UsageSignal) AllBelow(threshold float64) bool {
	return s.Exchange < threshold &&
		s.OneDrive < threshold &&
		s.SharePoint < threshold &&
		s.Teams < threshold &&
		s.Office < threshold
}

// Score computes the usage signal from the most recent usage record of a
// user. A nil record means the user has never synced usage and scores
// zero on every dimension; this is not an error condition.
func Score(rec *ds.UsageRecord) UsageSignal {
	if rec == nil {
		return UsageSignal{}
	}

	return UsageSignal{
		Exchange:   float64(rec.EmailsSent+rec.EmailsReceived) / exchangeNorm,
		OneDrive:   float64(rec.OneDriveFilesTouched) / oneDriveNorm,
		SharePoint: float64(rec.SharePointFilesTouched) / sharePointNorm,
		Teams:      float64(rec.TeamsChatMessages+rec.TeamsMeetingsAttended*meetingWeight) / teamsNorm,
		Office:     float64(rec.OfficeFilesTouched) / officeNorm,
	}
}
