package ds

import (
	"time"

	"github.com/google/uuid"
)

// UsageRecord holds the raw per-service activity counters reported for
// one organization user over one reporting period. The record with the
// latest PeriodEnd is the user's current usage.
type UsageRecord struct {
	ID        uint      `gorm:"primaryKey"`
	OrgUserID uuid.UUID `gorm:"type:uuid;not null;index"`
	PeriodEnd time.Time `gorm:"not null;index"`

	EmailsSent             int `gorm:"not null;default:0"`
	EmailsReceived         int `gorm:"not null;default:0"`
	OneDriveFilesTouched   int `gorm:"not null;default:0"`
	SharePointFilesTouched int `gorm:"not null;default:0"`
	TeamsChatMessages      int `gorm:"not null;default:0"`
	TeamsMeetingsAttended  int `gorm:"not null;default:0"`
	OfficeFilesTouched     int `gorm:"not null;default:0"`

	OrgUser OrgUser `gorm:"foreignKey:OrgUserID"`
}
