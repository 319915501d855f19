package ds

import (
	"time"

	"github.com/google/uuid"
)

// Tenant is one customer organization whose licenses are analyzed.
// Market/Currency/Segment form the pricing scope for every price lookup
// made on behalf of this tenant.
type Tenant struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"type:varchar(100);not null"`
	Market    string    `gorm:"type:varchar(10);not null;default:'US'"`
	Currency  string    `gorm:"type:varchar(3);not null;default:'USD'"`
	Segment   string    `gorm:"type:varchar(30);not null;default:'Corporate'"`
	CreatedAt time.Time `gorm:"not null"`
}
