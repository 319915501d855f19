package ds

import "github.com/dytfght/m365-license-optimizer-sub001/internal/app/role"

// User is an operator account of this service (not a tenant member).
type User struct {
	ID       uint      `gorm:"primaryKey"`
	Login    string    `gorm:"type:varchar(50);unique;not null"`
	Password string    `gorm:"type:varchar(255);not null"`
	FullName string    `gorm:"type:varchar(100)"`
	Role     role.Role `gorm:"type:int;not null;default:0"`
}
