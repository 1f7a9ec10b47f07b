package models

import "time"

type UserRole string

const (
	RoleTraveler UserRole = "traveler"
	RoleHost     UserRole = "host"
)

// HostType drives the commission split: office hosts pay a lower platform
// percentage but an additional office fee on top.
type HostType string

const (
	HostOffice      HostType = "office"
	HostIndependent HostType = "independent"
)

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"not null;uniqueIndex" json:"email"`
	Name      string    `gorm:"not null" json:"name"`
	Role      UserRole  `gorm:"type:varchar(10);not null" json:"role"`
	HostType  HostType  `gorm:"type:varchar(12)" json:"host_type,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
