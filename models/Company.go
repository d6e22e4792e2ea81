package models

import (
	"time"
)

// Company is the tenant. Every client, guest and derived record is
// partitioned by company transitively through the client row.
type Company struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"not null"`

	Plan string `json:"plan"` // "trial", "standard", "agency"

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Users   []User   `json:"users" gorm:"foreignKey:CompanyID"`
	Clients []Client `json:"clients" gorm:"foreignKey:CompanyID"`
}
