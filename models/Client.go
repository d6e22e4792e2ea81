package models

import (
	"time"

	"gorm.io/gorm"
)

// Client is one event (a wedding) managed by a company. The soft delete
// matters: a soft-deleted client must fail the tenant guard the same way a
// foreign one does.
type Client struct {
	ID        uint    `json:"id" gorm:"primaryKey"`
	CompanyID uint    `json:"companyID" gorm:"not null;index"`
	Company   Company `json:"-" gorm:"foreignKey:CompanyID"`

	CoupleName string     `json:"coupleName" gorm:"not null"`
	EventDate  *time.Time `json:"eventDate"`
	Venue      string     `json:"venue"`
	City       string     `json:"city"`

	ContactEmail string `json:"contactEmail"`
	ContactPhone string `json:"contactPhone"`
	Notes        string `json:"notes" gorm:"type:text"`

	Status string `json:"status"` // "active", "completed", "archived"

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	Guests      []Guest      `json:"guests" gorm:"foreignKey:ClientID"`
	BudgetItems []BudgetItem `json:"budgetItems" gorm:"foreignKey:ClientID"`
}
