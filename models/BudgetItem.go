package models

import (
	"time"
)

// BudgetItem is a cost line for a client. Items flagged PerGuest scale with
// the count of accepted guests; the reconciler rewrites GuestCount and the
// derived cost fields but never creates or deletes rows.
type BudgetItem struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	ClientID uint   `json:"clientID" gorm:"not null;index"`
	Client   Client `json:"-" gorm:"foreignKey:ClientID"`

	Category string `json:"category" gorm:"size:64;index"` // "catering", "favors", "venue", ...
	Name     string `json:"name" gorm:"not null"`

	EstimatedCost float64 `json:"estimatedCost"`
	ActualCost    float64 `json:"actualCost"`
	Paid          bool    `json:"paid"`

	PerGuest     bool    `json:"perGuest"`
	CostPerGuest float64 `json:"costPerGuest"`
	GuestCount   int     `json:"guestCount"` // accepted guests at last reconciliation

	Notes string `json:"notes" gorm:"type:text"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
