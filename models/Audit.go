package models

import (
	"time"
)

// AuditLog records every guest mutation together with the cascade report it
// produced, so support can reconstruct what a write touched.
type AuditLog struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	CompanyID    uint      `json:"companyID" gorm:"index;not null"`
	ActorUserID  uint      `json:"actorUserID" gorm:"index"`
	Action       string    `json:"action" gorm:"size:64;index"` // "guest.create", "guest.update", "guest.delete"
	ResourceType string    `json:"resourceType" gorm:"size:64;index"`
	ResourceID   uint      `json:"resourceID" gorm:"index"`
	CascadeJSON  string    `json:"cascadeJSON" gorm:"type:text"`
	RequestID    string    `json:"requestID" gorm:"size:36"`
	CreatedAt    time.Time `json:"createdAt"`
}
