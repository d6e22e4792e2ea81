package models

import (
	"time"
)

const (
	TransportLegArrival = "arrival"
	TransportScheduled  = "scheduled"
)

// TransportLeg mirrors HotelReservation: one primary arrival leg per guest,
// plus non-primary legs for party members.
type TransportLeg struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	ClientID uint   `json:"clientID" gorm:"not null;index"`
	Client   Client `json:"-" gorm:"foreignKey:ClientID"`

	GuestID   *uint  `json:"guestID" gorm:"index;uniqueIndex:uniq_transport_primary_guest,where:is_primary"`
	GuestName string `json:"guestName" gorm:"not null;index"`
	MemberKey string `json:"memberKey" gorm:"size:36;index"`
	IsPrimary bool   `json:"isPrimary"`

	LegType     string `json:"legType" gorm:"default:arrival"` // auto-created legs are always "arrival"
	LegSequence int    `json:"legSequence" gorm:"default:1"`

	PickupDate  string  `json:"pickupDate"` // "2006-01-02"
	PickupTime  string  `json:"pickupTime"` // "15:04"
	PickupFrom  string  `json:"pickupFrom"`
	DropTo      string  `json:"dropTo"`
	VehicleInfo *string `json:"vehicleInfo"`

	TransportStatus string `json:"transportStatus" gorm:"default:scheduled"` // "scheduled", "en-route", "completed"
	Notes           string `json:"notes" gorm:"type:text"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
