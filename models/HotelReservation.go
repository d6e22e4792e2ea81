package models

import (
	"time"
)

// HotelReservation is a derived record. A guest has at most one primary row
// (is_primary, keyed by guest id); party members get non-primary rows keyed
// by MemberKey with GuestID pointing back at the guest whose update created
// them. The partial unique index is what makes concurrent "create primary"
// races collapse into one row instead of two.
type HotelReservation struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	ClientID uint   `json:"clientID" gorm:"not null;index"`
	Client   Client `json:"-" gorm:"foreignKey:ClientID"`

	GuestID   *uint  `json:"guestID" gorm:"index;uniqueIndex:uniq_hotel_primary_guest,where:is_primary"`
	GuestName string `json:"guestName" gorm:"not null;index"`
	MemberKey string `json:"memberKey" gorm:"size:36;index"` // stable party-member key, empty on primary rows
	IsPrimary bool   `json:"isPrimary"`

	HotelName    string `json:"hotelName"`
	RoomType     string `json:"roomType"`
	CheckInDate  string `json:"checkInDate"`  // "2006-01-02"
	CheckOutDate string `json:"checkOutDate"` // "2006-01-02"
	PartySize    int    `json:"partySize" gorm:"default:1"`

	AccommodationNeeded bool   `json:"accommodationNeeded"`
	Notes               string `json:"notes" gorm:"type:text"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
