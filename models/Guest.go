package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	RSVPPending  = "pending"
	RSVPAccepted = "accepted"
	RSVPDeclined = "declined"
)

type Guest struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	ClientID uint   `json:"clientID" gorm:"not null;index"`
	Client   Client `json:"-" gorm:"foreignKey:ClientID"`

	// Identity
	FirstName string `json:"firstName" gorm:"not null"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	GroupName string `json:"groupName"`

	// Party
	PartySize            int            `json:"partySize" gorm:"default:1"`
	AdditionalGuestNames datatypes.JSON `json:"additionalGuestNames"` // co-travelers without guest rows of their own

	// RSVP
	RelationshipToFamily string         `json:"relationshipToFamily"`
	AttendingEvents      datatypes.JSON `json:"attendingEvents"`
	RSVPStatus           string         `json:"rsvpStatus" gorm:"default:pending;index"` // "pending", "accepted", "declined"
	MealPreference       string         `json:"mealPreference"`
	DietaryRestrictions  string         `json:"dietaryRestrictions" gorm:"type:text"`

	// Travel
	ArrivalDatetime   *time.Time `json:"arrivalDatetime"`
	ArrivalMode       string     `json:"arrivalMode"` // "flight", "train", "car"
	DepartureDatetime *time.Time `json:"departureDatetime"`
	DepartureMode     string     `json:"departureMode"`

	// Accommodation intent + denormalized hints copied onto the derived row
	HotelRequired bool   `json:"hotelRequired"`
	HotelName     string `json:"hotelName"`
	HotelCheckIn  string `json:"hotelCheckIn"`  // "2006-01-02"
	HotelCheckOut string `json:"hotelCheckOut"` // "2006-01-02"
	HotelRoomType string `json:"hotelRoomType"`

	// Transport intent + hints
	TransportRequired       bool   `json:"transportRequired"`
	TransportType           string `json:"transportType"`
	TransportPickupLocation string `json:"transportPickupLocation"`
	TransportPickupTime     string `json:"transportPickupTime"` // "15:04"
	TransportNotes          string `json:"transportNotes" gorm:"type:text"`

	// Gifts
	GiftRequired bool   `json:"giftRequired"`
	GiftToGive   string `json:"giftToGive"`

	// Check-in at the event itself
	CheckedIn   bool       `json:"checkedIn"`
	CheckedInAt *time.Time `json:"checkedInAt"`

	// Open map; carries per-party-member hotel/transport overrides
	Metadata datatypes.JSON `json:"metadata"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	HotelReservations []HotelReservation `json:"hotelReservations" gorm:"foreignKey:GuestID"`
	TransportLegs     []TransportLeg     `json:"transportLegs" gorm:"foreignKey:GuestID"`
}

// DisplayName is the name derived records carry for UI matching.
func (g *Guest) DisplayName() string {
	if g.LastName == "" {
		return g.FirstName
	}
	return g.FirstName + " " + g.LastName
}
