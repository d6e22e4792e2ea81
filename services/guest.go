package services

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"golang.org/x/exp/slices"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/nitinthakurcode/weddingflo-sub007/models"
	"github.com/nitinthakurcode/weddingflo-sub007/utils"
)

var rsvpStatuses = []string{models.RSVPPending, models.RSVPAccepted, models.RSVPDeclined}

// GuestCreateInput is the create contract. Name is the free-text display
// name; callers holding structured name data can set FirstName/LastName
// directly and skip the splitting heuristic.
type GuestCreateInput struct {
	Name      string `json:"name"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email" validate:"omitempty,email"`
	Phone     string `json:"phone"`
	GroupName string `json:"groupName"`

	PartySize            int      `json:"partySize" validate:"omitempty,min=1"`
	AdditionalGuestNames []string `json:"additionalGuestNames"`

	RelationshipToFamily string   `json:"relationshipToFamily"`
	AttendingEvents      []string `json:"attendingEvents"`
	RSVPStatus           string   `json:"rsvpStatus" validate:"omitempty,oneof=pending accepted declined"`
	MealPreference       string   `json:"mealPreference"`
	DietaryRestrictions  string   `json:"dietaryRestrictions"`

	ArrivalDatetime   string `json:"arrivalDatetime"` // RFC 3339
	ArrivalMode       string `json:"arrivalMode"`
	DepartureDatetime string `json:"departureDatetime"`
	DepartureMode     string `json:"departureMode"`

	HotelRequired bool   `json:"hotelRequired"`
	HotelName     string `json:"hotelName"`
	HotelCheckIn  string `json:"hotelCheckIn"`
	HotelCheckOut string `json:"hotelCheckOut"`
	HotelRoomType string `json:"hotelRoomType"`

	TransportRequired       bool   `json:"transportRequired"`
	TransportType           string `json:"transportType"`
	TransportPickupLocation string `json:"transportPickupLocation"`
	TransportPickupTime     string `json:"transportPickupTime"`
	TransportNotes          string `json:"transportNotes"`

	GiftRequired bool   `json:"giftRequired"`
	GiftToGive   string `json:"giftToGive"`

	Metadata map[string]interface{} `json:"metadata"`
}

// GuestUpdateInput is a sparse patch: nil pointers leave the stored field
// untouched. Party-member commands ride along with the patch.
type GuestUpdateInput struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Phone     *string `json:"phone"`
	GroupName *string `json:"groupName"`

	PartySize            *int     `json:"partySize" validate:"omitempty,min=1"`
	AdditionalGuestNames []string `json:"additionalGuestNames"`

	RelationshipToFamily *string  `json:"relationshipToFamily"`
	AttendingEvents      []string `json:"attendingEvents"`
	RSVPStatus           *string  `json:"rsvpStatus" validate:"omitempty,oneof=pending accepted declined"`
	MealPreference       *string  `json:"mealPreference"`
	DietaryRestrictions  *string  `json:"dietaryRestrictions"`

	ArrivalDatetime   *string `json:"arrivalDatetime"`
	ArrivalMode       *string `json:"arrivalMode"`
	DepartureDatetime *string `json:"departureDatetime"`
	DepartureMode     *string `json:"departureMode"`

	HotelRequired *bool   `json:"hotelRequired"`
	HotelName     *string `json:"hotelName"`
	HotelCheckIn  *string `json:"hotelCheckIn"`
	HotelCheckOut *string `json:"hotelCheckOut"`
	HotelRoomType *string `json:"hotelRoomType"`

	TransportRequired       *bool   `json:"transportRequired"`
	TransportType           *string `json:"transportType"`
	TransportPickupLocation *string `json:"transportPickupLocation"`
	TransportPickupTime     *string `json:"transportPickupTime"`
	TransportNotes          *string `json:"transportNotes"`

	GiftRequired *bool   `json:"giftRequired"`
	GiftToGive   *string `json:"giftToGive"`

	CheckedIn *bool `json:"checkedIn"`

	Metadata map[string]interface{} `json:"metadata"`

	PartyMemberHotel     *PartyMemberHotelCommand     `json:"partyMemberHotel"`
	PartyMemberTransport *PartyMemberTransportCommand `json:"partyMemberTransport"`
}

// SplitDisplayName splits a free-text name at the first whitespace boundary:
// first token becomes the first name, the remainder the last name. A
// single-token name yields an empty last name.
func SplitDisplayName(name string) (string, string) {
	fields := strings.Fields(strings.TrimSpace(name))
	if len(fields) == 0 {
		return "", ""
	}
	return fields[0], strings.Join(fields[1:], " ")
}

func parseDatetime(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, fmt.Errorf("invalid datetime %q: %w", value, ErrValidation)
	}
	return &t, nil
}

func toJSONList(values []string) datatypes.JSON {
	if values == nil {
		values = []string{}
	}
	b, _ := json.Marshal(values)
	return datatypes.JSON(b)
}

func toJSONMap(values map[string]interface{}) datatypes.JSON {
	if values == nil {
		return nil
	}
	b, _ := json.Marshal(values)
	return datatypes.JSON(b)
}

func normalizeGuestPhone(phone string) (string, error) {
	if phone == "" {
		return "", nil
	}
	normalized, err := utils.NormalizePhoneNumber(phone)
	if err != nil {
		return "", fmt.Errorf("invalid phone number %q: %w", phone, ErrValidation)
	}
	return normalized, nil
}

// insertGuest validates the create input and persists the guest row.
func insertGuest(tx *gorm.DB, client *models.Client, input GuestCreateInput) (*models.Guest, error) {
	firstName, lastName := input.FirstName, input.LastName
	if firstName == "" {
		firstName, lastName = SplitDisplayName(input.Name)
	}
	if firstName == "" {
		return nil, fmt.Errorf("guest name is required: %w", ErrValidation)
	}

	partySize := input.PartySize
	if partySize == 0 {
		partySize = 1
	}
	if partySize < 1 {
		return nil, fmt.Errorf("partySize must be at least 1: %w", ErrValidation)
	}

	rsvp := input.RSVPStatus
	if rsvp == "" {
		rsvp = models.RSVPPending
	}
	if !slices.Contains(rsvpStatuses, rsvp) {
		return nil, fmt.Errorf("unknown rsvpStatus %q: %w", rsvp, ErrValidation)
	}

	phone, err := normalizeGuestPhone(input.Phone)
	if err != nil {
		return nil, err
	}
	arrival, err := parseDatetime(input.ArrivalDatetime)
	if err != nil {
		return nil, err
	}
	departure, err := parseDatetime(input.DepartureDatetime)
	if err != nil {
		return nil, err
	}

	guest := models.Guest{
		ClientID:             client.ID,
		FirstName:            firstName,
		LastName:             lastName,
		Email:                input.Email,
		Phone:                phone,
		GroupName:            input.GroupName,
		PartySize:            partySize,
		AdditionalGuestNames: toJSONList(input.AdditionalGuestNames),
		RelationshipToFamily: input.RelationshipToFamily,
		AttendingEvents:      toJSONList(input.AttendingEvents),
		RSVPStatus:           rsvp,
		MealPreference:       input.MealPreference,
		DietaryRestrictions:  input.DietaryRestrictions,
		ArrivalDatetime:      arrival,
		ArrivalMode:          input.ArrivalMode,
		DepartureDatetime:    departure,
		DepartureMode:        input.DepartureMode,

		HotelRequired: input.HotelRequired,
		HotelName:     input.HotelName,
		HotelCheckIn:  input.HotelCheckIn,
		HotelCheckOut: input.HotelCheckOut,
		HotelRoomType: input.HotelRoomType,

		TransportRequired:       input.TransportRequired,
		TransportType:           input.TransportType,
		TransportPickupLocation: input.TransportPickupLocation,
		TransportPickupTime:     input.TransportPickupTime,
		TransportNotes:          input.TransportNotes,

		GiftRequired: input.GiftRequired,
		GiftToGive:   input.GiftToGive,
		Metadata:     toJSONMap(input.Metadata),
	}

	if err := tx.Create(&guest).Error; err != nil {
		return nil, err
	}
	return &guest, nil
}

// applyGuestPatch copies only the fields present in the patch onto the
// loaded guest row. Absent fields stay as they are.
func applyGuestPatch(guest *models.Guest, input GuestUpdateInput) error {
	if input.FirstName != nil {
		guest.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		guest.LastName = *input.LastName
	}
	if guest.FirstName == "" {
		return fmt.Errorf("guest first name cannot be cleared: %w", ErrValidation)
	}
	if input.Email != nil {
		guest.Email = *input.Email
	}
	if input.Phone != nil {
		phone, err := normalizeGuestPhone(*input.Phone)
		if err != nil {
			return err
		}
		guest.Phone = phone
	}
	if input.GroupName != nil {
		guest.GroupName = *input.GroupName
	}
	if input.PartySize != nil {
		if *input.PartySize < 1 {
			return fmt.Errorf("partySize must be at least 1: %w", ErrValidation)
		}
		guest.PartySize = *input.PartySize
	}
	if input.AdditionalGuestNames != nil {
		guest.AdditionalGuestNames = toJSONList(input.AdditionalGuestNames)
	}
	if input.RelationshipToFamily != nil {
		guest.RelationshipToFamily = *input.RelationshipToFamily
	}
	if input.AttendingEvents != nil {
		guest.AttendingEvents = toJSONList(input.AttendingEvents)
	}
	if input.RSVPStatus != nil {
		if !slices.Contains(rsvpStatuses, *input.RSVPStatus) {
			return fmt.Errorf("unknown rsvpStatus %q: %w", *input.RSVPStatus, ErrValidation)
		}
		guest.RSVPStatus = *input.RSVPStatus
	}
	if input.MealPreference != nil {
		guest.MealPreference = *input.MealPreference
	}
	if input.DietaryRestrictions != nil {
		guest.DietaryRestrictions = *input.DietaryRestrictions
	}
	if input.ArrivalDatetime != nil {
		arrival, err := parseDatetime(*input.ArrivalDatetime)
		if err != nil {
			return err
		}
		guest.ArrivalDatetime = arrival
	}
	if input.ArrivalMode != nil {
		guest.ArrivalMode = *input.ArrivalMode
	}
	if input.DepartureDatetime != nil {
		departure, err := parseDatetime(*input.DepartureDatetime)
		if err != nil {
			return err
		}
		guest.DepartureDatetime = departure
	}
	if input.DepartureMode != nil {
		guest.DepartureMode = *input.DepartureMode
	}
	if input.HotelRequired != nil {
		guest.HotelRequired = *input.HotelRequired
	}
	if input.HotelName != nil {
		guest.HotelName = *input.HotelName
	}
	if input.HotelCheckIn != nil {
		guest.HotelCheckIn = *input.HotelCheckIn
	}
	if input.HotelCheckOut != nil {
		guest.HotelCheckOut = *input.HotelCheckOut
	}
	if input.HotelRoomType != nil {
		guest.HotelRoomType = *input.HotelRoomType
	}
	if input.TransportRequired != nil {
		guest.TransportRequired = *input.TransportRequired
	}
	if input.TransportType != nil {
		guest.TransportType = *input.TransportType
	}
	if input.TransportPickupLocation != nil {
		guest.TransportPickupLocation = *input.TransportPickupLocation
	}
	if input.TransportPickupTime != nil {
		guest.TransportPickupTime = *input.TransportPickupTime
	}
	if input.TransportNotes != nil {
		guest.TransportNotes = *input.TransportNotes
	}
	if input.GiftRequired != nil {
		guest.GiftRequired = *input.GiftRequired
	}
	if input.GiftToGive != nil {
		guest.GiftToGive = *input.GiftToGive
	}
	if input.CheckedIn != nil {
		guest.CheckedIn = *input.CheckedIn
		if *input.CheckedIn && guest.CheckedInAt == nil {
			now := time.Now().UTC()
			guest.CheckedInAt = &now
		}
		if !*input.CheckedIn {
			guest.CheckedInAt = nil
		}
	}
	if input.Metadata != nil {
		guest.Metadata = toJSONMap(input.Metadata)
	}
	return nil
}
