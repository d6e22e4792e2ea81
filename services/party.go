package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nitinthakurcode/weddingflo-sub007/models"
)

// PartyMemberHotelCommand adds, updates or removes the hotel row of one
// co-traveler listed in the guest's additionalGuestNames.
type PartyMemberHotelCommand struct {
	MemberName string `json:"memberName"`
	CheckIn    string `json:"checkIn"`  // "2006-01-02"
	CheckOut   string `json:"checkOut"` // "2006-01-02"
	RoomType   string `json:"roomType"`
	Remove     bool   `json:"remove"`
}

// PartyMemberTransportCommand is the transport counterpart.
type PartyMemberTransportCommand struct {
	MemberName      string `json:"memberName"`
	ArrivalDatetime string `json:"arrivalDatetime"` // RFC 3339
	ArrivalMode     string `json:"arrivalMode"`
	Remove          bool   `json:"remove"`
}

// PartyMemberKey derives a stable key for a party member from the owning
// guest id and the member's name. Matching on this key instead of the bare
// (client, name) pair keeps two guests' same-named co-travelers from
// sharing a derived row. Rows written before the key existed carry an empty
// key and are still matched by name, then upgraded in place.
func PartyMemberKey(guestID uint, memberName string) string {
	seed := fmt.Sprintf("%d:%s", guestID, strings.ToLower(strings.TrimSpace(memberName)))
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(seed)).String()
}

// decodePartyCommands pulls party-member commands out of the guest metadata
// map, the channel older clients deliver them through.
func decodePartyCommands(meta map[string]interface{}) (*PartyMemberHotelCommand, *PartyMemberTransportCommand) {
	var hotel *PartyMemberHotelCommand
	var transport *PartyMemberTransportCommand
	if raw, ok := meta["partyMemberHotel"]; ok {
		if b, err := json.Marshal(raw); err == nil {
			var cmd PartyMemberHotelCommand
			if json.Unmarshal(b, &cmd) == nil && cmd.MemberName != "" {
				hotel = &cmd
			}
		}
	}
	if raw, ok := meta["partyMemberTransport"]; ok {
		if b, err := json.Marshal(raw); err == nil {
			var cmd PartyMemberTransportCommand
			if json.Unmarshal(b, &cmd) == nil && cmd.MemberName != "" {
				transport = &cmd
			}
		}
	}
	return hotel, transport
}

// findPartyRow locates a non-primary derived row by stable key, falling back
// to the legacy (client, name) match for rows without a key. dest must be a
// pointer to HotelReservation or TransportLeg.
func findPartyRow(tx *gorm.DB, clientID uint, key, memberName string, dest interface{}) error {
	err := tx.Where("client_id = ? AND is_primary = ? AND member_key = ?", clientID, false, key).
		First(dest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = tx.Where("client_id = ? AND is_primary = ? AND member_key = '' AND guest_name = ?",
			clientID, false, memberName).First(dest).Error
	}
	return err
}

func syncPartyMemberHotel(tx *gorm.DB, guest *models.Guest, cmd *PartyMemberHotelCommand, report *CascadeReport) error {
	if cmd.MemberName == "" {
		return fmt.Errorf("party member name is required: %w", ErrValidation)
	}
	key := PartyMemberKey(guest.ID, cmd.MemberName)

	if cmd.Remove {
		// The bare-name match is only for legacy rows without a key;
		// keyed rows of another guest's same-named member must survive.
		res := tx.Where("client_id = ? AND is_primary = ? AND (member_key = ? OR (member_key = '' AND guest_name = ?))",
			guest.ClientID, false, key, cmd.MemberName).
			Delete(&models.HotelReservation{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			report.add(ModuleHotel, ActionDeleted, int(res.RowsAffected))
		}
		return nil
	}

	var existing models.HotelReservation
	err := findPartyRow(tx, guest.ClientID, key, cmd.MemberName, &existing)
	switch {
	case err == nil:
		updates := map[string]interface{}{
			"guest_id":       guest.ID,
			"member_key":     key,
			"check_in_date":  cmd.CheckIn,
			"check_out_date": cmd.CheckOut,
			"room_type":      cmd.RoomType,
			"updated_at":     time.Now().UTC(),
		}
		if err := tx.Model(&existing).Updates(updates).Error; err != nil {
			return err
		}
		report.add(ModuleHotel, ActionUpdated, 1)
	case errors.Is(err, gorm.ErrRecordNotFound):
		row := models.HotelReservation{
			ClientID:            guest.ClientID,
			GuestID:             &guest.ID,
			GuestName:           cmd.MemberName,
			MemberKey:           key,
			IsPrimary:           false,
			HotelName:           guest.HotelName,
			RoomType:            cmd.RoomType,
			CheckInDate:         cmd.CheckIn,
			CheckOutDate:        cmd.CheckOut,
			PartySize:           1,
			AccommodationNeeded: true,
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		report.add(ModuleHotel, ActionCreated, 1)
	default:
		return err
	}
	return nil
}

func syncPartyMemberTransport(tx *gorm.DB, guest *models.Guest, cmd *PartyMemberTransportCommand, report *CascadeReport) error {
	if cmd.MemberName == "" {
		return fmt.Errorf("party member name is required: %w", ErrValidation)
	}
	key := PartyMemberKey(guest.ID, cmd.MemberName)

	if cmd.Remove {
		res := tx.Where("client_id = ? AND is_primary = ? AND (member_key = ? OR (member_key = '' AND guest_name = ?))",
			guest.ClientID, false, key, cmd.MemberName).
			Delete(&models.TransportLeg{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			report.add(ModuleTransport, ActionDeleted, int(res.RowsAffected))
		}
		return nil
	}

	arrival, err := parseDatetime(cmd.ArrivalDatetime)
	if err != nil {
		return err
	}
	pickupDate, pickupTime := "", ""
	if arrival != nil {
		pickupDate = arrival.UTC().Format("2006-01-02")
		pickupTime = arrival.UTC().Format("15:04")
	}
	vehicleInfo := assembleVehicleInfo("", cmd.ArrivalMode)

	var existing models.TransportLeg
	err = findPartyRow(tx, guest.ClientID, key, cmd.MemberName, &existing)
	switch {
	case err == nil:
		updates := map[string]interface{}{
			"guest_id":     guest.ID,
			"member_key":   key,
			"pickup_date":  pickupDate,
			"pickup_time":  pickupTime,
			"drop_to":      guest.HotelName,
			"vehicle_info": vehicleInfo,
			"updated_at":   time.Now().UTC(),
		}
		if err := tx.Model(&existing).Updates(updates).Error; err != nil {
			return err
		}
		report.add(ModuleTransport, ActionUpdated, 1)
	case errors.Is(err, gorm.ErrRecordNotFound):
		row := models.TransportLeg{
			ClientID:        guest.ClientID,
			GuestID:         &guest.ID,
			GuestName:       cmd.MemberName,
			MemberKey:       key,
			IsPrimary:       false,
			LegType:         models.TransportLegArrival,
			LegSequence:     1,
			PickupDate:      pickupDate,
			PickupTime:      pickupTime,
			DropTo:          guest.HotelName,
			VehicleInfo:     vehicleInfo,
			TransportStatus: models.TransportScheduled,
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		report.add(ModuleTransport, ActionCreated, 1)
	default:
		return err
	}
	return nil
}
