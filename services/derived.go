package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nitinthakurcode/weddingflo-sub007/models"
)

// primaryConflict builds the upsert clause targeting the partial unique
// index on (guest_id) WHERE is_primary. Two transactions racing on "no
// primary row exists yet" both insert; the second one lands on the index and
// turns into an update instead of a duplicate.
func primaryConflict(assignCols []string) clause.OnConflict {
	return clause.OnConflict{
		Columns:     []clause.Column{{Name: "guest_id"}},
		TargetWhere: clause.Where{Exprs: []clause.Expression{clause.Expr{SQL: "is_primary"}}},
		DoUpdates:   clause.AssignmentColumns(assignCols),
	}
}

var hotelAssignCols = []string{
	"guest_name", "hotel_name", "room_type", "check_in_date", "check_out_date",
	"party_size", "accommodation_needed", "updated_at",
}

// syncPrimaryHotel keeps the single primary hotel reservation in lockstep
// with the guest's hotelRequired flag and hint fields. Running it twice with
// unchanged input changes nothing: the existence lookup decides update vs
// insert, and a delete of nothing is a no-op.
func syncPrimaryHotel(tx *gorm.DB, guest *models.Guest, report *CascadeReport) error {
	if !guest.HotelRequired {
		res := tx.Where("guest_id = ? AND is_primary = ?", guest.ID, true).
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
	err := tx.Where("guest_id = ? AND is_primary = ?", guest.ID, true).First(&existing).Error
	switch {
	case err == nil:
		updates := map[string]interface{}{
			"guest_name":           guest.DisplayName(),
			"hotel_name":           guest.HotelName,
			"room_type":            guest.HotelRoomType,
			"check_in_date":        guest.HotelCheckIn,
			"check_out_date":       guest.HotelCheckOut,
			"party_size":           guest.PartySize,
			"accommodation_needed": true,
			"updated_at":           time.Now().UTC(),
		}
		if err := tx.Model(&existing).Updates(updates).Error; err != nil {
			return err
		}
		report.add(ModuleHotel, ActionUpdated, 1)
	case errors.Is(err, gorm.ErrRecordNotFound):
		row := models.HotelReservation{
			ClientID:            guest.ClientID,
			GuestID:             &guest.ID,
			GuestName:           guest.DisplayName(),
			IsPrimary:           true,
			HotelName:           guest.HotelName,
			RoomType:            guest.HotelRoomType,
			CheckInDate:         guest.HotelCheckIn,
			CheckOutDate:        guest.HotelCheckOut,
			PartySize:           guest.PartySize,
			AccommodationNeeded: true,
		}
		if err := tx.Clauses(primaryConflict(hotelAssignCols)).Create(&row).Error; err != nil {
			return err
		}
		report.add(ModuleHotel, ActionCreated, 1)
	default:
		return err
	}
	return nil
}

var transportAssignCols = []string{
	"guest_name", "pickup_date", "pickup_time", "pickup_from", "drop_to",
	"vehicle_info", "notes", "updated_at",
}

// deriveTransportFields computes the transport leg fields the guest row only
// implies: pickup date/time split out of the arrival timestamp (unless an
// explicit pickup time was given), drop-off defaulting to the guest's hotel,
// and the assembled vehicle description.
func deriveTransportFields(guest *models.Guest) (pickupDate, pickupTime, dropTo string, vehicleInfo *string) {
	pickupTime = guest.TransportPickupTime
	if guest.ArrivalDatetime != nil {
		arrival := guest.ArrivalDatetime.UTC()
		pickupDate = arrival.Format("2006-01-02")
		if pickupTime == "" {
			pickupTime = arrival.Format("15:04")
		}
	}

	dropTo = guest.HotelName
	vehicleInfo = assembleVehicleInfo(guest.TransportType, guest.ArrivalMode)
	return pickupDate, pickupTime, dropTo, vehicleInfo
}

// assembleVehicleInfo joins the non-empty transport type and a parenthesized
// arrival mode, or returns nil when both are absent.
func assembleVehicleInfo(transportType, arrivalMode string) *string {
	var parts []string
	if transportType != "" {
		parts = append(parts, transportType)
	}
	if arrivalMode != "" {
		parts = append(parts, "("+arrivalMode+")")
	}
	if len(parts) == 0 {
		return nil
	}
	info := strings.Join(parts, " ")
	return &info
}

// syncPrimaryTransport is the transport twin of syncPrimaryHotel.
// Auto-created legs are always the first arrival leg.
func syncPrimaryTransport(tx *gorm.DB, guest *models.Guest, report *CascadeReport) error {
	if !guest.TransportRequired {
		res := tx.Where("guest_id = ? AND is_primary = ?", guest.ID, true).
			Delete(&models.TransportLeg{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			report.add(ModuleTransport, ActionDeleted, int(res.RowsAffected))
		}
		return nil
	}

	pickupDate, pickupTime, dropTo, vehicleInfo := deriveTransportFields(guest)

	var existing models.TransportLeg
	err := tx.Where("guest_id = ? AND is_primary = ?", guest.ID, true).First(&existing).Error
	switch {
	case err == nil:
		updates := map[string]interface{}{
			"guest_name":   guest.DisplayName(),
			"pickup_date":  pickupDate,
			"pickup_time":  pickupTime,
			"pickup_from":  guest.TransportPickupLocation,
			"drop_to":      dropTo,
			"vehicle_info": vehicleInfo,
			"notes":        guest.TransportNotes,
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
			GuestName:       guest.DisplayName(),
			IsPrimary:       true,
			LegType:         models.TransportLegArrival,
			LegSequence:     1,
			PickupDate:      pickupDate,
			PickupTime:      pickupTime,
			PickupFrom:      guest.TransportPickupLocation,
			DropTo:          dropTo,
			VehicleInfo:     vehicleInfo,
			TransportStatus: models.TransportScheduled,
			Notes:           guest.TransportNotes,
		}
		if err := tx.Clauses(primaryConflict(transportAssignCols)).Create(&row).Error; err != nil {
			return err
		}
		report.add(ModuleTransport, ActionCreated, 1)
	default:
		return err
	}
	return nil
}
