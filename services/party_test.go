package services

import (
	"testing"

	"github.com/nitinthakurcode/weddingflo-sub007/models"
)

func TestPartyMemberHotelLifecycle(t *testing.T) {
	db := setupTestDB(t)
	companyID, clientID := seedClient(t, db, "Forever Events")

	guest, _, err := CreateGuestCascade(db, companyID, clientID, GuestCreateInput{
		Name:                 "Jane Doe",
		PartySize:            2,
		AdditionalGuestNames: []string{"Amma Doe"},
		HotelName:            "Grand Hotel",
	}, CascadeOptions{})
	if err != nil {
		t.Fatalf("create guest: %v", err)
	}

	_, report, err := UpdateGuestCascade(db, companyID, guest.ID, GuestUpdateInput{
		PartyMemberHotel: &PartyMemberHotelCommand{
			MemberName: "Amma Doe",
			CheckIn:    "2026-06-01",
			CheckOut:   "2026-06-03",
		},
	}, CascadeOptions{})
	if err != nil {
		t.Fatalf("add member hotel: %v", err)
	}
	if got := actionCount(report, ModuleHotel, ActionCreated); got != 1 {
		t.Errorf("hotel created = %d, want 1", got)
	}

	var row models.HotelReservation
	if err := db.Where("client_id = ? AND guest_name = ? AND is_primary = ?",
		clientID, "Amma Doe", false).First(&row).Error; err != nil {
		t.Fatalf("load member row: %v", err)
	}
	if row.GuestID == nil || *row.GuestID != guest.ID {
		t.Errorf("member row not linked back to guest: %+v", row)
	}
	if row.PartySize != 1 {
		t.Errorf("member partySize = %d, want 1", row.PartySize)
	}
	if row.MemberKey != PartyMemberKey(guest.ID, "Amma Doe") {
		t.Errorf("member key mismatch: %q", row.MemberKey)
	}
	if row.HotelName != "Grand Hotel" {
		t.Errorf("member hotel = %q, want guest's hotel", row.HotelName)
	}

	// Second command for the same member updates in place.
	_, report, err = UpdateGuestCascade(db, companyID, guest.ID, GuestUpdateInput{
		PartyMemberHotel: &PartyMemberHotelCommand{
			MemberName: "Amma Doe",
			CheckIn:    "2026-06-02",
			CheckOut:   "2026-06-04",
		},
	}, CascadeOptions{})
	if err != nil {
		t.Fatalf("update member hotel: %v", err)
	}
	if got := actionCount(report, ModuleHotel, ActionUpdated); got < 1 {
		t.Errorf("expected an update action, got %+v", report.Actions)
	}

	var count int64
	db.Model(&models.HotelReservation{}).
		Where("client_id = ? AND guest_name = ?", clientID, "Amma Doe").Count(&count)
	if count != 1 {
		t.Fatalf("member rows = %d, want 1", count)
	}
	db.Where("client_id = ? AND guest_name = ?", clientID, "Amma Doe").First(&row)
	if row.CheckInDate != "2026-06-02" {
		t.Errorf("member checkIn = %q, want updated value", row.CheckInDate)
	}

	// Remove deletes the member's row.
	_, report, err = UpdateGuestCascade(db, companyID, guest.ID, GuestUpdateInput{
		PartyMemberHotel: &PartyMemberHotelCommand{MemberName: "Amma Doe", Remove: true},
	}, CascadeOptions{})
	if err != nil {
		t.Fatalf("remove member hotel: %v", err)
	}
	if got := actionCount(report, ModuleHotel, ActionDeleted); got != 1 {
		t.Errorf("hotel deleted = %d, want 1", got)
	}
	db.Model(&models.HotelReservation{}).
		Where("client_id = ? AND guest_name = ?", clientID, "Amma Doe").Count(&count)
	if count != 0 {
		t.Errorf("member rows after remove = %d, want 0", count)
	}
}

func TestPartyMemberTransportDerivation(t *testing.T) {
	db := setupTestDB(t)
	companyID, clientID := seedClient(t, db, "Forever Events")

	guest, _, err := CreateGuestCascade(db, companyID, clientID, GuestCreateInput{
		Name:      "Jane Doe",
		HotelName: "Grand Hotel",
	}, CascadeOptions{})
	if err != nil {
		t.Fatalf("create guest: %v", err)
	}

	_, _, err = UpdateGuestCascade(db, companyID, guest.ID, GuestUpdateInput{
		PartyMemberTransport: &PartyMemberTransportCommand{
			MemberName:      "Amma Doe",
			ArrivalDatetime: "2026-06-01T09:15:00Z",
			ArrivalMode:     "flight",
		},
	}, CascadeOptions{})
	if err != nil {
		t.Fatalf("add member transport: %v", err)
	}

	var leg models.TransportLeg
	if err := db.Where("client_id = ? AND guest_name = ? AND is_primary = ?",
		clientID, "Amma Doe", false).First(&leg).Error; err != nil {
		t.Fatalf("load member leg: %v", err)
	}
	if leg.PickupDate != "2026-06-01" || leg.PickupTime != "09:15" {
		t.Errorf("pickup = %q %q", leg.PickupDate, leg.PickupTime)
	}
	if leg.VehicleInfo == nil || *leg.VehicleInfo != "(flight)" {
		t.Errorf("vehicleInfo = %v, want (flight)", leg.VehicleInfo)
	}
	if leg.DropTo != "Grand Hotel" {
		t.Errorf("dropTo = %q, want guest's hotel", leg.DropTo)
	}
	if leg.TransportStatus != models.TransportScheduled || leg.LegType != models.TransportLegArrival {
		t.Errorf("leg shape: %+v", leg)
	}
}

// Same member name under two different guests of one client must not share
// a row: the stable key keeps them apart.
func TestPartyMemberNameCollision(t *testing.T) {
	db := setupTestDB(t)
	companyID, clientID := seedClient(t, db, "Forever Events")

	guestA, _, err := CreateGuestCascade(db, companyID, clientID,
		GuestCreateInput{Name: "Jane Doe"}, CascadeOptions{})
	if err != nil {
		t.Fatalf("create guest A: %v", err)
	}
	guestB, _, err := CreateGuestCascade(db, companyID, clientID,
		GuestCreateInput{Name: "John Smith"}, CascadeOptions{})
	if err != nil {
		t.Fatalf("create guest B: %v", err)
	}

	for _, g := range []*models.Guest{guestA, guestB} {
		_, _, err := UpdateGuestCascade(db, companyID, g.ID, GuestUpdateInput{
			PartyMemberHotel: &PartyMemberHotelCommand{MemberName: "Alex", CheckIn: "2026-06-01"},
		}, CascadeOptions{})
		if err != nil {
			t.Fatalf("add member for guest %d: %v", g.ID, err)
		}
	}

	var count int64
	db.Model(&models.HotelReservation{}).
		Where("client_id = ? AND guest_name = ?", clientID, "Alex").Count(&count)
	if count != 2 {
		t.Errorf("rows for colliding name = %d, want 2 distinct members", count)
	}
}

// Removing one guest's member must not touch another guest's keyed row
// that happens to carry the same name.
func TestPartyMemberRemoveSparesCollidingName(t *testing.T) {
	db := setupTestDB(t)
	companyID, clientID := seedClient(t, db, "Forever Events")

	guestA, _, err := CreateGuestCascade(db, companyID, clientID,
		GuestCreateInput{Name: "Jane Doe"}, CascadeOptions{})
	if err != nil {
		t.Fatalf("create guest A: %v", err)
	}
	guestB, _, err := CreateGuestCascade(db, companyID, clientID,
		GuestCreateInput{Name: "John Smith"}, CascadeOptions{})
	if err != nil {
		t.Fatalf("create guest B: %v", err)
	}

	for _, g := range []*models.Guest{guestA, guestB} {
		_, _, err := UpdateGuestCascade(db, companyID, g.ID, GuestUpdateInput{
			PartyMemberHotel: &PartyMemberHotelCommand{MemberName: "Alex", CheckIn: "2026-06-01"},
		}, CascadeOptions{})
		if err != nil {
			t.Fatalf("add member for guest %d: %v", g.ID, err)
		}
	}

	_, report, err := UpdateGuestCascade(db, companyID, guestA.ID, GuestUpdateInput{
		PartyMemberHotel: &PartyMemberHotelCommand{MemberName: "Alex", Remove: true},
	}, CascadeOptions{})
	if err != nil {
		t.Fatalf("remove member for guest A: %v", err)
	}
	if got := actionCount(report, ModuleHotel, ActionDeleted); got != 1 {
		t.Errorf("hotel deleted = %d, want exactly 1", got)
	}

	var survivors []models.HotelReservation
	db.Where("client_id = ? AND guest_name = ?", clientID, "Alex").Find(&survivors)
	if len(survivors) != 1 {
		t.Fatalf("rows after remove = %d, want guest B's member to survive", len(survivors))
	}
	if survivors[0].MemberKey != PartyMemberKey(guestB.ID, "Alex") {
		t.Errorf("surviving row belongs to the wrong guest: %+v", survivors[0])
	}
}

// Rows created before the stable key existed are matched by name and
// upgraded with the key.
func TestPartyMemberLegacyNameMatch(t *testing.T) {
	db := setupTestDB(t)
	companyID, clientID := seedClient(t, db, "Forever Events")

	guest, _, err := CreateGuestCascade(db, companyID, clientID,
		GuestCreateInput{Name: "Jane Doe"}, CascadeOptions{})
	if err != nil {
		t.Fatalf("create guest: %v", err)
	}

	legacy := models.HotelReservation{
		ClientID:            clientID,
		GuestName:           "Amma Doe",
		IsPrimary:           false,
		CheckInDate:         "2026-05-30",
		PartySize:           1,
		AccommodationNeeded: true,
	}
	if err := db.Create(&legacy).Error; err != nil {
		t.Fatalf("seed legacy row: %v", err)
	}

	_, _, err = UpdateGuestCascade(db, companyID, guest.ID, GuestUpdateInput{
		PartyMemberHotel: &PartyMemberHotelCommand{MemberName: "Amma Doe", CheckIn: "2026-06-01"},
	}, CascadeOptions{})
	if err != nil {
		t.Fatalf("update member: %v", err)
	}

	var count int64
	db.Model(&models.HotelReservation{}).
		Where("client_id = ? AND guest_name = ?", clientID, "Amma Doe").Count(&count)
	if count != 1 {
		t.Fatalf("rows = %d, want the legacy row reused", count)
	}

	var row models.HotelReservation
	db.Where("client_id = ? AND guest_name = ?", clientID, "Amma Doe").First(&row)
	if row.ID != legacy.ID {
		t.Errorf("a new row was created instead of reusing the legacy one")
	}
	if row.MemberKey != PartyMemberKey(guest.ID, "Amma Doe") {
		t.Errorf("legacy row not upgraded with key: %q", row.MemberKey)
	}
	if row.CheckInDate != "2026-06-01" {
		t.Errorf("checkIn = %q, want updated", row.CheckInDate)
	}
}

// Commands may also arrive through the metadata map.
func TestPartyCommandsFromMetadata(t *testing.T) {
	db := setupTestDB(t)
	companyID, clientID := seedClient(t, db, "Forever Events")

	guest, _, err := CreateGuestCascade(db, companyID, clientID,
		GuestCreateInput{Name: "Jane Doe"}, CascadeOptions{})
	if err != nil {
		t.Fatalf("create guest: %v", err)
	}

	_, report, err := UpdateGuestCascade(db, companyID, guest.ID, GuestUpdateInput{
		Metadata: map[string]interface{}{
			"partyMemberHotel": map[string]interface{}{
				"memberName": "Amma Doe",
				"checkIn":    "2026-06-01",
			},
		},
	}, CascadeOptions{})
	if err != nil {
		t.Fatalf("metadata command: %v", err)
	}
	if got := actionCount(report, ModuleHotel, ActionCreated); got != 1 {
		t.Errorf("hotel created via metadata = %d, want 1", got)
	}
}

// An explicit command on one channel must not shadow a metadata command on
// the other.
func TestPartyCommandsMixedChannels(t *testing.T) {
	db := setupTestDB(t)
	companyID, clientID := seedClient(t, db, "Forever Events")

	guest, _, err := CreateGuestCascade(db, companyID, clientID,
		GuestCreateInput{Name: "Jane Doe", HotelName: "Grand Hotel"}, CascadeOptions{})
	if err != nil {
		t.Fatalf("create guest: %v", err)
	}

	_, report, err := UpdateGuestCascade(db, companyID, guest.ID, GuestUpdateInput{
		PartyMemberHotel: &PartyMemberHotelCommand{
			MemberName: "Amma Doe",
			CheckIn:    "2026-06-01",
		},
		Metadata: map[string]interface{}{
			"partyMemberTransport": map[string]interface{}{
				"memberName":      "Amma Doe",
				"arrivalDatetime": "2026-06-01T09:15:00Z",
				"arrivalMode":     "flight",
			},
		},
	}, CascadeOptions{})
	if err != nil {
		t.Fatalf("mixed-channel update: %v", err)
	}
	if got := actionCount(report, ModuleHotel, ActionCreated); got != 1 {
		t.Errorf("hotel created = %d, want 1", got)
	}
	if got := actionCount(report, ModuleTransport, ActionCreated); got != 1 {
		t.Errorf("transport created via metadata = %d, want 1", got)
	}

	var leg models.TransportLeg
	if err := db.Where("client_id = ? AND guest_name = ? AND is_primary = ?",
		clientID, "Amma Doe", false).First(&leg).Error; err != nil {
		t.Fatalf("load member leg: %v", err)
	}
	if leg.PickupDate != "2026-06-01" || leg.PickupTime != "09:15" {
		t.Errorf("pickup = %q %q", leg.PickupDate, leg.PickupTime)
	}
}
