package services

import (
	"errors"
	"testing"

	"github.com/nitinthakurcode/weddingflo-sub007/models"
)

func TestSplitDisplayName(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantFirst string
		wantLast  string
	}{
		{"two tokens", "Jane Doe", "Jane", "Doe"},
		{"single token keeps last empty", "Cher", "Cher", ""},
		{"multi-part last name", "Mary Jane Watson", "Mary", "Jane Watson"},
		{"surrounding whitespace", "  Jane   Doe  ", "Jane", "Doe"},
		{"empty", "", "", ""},
		{"whitespace only", "   ", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, last := SplitDisplayName(tt.input)
			if first != tt.wantFirst || last != tt.wantLast {
				t.Errorf("SplitDisplayName(%q) = %q, %q; want %q, %q",
					tt.input, first, last, tt.wantFirst, tt.wantLast)
			}
		})
	}
}

func TestStructuredNameBypassesHeuristic(t *testing.T) {
	db := setupTestDB(t)
	companyID, clientID := seedClient(t, db, "Forever Events")

	guest, _, err := CreateGuestCascade(db, companyID, clientID, GuestCreateInput{
		FirstName: "Mary Jane",
		LastName:  "Watson",
	}, CascadeOptions{})
	if err != nil {
		t.Fatalf("create guest: %v", err)
	}
	if guest.FirstName != "Mary Jane" || guest.LastName != "Watson" {
		t.Errorf("structured name mangled: %q %q", guest.FirstName, guest.LastName)
	}
}

func TestSparsePatchLeavesAbsentFieldsAlone(t *testing.T) {
	db := setupTestDB(t)
	companyID, clientID := seedClient(t, db, "Forever Events")

	guest, _, err := CreateGuestCascade(db, companyID, clientID, GuestCreateInput{
		Name:           "Jane Doe",
		Email:          "jane@example.com",
		GroupName:      "bride's side",
		PartySize:      2,
		MealPreference: "vegetarian",
	}, CascadeOptions{})
	if err != nil {
		t.Fatalf("create guest: %v", err)
	}

	updated, _, err := UpdateGuestCascade(db, companyID, guest.ID, GuestUpdateInput{
		GroupName: strPtr("college friends"),
	}, CascadeOptions{})
	if err != nil {
		t.Fatalf("patch: %v", err)
	}

	if updated.GroupName != "college friends" {
		t.Errorf("groupName = %q, want patched value", updated.GroupName)
	}
	if updated.Email != "jane@example.com" || updated.PartySize != 2 || updated.MealPreference != "vegetarian" {
		t.Errorf("absent fields were touched: %+v", updated)
	}

	// Empty-string patches are real writes, distinct from absence.
	updated, _, err = UpdateGuestCascade(db, companyID, guest.ID, GuestUpdateInput{
		MealPreference: strPtr(""),
	}, CascadeOptions{})
	if err != nil {
		t.Fatalf("clear patch: %v", err)
	}
	if updated.MealPreference != "" {
		t.Errorf("mealPreference = %q, want cleared", updated.MealPreference)
	}
	if updated.GroupName != "college friends" {
		t.Errorf("groupName reverted: %q", updated.GroupName)
	}
}

func TestCreateGuestValidation(t *testing.T) {
	db := setupTestDB(t)
	companyID, clientID := seedClient(t, db, "Forever Events")

	cases := []struct {
		name  string
		input GuestCreateInput
	}{
		{"missing name", GuestCreateInput{}},
		{"negative party size", GuestCreateInput{Name: "Jane Doe", PartySize: -1}},
		{"unknown rsvp", GuestCreateInput{Name: "Jane Doe", RSVPStatus: "maybe"}},
		{"bad arrival datetime", GuestCreateInput{Name: "Jane Doe", ArrivalDatetime: "tomorrow"}},
		{"bad phone", GuestCreateInput{Name: "Jane Doe", Phone: "not-a-number"}},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := CreateGuestCascade(db, companyID, clientID, tt.input, CascadeOptions{})
			if !errors.Is(err, ErrValidation) {
				t.Errorf("err = %v, want ErrValidation", err)
			}
		})
	}
}

func TestUpdateGuestValidation(t *testing.T) {
	db := setupTestDB(t)
	companyID, clientID := seedClient(t, db, "Forever Events")

	guest, _, err := CreateGuestCascade(db, companyID, clientID,
		GuestCreateInput{Name: "Jane Doe"}, CascadeOptions{})
	if err != nil {
		t.Fatalf("create guest: %v", err)
	}

	zero := 0
	_, _, err = UpdateGuestCascade(db, companyID, guest.ID,
		GuestUpdateInput{PartySize: &zero}, CascadeOptions{})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("partySize 0 err = %v, want ErrValidation", err)
	}

	_, _, err = UpdateGuestCascade(db, companyID, guest.ID,
		GuestUpdateInput{FirstName: strPtr("")}, CascadeOptions{})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("cleared first name err = %v, want ErrValidation", err)
	}

	// Failed validation must leave the row untouched.
	var stored models.Guest
	db.First(&stored, guest.ID)
	if stored.FirstName != "Jane" || stored.PartySize != 1 {
		t.Errorf("failed update leaked writes: %+v", stored)
	}
}

func TestPhoneNormalizedOnCreate(t *testing.T) {
	db := setupTestDB(t)
	companyID, clientID := seedClient(t, db, "Forever Events")

	guest, _, err := CreateGuestCascade(db, companyID, clientID, GuestCreateInput{
		Name:  "Jane Doe",
		Phone: "(415) 555-2671",
	}, CascadeOptions{})
	if err != nil {
		t.Fatalf("create guest: %v", err)
	}
	if guest.Phone != "+14155552671" {
		t.Errorf("phone = %q, want E.164", guest.Phone)
	}
}

func TestCheckInStampsTimestamp(t *testing.T) {
	db := setupTestDB(t)
	companyID, clientID := seedClient(t, db, "Forever Events")

	guest, _, err := CreateGuestCascade(db, companyID, clientID,
		GuestCreateInput{Name: "Jane Doe"}, CascadeOptions{})
	if err != nil {
		t.Fatalf("create guest: %v", err)
	}

	updated, _, err := UpdateGuestCascade(db, companyID, guest.ID,
		GuestUpdateInput{CheckedIn: boolPtr(true)}, CascadeOptions{})
	if err != nil {
		t.Fatalf("check in: %v", err)
	}
	if !updated.CheckedIn || updated.CheckedInAt == nil {
		t.Errorf("check-in not stamped: %+v", updated)
	}

	updated, _, err = UpdateGuestCascade(db, companyID, guest.ID,
		GuestUpdateInput{CheckedIn: boolPtr(false)}, CascadeOptions{})
	if err != nil {
		t.Fatalf("undo check in: %v", err)
	}
	if updated.CheckedIn || updated.CheckedInAt != nil {
		t.Errorf("check-in not cleared: %+v", updated)
	}
}
