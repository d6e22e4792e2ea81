package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/nitinthakurcode/weddingflo-sub007/models"
	"github.com/nitinthakurcode/weddingflo-sub007/storage"
)

const (
	ModuleHotel     = "hotel"
	ModuleTransport = "transport"
	ModuleBudget    = "budget"

	ActionCreated      = "created"
	ActionUpdated      = "updated"
	ActionDeleted      = "deleted"
	ActionRecalculated = "recalculated"
)

// CascadeAction is one entry of the report handed back to callers. The
// report is informational only; nothing in the engine reads it back.
type CascadeAction struct {
	Module string `json:"module"`
	Action string `json:"action"`
	Count  int    `json:"count"`
}

type CascadeReport struct {
	Actions []CascadeAction `json:"actions"`
}

func (r *CascadeReport) add(module, action string, count int) {
	r.Actions = append(r.Actions, CascadeAction{Module: module, Action: action, Count: count})
}

// CascadeOptions tunes one cascade run. StrictBudget pulls budget
// reconciliation into the guest transaction so its failure rolls everything
// back; by default it runs after commit and failure only logs, since a
// stale budget count repairs itself on the next triggering write.
type CascadeOptions struct {
	StrictBudget bool
	ActorUserID  uint
	RequestID    string
}

// GuestStatsCacheKey names the cached per-client RSVP summary invalidated
// by every cascade.
func GuestStatsCacheKey(clientID uint) string {
	return fmt.Sprintf("guest-stats:%d", clientID)
}

// CreateGuestCascade persists a new guest and brings its derived records
// into existence, all inside one transaction. The tenant guard runs first;
// nothing is written when it fails.
func CreateGuestCascade(db *gorm.DB, companyID, clientID uint, input GuestCreateInput, opts CascadeOptions) (*models.Guest, *CascadeReport, error) {
	report := &CascadeReport{}
	var guest *models.Guest

	err := db.Transaction(func(tx *gorm.DB) error {
		client, err := RequireClient(tx, companyID, clientID)
		if err != nil {
			return err
		}
		guest, err = insertGuest(tx, client, input)
		if err != nil {
			return err
		}
		if err := syncPrimaryHotel(tx, guest, report); err != nil {
			return err
		}
		if err := syncPrimaryTransport(tx, guest, report); err != nil {
			return err
		}
		if opts.StrictBudget && guest.RSVPStatus == models.RSVPAccepted {
			return runBudget(tx, clientID, report, true)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	if !opts.StrictBudget && guest.RSVPStatus == models.RSVPAccepted {
		_ = runBudget(db, clientID, report, false)
	}
	finishCascade(db, companyID, opts, "guest.create", guest.ID, clientID, report)
	return guest, report, nil
}

// UpdateGuestCascade applies a sparse patch to an existing guest and
// re-synchronizes its derived records. Party-member commands are taken from
// the patch itself or, failing that, from the metadata map.
func UpdateGuestCascade(db *gorm.DB, companyID, guestID uint, input GuestUpdateInput, opts CascadeOptions) (*models.Guest, *CascadeReport, error) {
	report := &CascadeReport{}
	var guest *models.Guest
	var prevRSVP string

	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		guest, err = loadGuestForCompany(tx, companyID, guestID)
		if err != nil {
			return err
		}
		prevRSVP = guest.RSVPStatus

		if err := applyGuestPatch(guest, input); err != nil {
			return err
		}
		if err := tx.Save(guest).Error; err != nil {
			return err
		}

		if err := syncPrimaryHotel(tx, guest, report); err != nil {
			return err
		}
		if err := syncPrimaryTransport(tx, guest, report); err != nil {
			return err
		}

		// Explicit command fields win per channel; the metadata map only
		// fills in a channel the patch left empty.
		hotelCmd, transportCmd := input.PartyMemberHotel, input.PartyMemberTransport
		if input.Metadata != nil && (hotelCmd == nil || transportCmd == nil) {
			metaHotel, metaTransport := decodePartyCommands(input.Metadata)
			if hotelCmd == nil {
				hotelCmd = metaHotel
			}
			if transportCmd == nil {
				transportCmd = metaTransport
			}
		}
		if hotelCmd != nil {
			if err := syncPartyMemberHotel(tx, guest, hotelCmd, report); err != nil {
				return err
			}
		}
		if transportCmd != nil {
			if err := syncPartyMemberTransport(tx, guest, transportCmd, report); err != nil {
				return err
			}
		}

		if opts.StrictBudget && rsvpTransitioned(prevRSVP, guest.RSVPStatus) {
			return runBudget(tx, guest.ClientID, report, true)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	if !opts.StrictBudget && rsvpTransitioned(prevRSVP, guest.RSVPStatus) {
		_ = runBudget(db, guest.ClientID, report, false)
	}
	finishCascade(db, companyID, opts, "guest.update", guest.ID, guest.ClientID, report)
	return guest, report, nil
}

// DeleteGuestCascade removes the guest row together with every hotel and
// transport record referencing it, primary or party-member. The last-known
// required flags are irrelevant: a guest that changed its mind before
// deletion must not leave orphans. Budget is deliberately not reconciled
// here.
func DeleteGuestCascade(db *gorm.DB, companyID, guestID uint, opts CascadeOptions) (*CascadeReport, error) {
	report := &CascadeReport{}
	var clientID uint

	err := db.Transaction(func(tx *gorm.DB) error {
		guest, err := loadGuestForCompany(tx, companyID, guestID)
		if err != nil {
			return err
		}
		clientID = guest.ClientID

		hotels := tx.Where("guest_id = ?", guest.ID).Delete(&models.HotelReservation{})
		if hotels.Error != nil {
			return hotels.Error
		}
		if hotels.RowsAffected > 0 {
			report.add(ModuleHotel, ActionDeleted, int(hotels.RowsAffected))
		}

		legs := tx.Where("guest_id = ?", guest.ID).Delete(&models.TransportLeg{})
		if legs.Error != nil {
			return legs.Error
		}
		if legs.RowsAffected > 0 {
			report.add(ModuleTransport, ActionDeleted, int(legs.RowsAffected))
		}

		return tx.Delete(&models.Guest{}, guest.ID).Error
	})
	if err != nil {
		return nil, err
	}

	finishCascade(db, companyID, opts, "guest.delete", guestID, clientID, report)
	return report, nil
}

// loadGuestForCompany resolves a guest id and re-validates tenant ownership
// through the guest's client. Unknown guest ids are NotFound; guests hanging
// off another company's client are Forbidden.
func loadGuestForCompany(tx *gorm.DB, companyID, guestID uint) (*models.Guest, error) {
	var guest models.Guest
	err := tx.First(&guest, guestID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("guest %d: %w", guestID, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	if _, err := RequireClient(tx, companyID, guest.ClientID); err != nil {
		return nil, err
	}
	return &guest, nil
}

func rsvpTransitioned(prev, next string) bool {
	return prev != next && (prev == models.RSVPAccepted || next == models.RSVPAccepted)
}

func runBudget(db *gorm.DB, clientID uint, report *CascadeReport, strict bool) error {
	touched, err := ReconcileBudget(db, clientID)
	if err != nil {
		if strict {
			return err
		}
		log.Warn().Err(err).Uint("clientID", clientID).
			Msg("budget reconciliation failed, will repair on next trigger")
		return err
	}
	report.add(ModuleBudget, ActionRecalculated, touched)
	return nil
}

// finishCascade handles the post-commit bookkeeping: the audit row and the
// stats-cache invalidation. Both are best-effort.
func finishCascade(db *gorm.DB, companyID uint, opts CascadeOptions, action string, guestID, clientID uint, report *CascadeReport) {
	cascadeJSON, _ := json.Marshal(report.Actions)
	entry := models.AuditLog{
		CompanyID:    companyID,
		ActorUserID:  opts.ActorUserID,
		Action:       action,
		ResourceType: "guest",
		ResourceID:   guestID,
		CascadeJSON:  string(cascadeJSON),
		RequestID:    opts.RequestID,
	}
	if err := db.Create(&entry).Error; err != nil {
		log.Warn().Err(err).Str("action", action).Msg("audit write failed")
	}

	if storage.Redis != nil {
		if err := storage.Redis.Del(context.Background(), GuestStatsCacheKey(clientID)).Err(); err != nil {
			log.Debug().Err(err).Uint("clientID", clientID).Msg("stats cache invalidation failed")
		}
	}
}
