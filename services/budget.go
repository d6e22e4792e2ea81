package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/nitinthakurcode/weddingflo-sub007/models"
)

// ReconcileBudget re-counts the client's accepted guests and rewrites every
// per-guest budget line from that count. It only updates existing rows,
// never creates or deletes them, and returns how many lines it touched.
// Zero is a normal outcome.
func ReconcileBudget(db *gorm.DB, clientID uint) (int, error) {
	var accepted int64
	err := db.Model(&models.Guest{}).
		Where("client_id = ? AND rsvp_status = ?", clientID, models.RSVPAccepted).
		Count(&accepted).Error
	if err != nil {
		return 0, err
	}

	var items []models.BudgetItem
	err = db.Where("client_id = ? AND per_guest = ?", clientID, true).Find(&items).Error
	if err != nil {
		return 0, err
	}

	guestCount := int(accepted)
	touched := 0
	for i := range items {
		item := &items[i]
		estimated := item.CostPerGuest * float64(guestCount)
		if item.GuestCount == guestCount && item.EstimatedCost == estimated {
			continue
		}
		updates := map[string]interface{}{
			"guest_count":    guestCount,
			"estimated_cost": estimated,
			"updated_at":     time.Now().UTC(),
		}
		if err := db.Model(item).Updates(updates).Error; err != nil {
			return touched, err
		}
		touched++
	}
	return touched, nil
}
