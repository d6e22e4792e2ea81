package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/nitinthakurcode/weddingflo-sub007/models"
)

// RequireClient is the tenant guard: it resolves a client id to a client row
// only if the row belongs to the given company and is not soft-deleted
// (gorm's DeletedAt scoping hides soft-deleted rows from First). Every
// mutation that takes a client id from the outside goes through here;
// downstream writers act only on guests already validated this way and do
// not re-check ownership.
func RequireClient(db *gorm.DB, companyID, clientID uint) (*models.Client, error) {
	var client models.Client
	err := db.Where("id = ? AND company_id = ?", clientID, companyID).First(&client).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("client %d is not accessible by company %d: %w", clientID, companyID, ErrForbidden)
	}
	if err != nil {
		return nil, err
	}
	return &client, nil
}
