package models

import (
	"gorm.io/gorm"
)

// User is a planner account inside a company. Authentication is first-party
// only; the access token carries the company id used for tenant scoping.
type User struct {
	gorm.Model
	CompanyID uint    `json:"companyID" gorm:"not null;index"`
	Company   Company `json:"-" gorm:"foreignKey:CompanyID"`

	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email" gorm:"uniqueIndex;not null"`
	Phone     string `json:"phone"`
	Password  string `json:"-"`
	AvatarURL string `json:"avatarURL"`

	Role string `json:"role" gorm:"type:varchar(20);default:planner;index"` // planner, admin, owner
}
