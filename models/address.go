package models

import (
	"gorm.io/gorm"
)

type Address struct {
	gorm.Model
	UserID     uint   `json:"user_id"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2"`
	City       string `json:"city"`
	State      string `json:"state"`
	Country    string `json:"country"`
	PostalCode string `json:"postal_code"`
	IsDefault  bool   `json:"is_default" gorm:"default:false"`
}
