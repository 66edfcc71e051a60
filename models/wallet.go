package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Wallet transaction types
const (
	WalletTransactionCredit = "credit"
	WalletTransactionDebit  = "debit"
)

type Wallet struct {
	gorm.Model
	UserID  uint            `gorm:"uniqueIndex" json:"user_id"`
	Balance decimal.Decimal `json:"balance" gorm:"type:decimal(12,2)"`
}

type WalletTransaction struct {
	gorm.Model
	WalletID    uint            `gorm:"index" json:"wallet_id"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:decimal(12,2)"`
	Type        string          `json:"type"`
	Description string          `json:"description"`
	Reference   string          `json:"reference,omitempty"`
}
