package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Refund status constants. Rejected and Completed are terminal.
const (
	RefundStatusPending    = "Pending"
	RefundStatusApproved   = "Approved"
	RefundStatusRejected   = "Rejected"
	RefundStatusProcessing = "Processing"
	RefundStatusCompleted  = "Completed"
)

type RefundRequest struct {
	gorm.Model
	OrderID       uint            `gorm:"index" json:"order_id"`
	Order         Order           `json:"order,omitempty" gorm:"foreignKey:OrderID"`
	UserID        uint            `gorm:"index" json:"user_id"`
	Amount        decimal.Decimal `json:"amount" gorm:"type:decimal(12,2)"`
	Reason        string          `json:"reason"`
	Status        string          `json:"status" gorm:"default:'Pending'"`
	AdminResponse string          `json:"admin_response,omitempty"`
	ReviewedAt    *time.Time      `json:"reviewed_at,omitempty"`
	CompletedAt   *time.Time      `json:"completed_at,omitempty"`
}
