package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order status constants. rejected and cancelled are terminal.
const (
	OrderStatusPending   = "pending"
	OrderStatusApproved  = "approved"
	OrderStatusRejected  = "rejected"
	OrderStatusCancelled = "cancelled"
)

// Processing steps an approved order walks through, in order.
const (
	ProcessingStepNone              = "none"
	ProcessingStepPreparing         = "preparing"
	ProcessingStepPacking           = "packing"
	ProcessingStepWaitingToDelivery = "waiting_to_delivery"
	ProcessingStepOnTheWay          = "on_the_way"
	ProcessingStepFinished          = "finished"
)

// Who triggered a cancellation.
const (
	CancelledByCustomer = "customer"
	CancelledByAdmin    = "admin"
)

type Order struct {
	ID                 uint            `gorm:"primaryKey" json:"id"`
	UserID             uint            `json:"user_id"`
	User               User            `json:"user" gorm:"foreignKey:UserID"`
	AddressID          uint            `json:"address_id"`
	Address            Address         `json:"address" gorm:"foreignKey:AddressID"`
	Subtotal           decimal.Decimal `json:"subtotal" gorm:"type:decimal(12,2)"`
	Discount           decimal.Decimal `json:"discount" gorm:"type:decimal(12,2)"`
	PromotionID        *uint           `json:"promotion_id,omitempty"`
	PromotionCode      string          `json:"promotion_code,omitempty"`
	FreeShipping       bool            `json:"free_shipping"`
	Tax                decimal.Decimal `json:"tax" gorm:"type:decimal(12,2)"`
	ShippingCharge     decimal.Decimal `json:"shipping_charge" gorm:"type:decimal(12,2)"`
	FinalTotal         decimal.Decimal `json:"final_total" gorm:"type:decimal(12,2)"`
	PaymentMethod      string          `json:"payment_method"`
	RazorpayOrderID    string          `json:"razorpay_order_id,omitempty"`
	PaymentConfirmed   bool            `json:"payment_confirmed"`
	Status             string          `json:"status"`
	ProcessingStep     string          `json:"processing_step"`
	CancelledBy        string          `json:"cancelled_by,omitempty"`
	CancellationReason string          `json:"cancellation_reason,omitempty"`
	RejectionReason    string          `json:"rejection_reason,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
	OrderItems         []OrderItem     `json:"items" gorm:"foreignKey:OrderID"`
}

type OrderItem struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	OrderID   uint            `json:"order_id"`
	ProductID uint            `json:"product_id"`
	Product   Product         `json:"product"`
	Category  string          `json:"category"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price" gorm:"type:decimal(12,2)"`
	Total     decimal.Decimal `json:"total" gorm:"type:decimal(12,2)"`
}
