package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a regular user in the system
type User struct {
	gorm.Model
	Username     string    `gorm:"uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	Password     string    `json:"-"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Phone        string    `json:"phone"`
	IsBlocked    bool      `json:"is_blocked"`
	IsVerified   bool      `json:"is_verified" gorm:"default:false"`
	LastLoginAt  time.Time `json:"last_login_at"`
	GoogleID     string    `gorm:"unique;default:null" json:"google_id"`
	Wallet       Wallet    `json:"wallet,omitempty" gorm:"foreignKey:UserID"`
	Addresses    []Address `json:"addresses" gorm:"foreignKey:UserID"`
}

// Admin represents an administrator in the system
type Admin struct {
	gorm.Model
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `json:"-"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	LastLogin time.Time `json:"last_login"`
	IsActive  bool      `json:"is_active" gorm:"default:true"`
}

// Category represents a product category
type Category struct {
	gorm.Model
	Name        string    `json:"name" gorm:"uniqueIndex"`
	Description string    `json:"description"`
	Products    []Product `json:"products,omitempty"`
	Blocked     bool      `json:"blocked" gorm:"default:false"`
}

// Supplier represents a vendor that stocks products
type Supplier struct {
	gorm.Model
	Name          string    `json:"name" gorm:"not null"`
	ContactPerson string    `json:"contact_person"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	Address       string    `json:"address"`
	IsActive      bool      `json:"is_active" gorm:"default:true"`
	Products      []Product `json:"products,omitempty"`
}

// Review represents a product review
type Review struct {
	gorm.Model
	ProductID  uint   `json:"product_id"`
	UserID     uint   `json:"user_id"`
	User       User   `json:"user"`
	Rating     int    `json:"rating" gorm:"check:rating >= 1 AND rating <= 5"`
	Comment    string `json:"comment"`
	IsApproved bool   `json:"is_approved" gorm:"default:false"`
}

type Cart struct {
	gorm.Model
	UserID    uint    `json:"user_id"`
	User      User    `gorm:"foreignKey:UserID" json:"user"`
	ProductID uint    `json:"product_id"`
	Product   Product `gorm:"foreignKey:ProductID" json:"product"`
	Quantity  int     `json:"quantity"`
}

// UserOTP represents a one-time password for user verification
type UserOTP struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null"`
	Code      string    `json:"code" gorm:"not null"`
	ExpiresAt time.Time `json:"expires_at" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
