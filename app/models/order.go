package models

import "gorm.io/gorm"

// Order statuses. Any value may move to any other; admins correct
// mistakes freely.
const (
	StatusPending    = "pending"
	StatusInDelivery = "in_delivery"
	StatusDelivered  = "delivered"
	StatusCancelled  = "cancelled"
)

// PaymentCashOnDelivery is the only supported payment method.
const PaymentCashOnDelivery = "cash_on_delivery"

// Order is a customer order placed through the public API.
// DeliveryArea is denormalized by name; Subtotal and TotalAmount are always
// server-computed, never trusted from the client.
type Order struct {
	gorm.Model
	Items           []OrderItem `gorm:"constraint:OnDelete:CASCADE" json:"items"`
	Subtotal        float64     `gorm:"not null" json:"subtotal"`
	DeliveryFee     float64     `gorm:"not null" json:"deliveryFee"`
	TotalAmount     float64     `gorm:"not null" json:"totalAmount"`
	DeliveryArea    string      `gorm:"size:255;not null" json:"deliveryArea"`
	CustomerName    string      `gorm:"size:100;not null" json:"customerName"`
	CustomerPhone   string      `gorm:"size:20;not null" json:"customerPhone"`
	DeliveryAddress string      `gorm:"size:200;not null" json:"deliveryAddress"`
	Notes           string      `gorm:"type:text" json:"notes"`
	PaymentMethod   string      `gorm:"size:50;default:cash_on_delivery" json:"paymentMethod"`
	Status          string      `gorm:"size:50;default:pending;index" json:"status"`
}

// OrderItem is one line of an order. Name and Price are snapshots of the
// menu item at order time so later menu edits don't rewrite history.
type OrderItem struct {
	gorm.Model
	OrderID    uint    `gorm:"not null;index" json:"-"`
	MenuItemID uint    `gorm:"not null;index" json:"menuItem"`
	Name       string  `gorm:"size:255;not null" json:"name"`
	Price      float64 `gorm:"not null" json:"price"`
	Quantity   int     `gorm:"not null" json:"quantity"`
}

// ValidStatus reports whether s is one of the four known order statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusInDelivery, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}
