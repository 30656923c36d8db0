package models

import "gorm.io/gorm"

// MenuItem is a dish on the menu. Type groups items on the public site
// (e.g. "pizza", "sandwich"), Kind is a finer label ("traditional" etc.).
type MenuItem struct {
	gorm.Model
	Name  string  `gorm:"size:255;not null;index" json:"name"`
	Price float64 `gorm:"not null" json:"price"`
	Image string  `gorm:"size:1024" json:"image"`
	Type  string  `gorm:"size:100;index" json:"type"`
	Kind  string  `gorm:"size:100" json:"kind"`
}

// DeliveryArea is a zone the restaurant delivers to, with its fee.
type DeliveryArea struct {
	gorm.Model
	Name  string  `gorm:"uniqueIndex;size:255;not null" json:"name"`
	Price float64 `gorm:"not null;default:0" json:"price"`
}
