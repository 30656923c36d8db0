package models

import "gorm.io/gorm"

// User is a back-office account. UserType gates access: "superadmin" can
// manage users, "admin" everything else.
type User struct {
	gorm.Model
	Name     string `gorm:"size:255;not null" json:"name"`
	Email    string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password string `gorm:"size:255;not null" json:"-"` // hashed, never serialised
	UserType string `gorm:"size:50;default:admin" json:"userType"`
}
