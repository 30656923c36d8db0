package models

import "gorm.io/gorm"

// Rating is a customer review submitted from the public site.
type Rating struct {
	gorm.Model
	Name    string `gorm:"size:100;not null" json:"name"`
	Rating  int    `gorm:"not null" json:"rating"` // 1..5
	Comment string `gorm:"type:text" json:"comment"`
}

// Contact is a message from the public contact form.
type Contact struct {
	gorm.Model
	Name    string `gorm:"size:255;not null" json:"name"`
	Email   string `gorm:"size:255;not null" json:"email"`
	Message string `gorm:"type:text;not null" json:"message"`
}

// NewsletterSubscriber is an email address opted into announcements.
type NewsletterSubscriber struct {
	gorm.Model
	Email string `gorm:"uniqueIndex;size:255;not null" json:"email"`
}
