package models

import "gorm.io/gorm"

// Announcement is a news/promo entry shown on the public site.
type Announcement struct {
	gorm.Model
	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text;not null" json:"description"`
	Image       string `gorm:"size:1024" json:"image"`
}

// GalleryImage is a single photo in the public gallery.
type GalleryImage struct {
	gorm.Model
	Image string `gorm:"size:1024;not null" json:"image"`
}

// Video is a promotional video clip.
type Video struct {
	gorm.Model
	Video string `gorm:"size:1024;not null" json:"video"`
}

// WorkingTime holds opening hours for one day of the week.
// One row per day, upserted by name.
type WorkingTime struct {
	gorm.Model
	Day      string `gorm:"uniqueIndex;size:20;not null" json:"day"`
	Open     string `gorm:"size:10" json:"open"`
	Close    string `gorm:"size:10" json:"close"`
	IsClosed bool   `gorm:"default:false" json:"isClosed"`
}

// WeekDays lists the seven accepted values for WorkingTime.Day.
var WeekDays = []string{
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
}

// ValidDay reports whether day is one of the seven week-day names.
func ValidDay(day string) bool {
	for _, d := range WeekDays {
		if d == day {
			return true
		}
	}
	return false
}
