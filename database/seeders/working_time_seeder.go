package seeders

import (
	"github.com/tyabelawras/api/app/models"
	"gorm.io/gorm"
)

func init() {
	Register("working-times", seedWorkingTimes)
}

// seedWorkingTimes inserts one row per weekday so the admin panel always
// has a full week to edit. Hours default to 11:00-23:00.
func seedWorkingTimes(db *gorm.DB) error {
	for _, day := range models.WeekDays {
		var count int64
		if err := db.Model(&models.WorkingTime{}).Where("day = ?", day).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		wt := models.WorkingTime{Day: day, Open: "11:00", Close: "23:00"}
		if err := db.Create(&wt).Error; err != nil {
			return err
		}
	}
	return nil
}
