package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/tyabelawras/api/app/models"
	"github.com/tyabelawras/api/pkg/bind"
	"github.com/tyabelawras/api/pkg/orm"
	"github.com/tyabelawras/api/pkg/response"
	"gorm.io/gorm"
)

type WorkingTimeController struct{}

func NewWorkingTimeController() *WorkingTimeController {
	return &WorkingTimeController{}
}

type workingTimeInput struct {
	Day      string `json:"day" validate:"required,in=monday,tuesday,wednesday,thursday,friday,saturday,sunday"`
	Open     string `json:"open" validate:"nullable,max=10"`
	Close    string `json:"close" validate:"nullable,max=10"`
	IsClosed bool   `json:"isClosed"`
}

// Index lists the opening hours for the week (public).
func (c *WorkingTimeController) Index(w http.ResponseWriter, r *http.Request) {
	var times []models.WorkingTime
	if err := orm.DB().Model(&models.WorkingTime{}).Get(&times); err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not load working times")
		return
	}
	response.Success(w, times)
}

// Upsert creates or updates the entry for one day. Open/close are required
// unless the day is marked closed.
func (c *WorkingTimeController) Upsert(w http.ResponseWriter, r *http.Request) {
	var in workingTimeInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	in.Day = strings.ToLower(in.Day)
	if !in.IsClosed && (in.Open == "" || in.Close == "") {
		response.Error(w, http.StatusBadRequest, "Open and close times are required unless the day is closed")
		return
	}

	var wt models.WorkingTime
	err := orm.DB().Model(&models.WorkingTime{}).Where("day = ?", in.Day).First(&wt)
	switch {
	case err == nil:
		wt.Open = in.Open
		wt.Close = in.Close
		wt.IsClosed = in.IsClosed
		if err := orm.DB().Save(&wt); err != nil {
			response.Error(w, http.StatusInternalServerError, "Could not update working time")
			return
		}
		response.SuccessMsg(w, "Working time updated successfully", wt)

	case errors.Is(err, gorm.ErrRecordNotFound):
		wt = models.WorkingTime{Day: in.Day, Open: in.Open, Close: in.Close, IsClosed: in.IsClosed}
		if err := orm.DB().Create(&wt); err != nil {
			response.Error(w, http.StatusInternalServerError, "Could not create working time")
			return
		}
		response.CreatedMsg(w, "Working time created successfully", wt)

	default:
		response.Error(w, http.StatusInternalServerError, "Could not load working time")
	}
}
