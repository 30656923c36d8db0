package controllers

import (
	"errors"
	"net/http"

	"github.com/tyabelawras/api/app/models"
	"github.com/tyabelawras/api/pkg/bind"
	"github.com/tyabelawras/api/pkg/orm"
	"github.com/tyabelawras/api/pkg/response"
	"github.com/tyabelawras/api/pkg/validate"
	"gorm.io/gorm"
)

type AnnouncementController struct{}

func NewAnnouncementController() *AnnouncementController {
	return &AnnouncementController{}
}

type announcementInput struct {
	Title       string `json:"title" validate:"required,min=1,max=255"`
	Description string `json:"description" validate:"required,min=1"`
	Image       string `json:"image" validate:"nullable,url"`
}

// Index lists announcements, newest first (public).
func (c *AnnouncementController) Index(w http.ResponseWriter, r *http.Request) {
	var items []models.Announcement
	if err := orm.DB().Model(&models.Announcement{}).Order("created_at desc").Get(&items); err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not load announcements")
		return
	}
	response.Success(w, items)
}

// Store creates an announcement. Accepts JSON or multipart with an
// optional "image" file.
func (c *AnnouncementController) Store(w http.ResponseWriter, r *http.Request) {
	in, errs, err := c.bind(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	item := models.Announcement{Title: in.Title, Description: in.Description, Image: in.Image}
	if err := orm.DB().Create(&item); err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not create announcement")
		return
	}
	response.CreatedMsg(w, "Announcement created successfully", item)
}

// Update edits an announcement.
func (c *AnnouncementController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid announcement id")
		return
	}

	var item models.Announcement
	if err := orm.DB().Model(&models.Announcement{}).Where("id = ?", id).First(&item); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(w, "Announcement not found")
			return
		}
		response.Error(w, http.StatusInternalServerError, "Could not load announcement")
		return
	}

	in, errs, err := c.bind(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	item.Title = in.Title
	item.Description = in.Description
	if in.Image != "" {
		item.Image = in.Image
	}

	if err := orm.DB().Save(&item); err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not update announcement")
		return
	}
	response.SuccessMsg(w, "Announcement updated successfully", item)
}

// Destroy removes an announcement.
func (c *AnnouncementController) Destroy(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid announcement id")
		return
	}

	var item models.Announcement
	if err := orm.DB().Model(&models.Announcement{}).Where("id = ?", id).First(&item); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(w, "Announcement not found")
			return
		}
		response.Error(w, http.StatusInternalServerError, "Could not load announcement")
		return
	}

	if err := orm.DB().Delete(&item); err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not delete announcement")
		return
	}
	response.SuccessMsg(w, "Announcement deleted successfully", nil)
}

func (c *AnnouncementController) bind(r *http.Request) (announcementInput, map[string]string, error) {
	var in announcementInput

	if !isMultipart(r) {
		errs, err := bind.JSON(r, &in)
		return in, errs, err
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return in, nil, errors.New("invalid multipart form")
	}

	in.Title = r.FormValue("title")
	in.Description = r.FormValue("description")

	if fhs := r.MultipartForm.File["image"]; len(fhs) > 0 {
		url, err := saveUpload(fhs[0], "announcements")
		if err != nil {
			return in, nil, err
		}
		in.Image = url
	}

	errs := validate.Struct(&in)
	if validate.HasErrors(errs) {
		return in, errs, nil
	}
	return in, nil, nil
}
