package controllers

import (
	"errors"
	"net/http"

	"github.com/tyabelawras/api/app/models"
	"github.com/tyabelawras/api/pkg/bind"
	"github.com/tyabelawras/api/pkg/orm"
	"github.com/tyabelawras/api/pkg/response"
	"gorm.io/gorm"
)

type ContactController struct{}

func NewContactController() *ContactController {
	return &ContactController{}
}

type contactInput struct {
	Name    string `json:"name" validate:"required,min=1,max=255"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required,min=1,max=1000"`
}

// Index lists contact messages (admin).
func (c *ContactController) Index(w http.ResponseWriter, r *http.Request) {
	var contacts []models.Contact
	if err := orm.DB().Model(&models.Contact{}).Order("created_at desc").Get(&contacts); err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not load messages")
		return
	}
	response.Success(w, contacts)
}

// Store accepts a public contact-form submission.
func (c *ContactController) Store(w http.ResponseWriter, r *http.Request) {
	var in contactInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	contact := models.Contact{Name: in.Name, Email: in.Email, Message: in.Message}
	if err := orm.DB().Create(&contact); err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not save message")
		return
	}
	response.CreatedMsg(w, "Message received", contact)
}

// Destroy removes a contact message (admin).
func (c *ContactController) Destroy(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid message id")
		return
	}

	var contact models.Contact
	if err := orm.DB().Model(&models.Contact{}).Where("id = ?", id).First(&contact); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(w, "Message not found")
			return
		}
		response.Error(w, http.StatusInternalServerError, "Could not load message")
		return
	}

	if err := orm.DB().Delete(&contact); err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not delete message")
		return
	}
	response.SuccessMsg(w, "Message deleted successfully", nil)
}
