package controllers

import (
	"errors"
	"net/http"

	"github.com/tyabelawras/api/app/models"
	"github.com/tyabelawras/api/app/services"
	"github.com/tyabelawras/api/pkg/bind"
	"github.com/tyabelawras/api/pkg/orm"
	"github.com/tyabelawras/api/pkg/response"
	"gorm.io/gorm"
)

type NewsletterController struct {
	service *services.NewsletterService
}

func NewNewsletterController() *NewsletterController {
	return &NewsletterController{service: services.NewNewsletterService()}
}

type subscribeInput struct {
	Email string `json:"email" validate:"required,email"`
}

type sendInput struct {
	SubscriberIDs []uint `json:"subscriberIds" validate:"required"`
	Subject       string `json:"subject" validate:"required,min=1,max=255"`
	Message       string `json:"message" validate:"required,min=1"`
	Format        string `json:"format" validate:"nullable,in=html,text"`
}

// Subscribe adds an email to the list (public). Duplicates get 400.
func (c *NewsletterController) Subscribe(w http.ResponseWriter, r *http.Request) {
	var in subscribeInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	sub, err := c.service.Subscribe(in.Email)
	if err != nil {
		if errors.Is(err, services.ErrAlreadySubscribed) {
			response.Error(w, http.StatusBadRequest, "Email already subscribed")
			return
		}
		response.Error(w, http.StatusInternalServerError, "Could not subscribe")
		return
	}
	response.CreatedMsg(w, "Subscribed successfully", sub)
}

// Index lists subscribers (admin).
func (c *NewsletterController) Index(w http.ResponseWriter, r *http.Request) {
	var subs []models.NewsletterSubscriber
	if err := orm.DB().Model(&models.NewsletterSubscriber{}).Order("created_at desc").Get(&subs); err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not load subscribers")
		return
	}
	response.Success(w, subs)
}

// Send queues a bulk mail to the selected subscribers (admin).
func (c *NewsletterController) Send(w http.ResponseWriter, r *http.Request) {
	var in sendInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	html := in.Format != "text"
	if err := c.service.Send(in.SubscriberIDs, in.Subject, in.Message, html); err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not queue newsletter")
		return
	}
	response.SuccessMsg(w, "Newsletter queued for delivery", nil)
}

// Destroy removes a subscriber (admin).
func (c *NewsletterController) Destroy(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid subscriber id")
		return
	}

	var sub models.NewsletterSubscriber
	if err := orm.DB().Model(&models.NewsletterSubscriber{}).Where("id = ?", id).First(&sub); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(w, "Subscriber not found")
			return
		}
		response.Error(w, http.StatusInternalServerError, "Could not load subscriber")
		return
	}

	if err := orm.DB().Delete(&sub); err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not delete subscriber")
		return
	}
	response.SuccessMsg(w, "Subscriber deleted successfully", nil)
}
