package services

import (
	"errors"
	"fmt"

	"github.com/tyabelawras/api/app/jobs"
	"github.com/tyabelawras/api/app/models"
	"github.com/tyabelawras/api/pkg/orm"
	"github.com/tyabelawras/api/pkg/queue"
	"gorm.io/gorm"
)

// ErrAlreadySubscribed is returned when the email is already on the list.
var ErrAlreadySubscribed = errors.New("already subscribed")

type NewsletterService struct{}

func NewNewsletterService() *NewsletterService {
	return &NewsletterService{}
}

// Subscribe adds email to the newsletter list. Duplicates are rejected.
func (s *NewsletterService) Subscribe(email string) (models.NewsletterSubscriber, error) {
	var existing models.NewsletterSubscriber
	err := orm.DB().Model(&models.NewsletterSubscriber{}).
		Where("email = ?", email).
		First(&existing)
	if err == nil {
		return models.NewsletterSubscriber{}, ErrAlreadySubscribed
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewsletterSubscriber{}, fmt.Errorf("newsletter: lookup: %w", err)
	}

	sub := models.NewsletterSubscriber{Email: email}
	if err := orm.DB().Create(&sub); err != nil {
		return models.NewsletterSubscriber{}, fmt.Errorf("newsletter: subscribe: %w", err)
	}
	return sub, nil
}

// Send queues a bulk mail to the selected subscribers. Delivery happens in
// a background queue worker so a slow SMTP server never blocks the request.
func (s *NewsletterService) Send(subscriberIDs []uint, subject, body string, html bool) error {
	if len(subscriberIDs) == 0 {
		return errors.New("newsletter: no recipients selected")
	}

	return queue.Dispatch(&jobs.NewsletterJob{
		SubscriberIDs: subscriberIDs,
		Subject:       subject,
		Body:          body,
		HTML:          html,
	})
}
