// Package jobs defines the background queue jobs and registers them with
// pkg/queue at boot.
package jobs

import (
	"fmt"

	"github.com/tyabelawras/api/app/models"
	"github.com/tyabelawras/api/pkg/logger"
	"github.com/tyabelawras/api/pkg/mail"
	"github.com/tyabelawras/api/pkg/orm"
	"github.com/tyabelawras/api/pkg/queue"
)

// NewsletterJob delivers one bulk mail to the selected subscribers.
// All recipients after the first go in BCC so addresses are never
// leaked to each other.
type NewsletterJob struct {
	SubscriberIDs []uint `json:"subscriber_ids"`
	Subject       string `json:"subject"`
	Body          string `json:"body"`
	HTML          bool   `json:"html"`
}

func (j *NewsletterJob) Handle() error {
	var subs []models.NewsletterSubscriber
	err := orm.DB().Model(&models.NewsletterSubscriber{}).
		Where("id IN ?", j.SubscriberIDs).
		Get(&subs)
	if err != nil {
		return fmt.Errorf("newsletter job: load subscribers: %w", err)
	}
	if len(subs) == 0 {
		logger.Warn("newsletter job: no matching subscribers", "ids", j.SubscriberIDs)
		return nil
	}

	emails := make([]string, len(subs))
	for i, s := range subs {
		emails[i] = s.Email
	}

	msg := mail.To(emails[0])
	if len(emails) > 1 {
		msg = msg.BCC(emails[1:]...)
	}
	msg = msg.Subject(j.Subject)
	if j.HTML {
		msg = msg.Body(j.Body)
	} else {
		msg = msg.Text(j.Body)
	}

	if err := msg.Send(); err != nil {
		return fmt.Errorf("newsletter job: send: %w", err)
	}

	logger.Info("newsletter job: sent", "recipients", len(emails))
	return nil
}

// RegisterAll registers every job type with the queue. Call once at boot.
func RegisterAll() {
	queue.Register("*jobs.NewsletterJob", func() queue.Job { return &NewsletterJob{} })
}
