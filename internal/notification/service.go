package notification

import (
	"context"
	"fmt"

	"github.com/arjunvnair/campus-event-backend/utils"
)

type Service interface {
	// Handle processes one message from the Kafka consumer.
	Handle(ctx context.Context, msg Message) error

	ListInAppByUser(ctx context.Context, userID uint, limit int) ([]InAppNotification, error)
	MarkInAppAsRead(ctx context.Context, id uint, userID uint) error
	MarkAllAsRead(ctx context.Context, userID uint) error
	CountUnread(ctx context.Context, userID uint) (int64, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Handle(ctx context.Context, msg Message) error {
	var (
		title    string
		body     string
		category string
		mailErr  error
	)

	switch msg.Type {
	case TypeRegistrationConfirmed:
		title = "Registration confirmed"
		body = fmt.Sprintf("You are registered for %s.", msg.EventName)
		category = "registration"
		mailErr = utils.SendRegistrationConfirmation(msg.Recipient, msg.RecipientName, msg.EventName)

	case TypeRegistrationCancelled:
		title = "Registration cancelled"
		body = fmt.Sprintf("Your registration for %s was cancelled.", msg.EventName)
		category = "registration"
		mailErr = utils.SendUnregistrationNotice(msg.Recipient, msg.RecipientName, msg.EventName)

	case TypeEventUpdated:
		title = "Event updated"
		body = fmt.Sprintf("%s has an update: %s", msg.EventName, msg.Detail)
		category = "event"
		mailErr = utils.SendEventUpdateEmail(msg.Recipient, msg.RecipientName, msg.EventName, msg.Detail)

	default:
		return fmt.Errorf("unknown notification type %q", msg.Type)
	}

	// External participants have no account and no in-app feed.
	if msg.UserID != 0 {
		n := &InAppNotification{
			UserID:   msg.UserID,
			EventID:  msg.EventID,
			Title:    title,
			Message:  body,
			Category: category,
		}
		if err := s.repo.CreateInApp(ctx, n); err != nil {
			return err
		}
	}

	return mailErr
}

func (s *service) ListInAppByUser(ctx context.Context, userID uint, limit int) ([]InAppNotification, error) {
	return s.repo.ListInAppByUser(ctx, userID, limit)
}

func (s *service) MarkInAppAsRead(ctx context.Context, id uint, userID uint) error {
	return s.repo.MarkInAppAsRead(ctx, id, userID)
}

func (s *service) MarkAllAsRead(ctx context.Context, userID uint) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}

func (s *service) CountUnread(ctx context.Context, userID uint) (int64, error) {
	return s.repo.CountUnread(ctx, userID)
}
