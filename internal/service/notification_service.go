package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/makeup-booking/internal/config"
	"github.com/spec-kit/makeup-booking/internal/events"
)

// NotificationService handles emitting notifications for domain events.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventBookingCreated, n.handleBookingCreated)
	n.dispatcher.Subscribe(events.EventBookingCancelled, n.handleBookingCancelled)
	n.dispatcher.Subscribe(events.EventBookingCheckedIn, n.handleBookingCheckedIn)
	n.dispatcher.Subscribe(events.EventUserSuspended, n.handleUserSuspended)
	n.dispatcher.Subscribe(events.EventSuspensionLifted, n.handleSuspensionLifted)
}

func (n *NotificationService) handleBookingCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("BookingCreated", zap.String("booking_id", event.BookingID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleBookingCancelled(ctx context.Context, event events.Event) error {
	n.logger.Info("BookingCancelled", zap.String("booking_id", event.BookingID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleBookingCheckedIn(ctx context.Context, event events.Event) error {
	n.logger.Info("BookingCheckedIn", zap.String("booking_id", event.BookingID), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleUserSuspended(ctx context.Context, event events.Event) error {
	n.logger.Warn("UserSuspended", zap.String("user_id", event.UserID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleSuspensionLifted(ctx context.Context, event events.Event) error {
	n.logger.Info("SuspensionLifted", zap.String("user_id", event.UserID))
	return nil
}

// sendWebhookNotificationStub logs in place of an outbound call until a
// webhook consumer exists.
func (n *NotificationService) sendWebhookNotificationStub(_ context.Context, event events.Event) {
	if n.cfg.WebhookURL == "" {
		return
	}
	n.logger.Debug("webhook notification",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("event", string(event.Type)),
		zap.String("event_id", event.ID),
	)
}
