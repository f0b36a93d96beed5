package messaging

import (
	"context"

	"github.com/oriain86/Trading-Platform-Application/internal/models"
)

// NoopPublisher is used when the message broker is disabled by configuration.
type NoopPublisher struct{}

func NewNoopPublisher() *NoopPublisher { return &NoopPublisher{} }

func (NoopPublisher) PublishOrderExecuted(context.Context, *models.Order) error  { return nil }
func (NoopPublisher) PublishOrderCancelled(context.Context, *models.Order) error { return nil }
func (NoopPublisher) PublishWithdrawalRequested(context.Context, *models.Withdrawal) error {
	return nil
}
func (NoopPublisher) PublishWithdrawalSettled(context.Context, *models.Withdrawal) error {
	return nil
}
