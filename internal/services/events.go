package services

import (
	"context"

	"github.com/oriain86/Trading-Platform-Application/internal/models"
)

// EventPublisher pushes domain events onto the message broker after the
// owning transaction commits. Publishing is best-effort: callers log failures
// and never roll back the originating request.
type EventPublisher interface {
	PublishOrderExecuted(ctx context.Context, order *models.Order) error
	PublishOrderCancelled(ctx context.Context, order *models.Order) error
	PublishWithdrawalRequested(ctx context.Context, withdrawal *models.Withdrawal) error
	PublishWithdrawalSettled(ctx context.Context, withdrawal *models.Withdrawal) error
}
