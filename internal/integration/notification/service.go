// Package notification queues and delivers ledger event notifications.
package notification

import (
	"context"
	"fmt"

	"github.com/splitledger/backend/internal/application/adapter"
	"github.com/splitledger/backend/internal/domain/entity"
	domainerror "github.com/splitledger/backend/internal/domain/error"
)

// Service handles notification queueing operations. One job is enqueued per
// recipient so each delivery succeeds or retries on its own.
type Service struct {
	queue adapter.NotificationQueueRepository
}

// NewService creates a new notification service.
func NewService(queue adapter.NotificationQueueRepository) *Service {
	return &Service{
		queue: queue,
	}
}

// NotifySplitCreated queues notifications to a new split's participants.
func (s *Service) NotifySplitCreated(ctx context.Context, input adapter.NotifySplitInput) error {
	subject := fmt.Sprintf("%s added \"%s\" to %s - SplitLedger", input.CreatorName, input.SplitName, input.GroupName)
	return s.queueSplitJobs(ctx, entity.EventSplitCreated, subject, input)
}

// NotifySplitReplaced queues notifications when a split is replaced.
func (s *Service) NotifySplitReplaced(ctx context.Context, input adapter.NotifySplitInput) error {
	subject := fmt.Sprintf("%s updated \"%s\" in %s - SplitLedger", input.CreatorName, input.SplitName, input.GroupName)
	return s.queueSplitJobs(ctx, entity.EventSplitReplaced, subject, input)
}

// NotifySettlementRecorded queues a notification to the settlement's payee.
func (s *Service) NotifySettlementRecorded(ctx context.Context, input adapter.NotifySettlementInput) error {
	subject := fmt.Sprintf("%s paid you %s - SplitLedger", input.PayerName, input.Amount)

	templateData := map[string]any{
		"payer_name": input.PayerName,
		"split_name": input.SplitName,
		"amount":     input.Amount,
	}

	job := entity.NewNotificationJob(
		entity.EventSettlementRecorded,
		input.Recipient.UserID,
		input.Recipient.Email,
		input.Recipient.Name,
		subject,
		templateData,
	)

	if err := s.queue.Create(ctx, job); err != nil {
		return domainerror.NewNotificationError(
			domainerror.ErrCodeNotificationQueueFailed,
			"failed to queue settlement notification",
			err,
		)
	}

	return nil
}

func (s *Service) queueSplitJobs(ctx context.Context, event entity.NotificationEvent, subject string, input adapter.NotifySplitInput) error {
	for _, recipient := range input.Recipients {
		templateData := map[string]any{
			"creator_name": input.CreatorName,
			"split_name":   input.SplitName,
			"group_name":   input.GroupName,
			"total_amount": input.TotalAmount,
			"share":        recipient.Share,
		}

		job := entity.NewNotificationJob(
			event,
			recipient.UserID,
			recipient.Email,
			recipient.Name,
			subject,
			templateData,
		)

		if err := s.queue.Create(ctx, job); err != nil {
			return domainerror.NewNotificationError(
				domainerror.ErrCodeNotificationQueueFailed,
				"failed to queue split notification",
				err,
			)
		}
	}

	return nil
}

// Ensure Service implements adapter.NotificationService.
var _ adapter.NotificationService = (*Service)(nil)
