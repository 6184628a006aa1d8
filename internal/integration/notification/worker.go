// Package notification queues and delivers ledger event notifications.
package notification

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/splitledger/backend/internal/application/adapter"
	"github.com/splitledger/backend/internal/domain/entity"
	domainerror "github.com/splitledger/backend/internal/domain/error"
	"github.com/splitledger/backend/internal/integration/notification/templates"
)

// Worker processes the notification queue and delivers notifications.
type Worker struct {
	queue        adapter.NotificationQueueRepository
	sender       adapter.NotificationSender
	renderer     *templates.Renderer
	pollInterval time.Duration
	batchSize    int
}

// WorkerConfig holds configuration for the notification worker.
type WorkerConfig struct {
	PollInterval time.Duration
	BatchSize    int
}

// DefaultWorkerConfig returns the default worker configuration.
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		PollInterval: 5 * time.Second,
		BatchSize:    10,
	}
}

// NewWorker creates a new notification worker.
func NewWorker(queue adapter.NotificationQueueRepository, sender adapter.NotificationSender, renderer *templates.Renderer, config WorkerConfig) *Worker {
	return &Worker{
		queue:        queue,
		sender:       sender,
		renderer:     renderer,
		pollInterval: config.PollInterval,
		batchSize:    config.BatchSize,
	}
}

// Start begins the worker loop. It blocks until the context is cancelled.
func (w *Worker) Start(ctx context.Context) {
	slog.Info("Notification worker started",
		"poll_interval", w.pollInterval,
		"batch_size", w.batchSize,
	)

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	// Process immediately on start, then on ticker
	w.processBatch(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Notification worker shutting down")
			return
		case <-ticker.C:
			w.processBatch(ctx)
		}
	}
}

// processBatch fetches and processes a batch of pending notifications.
func (w *Worker) processBatch(ctx context.Context) {
	jobs, err := w.queue.GetPendingJobs(ctx, w.batchSize)
	if err != nil {
		slog.Error("Failed to get pending notification jobs", "error", err)
		return
	}

	if len(jobs) == 0 {
		return
	}

	slog.Debug("Processing notification batch", "count", len(jobs))

	for _, job := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
			w.processJob(ctx, job)
		}
	}
}

// processJob processes a single notification job.
func (w *Worker) processJob(ctx context.Context, job *entity.NotificationJob) {
	logger := slog.With(
		"job_id", job.ID,
		"event", job.Event,
		"recipient", job.RecipientEmail,
	)

	job.MarkProcessing()
	if err := w.queue.Update(ctx, job); err != nil {
		logger.Error("Failed to mark job as processing", "error", err)
		return
	}

	html, text, err := w.renderTemplate(job)
	if err != nil {
		logger.Error("Failed to render notification template", "error", err)
		w.handleFailure(ctx, job, err, true) // Template errors are permanent
		return
	}

	result, err := w.sender.Send(ctx, adapter.SendNotificationInput{
		To:      job.RecipientEmail,
		Name:    job.RecipientName,
		Subject: job.Subject,
		HTML:    html,
		Text:    text,
	})

	if err != nil {
		logger.Error("Failed to send notification", "error", err)

		var notifErr *domainerror.NotificationError
		isPermanent := errors.As(err, &notifErr) && notifErr.Code == domainerror.ErrCodePermanentSendFailure

		w.handleFailure(ctx, job, err, isPermanent)
		return
	}

	job.MarkSent()
	if err := w.queue.Update(ctx, job); err != nil {
		logger.Error("Failed to mark job as sent", "error", err)
		return
	}

	logger.Info("Notification sent successfully", "provider_id", result.ProviderID)
}

// renderTemplate renders the appropriate template for the job.
func (w *Worker) renderTemplate(job *entity.NotificationJob) (html string, text string, err error) {
	switch job.Event {
	case entity.EventSplitCreated:
		return w.renderer.Render("split_created", templates.SplitCreatedData{
			RecipientName: job.RecipientName,
			CreatorName:   getString(job.TemplateData, "creator_name"),
			SplitName:     getString(job.TemplateData, "split_name"),
			GroupName:     getString(job.TemplateData, "group_name"),
			TotalAmount:   getString(job.TemplateData, "total_amount"),
			Share:         getString(job.TemplateData, "share"),
		})
	case entity.EventSplitReplaced:
		return w.renderer.Render("split_replaced", templates.SplitReplacedData{
			RecipientName: job.RecipientName,
			CreatorName:   getString(job.TemplateData, "creator_name"),
			SplitName:     getString(job.TemplateData, "split_name"),
			GroupName:     getString(job.TemplateData, "group_name"),
			TotalAmount:   getString(job.TemplateData, "total_amount"),
			Share:         getString(job.TemplateData, "share"),
		})
	case entity.EventSettlementRecorded:
		return w.renderer.Render("settlement_recorded", templates.SettlementRecordedData{
			RecipientName: job.RecipientName,
			PayerName:     getString(job.TemplateData, "payer_name"),
			SplitName:     getString(job.TemplateData, "split_name"),
			Amount:        getString(job.TemplateData, "amount"),
		})
	default:
		return "", "", domainerror.NewNotificationError(
			domainerror.ErrCodeInvalidTemplate,
			"unknown notification event",
			domainerror.ErrInvalidTemplate,
		)
	}
}

// handleFailure handles a failed notification job.
func (w *Worker) handleFailure(ctx context.Context, job *entity.NotificationJob, err error, permanent bool) {
	job.MarkFailed(err, permanent)

	if updateErr := w.queue.Update(ctx, job); updateErr != nil {
		slog.Error("Failed to update job after failure",
			"job_id", job.ID,
			"error", updateErr,
		)
	}

	if job.Status == entity.NotificationStatusFailed {
		slog.Warn("Notification job permanently failed",
			"job_id", job.ID,
			"attempts", job.Attempts,
			"last_error", job.LastError,
		)
	} else {
		slog.Info("Notification job scheduled for retry",
			"job_id", job.ID,
			"attempts", job.Attempts,
			"scheduled_at", job.ScheduledAt,
		)
	}
}

// getString safely extracts a string from a map.
func getString(data map[string]any, key string) string {
	if v, ok := data[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// ProcessNow processes all pending notifications immediately (useful for testing).
func (w *Worker) ProcessNow(ctx context.Context) {
	w.processBatch(ctx)
}
