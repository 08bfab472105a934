package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"mindvale-server/internal/infra/repository"
	"mindvale-server/internal/pkg/config"
)

const (
	claimBatchSize = 20
	maxAttempts    = 5
)

// Dispatcher polls the notification_jobs outbox and delivers each job as an
// admin email. It runs until its context is cancelled.
type Dispatcher struct {
	jobs     *repository.NotificationRepository
	mailer   Mailer
	admin    string
	interval time.Duration
	logger   *slog.Logger
}

func NewDispatcher(jobs *repository.NotificationRepository, mailer Mailer, cfg config.SMTPConfig, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		jobs:     jobs,
		mailer:   mailer,
		admin:    cfg.AdminEmail,
		interval: 30 * time.Second,
		logger:   logger,
	}
}

func (d *Dispatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.drain(ctx)
		}
	}
}

func (d *Dispatcher) drain(ctx context.Context) {
	for {
		jobs, err := d.jobs.ClaimDue(ctx, claimBatchSize)
		if err != nil {
			d.logger.Error("failed to claim notification jobs", "error", err)
			return
		}
		if len(jobs) == 0 {
			return
		}
		for _, job := range jobs {
			d.deliver(ctx, job)
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, job repository.NotificationJob) {
	subject, body := renderJob(job)
	if err := d.mailer.Send(d.admin, subject, body); err != nil {
		giveUp := job.Attempts+1 >= maxAttempts
		retryAt := time.Now().Add(time.Duration(job.Attempts+1) * time.Minute)
		d.logger.Warn("notification delivery failed",
			"job_id", job.ID, "topic", job.Topic, "attempts", job.Attempts+1, "give_up", giveUp, "error", err)
		if markErr := d.jobs.MarkFailed(ctx, job.ID, err.Error(), retryAt, giveUp); markErr != nil {
			d.logger.Error("failed to mark notification job failed", "job_id", job.ID, "error", markErr)
		}
		return
	}
	if err := d.jobs.MarkDone(ctx, job.ID); err != nil {
		d.logger.Error("failed to mark notification job done", "job_id", job.ID, "error", err)
	}
}

func renderJob(job repository.NotificationJob) (subject, body string) {
	var payload map[string]any
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		payload = map[string]any{"raw": string(job.Payload)}
	}

	switch job.Topic {
	case "booking_created":
		subject = "New booking received"
	case "payment_verified":
		subject = "Booking payment confirmed"
	case "booking_cancelled":
		subject = "Booking cancelled"
	default:
		subject = "Booking notification: " + job.Topic
	}

	body = fmt.Sprintf("Topic: %s\n", job.Topic)
	for _, key := range []string{"booking_id", "provider_name", "booking_date", "booking_time", "channel", "amount", "currency"} {
		if v, ok := payload[key]; ok {
			body += fmt.Sprintf("%s: %v\n", key, v)
		}
	}
	return subject, body
}
