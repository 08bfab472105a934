package repository

import (
	"context"
	"time"

	"mindvale-server/internal/infra"
	"mindvale-server/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NotificationJob is one outbox row. Jobs are inserted in the same transaction
// as the state change they announce and delivered asynchronously.
type NotificationJob struct {
	ID       uuid.UUID
	Kind     string
	Topic    string
	Payload  []byte
	Attempts int32
}

type NotificationRepository struct {
	pool *pgxpool.Pool
}

func NewNotificationRepository(pool *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{pool: pool}
}

func (r *NotificationRepository) CreateJob(ctx context.Context, q db.Querier, kind, topic string, payload []byte, runAt time.Time) error {
	const query = `
		INSERT INTO notification_jobs (id, kind, topic, payload, run_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := q.Exec(ctx, query, uuid.New(), kind, topic, payload, runAt); err != nil {
		return infra.WrapRepoErr("failed to create notification job", err)
	}
	return nil
}

// ClaimDue marks up to limit due jobs as processing and returns them.
// SKIP LOCKED keeps concurrent dispatchers from claiming the same rows.
func (r *NotificationRepository) ClaimDue(ctx context.Context, limit int32) ([]NotificationJob, error) {
	const query = `
		UPDATE notification_jobs
		SET status = 'processing', updated_at = now()
		WHERE id IN (
			SELECT id FROM notification_jobs
			WHERE status = 'pending' AND run_at <= now()
			ORDER BY run_at
			LIMIT $1
			FOR UPDATE SKIP LOCKED
		)
		RETURNING id, kind, topic, payload, attempts
	`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to claim notification jobs", err)
	}
	defer rows.Close()

	var jobs []NotificationJob
	for rows.Next() {
		var j NotificationJob
		if err := rows.Scan(&j.ID, &j.Kind, &j.Topic, &j.Payload, &j.Attempts); err != nil {
			return nil, infra.WrapRepoErr("failed to scan notification job", err)
		}
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read notification jobs", err)
	}
	return jobs, nil
}

func (r *NotificationRepository) MarkDone(ctx context.Context, id uuid.UUID) error {
	const query = `
		UPDATE notification_jobs
		SET status = 'done', updated_at = now()
		WHERE id = $1
	`
	if _, err := r.pool.Exec(ctx, query, id); err != nil {
		return infra.WrapRepoErr("failed to mark notification job done", err)
	}
	return nil
}

// MarkFailed re-queues the job for retryAt, or parks it as failed once
// attempts exceed the dispatcher's retry budget.
func (r *NotificationRepository) MarkFailed(ctx context.Context, id uuid.UUID, lastError string, retryAt time.Time, giveUp bool) error {
	status := "pending"
	if giveUp {
		status = "failed"
	}
	const query = `
		UPDATE notification_jobs
		SET status = $2, attempts = attempts + 1, last_error = $3, run_at = $4, updated_at = now()
		WHERE id = $1
	`
	if _, err := r.pool.Exec(ctx, query, id, status, lastError, retryAt); err != nil {
		return infra.WrapRepoErr("failed to mark notification job failed", err)
	}
	return nil
}
