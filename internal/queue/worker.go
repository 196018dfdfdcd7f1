package queue

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/contentdeck/contentdeck/internal/models"
	"github.com/hibiken/asynq"
)

func (q *Queue) HandlePublishPostTask(ctx context.Context, task *asynq.Task) error {
	var payload PublishPostPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return err
	}

	return q.PublishPost(ctx, payload.PostID)
}

// PublishPost flips a due scheduled post to published. Tasks for posts that
// were deleted, unscheduled, or rescheduled after enqueue are no-ops, which
// keeps the cron sweep's re-enqueues safe to run repeatedly.
func (q *Queue) PublishPost(ctx context.Context, postID string) error {
	post, err := q.pr.GetForPublish(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		slog.Info("publish task skipped, post deleted", "post_id", postID)
		return nil
	}

	if post.Status != models.PostStatusScheduled || post.ScheduledAt == nil {
		slog.Info("publish task skipped, post no longer scheduled", "post_id", postID, "status", post.Status)
		return nil
	}
	if post.ScheduledAt.After(time.Now()) {
		// Rescheduled after this task was enqueued; the new task covers it.
		return nil
	}

	now := time.Now()
	if err := q.pr.UpdateStatus(ctx, post.ID, models.PostStatusPublished, &now); err != nil {
		slog.Error("failed to publish post", "post_id", post.ID, "error", err)
		return err
	}

	q.cache.Invalidate(ctx, post.UserID)
	slog.Info("post published", "post_id", post.ID, "user_id", post.UserID)
	return nil
}
