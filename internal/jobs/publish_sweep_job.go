package job

import (
	"context"
	"log/slog"
	"time"

	"github.com/contentdeck/contentdeck/internal/models"
	"github.com/contentdeck/contentdeck/internal/queue"
	"github.com/contentdeck/contentdeck/internal/repository"
	"github.com/hibiken/asynq"
)

// failedCutoff is how long a post may stay due-but-scheduled before the
// sweep gives up on it and marks it failed.
const failedCutoff = 24 * time.Hour

type PublishSweepJob struct {
	pr     repository.PostRepository
	client *asynq.Client
}

func NewPublishSweepJob(pr repository.PostRepository, client *asynq.Client) *PublishSweepJob {
	return &PublishSweepJob{
		pr:     pr,
		client: client,
	}
}

// SweepOverduePosts re-enqueues publish tasks for scheduled posts whose time
// has passed, recovering tasks lost while the process was down. The worker's
// status guard makes duplicate enqueues harmless.
func (j *PublishSweepJob) SweepOverduePosts() {
	ctx := context.Background()

	posts, err := j.pr.ListDue(ctx, time.Now())
	if err != nil {
		slog.Info(err.Error())
		return
	}

	for _, post := range posts {
		if post.ScheduledAt != nil && time.Since(*post.ScheduledAt) > failedCutoff {
			if err := j.pr.UpdateStatus(ctx, post.ID, models.PostStatusFailed, nil); err != nil {
				slog.Info(err.Error())
			}
			slog.Info("post marked failed, overdue past cutoff", "post_id", post.ID)
			continue
		}

		err := queue.EnqueuePublish(j.client, queue.PublishPostPayload{PostID: post.ID}, 0)
		if err != nil {
			slog.Info("unable to enqueue publish task", "post_id", post.ID, "error", err)
		}
	}
}
