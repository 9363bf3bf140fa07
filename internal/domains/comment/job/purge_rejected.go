package job

import (
	"context"
	"fmt"
	"time"

	"tattoo-backend/internal/domains/comment"
	"tattoo-backend/pkg/logger"

	"github.com/hibiken/asynq"
)

// rejectedRetention is how long rejected comments stay in the table
// before the daily purge hard-deletes them.
const rejectedRetention = 30 * 24 * time.Hour

type PurgeRejectedHandler struct {
	repo comment.CommentRepository
}

func NewPurgeRejectedHandler(repo comment.CommentRepository) *PurgeRejectedHandler {
	return &PurgeRejectedHandler{repo: repo}
}

func (h *PurgeRejectedHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	cutoff := time.Now().Add(-rejectedRetention)

	deleted, err := h.repo.DeleteRejectedBefore(ctx, cutoff)
	if err != nil {
		logger.Error("purge_rejected: failed", err)
		return err
	}

	logger.Info(fmt.Sprintf("[JOB] purge_rejected: removed %d comments", deleted))
	return nil
}
