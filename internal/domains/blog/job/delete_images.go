package job

import (
	"context"
	"encoding/json"
	"fmt"

	"tattoo-backend/internal/infrastructure/storage"
	"tattoo-backend/internal/shared"
	"tattoo-backend/pkg/logger"

	"github.com/hibiken/asynq"
)

// DeleteImagesPayload names the object keys to remove after a cover or
// photo was replaced. The old object stays readable until the job runs.
type DeleteImagesPayload struct {
	Keys []string `json:"keys"`
}

func NewDeleteImagesTask(keys []string) (*asynq.Task, error) {
	payload, err := json.Marshal(DeleteImagesPayload{Keys: keys})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}
	return asynq.NewTask(shared.TypeDeletePostImages, payload, asynq.Queue(shared.QueueLow)), nil
}

type DeleteImagesHandler struct {
	storage *storage.MinIOStorage
}

func NewDeleteImagesHandler(store *storage.MinIOStorage) *DeleteImagesHandler {
	return &DeleteImagesHandler{storage: store}
}

func (h *DeleteImagesHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload DeleteImagesPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	for _, key := range payload.Keys {
		if key == "" {
			continue
		}
		if err := h.storage.Delete(ctx, key); err != nil {
			logger.Error("delete_images: failed to delete "+key, err)
			return err
		}
	}

	logger.Info(fmt.Sprintf("[JOB] delete_images: removed %d objects", len(payload.Keys)))
	return nil
}
