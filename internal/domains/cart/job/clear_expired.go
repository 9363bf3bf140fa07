package job

import (
	"context"
	"fmt"

	"tattoo-backend/internal/domains/cart"
	"tattoo-backend/pkg/logger"

	"github.com/hibiken/asynq"
)

type ClearExpiredHandler struct {
	store cart.Store
}

func NewClearExpiredHandler(store cart.Store) *ClearExpiredHandler {
	return &ClearExpiredHandler{store: store}
}

func (h *ClearExpiredHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	dropped, err := h.store.ClearExpired(ctx)
	if err != nil {
		logger.Error("clear_expired: failed", err)
		return err
	}

	logger.Info(fmt.Sprintf("[JOB] clear_expired: removed %d carts", dropped))
	return nil
}
