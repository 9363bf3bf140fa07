package main

import (
	"github.com/hibiken/asynq"

	blogJob "tattoo-backend/internal/domains/blog/job"
	cartJob "tattoo-backend/internal/domains/cart/job"
	commentJob "tattoo-backend/internal/domains/comment/job"
	"tattoo-backend/internal/shared"
	"tattoo-backend/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	clearExpiredCarts *cartJob.ClearExpiredHandler
	purgeRejected     *commentJob.PurgeRejectedHandler
	deletePostImages  *blogJob.DeleteImagesHandler
}

// initializeHandlers creates all job handlers with their dependencies
func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		clearExpiredCarts: cartJob.NewClearExpiredHandler(c.CartStore),
		purgeRejected:     commentJob.NewPurgeRejectedHandler(c.CommentRepo),
		deletePostImages:  blogJob.NewDeleteImagesHandler(c.Storage),
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(shared.TypeClearExpiredCarts, h.clearExpiredCarts.ProcessTask)
	mux.HandleFunc(shared.TypePurgeRejectedComments, h.purgeRejected.ProcessTask)
	mux.HandleFunc(shared.TypeDeletePostImages, h.deletePostImages.ProcessTask)
}
