package shared

// Background task types, shared between the API (enqueue side) and the
// worker (handler side).
const (
	TypeClearExpiredCarts     = "cart:clear_expired"
	TypePurgeRejectedComments = "comment:purge_rejected"
	TypeDeletePostImages      = "blog:delete_images"
)

// Asynq queue names
const (
	QueueHigh    = "high"
	QueueDefault = "default"
	QueueLow     = "low"
)
