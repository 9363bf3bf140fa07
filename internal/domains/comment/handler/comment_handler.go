package handler

import (
	"errors"
	"strconv"

	"tattoo-backend/internal/domains/comment"
	"tattoo-backend/internal/shared/middleware"
	"tattoo-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CommentHandler struct {
	service comment.CommentService
}

func NewCommentHandler(svc comment.CommentService) *CommentHandler {
	return &CommentHandler{service: svc}
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, comment.ErrCommentNotFound),
		errors.Is(err, comment.ErrParentNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, comment.ErrParentNotAllowed):
		response.UnprocessableEntity(c, err.Error())
	default:
		response.BadRequest(c, err.Error())
	}
}

// Create - POST /v1/posts/:id/comments (authenticated)
func (h *CommentHandler) Create(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "You must be logged in")
		return
	}

	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid post id")
		return
	}

	var req comment.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	created, err := h.service.Create(c.Request.Context(), userID, postID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	// 202: stored, pending moderation, not yet visible
	c.JSON(202, response.Response{
		Success: true,
		Data:    gin.H{"comment": created, "status": "pending_approval"},
	})
}

// ListByPost - GET /v1/posts/:id/comments
func (h *CommentHandler) ListByPost(c *gin.Context) {
	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid post id")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	thread, err := h.service.ListByPost(c.Request.Context(), postID, page, limit)
	if err != nil {
		response.InternalServerError(c, "failed to load comments")
		return
	}
	response.SuccessWithMeta(c, thread.Comments, response.Meta{
		Total: thread.Total,
		Limit: limit,
	})
}

// ListPending - GET /v1/admin/comments/pending (admin)
func (h *CommentHandler) ListPending(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	comments, total, err := h.service.ListPending(c.Request.Context(), page, limit)
	if err != nil {
		response.InternalServerError(c, "failed to load pending comments")
		return
	}
	response.SuccessWithMeta(c, comments, response.Meta{
		Total: total,
		Limit: limit,
	})
}

// Approve - POST /v1/admin/comments/:id/approve (admin)
func (h *CommentHandler) Approve(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid comment id")
		return
	}

	approved, err := h.service.Approve(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, approved)
}

// Reject - POST /v1/admin/comments/:id/reject (admin)
func (h *CommentHandler) Reject(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid comment id")
		return
	}

	rejected, err := h.service.Reject(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, rejected)
}
