package handler

import (
	"errors"
	"io"
	"strconv"

	"tattoo-backend/internal/domains/blog"
	"tattoo-backend/internal/shared/middleware"
	"tattoo-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxCoverSize = 10 << 20 // 10 MiB

type PostHandler struct {
	service blog.BlogService
}

func NewPostHandler(svc blog.BlogService) *PostHandler {
	return &PostHandler{service: svc}
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, blog.ErrPostNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, blog.ErrDuplicateSlug):
		response.Conflict(c, err.Error())
	case errors.Is(err, blog.ErrAlreadyPublished):
		response.Conflict(c, err.Error())
	default:
		response.BadRequest(c, err.Error())
	}
}

// List - GET /v1/posts
// Public listing: only published posts, newest first.
func (h *PostHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	filter := blog.PostFilter{
		Search:        c.Query("search"),
		PublishedOnly: true,
		Page:          page,
		Limit:         limit,
	}
	if raw := c.Query("category_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(c, "invalid category id")
			return
		}
		filter.CategoryID = &id
	}
	if tag := c.Query("tag"); tag != "" {
		filter.Tags = []string{tag}
	}

	result, err := h.service.ListPosts(c.Request.Context(), filter)
	if err != nil {
		response.InternalServerError(c, "failed to load posts")
		return
	}
	response.SuccessWithMeta(c, result.Posts, response.Meta{
		Total:  result.Total,
		Limit:  filter.Limit,
		Offset: filter.Offset(),
	})
}

// GetBySlug - GET /v1/posts/:slug
func (h *PostHandler) GetBySlug(c *gin.Context) {
	post, err := h.service.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, post)
}

// Create - POST /v1/posts (admin)
func (h *PostHandler) Create(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "You must be logged in")
		return
	}

	var req blog.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	post, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Created(c, post)
}

// Update - PUT /v1/posts/:id (admin)
func (h *PostHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid post id")
		return
	}

	var req blog.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	post, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, post)
}

// Publish - POST /v1/posts/:id/publish (admin)
func (h *PostHandler) Publish(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid post id")
		return
	}

	post, err := h.service.Publish(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, post)
}

// UploadCover - POST /v1/posts/:id/cover (admin, multipart)
func (h *PostHandler) UploadCover(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid post id")
		return
	}

	fileHeader, err := c.FormFile("cover")
	if err != nil {
		response.BadRequest(c, "cover file is required")
		return
	}
	if fileHeader.Size > maxCoverSize {
		response.BadRequest(c, "cover exceeds the 10MB limit")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.InternalServerError(c, "failed to read upload")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		response.InternalServerError(c, "failed to read upload")
		return
	}

	url, err := h.service.UploadCover(c.Request.Context(), id, data, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, gin.H{"cover_url": url})
}
