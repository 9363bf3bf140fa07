package handler

import (
	"errors"
	"io"
	"strconv"

	"tattoo-backend/internal/domains/profile"
	"tattoo-backend/internal/shared/middleware"
	"tattoo-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxAvatarSize = 5 << 20 // 5 MiB

type ProfileHandler struct {
	service profile.ProfileService
}

func NewProfileHandler(svc profile.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: svc}
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, profile.ErrProfileNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, profile.ErrProfileExists):
		response.Conflict(c, err.Error())
	case errors.Is(err, profile.ErrNotOwner):
		response.Forbidden(c, err.Error())
	default:
		response.BadRequest(c, err.Error())
	}
}

// Create - POST /v1/profiles (authenticated)
func (h *ProfileHandler) Create(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "You must be logged in")
		return
	}

	var req profile.CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	p, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Created(c, p)
}

// GetByID - GET /v1/profiles/:id
func (h *ProfileHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid profile id")
		return
	}

	p, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, p)
}

// Me - GET /v1/profiles/me (authenticated)
func (h *ProfileHandler) Me(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "You must be logged in")
		return
	}

	p, err := h.service.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, p)
}

// ListArtists - GET /v1/artists
func (h *ProfileHandler) ListArtists(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	filter := profile.Filter{
		Search: c.Query("search"),
		Limit:  limit,
		Offset: offset,
	}

	artists, total, err := h.service.ListArtists(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	response.SuccessWithMeta(c, artists, response.Meta{
		Total:  total,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	})
}

// Update - PUT /v1/profiles/:id (owner only)
func (h *ProfileHandler) Update(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "You must be logged in")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid profile id")
		return
	}

	var req profile.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	p, err := h.service.Update(c.Request.Context(), userID, id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, p)
}

// UploadAvatar - POST /v1/profiles/:id/avatar (owner only, multipart)
func (h *ProfileHandler) UploadAvatar(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "You must be logged in")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid profile id")
		return
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		response.BadRequest(c, "avatar file is required")
		return
	}
	if fileHeader.Size > maxAvatarSize {
		response.BadRequest(c, "avatar exceeds the 5MB limit")
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

	url, err := h.service.UploadAvatar(c.Request.Context(), userID, id, data, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, gin.H{"avatar_url": url})
}
