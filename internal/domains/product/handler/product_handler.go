package handler

import (
	"errors"
	"io"
	"strconv"

	"tattoo-backend/internal/domains/product"
	"tattoo-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxPhotoSize = 10 << 20 // 10 MiB

type ProductHandler struct {
	service product.ProductService
}

func NewProductHandler(svc product.ProductService) *ProductHandler {
	return &ProductHandler{service: svc}
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, product.ErrProductNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, product.ErrDuplicateSlug):
		response.Conflict(c, err.Error())
	case errors.Is(err, product.ErrInvalidStock):
		response.UnprocessableEntity(c, err.Error())
	default:
		response.BadRequest(c, err.Error())
	}
}

// List - GET /v1/products
func (h *ProductHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "24"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	filter := product.Filter{
		Category:   c.Query("category"),
		Search:     c.Query("search"),
		ActiveOnly: true,
		Limit:      limit,
		Offset:     offset,
	}

	products, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.InternalServerError(c, "failed to load products")
		return
	}
	response.SuccessWithMeta(c, products, response.Meta{
		Total:  total,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	})
}

// GetBySlug - GET /v1/products/:slug
func (h *ProductHandler) GetBySlug(c *gin.Context) {
	p, err := h.service.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, p)
}

// Create - POST /v1/products (admin)
func (h *ProductHandler) Create(c *gin.Context) {
	var req product.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	p, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Created(c, p)
}

// Update - PUT /v1/products/:id (admin)
func (h *ProductHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid product id")
		return
	}

	var req product.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	p, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, p)
}

// AdjustStock - POST /v1/products/:id/stock (admin)
func (h *ProductHandler) AdjustStock(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid product id")
		return
	}

	var req product.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	p, err := h.service.AdjustStock(c.Request.Context(), id, req.Delta)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, p)
}

// UploadImage - POST /v1/products/:id/photo (admin, multipart)
func (h *ProductHandler) UploadImage(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid product id")
		return
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		response.BadRequest(c, "photo file is required")
		return
	}
	if fileHeader.Size > maxPhotoSize {
		response.BadRequest(c, "photo exceeds the 10MB limit")
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

	url, err := h.service.UploadImage(c.Request.Context(), id, data, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, gin.H{"image_url": url})
}
