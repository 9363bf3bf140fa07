package handler

import (
	"errors"

	"tattoo-backend/internal/domains/cart"
	"tattoo-backend/internal/shared/middleware"
	"tattoo-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CartHandler struct {
	service cart.CartService
}

func NewCartHandler(svc cart.CartService) *CartHandler {
	return &CartHandler{service: svc}
}

type addItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity"`
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, cart.ErrItemNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, cart.ErrInvalidQuantity):
		response.BadRequest(c, err.Error())
	case errors.Is(err, cart.ErrProductGone):
		response.UnprocessableEntity(c, err.Error())
	default:
		response.InternalServerError(c, "cart operation failed")
	}
}

func sessionID(c *gin.Context) (string, bool) {
	id, ok := middleware.SessionIDFromContext(c)
	if !ok {
		response.InternalServerError(c, "cart session missing")
	}
	return id, ok
}

// Get - GET /v1/cart
func (h *CartHandler) Get(c *gin.Context) {
	sid, ok := sessionID(c)
	if !ok {
		return
	}

	view, err := h.service.Get(c.Request.Context(), sid)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, view)
}

// AddItem - POST /v1/cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	sid, ok := sessionID(c)
	if !ok {
		return
	}

	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	view, err := h.service.Add(c.Request.Context(), sid, req.ProductID, req.Quantity)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, view)
}

// UpdateQuantity - PUT /v1/cart/items/:productId
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	sid, ok := sessionID(c)
	if !ok {
		return
	}

	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		response.BadRequest(c, "invalid product id")
		return
	}

	var req updateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	view, err := h.service.UpdateQuantity(c.Request.Context(), sid, productID, req.Quantity)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, view)
}

// RemoveItem - DELETE /v1/cart/items/:productId
func (h *CartHandler) RemoveItem(c *gin.Context) {
	sid, ok := sessionID(c)
	if !ok {
		return
	}

	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		response.BadRequest(c, "invalid product id")
		return
	}

	view, err := h.service.Remove(c.Request.Context(), sid, productID)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, view)
}

// Clear - DELETE /v1/cart
func (h *CartHandler) Clear(c *gin.Context) {
	sid, ok := sessionID(c)
	if !ok {
		return
	}

	view, err := h.service.Clear(c.Request.Context(), sid)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, view)
}
