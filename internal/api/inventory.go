package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/pantry-tracker/backend/internal/service"
	"github.com/pageza/pantry-tracker/backend/internal/types"
)

// InventoryHandler exposes the inventory store over HTTP
type InventoryHandler struct {
	inventory service.IInventoryService
}

// NewInventoryHandler creates a new InventoryHandler instance
func NewInventoryHandler(inventory service.IInventoryService) *InventoryHandler {
	return &InventoryHandler{inventory: inventory}
}

// RegisterRoutes registers the inventory routes
func (h *InventoryHandler) RegisterRoutes(router *gin.RouterGroup) {
	inventory := router.Group("/inventory")
	{
		inventory.GET("", h.List)
		inventory.POST("", h.Add)
		inventory.GET("/breakdown", h.Breakdown)
		inventory.POST("/:name/remove", h.Remove)
		inventory.DELETE("/:name", h.Delete)
	}
}

// List returns the inventory, optionally filtered by ?search=
func (h *InventoryHandler) List(c *gin.Context) {
	items, err := h.inventory.List(c.Request.Context())
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, InventoryResponse{Items: service.FilterItems(items, c.Query("search"))})
}

// Add increments or creates an item
func (h *InventoryHandler) Add(c *gin.Context) {
	var req types.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	result, err := h.inventory.Add(c.Request.Context(), req.Name, req.ViaCamera)
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Remove decrements an item, deleting it at quantity 1
func (h *InventoryHandler) Remove(c *gin.Context) {
	result, err := h.inventory.Remove(c.Request.Context(), c.Param("name"))
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Delete removes an item regardless of quantity
func (h *InventoryHandler) Delete(c *gin.Context) {
	result, err := h.inventory.Delete(c.Request.Context(), c.Param("name"))
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Breakdown returns per-item shares of the total quantity
func (h *InventoryHandler) Breakdown(c *gin.Context) {
	breakdown, err := h.inventory.Breakdown(c.Request.Context())
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, breakdown)
}

func (h *InventoryHandler) storeError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrInvalidItemName) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	_ = c.Error(fmt.Errorf("InventoryHandler: %w", err))
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update inventory. Please try again."})
}
