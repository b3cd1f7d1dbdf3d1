package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"medialog/internal/http-api/dto"
	"medialog/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type ItemHandler struct {
	svc service.ItemService
	log *slog.Logger
}

func NewItemHandler(svc service.ItemService, log *slog.Logger) *ItemHandler {
	return &ItemHandler{svc: svc, log: log}
}

// RegisterRoutes wires the item routes. adminAuth gates the direct mutating
// endpoints; bangumiAuth gates the externally verified import endpoint. The
// id path segment on PATCH/DELETE is optional - callers may identify the
// row by external_id in the body or query instead.
func (h *ItemHandler) RegisterRoutes(rg *gin.RouterGroup, adminAuth, bangumiAuth gin.HandlerFunc) {
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
	rg.POST("", adminAuth, h.Create)
	rg.PATCH("", adminAuth, h.Update)
	rg.PATCH("/:id", adminAuth, h.Update)
	rg.DELETE("", adminAuth, h.Delete)
	rg.DELETE("/:id", adminAuth, h.Delete)
	rg.POST("/bangumi", bangumiAuth, h.Create)
}

func (h *ItemHandler) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	list, err := h.svc.List(ctx, c.Query("status"), c.Query("media_type"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Get returns one item by internal id, backing the frontend's detail view.
func (h *ItemHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	item, err := h.svc.Get(ctx, id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// Create handles both POST /items and POST /items/bangumi: one validated
// payload routed through the upsert reconciler.
func (h *ItemHandler) Create(c *gin.Context) {
	var in dto.CreateItemDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.Upsert(ctx, &in); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *ItemHandler) Update(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var in dto.UpdateItemDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.Update(ctx, id, in.ExternalID, &in); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *ItemHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var externalID *string
	if v := c.Query("external_id"); v != "" {
		externalID = &v
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.Delete(ctx, id, externalID); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// pathID parses the optional :id segment. The second return is false when an
// id was present but malformed (response already written).
func (h *ItemHandler) pathID(c *gin.Context) (*int64, bool) {
	idStr := c.Param("id")
	if idStr == "" {
		return nil, true
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return nil, false
	}
	return &id, true
}

func (h *ItemHandler) writeError(c *gin.Context, err error) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
	default:
		// detail stays server-side
		h.log.Error("item request failed",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"request_id", c.GetString("request_id"),
			"error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
