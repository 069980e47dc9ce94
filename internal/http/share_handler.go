package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cultura-llm/internal/service"
)

// ShareHandler expone la creacion y consulta de enlaces compartidos.
type ShareHandler struct {
	logger   *zap.Logger
	store    service.ShareStore
	registry *ConversationRegistry
	ttl      time.Duration
	baseURL  string
}

func NewShareHandler(
	logger *zap.Logger,
	store service.ShareStore,
	registry *ConversationRegistry,
	ttl time.Duration,
	baseURL string,
) *ShareHandler {
	return &ShareHandler{
		logger:   logger,
		store:    store,
		registry: registry,
		ttl:      ttl,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}
}

// CreateShare maneja POST /share.
func (h *ShareHandler) CreateShare(c *gin.Context) {
	claims, ok := GetSessionClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing session"})
		return
	}

	conv, ok := h.registry.Get(claims.ChatID)
	if !ok || len(conv.Messages) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "nothing to share"})
		return
	}

	token, err := h.store.Create(c.Request.Context(), conv.ChatID, conv.Messages, h.ttl)
	if err != nil {
		h.logger.Error("create share failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create share link"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token":      token,
		"url":        h.baseURL + "/shared/" + token,
		"expires_at": time.Now().UTC().Add(h.ttl),
	})
}

// GetShared maneja GET /shared/:token. Es publico: cualquiera con el
// token puede leer la conversacion redactada.
func (h *ShareHandler) GetShared(c *gin.Context) {
	record, err := h.store.Get(c.Request.Context(), c.Param("token"))
	if errors.Is(err, service.ErrShareNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "share link not found or expired"})
		return
	}
	if err != nil {
		h.logger.Error("get share failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load shared chat"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"chat": record})
}

// DeleteShared maneja DELETE /shared/:token.
func (h *ShareHandler) DeleteShared(c *gin.Context) {
	deleted, err := h.store.Delete(c.Request.Context(), c.Param("token"))
	if err != nil {
		h.logger.Error("delete share failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete share link"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "share link not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// ShareStats maneja GET /shared/:token/stats.
func (h *ShareHandler) ShareStats(c *gin.Context) {
	stats, err := h.store.Stats(c.Request.Context(), c.Param("token"))
	if errors.Is(err, service.ErrShareNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "share link not found or expired"})
		return
	}
	if err != nil {
		h.logger.Error("share stats failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load share stats"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats})
}
