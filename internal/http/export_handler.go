package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cultura-llm/internal/service"
)

// ExportHandler expone la descarga del transcript en varios formatos.
type ExportHandler struct {
	logger   *zap.Logger
	exports  *service.ExportService
	registry *ConversationRegistry
}

func NewExportHandler(logger *zap.Logger, exports *service.ExportService, registry *ConversationRegistry) *ExportHandler {
	return &ExportHandler{logger: logger, exports: exports, registry: registry}
}

// Export maneja GET /export/:format con format en {txt, json, pdf}.
func (h *ExportHandler) Export(c *gin.Context) {
	claims, ok := GetSessionClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing session"})
		return
	}

	conv, found := h.registry.Get(claims.ChatID)
	if !found || len(conv.Messages) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "nothing to export"})
		return
	}

	switch c.Param("format") {
	case "txt":
		c.Header("Content-Disposition", `attachment; filename="conversation.txt"`)
		c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(h.exports.ExportText(conv.Messages)))

	case "json":
		payload, err := h.exports.ExportJSON(conv)
		if err != nil {
			h.logger.Error("json export failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not export conversation"})
			return
		}
		c.Header("Content-Disposition", `attachment; filename="conversation.json"`)
		c.Data(http.StatusOK, "application/json", payload)

	case "pdf":
		c.Header("Content-Disposition", `attachment; filename="conversation.pdf"`)
		c.Data(http.StatusOK, "application/pdf", h.exports.ExportPDF(conv.Messages, conv.ChatID))

	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported format"})
	}
}
