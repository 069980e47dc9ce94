package http

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cultura-llm/internal/domain"
	"cultura-llm/internal/repository"
	"cultura-llm/internal/service"
)

// TurnArchive lista los turnos persistidos de un chat.
type TurnArchive interface {
	ListByChatID(ctx context.Context, chatID string) ([]repository.ArchivedTurn, error)
}

// ChatHandler mantiene dependencias para endpoints de sesiones y mensajes.
type ChatHandler struct {
	logger   *zap.Logger
	sessions *service.SessionService
	chats    *service.ChatService
	cultures *service.CultureService
	registry *ConversationRegistry
	archive  TurnArchive
}

// NewChatHandler crea una instancia de ChatHandler con dependencias necesarias.
func NewChatHandler(
	logger *zap.Logger,
	sessions *service.SessionService,
	chats *service.ChatService,
	cultures *service.CultureService,
	registry *ConversationRegistry,
) *ChatHandler {
	return &ChatHandler{
		logger:   logger,
		sessions: sessions,
		chats:    chats,
		cultures: cultures,
		registry: registry,
	}
}

// WithArchive habilita la consulta del historial persistido.
func (h *ChatHandler) WithArchive(archive TurnArchive) *ChatHandler {
	h.archive = archive
	return h
}

// CreateSession maneja POST /session.
func (h *ChatHandler) CreateSession(c *gin.Context) {
	var req struct {
		ChatID string `json:"chat_id"`
	}
	// El cuerpo es opcional: sin chat_id se crea una conversacion nueva.
	_ = c.ShouldBindJSON(&req)

	token, err := h.sessions.Issue(req.ChatID)
	if err != nil {
		h.logger.Error("issue session failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create session"})
		return
	}

	h.registry.GetOrCreate(token.ChatID)
	c.JSON(http.StatusCreated, gin.H{"session": token})
}

// PostMessage maneja POST /message.
func (h *ChatHandler) PostMessage(c *gin.Context) {
	claims, ok := GetSessionClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing session"})
		return
	}

	var req struct {
		Text     string `json:"text"`
		Image    string `json:"image"`
		Mode     string `json:"mode"`
		Language string `json:"language"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid post message request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	var image []byte
	if req.Image != "" {
		decoded, err := base64.StdEncoding.DecodeString(req.Image)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid image encoding"})
			return
		}
		image = decoded
	}
	if req.Text == "" && len(image) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "empty message"})
		return
	}

	conv := h.registry.GetOrCreate(claims.ChatID)
	if req.Mode != "" {
		conv.Mode = req.Mode
	}
	if req.Language != "" {
		conv.Language = req.Language
	}

	result, err := h.chats.Respond(c.Request.Context(), conv, service.ChatInput{Text: req.Text, Image: image})
	if err != nil {
		var rejected *service.ContentRejectedError
		if errors.As(err, &rejected) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "content blocked", "reason": rejected.Reason})
			return
		}
		h.logger.Error("chat turn failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not process message"})
		return
	}

	response := gin.H{
		"reply":      replyPayload(result.Reply),
		"language":   result.Language,
		"confidence": result.Confidence,
	}
	if len(result.Warnings) > 0 {
		response["warnings"] = result.Warnings
	}
	c.JSON(http.StatusCreated, response)
}

// ClearChat maneja POST /chat/clear: vacia el historial y rota el chat id.
func (h *ChatHandler) ClearChat(c *gin.Context) {
	claims, ok := GetSessionClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing session"})
		return
	}

	newChatID := h.registry.Clear(claims.ChatID)
	if newChatID == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "chat not found"})
		return
	}

	token, err := h.sessions.Issue(newChatID)
	if err != nil {
		h.logger.Error("issue session failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not rotate session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": token})
}

// GetHistory maneja GET /history: devuelve los turnos archivados del chat.
func (h *ChatHandler) GetHistory(c *gin.Context) {
	claims, ok := GetSessionClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing session"})
		return
	}
	if h.archive == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "history not available"})
		return
	}

	turns, err := h.archive.ListByChatID(c.Request.Context(), claims.ChatID)
	if err != nil {
		h.logger.Error("history lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load history"})
		return
	}

	history := make([]gin.H, 0, len(turns))
	for _, t := range turns {
		entry := gin.H{
			"id":   t.ID,
			"role": t.Role,
			"text": t.Text,
		}
		if t.DetectedLang != "" {
			entry["language"] = t.DetectedLang
		}
		if t.Sentiment != "" {
			entry["sentiment"] = t.Sentiment
		}
		if t.HadImage {
			entry["had_image"] = true
		}
		history = append(history, entry)
	}
	c.JSON(http.StatusOK, gin.H{"history": history, "count": len(history)})
}

// GetLanguages maneja GET /languages.
func (h *ChatHandler) GetLanguages(c *gin.Context) {
	codes := h.cultures.SupportedLanguages()
	languages := make([]gin.H, 0, len(codes))
	for _, code := range codes {
		info := h.cultures.LanguageInfo(code)
		languages = append(languages, gin.H{
			"code":   code,
			"name":   info.Name,
			"native": info.Native,
		})
	}
	c.JSON(http.StatusOK, gin.H{"languages": languages})
}

// GetCulturalTip maneja GET /culture/:lang/tip.
func (h *ChatHandler) GetCulturalTip(c *gin.Context) {
	lang := c.Param("lang")
	c.JSON(http.StatusOK, gin.H{
		"language": lang,
		"tip":      h.cultures.GetCulturalTip(lang),
	})
}

func replyPayload(msg domain.Message) gin.H {
	payload := gin.H{
		"id":         msg.ID,
		"chat_id":    msg.ChatID,
		"role":       msg.Role,
		"text":       msg.Text,
		"created_at": msg.CreatedAt,
	}
	if msg.HasImage() {
		payload["image"] = base64.StdEncoding.EncodeToString(msg.Image)
	}
	if msg.Sentiment != "" {
		payload["sentiment"] = msg.Sentiment
	}
	return payload
}
