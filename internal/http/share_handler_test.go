package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cultura-llm/internal/domain"
	"cultura-llm/internal/service"
)

func shareTestRouter(t *testing.T) (*gin.Engine, *service.SessionService, *ConversationRegistry) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := zap.NewNop()
	sessions := service.NewSessionService("secret", time.Hour)
	registry := NewConversationRegistry()
	handler := NewShareHandler(logger, service.NewMemoryShareStore(), registry, time.Hour, "http://localhost:8080")

	r := gin.New()
	r.GET("/shared/:token", handler.GetShared)
	auth := r.Group("/", SessionAuthMiddleware(sessions))
	auth.POST("/share", handler.CreateShare)
	auth.DELETE("/shared/:token", handler.DeleteShared)
	auth.GET("/shared/:token/stats", handler.ShareStats)
	return r, sessions, registry
}

func seedConversation(registry *ConversationRegistry, chatID string) {
	conv := registry.GetOrCreate(chatID)
	conv.Append(domain.Message{ID: "m1", Role: domain.RoleUser, Text: "hola", Image: []byte{0x1}})
	conv.Append(domain.Message{ID: "m2", Role: domain.RoleAssistant, Text: "¡Hola!"})
}

func TestShareHandler_CreateAndGet(t *testing.T) {
	r, sessions, registry := shareTestRouter(t)
	seedConversation(registry, "chat-1")
	token, _ := sessions.Issue("chat-1")

	req := httptest.NewRequest(http.MethodPost, "/share", nil)
	req.Header.Set("Authorization", "Bearer "+token.Token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var created struct {
		Token string `json:"token"`
		URL   string `json:"url"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if created.Token == "" || created.URL == "" {
		t.Fatalf("unexpected payload: %+v", created)
	}

	// La lectura es publica: sin token de sesion.
	req = httptest.NewRequest(http.MethodGet, "/shared/"+created.Token, nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var fetched struct {
		Chat struct {
			ChatID   string `json:"chat_id"`
			Messages []struct {
				Text     string `json:"text"`
				HadImage bool   `json:"had_image"`
			} `json:"messages"`
			ViewCount int `json:"view_count"`
		} `json:"chat"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &fetched); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if fetched.Chat.ChatID != "chat-1" || len(fetched.Chat.Messages) != 2 {
		t.Fatalf("unexpected shared chat: %+v", fetched.Chat)
	}
	if !fetched.Chat.Messages[0].HadImage {
		t.Fatalf("expected had_image flag on first message")
	}
	if fetched.Chat.ViewCount != 1 {
		t.Fatalf("expected view count 1, got %d", fetched.Chat.ViewCount)
	}
}

func TestShareHandler_GetUnknownToken(t *testing.T) {
	r, _, _ := shareTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/shared/nope", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestShareHandler_CreateRequiresSession(t *testing.T) {
	r, _, registry := shareTestRouter(t)
	seedConversation(registry, "chat-1")

	req := httptest.NewRequest(http.MethodPost, "/share", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestShareHandler_DeleteAndStats(t *testing.T) {
	r, sessions, registry := shareTestRouter(t)
	seedConversation(registry, "chat-1")
	token, _ := sessions.Issue("chat-1")

	req := httptest.NewRequest(http.MethodPost, "/share", nil)
	req.Header.Set("Authorization", "Bearer "+token.Token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var created struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	req = httptest.NewRequest(http.MethodGet, "/shared/"+created.Token+"/stats", nil)
	req.Header.Set("Authorization", "Bearer "+token.Token)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("stats: expected 200, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodDelete, "/shared/"+created.Token, nil)
	req.Header.Set("Authorization", "Bearer "+token.Token)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/shared/"+created.Token, nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}
}

func TestShareHandler_NothingToShare(t *testing.T) {
	r, sessions, _ := shareTestRouter(t)
	token, _ := sessions.Issue("chat-1")

	req := httptest.NewRequest(http.MethodPost, "/share", nil)
	req.Header.Set("Authorization", "Bearer "+token.Token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for empty chat, got %d", rec.Code)
	}
}
