package http

import (
	"sync"

	"cultura-llm/internal/domain"
)

// ConversationRegistry mantiene las conversaciones activas por chat id.
// El registro es el unico punto de acceso concurrente: el pipeline recibe
// la conversacion ya resuelta y la procesa de forma secuencial.
type ConversationRegistry struct {
	mu    sync.Mutex
	chats map[string]*domain.Conversation
}

func NewConversationRegistry() *ConversationRegistry {
	return &ConversationRegistry{chats: make(map[string]*domain.Conversation)}
}

// GetOrCreate devuelve la conversacion del chat, creandola si no existe.
func (r *ConversationRegistry) GetOrCreate(chatID string) *domain.Conversation {
	r.mu.Lock()
	defer r.mu.Unlock()

	if conv, ok := r.chats[chatID]; ok {
		return conv
	}
	conv := domain.NewConversation()
	if chatID != "" {
		conv.ChatID = chatID
	}
	r.chats[conv.ChatID] = conv
	return conv
}

// Get devuelve la conversacion si existe.
func (r *ConversationRegistry) Get(chatID string) (*domain.Conversation, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	conv, ok := r.chats[chatID]
	return conv, ok
}

// Clear borra el historial del chat y lo reindexa bajo su nuevo id.
func (r *ConversationRegistry) Clear(chatID string) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	conv, ok := r.chats[chatID]
	if !ok {
		return ""
	}
	delete(r.chats, chatID)
	conv.Clear()
	r.chats[conv.ChatID] = conv
	return conv.ChatID
}
