package domain

import (
	"time"

	"github.com/google/uuid"
)

// Conversation agrupa los mensajes de una sesion de chat.
// Es propiedad de una sola sesion: el pipeline la recibe de forma explicita
// y nunca la comparte entre requests concurrentes.
type Conversation struct {
	ChatID   string    `json:"chat_id"`
	Language string    `json:"language"`
	Mode     string    `json:"mode"`
	Messages []Message `json:"messages"`
}

func NewConversation() *Conversation {
	return &Conversation{
		ChatID:   uuid.NewString(),
		Language: "en",
		Mode:     ModeMixed,
	}
}

// Append agrega un mensaje ya resuelto a la conversacion.
func (c *Conversation) Append(msg Message) {
	msg.ChatID = c.ChatID
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}
	c.Messages = append(c.Messages, msg)
}

// Recent devuelve los ultimos n mensajes como contexto de generacion.
func (c *Conversation) Recent(n int) []Message {
	if n <= 0 || len(c.Messages) == 0 {
		return nil
	}
	if len(c.Messages) > n {
		return c.Messages[len(c.Messages)-n:]
	}
	return c.Messages
}

// AssistantTurns cuenta las respuestas del asistente ya entregadas.
func (c *Conversation) AssistantTurns() int {
	count := 0
	for _, m := range c.Messages {
		if m.Role == RoleAssistant {
			count++
		}
	}
	return count
}

// Clear vacia la conversacion y rota el identificador de chat.
func (c *Conversation) Clear() {
	c.Messages = nil
	c.ChatID = uuid.NewString()
}
