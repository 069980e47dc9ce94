package domain

import "time"

// SharedMessage es la version redactada de un mensaje para compartir:
// se conserva el texto y un flag de adjunto, nunca el binario.
type SharedMessage struct {
	Role      string    `json:"role"`
	Text      string    `json:"text"`
	HadImage  bool      `json:"had_image,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// SharedChat es el registro asociado a un token de comparticion.
type SharedChat struct {
	ChatID    string          `json:"chat_id"`
	Messages  []SharedMessage `json:"messages"`
	CreatedAt time.Time       `json:"created_at"`
	ExpiresAt time.Time       `json:"expires_at"`
	ViewCount int             `json:"view_count"`
}

// ShareStats resume el estado de un enlace compartido sin exponer mensajes.
type ShareStats struct {
	ChatID       string    `json:"chat_id"`
	CreatedAt    time.Time `json:"created_at"`
	ExpiresAt    time.Time `json:"expires_at"`
	ViewCount    int       `json:"view_count"`
	MessageCount int       `json:"message_count"`
}

// RedactMessages convierte mensajes completos en su forma compartible.
func RedactMessages(messages []Message) []SharedMessage {
	redacted := make([]SharedMessage, 0, len(messages))
	for _, m := range messages {
		redacted = append(redacted, SharedMessage{
			Role:      m.Role,
			Text:      m.Text,
			HadImage:  m.HasImage(),
			CreatedAt: m.CreatedAt,
		})
	}
	return redacted
}
