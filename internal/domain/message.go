package domain

import "time"

// Roles de los participantes de una conversacion.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Modos de chat soportados por el pipeline.
const (
	ModeMixed           = "mixed"
	ModeTextOnly        = "text_only"
	ModeImageAnalysis   = "image_analysis"
	ModeImageGeneration = "image_generation"
)

type Message struct {
	ID                string    `json:"id"`
	ChatID            string    `json:"chat_id,omitempty"`
	Role              string    `json:"role"`
	Text              string    `json:"text"`
	Image             []byte    `json:"image,omitempty"`
	DetectedLang      string    `json:"detected_lang,omitempty"`
	CulturallyAdapted bool      `json:"culturally_adapted,omitempty"`
	Sentiment         string    `json:"sentiment,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

// HasImage indica si el mensaje lleva contenido binario adjunto.
func (m Message) HasImage() bool {
	return len(m.Image) > 0
}
