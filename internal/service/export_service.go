package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"go.uber.org/zap"

	"cultura-llm/internal/domain"
)

const exportTitle = "Cultura LLM - Conversation Export"

// ExportService serializa conversaciones a texto plano, JSON y PDF.
// Nunca incluye los bytes de las imagenes, solo un indicador de adjunto.
type ExportService struct {
	logger *zap.Logger
}

func NewExportService(logger *zap.Logger) *ExportService {
	return &ExportService{logger: logger}
}

// ExportText genera una transcripcion en texto plano.
func (s *ExportService) ExportText(messages []domain.Message) string {
	var b strings.Builder
	b.WriteString(exportTitle + "\n")
	b.WriteString(strings.Repeat("=", 50) + "\n")
	b.WriteString("Exported on: " + time.Now().UTC().Format("2006-01-02 15:04:05") + "\n\n")

	for _, msg := range messages {
		role := exportRole(msg.Role)
		if !msg.CreatedAt.IsZero() {
			b.WriteString(fmt.Sprintf("[%s] %s:\n", msg.CreatedAt.Format("15:04:05"), role))
		} else {
			b.WriteString(role + ":\n")
		}
		if msg.Text != "" {
			b.WriteString(msg.Text + "\n")
		}
		if msg.HasImage() {
			b.WriteString("[Image attached]\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

type exportedMessage struct {
	Role      string `json:"role"`
	Timestamp string `json:"timestamp,omitempty"`
	Text      string `json:"text"`
	HasImage  bool   `json:"has_image,omitempty"`
}

type exportedConversation struct {
	ChatID        string            `json:"chat_id"`
	Language      string            `json:"language"`
	ExportedAt    string            `json:"exported_at"`
	TotalMessages int               `json:"total_messages"`
	Messages      []exportedMessage `json:"messages"`
}

// ExportJSON genera la conversacion como JSON indentado, sin binarios.
func (s *ExportService) ExportJSON(conv *domain.Conversation) ([]byte, error) {
	out := exportedConversation{
		ChatID:        conv.ChatID,
		Language:      conv.Language,
		ExportedAt:    time.Now().UTC().Format(time.RFC3339),
		TotalMessages: len(conv.Messages),
		Messages:      make([]exportedMessage, 0, len(conv.Messages)),
	}
	for _, msg := range conv.Messages {
		entry := exportedMessage{
			Role:     msg.Role,
			Text:     msg.Text,
			HasImage: msg.HasImage(),
		}
		if !msg.CreatedAt.IsZero() {
			entry.Timestamp = msg.CreatedAt.Format(time.RFC3339)
		}
		out.Messages = append(out.Messages, entry)
	}
	return json.MarshalIndent(out, "", "  ")
}

// ExportPDF genera el transcript como PDF. Si el render falla por cualquier
// motivo, devuelve los bytes del transcript en texto plano: el export
// siempre entrega algo.
func (s *ExportService) ExportPDF(messages []domain.Message, chatID string) []byte {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	// Las fuentes base son cp1252; el traductor cubre texto acentuado.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 16)
	pdf.MultiCell(0, 10, exportTitle, "", "C", false)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(110, 110, 110)
	meta := fmt.Sprintf("Chat ID: %s\nExported on: %s\nTotal Messages: %d",
		chatID, time.Now().UTC().Format("2006-01-02 15:04:05"), len(messages))
	pdf.MultiCell(0, 5, meta, "", "L", false)
	pdf.Ln(6)

	for _, msg := range messages {
		if !msg.CreatedAt.IsZero() {
			pdf.SetFont("Helvetica", "", 8)
			pdf.SetTextColor(150, 150, 150)
			pdf.MultiCell(0, 4, "["+msg.CreatedAt.Format("15:04:05")+"]", "", "L", false)
		}

		if msg.Role == domain.RoleUser {
			pdf.SetFont("Helvetica", "B", 11)
			pdf.SetTextColor(20, 60, 160)
		} else {
			pdf.SetFont("Helvetica", "", 11)
			pdf.SetTextColor(0, 0, 0)
		}
		line := exportRole(msg.Role) + ":"
		if msg.Text != "" {
			line += " " + msg.Text
		}
		pdf.MultiCell(0, 6, tr(line), "", "L", false)

		if msg.HasImage() {
			pdf.SetFont("Helvetica", "I", 9)
			pdf.SetTextColor(110, 110, 110)
			pdf.MultiCell(0, 5, "[Image attached]", "", "L", false)
		}
		pdf.Ln(4)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		s.logger.Warn("pdf render failed, falling back to plain text", zap.Error(err))
		return []byte(s.ExportText(messages))
	}
	return buf.Bytes()
}

func exportRole(role string) string {
	if role == domain.RoleUser {
		return "User"
	}
	return "Assistant"
}
