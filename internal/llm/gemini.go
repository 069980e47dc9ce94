package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"cultura-llm/internal/domain"
)

const textSystemPrompt = `You are a helpful, knowledgeable AI assistant. You can engage in natural conversations, answer questions, provide explanations, and help with various tasks.`

const defaultAnalysisPrompt = `Analyze this image in detail. Describe what you see, identify objects, people, text, or any other notable elements. Provide context and insights about the image.`

// GeminiClient implementa GenerativeClient sobre la API de Gemini.
type GeminiClient struct {
	client      *genai.Client
	textModel   string
	visionModel string
	imageModel  string
	embedModel  string
	logger      *zap.Logger
}

// NewGeminiClient construye el cliente; con api key vacia devuelve un cliente
// no disponible en lugar de fallar, para que el resto del servicio arranque.
func NewGeminiClient(ctx context.Context, apiKey, textModel, visionModel, imageModel, embedModel string, logger *zap.Logger) (*GeminiClient, error) {
	gc := &GeminiClient{
		textModel:   textModel,
		visionModel: visionModel,
		imageModel:  imageModel,
		embedModel:  embedModel,
		logger:      logger,
	}
	if strings.TrimSpace(apiKey) == "" {
		return gc, nil
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("genai client: %w", err)
	}
	gc.client = client
	return gc, nil
}

func (c *GeminiClient) IsAvailable() bool {
	return c != nil && c.client != nil
}

// GenerateText genera una respuesta conversacional usando los ultimos turnos
// como contexto textual.
func (c *GeminiClient) GenerateText(ctx context.Context, prompt string, history []domain.Message) (string, error) {
	if !c.IsAvailable() {
		return "", ErrClientUnavailable
	}

	model := c.client.GenerativeModel(c.textModel)
	model.SystemInstruction = genai.NewUserContent(genai.Text(textSystemPrompt))
	model.SafetySettings = defaultSafetySettings()

	var sb strings.Builder
	if len(history) > 0 {
		sb.WriteString("Previous conversation:\n")
		for _, msg := range history {
			if msg.Text == "" {
				continue
			}
			role := "User"
			if msg.Role == domain.RoleAssistant {
				role = "Assistant"
			}
			fmt.Fprintf(&sb, "%s: %s\n", role, msg.Text)
		}
		sb.WriteString("\n")
	}
	sb.WriteString("Current user message: ")
	sb.WriteString(prompt)

	resp, err := model.GenerateContent(ctx, genai.Text(sb.String()))
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return firstText(resp)
}

// AnalyzeImage analiza una imagen, opcionalmente guiado por la pregunta del usuario.
func (c *GeminiClient) AnalyzeImage(ctx context.Context, image []byte, prompt string) (string, error) {
	if !c.IsAvailable() {
		return "", ErrClientUnavailable
	}

	analysisPrompt := defaultAnalysisPrompt
	if strings.TrimSpace(prompt) != "" {
		analysisPrompt = "Analyze this image and answer: " + prompt
	}

	model := c.client.GenerativeModel(c.visionModel)
	model.SafetySettings = defaultSafetySettings()

	resp, err := model.GenerateContent(ctx,
		genai.ImageData("png", image),
		genai.Text(analysisPrompt),
	)
	if err != nil {
		return "", fmt.Errorf("analyze image: %w", err)
	}
	return firstText(resp)
}

// GenerateImage pide una imagen al modelo de generacion y extrae el primer
// blob inline de la respuesta.
func (c *GeminiClient) GenerateImage(ctx context.Context, prompt string) ([]byte, error) {
	if !c.IsAvailable() {
		return nil, ErrClientUnavailable
	}

	enhanced := fmt.Sprintf("Create a high-quality, detailed image: %s. Make it visually appealing, well-composed, and professionally rendered.", prompt)

	model := c.client.GenerativeModel(c.imageModel)
	resp, err := model.GenerateContent(ctx, genai.Text(enhanced))
	if err != nil {
		return nil, fmt.Errorf("generate image: %w", err)
	}

	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if blob, ok := part.(genai.Blob); ok && len(blob.Data) > 0 {
				return blob.Data, nil
			}
		}
	}
	return nil, ErrNoImage
}

// EmbedText devuelve el embedding del texto para busqueda semantica.
func (c *GeminiClient) EmbedText(ctx context.Context, text string) ([]float32, error) {
	if !c.IsAvailable() {
		return nil, ErrClientUnavailable
	}

	em := c.client.EmbeddingModel(c.embedModel)
	resp, err := em.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, fmt.Errorf("embed content: %w", err)
	}
	if resp.Embedding == nil || len(resp.Embedding.Values) == 0 {
		return nil, ErrEmptyResponse
	}
	return resp.Embedding.Values, nil
}

func firstText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrEmptyResponse
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok && string(text) != "" {
			return string(text), nil
		}
	}
	return "", ErrEmptyResponse
}

func defaultSafetySettings() []*genai.SafetySetting {
	return []*genai.SafetySetting{
		{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockMediumAndAbove},
		{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockMediumAndAbove},
		{Category: genai.HarmCategorySexuallyExplicit, Threshold: genai.HarmBlockMediumAndAbove},
		{Category: genai.HarmCategoryDangerousContent, Threshold: genai.HarmBlockMediumAndAbove},
	}
}
