package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"cultura-llm/internal/config"
	"cultura-llm/internal/domain"
	"cultura-llm/internal/llm"
)

// ContentRejectedError es el unico corte duro del pipeline: el filtro de
// contenido rechazo la entrada y el turno no se procesa.
type ContentRejectedError struct {
	Reason string
}

func (e *ContentRejectedError) Error() string {
	return "content rejected: " + e.Reason
}

// ConversationArchive persiste turnos ya resueltos y recupera los mas
// cercanos a una consulta. Es opcional: un archivo nil desactiva la
// persistencia y el recuerdo sin tocar el pipeline.
type ConversationArchive interface {
	SaveTurn(ctx context.Context, msg domain.Message, embedding []float32) error
	Recall(ctx context.Context, chatID string, embedding []float32, k int) ([]domain.Message, error)
}

// ChatInput es la entrada de un turno. Texto e imagen pueden coexistir.
type ChatInput struct {
	Text  string
	Image []byte
}

// ChatResult agrupa la respuesta final con los metadatos del turno.
type ChatResult struct {
	Reply      domain.Message
	Warnings   []string
	Language   string
	Confidence float64
}

// Mensajes de disculpa por idioma, en registro formal e informal. El
// registro se elige segun la formalidad del perfil cultural resuelto.
var apologyMessages = map[string]struct {
	formal string
	casual string
}{
	"en": {
		formal: "I apologize, but I encountered an error processing your request. Please try again.",
		casual: "Sorry, something went wrong on my end. Please try again.",
	},
	"es": {
		formal: "Le pido disculpas, ha ocurrido un error al procesar su solicitud. Por favor, inténtelo de nuevo.",
		casual: "Perdón, algo salió mal. Inténtalo de nuevo.",
	},
	"fr": {
		formal: "Je vous prie de m'excuser, une erreur s'est produite lors du traitement de votre demande. Veuillez réessayer.",
		casual: "Désolé, quelque chose s'est mal passé. Réessaie.",
	},
	"de": {
		formal: "Ich bitte um Entschuldigung, bei der Verarbeitung Ihrer Anfrage ist ein Fehler aufgetreten. Bitte versuchen Sie es erneut.",
		casual: "Entschuldigung, da ist etwas schiefgelaufen. Versuch es noch einmal.",
	},
	"ja": {
		formal: "申し訳ございません。リクエストの処理中にエラーが発生しました。もう一度お試しください。",
		casual: "ごめんなさい、エラーが起きました。もう一度試してください。",
	},
	"zh": {
		formal: "非常抱歉，处理您的请求时发生了错误。请再试一次。",
		casual: "抱歉，出错了。请再试一次。",
	},
	"ar": {
		formal: "أعتذر، حدث خطأ أثناء معالجة طلبكم. يرجى المحاولة مرة أخرى.",
		casual: "عذراً، حدث خطأ. حاول مرة أخرى.",
	},
	"hi": {
		formal: "क्षमा करें, आपके अनुरोध को संसाधित करते समय एक त्रुटि हुई। कृपया पुनः प्रयास करें।",
		casual: "माफ़ करें, कुछ गड़बड़ हो गई। फिर से कोशिश करें।",
	},
	"pt": {
		formal: "Peço desculpas, ocorreu um erro ao processar sua solicitação. Por favor, tente novamente.",
		casual: "Desculpa, algo deu errado. Tenta de novo.",
	},
	"ru": {
		formal: "Приношу извинения, при обработке вашего запроса произошла ошибка. Пожалуйста, попробуйте ещё раз.",
		casual: "Извини, что-то пошло не так. Попробуй ещё раз.",
	},
}

const historyWindow = 10

// recallLimit acota cuantos turnos archivados se inyectan como contexto.
const recallLimit = 3

// ChatService orquesta un turno completo de conversacion: filtrado,
// deteccion de idioma, generacion, adaptacion cultural, traduccion y
// entrega. Cada llamada externa esta aislada: su falla degrada el turno
// pero nunca lo aborta, salvo el rechazo inicial del filtro.
type ChatService struct {
	client     llm.GenerativeClient
	filter     *ContentFilter
	cultures   *CultureService
	detector   *DetectionService
	adapter    *ResponseAdapter
	translator *TranslationService
	sentiment  *SentimentService
	archive    ConversationArchive
	cfg        *config.Config
	logger     *zap.Logger

	// now es inyectable para tests de saludo por franja horaria.
	now func() time.Time
}

func NewChatService(
	client llm.GenerativeClient,
	filter *ContentFilter,
	cultures *CultureService,
	detector *DetectionService,
	adapter *ResponseAdapter,
	translator *TranslationService,
	cfg *config.Config,
	logger *zap.Logger,
) *ChatService {
	return &ChatService{
		client:     client,
		filter:     filter,
		cultures:   cultures,
		detector:   detector,
		adapter:    adapter,
		translator: translator,
		cfg:        cfg,
		logger:     logger,
		now:        time.Now,
	}
}

// WithSentiment habilita la anotacion de sentimiento de las respuestas.
func (s *ChatService) WithSentiment(sentiment *SentimentService) *ChatService {
	s.sentiment = sentiment
	return s
}

// WithArchive habilita la persistencia de turnos resueltos.
func (s *ChatService) WithArchive(archive ConversationArchive) *ChatService {
	s.archive = archive
	return s
}

// Respond procesa un turno del usuario contra la conversacion dada. Los
// mensajes se agregan a la conversacion solo despues de resolverse por
// completo: un rechazo del filtro no deja rastro en el historial.
func (s *ChatService) Respond(ctx context.Context, conv *domain.Conversation, input ChatInput) (ChatResult, error) {
	if s == nil || conv == nil {
		return ChatResult{}, errors.New("chat service not initialized")
	}
	if strings.TrimSpace(input.Text) == "" && len(input.Image) == 0 {
		return ChatResult{}, errors.New("empty input")
	}

	// Received -> Filtered: unico corte duro del pipeline.
	if input.Text != "" {
		if safe, reason := s.filter.IsContentSafe(input.Text); !safe {
			return ChatResult{}, &ContentRejectedError{Reason: reason}
		}
	}

	// Filtered -> LanguageResolved.
	language, confidence := s.resolveLanguage(ctx, conv, input.Text)
	conv.Language = language

	var warnings []string
	if input.Text != "" {
		if clean, advisories := s.cultures.CheckSensitivity(input.Text, language); !clean {
			warnings = advisories
		}
	}

	firstTurn := conv.AssistantTurns() == 0

	userMsg := domain.Message{
		ID:           uuid.NewString(),
		Role:         domain.RoleUser,
		Text:         input.Text,
		Image:        input.Image,
		DetectedLang: language,
	}

	// LanguageResolved -> Generated.
	reply := s.generate(ctx, conv, input, language)

	// Generated -> Adapted: se omite para respuestas de imagen sin texto.
	if reply.Text != "" {
		reply.Text = s.filter.FilterResponse(reply.Text)
		reply.Text = s.adapter.Adjust(reply.Text, language, input.Text)
		reply.CulturallyAdapted = true
	}

	// Adapted -> Translated: la indisponibilidad conserva el texto adaptado.
	if language != "en" && reply.Text != "" {
		tctx, cancel := s.stepCtx(ctx, s.cfg.TranslateTimeoutSeconds)
		translated, err := s.translator.Translate(tctx, reply.Text, language, "en")
		cancel()
		switch {
		case err == nil:
			reply.Text = translated
		case errors.Is(err, ErrTranslationUnavailable):
			s.logger.Warn("translation unavailable, delivering adapted text", zap.String("language", language))
		default:
			s.logger.Warn("translation failed, delivering adapted text", zap.String("language", language), zap.Error(err))
		}
	}

	// Translated -> Delivered: saludo en el primer turno sin imagen.
	if firstTurn && len(input.Image) == 0 && reply.Text != "" && !s.cultures.IsKnownGreeting(reply.Text, language) {
		greeting := s.cultures.GetGreeting(language, "", s.timeOfDay())
		if greeting != "" {
			reply.Text = greeting + " " + reply.Text
		}
	}

	if reply.Text != "" {
		if warning := s.filter.ContentWarning(reply.Text); warning != "" {
			warnings = append(warnings, warning)
		}
	}

	if s.sentiment != nil && reply.Text != "" {
		reply.Sentiment = s.sentiment.Analyze(ctx, reply.Text, language).Sentiment
	}

	conv.Append(userMsg)
	conv.Append(reply)

	s.archiveTurn(ctx, conv, reply)

	return ChatResult{
		Reply:      conv.Messages[len(conv.Messages)-1],
		Warnings:   warnings,
		Language:   language,
		Confidence: confidence,
	}, nil
}

// resolveLanguage adopta el idioma detectado solo cuando supera el umbral
// configurado y difiere del idioma actual de la conversacion.
func (s *ChatService) resolveLanguage(ctx context.Context, conv *domain.Conversation, text string) (string, float64) {
	if strings.TrimSpace(text) == "" {
		return conv.Language, 0
	}

	dctx, cancel := s.stepCtx(ctx, s.cfg.DetectTimeoutSeconds)
	defer cancel()

	detected, confidence := s.detector.Detect(dctx, text)
	if confidence > s.cfg.DetectOverrideConfidence && detected != conv.Language {
		s.logger.Info("adopting detected language",
			zap.String("from", conv.Language),
			zap.String("to", detected),
			zap.Float64("confidence", confidence))
		return detected, confidence
	}
	return conv.Language, confidence
}

// generate despacha al backend segun el modo y convierte cualquier falla en
// un mensaje de disculpa en el registro del idioma resuelto.
func (s *ChatService) generate(ctx context.Context, conv *domain.Conversation, input ChatInput, language string) domain.Message {
	reply := domain.Message{
		ID:   uuid.NewString(),
		Role: domain.RoleAssistant,
	}

	gctx, cancel := s.stepCtx(ctx, s.cfg.GenerateTimeoutSeconds)
	defer cancel()

	lower := strings.ToLower(input.Text)
	wantsImage := conv.Mode == domain.ModeImageGeneration ||
		(conv.Mode == domain.ModeMixed && strings.Contains(lower, "generate") && strings.Contains(lower, "image"))
	wantsAnalysis := conv.Mode == domain.ModeImageAnalysis ||
		(conv.Mode == domain.ModeMixed && len(input.Image) > 0)

	switch {
	case wantsImage:
		if safe, reason := s.filter.ModerateImagePrompt(input.Text); !safe {
			s.logger.Info("image prompt blocked", zap.String("reason", reason))
			reply.Text = "I couldn't generate an image for that prompt. Please try a different description."
			return reply
		}
		image, err := s.client.GenerateImage(gctx, input.Text)
		if errors.Is(err, llm.ErrNoImage) {
			reply.Text = "I couldn't generate an image for that prompt. Please try a different description."
			return reply
		}
		if err != nil {
			s.logger.Warn("image generation failed", zap.Error(err))
			reply.Text = s.apology(language)
			return reply
		}
		reply.Image = image
		reply.Text = fmt.Sprintf("I've generated an image based on your prompt: '%s'", input.Text)

	case wantsAnalysis:
		if len(input.Image) == 0 {
			reply.Text = "Please upload an image for analysis."
			return reply
		}
		analysis, err := s.client.AnalyzeImage(gctx, input.Image, input.Text)
		if err != nil {
			s.logger.Warn("image analysis failed", zap.Error(err))
			reply.Text = s.apology(language)
			return reply
		}
		reply.Text = analysis

	default:
		prompt := input.Text
		if recalled := s.recallContext(gctx, conv, input.Text); recalled != "" {
			prompt = recalled + "\n\n" + prompt
		}
		if instruction := s.adapter.CulturalInstruction(language); instruction != "" {
			prompt = prompt + "\n\n" + instruction
		}
		text, err := s.client.GenerateText(gctx, prompt, textHistory(conv.Recent(historyWindow)))
		if err != nil {
			s.logger.Warn("text generation failed", zap.Error(err))
			reply.Text = s.apology(language)
			return reply
		}
		reply.Text = text
	}

	return reply
}

func (s *ChatService) apology(language string) string {
	entry, ok := apologyMessages[normalizeLang(language)]
	if !ok {
		entry = apologyMessages["en"]
	}
	if s.cultures.GetProfile(language).IsFormal() {
		return entry.formal
	}
	return entry.casual
}

// recallContext recupera del archivo los turnos semanticamente cercanos a
// la consulta y los formatea como contexto previo. Cualquier falla degrada
// a un prompt sin recuerdo.
func (s *ChatService) recallContext(ctx context.Context, conv *domain.Conversation, text string) string {
	if s.archive == nil || text == "" || !s.client.IsAvailable() {
		return ""
	}

	vec, err := s.client.EmbedText(ctx, text)
	if err != nil || len(vec) == 0 {
		if err != nil {
			s.logger.Warn("query embedding failed, skipping recall", zap.Error(err))
		}
		return ""
	}

	recalled, err := s.archive.Recall(ctx, conv.ChatID, vec, recallLimit)
	if err != nil {
		s.logger.Warn("archive recall failed", zap.String("chat_id", conv.ChatID), zap.Error(err))
		return ""
	}
	if len(recalled) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("Relevant earlier exchanges from this conversation:")
	for _, m := range recalled {
		b.WriteString("\n- ")
		b.WriteString(m.Text)
	}
	return b.String()
}

func (s *ChatService) archiveTurn(ctx context.Context, conv *domain.Conversation, reply domain.Message) {
	if s.archive == nil {
		return
	}

	var embedding []float32
	if reply.Text != "" && s.client.IsAvailable() {
		vec, err := s.client.EmbedText(ctx, reply.Text)
		if err != nil {
			s.logger.Warn("embedding failed, archiving without vector", zap.Error(err))
		} else {
			embedding = vec
		}
	}

	if err := s.archive.SaveTurn(ctx, reply, embedding); err != nil {
		s.logger.Warn("archive write failed", zap.String("chat_id", conv.ChatID), zap.Error(err))
	}
}

func (s *ChatService) stepCtx(ctx context.Context, seconds int) (context.Context, context.CancelFunc) {
	if seconds <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, time.Duration(seconds)*time.Second)
}

func (s *ChatService) timeOfDay() string {
	hour := s.now().Hour()
	switch {
	case hour < 12:
		return TimeOfDayMorning
	case hour < 18:
		return TimeOfDayAfternoon
	default:
		return TimeOfDayEvening
	}
}

// textHistory conserva solo los mensajes con texto como contexto del modelo.
func textHistory(messages []domain.Message) []domain.Message {
	history := make([]domain.Message, 0, len(messages))
	for _, m := range messages {
		if m.Text != "" {
			history = append(history, m)
		}
	}
	return history
}
