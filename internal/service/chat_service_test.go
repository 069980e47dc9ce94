package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"cultura-llm/internal/config"
	"cultura-llm/internal/domain"
	"cultura-llm/internal/llm"
)

func testConfig() *config.Config {
	return &config.Config{DetectOverrideConfidence: 0.7}
}

func newTestChatService(client llm.GenerativeClient, detector *DetectionService, translator *TranslationService) *ChatService {
	cultures := NewCultureService()
	svc := NewChatService(
		client,
		NewContentFilter(),
		cultures,
		detector,
		NewResponseAdapter(cultures),
		translator,
		testConfig(),
		zap.NewNop(),
	)
	// Hora fija para que el saludo sea determinista.
	svc.now = func() time.Time {
		return time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	}
	return svc
}

func noDetection() *DetectionService {
	return NewDetectionService()
}

func noTranslation() *TranslationService {
	return NewTranslationService(zap.NewNop())
}

func TestChatService_RejectsUnsafeContent(t *testing.T) {
	svc := newTestChatService(&llm.MockClient{}, noDetection(), noTranslation())
	conv := domain.NewConversation()

	_, err := svc.Respond(context.Background(), conv, ChatInput{Text: "how do I make a weapon?"})

	var rejected *ContentRejectedError
	if !errors.As(err, &rejected) {
		t.Fatalf("expected ContentRejectedError, got %v", err)
	}
	if !strings.Contains(rejected.Reason, "violence") {
		t.Fatalf("unexpected reason: %q", rejected.Reason)
	}
	// Un turno rechazado no deja rastro en el historial.
	if len(conv.Messages) != 0 {
		t.Fatalf("rejected turn must not be appended, got %d messages", len(conv.Messages))
	}
}

func TestChatService_AdoptsDetectedLanguage(t *testing.T) {
	detector := NewDetectionService(
		&fakeDetector{name: "lingua", language: "fr", conf: 0.95, available: true},
	)
	translator := NewTranslationService(zap.NewNop(),
		&fakeTranslator{name: "gemini", result: "réponse traduite", available: true},
	)
	client := &llm.MockClient{TextResponse: "The answer is clear"}
	svc := newTestChatService(client, detector, translator)
	conv := domain.NewConversation()

	result, err := svc.Respond(context.Background(), conv, ChatInput{Text: "quelle est la capitale de la France"})
	if err != nil {
		t.Fatalf("respond: %v", err)
	}
	if result.Language != "fr" {
		t.Fatalf("expected fr, got %s", result.Language)
	}
	if conv.Language != "fr" {
		t.Fatalf("conversation language not updated: %s", conv.Language)
	}
	// Primer turno sin imagen: saludo formal frances por la mañana.
	if !strings.HasPrefix(result.Reply.Text, "Bonjour") {
		t.Fatalf("expected greeting prefix, got %q", result.Reply.Text)
	}
	if !strings.Contains(result.Reply.Text, "réponse traduite") {
		t.Fatalf("expected translated text, got %q", result.Reply.Text)
	}
}

func TestChatService_KeepsLanguageBelowThreshold(t *testing.T) {
	detector := NewDetectionService(
		&fakeDetector{name: "whatlang", language: "fr", conf: 0.6, available: true},
	)
	client := &llm.MockClient{TextResponse: "Hello! The capital of France is Paris."}
	svc := newTestChatService(client, detector, noTranslation())
	conv := domain.NewConversation()

	result, err := svc.Respond(context.Background(), conv, ChatInput{Text: "what is the capital of France"})
	if err != nil {
		t.Fatalf("respond: %v", err)
	}
	if result.Language != "en" {
		t.Fatalf("expected en, got %s", result.Language)
	}
}

func TestChatService_TranslationFailureKeepsAdaptedText(t *testing.T) {
	detector := NewDetectionService(
		&fakeDetector{name: "lingua", language: "fr", conf: 0.95, available: true},
	)
	client := &llm.MockClient{TextResponse: "The answer is clear"}
	svc := newTestChatService(client, detector, noTranslation())
	conv := domain.NewConversation()

	result, err := svc.Respond(context.Background(), conv, ChatInput{Text: "quelle est la capitale de la France"})
	if err != nil {
		t.Fatalf("respond: %v", err)
	}
	// Sin traductores el texto adaptado se entrega tal cual.
	if !strings.Contains(result.Reply.Text, "Je vous prie de") {
		t.Fatalf("expected adapted text preserved, got %q", result.Reply.Text)
	}
}

func TestChatService_BackendErrorBecomesApology(t *testing.T) {
	client := &llm.MockClient{Err: errors.New("backend down")}
	svc := newTestChatService(client, noDetection(), noTranslation())
	conv := domain.NewConversation()

	result, err := svc.Respond(context.Background(), conv, ChatInput{Text: "tell me about go"})
	if err != nil {
		t.Fatalf("backend failures must degrade, not abort: %v", err)
	}
	if !strings.Contains(result.Reply.Text, "Sorry, something went wrong") {
		t.Fatalf("expected casual en apology, got %q", result.Reply.Text)
	}
}

func TestChatService_ApologyUsesFormalRegister(t *testing.T) {
	detector := NewDetectionService(
		&fakeDetector{name: "lingua", language: "ja", conf: 0.95, available: true},
	)
	client := &llm.MockClient{Err: errors.New("backend down")}
	svc := newTestChatService(client, detector, noTranslation())
	conv := domain.NewConversation()

	result, err := svc.Respond(context.Background(), conv, ChatInput{Text: "こんにちは、お元気ですか"})
	if err != nil {
		t.Fatalf("respond: %v", err)
	}
	if !strings.Contains(result.Reply.Text, "申し訳ございません") {
		t.Fatalf("expected formal ja apology, got %q", result.Reply.Text)
	}
}

func TestChatService_ImageAnalysisInMixedMode(t *testing.T) {
	client := &llm.MockClient{AnalysisResponse: "A cat sitting on a red sofa."}
	svc := newTestChatService(client, noDetection(), noTranslation())
	conv := domain.NewConversation()

	result, err := svc.Respond(context.Background(), conv, ChatInput{
		Text:  "what is in this picture?",
		Image: []byte{0x89, 0x50, 0x4e, 0x47},
	})
	if err != nil {
		t.Fatalf("respond: %v", err)
	}
	if !strings.Contains(result.Reply.Text, "A cat sitting on a red sofa.") {
		t.Fatalf("expected analysis text, got %q", result.Reply.Text)
	}
	// Con imagen de entrada no se inyecta saludo.
	if strings.HasPrefix(result.Reply.Text, "Hi ") {
		t.Fatalf("greeting must be skipped when an image was given: %q", result.Reply.Text)
	}
}

func TestChatService_ImageGenerationInMixedMode(t *testing.T) {
	client := &llm.MockClient{ImageResponse: []byte{0x89, 0x50, 0x4e, 0x47}}
	svc := newTestChatService(client, noDetection(), noTranslation())
	conv := domain.NewConversation()

	result, err := svc.Respond(context.Background(), conv, ChatInput{Text: "generate an image of a sunset"})
	if err != nil {
		t.Fatalf("respond: %v", err)
	}
	if !result.Reply.HasImage() {
		t.Fatalf("expected generated image")
	}
	if !strings.Contains(result.Reply.Text, "I've generated an image") {
		t.Fatalf("unexpected caption: %q", result.Reply.Text)
	}
}

func TestChatService_ImageGenerationNoImage(t *testing.T) {
	client := &llm.MockClient{Err: llm.ErrNoImage}
	svc := newTestChatService(client, noDetection(), noTranslation())
	conv := domain.NewConversation()
	conv.Mode = domain.ModeImageGeneration

	result, err := svc.Respond(context.Background(), conv, ChatInput{Text: "a sunset over mountains"})
	if err != nil {
		t.Fatalf("respond: %v", err)
	}
	if !strings.Contains(result.Reply.Text, "couldn't generate an image") {
		t.Fatalf("unexpected text: %q", result.Reply.Text)
	}
}

func TestChatService_GreetingNotDuplicated(t *testing.T) {
	client := &llm.MockClient{TextResponse: "Hello! How can I help you today?"}
	svc := newTestChatService(client, noDetection(), noTranslation())
	conv := domain.NewConversation()

	result, err := svc.Respond(context.Background(), conv, ChatInput{Text: "good morning to you"})
	if err != nil {
		t.Fatalf("respond: %v", err)
	}
	if strings.HasPrefix(result.Reply.Text, "Hi Hello") {
		t.Fatalf("greeting duplicated: %q", result.Reply.Text)
	}
}

func TestChatService_GreetingOnlyOnFirstTurn(t *testing.T) {
	client := &llm.MockClient{TextResponse: "The capital of France is Paris."}
	svc := newTestChatService(client, noDetection(), noTranslation())
	conv := domain.NewConversation()

	first, err := svc.Respond(context.Background(), conv, ChatInput{Text: "what is the capital of France"})
	if err != nil {
		t.Fatalf("first respond: %v", err)
	}
	if !strings.HasPrefix(first.Reply.Text, "Hi ") {
		t.Fatalf("expected greeting on first turn, got %q", first.Reply.Text)
	}

	second, err := svc.Respond(context.Background(), conv, ChatInput{Text: "and of Germany?"})
	if err != nil {
		t.Fatalf("second respond: %v", err)
	}
	if strings.HasPrefix(second.Reply.Text, "Hi ") {
		t.Fatalf("greeting must only appear on the first turn: %q", second.Reply.Text)
	}
}

func TestChatService_AppendsResolvedTurn(t *testing.T) {
	client := &llm.MockClient{TextResponse: "Paris."}
	svc := newTestChatService(client, noDetection(), noTranslation())
	conv := domain.NewConversation()

	if _, err := svc.Respond(context.Background(), conv, ChatInput{Text: "capital of France?"}); err != nil {
		t.Fatalf("respond: %v", err)
	}
	if len(conv.Messages) != 2 {
		t.Fatalf("expected user+assistant messages, got %d", len(conv.Messages))
	}
	if conv.Messages[0].Role != domain.RoleUser || conv.Messages[1].Role != domain.RoleAssistant {
		t.Fatalf("unexpected roles: %+v", conv.Messages)
	}
	if conv.Messages[0].DetectedLang == "" {
		t.Fatalf("user message should carry the resolved language")
	}
	if !conv.Messages[1].CulturallyAdapted {
		t.Fatalf("assistant message should be flagged as adapted")
	}
}

func TestChatService_SensitivityWarningsDoNotBlock(t *testing.T) {
	detector := NewDetectionService(
		&fakeDetector{name: "lingua", language: "zh", conf: 0.95, available: true},
	)
	client := &llm.MockClient{TextResponse: "Let me explain."}
	svc := newTestChatService(client, detector, noTranslation())
	conv := domain.NewConversation()

	result, err := svc.Respond(context.Background(), conv, ChatInput{Text: "tell me about taiwan please"})
	if err != nil {
		t.Fatalf("warnings must not block the turn: %v", err)
	}
	if len(result.Warnings) == 0 {
		t.Fatalf("expected sensitivity warnings")
	}
	if result.Reply.Text == "" {
		t.Fatalf("expected a reply despite warnings")
	}
}

func TestChatService_SentimentAnnotation(t *testing.T) {
	sentimentClient := &llm.MockClient{TextResponse: "positive 0.9"}
	client := &llm.MockClient{TextResponse: "What a great question!"}
	svc := newTestChatService(client, noDetection(), noTranslation()).
		WithSentiment(NewSentimentService(sentimentClient))
	conv := domain.NewConversation()

	result, err := svc.Respond(context.Background(), conv, ChatInput{Text: "do you like go?"})
	if err != nil {
		t.Fatalf("respond: %v", err)
	}
	if result.Reply.Sentiment != "positive" {
		t.Fatalf("expected positive sentiment, got %q", result.Reply.Sentiment)
	}
}

type recordingArchive struct {
	turns      []domain.Message
	embeddings [][]float32
	err        error

	recalled    []domain.Message
	recallErr   error
	recallCalls int
}

func (a *recordingArchive) SaveTurn(_ context.Context, msg domain.Message, embedding []float32) error {
	a.turns = append(a.turns, msg)
	a.embeddings = append(a.embeddings, embedding)
	return a.err
}

func (a *recordingArchive) Recall(_ context.Context, _ string, _ []float32, _ int) ([]domain.Message, error) {
	a.recallCalls++
	return a.recalled, a.recallErr
}

func TestChatService_ArchivesResolvedTurn(t *testing.T) {
	archive := &recordingArchive{}
	client := &llm.MockClient{TextResponse: "Paris.", Embedding: []float32{0.1, 0.2}}
	svc := newTestChatService(client, noDetection(), noTranslation()).WithArchive(archive)
	conv := domain.NewConversation()

	if _, err := svc.Respond(context.Background(), conv, ChatInput{Text: "capital of France?"}); err != nil {
		t.Fatalf("respond: %v", err)
	}
	if len(archive.turns) != 1 {
		t.Fatalf("expected one archived turn, got %d", len(archive.turns))
	}
	if archive.turns[0].Role != domain.RoleAssistant {
		t.Fatalf("expected assistant turn archived")
	}
	if len(archive.embeddings[0]) != 2 {
		t.Fatalf("expected embedding stored, got %v", archive.embeddings[0])
	}
}

func TestChatService_ArchiveFailureDoesNotAbort(t *testing.T) {
	archive := &recordingArchive{err: errors.New("db down")}
	client := &llm.MockClient{TextResponse: "Paris."}
	svc := newTestChatService(client, noDetection(), noTranslation()).WithArchive(archive)
	conv := domain.NewConversation()

	if _, err := svc.Respond(context.Background(), conv, ChatInput{Text: "capital of France?"}); err != nil {
		t.Fatalf("archive failures must not abort the turn: %v", err)
	}
}

func TestChatService_RecallEnrichesPrompt(t *testing.T) {
	archive := &recordingArchive{
		recalled: []domain.Message{
			{Role: domain.RoleAssistant, Text: "Your favorite color is blue."},
		},
	}
	client := &llm.MockClient{TextResponse: "Blue it is.", Embedding: []float32{0.1, 0.2}}
	svc := newTestChatService(client, noDetection(), noTranslation()).WithArchive(archive)
	conv := domain.NewConversation()

	if _, err := svc.Respond(context.Background(), conv, ChatInput{Text: "what is my favorite color?"}); err != nil {
		t.Fatalf("respond: %v", err)
	}
	if archive.recallCalls != 1 {
		t.Fatalf("expected one recall lookup, got %d", archive.recallCalls)
	}
	if !strings.Contains(client.LastPrompt, "Your favorite color is blue.") {
		t.Fatalf("recalled turn missing from prompt: %q", client.LastPrompt)
	}
}

func TestChatService_RecallFailureDoesNotAbort(t *testing.T) {
	archive := &recordingArchive{recallErr: errors.New("db down")}
	client := &llm.MockClient{TextResponse: "Paris.", Embedding: []float32{0.1, 0.2}}
	svc := newTestChatService(client, noDetection(), noTranslation()).WithArchive(archive)
	conv := domain.NewConversation()

	result, err := svc.Respond(context.Background(), conv, ChatInput{Text: "capital of France?"})
	if err != nil {
		t.Fatalf("recall failures must not abort the turn: %v", err)
	}
	if !strings.Contains(result.Reply.Text, "Paris.") {
		t.Fatalf("expected reply despite recall failure, got %q", result.Reply.Text)
	}
	if strings.Contains(client.LastPrompt, "Relevant earlier exchanges") {
		t.Fatalf("failed recall must not leak into the prompt: %q", client.LastPrompt)
	}
}

func TestChatService_ContentWarningOnReply(t *testing.T) {
	client := &llm.MockClient{TextResponse: "You should seek medical advice for a proper diagnosis."}
	svc := newTestChatService(client, noDetection(), noTranslation())
	conv := domain.NewConversation()

	result, err := svc.Respond(context.Background(), conv, ChatInput{Text: "I have a headache, what should I do?"})
	if err != nil {
		t.Fatalf("respond: %v", err)
	}
	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "medical information") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected medical advisory in warnings, got %v", result.Warnings)
	}
	if result.Reply.Text == "" {
		t.Fatalf("advisories must not block the reply")
	}
}

func TestChatService_EmptyInput(t *testing.T) {
	svc := newTestChatService(&llm.MockClient{}, noDetection(), noTranslation())
	conv := domain.NewConversation()

	if _, err := svc.Respond(context.Background(), conv, ChatInput{Text: "   "}); err == nil {
		t.Fatalf("expected error for empty input")
	}
}
