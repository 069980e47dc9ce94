package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"cultura-llm/internal/config"
	"cultura-llm/internal/domain"
	"cultura-llm/internal/llm"
	"cultura-llm/internal/service"
)

func main() {
	ctx := context.Background()
	reader := bufio.NewReader(os.Stdin)

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := zap.NewExample()
	defer logger.Sync()

	client, err := llm.NewGeminiClient(ctx,
		cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiVisionModel, cfg.GeminiImageModel, cfg.GeminiEmbedModel,
		logger)
	if err != nil {
		log.Fatal(err)
	}
	if !client.IsAvailable() {
		fmt.Println("Aviso: GEMINI_API_KEY no configurada, las respuestas seran degradadas.")
	}

	cultures := service.NewCultureService()
	detector := service.NewDetectionService(
		service.NewLinguaDetector(),
		service.NewWhatlangDetector(),
		service.NewGeminiDetector(client),
	)
	translator := service.NewTranslationService(logger,
		service.NewGeminiTranslator(client),
		service.NewGoogleTranslator(cfg.TranslateAPIURL, cfg.TranslateAPIKey, nil),
	)
	chatSvc := service.NewChatService(
		client,
		service.NewContentFilter(),
		cultures,
		detector,
		service.NewResponseAdapter(cultures),
		translator,
		cfg,
		logger,
	)
	exports := service.NewExportService(logger)

	conv := domain.NewConversation()

	fmt.Println("---- Chat multicultural (escribe 'salir' para terminar) ----")
	fmt.Println("Comandos: /lang <codigo>  /mode <mixed|text_only|image_generation>  /tip  /clear  /export")

	for {
		fmt.Print("Tu > ")
		text, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		if strings.EqualFold(text, "salir") || strings.EqualFold(text, "exit") {
			fmt.Println("Saliendo del chat...")
			return
		}
		if strings.HasPrefix(text, "/") {
			runCommand(conv, cultures, exports, text)
			continue
		}

		result, err := chatSvc.Respond(ctx, conv, service.ChatInput{Text: text})
		if err != nil {
			var rejected *service.ContentRejectedError
			if errors.As(err, &rejected) {
				fmt.Printf("Mensaje bloqueado: %s\n", rejected.Reason)
				continue
			}
			fmt.Printf("error generando respuesta: %v\n", err)
			continue
		}

		for _, warning := range result.Warnings {
			fmt.Printf("Aviso: %s\n", warning)
		}
		fmt.Printf("Asistente [%s] > %s\n", result.Language, result.Reply.Text)
		if result.Reply.HasImage() {
			fmt.Printf("(imagen generada, %d bytes)\n", len(result.Reply.Image))
		}
	}
}

func runCommand(conv *domain.Conversation, cultures *service.CultureService, exports *service.ExportService, line string) {
	fields := strings.Fields(line)
	switch fields[0] {
	case "/lang":
		if len(fields) < 2 {
			fmt.Printf("Idioma actual: %s\n", conv.Language)
			return
		}
		conv.Language = fields[1]
		fmt.Printf("Idioma cambiado a %s\n", conv.Language)
	case "/mode":
		if len(fields) < 2 {
			fmt.Printf("Modo actual: %s\n", conv.Mode)
			return
		}
		conv.Mode = fields[1]
		fmt.Printf("Modo cambiado a %s\n", conv.Mode)
	case "/tip":
		fmt.Println(cultures.GetCulturalTip(conv.Language))
	case "/clear":
		conv.Clear()
		fmt.Println("Conversacion reiniciada.")
	case "/export":
		fmt.Println(exports.ExportText(conv.Messages))
	default:
		fmt.Println("Comando desconocido.")
	}
}
