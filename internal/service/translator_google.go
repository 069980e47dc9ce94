package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// GoogleTranslator es el tier basico: llama al endpoint REST v2 de Google
// Translate con un api key. Sin api key el tier queda fuera de servicio.
type GoogleTranslator struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewGoogleTranslator(baseURL, apiKey string, httpClient *http.Client) *GoogleTranslator {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &GoogleTranslator{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  httpClient,
	}
}

func (t *GoogleTranslator) Name() string { return "google" }

func (t *GoogleTranslator) IsAvailable() bool {
	return t != nil && strings.TrimSpace(t.apiKey) != ""
}

func (t *GoogleTranslator) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	reqBody := translateRequest{
		Q:      text,
		Source: normalizeLang(sourceLang),
		Target: normalizeLang(targetLang),
		Format: "text",
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+"?key="+t.apiKey, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("translate http error: status=%d", resp.StatusCode)
	}

	var tr translateResponse
	if err := json.Unmarshal(respBody, &tr); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	if len(tr.Data.Translations) == 0 {
		return "", fmt.Errorf("translate empty response")
	}
	return tr.Data.Translations[0].TranslatedText, nil
}

type translateRequest struct {
	Q      string `json:"q"`
	Source string `json:"source,omitempty"`
	Target string `json:"target"`
	Format string `json:"format,omitempty"`
}

type translateResponse struct {
	Data struct {
		Translations []struct {
			TranslatedText string `json:"translatedText"`
		} `json:"translations"`
	} `json:"data"`
}
