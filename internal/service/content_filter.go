package service

import (
	"regexp"
	"strings"
)

// Categorias de contenido bloqueado. La primera regla que matchea gana y
// se reporta como razon del rechazo.
var blockedCategories = []struct {
	name    string
	pattern *regexp.Regexp
}{
	{"violence or harm", regexp.MustCompile(`(?i)\b(kill|murder|violence|harm|hurt|attack|weapon)\b`)},
	{"hate speech", regexp.MustCompile(`(?i)\b(hate|racist|discrimination)\b`)},
	{"adult content", regexp.MustCompile(`(?i)\b(explicit|adult|nsfw)\b`)},
	{"illegal activity", regexp.MustCompile(`(?i)\b(dangerous|illegal|drugs)\b`)},
}

// Peticiones danninas conocidas, comparadas como substring en minusculas.
var harmfulRequests = []string{
	"how to make weapons",
	"how do i make a weapon",
	"how to harm",
	"illegal activities",
	"generate explicit",
	"create inappropriate",
}

var imageRequestVerbs = []string{"generate", "create", "make"}

var explicitImageTerms = []string{"nude", "naked", "explicit", "sexual", "violence", "weapon"}

// Bloqueos adicionales para prompts de generacion de imagenes.
var imagePromptBlocks = []string{
	"nude", "naked", "explicit", "sexual", "nsfw",
	"violence", "blood", "gore", "weapon", "gun",
	"illegal", "drug", "harm", "dangerous",
	"hate", "discrimination", "offensive",
}

var responseReplacements = []struct {
	pattern *regexp.Regexp
}{
	{regexp.MustCompile(`(?i)\b(kill|murder)\b`)},
	{regexp.MustCompile(`(?i)\b(hate|discrimination)\b`)},
}

const redactedPlaceholder = "[inappropriate content removed]"

// ContentFilter aplica moderacion de contenido basada en patrones fijos.
// Opera sobre el texto crudo del usuario, antes de cualquier traduccion.
type ContentFilter struct{}

func NewContentFilter() *ContentFilter {
	return &ContentFilter{}
}

// IsContentSafe decide si el texto puede procesarse. Devuelve la razon del
// rechazo cuando no es seguro.
func (f *ContentFilter) IsContentSafe(text string) (bool, string) {
	if strings.TrimSpace(text) == "" {
		return true, "Empty content"
	}

	lower := strings.ToLower(strings.TrimSpace(text))

	for _, category := range blockedCategories {
		if category.pattern.MatchString(text) {
			return false, "Content contains inappropriate material: " + category.name
		}
	}

	for _, harmful := range harmfulRequests {
		if strings.Contains(lower, harmful) {
			return false, "Request involves harmful content"
		}
	}

	if containsAny(lower, imageRequestVerbs) && strings.Contains(lower, "image") {
		if containsAny(lower, explicitImageTerms) {
			return false, "Inappropriate image generation request"
		}
	}

	return true, "Content approved"
}

// ModerateImagePrompt aplica bloqueos especificos a prompts de imagenes.
func (f *ContentFilter) ModerateImagePrompt(prompt string) (bool, string) {
	if strings.TrimSpace(prompt) == "" {
		return true, "Empty prompt"
	}

	lower := strings.ToLower(strings.TrimSpace(prompt))
	for _, block := range imagePromptBlocks {
		if strings.Contains(lower, block) {
			return false, "Image prompt contains inappropriate content: " + block
		}
	}
	return true, "Image prompt approved"
}

// FilterResponse limpia la respuesta del modelo antes de entregarla.
func (f *ContentFilter) FilterResponse(text string) string {
	if text == "" {
		return text
	}
	filtered := text
	for _, repl := range responseReplacements {
		filtered = repl.pattern.ReplaceAllString(filtered, redactedPlaceholder)
	}
	return filtered
}

// ContentWarning genera una advertencia no bloqueante si aplica.
func (f *ContentFilter) ContentWarning(text string) string {
	if text == "" {
		return ""
	}

	lower := strings.ToLower(text)
	var warnings []string

	if containsAny(lower, []string{"violence", "harm", "dangerous"}) {
		warnings = append(warnings, "Content may contain references to violence or harm")
	}
	if containsAny(lower, []string{"medical", "health", "diagnosis"}) {
		warnings = append(warnings, "Content may contain medical information - consult professionals")
	}

	if len(warnings) == 0 {
		return ""
	}
	return "⚠️ " + strings.Join(warnings, "; ")
}

func containsAny(text string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}
