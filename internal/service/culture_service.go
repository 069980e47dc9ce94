package service

import (
	"fmt"
	"strings"

	"cultura-llm/internal/domain"
)

// Momentos del dia reconocidos al elegir saludo.
const (
	TimeOfDayMorning   = "morning"
	TimeOfDayAfternoon = "afternoon"
	TimeOfDayEvening   = "evening"
	TimeOfDayGeneral   = "general"
)

// CultureService resuelve perfiles culturales, saludos y chequeos de
// sensibilidad. Las tablas de origen son estaticas, asi que las consultas
// son funciones puras sobre mapas precargados.
type CultureService struct{}

func NewCultureService() *CultureService {
	return &CultureService{}
}

// GetProfile devuelve el perfil del idioma; codigos desconocidos caen
// siempre al perfil "en". Nunca devuelve un perfil vacio.
func (s *CultureService) GetProfile(language string) domain.CulturalProfile {
	if profile, ok := culturalProfiles[normalizeLang(language)]; ok {
		return profile
	}
	return culturalProfiles["en"]
}

// GetGreeting elige un saludo culturalmente apropiado. Usa la lista formal
// cuando el perfil es formal o el caller lo pide explicitamente, e indexa
// por momento del dia cuando la lista alcanza.
func (s *CultureService) GetGreeting(language, formality, timeOfDay string) string {
	profile := s.GetProfile(language)
	lang := normalizeLang(language)

	var greetings []string
	if profile.IsFormal() || formality == "formal" {
		greetings = formalGreetings[lang]
		if len(greetings) == 0 {
			greetings = []string{"Hello"}
		}
	} else {
		greetings = informalGreetings[lang]
		if len(greetings) == 0 {
			greetings = []string{"Hi"}
		}
	}

	switch timeOfDay {
	case TimeOfDayMorning:
		return greetings[0]
	case TimeOfDayAfternoon:
		if len(greetings) > 1 {
			return greetings[1]
		}
	case TimeOfDayEvening:
		if len(greetings) > 2 {
			return greetings[2]
		}
	}
	return greetings[0]
}

// GetCulturalTip devuelve un consejo estatico por idioma.
func (s *CultureService) GetCulturalTip(language string) string {
	if tip, ok := culturalTips[normalizeLang(language)]; ok {
		return tip
	}
	return genericCulturalTip
}

// CheckSensitivity busca temas tabu del perfil y terminos sensibles fijos
// por contexto cultural. Solo advierte; nunca rechaza.
func (s *CultureService) CheckSensitivity(text, language string) (bool, []string) {
	profile := s.GetProfile(language)
	lower := strings.ToLower(text)

	var warnings []string
	for _, topic := range profile.TabooTopics {
		if strings.Contains(lower, strings.ToLower(topic)) {
			warnings = append(warnings, fmt.Sprintf("Potentially sensitive topic: %s", topic))
		}
	}

	lang := normalizeLang(language)
	for _, term := range sensitiveTerms[lang] {
		if strings.Contains(lower, term) {
			warnings = append(warnings, fmt.Sprintf("Culturally sensitive term for %s context: %s", languageInfoName(lang), term))
		}
	}

	return len(warnings) == 0, warnings
}

// IsKnownGreeting indica si el texto comienza con un saludo conocido
// del idioma (formal o informal, o los saludos del perfil).
func (s *CultureService) IsKnownGreeting(text, language string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return false
	}
	lang := normalizeLang(language)
	for _, list := range [][]string{formalGreetings[lang], informalGreetings[lang], s.GetProfile(lang).Greetings} {
		for _, greeting := range list {
			if strings.HasPrefix(trimmed, greeting) {
				return true
			}
		}
	}
	return false
}

// LanguageInfo devuelve metadatos del idioma con fallback generico.
func (s *CultureService) LanguageInfo(language string) domain.LanguageInfo {
	lang := normalizeLang(language)
	if info, ok := languageInfoTable[lang]; ok {
		return info
	}
	upper := strings.ToUpper(lang)
	return domain.LanguageInfo{Name: upper, Native: upper, Family: "Unknown", Script: "Unknown"}
}

// LanguageFeatures devuelve rasgos estructurales con defaults razonables.
func (s *CultureService) LanguageFeatures(language string) domain.LanguageFeatures {
	if features, ok := languageFeatureTable[normalizeLang(language)]; ok {
		return features
	}
	return defaultLanguageFeatures
}

// SupportedLanguages lista los idiomas con perfil cultural propio.
func (s *CultureService) SupportedLanguages() []string {
	langs := make([]string, 0, len(culturalProfiles))
	for lang := range culturalProfiles {
		langs = append(langs, lang)
	}
	return langs
}

func languageInfoName(lang string) string {
	if info, ok := languageInfoTable[lang]; ok {
		return info.Name
	}
	return strings.ToUpper(lang)
}

// normalizeLang reduce un codigo BCP 47 a su idioma base en minusculas.
func normalizeLang(language string) string {
	lang := strings.ToLower(strings.TrimSpace(language))
	if idx := strings.IndexAny(lang, "-_"); idx >= 0 {
		lang = lang[:idx]
	}
	return lang
}
