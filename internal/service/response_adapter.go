package service

import (
	"strings"

	"cultura-llm/internal/domain"
)

// Frases de cobertura para reducir directness; la primera entrada es la
// que se antepone cuando falta cualquiera de ellas.
var hedgingPhrases = map[string][]string{
	"en": {"I believe", "It seems", "Perhaps", "It might be that"},
	"es": {"Creo que", "Parece que", "Quizás", "Tal vez"},
	"fr": {"Je crois que", "Il semble que", "Peut-être", "Il se peut que"},
	"de": {"Ich glaube", "Es scheint", "Vielleicht", "Möglicherweise"},
	"zh": {"我觉得", "似乎", "也许", "可能"},
	"ja": {"と思います", "ようです", "たぶん", "かもしれません"},
	"ar": {"أعتقد", "يبدو", "ربما", "من المحتمل"},
	"hi": {"मुझे लगता है", "शायद", "संभवतः"},
	"pt": {"Eu acho que", "Parece que", "Talvez", "Pode ser que"},
	"ru": {"Я думаю", "Кажется", "Возможно", "Может быть"},
}

// Cierres de cortesia para idiomas de alta formalidad. Solo los idiomas
// presentes aqui reciben el paso 1 del ajuste.
var politenessClosers = map[string]string{
	"ja": " よろしくお願いします。",
	"de": " Bitte schön.",
	"zh": "请问，",
	"fr": "Je vous prie de ",
}

// Sufijos suavizantes para culturas de directness muy baja. Cada idioma
// define ademas los marcadores cuya presencia hace el paso un no-op.
var softeningSuffixes = map[string]struct {
	suffix  string
	markers []string
}{
	"ja": {suffix: "かもしれませんね。", markers: []string{"かもしれません", "と思います", "ようです"}},
	"zh": {suffix: "大概", markers: []string{"可能", "也许", "大概"}},
}

// Marcadores de conocimiento compartido para culturas de alto contexto.
var contextMarkers = map[string][]string{
	"zh": {"众所周知", "如您所知", "正如我们都知道的"},
	"ja": {"ご存知の通り", "もちろん", "お察しの通り"},
	"ar": {"كما تعلم", "بالطبع", "من المعروف أن"},
	"hi": {"जैसा कि आप जानते हैं", "जाहिर है", "स्पष्ट रूप से"},
}

const contextMarkerMinLength = 50

// ResponseAdapter reescribe la salida del modelo segun el perfil cultural
// del idioma resuelto. Cada paso verifica contencion antes de insertar,
// asi que aplicar el ajuste dos veces no duplica marcadores.
type ResponseAdapter struct {
	cultures *CultureService
}

func NewResponseAdapter(cultures *CultureService) *ResponseAdapter {
	return &ResponseAdapter{cultures: cultures}
}

// Adjust aplica los cuatro pasos en orden fijo: formalidad, directness
// baja, directness muy baja y contexto alto. Idiomas sin recurso definido
// para un paso lo saltan.
func (a *ResponseAdapter) Adjust(response, language, userInput string) string {
	if a == nil || a.cultures == nil || response == "" {
		return response
	}

	profile := a.cultures.GetProfile(language)
	lang := normalizeLang(language)

	adjusted := response
	if profile.IsFormal() {
		adjusted = a.increaseFormality(adjusted, lang, profile)
	}
	if profile.Directness == domain.LevelLow {
		adjusted = a.reduceDirectness(adjusted, lang)
	}
	if profile.Directness == domain.LevelVeryLow {
		adjusted = a.addIndirectness(adjusted, lang)
	}
	if profile.IsHighContext() {
		adjusted = a.addContextMarkers(adjusted, lang)
	}

	return adjusted
}

func (a *ResponseAdapter) increaseFormality(text, lang string, profile domain.CulturalProfile) string {
	closer, ok := politenessClosers[lang]
	if !ok {
		return text
	}

	lower := strings.ToLower(text)
	if strings.Contains(lower, strings.ToLower(strings.TrimSpace(closer))) {
		return text
	}
	for _, marker := range profile.PolitenessMarkers {
		if strings.Contains(lower, strings.ToLower(marker)) {
			return text
		}
	}

	// fr y zh anteponen su marcador; ja y de lo agregan al final.
	switch lang {
	case "fr":
		return closer + strings.ToLower(text)
	case "zh":
		return closer + text
	default:
		return text + closer
	}
}

func (a *ResponseAdapter) reduceDirectness(text, lang string) string {
	phrases, ok := hedgingPhrases[lang]
	if !ok || len(phrases) == 0 {
		return text
	}

	lower := strings.ToLower(text)
	for _, phrase := range phrases {
		if strings.Contains(lower, strings.ToLower(phrase)) {
			return text
		}
	}
	return phrases[0] + " " + strings.ToLower(text)
}

func (a *ResponseAdapter) addIndirectness(text, lang string) string {
	softener, ok := softeningSuffixes[lang]
	if !ok {
		return text
	}

	for _, marker := range softener.markers {
		if strings.Contains(text, marker) {
			return text
		}
	}
	if lang == "zh" {
		return softener.suffix + text
	}
	return text + softener.suffix
}

func (a *ResponseAdapter) addContextMarkers(text, lang string) string {
	markers, ok := contextMarkers[lang]
	if !ok || len(markers) == 0 || len(text) <= contextMarkerMinLength {
		return text
	}

	for _, marker := range markers {
		if strings.Contains(text, marker) {
			return text
		}
	}
	return markers[0] + ", " + text
}

// CulturalInstruction deriva la instruccion de estilo que acompaña al
// prompt de generacion, siguiendo la misma logica que los pasos de ajuste.
func (a *ResponseAdapter) CulturalInstruction(language string) string {
	profile := a.cultures.GetProfile(language)

	var hints []string
	if profile.IsFormal() {
		hints = append(hints, "use a formal, respectful register")
	}
	switch profile.Directness {
	case domain.LevelLow:
		hints = append(hints, "soften statements and avoid blunt assertions")
	case domain.LevelVeryLow:
		hints = append(hints, "be indirect and diplomatic, never confrontational")
	}
	if profile.IsHighContext() {
		hints = append(hints, "assume shared context rather than over-explaining")
	}
	if len(hints) == 0 {
		return ""
	}
	return "When replying, " + strings.Join(hints, "; ") + ", as expected in " + profile.Region + "."
}
