package service

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// LanguageDetector es un clasificador independiente de idioma. Cada
// implementacion envuelve un motor externo distinto y puede no estar
// disponible.
type LanguageDetector interface {
	Name() string
	IsAvailable() bool
	Detect(ctx context.Context, text string) (language string, confidence float64, err error)
}

// Pesos de confiabilidad por tipo de detector; detectores desconocidos
// pesan 0.5.
var detectorWeights = map[string]float64{
	"lingua":   1.0,
	"whatlang": 0.8,
	"gemini":   0.9,
}

const defaultDetectorWeight = 0.5

const (
	shortTextRunes        = 3
	shortTextConfidence   = 0.5
	noDetectorConfidence  = 0.3
	detectCacheMaxEntries = 1000
	multilingualSentences = 5
	multilingualMinRunes  = 10
)

// DetectionService combina detectores independientes con un voto ponderado
// por confiabilidad. Es determinista: ante empate gana el primer detector
// en orden de prioridad.
type DetectionService struct {
	detectors []LanguageDetector

	mu    sync.Mutex
	cache map[string]detectOutcome
}

type detectOutcome struct {
	language   string
	confidence float64
}

type detectorReading struct {
	detector   string
	language   string
	confidence float64
}

// LanguageAlternative es una hipotesis alternativa de idioma.
type LanguageAlternative struct {
	Language   string  `json:"language"`
	Confidence float64 `json:"confidence"`
}

// NewDetectionService recibe los detectores en orden de prioridad.
func NewDetectionService(detectors ...LanguageDetector) *DetectionService {
	return &DetectionService{
		detectors: detectors,
		cache:     make(map[string]detectOutcome),
	}
}

// Detect devuelve (idioma, confianza). Texto de menos de 3 caracteres no se
// puede clasificar de forma confiable y devuelve ("en", 0.5); sin lecturas
// de ningun detector devuelve ("en", 0.3).
func (s *DetectionService) Detect(ctx context.Context, text string) (string, float64) {
	trimmed := strings.TrimSpace(text)
	if len([]rune(trimmed)) < shortTextRunes {
		return "en", shortTextConfidence
	}

	if lang, conf, ok := s.cached(trimmed); ok {
		return lang, conf
	}

	readings := s.collect(ctx, trimmed)
	if len(readings) == 0 {
		return "en", noDetectorConfidence
	}

	bestLang := "en"
	bestScore := 0.0
	for _, r := range readings {
		score := r.confidence * weightFor(r.detector)
		// Empates resueltos a favor del primer detector en prioridad.
		if score > bestScore {
			bestScore = score
			bestLang = r.language
		}
	}
	if bestScore > 1.0 {
		bestScore = 1.0
	}

	s.store(trimmed, bestLang, bestScore)
	return bestLang, bestScore
}

// DetectAlternatives devuelve hasta 5 hipotesis ordenadas por confianza,
// tomando por idioma el maximo entre detectores.
func (s *DetectionService) DetectAlternatives(ctx context.Context, text string) []LanguageAlternative {
	trimmed := strings.TrimSpace(text)
	if len([]rune(trimmed)) < shortTextRunes {
		return []LanguageAlternative{{Language: "en", Confidence: shortTextConfidence}}
	}

	scores := make(map[string]float64)
	order := make([]string, 0)
	for _, r := range s.collect(ctx, trimmed) {
		weighted := r.confidence * weightFor(r.detector)
		if weighted > 1.0 {
			weighted = 1.0
		}
		if current, ok := scores[r.language]; !ok || weighted > current {
			if !ok {
				order = append(order, r.language)
			}
			scores[r.language] = weighted
		}
	}

	if len(scores) == 0 {
		return []LanguageAlternative{{Language: "en", Confidence: noDetectorConfidence}}
	}

	alternatives := make([]LanguageAlternative, 0, len(scores))
	for _, lang := range order {
		alternatives = append(alternatives, LanguageAlternative{Language: lang, Confidence: scores[lang]})
	}
	sort.SliceStable(alternatives, func(i, j int) bool {
		return alternatives[i].Confidence > alternatives[j].Confidence
	})
	if len(alternatives) > 5 {
		alternatives = alternatives[:5]
	}
	return alternatives
}

// IsMultilingual revisa las primeras 5 oraciones largas del texto y
// devuelve true si al menos 2 idiomas distintos superan el umbral.
func (s *DetectionService) IsMultilingual(ctx context.Context, text string, threshold float64) bool {
	trimmed := strings.TrimSpace(text)
	if len([]rune(trimmed)) < 20 {
		return false
	}

	sentences := splitSentences(trimmed)
	if len(sentences) < 2 {
		return false
	}
	if len(sentences) > multilingualSentences {
		sentences = sentences[:multilingualSentences]
	}

	detected := make(map[string]struct{})
	for _, sentence := range sentences {
		lang, conf := s.Detect(ctx, sentence)
		if conf > threshold {
			detected[lang] = struct{}{}
		}
	}
	return len(detected) > 1
}

// CodeSwitching resume la mezcla de idiomas de un conjunto de oraciones,
// con la distribucion normalizada por confianza.
type CodeSwitching struct {
	HasCodeSwitching bool               `json:"has_code_switching"`
	Languages        []string           `json:"languages"`
	Confidence       float64            `json:"confidence"`
	Distribution     map[string]float64 `json:"language_distribution"`
}

func (s *DetectionService) DetectCodeSwitching(ctx context.Context, sentences []string) CodeSwitching {
	result := CodeSwitching{Distribution: map[string]float64{}}

	var readings []detectOutcome
	for _, sentence := range sentences {
		if len([]rune(strings.TrimSpace(sentence))) <= 5 {
			continue
		}
		lang, conf := s.Detect(ctx, sentence)
		readings = append(readings, detectOutcome{language: lang, confidence: conf})
	}
	if len(readings) == 0 {
		return result
	}

	total := 0.0
	perLang := make(map[string]float64)
	for _, r := range readings {
		total += r.confidence
		perLang[r.language] += r.confidence
		if !containsString(result.Languages, r.language) {
			result.Languages = append(result.Languages, r.language)
		}
	}

	result.HasCodeSwitching = len(result.Languages) > 1
	result.Confidence = total / float64(len(readings))
	if total > 0 {
		for lang, sum := range perLang {
			result.Distribution[lang] = sum / total * 100
		}
	}
	return result
}

// IsAvailable indica si al menos un detector puede clasificar.
func (s *DetectionService) IsAvailable() bool {
	for _, d := range s.detectors {
		if d.IsAvailable() {
			return true
		}
	}
	return false
}

func (s *DetectionService) collect(ctx context.Context, text string) []detectorReading {
	var readings []detectorReading
	for _, detector := range s.detectors {
		if !detector.IsAvailable() {
			continue
		}
		lang, conf, err := detector.Detect(ctx, text)
		if err != nil || lang == "" {
			continue
		}
		readings = append(readings, detectorReading{
			detector:   detector.Name(),
			language:   normalizeLang(lang),
			confidence: conf,
		})
	}
	return readings
}

func (s *DetectionService) cached(text string) (string, float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	outcome, ok := s.cache[text]
	if !ok {
		return "", 0, false
	}
	return outcome.language, outcome.confidence, true
}

func (s *DetectionService) store(text, lang string, conf float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.cache) >= detectCacheMaxEntries {
		// Reset simple; la tabla se repuebla con el trafico vivo.
		s.cache = make(map[string]detectOutcome)
	}
	s.cache[text] = detectOutcome{language: lang, confidence: conf}
}

func weightFor(detector string) float64 {
	if w, ok := detectorWeights[detector]; ok {
		return w
	}
	return defaultDetectorWeight
}

func splitSentences(text string) []string {
	raw := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?' || r == '。' || r == '！' || r == '？'
	})
	sentences := make([]string, 0, len(raw))
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if len([]rune(s)) > multilingualMinRunes {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
