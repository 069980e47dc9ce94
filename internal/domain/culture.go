package domain

// Niveles ordinales usados por los perfiles culturales.
const (
	LevelVeryLow  = "very_low"
	LevelLow      = "low"
	LevelModerate = "moderate"
	LevelHigh     = "high"
	LevelVeryHigh = "very_high"
)

// CulturalProfile describe las normas de comunicacion de una region.
// Los perfiles se cargan una vez al inicio y nunca se mutan.
type CulturalProfile struct {
	Language          string   `json:"language"`
	Region            string   `json:"region"`
	Formality         string   `json:"formality"`
	Directness        string   `json:"directness"`
	Hierarchy         string   `json:"hierarchy"`
	Context           string   `json:"context"`
	PersonalSpace     string   `json:"personal_space"`
	TimeOrientation   string   `json:"time_orientation"`
	Greetings         []string `json:"greetings"`
	Farewells         []string `json:"farewells"`
	PolitenessMarkers []string `json:"politeness_markers"`
	TabooTopics       []string `json:"taboo_topics"`
	CulturalValues    []string `json:"cultural_values"`
	BusinessHours     string   `json:"business_hours"`
	Holidays          []string `json:"holidays"`
}

// IsFormal indica si el perfil exige un registro formal.
func (p CulturalProfile) IsFormal() bool {
	return p.Formality == LevelHigh || p.Formality == LevelVeryHigh
}

// IsHighContext indica si la cultura depende de contexto compartido implicito.
func (p CulturalProfile) IsHighContext() bool {
	return p.Context == LevelHigh || p.Context == LevelVeryHigh
}

// DetectionResult es el resultado de una deteccion de idioma.
// Confidence siempre queda en [0, 1].
type DetectionResult struct {
	Language   string  `json:"language"`
	Confidence float64 `json:"confidence"`
}

// LanguageInfo resume metadatos descriptivos de un idioma.
type LanguageInfo struct {
	Name   string `json:"name"`
	Native string `json:"native"`
	Family string `json:"family"`
	Script string `json:"script"`
}

// LanguageFeatures describe rasgos estructurales de un idioma.
type LanguageFeatures struct {
	Script          string   `json:"script"`
	Direction       string   `json:"direction"`
	Family          string   `json:"family"`
	Complexity      string   `json:"complexity"`
	FormalityLevels []string `json:"formality_levels"`
	HasGender       bool     `json:"has_gender"`
	HasCases        bool     `json:"has_cases"`
	WordOrder       string   `json:"word_order"`
}
