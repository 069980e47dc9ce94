package service

import (
	"context"
	"strings"

	"github.com/pemistahl/lingua-go"
)

// Idiomas que el detector estadistico precarga. Cubren la tabla de
// perfiles culturales mas los vecinos frecuentes.
var linguaLanguages = []lingua.Language{
	lingua.English, lingua.Spanish, lingua.French, lingua.German,
	lingua.Chinese, lingua.Japanese, lingua.Arabic, lingua.Hindi,
	lingua.Portuguese, lingua.Russian, lingua.Italian, lingua.Korean,
	lingua.Dutch, lingua.Swedish, lingua.Polish, lingua.Turkish,
	lingua.Ukrainian,
}

// LinguaDetector clasifica en proceso con modelos n-gram de lingua.
// Es el detector de mayor confiabilidad del conjunto.
type LinguaDetector struct {
	detector lingua.LanguageDetector
}

func NewLinguaDetector() *LinguaDetector {
	detector := lingua.NewLanguageDetectorBuilder().
		FromLanguages(linguaLanguages...).
		Build()
	return &LinguaDetector{detector: detector}
}

func (d *LinguaDetector) Name() string { return "lingua" }

func (d *LinguaDetector) IsAvailable() bool {
	return d != nil && d.detector != nil
}

func (d *LinguaDetector) Detect(_ context.Context, text string) (string, float64, error) {
	values := d.detector.ComputeLanguageConfidenceValues(text)
	if len(values) == 0 {
		return "", 0, nil
	}
	best := values[0]
	code := strings.ToLower(best.Language().IsoCode639_1().String())
	return code, best.Value(), nil
}
