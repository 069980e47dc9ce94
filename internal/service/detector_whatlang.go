package service

import (
	"context"

	"github.com/abadojack/whatlanggo"
)

// WhatlangDetector es el clasificador trigram liviano; menos confiable que
// lingua pero sin costo de inicializacion.
type WhatlangDetector struct{}

func NewWhatlangDetector() *WhatlangDetector {
	return &WhatlangDetector{}
}

func (d *WhatlangDetector) Name() string { return "whatlang" }

func (d *WhatlangDetector) IsAvailable() bool { return d != nil }

func (d *WhatlangDetector) Detect(_ context.Context, text string) (string, float64, error) {
	info := whatlanggo.Detect(text)
	code := info.Lang.Iso6391()
	if code == "" {
		return "", 0, nil
	}
	return code, info.Confidence, nil
}
