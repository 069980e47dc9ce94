package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
)

// ErrTranslationUnavailable indica que ningun traductor pudo atender el
// pedido; el caller debe conservar el texto original.
var ErrTranslationUnavailable = errors.New("translation unavailable")

// Translator es una estrategia de traduccion uniforme. Los traductores se
// prueban en orden y señalan exito o falla sin excepciones de control.
type Translator interface {
	Name() string
	IsAvailable() bool
	Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error)
}

// TranslationService orquesta los tiers de traduccion: primero el traductor
// de mayor calidad, despues el servicio basico, y si ambos fallan devuelve
// ErrTranslationUnavailable.
type TranslationService struct {
	tiers  []Translator
	logger *zap.Logger
}

// NewTranslationService recibe los traductores en orden de preferencia.
func NewTranslationService(logger *zap.Logger, tiers ...Translator) *TranslationService {
	return &TranslationService{tiers: tiers, logger: logger}
}

// Translate traduce el texto al idioma destino. Cuando origen y destino
// coinciden devuelve el texto sin tocar.
func (s *TranslationService) Translate(ctx context.Context, text, targetLang, sourceLang string) (string, error) {
	if text == "" || targetLang == "" {
		return "", ErrTranslationUnavailable
	}
	if normalizeLang(sourceLang) == normalizeLang(targetLang) {
		return text, nil
	}

	for _, tier := range s.tiers {
		if !tier.IsAvailable() {
			continue
		}
		translated, err := tier.Translate(ctx, text, sourceLang, targetLang)
		if err != nil || strings.TrimSpace(translated) == "" {
			if s.logger != nil {
				s.logger.Warn("translator tier failed",
					zap.String("tier", tier.Name()),
					zap.String("target", targetLang),
					zap.Error(err),
				)
			}
			continue
		}
		return translated, nil
	}

	return "", ErrTranslationUnavailable
}

// IsAvailable indica si existe al menos un tier operativo.
func (s *TranslationService) IsAvailable() bool {
	for _, tier := range s.tiers {
		if tier.IsAvailable() {
			return true
		}
	}
	return false
}
