package service

import (
	"strings"
	"testing"
)

func TestResponseAdapter_NoChangesForEnglish(t *testing.T) {
	adapter := NewResponseAdapter(NewCultureService())

	text := "The capital of France is Paris."
	if got := adapter.Adjust(text, "en", ""); got != text {
		t.Fatalf("expected unchanged text, got %q", got)
	}
}

func TestResponseAdapter_GermanFormalityCloser(t *testing.T) {
	adapter := NewResponseAdapter(NewCultureService())

	got := adapter.Adjust("Das ist die Antwort", "de", "")
	if !strings.HasSuffix(got, "Bitte schön.") {
		t.Fatalf("expected politeness closer, got %q", got)
	}

	// Texto que ya contiene un marcador de cortesia queda intacto.
	polite := "Danke für die Frage, das ist die Antwort."
	if got := adapter.Adjust(polite, "de", ""); got != polite {
		t.Fatalf("expected no-op for polite text, got %q", got)
	}
}

func TestResponseAdapter_JapaneseSteps(t *testing.T) {
	adapter := NewResponseAdapter(NewCultureService())

	got := adapter.Adjust("わかりました", "ja", "")
	if !strings.Contains(got, "よろしくお願いします") {
		t.Fatalf("expected formality closer, got %q", got)
	}
	if !strings.Contains(got, "かもしれませんね") {
		t.Fatalf("expected softening suffix, got %q", got)
	}
}

func TestResponseAdapter_ChineseHedgeAndMarker(t *testing.T) {
	adapter := NewResponseAdapter(NewCultureService())

	got := adapter.Adjust("That is the answer to your question about history", "zh", "")
	if !strings.Contains(got, "请问") {
		t.Fatalf("expected politeness prefix, got %q", got)
	}
	if !strings.Contains(got, "我觉得") {
		t.Fatalf("expected hedging phrase, got %q", got)
	}
	if !strings.Contains(got, "众所周知") {
		t.Fatalf("expected context marker for long text, got %q", got)
	}
}

func TestResponseAdapter_ContextMarkerSkipsShortText(t *testing.T) {
	adapter := NewResponseAdapter(NewCultureService())

	// ar es de contexto muy alto pero el texto corto no recibe marcador.
	got := adapter.Adjust("نعم", "ar", "")
	if strings.Contains(got, "كما تعلم") {
		t.Fatalf("short text should not get a context marker: %q", got)
	}
}

func TestResponseAdapter_Idempotence(t *testing.T) {
	adapter := NewResponseAdapter(NewCultureService())

	inputs := []struct {
		text string
		lang string
	}{
		{"わかりました", "ja"},
		{"Das ist die Antwort", "de"},
		{"That is the answer to your question about history", "zh"},
		{"Voici la réponse à votre question", "fr"},
		{"यह आपके प्रश्न का उत्तर है और यह बहुत विस्तृत है", "hi"},
	}
	for _, tc := range inputs {
		once := adapter.Adjust(tc.text, tc.lang, "")
		twice := adapter.Adjust(once, tc.lang, "")
		if once != twice {
			t.Fatalf("adjust not idempotent for %s:\n once: %q\ntwice: %q", tc.lang, once, twice)
		}
	}
}

func TestResponseAdapter_CulturalInstruction(t *testing.T) {
	adapter := NewResponseAdapter(NewCultureService())

	ja := adapter.CulturalInstruction("ja")
	if !strings.Contains(ja, "formal") || !strings.Contains(ja, "indirect") {
		t.Fatalf("unexpected ja instruction: %q", ja)
	}
	if got := adapter.CulturalInstruction("en"); got != "" {
		t.Fatalf("expected empty instruction for en, got %q", got)
	}
}
