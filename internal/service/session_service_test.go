package service

import (
	"errors"
	"testing"
	"time"
)

func TestSessionService_IssueParseRoundTrip(t *testing.T) {
	svc := NewSessionService("secret", time.Hour)

	token, err := svc.Issue("chat-1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if token.ChatID != "chat-1" || token.Token == "" {
		t.Fatalf("unexpected token: %+v", token)
	}

	claims, err := svc.Parse(token.Token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.ChatID != "chat-1" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestSessionService_IssueGeneratesChatID(t *testing.T) {
	svc := NewSessionService("secret", time.Hour)

	token, err := svc.Issue("")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if token.ChatID == "" {
		t.Fatalf("expected generated chat id")
	}
}

func TestSessionService_RejectsForeignToken(t *testing.T) {
	issuer := NewSessionService("secret-a", time.Hour)
	verifier := NewSessionService("secret-b", time.Hour)

	token, err := issuer.Issue("chat-1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := verifier.Parse(token.Token); !errors.Is(err, ErrSessionInvalid) {
		t.Fatalf("expected ErrSessionInvalid, got %v", err)
	}
}

func TestSessionService_RejectsEmptySecret(t *testing.T) {
	svc := NewSessionService("", time.Hour)

	if _, err := svc.Issue("chat-1"); !errors.Is(err, ErrSessionInvalid) {
		t.Fatalf("expected ErrSessionInvalid, got %v", err)
	}
	if _, err := svc.Parse("whatever"); !errors.Is(err, ErrSessionInvalid) {
		t.Fatalf("expected ErrSessionInvalid, got %v", err)
	}
}
