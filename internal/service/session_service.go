package service

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrSessionInvalid = errors.New("session token invalid")
	ErrSessionExpired = errors.New("session token expired")
)

// SessionService emite y valida tokens JWT de sesion. Cada token queda
// ligado a un chat id: el middleware HTTP usa el claim para resolver la
// conversacion del request.
type SessionService struct {
	secret []byte
	ttl    time.Duration
	issuer string
}

// SessionToken es la respuesta de emision de sesion.
type SessionToken struct {
	Token     string `json:"token"`
	ChatID    string `json:"chat_id"`
	ExpiresIn int64  `json:"expires_in"`
}

// SessionClaims liga el token a una conversacion concreta.
type SessionClaims struct {
	ChatID string `json:"chat_id"`
	jwt.RegisteredClaims
}

func NewSessionService(secret string, ttl time.Duration) *SessionService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionService{
		secret: []byte(secret),
		ttl:    ttl,
		issuer: "cultura-llm",
	}
}

// Issue firma un token para el chat dado; con chatID vacio crea uno nuevo.
func (s *SessionService) Issue(chatID string) (SessionToken, error) {
	if len(s.secret) == 0 {
		return SessionToken{}, ErrSessionInvalid
	}
	if strings.TrimSpace(chatID) == "" {
		chatID = uuid.NewString()
	}

	now := time.Now().UTC()
	claims := SessionClaims{
		ChatID: chatID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.issuer,
			Subject:   chatID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return SessionToken{}, err
	}
	return SessionToken{
		Token:     signed,
		ChatID:    chatID,
		ExpiresIn: int64(s.ttl.Seconds()),
	}, nil
}

// Parse valida el token y devuelve sus claims.
func (s *SessionService) Parse(tokenString string) (SessionClaims, error) {
	if len(s.secret) == 0 || strings.TrimSpace(tokenString) == "" {
		return SessionClaims{}, ErrSessionInvalid
	}

	var claims SessionClaims
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	_, err := parser.ParseWithClaims(tokenString, &claims, func(_ *jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return SessionClaims{}, ErrSessionExpired
		}
		return SessionClaims{}, ErrSessionInvalid
	}
	if !s.isValidClaims(claims) {
		return SessionClaims{}, ErrSessionInvalid
	}
	return claims, nil
}

func (s *SessionService) isValidClaims(claims SessionClaims) bool {
	if strings.TrimSpace(claims.ChatID) == "" {
		return false
	}
	if claims.Subject != claims.ChatID {
		return false
	}
	return strings.TrimSpace(claims.Issuer) == s.issuer
}
