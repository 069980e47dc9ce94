package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"cultura-llm/internal/domain"
)

// ErrShareNotFound cubre tanto tokens inexistentes como expirados: para el
// caller son indistinguibles.
var ErrShareNotFound = errors.New("shared chat not found")

// ShareStore guarda conversaciones compartidas por token con TTL.
type ShareStore interface {
	Create(ctx context.Context, chatID string, messages []domain.Message, ttl time.Duration) (string, error)
	Get(ctx context.Context, token string) (domain.SharedChat, error)
	Delete(ctx context.Context, token string) (bool, error)
	Stats(ctx context.Context, token string) (domain.ShareStats, error)
}

type memoryShareStore struct {
	mu    sync.Mutex
	items map[string]*domain.SharedChat
}

// NewMemoryShareStore crea el store en memoria protegido por mutex; es el
// unico componente del servicio leido por requests concurrentes.
func NewMemoryShareStore() ShareStore {
	return &memoryShareStore{items: make(map[string]*domain.SharedChat)}
}

func (s *memoryShareStore) Create(_ context.Context, chatID string, messages []domain.Message, ttl time.Duration) (string, error) {
	token := uuid.NewString()
	now := time.Now().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[token] = &domain.SharedChat{
		ChatID:    chatID,
		Messages:  domain.RedactMessages(messages),
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
	return token, nil
}

func (s *memoryShareStore) Get(_ context.Context, token string) (domain.SharedChat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.items[token]
	if !ok {
		return domain.SharedChat{}, ErrShareNotFound
	}
	if time.Now().UTC().After(record.ExpiresAt) {
		delete(s.items, token)
		return domain.SharedChat{}, ErrShareNotFound
	}

	record.ViewCount++
	return *record, nil
}

func (s *memoryShareStore) Delete(_ context.Context, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[token]; !ok {
		return false, nil
	}
	delete(s.items, token)
	return true, nil
}

func (s *memoryShareStore) Stats(_ context.Context, token string) (domain.ShareStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.items[token]
	if !ok || time.Now().UTC().After(record.ExpiresAt) {
		return domain.ShareStats{}, ErrShareNotFound
	}
	return domain.ShareStats{
		ChatID:       record.ChatID,
		CreatedAt:    record.CreatedAt,
		ExpiresAt:    record.ExpiresAt,
		ViewCount:    record.ViewCount,
		MessageCount: len(record.Messages),
	}, nil
}

// CleanupExpired purga los registros vencidos y devuelve cuantos removio.
func (s *memoryShareStore) CleanupExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	removed := 0
	for token, record := range s.items {
		if now.After(record.ExpiresAt) {
			delete(s.items, token)
			removed++
		}
	}
	return removed
}

// redisShareClient es el subconjunto de comandos usado por el store Redis;
// permite mockear el cliente en tests.
type redisShareClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

type redisShareStore struct {
	client redisShareClient
	prefix string
}

// NewRedisShareStore usa Redis como backend compartible entre instancias;
// la expiracion la maneja el propio TTL de la clave.
func NewRedisShareStore(client *redis.Client) ShareStore {
	if client == nil {
		return nil
	}
	return &redisShareStore{client: client, prefix: "share:chat:"}
}

func (s *redisShareStore) Create(ctx context.Context, chatID string, messages []domain.Message, ttl time.Duration) (string, error) {
	token := uuid.NewString()
	now := time.Now().UTC()

	record := domain.SharedChat{
		ChatID:    chatID,
		Messages:  domain.RedactMessages(messages),
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
	payload, err := json.Marshal(record)
	if err != nil {
		return "", err
	}
	if err := s.client.Set(ctx, s.prefix+token, payload, ttl).Err(); err != nil {
		return "", err
	}
	return token, nil
}

func (s *redisShareStore) Get(ctx context.Context, token string) (domain.SharedChat, error) {
	if strings.TrimSpace(token) == "" {
		return domain.SharedChat{}, ErrShareNotFound
	}

	record, ttl, err := s.load(ctx, token)
	if err != nil {
		return domain.SharedChat{}, err
	}

	record.ViewCount++
	payload, err := json.Marshal(record)
	if err != nil {
		return domain.SharedChat{}, err
	}
	if err := s.client.Set(ctx, s.prefix+token, payload, ttl).Err(); err != nil {
		return domain.SharedChat{}, err
	}
	return record, nil
}

func (s *redisShareStore) Delete(ctx context.Context, token string) (bool, error) {
	if strings.TrimSpace(token) == "" {
		return false, nil
	}
	n, err := s.client.Del(ctx, s.prefix+token).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *redisShareStore) Stats(ctx context.Context, token string) (domain.ShareStats, error) {
	record, _, err := s.load(ctx, token)
	if err != nil {
		return domain.ShareStats{}, err
	}
	return domain.ShareStats{
		ChatID:       record.ChatID,
		CreatedAt:    record.CreatedAt,
		ExpiresAt:    record.ExpiresAt,
		ViewCount:    record.ViewCount,
		MessageCount: len(record.Messages),
	}, nil
}

func (s *redisShareStore) load(ctx context.Context, token string) (domain.SharedChat, time.Duration, error) {
	payload, err := s.client.Get(ctx, s.prefix+token).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.SharedChat{}, 0, ErrShareNotFound
	}
	if err != nil {
		return domain.SharedChat{}, 0, err
	}

	var record domain.SharedChat
	if err := json.Unmarshal(payload, &record); err != nil {
		return domain.SharedChat{}, 0, err
	}

	ttl := time.Until(record.ExpiresAt)
	if ttl <= 0 {
		_, _ = s.client.Del(ctx, s.prefix+token).Result()
		return domain.SharedChat{}, 0, ErrShareNotFound
	}
	return record, ttl, nil
}
