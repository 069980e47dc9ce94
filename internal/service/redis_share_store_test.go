package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"cultura-llm/internal/domain"
)

type mockRedisShareClient struct {
	data map[string][]byte

	lastSetKey string
	lastSetTTL time.Duration
	lastDel    []string
	setCalls   int

	getErr error
	setErr error
	delErr error
}

func newMockRedisShareClient() *mockRedisShareClient {
	return &mockRedisShareClient{data: make(map[string][]byte)}
}

func (m *mockRedisShareClient) Get(ctx context.Context, key string) *redis.StringCmd {
	cmd := redis.NewStringCmd(ctx)
	if m.getErr != nil {
		cmd.SetErr(m.getErr)
		return cmd
	}
	payload, ok := m.data[key]
	if !ok {
		cmd.SetErr(redis.Nil)
		return cmd
	}
	cmd.SetVal(string(payload))
	return cmd
}

func (m *mockRedisShareClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	m.setCalls++
	m.lastSetKey = key
	m.lastSetTTL = expiration
	cmd := redis.NewStatusCmd(ctx)
	if m.setErr != nil {
		cmd.SetErr(m.setErr)
		return cmd
	}
	m.data[key] = value.([]byte)
	cmd.SetVal("OK")
	return cmd
}

func (m *mockRedisShareClient) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	m.lastDel = keys
	cmd := redis.NewIntCmd(ctx)
	if m.delErr != nil {
		cmd.SetErr(m.delErr)
		return cmd
	}
	var n int64
	for _, key := range keys {
		if _, ok := m.data[key]; ok {
			delete(m.data, key)
			n++
		}
	}
	cmd.SetVal(n)
	return cmd
}

func newTestRedisShareStore(mock *mockRedisShareClient) *redisShareStore {
	return &redisShareStore{client: mock, prefix: "share:chat:"}
}

func TestRedisShareStore_CreateAndGet(t *testing.T) {
	mock := newMockRedisShareClient()
	store := newTestRedisShareStore(mock)
	ctx := context.Background()

	token, err := store.Create(ctx, "chat-1", sampleMessages(), time.Hour)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !strings.HasPrefix(mock.lastSetKey, "share:chat:") {
		t.Fatalf("unexpected key %q", mock.lastSetKey)
	}
	if mock.lastSetTTL != time.Hour {
		t.Fatalf("expected key TTL to carry the share TTL, got %v", mock.lastSetTTL)
	}

	record, err := store.Get(ctx, token)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if record.ChatID != "chat-1" || len(record.Messages) != 2 {
		t.Fatalf("unexpected record: %+v", record)
	}
	if !record.Messages[0].HadImage {
		t.Fatalf("expected had_image flag instead of binary payload")
	}
	if record.ViewCount != 1 {
		t.Fatalf("expected view count 1, got %d", record.ViewCount)
	}

	// El contador se persiste re-escribiendo la clave con el TTL restante.
	if mock.setCalls != 2 {
		t.Fatalf("expected re-set on read, got %d set calls", mock.setCalls)
	}
	if mock.lastSetTTL <= 0 || mock.lastSetTTL > time.Hour {
		t.Fatalf("expected remaining TTL on re-set, got %v", mock.lastSetTTL)
	}

	record, err = store.Get(ctx, token)
	if err != nil {
		t.Fatalf("second get: %v", err)
	}
	if record.ViewCount != 2 {
		t.Fatalf("view count should only increase, got %d", record.ViewCount)
	}
}

func TestRedisShareStore_ExpiredPayloadDeletedOnRead(t *testing.T) {
	mock := newMockRedisShareClient()
	store := newTestRedisShareStore(mock)
	ctx := context.Background()

	// Un payload vencido aun presente (p. ej. reloj adelantado) se purga
	// en la lectura en vez de entregarse.
	stale := domain.SharedChat{
		ChatID:    "chat-1",
		Messages:  domain.RedactMessages(sampleMessages()),
		CreatedAt: time.Now().UTC().Add(-2 * time.Hour),
		ExpiresAt: time.Now().UTC().Add(-time.Hour),
	}
	payload, err := json.Marshal(stale)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	mock.data["share:chat:stale"] = payload

	if _, err := store.Get(ctx, "stale"); !errors.Is(err, ErrShareNotFound) {
		t.Fatalf("expected ErrShareNotFound, got %v", err)
	}
	if len(mock.lastDel) != 1 || mock.lastDel[0] != "share:chat:stale" {
		t.Fatalf("expected stale key deleted, got %+v", mock.lastDel)
	}
}

func TestRedisShareStore_Delete(t *testing.T) {
	mock := newMockRedisShareClient()
	store := newTestRedisShareStore(mock)
	ctx := context.Background()

	token, _ := store.Create(ctx, "chat-1", sampleMessages(), time.Hour)

	deleted, err := store.Delete(ctx, token)
	if err != nil || !deleted {
		t.Fatalf("expected deletion, got (%v, %v)", deleted, err)
	}
	if len(mock.lastDel) != 1 || mock.lastDel[0] != "share:chat:"+token {
		t.Fatalf("unexpected del key: %+v", mock.lastDel)
	}
	deleted, err = store.Delete(ctx, token)
	if err != nil || deleted {
		t.Fatalf("second delete should be a no-op, got (%v, %v)", deleted, err)
	}

	deleted, err = store.Delete(ctx, "  ")
	if err != nil || deleted {
		t.Fatalf("blank token delete should be a no-op, got (%v, %v)", deleted, err)
	}
}

func TestRedisShareStore_Stats(t *testing.T) {
	mock := newMockRedisShareClient()
	store := newTestRedisShareStore(mock)
	ctx := context.Background()

	token, _ := store.Create(ctx, "chat-1", sampleMessages(), time.Hour)
	if _, err := store.Get(ctx, token); err != nil {
		t.Fatalf("get: %v", err)
	}

	stats, err := store.Stats(ctx, token)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.ViewCount != 1 || stats.MessageCount != 2 {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	// Stats no cuenta como lectura: el contador queda igual.
	record, err := store.Get(ctx, token)
	if err != nil {
		t.Fatalf("get after stats: %v", err)
	}
	if record.ViewCount != 2 {
		t.Fatalf("stats must not increment views, got %d", record.ViewCount)
	}
}

func TestRedisShareStore_ErrorPaths(t *testing.T) {
	mock := newMockRedisShareClient()
	mock.setErr = errors.New("set failed")
	store := newTestRedisShareStore(mock)
	ctx := context.Background()

	if _, err := store.Create(ctx, "chat-1", sampleMessages(), time.Hour); err == nil {
		t.Fatalf("expected create error")
	}

	if _, err := store.Get(ctx, ""); !errors.Is(err, ErrShareNotFound) {
		t.Fatalf("blank token get should be not-found, got %v", err)
	}
	if _, err := store.Get(ctx, "missing"); !errors.Is(err, ErrShareNotFound) {
		t.Fatalf("missing token get should be not-found, got %v", err)
	}

	mock.getErr = errors.New("get failed")
	if _, err := store.Get(ctx, "any"); err == nil || errors.Is(err, ErrShareNotFound) {
		t.Fatalf("backend errors must not masquerade as not-found, got %v", err)
	}
}
