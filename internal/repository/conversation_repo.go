package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"

	"cultura-llm/internal/domain"
)

// ArchivedTurn es un turno persistido, sin binarios. El embedding permite
// recuperar turnos semanticamente cercanos a una consulta.
type ArchivedTurn struct {
	ID           string
	ChatID       string
	Role         string
	Text         string
	DetectedLang string
	Sentiment    string
	HadImage     bool
	Embedding    pgvector.Vector
}

type ConversationRepository interface {
	SaveTurn(ctx context.Context, msg domain.Message, embedding []float32) error
	ListByChatID(ctx context.Context, chatID string) ([]ArchivedTurn, error)
	SearchSimilar(ctx context.Context, chatID string, queryEmbedding []float32, k int) ([]ArchivedTurn, error)
}

type PgConversationRepository struct {
	pool *pgxpool.Pool
}

func NewPgConversationRepository(pool *pgxpool.Pool) *PgConversationRepository {
	return &PgConversationRepository{pool: pool}
}

func (r *PgConversationRepository) SaveTurn(ctx context.Context, msg domain.Message, embedding []float32) error {
	const query = `
		INSERT INTO archived_turns (id, chat_id, role, text, detected_lang, sentiment, had_image, embedding, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	var vec interface{}
	if len(embedding) > 0 {
		vec = pgvector.NewVector(embedding)
	}

	_, err := r.pool.Exec(ctx, query,
		msg.ID,
		msg.ChatID,
		msg.Role,
		msg.Text,
		msg.DetectedLang,
		msg.Sentiment,
		msg.HasImage(),
		vec,
		msg.CreatedAt,
	)
	return err
}

func (r *PgConversationRepository) ListByChatID(ctx context.Context, chatID string) ([]ArchivedTurn, error) {
	const query = `
		SELECT id, chat_id, role, text, detected_lang, sentiment, had_image
		FROM archived_turns
		WHERE chat_id = $1
		ORDER BY created_at ASC
	`
	rows, err := r.pool.Query(ctx, query, chatID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTurns(rows)
}

// SearchSimilar devuelve los k turnos del chat mas cercanos al embedding
// de consulta por distancia coseno.
func (r *PgConversationRepository) SearchSimilar(ctx context.Context, chatID string, queryEmbedding []float32, k int) ([]ArchivedTurn, error) {
	if k <= 0 {
		k = 5
	}
	const query = `
		SELECT id, chat_id, role, text, detected_lang, sentiment, had_image
		FROM archived_turns
		WHERE chat_id = $1 AND embedding IS NOT NULL
		ORDER BY embedding <=> $2
		LIMIT $3
	`
	rows, err := r.pool.Query(ctx, query, chatID, pgvector.NewVector(queryEmbedding), k)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTurns(rows)
}

// Recall materializa los turnos mas cercanos al embedding como mensajes,
// listos para inyectarse en el contexto de generacion.
func (r *PgConversationRepository) Recall(ctx context.Context, chatID string, queryEmbedding []float32, k int) ([]domain.Message, error) {
	turns, err := r.SearchSimilar(ctx, chatID, queryEmbedding, k)
	if err != nil {
		return nil, err
	}
	return turnsToMessages(turns), nil
}

func turnsToMessages(turns []ArchivedTurn) []domain.Message {
	messages := make([]domain.Message, 0, len(turns))
	for _, t := range turns {
		messages = append(messages, domain.Message{
			ID:           t.ID,
			ChatID:       t.ChatID,
			Role:         t.Role,
			Text:         t.Text,
			DetectedLang: t.DetectedLang,
			Sentiment:    t.Sentiment,
		})
	}
	return messages
}

func scanTurns(rows pgxRows) ([]ArchivedTurn, error) {
	var turns []ArchivedTurn
	for rows.Next() {
		var t ArchivedTurn
		if err := rows.Scan(
			&t.ID,
			&t.ChatID,
			&t.Role,
			&t.Text,
			&t.DetectedLang,
			&t.Sentiment,
			&t.HadImage,
		); err != nil {
			return nil, err
		}
		turns = append(turns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return turns, nil
}

// pgxRows is a minimal interface to allow scanning from pgx rows and simplify testing.
type pgxRows interface {
	Next() bool
	Scan(...interface{}) error
	Err() error
	Close()
}
