// Package history persists chat turns locally in SQLite so past
// conversations remain browsable offline. Each record mirrors one completed
// turn: the user's prompt and the reconciled assistant answer with its
// sources.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/jutt313/aiveilix-go/pkg/api"
)

// ErrNotFound is returned when a requested conversation has no local turns.
var ErrNotFound = errors.New("conversation not found in local history")

// Turn is one stored chat exchange.
type Turn struct {
	ID             string
	BucketID       string
	ConversationID string
	Prompt         string
	Answer         string
	Thinking       string
	Sources        []api.Source
	CreatedAt      time.Time
}

// Store is a SQLite-backed chat history.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the history database at dbPath.
// The dbPath can be a file path or ":memory:" for an in-memory database.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	s := &Store{db: db}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating history database: %w", err)
	}

	return s, nil
}

// migrate creates the necessary tables if they don't exist.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS turns (
		id TEXT PRIMARY KEY,
		bucket_id TEXT NOT NULL,
		conversation_id TEXT NOT NULL,
		prompt TEXT NOT NULL,
		answer TEXT NOT NULL,
		thinking TEXT NOT NULL DEFAULT '',
		sources TEXT NOT NULL DEFAULT '[]',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_turns_conversation ON turns(conversation_id);
	CREATE INDEX IF NOT EXISTS idx_turns_bucket ON turns(bucket_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Record stores one completed chat turn.
func (s *Store) Record(ctx context.Context, bucketID, prompt string, result *api.ChatResult) (*Turn, error) {
	if result == nil {
		return nil, errors.New("cannot record nil result")
	}

	sourcesJSON, err := json.Marshal(result.Sources)
	if err != nil {
		return nil, fmt.Errorf("encoding sources: %w", err)
	}

	turn := &Turn{
		ID:             uuid.NewString(),
		BucketID:       bucketID,
		ConversationID: result.ConversationID,
		Prompt:         prompt,
		Answer:         result.Message,
		Thinking:       result.Thinking,
		Sources:        result.Sources,
		CreatedAt:      time.Now().UTC(),
	}

	query := `INSERT INTO turns (id, bucket_id, conversation_id, prompt, answer, thinking, sources, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = s.db.ExecContext(ctx, query,
		turn.ID, turn.BucketID, turn.ConversationID,
		turn.Prompt, turn.Answer, turn.Thinking,
		string(sourcesJSON), turn.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting turn: %w", err)
	}

	return turn, nil
}

// Conversation returns a conversation's turns in chronological order.
func (s *Store) Conversation(ctx context.Context, conversationID string) ([]Turn, error) {
	query := `SELECT id, bucket_id, conversation_id, prompt, answer, thinking, sources, created_at
		FROM turns WHERE conversation_id = ? ORDER BY created_at ASC`

	rows, err := s.db.QueryContext(ctx, query, conversationID)
	if err != nil {
		return nil, fmt.Errorf("querying turns: %w", err)
	}
	defer rows.Close()

	turns, err := scanTurns(rows)
	if err != nil {
		return nil, err
	}
	if len(turns) == 0 {
		return nil, ErrNotFound
	}
	return turns, nil
}

// Recent returns the newest turns for a bucket, most recent first.
// A limit of 0 defaults to 20.
func (s *Store) Recent(ctx context.Context, bucketID string, limit int) ([]Turn, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT id, bucket_id, conversation_id, prompt, answer, thinking, sources, created_at
		FROM turns WHERE bucket_id = ? ORDER BY created_at DESC LIMIT ?`

	rows, err := s.db.QueryContext(ctx, query, bucketID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying turns: %w", err)
	}
	defer rows.Close()

	return scanTurns(rows)
}

// DeleteConversation removes a conversation's turns from local history.
func (s *Store) DeleteConversation(ctx context.Context, conversationID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM turns WHERE conversation_id = ?`, conversationID)
	if err != nil {
		return fmt.Errorf("deleting turns: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func scanTurns(rows *sql.Rows) ([]Turn, error) {
	var turns []Turn
	for rows.Next() {
		var (
			t           Turn
			sourcesJSON string
		)
		if err := rows.Scan(&t.ID, &t.BucketID, &t.ConversationID, &t.Prompt, &t.Answer, &t.Thinking, &sourcesJSON, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning turn: %w", err)
		}
		if err := json.Unmarshal([]byte(sourcesJSON), &t.Sources); err != nil {
			return nil, fmt.Errorf("decoding sources: %w", err)
		}
		turns = append(turns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating turns: %w", err)
	}
	return turns, nil
}
