// Package storage is the client's durable local state: goals, challenges,
// chat history, food entries, and which food-log suggestions have already
// been applied. One SQLite file, no server involved.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"flf-coach/internal/models"
)

type Store struct {
	db *sql.DB
}

func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initSchema() error {
	schema := `
    CREATE TABLE IF NOT EXISTS goals (
        id INTEGER PRIMARY KEY CHECK (id = 1),
        goal_weight_lbs REAL NOT NULL
    );

    CREATE TABLE IF NOT EXISTS challenges (
        text TEXT PRIMARY KEY,
        created_at DATETIME NOT NULL
    );

    CREATE TABLE IF NOT EXISTS messages (
        id TEXT PRIMARY KEY,
        role TEXT NOT NULL,
        content TEXT NOT NULL,
        timestamp DATETIME NOT NULL,
        image_path TEXT NOT NULL DEFAULT ''
    );

    CREATE TABLE IF NOT EXISTS food_entries (
        id TEXT PRIMARY KEY,
        date_key TEXT NOT NULL,
        name TEXT NOT NULL,
        calories REAL NOT NULL,
        protein_grams REAL NOT NULL
    );

    CREATE TABLE IF NOT EXISTS applied_suggestions (
        key TEXT PRIMARY KEY,
        applied_at DATETIME NOT NULL
    );

    CREATE INDEX IF NOT EXISTS idx_messages_timestamp ON messages(timestamp);
    CREATE INDEX IF NOT EXISTS idx_food_entries_date ON food_entries(date_key);
    `

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// SetGoalWeight stores the single goal row; the weekly calorie target is
// always derived from it.
func (s *Store) SetGoalWeight(ctx context.Context, lbs float64) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO goals (id, goal_weight_lbs) VALUES (1, ?)
        ON CONFLICT(id) DO UPDATE SET goal_weight_lbs = excluded.goal_weight_lbs
    `, lbs)
	if err != nil {
		return fmt.Errorf("set goal weight: %w", err)
	}
	return nil
}

// Goals returns nil when the user has not set a goal yet.
func (s *Store) Goals(ctx context.Context) (*models.UserGoals, error) {
	var lbs float64
	err := s.db.QueryRowContext(ctx, `SELECT goal_weight_lbs FROM goals WHERE id = 1`).Scan(&lbs)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load goals: %w", err)
	}
	return &models.UserGoals{GoalWeightLbs: lbs}, nil
}

// AddChallenge records a challenge; duplicates are ignored.
func (s *Store) AddChallenge(ctx context.Context, text string) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT OR IGNORE INTO challenges (text, created_at) VALUES (?, ?)
    `, text, time.Now())
	if err != nil {
		return fmt.Errorf("add challenge: %w", err)
	}
	return nil
}

func (s *Store) Challenges(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT text FROM challenges ORDER BY created_at, text`)
	if err != nil {
		return nil, fmt.Errorf("load challenges: %w", err)
	}
	defer rows.Close()

	var challenges []string
	for rows.Next() {
		var text string
		if err := rows.Scan(&text); err != nil {
			return nil, fmt.Errorf("scan challenge: %w", err)
		}
		challenges = append(challenges, text)
	}
	return challenges, rows.Err()
}

// AppendMessage adds one turn to the append-only history.
func (s *Store) AppendMessage(ctx context.Context, msg models.ChatMessage) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO messages (id, role, content, timestamp, image_path)
        VALUES (?, ?, ?, ?, ?)
    `, msg.ID.String(), msg.Role, msg.Content, msg.Timestamp, msg.ImagePath)
	if err != nil {
		return fmt.Errorf("append message: %w", err)
	}
	return nil
}

// RecentMessages returns the most recent limit messages in send order.
func (s *Store) RecentMessages(ctx context.Context, limit int) ([]models.ChatMessage, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, role, content, timestamp, image_path FROM (
            SELECT id, role, content, timestamp, image_path
            FROM messages ORDER BY timestamp DESC, id LIMIT ?
        ) ORDER BY timestamp, id
    `, limit)
	if err != nil {
		return nil, fmt.Errorf("load messages: %w", err)
	}
	defer rows.Close()

	return scanMessages(rows)
}

// Message returns a stored message by ID.
func (s *Store) Message(ctx context.Context, id string) (*models.ChatMessage, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, role, content, timestamp, image_path FROM messages WHERE id = ?
    `, id)
	if err != nil {
		return nil, fmt.Errorf("load message: %w", err)
	}
	defer rows.Close()

	msgs, err := scanMessages(rows)
	if err != nil {
		return nil, err
	}
	if len(msgs) == 0 {
		return nil, fmt.Errorf("message %s not found", id)
	}
	return &msgs[0], nil
}

func scanMessages(rows *sql.Rows) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	for rows.Next() {
		var msg models.ChatMessage
		var id string
		if err := rows.Scan(&id, &msg.Role, &msg.Content, &msg.Timestamp, &msg.ImagePath); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		parsed, err := uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("parse message id: %w", err)
		}
		msg.ID = parsed
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

// ApplySuggestion atomically records the idempotency key and, only if the
// key was new, the food entry. Returns false when the key was already
// applied; no entry is created in that case.
func (s *Store) ApplySuggestion(ctx context.Context, key string, entry models.FoodEntry) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("start transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
        INSERT OR IGNORE INTO applied_suggestions (key, applied_at) VALUES (?, ?)
    `, key, time.Now())
	if err != nil {
		return false, fmt.Errorf("record suggestion key: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("check suggestion key: %w", err)
	}
	if affected == 0 {
		return false, nil
	}

	_, err = tx.ExecContext(ctx, `
        INSERT INTO food_entries (id, date_key, name, calories, protein_grams)
        VALUES (?, ?, ?, ?, ?)
    `, entry.ID, entry.DateKey, entry.Name, entry.Calories, entry.ProteinGrams)
	if err != nil {
		return false, fmt.Errorf("insert food entry: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit suggestion: %w", err)
	}
	return true, nil
}

// AddFoodEntry records a manually logged food.
func (s *Store) AddFoodEntry(ctx context.Context, entry models.FoodEntry) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO food_entries (id, date_key, name, calories, protein_grams)
        VALUES (?, ?, ?, ?, ?)
    `, entry.ID, entry.DateKey, entry.Name, entry.Calories, entry.ProteinGrams)
	if err != nil {
		return fmt.Errorf("insert food entry: %w", err)
	}
	return nil
}

// FoodEntries lists the entries for one day.
func (s *Store) FoodEntries(ctx context.Context, dateKey string) ([]models.FoodEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, date_key, name, calories, protein_grams
        FROM food_entries WHERE date_key = ? ORDER BY rowid
    `, dateKey)
	if err != nil {
		return nil, fmt.Errorf("load food entries: %w", err)
	}
	defer rows.Close()

	var entries []models.FoodEntry
	for rows.Next() {
		var e models.FoodEntry
		if err := rows.Scan(&e.ID, &e.DateKey, &e.Name, &e.Calories, &e.ProteinGrams); err != nil {
			return nil, fmt.Errorf("scan food entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
