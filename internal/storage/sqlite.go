// Package storage persists batches and per-item results to SQLite as a
// normalized relational sink alongside the JSON result artifact.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/forgeworks/idea-forge/internal/common"
	"github.com/forgeworks/idea-forge/internal/model"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteStorage implements the relational sink using SQLite.
type SQLiteStorage struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteStorage creates a new SQLite storage instance.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("dbPath cannot be empty")
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteStorage{db: db, dbPath: dbPath}, nil
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// CreateBatch records a new batch before processing starts.
func (s *SQLiteStorage) CreateBatch(ctx context.Context, batchID string, totalItems int) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO batches (id, status, total_items, processed_items)
		 VALUES (?, ?, ?, 0)
		 ON CONFLICT(id) DO UPDATE SET total_items = excluded.total_items`,
		batchID, model.BatchPending, totalItems)
	if err != nil {
		return fmt.Errorf("failed to create batch: %w", err)
	}
	return nil
}

// UpdateBatchStatus moves a batch through its lifecycle and keeps the
// processed counter current.
func (s *SQLiteStorage) UpdateBatchStatus(ctx context.Context, batchID string, status model.BatchStatus, processed int) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE batches
		 SET status = ?, processed_items = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		status, processed, batchID)
	if err != nil {
		return fmt.Errorf("failed to update batch: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check batch update: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("batch %s not found", batchID)
	}

	return nil
}

// SaveItemResult persists one completed or failed item across the
// normalized tables and the snapshot table in a single transaction.
func (s *SQLiteStorage) SaveItemResult(ctx context.Context, batchID string, item *model.Item) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO items (id, batch_id, title, summary, challenge, novelty, responsible_ai, status, error)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID, batchID, item.Title, item.Summary, item.Challenge, item.Novelty, item.ResponsibleAI,
		item.Status, item.Error); err != nil {
		return fmt.Errorf("failed to save item: %w", err)
	}

	if _, err = tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO extractions (item_id, content, content_type)
		 VALUES (?, ?, ?)`,
		item.ID, item.ExtractedContent, item.ContentCategory); err != nil {
		return fmt.Errorf("failed to save extraction: %w", err)
	}

	if item.Classification != nil {
		if err = s.saveClassificationTx(ctx, tx, item); err != nil {
			return err
		}
	}

	if item.Evaluation != nil {
		if err = s.saveEvaluationTx(ctx, tx, item); err != nil {
			return err
		}
	}

	if item.Verification != nil {
		if err = s.saveVerificationTx(ctx, tx, item); err != nil {
			return err
		}
	}

	snapshot, marshalErr := json.Marshal(item)
	if marshalErr != nil {
		return fmt.Errorf("failed to marshal item snapshot: %w", marshalErr)
	}
	if _, err = tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO item_snapshots (item_id, batch_id, snapshot)
		 VALUES (?, ?, ?)`,
		item.ID, batchID, string(snapshot)); err != nil {
		return fmt.Errorf("failed to save item snapshot: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit item result: %w", err)
	}

	return nil
}

func (s *SQLiteStorage) saveClassificationTx(ctx context.Context, tx *sql.Tx, item *model.Item) error {
	c := item.Classification

	secondary, err := json.Marshal(c.SecondaryThemes)
	if err != nil {
		return fmt.Errorf("failed to marshal secondary themes: %w", err)
	}
	technologies, err := json.Marshal(c.Technologies)
	if err != nil {
		return fmt.Errorf("failed to marshal technologies: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO classifications
		 (item_id, primary_theme, secondary_themes, theme_confidence, theme_rationale,
		  industry_name, industry_confidence, industry_rationale, technologies, technology_rationale)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID, c.PrimaryTheme, string(secondary), c.ThemeConfidence, c.ThemeRationale,
		c.IndustryName, c.IndustryConfidence, c.IndustryRationale, string(technologies), c.TechnologyRationale); err != nil {
		return fmt.Errorf("failed to save classification: %w", err)
	}

	return nil
}

func (s *SQLiteStorage) saveEvaluationTx(ctx context.Context, tx *sql.Tx, item *model.Item) error {
	e := item.Evaluation

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM criterion_scores WHERE item_id = ?`, item.ID); err != nil {
		return fmt.Errorf("failed to clear criterion scores: %w", err)
	}

	for key, cs := range e.Scores {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO criterion_scores (item_id, criterion, score, justification, insufficient_info)
			 VALUES (?, ?, ?, ?, ?)`,
			item.ID, key, cs.Score, cs.Justification, cs.InsufficientInfo); err != nil {
			return fmt.Errorf("failed to save criterion score: %w", err)
		}
	}

	return nil
}

func (s *SQLiteStorage) saveVerificationTx(ctx context.Context, tx *sql.Tx, item *model.Item) error {
	v := item.Verification

	report, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal verification report: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO verifications (item_id, status, checks_passed, checks_failed, report)
		 VALUES (?, ?, ?, ?, ?)`,
		item.ID, v.Status, v.ChecksPassed, v.ChecksFailed, string(report)); err != nil {
		return fmt.Errorf("failed to save verification: %w", err)
	}

	return nil
}

// ItemCount returns how many items a batch has persisted.
func (s *SQLiteStorage) ItemCount(ctx context.Context, batchID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM items WHERE batch_id = ?`, batchID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count items: %w", err)
	}
	return count, nil
}

// LoadSnapshot restores a persisted item from its snapshot row.
func (s *SQLiteStorage) LoadSnapshot(ctx context.Context, itemID string) (*model.Item, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT snapshot FROM item_snapshots WHERE item_id = ?`, itemID).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("snapshot for item %s: %w", itemID, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	var item model.Item
	if err := json.Unmarshal([]byte(raw), &item); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot: %w", err)
	}

	return &item, nil
}
