package postgres

import (
	"context"
	"fmt"

	"github.com/leedsmet/bibliosight-core/internal/core/domain"
	"github.com/leedsmet/bibliosight-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.HistoryStore = (*HistoryStore)(nil)

// HistoryStore implements driven.HistoryStore using PostgreSQL
type HistoryStore struct {
	db *DB
}

// NewHistoryStore creates a new PostgreSQL-backed HistoryStore
func NewHistoryStore(db *DB) *HistoryStore {
	return &HistoryStore{db: db}
}

// Record stores one execution and fills in its assigned ID
func (s *HistoryStore) Record(ctx context.Context, exec *domain.Execution) error {
	query := `
		INSERT INTO search_history (
			executed_at, database_id, user_query,
			records_searched, records_found, records_listed,
			succeeded, error
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	err := s.db.QueryRowContext(ctx, query,
		exec.ExecutedAt, exec.DatabaseID, exec.UserQuery,
		exec.RecordsSearched, exec.RecordsFound, exec.RecordsListed,
		exec.Succeeded, exec.Error,
	).Scan(&exec.ID)
	if err != nil {
		return fmt.Errorf("failed to record execution: %w", err)
	}
	return nil
}

// Recent returns the most recent executions, newest first
func (s *HistoryStore) Recent(ctx context.Context, limit int) ([]*domain.Execution, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, executed_at, database_id, user_query,
		       records_searched, records_found, records_listed,
		       succeeded, error
		FROM search_history
		ORDER BY executed_at DESC, id DESC
		LIMIT $1`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list executions: %w", err)
	}
	defer rows.Close()

	var executions []*domain.Execution
	for rows.Next() {
		var exec domain.Execution
		if err := rows.Scan(
			&exec.ID, &exec.ExecutedAt, &exec.DatabaseID, &exec.UserQuery,
			&exec.RecordsSearched, &exec.RecordsFound, &exec.RecordsListed,
			&exec.Succeeded, &exec.Error,
		); err != nil {
			return nil, fmt.Errorf("failed to scan execution: %w", err)
		}
		executions = append(executions, &exec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate executions: %w", err)
	}

	return executions, nil
}
