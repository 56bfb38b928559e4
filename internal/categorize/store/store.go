package store

import (
	"context"
	"database/sql"
	"fmt"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// FindCategory matches the description against stored patterns. The
// longest pattern wins so specific rules beat generic ones.
func (s *Store) FindCategory(ctx context.Context, description string) (string, error) {
	query := `
		SELECT category
		FROM category_rules
		WHERE $1 ILIKE '%' || pattern || '%'
		ORDER BY LENGTH(pattern) DESC, created_at DESC
		LIMIT 1
	`

	var category string

	err := s.db.QueryRowContext(ctx, query, description).Scan(&category)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}

		return "", fmt.Errorf("finding category: %w", err)
	}

	return category, nil
}

func (s *Store) CreateRule(ctx context.Context, pattern, category string) error {
	query := `
		INSERT INTO category_rules (pattern, category, created_at)
		VALUES ($1, $2, NOW())
	`

	_, err := s.db.ExecContext(ctx, query, pattern, category)
	if err != nil {
		return fmt.Errorf("creating rule: %w", err)
	}

	return nil
}
