package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/mwarren-dev/finsight/internal/budget"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBudget(s scanner) (*budget.Budget, error) {
	var b budget.Budget

	var periodStr string

	if err := s.Scan(
		&b.ID, &b.Category, &b.Amount, &periodStr,
		&b.StartDate, &b.EndDate, &b.IsActive,
		&b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		return nil, err
	}

	b.Period = budget.Period(periodStr)

	return &b, nil
}

const selectBudgetColumns = `
	id, category, amount, period, start_date, end_date, is_active, created_at, updated_at
`

func (s *Store) CreateBudget(ctx context.Context, b *budget.Budget) error {
	query := `
		INSERT INTO budgets (category, amount, period, start_date, end_date, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		b.Category,
		b.Amount,
		b.Period,
		b.StartDate,
		b.EndDate,
		b.IsActive,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating budget: %w", err)
	}

	return nil
}

func (s *Store) GetBudget(ctx context.Context, id uuid.UUID) (*budget.Budget, error) {
	query := `SELECT ` + selectBudgetColumns + `
		FROM budgets
		WHERE id = $1`

	b, err := scanBudget(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, budget.ErrNotFound
		}

		return nil, fmt.Errorf("getting budget: %w", err)
	}

	return b, nil
}

func (s *Store) ListBudgets(ctx context.Context, activeOnly bool) ([]*budget.Budget, error) {
	query := `SELECT ` + selectBudgetColumns + `
		FROM budgets`

	if activeOnly {
		query += " WHERE is_active"
	}

	query += " ORDER BY start_date DESC, category ASC"

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing budgets: %w", err)
	}
	defer rows.Close()

	var budgets []*budget.Budget

	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning budget: %w", err)
		}

		budgets = append(budgets, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating budget rows: %w", err)
	}

	return budgets, nil
}

func (s *Store) UpdateBudget(ctx context.Context, b *budget.Budget) error {
	query := `
		UPDATE budgets
		SET category = $1, amount = $2, period = $3, start_date = $4, end_date = $5,
			is_active = $6, updated_at = NOW()
		WHERE id = $7
	`

	_, err := s.db.ExecContext(ctx, query,
		b.Category,
		b.Amount,
		b.Period,
		b.StartDate,
		b.EndDate,
		b.IsActive,
		b.ID,
	)
	if err != nil {
		return fmt.Errorf("updating budget: %w", err)
	}

	return nil
}

func (s *Store) DeleteBudget(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM budgets WHERE id = $1`

	if _, err := s.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("deleting budget: %w", err)
	}

	return nil
}
