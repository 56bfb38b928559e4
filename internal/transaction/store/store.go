package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/mwarren-dev/finsight/internal/transaction"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanTransaction reads a transaction row from the scanner.
// Expected column order: id, kind, amount, description, category, subcategory,
// payment_method, reference, date, created_at, updated_at, deleted_at
func scanTransaction(s scanner) (*transaction.Transaction, error) {
	var tx transaction.Transaction

	var kindStr string

	var subcategory, paymentMethod, reference sql.NullString

	if err := s.Scan(
		&tx.ID, &kindStr, &tx.Amount, &tx.Description, &tx.Category,
		&subcategory, &paymentMethod, &reference, &tx.Date,
		&tx.CreatedAt, &tx.UpdatedAt, &tx.DeletedAt,
	); err != nil {
		return nil, err
	}

	tx.Kind = transaction.Kind(kindStr)
	tx.Subcategory = subcategory.String
	tx.PaymentMethod = paymentMethod.String
	tx.Reference = reference.String

	return &tx, nil
}

const selectTransactionColumns = `
	id, kind, amount, description, category, subcategory,
	payment_method, reference, date, created_at, updated_at, deleted_at
`

func (s *Store) CreateTransaction(ctx context.Context, tx *transaction.Transaction) error {
	query := `
		INSERT INTO transactions (kind, amount, description, category, subcategory, payment_method, reference, date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		tx.Kind,
		tx.Amount,
		tx.Description,
		tx.Category,
		nullable(tx.Subcategory),
		nullable(tx.PaymentMethod),
		nullable(tx.Reference),
		tx.Date,
	).Scan(&tx.ID, &tx.CreatedAt, &tx.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating transaction: %w", err)
	}

	return nil
}

func (s *Store) CreateTransactions(ctx context.Context, txs []*transaction.Transaction) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	query := `
		INSERT INTO transactions (kind, amount, description, category, subcategory, payment_method, reference, date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	for _, tx := range txs {
		err := dbTx.QueryRowContext(ctx, query,
			tx.Kind,
			tx.Amount,
			tx.Description,
			tx.Category,
			nullable(tx.Subcategory),
			nullable(tx.PaymentMethod),
			nullable(tx.Reference),
			tx.Date,
		).Scan(&tx.ID, &tx.CreatedAt, &tx.UpdatedAt)
		if err != nil {
			return fmt.Errorf("creating transaction: %w", err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

func (s *Store) GetTransaction(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + `
		FROM transactions
		WHERE id = $1 AND deleted_at IS NULL`

	tx, err := scanTransaction(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, transaction.ErrNotFound
		}

		return nil, fmt.Errorf("getting transaction: %w", err)
	}

	return tx, nil
}

func (s *Store) ListTransactions(ctx context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + `
		FROM transactions
		WHERE deleted_at IS NULL`

	var args []any

	argIdx := 1

	if filter.Kind != nil {
		query += fmt.Sprintf(" AND kind = $%d", argIdx)

		args = append(args, *filter.Kind)
		argIdx++
	}

	if filter.Category != nil {
		query += fmt.Sprintf(" AND category = $%d", argIdx)

		args = append(args, *filter.Category)
		argIdx++
	}

	if filter.StartDate != nil {
		query += fmt.Sprintf(" AND date >= $%d", argIdx)

		args = append(args, *filter.StartDate)
		argIdx++
	}

	if filter.EndDate != nil {
		query += fmt.Sprintf(" AND date <= $%d", argIdx)

		args = append(args, *filter.EndDate)
		argIdx++
	}

	query += " ORDER BY date ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var txs []*transaction.Transaction

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transaction rows: %w", err)
	}

	return txs, nil
}

func (s *Store) UpdateTransaction(ctx context.Context, tx *transaction.Transaction) error {
	query := `
		UPDATE transactions
		SET kind = $1, amount = $2, description = $3, category = $4, subcategory = $5,
			payment_method = $6, reference = $7, date = $8, updated_at = NOW()
		WHERE id = $9 AND deleted_at IS NULL
	`

	_, err := s.db.ExecContext(ctx, query,
		tx.Kind,
		tx.Amount,
		tx.Description,
		tx.Category,
		nullable(tx.Subcategory),
		nullable(tx.PaymentMethod),
		nullable(tx.Reference),
		tx.Date,
		tx.ID,
	)
	if err != nil {
		return fmt.Errorf("updating transaction: %w", err)
	}

	return nil
}

func (s *Store) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE transactions
		SET deleted_at = NOW()
		WHERE id = $1
	`

	_, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}

	return nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
