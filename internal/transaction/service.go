package transaction

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=transaction
type Repository interface {
	CreateTransaction(ctx context.Context, tx *Transaction) error
	CreateTransactions(ctx context.Context, txs []*Transaction) error
	GetTransaction(ctx context.Context, id uuid.UUID) (*Transaction, error)
	UpdateTransaction(ctx context.Context, tx *Transaction) error
	ListTransactions(ctx context.Context, filter ListFilter) ([]*Transaction, error)
	DeleteTransaction(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Kind          Kind
	Amount        int64
	Description   string
	Category      string
	Subcategory   string
	PaymentMethod string
	Reference     string
	Date          time.Time
}

func (p CreateParams) validate() error {
	if p.Amount <= 0 {
		return ErrInvalidAmount
	}

	if p.Kind != KindIncome && p.Kind != KindExpense {
		return ErrInvalidKind
	}

	return nil
}

// ListFilter narrows transaction lists. Nil fields are ignored.
// Date bounds are inclusive on both ends.
type ListFilter struct {
	Kind      *Kind
	Category  *string
	StartDate *time.Time
	EndDate   *time.Time
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Transaction, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	tx := paramsToTransaction(params)
	if err := s.repo.CreateTransaction(ctx, tx); err != nil {
		return nil, err
	}

	return tx, nil
}

// CreateBatch inserts many transactions at once, as produced by the CSV importer.
// All params are validated before any insert happens.
func (s *Service) CreateBatch(ctx context.Context, params []CreateParams) ([]*Transaction, error) {
	if len(params) == 0 {
		return nil, nil
	}

	for i, p := range params {
		if err := p.validate(); err != nil {
			return nil, fmt.Errorf("transaction %d: %w", i+1, err)
		}
	}

	txs := make([]*Transaction, len(params))
	for i, p := range params {
		txs[i] = paramsToTransaction(p)
	}

	if err := s.repo.CreateTransactions(ctx, txs); err != nil {
		return nil, fmt.Errorf("create transactions: %w", err)
	}

	return txs, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	return s.repo.GetTransaction(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Transaction, error) {
	return s.repo.ListTransactions(ctx, filter)
}

func (s *Service) Update(ctx context.Context, tx *Transaction) error {
	if tx.Amount <= 0 {
		return ErrInvalidAmount
	}

	return s.repo.UpdateTransaction(ctx, tx)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteTransaction(ctx, id)
}

func paramsToTransaction(p CreateParams) *Transaction {
	return &Transaction{
		Kind:          p.Kind,
		Amount:        p.Amount,
		Description:   strings.TrimSpace(p.Description),
		Category:      strings.TrimSpace(p.Category),
		Subcategory:   strings.TrimSpace(p.Subcategory),
		PaymentMethod: strings.TrimSpace(p.PaymentMethod),
		Reference:     strings.TrimSpace(p.Reference),
		Date:          p.Date,
	}
}
