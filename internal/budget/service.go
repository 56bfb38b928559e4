package budget

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mwarren-dev/finsight/internal/transaction"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=budget
type Repository interface {
	CreateBudget(ctx context.Context, b *Budget) error
	GetBudget(ctx context.Context, id uuid.UUID) (*Budget, error)
	ListBudgets(ctx context.Context, activeOnly bool) ([]*Budget, error)
	UpdateBudget(ctx context.Context, b *Budget) error
	DeleteBudget(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo         Repository
	transactions *transaction.Service
	now          func() time.Time
}

func NewService(repo Repository, txService *transaction.Service) *Service {
	return &Service{
		repo:         repo,
		transactions: txService,
		now:          time.Now,
	}
}

type CreateParams struct {
	Category  string
	Amount    int64
	Period    Period
	StartDate time.Time
}

func (p CreateParams) validate() error {
	if strings.TrimSpace(p.Category) == "" {
		return ErrEmptyCategory
	}

	if p.Amount < 0 {
		return ErrInvalidAmount
	}

	if !p.Period.valid() {
		return ErrInvalidPeriod
	}

	return nil
}

// Create stores a new budget. The end date is always derived from the
// start date and period; callers cannot set it independently.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Budget, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	start := params.StartDate
	if start.IsZero() {
		start = s.now()
	}

	b := &Budget{
		Category:  strings.TrimSpace(params.Category),
		Amount:    params.Amount,
		Period:    params.Period,
		StartDate: start,
		EndDate:   params.Period.EndDate(start),
		IsActive:  true,
	}

	if err := s.repo.CreateBudget(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Budget, error) {
	return s.repo.GetBudget(ctx, id)
}

func (s *Service) List(ctx context.Context, activeOnly bool) ([]*Budget, error) {
	return s.repo.ListBudgets(ctx, activeOnly)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteBudget(ctx, id)
}

// SetActive toggles the active flag. Expired budgets are not deactivated
// automatically; this is the only way the flag changes.
func (s *Service) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	b, err := s.repo.GetBudget(ctx, id)
	if err != nil {
		return err
	}

	b.IsActive = active

	return s.repo.UpdateBudget(ctx, b)
}

// Status evaluates a budget against the expenses recorded in its window.
func (s *Service) Status(ctx context.Context, id uuid.UUID) (*Budget, Evaluation, error) {
	b, err := s.repo.GetBudget(ctx, id)
	if err != nil {
		return nil, Evaluation{}, err
	}

	kind := transaction.KindExpense
	txs, err := s.transactions.List(ctx, transaction.ListFilter{
		Kind:      &kind,
		StartDate: &b.StartDate,
		EndDate:   &b.EndDate,
	})
	if err != nil {
		return nil, Evaluation{}, fmt.Errorf("listing expenses: %w", err)
	}

	return b, Evaluate(b, txs, s.now()), nil
}

// Renew creates a successor budget for the next period: same category,
// amount and period, a fresh window starting now and a new identity.
// Spent resets implicitly since evaluation only looks at the new window.
func (s *Service) Renew(ctx context.Context, id uuid.UUID) (*Budget, error) {
	prev, err := s.repo.GetBudget(ctx, id)
	if err != nil {
		return nil, err
	}

	start := s.now()

	next := &Budget{
		Category:  prev.Category,
		Amount:    prev.Amount,
		Period:    prev.Period,
		StartDate: start,
		EndDate:   prev.Period.EndDate(start),
		IsActive:  true,
	}

	if err := s.repo.CreateBudget(ctx, next); err != nil {
		return nil, fmt.Errorf("creating successor budget: %w", err)
	}

	return next, nil
}
