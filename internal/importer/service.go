// Package importer turns uploaded statement CSV files into stored
// transactions.
package importer

import (
	"context"
	"errors"
	"io"

	"github.com/mwarren-dev/finsight/internal/transaction"
)

var ErrEmptyFile = errors.New("no transactions found in file")

// Categorizer suggests a category for a statement description. An empty
// suggestion means no rule matched.
type Categorizer interface {
	Suggest(ctx context.Context, description string) (string, error)
}

type Service struct {
	parser       *Parser
	transactions *transaction.Service
	categories   Categorizer
}

// NewService builds the import pipeline. categories may be nil, in which
// case uncategorized rows stay uncategorized.
func NewService(txService *transaction.Service, categories Categorizer) *Service {
	return &Service{
		parser:       NewParser(),
		transactions: txService,
		categories:   categories,
	}
}

// Import parses the statement, fills in missing categories from learned
// rules and stores every row in one batch. A file with a recognizable
// header but no usable rows is an error rather than a silent no-op.
func (s *Service) Import(ctx context.Context, r io.Reader) ([]*transaction.Transaction, error) {
	params, err := s.parser.Parse(r)
	if err != nil {
		return nil, err
	}

	if len(params) == 0 {
		return nil, ErrEmptyFile
	}

	if s.categories != nil {
		for i, p := range params {
			if p.Category != "" {
				continue
			}

			suggested, err := s.categories.Suggest(ctx, p.Description)
			if err != nil || suggested == "" {
				continue
			}

			params[i].Category = suggested
		}
	}

	return s.transactions.CreateBatch(ctx, params)
}
