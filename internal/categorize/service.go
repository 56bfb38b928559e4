// Package categorize learns category rules from substring patterns and
// suggests categories for bank statement descriptions that arrive without
// one.
package categorize

import (
	"context"
	"errors"
	"strings"
)

var ErrEmptyRule = errors.New("pattern and category are required")

type Repository interface {
	FindCategory(ctx context.Context, description string) (string, error)
	CreateRule(ctx context.Context, pattern, category string) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Suggest tries to find a category for the given description. Returns an
// empty string if no rule matches.
func (s *Service) Suggest(ctx context.Context, description string) (string, error) {
	return s.repo.FindCategory(ctx, description)
}

// Learn remembers a new rule mapping a description pattern to a category.
func (s *Service) Learn(ctx context.Context, pattern, category string) error {
	if strings.TrimSpace(pattern) == "" || strings.TrimSpace(category) == "" {
		return ErrEmptyRule
	}

	return s.repo.CreateRule(ctx, strings.TrimSpace(pattern), strings.TrimSpace(category))
}
