package transaction

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Kind represents the direction of a transaction (income or expense).
type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

// ParseKind validates a kind string from a request or an imported file.
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindIncome:
		return KindIncome, nil
	case KindExpense:
		return KindExpense, nil
	}

	return "", fmt.Errorf("%w: %q", ErrInvalidKind, s)
}

var (
	ErrNotFound      = errors.New("transaction not found")
	ErrInvalidAmount = errors.New("amount must be positive")
	ErrInvalidKind   = errors.New("kind must be income or expense")
)

// Transaction is an immutable fact record. Amount is always positive;
// Kind determines whether it adds to or subtracts from the balance.
type Transaction struct {
	ID            uuid.UUID
	Kind          Kind
	Amount        int64 // Amount in cents
	Description   string
	Category      string
	Subcategory   string
	PaymentMethod string
	Reference     string
	Date          time.Time
	CreatedAt     time.Time
	UpdatedAt     *time.Time
	DeletedAt     *time.Time
}
