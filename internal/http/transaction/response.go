package transaction

import (
	"time"

	"github.com/google/uuid"

	"github.com/mwarren-dev/finsight/internal/transaction"
)

type transactionResponse struct {
	ID            uuid.UUID        `json:"id"`
	Kind          transaction.Kind `json:"kind"`
	Amount        int64            `json:"amount"`
	Description   string           `json:"description"`
	Category      string           `json:"category,omitempty"`
	Subcategory   string           `json:"subcategory,omitempty"`
	PaymentMethod string           `json:"payment_method,omitempty"`
	Reference     string           `json:"reference,omitempty"`
	Date          time.Time        `json:"date"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     *time.Time       `json:"updated_at,omitempty"`
}

func toResponse(tx *transaction.Transaction) transactionResponse {
	return transactionResponse{
		ID:            tx.ID,
		Kind:          tx.Kind,
		Amount:        tx.Amount,
		Description:   tx.Description,
		Category:      tx.Category,
		Subcategory:   tx.Subcategory,
		PaymentMethod: tx.PaymentMethod,
		Reference:     tx.Reference,
		Date:          tx.Date,
		CreatedAt:     tx.CreatedAt,
		UpdatedAt:     tx.UpdatedAt,
	}
}

func toResponseList(txs []*transaction.Transaction) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = toResponse(tx)
	}

	return resp
}
