package transaction_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mwarren-dev/finsight/internal/transaction"
)

func TestService_Create(t *testing.T) {
	type args struct {
		params transaction.CreateParams
	}

	type testCase struct {
		name      string
		args      args
		setupMock func(m *transaction.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "Success",
			args: args{
				params: transaction.CreateParams{
					Kind:        transaction.KindExpense,
					Amount:      1250,
					Description: "Office supplies",
					Category:    "Supplies",
					Date:        time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC),
				},
			},
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().
					CreateTransaction(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, tx *transaction.Transaction) error {
						tx.ID = uuid.New()
						tx.CreatedAt = time.Now()
						return nil
					})
			},
		},
		{
			name: "ZeroAmount",
			args: args{
				params: transaction.CreateParams{
					Kind:   transaction.KindExpense,
					Amount: 0,
				},
			},
			wantErr: transaction.ErrInvalidAmount,
		},
		{
			name: "NegativeAmount",
			args: args{
				params: transaction.CreateParams{
					Kind:   transaction.KindIncome,
					Amount: -500,
				},
			},
			wantErr: transaction.ErrInvalidAmount,
		},
		{
			name: "UnknownKind",
			args: args{
				params: transaction.CreateParams{
					Kind:   transaction.Kind("transfer"),
					Amount: 100,
				},
			},
			wantErr: transaction.ErrInvalidKind,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := transaction.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := transaction.NewService(repo)
			got, err := svc.Create(context.Background(), tt.args.params)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			assert.NoError(t, err)
			assert.NotNil(t, got)
			assert.NotEmpty(t, got.ID)
		})
	}
}

func TestService_Create_TrimsMetadata(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	repo.EXPECT().
		CreateTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tx *transaction.Transaction) error {
			tx.ID = uuid.New()
			return nil
		})

	svc := transaction.NewService(repo)
	got, err := svc.Create(context.Background(), transaction.CreateParams{
		Kind:        transaction.KindIncome,
		Amount:      10000,
		Description: "  Invoice 42  ",
		Category:    " Consulting ",
		Date:        time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	assert.Equal(t, "Invoice 42", got.Description)
	assert.Equal(t, "Consulting", got.Category)
}

func TestService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	repo.EXPECT().
		ListTransactions(gomock.Any(), transaction.ListFilter{}).
		Return([]*transaction.Transaction{
			{ID: uuid.New()},
			{ID: uuid.New()},
		}, nil)

	svc := transaction.NewService(repo)
	got, err := svc.List(context.Background(), transaction.ListFilter{})

	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestService_CreateBatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	repo.EXPECT().CreateTransactions(gomock.Any(), gomock.Any()).Return(nil)

	svc := transaction.NewService(repo)

	date := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	txs, err := svc.CreateBatch(context.Background(), []transaction.CreateParams{
		{Kind: transaction.KindExpense, Amount: 1000, Description: "Coffee", Category: "Meals", Date: date},
		{Kind: transaction.KindIncome, Amount: 50000, Description: "Invoice", Category: "Sales", Date: date},
	})

	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, int64(1000), txs[0].Amount)
	assert.Equal(t, transaction.KindIncome, txs[1].Kind)
}

func TestService_CreateBatch_ValidatesBeforeInsert(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// No repository call expected: validation fails first.
	repo := transaction.NewMockRepository(ctrl)
	svc := transaction.NewService(repo)

	_, err := svc.CreateBatch(context.Background(), []transaction.CreateParams{
		{Kind: transaction.KindExpense, Amount: -5},
	})

	assert.ErrorIs(t, err, transaction.ErrInvalidAmount)
}

func TestService_CreateBatch_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	svc := transaction.NewService(repo)

	txs, err := svc.CreateBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestService_Update_RejectsBadAmount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	svc := transaction.NewService(repo)

	err := svc.Update(context.Background(), &transaction.Transaction{ID: uuid.New(), Amount: 0})
	assert.ErrorIs(t, err, transaction.ErrInvalidAmount)
}

func TestService_Get_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := uuid.New()

	repo := transaction.NewMockRepository(ctrl)
	repo.EXPECT().GetTransaction(gomock.Any(), id).Return(nil, transaction.ErrNotFound)

	svc := transaction.NewService(repo)

	_, err := svc.Get(context.Background(), id)
	assert.True(t, errors.Is(err, transaction.ErrNotFound))
}
