package importer

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwarren-dev/finsight/internal/transaction"
)

func TestParser_NativeLayout(t *testing.T) {
	input := strings.Join([]string{
		"Date,Type,Description,Amount,Category",
		"2024-01-10,income,Client invoice,1500.00,Sales",
		"2024-01-15,expense,Office rent,800.00,Rent",
	}, "\n")

	params, err := NewParser().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, params, 2)

	assert.Equal(t, transaction.KindIncome, params[0].Kind)
	assert.Equal(t, int64(150000), params[0].Amount)
	assert.Equal(t, "Client invoice", params[0].Description)
	assert.Equal(t, "Sales", params[0].Category)
	assert.Equal(t, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), params[0].Date)

	assert.Equal(t, transaction.KindExpense, params[1].Kind)
	assert.Equal(t, int64(80000), params[1].Amount)
}

func TestParser_NativeLayout_OptionalColumns(t *testing.T) {
	input := strings.Join([]string{
		"Date,Type,Description,Amount,Category,Subcategory,Payment Method,Reference",
		"2024-02-01,expense,Team lunch,64.20,Meals,Team,card,INV-7",
	}, "\n")

	params, err := NewParser().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, params, 1)

	assert.Equal(t, "Team", params[0].Subcategory)
	assert.Equal(t, "card", params[0].PaymentMethod)
	assert.Equal(t, "INV-7", params[0].Reference)
}

func TestParser_BankStatement_SignedAmounts(t *testing.T) {
	// Preamble before the header, European amounts, footer after the data.
	input := strings.Join([]string{
		"Account;PT50 0000 0000 0000;;",
		"Statement from;01-01-2024;to;31-01-2024",
		"Date;Description;Amount;Balance",
		"05-01-2024;COFFEE SHOP;-12,50;987,50",
		"10-01-2024;CLIENT TRANSFER;1.500,00;2.487,50",
		";;Total;2.487,50",
	}, "\n")

	params, err := NewParser().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, params, 2)

	assert.Equal(t, transaction.KindExpense, params[0].Kind)
	assert.Equal(t, int64(1250), params[0].Amount)
	assert.Equal(t, "COFFEE SHOP", params[0].Description)
	assert.Equal(t, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), params[0].Date)

	assert.Equal(t, transaction.KindIncome, params[1].Kind)
	assert.Equal(t, int64(150000), params[1].Amount)
}

func TestParser_BankStatement_SplitColumns(t *testing.T) {
	input := strings.Join([]string{
		"Date;Description;Debit;Credit",
		"05-01-2024;SUPPLIER PAYMENT;250,00;",
		"12-01-2024;REFUND;;30,00",
	}, "\n")

	params, err := NewParser().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, params, 2)

	assert.Equal(t, transaction.KindExpense, params[0].Kind)
	assert.Equal(t, int64(25000), params[0].Amount)
	assert.Equal(t, transaction.KindIncome, params[1].Kind)
	assert.Equal(t, int64(3000), params[1].Amount)
}

func TestParser_SkipsZeroAndUnparseableRows(t *testing.T) {
	input := strings.Join([]string{
		"Date,Type,Description,Amount,Category",
		"2024-01-10,income,Real row,100.00,Sales",
		"2024-01-11,income,Zero row,0.00,Sales",
		"not a date,income,Footer row,50.00,Sales",
	}, "\n")

	params, err := NewParser().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, params, 1)
	assert.Equal(t, "Real row", params[0].Description)
}

func TestParser_MissingDescriptionFails(t *testing.T) {
	input := strings.Join([]string{
		"Date;Description;Amount",
		"05-01-2024;;10,00",
	}, "\n")

	_, err := NewParser().Parse(strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
}

func TestParser_UnknownLayout(t *testing.T) {
	_, err := NewParser().Parse(strings.NewReader("a,b,c\n1,2,3\n"))
	assert.Error(t, err)
}

func TestParser_Windows1252Header(t *testing.T) {
	// é as 0xE9, the way older banking portals still export.
	input := []byte("Date;Description;Amount\n05-01-2024;CAF\xC9 CENTRAL;-4,20\n")

	params, err := NewParser().Parse(strings.NewReader(string(input)))
	require.NoError(t, err)
	require.Len(t, params, 1)
	assert.Equal(t, "CAFÉ CENTRAL", params[0].Description)
}

func TestSniffSeparator(t *testing.T) {
	assert.Equal(t, ';', sniffSeparator([]byte("a;b;c\n")))
	assert.Equal(t, ',', sniffSeparator([]byte("a,b,c\n")))
	assert.Equal(t, ',', sniffSeparator([]byte("\n\na,b\n")))
	assert.Equal(t, ',', sniffSeparator(nil))
}

func TestParseCents(t *testing.T) {
	tests := []struct {
		name         string
		in           string
		decimalComma bool
		want         int64
		wantErr      bool
	}{
		{name: "european thousands", in: "1.234,56", decimalComma: true, want: 123456},
		{name: "european negative", in: "-588,74", decimalComma: true, want: -58874},
		{name: "plain decimal", in: "1234.56", want: 123456},
		{name: "plain with thousands", in: "1,234.56", want: 123456},
		{name: "garbage", in: "n/a", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseCents(tt.in, tt.decimalComma)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
