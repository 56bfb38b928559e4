package money_test

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwarren-dev/finsight/internal/money"
)

func TestNewFormatter_Validation(t *testing.T) {
	_, err := money.NewFormatter("not a locale", "USD", "2006-01-02")
	assert.Error(t, err)

	_, err = money.NewFormatter("en-US", "DOLLARS", "2006-01-02")
	assert.Error(t, err)
}

func TestFormatter_Amount(t *testing.T) {
	f, err := money.NewFormatter("en-US", "USD", "01/02/2006")
	require.NoError(t, err)

	got := f.Amount(123450)
	assert.Contains(t, got, "$")
	assert.Contains(t, got, "1,234.50")
}

func TestFormatter_RawAmount_RoundTrips(t *testing.T) {
	f, err := money.NewFormatter("en-US", "USD", "01/02/2006")
	require.NoError(t, err)

	got := f.RawAmount(123450)
	assert.Equal(t, "1234.50", got)

	parsed, err := strconv.ParseFloat(got, 64)
	require.NoError(t, err)
	assert.InDelta(t, 1234.50, parsed, 1e-9)

	// Negative balances survive too.
	assert.Equal(t, "-12.05", f.RawAmount(-1205))
}

func TestFormatter_Date(t *testing.T) {
	f, err := money.NewFormatter("en-US", "USD", "01/02/2006")
	require.NoError(t, err)

	assert.Equal(t, "03/12/2024", f.Date(time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC)))
}

func TestFormatter_Currency(t *testing.T) {
	f, err := money.NewFormatter("pt-PT", "EUR", "02/01/2006")
	require.NoError(t, err)

	assert.Equal(t, "EUR", f.Currency())
	assert.True(t, strings.Contains(f.Amount(500), "5"))
}
