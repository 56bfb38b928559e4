package categorize_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwarren-dev/finsight/internal/categorize"
)

type fakeRepo struct {
	rules map[string]string
	saved map[string]string
}

func (f *fakeRepo) FindCategory(_ context.Context, description string) (string, error) {
	return f.rules[description], nil
}

func (f *fakeRepo) CreateRule(_ context.Context, pattern, category string) error {
	f.saved[pattern] = category
	return nil
}

func TestService_Suggest(t *testing.T) {
	repo := &fakeRepo{rules: map[string]string{"COFFEE SHOP": "Meals"}}
	svc := categorize.NewService(repo)

	got, err := svc.Suggest(context.Background(), "COFFEE SHOP")
	require.NoError(t, err)
	assert.Equal(t, "Meals", got)

	got, err = svc.Suggest(context.Background(), "UNKNOWN VENDOR")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestService_Learn(t *testing.T) {
	repo := &fakeRepo{saved: map[string]string{}}
	svc := categorize.NewService(repo)

	require.NoError(t, svc.Learn(context.Background(), "  coffee  ", " Meals "))
	assert.Equal(t, "Meals", repo.saved["coffee"])

	assert.ErrorIs(t, svc.Learn(context.Background(), " ", "Meals"), categorize.ErrEmptyRule)
	assert.ErrorIs(t, svc.Learn(context.Background(), "coffee", ""), categorize.ErrEmptyRule)
}
