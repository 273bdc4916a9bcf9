package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/truestate/sales-dashboard/internal/model"
)

type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) Find(ctx context.Context, f model.TransactionFilter) ([]*model.Transaction, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) Count(ctx context.Context, f model.TransactionFilter) (int64, error) {
	args := m.Called(ctx, f)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTransactionRepository) SumTotals(ctx context.Context, f model.TransactionFilter) (*model.TransactionTotals, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TransactionTotals), args.Error(1)
}

func TestTransactionService_List_ComposesEnvelope(t *testing.T) {
	repo := new(MockTransactionRepository)
	svc := NewTransactionService(repo)
	ctx := context.Background()

	records := []*model.Transaction{{ID: 1, CustomerName: "Asha Rao"}}
	repo.On("Find", mock.Anything, mock.Anything).Return(records, nil)
	repo.On("Count", mock.Anything, mock.Anything).Return(int64(25), nil)
	repo.On("SumTotals", mock.Anything, mock.Anything).
		Return(&model.TransactionTotals{TotalUnits: 40, TotalRevenue: 900, TotalOriginal: 1000}, nil)

	page, err := svc.List(ctx, model.TransactionFilter{Page: 2})
	require.NoError(t, err)

	assert.True(t, page.Success)
	assert.Equal(t, int64(25), page.Count)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 3, page.TotalPages) // ceil(25/10)
	assert.Equal(t, records, page.Data)
	assert.Equal(t, int64(40), page.Stats.TotalUnits)
	assert.InDelta(t, 900, page.Stats.TotalRevenue, 1e-9)
	assert.InDelta(t, 100, page.Stats.TotalDiscount, 1e-9) // 1000 - 900

	repo.AssertExpectations(t)
}

func TestTransactionService_List_EmptyMatch(t *testing.T) {
	repo := new(MockTransactionRepository)
	svc := NewTransactionService(repo)
	ctx := context.Background()

	repo.On("Find", mock.Anything, mock.Anything).Return([]*model.Transaction{}, nil)
	repo.On("Count", mock.Anything, mock.Anything).Return(int64(0), nil)
	repo.On("SumTotals", mock.Anything, mock.Anything).Return(&model.TransactionTotals{}, nil)

	page, err := svc.List(ctx, model.TransactionFilter{})
	require.NoError(t, err)

	assert.True(t, page.Success)
	assert.Zero(t, page.Count)
	assert.Zero(t, page.TotalPages)
	assert.NotNil(t, page.Data)
	assert.Empty(t, page.Data)
	assert.Zero(t, page.Stats.TotalUnits)
	assert.Zero(t, page.Stats.TotalRevenue)
	assert.Zero(t, page.Stats.TotalDiscount)
}

func TestTransactionService_List_TotalPagesRounding(t *testing.T) {
	cases := []struct {
		count int64
		limit int
		want  int
	}{
		{count: 10, limit: 10, want: 1},
		{count: 11, limit: 10, want: 2},
		{count: 2, limit: 1, want: 2},
		{count: 9, limit: 10, want: 1},
	}
	for _, tc := range cases {
		repo := new(MockTransactionRepository)
		svc := NewTransactionService(repo)

		repo.On("Find", mock.Anything, mock.Anything).Return([]*model.Transaction{}, nil)
		repo.On("Count", mock.Anything, mock.Anything).Return(tc.count, nil)
		repo.On("SumTotals", mock.Anything, mock.Anything).Return(&model.TransactionTotals{}, nil)

		page, err := svc.List(context.Background(), model.TransactionFilter{Limit: tc.limit})
		require.NoError(t, err)
		assert.Equal(t, tc.want, page.TotalPages, "count=%d limit=%d", tc.count, tc.limit)
	}
}

func TestTransactionService_List_FailsWhole(t *testing.T) {
	repo := new(MockTransactionRepository)
	svc := NewTransactionService(repo)
	ctx := context.Background()

	boom := errors.New("store unavailable")
	repo.On("Find", mock.Anything, mock.Anything).Return([]*model.Transaction{}, nil).Maybe()
	repo.On("Count", mock.Anything, mock.Anything).Return(int64(0), boom)
	repo.On("SumTotals", mock.Anything, mock.Anything).Return(&model.TransactionTotals{}, nil).Maybe()

	page, err := svc.List(ctx, model.TransactionFilter{})
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, page)
}

func TestTransactionService_List_NormalizesFilter(t *testing.T) {
	repo := new(MockTransactionRepository)
	svc := NewTransactionService(repo)

	normalized := model.TransactionFilter{Page: 1, Limit: 10, Sort: model.SortDateDesc}
	repo.On("Find", mock.Anything, normalized).Return([]*model.Transaction{}, nil)
	repo.On("Count", mock.Anything, normalized).Return(int64(0), nil)
	repo.On("SumTotals", mock.Anything, normalized).Return(&model.TransactionTotals{}, nil)

	_, err := svc.List(context.Background(), model.TransactionFilter{Page: -3, Limit: 0, Sort: "bogus"})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}
