package services

import (
	"context"

	"github.com/truestate/sales-dashboard/internal/model"
	"golang.org/x/sync/errgroup"
)

// TransactionRepository is the store surface the listing needs: a paginated
// fetch, a count, and a sum aggregation, all over the same matched set.
type TransactionRepository interface {
	Find(ctx context.Context, f model.TransactionFilter) ([]*model.Transaction, error)
	Count(ctx context.Context, f model.TransactionFilter) (int64, error)
	SumTotals(ctx context.Context, f model.TransactionFilter) (*model.TransactionTotals, error)
}

type TransactionService struct {
	repo TransactionRepository
}

func NewTransactionService(repo TransactionRepository) *TransactionService {
	return &TransactionService{repo: repo}
}

// List runs the page fetch, the total count and the aggregation concurrently
// and composes the response once all three finish. Any failure fails the
// whole request; there is no partial response.
func (s *TransactionService) List(ctx context.Context, f model.TransactionFilter) (*model.TransactionPage, error) {
	f = f.Normalize()

	var (
		records []*model.Transaction
		total   int64
		totals  *model.TransactionTotals
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		records, err = s.repo.Find(ctx, f)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.repo.Count(ctx, f)
		return err
	})
	g.Go(func() error {
		var err error
		totals, err = s.repo.SumTotals(ctx, f)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if records == nil {
		records = []*model.Transaction{}
	}
	if totals == nil {
		totals = &model.TransactionTotals{}
	}

	totalPages := 0
	if total > 0 {
		totalPages = int((total + int64(f.Limit) - 1) / int64(f.Limit))
	}

	return &model.TransactionPage{
		Success:    true,
		Count:      total,
		Page:       f.Page,
		TotalPages: totalPages,
		Data:       records,
		Stats: model.TransactionStats{
			TotalUnits:    totals.TotalUnits,
			TotalRevenue:  totals.TotalRevenue,
			TotalDiscount: totals.TotalOriginal - totals.TotalRevenue,
		},
	}, nil
}
