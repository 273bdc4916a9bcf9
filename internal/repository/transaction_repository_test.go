package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/truestate/sales-dashboard/internal/model"
)

func TestTransactionRepository_CreateBatchAndFind(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewTransactionRepository(db)
	ctx := context.Background()

	batch := []*model.Transaction{
		newTestTransaction(nil),
		newTestTransaction(func(x *model.Transaction) {
			x.CustomerName = "Ravi Kumar"
			x.PhoneNumber = "9123456780"
			x.Tags = []string{"Organic", "Grocery"}
		}),
	}
	require.NoError(t, repo.CreateBatch(ctx, batch))

	records, err := repo.Find(ctx, model.TransactionFilter{})
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.NotZero(t, records[0].ID)

	total, err := repo.Count(ctx, model.TransactionFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestTransactionRepository_Search(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewTransactionRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.CreateBatch(ctx, []*model.Transaction{
		newTestTransaction(nil),
		newTestTransaction(func(x *model.Transaction) {
			x.CustomerName = "Ravi Kumar"
			x.PhoneNumber = "9123456780"
		}),
	}))

	t.Run("matches name case-insensitively", func(t *testing.T) {
		records, err := repo.Find(ctx, model.TransactionFilter{Search: "asha"})
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "Asha Rao", records[0].CustomerName)
	})

	t.Run("matches phone substring", func(t *testing.T) {
		records, err := repo.Find(ctx, model.TransactionFilter{Search: "912345"})
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "Ravi Kumar", records[0].CustomerName)
	})

	t.Run("no match", func(t *testing.T) {
		records, err := repo.Find(ctx, model.TransactionFilter{Search: "zzz"})
		require.NoError(t, err)
		assert.Empty(t, records)
	})
}

func TestTransactionRepository_CategoricalFilters(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewTransactionRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.CreateBatch(ctx, []*model.Transaction{
		newTestTransaction(nil), // South / Female / Electronics / UPI
		newTestTransaction(func(x *model.Transaction) {
			x.CustomerRegion = "North"
			x.Gender = "Male"
			x.ProductCategory = "Grocery"
			x.PaymentMethod = "Cash"
		}),
	}))

	t.Run("region membership", func(t *testing.T) {
		total, err := repo.Count(ctx, model.TransactionFilter{Regions: []string{"North", "East"}})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
	})

	t.Run("groups compose with AND", func(t *testing.T) {
		total, err := repo.Count(ctx, model.TransactionFilter{
			Regions: []string{"South"},
			Genders: []string{"Male"},
		})
		require.NoError(t, err)
		assert.Zero(t, total)
	})

	t.Run("category and payment method", func(t *testing.T) {
		total, err := repo.Count(ctx, model.TransactionFilter{
			Categories:     []string{"Grocery"},
			PaymentMethods: []string{"Cash", "Card"},
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
	})
}

func TestTransactionRepository_TagFilter(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewTransactionRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.CreateBatch(ctx, []*model.Transaction{
		newTestTransaction(nil), // tags Wireless,Gadgets
		newTestTransaction(func(x *model.Transaction) {
			x.CustomerName = "Ravi Kumar"
			x.Tags = []string{"Organic"}
		}),
	}))

	t.Run("any requested tag matches any record tag", func(t *testing.T) {
		records, err := repo.Find(ctx, model.TransactionFilter{Tags: []string{"smart", "wireless"}})
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "Asha Rao", records[0].CustomerName)
	})

	t.Run("tag OR list spans records", func(t *testing.T) {
		total, err := repo.Count(ctx, model.TransactionFilter{Tags: []string{"gadget", "organic"}})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
	})

	t.Run("unknown tag matches nothing", func(t *testing.T) {
		total, err := repo.Count(ctx, model.TransactionFilter{Tags: []string{"furniture"}})
		require.NoError(t, err)
		assert.Zero(t, total)
	})
}

func TestTransactionRepository_AgeBuckets(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewTransactionRepository(db)
	ctx := context.Background()

	ages := []int{10, 19, 35, 36, 50, 51, 70}
	batch := make([]*model.Transaction, 0, len(ages))
	for _, age := range ages {
		a := age
		batch = append(batch, newTestTransaction(func(x *model.Transaction) { x.Age = a }))
	}
	require.NoError(t, repo.CreateBatch(ctx, batch))

	cases := []struct {
		bucket model.AgeBucket
		want   int64
	}{
		{model.AgeUnder18, 1},
		{model.Age19To35, 2},
		{model.Age36To50, 2},
		{model.AgeOver50, 2},
		{model.AgeAll, 7},
	}
	for _, tc := range cases {
		total, err := repo.Count(ctx, model.TransactionFilter{Age: tc.bucket})
		require.NoError(t, err)
		assert.Equal(t, tc.want, total, "bucket %q", tc.bucket)
	}

	t.Run("returned ages stay inside the bucket", func(t *testing.T) {
		records, err := repo.Find(ctx, model.TransactionFilter{Age: model.AgeOver50, Limit: 100})
		require.NoError(t, err)
		for _, rec := range records {
			assert.GreaterOrEqual(t, rec.Age, 51)
		}
	})
}

func TestTransactionRepository_DateBuckets(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewTransactionRepository(db)
	ctx := context.Background()

	now := time.Now()
	require.NoError(t, repo.CreateBatch(ctx, []*model.Transaction{
		newTestTransaction(func(x *model.Transaction) { x.Date = now.AddDate(0, 0, -1) }),
		newTestTransaction(func(x *model.Transaction) { x.Date = now.AddDate(0, 0, -20) }),
		newTestTransaction(func(x *model.Transaction) { x.Date = now.AddDate(0, 0, -400) }),
	}))

	cases := []struct {
		bucket model.DateBucket
		want   int64
	}{
		{model.DateLast7Days, 1},
		{model.DateLastMonth, 2},
		{model.DateLast1Year, 2},
		{model.DateLast2Years, 3},
		{model.DateAll, 3},
	}
	for _, tc := range cases {
		total, err := repo.Count(ctx, model.TransactionFilter{Date: tc.bucket})
		require.NoError(t, err)
		assert.Equal(t, tc.want, total, "bucket %q", tc.bucket)
	}
}

func TestTransactionRepository_SortAndPagination(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewTransactionRepository(db)
	ctx := context.Background()

	now := time.Now()
	names := []string{"Dev", "Asha", "Charu", "Bala", "Esha"}
	batch := make([]*model.Transaction, 0, len(names))
	for i, name := range names {
		i, name := i, name
		batch = append(batch, newTestTransaction(func(x *model.Transaction) {
			x.CustomerName = name
			x.Quantity = i + 1
			x.Date = now.AddDate(0, 0, -i)
		}))
	}
	require.NoError(t, repo.CreateBatch(ctx, batch))

	t.Run("date desc is the default", func(t *testing.T) {
		records, err := repo.Find(ctx, model.TransactionFilter{})
		require.NoError(t, err)
		require.Len(t, records, 5)
		assert.Equal(t, "Dev", records[0].CustomerName)
	})

	t.Run("name asc", func(t *testing.T) {
		records, err := repo.Find(ctx, model.TransactionFilter{Sort: model.SortNameAsc})
		require.NoError(t, err)
		assert.Equal(t, "Asha", records[0].CustomerName)
	})

	t.Run("quantity desc", func(t *testing.T) {
		records, err := repo.Find(ctx, model.TransactionFilter{Sort: model.SortQuantityDesc})
		require.NoError(t, err)
		assert.Equal(t, 5, records[0].Quantity)
	})

	t.Run("pages are disjoint and exhaustive", func(t *testing.T) {
		seen := map[int64]bool{}
		for page := 1; page <= 3; page++ {
			records, err := repo.Find(ctx, model.TransactionFilter{Page: page, Limit: 2})
			require.NoError(t, err)
			for _, rec := range records {
				assert.False(t, seen[rec.ID], "record %d returned twice", rec.ID)
				seen[rec.ID] = true
			}
		}
		assert.Len(t, seen, 5)
	})
}

func TestTransactionRepository_SumTotals(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewTransactionRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.CreateBatch(ctx, []*model.Transaction{
		newTestTransaction(nil), // qty 2, final 90, total 100
		newTestTransaction(func(x *model.Transaction) {
			x.Age = 60
			x.Quantity = 1
			x.FinalAmount = 50
			x.TotalAmount = 50
		}),
	}))

	t.Run("sums cover the full matched set", func(t *testing.T) {
		totals, err := repo.SumTotals(ctx, model.TransactionFilter{})
		require.NoError(t, err)
		assert.Equal(t, int64(3), totals.TotalUnits)
		assert.InDelta(t, 140, totals.TotalRevenue, 1e-9)
		assert.InDelta(t, 150, totals.TotalOriginal, 1e-9)
	})

	t.Run("filter narrows the aggregation", func(t *testing.T) {
		totals, err := repo.SumTotals(ctx, model.TransactionFilter{Age: model.Age19To35})
		require.NoError(t, err)
		assert.Equal(t, int64(2), totals.TotalUnits)
		assert.InDelta(t, 90, totals.TotalRevenue, 1e-9)
		assert.InDelta(t, 100, totals.TotalOriginal, 1e-9)
	})

	t.Run("empty match yields zeros", func(t *testing.T) {
		totals, err := repo.SumTotals(ctx, model.TransactionFilter{Regions: []string{"Nowhere"}})
		require.NoError(t, err)
		assert.Zero(t, totals.TotalUnits)
		assert.Zero(t, totals.TotalRevenue)
		assert.Zero(t, totals.TotalOriginal)
	})
}

func TestTransactionRepository_DeleteAll(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewTransactionRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.CreateBatch(ctx, []*model.Transaction{newTestTransaction(nil)}))
	require.NoError(t, repo.DeleteAll(ctx))

	total, err := repo.Count(ctx, model.TransactionFilter{})
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestTransactionRepository_ReplaceAll(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewTransactionRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.CreateBatch(ctx, []*model.Transaction{
		newTestTransaction(nil),
		newTestTransaction(nil),
	}))

	next := []*model.Transaction{
		newTestTransaction(func(x *model.Transaction) { x.CustomerName = "Ravi Kumar" }),
	}
	require.NoError(t, repo.ReplaceAll(ctx, next))

	records, err := repo.Find(ctx, model.TransactionFilter{})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Ravi Kumar", records[0].CustomerName)
}
