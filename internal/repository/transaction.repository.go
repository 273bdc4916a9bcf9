package repository

import (
	"context"
	"strings"
	"time"

	"github.com/truestate/sales-dashboard/internal/model"
	"github.com/truestate/sales-dashboard/pkg/pg"
	"gorm.io/gorm"
)

type TransactionRepository struct {
	*pg.DB
	now func() time.Time
}

func NewTransactionRepository(db *pg.DB) *TransactionRepository {
	return &TransactionRepository{
		DB:  db,
		now: time.Now,
	}
}

// buildQuery translates the typed filter into a gorm query. Filter groups
// compose with AND; values inside a group with OR. LOWER(...) LIKE is used
// instead of ILIKE so the same query runs on postgres and sqlite.
func (r *TransactionRepository) buildQuery(ctx context.Context, f model.TransactionFilter) *gorm.DB {
	q := r.Read(ctx).WithContext(ctx).Model(&TransactionEntity{})

	if f.Search != "" {
		p := "%" + strings.ToLower(f.Search) + "%"
		q = q.Where("LOWER(customer_name) LIKE ? OR LOWER(phone_number) LIKE ?", p, p)
	}
	if len(f.Regions) > 0 {
		q = q.Where("customer_region IN ?", f.Regions)
	}
	if len(f.Genders) > 0 {
		q = q.Where("gender IN ?", f.Genders)
	}
	if len(f.Categories) > 0 {
		q = q.Where("product_category IN ?", f.Categories)
	}
	if len(f.PaymentMethods) > 0 {
		q = q.Where("payment_method IN ?", f.PaymentMethods)
	}
	if len(f.Tags) > 0 {
		// Requested tags never contain commas (they come from a comma split),
		// so a substring match on the comma-joined column cannot straddle two
		// stored tags.
		tagQ := r.Read(ctx).WithContext(ctx)
		for i, tag := range f.Tags {
			p := "%" + strings.ToLower(tag) + "%"
			if i == 0 {
				tagQ = tagQ.Where("LOWER(tags) LIKE ?", p)
			} else {
				tagQ = tagQ.Or("LOWER(tags) LIKE ?", p)
			}
		}
		q = q.Where(tagQ)
	}
	if min, max, ok := f.Age.Bounds(); ok {
		if min != nil {
			q = q.Where("age >= ?", *min)
		}
		if max != nil {
			q = q.Where("age <= ?", *max)
		}
	}
	if cutoff, ok := f.Date.Cutoff(r.now()); ok {
		q = q.Where("date >= ?", cutoff)
	}

	return q
}

// Find returns the page of matching records in the filter's sort order.
func (r *TransactionRepository) Find(ctx context.Context, f model.TransactionFilter) ([]*model.Transaction, error) {
	f = f.Normalize()

	var entities []*TransactionEntity
	err := r.buildQuery(ctx, f).
		Order(f.Sort.OrderClause()).
		Limit(f.Limit).
		Offset(f.Offset()).
		Find(&entities).Error
	if err != nil {
		return nil, err
	}

	return toTransactionModels(entities), nil
}

// Count returns the size of the matched set, independent of pagination.
func (r *TransactionRepository) Count(ctx context.Context, f model.TransactionFilter) (int64, error) {
	var total int64
	if err := r.buildQuery(ctx, f).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// SumTotals aggregates quantity, finalAmount and totalAmount over the whole
// matched set. An empty match yields zero sums, not an error.
func (r *TransactionRepository) SumTotals(ctx context.Context, f model.TransactionFilter) (*model.TransactionTotals, error) {
	var totals model.TransactionTotals
	err := r.buildQuery(ctx, f).
		Select(
			"COALESCE(SUM(quantity), 0) AS total_units, " +
				"COALESCE(SUM(final_amount), 0) AS total_revenue, " +
				"COALESCE(SUM(total_amount), 0) AS total_original",
		).
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	return &totals, nil
}

// CreateBatch inserts a batch of records. Used only by the bulk loader.
func (r *TransactionRepository) CreateBatch(ctx context.Context, txns []*model.Transaction) error {
	if len(txns) == 0 {
		return nil
	}
	entities := make([]*TransactionEntity, len(txns))
	for i, t := range txns {
		entities[i] = toTransactionEntity(t)
	}
	return r.Write(ctx).WithContext(ctx).Create(entities).Error
}

// DeleteAll clears the collection ahead of a reload.
func (r *TransactionRepository) DeleteAll(ctx context.Context) error {
	return r.Write(ctx).WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&TransactionEntity{}).Error
}

// ReplaceAll atomically swaps the collection for the given records. Readers
// never observe the half-empty state between the delete and the insert.
func (r *TransactionRepository) ReplaceAll(ctx context.Context, txns []*model.Transaction) error {
	return r.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := r.DeleteAll(ctx); err != nil {
			return err
		}
		return r.CreateBatch(ctx, txns)
	})
}
