package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAgeBucket(t *testing.T) {
	assert.Equal(t, Age19To35, ParseAgeBucket("19-35"))
	assert.Equal(t, AgeOver50, ParseAgeBucket("50+"))
	assert.Equal(t, AgeAll, ParseAgeBucket("All"))
	assert.Equal(t, AgeAll, ParseAgeBucket(""))
	assert.Equal(t, AgeAll, ParseAgeBucket("90-100"))
}

func TestAgeBucket_Bounds(t *testing.T) {
	min, max, ok := AgeUnder18.Bounds()
	require.True(t, ok)
	assert.Nil(t, min)
	require.NotNil(t, max)
	assert.Equal(t, 18, *max)

	min, max, ok = Age19To35.Bounds()
	require.True(t, ok)
	require.NotNil(t, min)
	require.NotNil(t, max)
	assert.Equal(t, 19, *min)
	assert.Equal(t, 35, *max)

	min, max, ok = AgeOver50.Bounds()
	require.True(t, ok)
	require.NotNil(t, min)
	assert.Equal(t, 51, *min)
	assert.Nil(t, max)

	_, _, ok = AgeAll.Bounds()
	assert.False(t, ok)
}

func TestParseDateBucket(t *testing.T) {
	assert.Equal(t, DateLast7Days, ParseDateBucket("Last 7 Days"))
	assert.Equal(t, DateLast3Years, ParseDateBucket("Last 3 Years"))
	assert.Equal(t, DateAll, ParseDateBucket("All"))
	assert.Equal(t, DateAll, ParseDateBucket("Last Decade"))
}

func TestDateBucket_Cutoff(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	t.Run("seven days", func(t *testing.T) {
		cutoff, ok := DateLast7Days.Cutoff(now)
		require.True(t, ok)
		assert.Equal(t, time.Date(2024, 6, 8, 12, 0, 0, 0, time.UTC), cutoff)
	})

	t.Run("one month", func(t *testing.T) {
		cutoff, ok := DateLastMonth.Cutoff(now)
		require.True(t, ok)
		assert.Equal(t, time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC), cutoff)
	})

	t.Run("month subtraction clamps to month end", func(t *testing.T) {
		cutoff, ok := DateLastMonth.Cutoff(time.Date(2025, 3, 31, 10, 0, 0, 0, time.UTC))
		require.True(t, ok)
		assert.Equal(t, time.Date(2025, 2, 28, 10, 0, 0, 0, time.UTC), cutoff)
	})

	t.Run("month subtraction keeps leap day", func(t *testing.T) {
		cutoff, ok := DateLastMonth.Cutoff(time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC))
		require.True(t, ok)
		assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), cutoff)
	})

	t.Run("january wraps into previous year", func(t *testing.T) {
		cutoff, ok := DateLastMonth.Cutoff(time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC))
		require.True(t, ok)
		assert.Equal(t, time.Date(2023, 12, 20, 0, 0, 0, 0, time.UTC), cutoff)
	})

	t.Run("years", func(t *testing.T) {
		cutoff, ok := DateLast2Years.Cutoff(now)
		require.True(t, ok)
		assert.Equal(t, time.Date(2022, 6, 15, 12, 0, 0, 0, time.UTC), cutoff)
	})

	t.Run("leap day to common year clamps", func(t *testing.T) {
		cutoff, ok := DateLast1Year.Cutoff(time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC))
		require.True(t, ok)
		assert.Equal(t, time.Date(2023, 2, 28, 0, 0, 0, 0, time.UTC), cutoff)
	})

	t.Run("all has no cutoff", func(t *testing.T) {
		_, ok := DateAll.Cutoff(now)
		assert.False(t, ok)
	})
}

func TestParseSortKey(t *testing.T) {
	assert.Equal(t, SortDateAsc, ParseSortKey("date-asc"))
	assert.Equal(t, SortQuantityDesc, ParseSortKey("quantity-desc"))
	assert.Equal(t, SortNameAsc, ParseSortKey("name-asc"))
	assert.Equal(t, SortDateDesc, ParseSortKey(""))
	assert.Equal(t, SortDateDesc, ParseSortKey("price-asc"))
}

func TestSortKey_OrderClause(t *testing.T) {
	assert.Equal(t, "date DESC, id DESC", SortDateDesc.OrderClause())
	assert.Equal(t, "customer_name ASC, id ASC", SortNameAsc.OrderClause())
	assert.Equal(t, "date DESC, id DESC", SortKey("bogus").OrderClause())
}

func TestTransactionFilter_Normalize(t *testing.T) {
	f := TransactionFilter{Page: -2, Limit: 0, Sort: "nope"}.Normalize()
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 10, f.Limit)
	assert.Equal(t, SortDateDesc, f.Sort)
	assert.Equal(t, 0, f.Offset())

	f = TransactionFilter{Page: 3, Limit: 25, Sort: SortNameAsc}.Normalize()
	assert.Equal(t, 3, f.Page)
	assert.Equal(t, 25, f.Limit)
	assert.Equal(t, 50, f.Offset())
}
