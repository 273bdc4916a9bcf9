package model

import (
	"time"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// AgeBucket is a named inclusive age range. Unrecognized inputs collapse to
// AgeAll, which imposes no constraint.
type AgeBucket string

const (
	AgeAll     AgeBucket = ""
	AgeUnder18 AgeBucket = "0-18"
	Age19To35  AgeBucket = "19-35"
	Age36To50  AgeBucket = "36-50"
	AgeOver50  AgeBucket = "50+"
)

type ageRange struct {
	Min *int
	Max *int
}

var ageRanges = map[AgeBucket]ageRange{
	AgeUnder18: {Max: intp(18)},
	Age19To35:  {Min: intp(19), Max: intp(35)},
	Age36To50:  {Min: intp(36), Max: intp(50)},
	AgeOver50:  {Min: intp(51)},
}

func intp(v int) *int { return &v }

func ParseAgeBucket(s string) AgeBucket {
	b := AgeBucket(s)
	if _, ok := ageRanges[b]; ok {
		return b
	}
	return AgeAll
}

// Bounds returns the inclusive min/max for the bucket. A nil pointer means
// that side is unbounded; ok is false for AgeAll.
func (b AgeBucket) Bounds() (min, max *int, ok bool) {
	r, ok := ageRanges[b]
	return r.Min, r.Max, ok
}

// DateBucket is a named relative time window ending now.
type DateBucket string

const (
	DateAll        DateBucket = ""
	DateLast7Days  DateBucket = "Last 7 Days"
	DateLastMonth  DateBucket = "Last Month"
	DateLast1Year  DateBucket = "Last 1 Year"
	DateLast2Years DateBucket = "Last 2 Years"
	DateLast3Years DateBucket = "Last 3 Years"
)

type dateOffset struct {
	Days   int
	Months int
	Years  int
}

var dateOffsets = map[DateBucket]dateOffset{
	DateLast7Days:  {Days: 7},
	DateLastMonth:  {Months: 1},
	DateLast1Year:  {Years: 1},
	DateLast2Years: {Years: 2},
	DateLast3Years: {Years: 3},
}

func ParseDateBucket(s string) DateBucket {
	b := DateBucket(s)
	if _, ok := dateOffsets[b]; ok {
		return b
	}
	return DateAll
}

// Cutoff returns the earliest matching timestamp for the bucket, relative to
// now. Month and year subtraction is calendar-aware: the day of month is
// clamped to the target month's length, so a month before March 31 is the
// last day of February rather than a spillover into March.
func (b DateBucket) Cutoff(now time.Time) (time.Time, bool) {
	off, ok := dateOffsets[b]
	if !ok {
		return time.Time{}, false
	}
	if off.Days != 0 {
		return now.AddDate(0, 0, -off.Days), true
	}
	return addCalendar(now, -off.Years, -off.Months), true
}

// addCalendar shifts year/month fields and clamps the day instead of letting
// overflow normalize into the following month.
func addCalendar(t time.Time, years, months int) time.Time {
	y := t.Year() + years
	m := int(t.Month()) + months
	for m < 1 {
		m += 12
		y--
	}
	for m > 12 {
		m -= 12
		y++
	}
	d := t.Day()
	if last := daysIn(y, time.Month(m)); d > last {
		d = last
	}
	return time.Date(y, time.Month(m), d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// SortKey names a single-field ordering for the listing endpoint.
type SortKey string

const (
	SortDateDesc     SortKey = "date-desc"
	SortDateAsc      SortKey = "date-asc"
	SortQuantityDesc SortKey = "quantity-desc"
	SortNameAsc      SortKey = "name-asc"
)

// sortClauses appends id so pagination windows stay disjoint when the primary
// key ties.
var sortClauses = map[SortKey]string{
	SortDateDesc:     "date DESC, id DESC",
	SortDateAsc:      "date ASC, id ASC",
	SortQuantityDesc: "quantity DESC, id DESC",
	SortNameAsc:      "customer_name ASC, id ASC",
}

func ParseSortKey(s string) SortKey {
	k := SortKey(s)
	if _, ok := sortClauses[k]; ok {
		return k
	}
	return SortDateDesc
}

func (k SortKey) OrderClause() string {
	if c, ok := sortClauses[k]; ok {
		return c
	}
	return sortClauses[SortDateDesc]
}

// TransactionFilter is the typed form of the listing query parameters. All
// fields are optional; the zero value matches everything. Slice fields are
// OR within the group, groups compose with AND.
type TransactionFilter struct {
	Search         string   // case-insensitive substring on customerName or phoneNumber
	Regions        []string // customerRegion IN (...)
	Genders        []string // gender IN (...)
	Categories     []string // productCategory IN (...)
	PaymentMethods []string // paymentMethod IN (...)
	Tags           []string // any requested tag substring-matches any record tag
	Age            AgeBucket
	Date           DateBucket
	Sort           SortKey
	Page           int
	Limit          int
}

// Normalize applies the documented per-field defaults. It is called once at
// the HTTP boundary; the service repeats it so programmatic callers get the
// same behavior.
func (f TransactionFilter) Normalize() TransactionFilter {
	if f.Page < DefaultPage {
		f.Page = DefaultPage
	}
	if f.Limit <= 0 {
		f.Limit = DefaultLimit
	}
	if _, ok := sortClauses[f.Sort]; !ok {
		f.Sort = SortDateDesc
	}
	return f
}

func (f TransactionFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}
