package ingest

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/truestate/sales-dashboard/internal/model"
)

// Column headers of the sales export consumed by the bulk loader.
const (
	colCustomerID      = "Customer ID"
	colCustomerName    = "Customer Name"
	colPhoneNumber     = "Phone Number"
	colGender          = "Gender"
	colAge             = "Age"
	colCustomerRegion  = "Customer Region"
	colCustomerType    = "Customer Type"
	colProductID       = "Product ID"
	colProductName     = "Product Name"
	colBrand           = "Brand"
	colProductCategory = "Product Category"
	colTags            = "Tags"
	colQuantity        = "Quantity"
	colPricePerUnit    = "Price per Unit"
	colDiscountPct     = "Discount Percentage"
	colTotalAmount     = "Total Amount"
	colFinalAmount     = "Final Amount"
	colDate            = "Date"
	colPaymentMethod   = "Payment Method"
	colOrderStatus     = "Order Status"
	colDeliveryType    = "Delivery Type"
	colStoreID         = "Store ID"
	colStoreLocation   = "Store Location"
	colSalespersonID   = "Salesperson ID"
	colEmployeeName    = "Employee Name"
)

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006",
}

// ReadTransactions streams rows from a CSV export and hands each mapped
// record to fn. Numeric fields fall back to zero on parse failure; only a
// broken stream or fn itself can abort the read. Returns how many records
// were handed off.
func ReadTransactions(r io.Reader, fn func(*model.Transaction) error) (int, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return 0, errors.Wrap(err, "read csv header")
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}

	count := 0
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return count, errors.Wrap(err, "read csv row")
		}
		if err := fn(mapRow(cols, row)); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

func mapRow(cols map[string]int, row []string) *model.Transaction {
	get := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	return &model.Transaction{
		CustomerID:      get(colCustomerID),
		CustomerName:    get(colCustomerName),
		PhoneNumber:     get(colPhoneNumber),
		Gender:          get(colGender),
		Age:             parseInt(get(colAge)),
		CustomerRegion:  get(colCustomerRegion),
		CustomerType:    get(colCustomerType),
		ProductID:       get(colProductID),
		ProductName:     get(colProductName),
		Brand:           get(colBrand),
		ProductCategory: get(colProductCategory),
		Tags:            parseTags(get(colTags)),
		Quantity:        parseInt(get(colQuantity)),
		PricePerUnit:    parseFloat(get(colPricePerUnit)),
		DiscountPercent: parseFloat(get(colDiscountPct)),
		TotalAmount:     parseFloat(get(colTotalAmount)),
		FinalAmount:     parseFloat(get(colFinalAmount)),
		Date:            parseDate(get(colDate)),
		PaymentMethod:   get(colPaymentMethod),
		OrderStatus:     get(colOrderStatus),
		DeliveryType:    get(colDeliveryType),
		StoreID:         get(colStoreID),
		StoreLocation:   get(colStoreLocation),
		SalespersonID:   get(colSalespersonID),
		EmployeeName:    get(colEmployeeName),
	}
}

func parseInt(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

func parseDate(s string) time.Time {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// parseTags turns `['Wireless', 'Gadgets']` (or a plain comma list) into a
// clean slice: brackets and quotes stripped, entries trimmed.
func parseTags(s string) []string {
	cleaner := strings.NewReplacer("[", "", "]", "", "'", "", `"`, "")
	s = cleaner.Replace(s)
	if strings.TrimSpace(s) == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}
