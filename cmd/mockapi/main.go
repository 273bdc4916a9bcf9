package main

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// mockapi serves the listing envelope from generated in-memory data so the
// dashboard frontend can be developed without postgres or a CSV import.

type transaction struct {
	ID              int64     `json:"id"`
	CustomerID      string    `json:"customerID"`
	CustomerName    string    `json:"customerName"`
	PhoneNumber     string    `json:"phoneNumber"`
	Gender          string    `json:"gender"`
	Age             int       `json:"age"`
	CustomerRegion  string    `json:"customerRegion"`
	ProductID       string    `json:"productID"`
	ProductName     string    `json:"productName"`
	Brand           string    `json:"brand"`
	ProductCategory string    `json:"productCategory"`
	Tags            []string  `json:"tags"`
	Quantity        int       `json:"quantity"`
	PricePerUnit    float64   `json:"pricePerUnit"`
	DiscountPercent float64   `json:"discountPercent"`
	TotalAmount     float64   `json:"totalAmount"`
	FinalAmount     float64   `json:"finalAmount"`
	Date            time.Time `json:"date"`
	PaymentMethod   string    `json:"paymentMethod"`
}

type stats struct {
	TotalUnits    int64   `json:"totalUnits"`
	TotalRevenue  float64 `json:"totalRevenue"`
	TotalDiscount float64 `json:"totalDiscount"`
}

type envelope struct {
	Success    bool          `json:"success"`
	Count      int           `json:"count"`
	Page       int           `json:"page"`
	TotalPages int           `json:"totalPages"`
	Data       []transaction `json:"data"`
	Stats      stats         `json:"stats"`
}

var (
	names      = []string{"Asha Rao", "Ravi Kumar", "Meera Nair", "Kiran Shetty", "Bala Murali", "Esha Singh"}
	regions    = []string{"North", "South", "East", "West"}
	genders    = []string{"Male", "Female", "Other"}
	categories = []string{"Electronics", "Grocery", "Clothing", "Furniture"}
	payments   = []string{"UPI", "Cash", "Card", "Net Banking"}
	tagPool    = [][]string{{"Wireless", "Gadgets"}, {"Organic"}, {"Smart", "Home"}, {"Budget"}}
)

func generate(rng *rand.Rand, n int) []transaction {
	out := make([]transaction, n)
	for i := range out {
		qty := rng.Intn(5) + 1
		price := float64(rng.Intn(90)+10) + 0.5
		total := float64(qty) * price
		discount := float64(rng.Intn(30))
		final := total * (100 - discount) / 100
		out[i] = transaction{
			ID:              int64(i + 1),
			CustomerID:      "CUST-" + uuid.NewString()[:8],
			CustomerName:    names[rng.Intn(len(names))],
			PhoneNumber:     fmt.Sprintf("98%08d", rng.Intn(100000000)),
			Gender:          genders[rng.Intn(len(genders))],
			Age:             rng.Intn(60) + 15,
			CustomerRegion:  regions[rng.Intn(len(regions))],
			ProductID:       "PROD-" + uuid.NewString()[:8],
			ProductName:     "Product " + strconv.Itoa(i+1),
			Brand:           "Acme",
			ProductCategory: categories[rng.Intn(len(categories))],
			Tags:            tagPool[rng.Intn(len(tagPool))],
			Quantity:        qty,
			PricePerUnit:    price,
			DiscountPercent: discount,
			TotalAmount:     total,
			FinalAmount:     final,
			Date:            time.Now().AddDate(0, 0, -rng.Intn(900)),
			PaymentMethod:   payments[rng.Intn(len(payments))],
		}
	}
	return out
}

func listHandler(records []transaction) gin.HandlerFunc {
	return func(c *gin.Context) {
		matched := records
		if search := strings.ToLower(c.Query("search")); search != "" {
			filtered := make([]transaction, 0, len(matched))
			for _, t := range matched {
				if strings.Contains(strings.ToLower(t.CustomerName), search) ||
					strings.Contains(t.PhoneNumber, search) {
					filtered = append(filtered, t)
				}
			}
			matched = filtered
		}

		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		if page < 1 {
			page = 1
		}
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
		if limit <= 0 {
			limit = 10
		}

		var st stats
		for _, t := range matched {
			st.TotalUnits += int64(t.Quantity)
			st.TotalRevenue += t.FinalAmount
			st.TotalDiscount += t.TotalAmount - t.FinalAmount
		}

		totalPages := 0
		if len(matched) > 0 {
			totalPages = (len(matched) + limit - 1) / limit
		}

		start := (page - 1) * limit
		if start > len(matched) {
			start = len(matched)
		}
		end := start + limit
		if end > len(matched) {
			end = len(matched)
		}

		c.JSON(http.StatusOK, envelope{
			Success:    true,
			Count:      len(matched),
			Page:       page,
			TotalPages: totalPages,
			Data:       matched[start:end],
			Stats:      st,
		})
	}
}

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	addr := os.Getenv("MOCK_API_ADDR")
	if addr == "" {
		addr = ":5050"
	}
	count := 250
	if v := os.Getenv("MOCK_API_RECORDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			count = n
		}
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	records := generate(rng, count)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/api/transactions", listHandler(records))
	r.GET("/api/health", func(c *gin.Context) {
		c.String(http.StatusOK, "success")
	})

	srv := &http.Server{Addr: addr, Handler: r}

	go func() {
		log.Info().Str("addr", addr).Int("records", count).Msg("mock sales api listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("mock api failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}
	log.Info().Msg("mock api stopped")
}
