package handlers

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/fasthttp/router"
	"github.com/truestate/sales-dashboard/internal/model"
	xhttp "github.com/truestate/sales-dashboard/pkg/http"
	"github.com/truestate/sales-dashboard/pkg/logger"
	"github.com/truestate/sales-dashboard/pkg/prom"
)

type TransactionService interface {
	List(ctx context.Context, f model.TransactionFilter) (*model.TransactionPage, error)
}

type TransactionHandler struct {
	svc TransactionService
}

func RegisterTransactionRoutes(e *router.Group, h *TransactionHandler) {
	e.GET("/transactions", h.ListTransactions)
}

func NewTransactionHandler(svc TransactionService) *TransactionHandler {
	return &TransactionHandler{svc: svc}
}

type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

/* --------------------------------- Routes ----------------------------------- */

func (h *TransactionHandler) ListTransactions(ctx *xhttp.RequestCtx) {
	f := parseListQuery(ctx)

	start := time.Now()
	page, err := h.svc.List(ctx, f)
	if err != nil {
		prom.AddTransactionListDuration(time.Since(start).Seconds(), "error")
		logger.Error("failed to list transactions", "error", err)
		writeJSON(ctx, 500, errorResponse{Success: false, Message: "Server Error"})
		return
	}
	prom.AddTransactionListDuration(time.Since(start).Seconds(), "ok")

	writeJSON(ctx, 200, page)
}

// parseListQuery coerces the raw query parameters into the typed filter.
// Malformed values never fail a request; they fall back to the per-field
// default, matching the documented degrade-gracefully behavior.
func parseListQuery(ctx *xhttp.RequestCtx) model.TransactionFilter {
	f := model.TransactionFilter{
		Search: query(ctx, "search"),
		Page:   model.DefaultPage,
		Limit:  model.DefaultLimit,
	}

	f.Regions = splitCSV(query(ctx, "region"))
	f.Genders = splitCSV(query(ctx, "gender"))
	f.Categories = splitCSV(query(ctx, "category"))
	f.PaymentMethods = splitCSV(query(ctx, "paymentMethod"))

	if v := query(ctx, "tags"); v != "" && v != "All" {
		f.Tags = splitCSV(v)
	}
	if v := query(ctx, "age"); v != "" && v != "All" {
		f.Age = model.ParseAgeBucket(v)
	}
	if v := query(ctx, "date"); v != "" && v != "All" {
		f.Date = model.ParseDateBucket(v)
	}

	f.Sort = model.ParseSortKey(query(ctx, "sort"))

	if v := query(ctx, "page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			f.Page = n
		}
	}
	if v := query(ctx, "limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			f.Limit = n
		}
	}

	return f.Normalize()
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func writeJSON(ctx *xhttp.RequestCtx, status int, v any) {
	b, _ := json.Marshal(v)
	ctx.Response.Header.Set("Content-Type", "application/json; charset=utf-8")
	ctx.Response.SetStatusCode(status)
	ctx.Response.SetBodyRaw(b)
}

func query(ctx *xhttp.RequestCtx, key string) string {
	return string(ctx.QueryArgs().Peek(key))
}
