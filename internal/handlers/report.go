package handlers

import (
	"net/http"
	"time"

	"github.com/evmco/dealer-backoffice/internal/httpx"
	"github.com/evmco/dealer-backoffice/internal/models"

	"gorm.io/gorm"
)

type ReportHandler struct{ DB *gorm.DB }

func NewReportHandler(db *gorm.DB) *ReportHandler { return &ReportHandler{DB: db} }

// Revenue: GET /api/report/revenue?from=2026-01-01&to=2026-12-31
// Sums order totals in the range, grouped by dealer, plus order and quote
// counts. Dealer managers get their own dealer only; EVM/admin see all.
func (h *ReportHandler) Revenue(w http.ResponseWriter, r *http.Request) {
	from, to, ok := parseRange(w, r)
	if !ok {
		return
	}
	dbq := h.DB.Model(&models.Order{}).Where("created_at >= ? AND created_at < ?", from, to)
	if dealerID := dealerScope(h.DB, r); dealerID != 0 {
		dbq = dbq.Where("dealer_id = ?", dealerID)
	}

	type dealerRow struct {
		DealerID uint    `json:"dealerId"`
		Orders   int64   `json:"orders"`
		Revenue  float64 `json:"revenue"`
	}
	var rows []dealerRow
	if err := dbq.Select("dealer_id, count(*) as orders, coalesce(sum(total_amount),0) as revenue").
		Group("dealer_id").Order("revenue desc").Scan(&rows).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_build_report", nil)
		return
	}
	var totalOrders int64
	var totalRevenue float64
	for _, row := range rows {
		totalOrders += row.Orders
		totalRevenue += row.Revenue
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"from":         from.Format("2006-01-02"),
		"to":           to.Format("2006-01-02"),
		"totalOrders":  totalOrders,
		"totalRevenue": totalRevenue,
		"byDealer":     rows,
	})
}

// parseRange reads from/to query dates (inclusive from, exclusive day after to).
// Defaults to the current month when absent.
func parseRange(w http.ResponseWriter, r *http.Request) (from, to time.Time, ok bool) {
	now := time.Now()
	from = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	to = from.AddDate(0, 1, 0)
	if v := r.URL.Query().Get("from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_from_date", nil)
			return from, to, false
		}
		from = t
	}
	if v := r.URL.Query().Get("to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_to_date", nil)
			return from, to, false
		}
		to = t.AddDate(0, 0, 1)
	}
	if !to.After(from) {
		httpx.JSONError(w, http.StatusBadRequest, "empty_date_range", nil)
		return from, to, false
	}
	return from, to, true
}
