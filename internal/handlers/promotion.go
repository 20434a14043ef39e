package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/evmco/dealer-backoffice/internal/httpx"
	"github.com/evmco/dealer-backoffice/internal/models"
	"github.com/evmco/dealer-backoffice/internal/validation"

	"gorm.io/gorm"
)

type PromotionHandler struct{ DB *gorm.DB }

func NewPromotionHandler(db *gorm.DB) *PromotionHandler { return &PromotionHandler{DB: db} }

// List: GET /api/promotion. ?active=1 filters to campaigns currently running.
func (h *PromotionHandler) List(w http.ResponseWriter, r *http.Request) {
	page, size, offset := pageParams(r)
	dbq := h.DB.Model(&models.Promotion{})
	if r.URL.Query().Get("active") == "1" {
		now := time.Now()
		dbq = dbq.Where("active = ? AND start_date <= ? AND end_date >= ?", true, now, now)
	}
	var total int64
	dbq.Count(&total)
	var promos []models.Promotion
	if err := dbq.Order("id desc").Limit(size).Offset(offset).Find(&promos).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_promotions", nil)
		return
	}
	httpx.JSONList(w, http.StatusOK, promos, total, page, size)
}

// Create: POST /api/promotion
func (h *PromotionHandler) Create(w http.ResponseWriter, r *http.Request) {
	type createReq struct {
		Name      string    `json:"name"`
		Percent   float64   `json:"percent"`
		StartDate time.Time `json:"startDate"`
		EndDate   time.Time `json:"endDate"`
	}
	var req createReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.Required("name", req.Name, v)
	validation.RangeFloat("percent", req.Percent, 0, 100, v)
	if !req.EndDate.IsZero() && !req.StartDate.IsZero() && req.EndDate.Before(req.StartDate) {
		v["endDate"] = "before_start_date"
	}
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	p := models.Promotion{
		Name:      strings.TrimSpace(req.Name),
		Percent:   req.Percent,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Active:    true,
	}
	if err := h.DB.Create(&p).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_create_promotion", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, p)
}
