package handlers

import (
	"encoding/json"
	"net/http"
	"regexp"
	"strings"

	"github.com/evmco/dealer-backoffice/internal/httpx"
	"github.com/evmco/dealer-backoffice/internal/models"
	"github.com/evmco/dealer-backoffice/internal/validation"

	"gorm.io/gorm"
)

type CustomerHandler struct{ DB *gorm.DB }

func NewCustomerHandler(db *gorm.DB) *CustomerHandler { return &CustomerHandler{DB: db} }

var customerSearchSanitizer = regexp.MustCompile(`[^a-zA-Z0-9 \-_@.]`)

// List: GET /api/customers. Dealer roles only see their own customers.
func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	page, size, offset := pageParams(r)
	dbq := h.DB.Model(&models.Customer{})
	if dealerID := dealerScope(h.DB, r); dealerID != 0 {
		dbq = dbq.Where("dealer_id = ?", dealerID)
	}
	if q := strings.TrimSpace(r.URL.Query().Get("q")); q != "" {
		safe := customerSearchSanitizer.ReplaceAllString(q, "")
		like := "%" + strings.ToLower(safe) + "%"
		dbq = dbq.Where("lower(name) LIKE ? OR lower(phone) LIKE ?", like, like)
	}
	var total int64
	dbq.Count(&total)
	var customers []models.Customer
	if err := dbq.Order("id desc").Limit(size).Offset(offset).Find(&customers).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_customers", nil)
		return
	}
	httpx.JSONList(w, http.StatusOK, customers, total, page, size)
}

// Create: POST /api/customer
func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	type createReq struct {
		Name    string `json:"name"`
		Phone   string `json:"phone"`
		Email   string `json:"email"`
		Address string `json:"address"`
	}
	var req createReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.Required("name", req.Name, v)
	validation.Required("phone", req.Phone, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	c := models.Customer{
		Name:     strings.TrimSpace(req.Name),
		Phone:    strings.TrimSpace(req.Phone),
		Email:    strings.TrimSpace(req.Email),
		Address:  req.Address,
		DealerID: dealerScope(h.DB, r),
	}
	if err := h.DB.Create(&c).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_create_customer", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, c)
}
