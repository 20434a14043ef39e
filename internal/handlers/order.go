package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/evmco/dealer-backoffice/internal/httpx"
	"github.com/evmco/dealer-backoffice/internal/models"
	"github.com/evmco/dealer-backoffice/internal/services"
	"github.com/evmco/dealer-backoffice/internal/validation"

	"gorm.io/gorm"
)

type OrderHandler struct {
	DB  *gorm.DB
	Svc *services.OrderService
}

func NewOrderHandler(db *gorm.DB, svc *services.OrderService) *OrderHandler {
	return &OrderHandler{DB: db, Svc: svc}
}

// FromQuote: POST /api/order/from-quote. Single transactional conversion of
// a PROCESSING quote into an order.
func (h *OrderHandler) FromQuote(w http.ResponseWriter, r *http.Request) {
	type convertReq struct {
		QuoteID       uint   `json:"quoteId"`
		CustomerID    uint   `json:"customerId"`
		PaymentType   string `json:"paymentType"`
		PaymentPlanID uint   `json:"paymentPlanId"`
		Notes         string `json:"notes"`
	}
	var req convertReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.RequiredID("quoteId", req.QuoteID, v)
	validation.Required("paymentType", req.PaymentType, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	if !models.PaymentType(req.PaymentType).Valid() {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_payment_type", nil)
		return
	}
	order, err := h.Svc.ConvertFromQuote(services.ConvertInput{
		QuoteID:       req.QuoteID,
		PaymentType:   models.PaymentType(req.PaymentType),
		PaymentPlanID: req.PaymentPlanID,
		Notes:         req.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrQuoteNotFound):
			httpx.JSONError(w, http.StatusNotFound, "quote_not_found", nil)
		case errors.Is(err, services.ErrQuoteNotConvertible):
			httpx.JSONError(w, http.StatusConflict, "quote_not_convertible", nil)
		case errors.Is(err, services.ErrPaymentPlanRequired):
			httpx.JSONError(w, http.StatusBadRequest, "payment_plan_required", nil)
		case errors.Is(err, services.ErrUnknownPaymentPlan):
			httpx.JSONError(w, http.StatusBadRequest, "unknown_payment_plan", nil)
		default:
			httpx.JSONError(w, http.StatusInternalServerError, "failed_to_convert_quote", nil)
		}
		return
	}
	httpx.JSON(w, http.StatusCreated, order)
}

// List: GET /api/order
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	page, size, offset := pageParams(r)
	dbq := h.DB.Model(&models.Order{})
	if dealerID := dealerScope(h.DB, r); dealerID != 0 {
		dbq = dbq.Where("dealer_id = ?", dealerID)
	}
	var total int64
	dbq.Count(&total)
	var orders []models.Order
	if err := dbq.Order("id desc").Limit(size).Offset(offset).Find(&orders).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_orders", nil)
		return
	}
	httpx.JSONList(w, http.StatusOK, orders, total, page, size)
}

// ListPaymentPlans: GET /api/payment-plans
func (h *OrderHandler) ListPaymentPlans(w http.ResponseWriter, r *http.Request) {
	page, size, offset := pageParams(r)
	var total int64
	h.DB.Model(&models.PaymentPlan{}).Count(&total)
	var plans []models.PaymentPlan
	if err := h.DB.Order("months").Limit(size).Offset(offset).Find(&plans).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_payment_plans", nil)
		return
	}
	httpx.JSONList(w, http.StatusOK, plans, total, page, size)
}
