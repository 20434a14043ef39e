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

type QuoteHandler struct {
	DB  *gorm.DB
	Svc *services.QuoteService
}

func NewQuoteHandler(db *gorm.DB, svc *services.QuoteService) *QuoteHandler {
	return &QuoteHandler{DB: db, Svc: svc}
}

// quotationDetailRequest mirrors the fixed wire contract of the quote-create
// payload, misspelled field names included.
type quotationDetailRequest struct {
	VehicleTypeDetailID           uint    `json:"vehicleTypeDetailId"`
	Quantity                      int     `json:"quantity"`
	RegistrationTax               float64 `json:"registrationTax"`
	LicensePlateFee               float64 `json:"licensePlateFee"`
	RegistrationFee               float64 `json:"registrartionFee"`
	CompulsoryInsurance           float64 `json:"compulsoryInsurance"`
	MaterialInsurance             float64 `json:"materialInsurance"`
	RoadMaintenanceFee            float64 `json:"roadMaintenanceMees"`
	VehicleRegistrationServiceFee float64 `json:"vehicleRegistrationServiceFee"`
}

type quoteRequest struct {
	CustomerID uint                     `json:"customerId"`
	Status     string                   `json:"status"`
	Details    []quotationDetailRequest `json:"quotationDetailRequestDTOs"`
}

func (h *QuoteHandler) validateQuoteRequest(req *quoteRequest) validation.Violations {
	v := validation.Violations{}
	validation.RequiredID("customerId", req.CustomerID, v)
	if len(req.Details) == 0 {
		v["quotationDetailRequestDTOs"] = "required"
		return v
	}
	for _, d := range req.Details {
		if d.VehicleTypeDetailID == 0 {
			v["vehicleTypeDetailId"] = "required"
		}
		if d.Quantity < 1 {
			v["quantity"] = "must_be_positive"
		}
		for field, val := range map[string]float64{
			"registrationTax":               d.RegistrationTax,
			"licensePlateFee":               d.LicensePlateFee,
			"registrartionFee":              d.RegistrationFee,
			"compulsoryInsurance":           d.CompulsoryInsurance,
			"materialInsurance":             d.MaterialInsurance,
			"roadMaintenanceMees":           d.RoadMaintenanceFee,
			"vehicleRegistrationServiceFee": d.VehicleRegistrationServiceFee,
		} {
			validation.NonNegativeFloat(field, val, v)
		}
	}
	return v
}

// buildDetails resolves the request lines against the catalog. Duplicate
// vehicleTypeDetailId lines stay distinct lines, matching the permissive
// historical behavior.
func (h *QuoteHandler) buildDetails(req *quoteRequest) ([]models.QuotationDetail, error) {
	ids := make([]uint, 0, len(req.Details))
	for _, d := range req.Details {
		ids = append(ids, d.VehicleTypeDetailID)
	}
	var variants []models.VehicleTypeDetail
	if err := h.DB.Where("id IN ?", ids).Find(&variants).Error; err != nil {
		return nil, err
	}
	byID := map[uint]models.VehicleTypeDetail{}
	for _, vt := range variants {
		byID[vt.ID] = vt
	}
	details := make([]models.QuotationDetail, 0, len(req.Details))
	for _, d := range req.Details {
		if _, ok := byID[d.VehicleTypeDetailID]; !ok {
			return nil, gorm.ErrRecordNotFound
		}
		details = append(details, models.QuotationDetail{
			VehicleTypeDetailID:           d.VehicleTypeDetailID,
			Quantity:                      d.Quantity,
			RegistrationTax:               d.RegistrationTax,
			LicensePlateFee:               d.LicensePlateFee,
			RegistrationFee:               d.RegistrationFee,
			CompulsoryInsurance:           d.CompulsoryInsurance,
			MaterialInsurance:             d.MaterialInsurance,
			RoadMaintenanceFee:            d.RoadMaintenanceFee,
			VehicleRegistrationServiceFee: d.VehicleRegistrationServiceFee,
		})
	}
	return details, nil
}

// List: GET /api/quote. Dealer roles only see their dealer's quotes.
func (h *QuoteHandler) List(w http.ResponseWriter, r *http.Request) {
	page, size, offset := pageParams(r)
	dbq := h.DB.Model(&models.Quote{})
	if dealerID := dealerScope(h.DB, r); dealerID != 0 {
		dbq = dbq.Where("dealer_id = ?", dealerID)
	}
	if st := r.URL.Query().Get("status"); st != "" {
		if !models.QuoteStatus(st).Valid() {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_status", nil)
			return
		}
		dbq = dbq.Where("status = ?", st)
	}
	var total int64
	dbq.Count(&total)
	var quotes []models.Quote
	if err := dbq.Preload("Details").Order("id desc").Limit(size).Offset(offset).Find(&quotes).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_quotes", nil)
		return
	}
	httpx.JSONList(w, http.StatusOK, quotes, total, page, size)
}

// Get: GET /api/quote/{id}
func (h *QuoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	quote, ok := h.load(w, r)
	if !ok {
		return
	}
	httpx.JSON(w, http.StatusOK, quote)
}

// Create: POST /api/quote. The status field of the request is ignored: a new
// quote always starts at CREATE.
func (h *QuoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if v := h.validateQuoteRequest(&req); !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	var customer models.Customer
	if err := h.DB.First(&customer, req.CustomerID).Error; err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "unknown_customer", nil)
		return
	}
	details, err := h.buildDetails(&req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusBadRequest, "unknown_vehicle_detail", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_create_quote", nil)
		return
	}
	quote := models.Quote{
		CustomerID: req.CustomerID,
		DealerID:   dealerScope(h.DB, r),
		Status:     models.QuoteStatusCreate,
	}
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&quote).Error; err != nil {
			return err
		}
		for i := range details {
			details[i].QuoteID = quote.ID
		}
		if err := tx.Create(&details).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_create_quote", nil)
		return
	}
	// Reload with variants for the server-computed total.
	if err := h.DB.Preload("Details.VehicleTypeDetail").First(&quote, quote.ID).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_quote", nil)
		return
	}
	quote.TotalAmount = h.Svc.ComputeTotal(&quote)
	h.DB.Model(&models.Quote{}).Where("id = ?", quote.ID).Update("total_amount", quote.TotalAmount)
	httpx.JSON(w, http.StatusCreated, quote)
}

// Update: PUT /api/quote/{id}. Full replacement, only while status = CREATE.
func (h *QuoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	quote, ok := h.load(w, r)
	if !ok {
		return
	}
	if !h.Svc.Editable(quote) {
		httpx.JSONError(w, http.StatusConflict, "quote_not_editable", map[string]any{"status": quote.Status})
		return
	}
	var req quoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if v := h.validateQuoteRequest(&req); !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	details, err := h.buildDetails(&req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusBadRequest, "unknown_vehicle_detail", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_update_quote", nil)
		return
	}
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("quote_id = ?", quote.ID).Delete(&models.QuotationDetail{}).Error; err != nil {
			return err
		}
		for i := range details {
			details[i].QuoteID = quote.ID
		}
		if err := tx.Create(&details).Error; err != nil {
			return err
		}
		return tx.Model(quote).Updates(map[string]any{"customer_id": req.CustomerID}).Error
	})
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_update_quote", nil)
		return
	}
	if err := h.DB.Preload("Details.VehicleTypeDetail").First(quote, quote.ID).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_quote", nil)
		return
	}
	quote.TotalAmount = h.Svc.ComputeTotal(quote)
	h.DB.Model(&models.Quote{}).Where("id = ?", quote.ID).Update("total_amount", quote.TotalAmount)
	httpx.JSON(w, http.StatusOK, quote)
}

// UpdateStatus: PATCH /api/quote/{id}/{status}. Transitions to ORDERED are
// reserved for the order-conversion endpoint so a quote can never become
// ORDERED without its order existing.
func (h *QuoteHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	quote, ok := h.load(w, r)
	if !ok {
		return
	}
	target := models.QuoteStatus(r.PathValue("status"))
	if !target.Valid() {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_status", nil)
		return
	}
	if target == models.QuoteStatusOrdered {
		httpx.JSONError(w, http.StatusBadRequest, "use_order_conversion", nil)
		return
	}
	if err := h.Svc.CheckTransition(quote.Status, target); err != nil {
		switch {
		case errors.Is(err, services.ErrSameStatus):
			httpx.JSONError(w, http.StatusBadRequest, "same_status", nil)
		case errors.Is(err, services.ErrTerminalStatus):
			httpx.JSONError(w, http.StatusConflict, "terminal_status", map[string]any{"status": quote.Status})
		default:
			httpx.JSONError(w, http.StatusConflict, "invalid_transition", map[string]any{"from": quote.Status, "to": target})
		}
		return
	}
	if err := h.DB.Model(quote).Update("status", target).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_update_status", nil)
		return
	}
	quote.Status = target
	httpx.JSON(w, http.StatusOK, quote)
}

// Delete: DELETE /api/quote/{id}. Only while the quote is non-terminal.
func (h *QuoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	quote, ok := h.load(w, r)
	if !ok {
		return
	}
	if !h.Svc.Deletable(quote) {
		httpx.JSONError(w, http.StatusConflict, "terminal_status", map[string]any{"status": quote.Status})
		return
	}
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("quote_id = ?", quote.ID).Delete(&models.QuotationDetail{}).Error; err != nil {
			return err
		}
		return tx.Delete(quote).Error
	})
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_delete_quote", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"deleted": quote.ID})
}

// load fetches the quote of the {id} path value, enforcing dealer scope, and
// writes the error response itself when the quote is unavailable.
func (h *QuoteHandler) load(w http.ResponseWriter, r *http.Request) (*models.Quote, bool) {
	id := pathID(r, "id")
	if id == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return nil, false
	}
	var quote models.Quote
	if err := h.DB.Preload("Details.VehicleTypeDetail").First(&quote, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return nil, false
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_quote", nil)
		return nil, false
	}
	if dealerID := dealerScope(h.DB, r); dealerID != 0 && quote.DealerID != dealerID {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return nil, false
	}
	return &quote, true
}
