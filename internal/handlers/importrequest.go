package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/evmco/dealer-backoffice/internal/httpx"
	"github.com/evmco/dealer-backoffice/internal/models"
	"github.com/evmco/dealer-backoffice/internal/validation"

	"gorm.io/gorm"
)

// ImportRequestHandler serves the dealer-to-manufacturer stock request flow.
type ImportRequestHandler struct{ DB *gorm.DB }

func NewImportRequestHandler(db *gorm.DB) *ImportRequestHandler {
	return &ImportRequestHandler{DB: db}
}

// List: GET /api/import-request. Dealer roles see their own requests; EVM
// roles see all of them.
func (h *ImportRequestHandler) List(w http.ResponseWriter, r *http.Request) {
	page, size, offset := pageParams(r)
	dbq := h.DB.Model(&models.ImportRequest{})
	if dealerID := dealerScope(h.DB, r); dealerID != 0 {
		dbq = dbq.Where("dealer_id = ?", dealerID)
	}
	if st := r.URL.Query().Get("status"); st != "" {
		if !models.ImportStatus(st).Valid() {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_status", nil)
			return
		}
		dbq = dbq.Where("status = ?", st)
	}
	var total int64
	dbq.Count(&total)
	var requests []models.ImportRequest
	if err := dbq.Order("id desc").Limit(size).Offset(offset).Find(&requests).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_import_requests", nil)
		return
	}
	httpx.JSONList(w, http.StatusOK, requests, total, page, size)
}

// Create: POST /api/import-request
func (h *ImportRequestHandler) Create(w http.ResponseWriter, r *http.Request) {
	type createReq struct {
		VehicleTypeDetailID uint   `json:"vehicleTypeDetailId"`
		Quantity            int    `json:"quantity"`
		Note                string `json:"note"`
	}
	var req createReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.RequiredID("vehicleTypeDetailId", req.VehicleTypeDetailID, v)
	validation.PositiveInt("quantity", req.Quantity, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	var variant models.VehicleTypeDetail
	if err := h.DB.First(&variant, req.VehicleTypeDetailID).Error; err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "unknown_vehicle_detail", nil)
		return
	}
	ir := models.ImportRequest{
		DealerID:            dealerScope(h.DB, r),
		VehicleTypeDetailID: req.VehicleTypeDetailID,
		Quantity:            req.Quantity,
		Status:              models.ImportStatusPending,
		Note:                req.Note,
	}
	if err := h.DB.Create(&ir).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_create_import_request", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, ir)
}

// UpdateStatus: PATCH /api/import-request/{id}/{status}. PENDING requests may
// move to APPROVED or REJECTED, both terminal.
func (h *ImportRequestHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := pathID(r, "id")
	if id == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	target := models.ImportStatus(r.PathValue("status"))
	if !target.Valid() || target == models.ImportStatusPending {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_status", nil)
		return
	}
	var ir models.ImportRequest
	if err := h.DB.First(&ir, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_import_request", nil)
		return
	}
	if ir.Status.Terminal() {
		httpx.JSONError(w, http.StatusConflict, "terminal_status", map[string]any{"status": ir.Status})
		return
	}
	if err := h.DB.Model(&ir).Update("status", target).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_update_import_request", nil)
		return
	}
	ir.Status = target
	httpx.JSON(w, http.StatusOK, ir)
}
