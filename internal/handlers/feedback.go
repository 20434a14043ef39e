package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/evmco/dealer-backoffice/internal/httpx"
	"github.com/evmco/dealer-backoffice/internal/models"
	"github.com/evmco/dealer-backoffice/internal/validation"

	"gorm.io/gorm"
)

type FeedbackHandler struct{ DB *gorm.DB }

func NewFeedbackHandler(db *gorm.DB) *FeedbackHandler { return &FeedbackHandler{DB: db} }

// List: GET /api/feedback
func (h *FeedbackHandler) List(w http.ResponseWriter, r *http.Request) {
	page, size, offset := pageParams(r)
	dbq := h.DB.Model(&models.Feedback{})
	if st := r.URL.Query().Get("status"); st != "" {
		dbq = dbq.Where("status = ?", st)
	}
	var total int64
	dbq.Count(&total)
	var items []models.Feedback
	if err := dbq.Order("id desc").Limit(size).Offset(offset).Find(&items).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_feedback", nil)
		return
	}
	httpx.JSONList(w, http.StatusOK, items, total, page, size)
}

// Create: POST /api/feedback
func (h *FeedbackHandler) Create(w http.ResponseWriter, r *http.Request) {
	type createReq struct {
		CustomerID uint   `json:"customerId"`
		Content    string `json:"content"`
	}
	var req createReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.RequiredID("customerId", req.CustomerID, v)
	validation.Required("content", req.Content, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	var customer models.Customer
	if err := h.DB.First(&customer, req.CustomerID).Error; err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "unknown_customer", nil)
		return
	}
	fb := models.Feedback{
		CustomerID: req.CustomerID,
		Content:    strings.TrimSpace(req.Content),
		Status:     models.FeedbackOpen,
	}
	if err := h.DB.Create(&fb).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_create_feedback", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, fb)
}

// Respond: POST /api/feedback/{id}/response
func (h *FeedbackHandler) Respond(w http.ResponseWriter, r *http.Request) {
	id := pathID(r, "id")
	if id == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	type respondReq struct {
		Response string `json:"response"`
	}
	var req respondReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.Required("response", req.Response, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	var fb models.Feedback
	if err := h.DB.First(&fb, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_feedback", nil)
		return
	}
	updates := map[string]any{"response": strings.TrimSpace(req.Response), "status": models.FeedbackResponded}
	if err := h.DB.Model(&fb).Updates(updates).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_respond_feedback", nil)
		return
	}
	fb.Response = req.Response
	fb.Status = models.FeedbackResponded
	httpx.JSON(w, http.StatusOK, fb)
}
