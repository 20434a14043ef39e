package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/evmco/dealer-backoffice/internal/httpx"
	"github.com/evmco/dealer-backoffice/internal/models"
	"github.com/evmco/dealer-backoffice/internal/validation"

	"gorm.io/gorm"
)

// VehicleHandler serves the two-level catalog: types and their details.
type VehicleHandler struct{ DB *gorm.DB }

func NewVehicleHandler(db *gorm.DB) *VehicleHandler { return &VehicleHandler{DB: db} }

// ListTypes: GET /api/vehicle/type
func (h *VehicleHandler) ListTypes(w http.ResponseWriter, r *http.Request) {
	page, size, offset := pageParams(r)
	var total int64
	h.DB.Model(&models.VehicleType{}).Count(&total)
	var types []models.VehicleType
	if err := h.DB.Order("id").Limit(size).Offset(offset).Find(&types).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_vehicle_types", nil)
		return
	}
	httpx.JSONList(w, http.StatusOK, types, total, page, size)
}

// CreateType: POST /api/vehicle/type
func (h *VehicleHandler) CreateType(w http.ResponseWriter, r *http.Request) {
	type createReq struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Image       string `json:"image"`
	}
	var req createReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.Required("name", req.Name, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	vt := models.VehicleType{Name: strings.TrimSpace(req.Name), Description: req.Description, Image: req.Image}
	if err := h.DB.Create(&vt).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_create_vehicle_type", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, vt)
}

// ListDetails: GET /api/vehicle/type/detail, optionally scoped by vehicleTypeId.
func (h *VehicleHandler) ListDetails(w http.ResponseWriter, r *http.Request) {
	page, size, offset := pageParams(r)
	dbq := h.DB.Model(&models.VehicleTypeDetail{})
	if v := r.URL.Query().Get("vehicleTypeId"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil || id == 0 {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_vehicle_type_id", nil)
			return
		}
		dbq = dbq.Where("vehicle_type_id = ?", uint(id))
	}
	var total int64
	dbq.Count(&total)
	var details []models.VehicleTypeDetail
	if err := dbq.Order("id").Limit(size).Offset(offset).Find(&details).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_vehicle_details", nil)
		return
	}
	httpx.JSONList(w, http.StatusOK, details, total, page, size)
}

// CreateDetail: POST /api/vehicle/type/detail
func (h *VehicleHandler) CreateDetail(w http.ResponseWriter, r *http.Request) {
	type createReq struct {
		VehicleTypeID uint    `json:"vehicleTypeId"`
		Version       string  `json:"version"`
		Color         string  `json:"color"`
		Configuration string  `json:"configuration"`
		Features      string  `json:"features"`
		Image         string  `json:"image"`
		UnitPrice     float64 `json:"unitPrice"`
	}
	var req createReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.RequiredID("vehicleTypeId", req.VehicleTypeID, v)
	validation.Required("version", req.Version, v)
	validation.Required("color", req.Color, v)
	validation.NonNegativeFloat("unitPrice", req.UnitPrice, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	var vt models.VehicleType
	if err := h.DB.First(&vt, req.VehicleTypeID).Error; err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "unknown_vehicle_type", nil)
		return
	}
	d := models.VehicleTypeDetail{
		VehicleTypeID: req.VehicleTypeID,
		Version:       req.Version,
		Color:         req.Color,
		Configuration: req.Configuration,
		Features:      req.Features,
		Image:         req.Image,
		UnitPrice:     req.UnitPrice,
	}
	if err := h.DB.Create(&d).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_create_vehicle_detail", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, d)
}
