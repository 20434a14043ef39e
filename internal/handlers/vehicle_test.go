package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/evmco/dealer-backoffice/internal/models"
)

func TestVehicleTypeCreateAndList(t *testing.T) {
	db := setupHandlerTestDB(t)
	h := NewVehicleHandler(db)

	req := httptest.NewRequest(http.MethodPost, "/api/vehicle/type", strings.NewReader(`{"name":"SUV-E","description":"Electric SUV"}`))
	w := httptest.NewRecorder()
	h.CreateType(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: expected 201 got %d body=%s", w.Code, w.Body.String())
	}

	req = httptest.NewRequest(http.MethodPost, "/api/vehicle/type", strings.NewReader(`{"name":""}`))
	w = httptest.NewRecorder()
	h.CreateType(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("empty name: expected 400 got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/vehicle/type", nil)
	w = httptest.NewRecorder()
	h.ListTypes(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("list: expected 200 got %d", w.Code)
	}
	var resp struct {
		Data struct {
			Items []models.VehicleType `json:"items"`
			Total int64                `json:"total"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Data.Total != 1 || len(resp.Data.Items) != 1 || resp.Data.Items[0].Name != "SUV-E" {
		t.Fatalf("unexpected list payload: %s", w.Body.String())
	}
}

func TestVehicleDetailListFilter(t *testing.T) {
	db := setupHandlerTestDB(t)
	h := NewVehicleHandler(db)

	a := models.VehicleType{Name: "Sedan-X"}
	b := models.VehicleType{Name: "SUV-E"}
	if err := db.Create(&a).Error; err != nil {
		t.Fatalf("type a: %v", err)
	}
	if err := db.Create(&b).Error; err != nil {
		t.Fatalf("type b: %v", err)
	}
	for i, vtID := range []uint{a.ID, a.ID, b.ID} {
		d := models.VehicleTypeDetail{VehicleTypeID: vtID, Version: fmt.Sprintf("V%d", i), Color: "Red", UnitPrice: 1000}
		if err := db.Create(&d).Error; err != nil {
			t.Fatalf("detail %d: %v", i, err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/vehicle/type/detail?vehicleTypeId=%d", a.ID), nil)
	w := httptest.NewRecorder()
	h.ListDetails(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("list: expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		Data struct {
			Items []models.VehicleTypeDetail `json:"items"`
			Total int64                      `json:"total"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Data.Total != 2 {
		t.Fatalf("total = %d, want 2", resp.Data.Total)
	}
	for _, d := range resp.Data.Items {
		if d.VehicleTypeID != a.ID {
			t.Fatalf("detail %d belongs to type %d, filter leaked", d.ID, d.VehicleTypeID)
		}
	}

	req = httptest.NewRequest(http.MethodGet, "/api/vehicle/type/detail?vehicleTypeId=zero", nil)
	w = httptest.NewRecorder()
	h.ListDetails(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad filter: expected 400 got %d", w.Code)
	}
}

func TestVehicleDetailCreateRequiresKnownType(t *testing.T) {
	db := setupHandlerTestDB(t)
	h := NewVehicleHandler(db)

	req := httptest.NewRequest(http.MethodPost, "/api/vehicle/type/detail", strings.NewReader(`{"vehicleTypeId":99,"version":"V1","color":"Blue","unitPrice":1500}`))
	w := httptest.NewRecorder()
	h.CreateDetail(w, req)
	if w.Code != http.StatusBadRequest || !strings.Contains(w.Body.String(), "unknown_vehicle_type") {
		t.Fatalf("expected 400 unknown_vehicle_type got %d body=%s", w.Code, w.Body.String())
	}
}
