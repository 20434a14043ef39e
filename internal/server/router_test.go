package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/evmco/dealer-backoffice/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupRouterTest(t *testing.T) (*gorm.DB, http.Handler) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.Dealer{}, &models.User{}, &models.Customer{}, &models.VehicleType{}, &models.VehicleTypeDetail{}, &models.Quote{}, &models.QuotationDetail{}, &models.PaymentPlan{}, &models.Order{}, &models.ImportRequest{}, &models.Feedback{}, &models.Promotion{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db, New(db)
}

func seedUser(t *testing.T, db *gorm.DB, email string, role models.Role) models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	dealer := models.Dealer{Name: "Dealer " + email}
	if err := db.Create(&dealer).Error; err != nil {
		t.Fatalf("dealer: %v", err)
	}
	u := models.User{Email: email, Password: string(hash), Role: role, DealerID: dealer.ID, Name: "Test User"}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("user: %v", err)
	}
	return u
}

func login(t *testing.T, h http.Handler, email string) string {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":"secret123"}`, email)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("login: expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Data.Token == "" {
		t.Fatalf("empty token in %s", w.Body.String())
	}
	return resp.Data.Token
}

func TestLoginAndProtectedRoute(t *testing.T) {
	db, h := setupRouterTest(t)
	seedUser(t, db, "staff@dealer.test", models.RoleDealerStaff)
	token := login(t, h, "staff@dealer.test")

	// Without a token the route answers 401.
	req := httptest.NewRequest(http.MethodGet, "/api/quote", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("no token: expected 401 got %d", w.Code)
	}

	// With the token the same route answers 200.
	req = httptest.NewRequest(http.MethodGet, "/api/quote", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("with token: expected 200 got %d body=%s", w.Code, w.Body.String())
	}
}

func TestLoginRejectsBadPassword(t *testing.T) {
	db, h := setupRouterTest(t)
	seedUser(t, db, "staff@dealer.test", models.RoleDealerStaff)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"staff@dealer.test","password":"wrong"}`))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("bad password: expected 401 got %d", w.Code)
	}
}

func TestRoleGateOnRoutes(t *testing.T) {
	db, h := setupRouterTest(t)
	seedUser(t, db, "staff@dealer.test", models.RoleDealerStaff)
	seedUser(t, db, "manager@dealer.test", models.RoleDealerManager)
	staffToken := login(t, h, "staff@dealer.test")
	managerToken := login(t, h, "manager@dealer.test")

	get := func(token, path string) int {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		return w.Code
	}

	// Revenue reports are manager-only among the dealer roles.
	if code := get(staffToken, "/api/report/revenue"); code != http.StatusForbidden {
		t.Fatalf("staff report: expected 403 got %d", code)
	}
	if code := get(managerToken, "/api/report/revenue"); code != http.StatusOK {
		t.Fatalf("manager report: expected 200 got %d", code)
	}

	// Catalog writes belong to manufacturer staff, not dealers.
	req := httptest.NewRequest(http.MethodPost, "/api/vehicle/type", strings.NewReader(`{"name":"SUV-E"}`))
	req.Header.Set("Authorization", "Bearer "+managerToken)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("manager vehicle create: expected 403 got %d", w.Code)
	}
}

func TestDeletedUserTokenRejected(t *testing.T) {
	db, h := setupRouterTest(t)
	u := seedUser(t, db, "staff@dealer.test", models.RoleDealerStaff)
	token := login(t, h, "staff@dealer.test")

	if err := db.Delete(&models.User{}, u.ID).Error; err != nil {
		t.Fatalf("delete user: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/api/quote", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("stale token: expected 401 got %d", w.Code)
	}
}

func TestHealth(t *testing.T) {
	_, h := setupRouterTest(t)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("healthz: expected 200 got %d body=%s", w.Code, w.Body.String())
	}
}
