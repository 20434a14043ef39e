package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/evmco/dealer-backoffice/internal/auth"
	"github.com/evmco/dealer-backoffice/internal/httpx"
	"github.com/evmco/dealer-backoffice/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthHandler struct{ DB *gorm.DB }

func NewAuthHandler(db *gorm.DB) *AuthHandler { return &AuthHandler{DB: db} }

// Login: POST /api/auth/login. Exchanges email+password for a bearer token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	type loginReq struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	var req loginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"email": "required", "password": "required"})
		return
	}
	var user models.User
	if err := h.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		httpx.JSONError(w, http.StatusUnauthorized, "invalid_credentials", nil)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		httpx.JSONError(w, http.StatusUnauthorized, "invalid_credentials", nil)
		return
	}
	token := auth.IssueToken(user.ID, string(user.Role))
	httpx.JSON(w, http.StatusOK, map[string]any{
		"token":    token,
		"role":     user.Role,
		"userId":   user.ID,
		"dealerId": user.DealerID,
	})
}
