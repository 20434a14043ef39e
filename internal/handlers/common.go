package handlers

import (
	"net/http"
	"strconv"

	"github.com/evmco/dealer-backoffice/internal/auth"
	"github.com/evmco/dealer-backoffice/internal/models"

	"gorm.io/gorm"
)

// pageParams reads ?page&size with defaults (page 1, size 20, capped at 200).
func pageParams(r *http.Request) (page, size, offset int) {
	page, size = 1, 20
	if v := r.URL.Query().Get("size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			size = n
		}
	}
	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 1 {
			page = n
		}
	}
	return page, size, (page - 1) * size
}

// pathID parses a numeric path value, returning 0 when absent or invalid.
func pathID(r *http.Request, name string) uint {
	v := r.PathValue(name)
	if v == "" {
		return 0
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0
	}
	return uint(n)
}

// dealerScope resolves the dealer id of the authenticated user. Manufacturer
// roles (and missing identities, which RequireAuth already excluded) get 0,
// meaning "no dealer restriction".
func dealerScope(db *gorm.DB, r *http.Request) uint {
	id, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		return 0
	}
	if id.Role != string(models.RoleDealerStaff) && id.Role != string(models.RoleDealerManager) {
		return 0
	}
	var user models.User
	if err := db.Select("dealer_id").First(&user, id.UserID).Error; err != nil {
		return 0
	}
	return user.DealerID
}
