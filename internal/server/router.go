package server

import (
	"context"
	"net/http"

	"github.com/evmco/dealer-backoffice/internal/auth"
	"github.com/evmco/dealer-backoffice/internal/gate"
	"github.com/evmco/dealer-backoffice/internal/handlers"
	"github.com/evmco/dealer-backoffice/internal/httpx"
	"github.com/evmco/dealer-backoffice/internal/models"
	"github.com/evmco/dealer-backoffice/internal/services"

	"gorm.io/gorm"
)

// New constructs the root http.Handler with all routes and middlewares applied.
func New(db *gorm.DB) http.Handler {
	mux := http.NewServeMux()
	g := gate.Default()

	// Configure a user verifier so RequireAuth can ensure the user still exists.
	auth.SetUserVerifier(func(_ context.Context, uid uint) bool {
		var count int64
		if err := db.Model(&models.User{}).Where("id = ?", uid).Limit(1).Count(&count).Error; err != nil {
			return false
		}
		return count > 0
	})

	// protect chains token auth and the role gate in front of a handler.
	protect := func(perm gate.Permission, h http.HandlerFunc) http.Handler {
		return auth.Middleware(auth.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, _ := auth.IdentityFromContext(r.Context())
			if err := g.Authorize(id.Role, perm); err != nil {
				httpx.JSONError(w, http.StatusForbidden, "forbidden", map[string]string{"permission": string(perm)})
				return
			}
			h(w, r)
		})))
	}

	// --- Health endpoints ---
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		// Lightweight DB check (SELECT 1)
		if err := db.Exec("SELECT 1").Error; err != nil {
			httpx.JSONError(w, http.StatusServiceUnavailable, "degraded", nil)
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Auth
	ah := handlers.NewAuthHandler(db)
	mux.HandleFunc("POST /api/auth/login", ah.Login)

	// Vehicle catalog
	vh := handlers.NewVehicleHandler(db)
	mux.Handle("GET /api/vehicle/type", protect("vehicle:list", vh.ListTypes))
	mux.Handle("POST /api/vehicle/type", protect("vehicle:create", vh.CreateType))
	mux.Handle("GET /api/vehicle/type/detail", protect("vehicle:list", vh.ListDetails))
	mux.Handle("POST /api/vehicle/type/detail", protect("vehicle:create", vh.CreateDetail))

	// Customers
	ch := handlers.NewCustomerHandler(db)
	mux.Handle("GET /api/customers", protect("customer:list", ch.List))
	mux.Handle("POST /api/customer", protect("customer:create", ch.Create))

	// Quotes
	quoteSvc := services.NewQuoteService()
	qh := handlers.NewQuoteHandler(db, quoteSvc)
	mux.Handle("GET /api/quote", protect("quote:list", qh.List))
	mux.Handle("GET /api/quote/{id}", protect("quote:view", qh.Get))
	mux.Handle("POST /api/quote", protect("quote:create", qh.Create))
	mux.Handle("PUT /api/quote/{id}", protect("quote:update", qh.Update))
	mux.Handle("PATCH /api/quote/{id}/{status}", protect("quote:update", qh.UpdateStatus))
	mux.Handle("DELETE /api/quote/{id}", protect("quote:delete", qh.Delete))

	// Orders
	orderSvc := services.NewOrderService(db, quoteSvc)
	oh := handlers.NewOrderHandler(db, orderSvc)
	mux.Handle("POST /api/order/from-quote", protect("order:create", oh.FromQuote))
	mux.Handle("GET /api/order", protect("order:list", oh.List))
	mux.Handle("GET /api/payment-plans", protect("order:list", oh.ListPaymentPlans))

	// Import requests
	irh := handlers.NewImportRequestHandler(db)
	mux.Handle("GET /api/import-request", protect("import:list", irh.List))
	mux.Handle("POST /api/import-request", protect("import:create", irh.Create))
	mux.Handle("PATCH /api/import-request/{id}/{status}", protect("import:approve", irh.UpdateStatus))

	// Feedback
	fh := handlers.NewFeedbackHandler(db)
	mux.Handle("GET /api/feedback", protect("feedback:list", fh.List))
	mux.Handle("POST /api/feedback", protect("feedback:create", fh.Create))
	mux.Handle("POST /api/feedback/{id}/response", protect("feedback:respond", fh.Respond))

	// Promotions
	ph := handlers.NewPromotionHandler(db)
	mux.Handle("GET /api/promotion", protect("promotion:list", ph.List))
	mux.Handle("POST /api/promotion", protect("promotion:create", ph.Create))

	// Reports
	rh := handlers.NewReportHandler(db)
	mux.Handle("GET /api/report/revenue", protect("report:view", rh.Revenue))

	return withRecover(mux)
}

func withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
