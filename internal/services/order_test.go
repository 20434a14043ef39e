package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/evmco/dealer-backoffice/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupOrderTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.Dealer{}, &models.Customer{}, &models.VehicleType{}, &models.VehicleTypeDetail{}, &models.Quote{}, &models.QuotationDetail{}, &models.PaymentPlan{}, &models.Order{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

var seedSeq int

// seedQuote inserts a customer, a variant and a quote with one line in the
// given status.
func seedQuote(t *testing.T, db *gorm.DB, status models.QuoteStatus) models.Quote {
	t.Helper()
	customer := models.Customer{Name: "Nguyen Van A", Phone: "0900000001", DealerID: 1}
	if err := db.Create(&customer).Error; err != nil {
		t.Fatalf("customer: %v", err)
	}
	seedSeq++
	vt := models.VehicleType{Name: fmt.Sprintf("Sedan-X %s %d", t.Name(), seedSeq)}
	if err := db.Create(&vt).Error; err != nil {
		t.Fatalf("vehicle type: %v", err)
	}
	detail := models.VehicleTypeDetail{VehicleTypeID: vt.ID, Version: "Version A", Color: "Red", UnitPrice: 25000}
	if err := db.Create(&detail).Error; err != nil {
		t.Fatalf("vehicle detail: %v", err)
	}
	quote := models.Quote{CustomerID: customer.ID, DealerID: 1, Status: status}
	if err := db.Create(&quote).Error; err != nil {
		t.Fatalf("quote: %v", err)
	}
	line := models.QuotationDetail{QuoteID: quote.ID, VehicleTypeDetailID: detail.ID, Quantity: 2, RegistrationTax: 500}
	if err := db.Create(&line).Error; err != nil {
		t.Fatalf("line: %v", err)
	}
	return quote
}

func TestConvertFromQuoteFullPayment(t *testing.T) {
	db := setupOrderTestDB(t)
	quote := seedQuote(t, db, models.QuoteStatusProcessing)
	svc := NewOrderService(db, NewQuoteService())

	order, err := svc.ConvertFromQuote(ConvertInput{QuoteID: quote.ID, PaymentType: models.PaymentFull, PaymentPlanID: 99, Notes: "deliver in June"})
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if order.PaymentPlanID != 0 {
		t.Fatalf("full payment must store plan 0, got %d", order.PaymentPlanID)
	}
	if order.Number == "" {
		t.Fatalf("expected generated order number")
	}
	if want := 2*25000.0 + 500; order.TotalAmount != want {
		t.Fatalf("order total = %v, want %v", order.TotalAmount, want)
	}
	var reloaded models.Quote
	if err := db.First(&reloaded, quote.ID).Error; err != nil {
		t.Fatalf("reload quote: %v", err)
	}
	if reloaded.Status != models.QuoteStatusOrdered {
		t.Fatalf("quote status = %s, want ORDERED", reloaded.Status)
	}
}

func TestConvertFromQuoteInstallment(t *testing.T) {
	db := setupOrderTestDB(t)
	quote := seedQuote(t, db, models.QuoteStatusProcessing)
	svc := NewOrderService(db, NewQuoteService())

	// Missing plan id rejected before any write
	if _, err := svc.ConvertFromQuote(ConvertInput{QuoteID: quote.ID, PaymentType: models.PaymentInstallment}); !errors.Is(err, ErrPaymentPlanRequired) {
		t.Fatalf("expected ErrPaymentPlanRequired got %v", err)
	}
	// Unknown plan rejected and the quote stays PROCESSING
	if _, err := svc.ConvertFromQuote(ConvertInput{QuoteID: quote.ID, PaymentType: models.PaymentInstallment, PaymentPlanID: 1234}); !errors.Is(err, ErrUnknownPaymentPlan) {
		t.Fatalf("expected ErrUnknownPaymentPlan got %v", err)
	}
	var reloaded models.Quote
	if err := db.First(&reloaded, quote.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Status != models.QuoteStatusProcessing {
		t.Fatalf("failed conversion must not change status, got %s", reloaded.Status)
	}
	var orders int64
	db.Model(&models.Order{}).Count(&orders)
	if orders != 0 {
		t.Fatalf("failed conversion must not create orders, got %d", orders)
	}

	plan := models.PaymentPlan{Name: "24 months", Months: 24, InterestRate: 0.06}
	if err := db.Create(&plan).Error; err != nil {
		t.Fatalf("plan: %v", err)
	}
	order, err := svc.ConvertFromQuote(ConvertInput{QuoteID: quote.ID, PaymentType: models.PaymentInstallment, PaymentPlanID: plan.ID})
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if order.PaymentPlanID != plan.ID {
		t.Fatalf("order plan = %d, want %d", order.PaymentPlanID, plan.ID)
	}
}

func TestConvertFromQuoteStatusGuards(t *testing.T) {
	db := setupOrderTestDB(t)
	svc := NewOrderService(db, NewQuoteService())

	for _, status := range []models.QuoteStatus{models.QuoteStatusCreate, models.QuoteStatusOrdered, models.QuoteStatusRejected} {
		quote := seedQuote(t, db, status)
		if _, err := svc.ConvertFromQuote(ConvertInput{QuoteID: quote.ID, PaymentType: models.PaymentFull}); !errors.Is(err, ErrQuoteNotConvertible) {
			t.Errorf("status %s: expected ErrQuoteNotConvertible got %v", status, err)
		}
	}
	if _, err := svc.ConvertFromQuote(ConvertInput{QuoteID: 9999, PaymentType: models.PaymentFull}); !errors.Is(err, ErrQuoteNotFound) {
		t.Fatalf("expected ErrQuoteNotFound got %v", err)
	}
}
