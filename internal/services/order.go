package services

import (
	"errors"
	"fmt"

	"github.com/evmco/dealer-backoffice/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderService owns the quote-to-order conversion. The original flow issued
// two sequential remote calls (status update, then order creation) and could
// leave a quote ORDERED without an order; here both writes happen in one DB
// transaction so no partial state is ever observable.
type OrderService struct {
	DB     *gorm.DB
	Quotes *QuoteService
}

func NewOrderService(db *gorm.DB, quotes *QuoteService) *OrderService {
	return &OrderService{DB: db, Quotes: quotes}
}

var (
	ErrQuoteNotFound       = errors.New("quote not found")
	ErrQuoteNotConvertible = errors.New("quote is not in a convertible status")
	ErrPaymentPlanRequired = errors.New("installment payment requires a payment plan")
	ErrUnknownPaymentPlan  = errors.New("payment plan not found")
)

// ConvertInput is the validated payload of POST /order/from-quote.
type ConvertInput struct {
	QuoteID       uint
	PaymentType   models.PaymentType
	PaymentPlanID uint
	Notes         string
}

// ConvertFromQuote turns a PROCESSING quote into an order. Conversion is not
// offered from CREATE (the quote has not been worked yet) and terminal
// statuses refuse. FULL_PAYMENT always stores PaymentPlanID 0; INSTALLMENT
// requires an existing plan.
func (s *OrderService) ConvertFromQuote(in ConvertInput) (*models.Order, error) {
	if !in.PaymentType.Valid() {
		return nil, fmt.Errorf("invalid payment type %q", in.PaymentType)
	}
	switch in.PaymentType {
	case models.PaymentInstallment:
		if in.PaymentPlanID == 0 {
			return nil, ErrPaymentPlanRequired
		}
	case models.PaymentFull:
		in.PaymentPlanID = 0
	}

	var order *models.Order
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var quote models.Quote
		if err := tx.Preload("Details.VehicleTypeDetail").First(&quote, in.QuoteID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrQuoteNotFound
			}
			return err
		}
		if quote.Status != models.QuoteStatusProcessing {
			return ErrQuoteNotConvertible
		}
		if in.PaymentPlanID != 0 {
			var plan models.PaymentPlan
			if err := tx.First(&plan, in.PaymentPlanID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrUnknownPaymentPlan
				}
				return err
			}
		}
		if err := tx.Model(&quote).Update("status", models.QuoteStatusOrdered).Error; err != nil {
			return err
		}
		o := models.Order{
			Number:        uuid.NewString(),
			CustomerID:    quote.CustomerID,
			QuoteID:       quote.ID,
			DealerID:      quote.DealerID,
			PaymentType:   in.PaymentType,
			PaymentPlanID: in.PaymentPlanID,
			Notes:         in.Notes,
			TotalAmount:   s.Quotes.ComputeTotal(&quote),
		}
		if err := tx.Create(&o).Error; err != nil {
			return err
		}
		order = &o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}
