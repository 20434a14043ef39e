package client

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
)

// Lifecycle guards status changes of one loaded quote. Every precondition
// that can be decided locally (self-transition, terminal status, installment
// without a plan) is rejected before any request is issued; on a remote
// failure the in-memory quote keeps its prior status.
type Lifecycle struct {
	api   *Client
	quote Quote
}

func NewLifecycle(api *Client, quote Quote) *Lifecycle {
	return &Lifecycle{api: api, quote: quote}
}

// Quote returns the current in-memory quote.
func (l *Lifecycle) Quote() Quote { return l.quote }

// CanEdit reports whether full edits are still offered (status CREATE only).
func (l *Lifecycle) CanEdit() bool { return l.quote.Status == QuoteStatusCreate }

// CanConvert reports whether convert-to-order is offered. Conversion needs a
// worked quote: not CREATE, not terminal, which leaves PROCESSING.
func (l *Lifecycle) CanConvert() bool { return l.quote.Status == QuoteStatusProcessing }

// UpdateStatus requests a transition to newStatus.
func (l *Lifecycle) UpdateStatus(ctx context.Context, newStatus QuoteStatus) error {
	if newStatus == l.quote.Status {
		return validationErr("status", "already_current")
	}
	if l.quote.Status.Terminal() {
		return validationErr("status", "terminal")
	}
	path := "/quote/" + strconv.FormatUint(uint64(l.quote.ID), 10) + "/" + string(newStatus)
	if _, err := l.api.do(ctx, http.MethodPatch, path, nil, nil); err != nil {
		return err
	}
	l.quote.Status = newStatus
	return nil
}

// ConvertRequest is the input to ConvertToOrder.
type ConvertRequest struct {
	PaymentType   PaymentType
	PaymentPlanID uint
	Notes         string
}

type orderFromQuoteRequest struct {
	CustomerID    uint   `json:"customerId"`
	QuoteID       uint   `json:"quoteId"`
	PaymentType   string `json:"paymentType"`
	PaymentPlanID uint   `json:"paymentPlanId"`
	Notes         string `json:"notes"`
}

// ConvertToOrder turns the quote into an order via the transactional
// conversion endpoint. INSTALLMENT requires a positive payment plan id;
// FULL_PAYMENT always sends 0.
func (l *Lifecycle) ConvertToOrder(ctx context.Context, req ConvertRequest) (*Order, error) {
	if !l.CanConvert() {
		return nil, validationErr("status", "not_convertible")
	}
	switch req.PaymentType {
	case PaymentInstallment:
		if req.PaymentPlanID == 0 {
			return nil, validationErr("paymentPlanId", "required")
		}
	case PaymentFull:
		req.PaymentPlanID = 0
	default:
		return nil, validationErr("paymentType", "invalid")
	}
	body := orderFromQuoteRequest{
		CustomerID:    l.quote.CustomerID,
		QuoteID:       l.quote.ID,
		PaymentType:   string(req.PaymentType),
		PaymentPlanID: req.PaymentPlanID,
		Notes:         req.Notes,
	}
	raw, err := l.api.do(ctx, http.MethodPost, "/order/from-quote", nil, body)
	if err != nil {
		return nil, err
	}
	var order Order
	if err := decodeItem(raw, &order); err != nil {
		return nil, fmt.Errorf("decode order: %w", err)
	}
	l.quote.Status = QuoteStatusOrdered
	return &order, nil
}
