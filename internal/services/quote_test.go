package services

import (
	"errors"
	"testing"

	"github.com/evmco/dealer-backoffice/internal/models"
)

func TestCheckTransitionTable(t *testing.T) {
	svc := NewQuoteService()
	cases := []struct {
		from, to models.QuoteStatus
		wantErr  error
	}{
		{models.QuoteStatusCreate, models.QuoteStatusProcessing, nil},
		{models.QuoteStatusProcessing, models.QuoteStatusOrdered, nil},
		{models.QuoteStatusProcessing, models.QuoteStatusRejected, nil},
		{models.QuoteStatusCreate, models.QuoteStatusCreate, ErrSameStatus},
		{models.QuoteStatusProcessing, models.QuoteStatusProcessing, ErrSameStatus},
		{models.QuoteStatusOrdered, models.QuoteStatusProcessing, ErrTerminalStatus},
		{models.QuoteStatusRejected, models.QuoteStatusCreate, ErrTerminalStatus},
		{models.QuoteStatusCreate, models.QuoteStatusOrdered, ErrInvalidTransition},
		{models.QuoteStatusCreate, models.QuoteStatusRejected, ErrInvalidTransition},
		{models.QuoteStatusProcessing, models.QuoteStatusCreate, ErrInvalidTransition},
	}
	for _, c := range cases {
		err := svc.CheckTransition(c.from, c.to)
		if !errors.Is(err, c.wantErr) {
			t.Errorf("CheckTransition(%s, %s) = %v, want %v", c.from, c.to, err, c.wantErr)
		}
	}
}

func TestEditableAndDeletable(t *testing.T) {
	svc := NewQuoteService()
	cases := []struct {
		status    models.QuoteStatus
		editable  bool
		deletable bool
	}{
		{models.QuoteStatusCreate, true, true},
		{models.QuoteStatusProcessing, false, true},
		{models.QuoteStatusOrdered, false, false},
		{models.QuoteStatusRejected, false, false},
	}
	for _, c := range cases {
		q := &models.Quote{Status: c.status}
		if got := svc.Editable(q); got != c.editable {
			t.Errorf("Editable(%s) = %v, want %v", c.status, got, c.editable)
		}
		if got := svc.Deletable(q); got != c.deletable {
			t.Errorf("Deletable(%s) = %v, want %v", c.status, got, c.deletable)
		}
	}
}

func TestComputeTotal(t *testing.T) {
	svc := NewQuoteService()
	if got := svc.ComputeTotal(nil); got != 0 {
		t.Fatalf("nil quote total = %v, want 0", got)
	}
	q := &models.Quote{Details: []models.QuotationDetail{
		{
			Quantity:          2,
			VehicleTypeDetail: models.VehicleTypeDetail{UnitPrice: 30000},
			RegistrationTax:   500,
			LicensePlateFee:   100,
		},
		{
			Quantity:          0, // invalid, treated as 1
			VehicleTypeDetail: models.VehicleTypeDetail{UnitPrice: 10000},
		},
	}}
	want := 2*30000.0 + 600 + 10000
	if got := svc.ComputeTotal(q); got != want {
		t.Fatalf("ComputeTotal = %v, want %v", got, want)
	}
}
