package services

import (
	"errors"

	"github.com/evmco/dealer-backoffice/internal/models"
)

// QuoteService encapsulates quote business rules: the status transition
// table and total computation. DB access stays in handlers.
type QuoteService struct{}

func NewQuoteService() *QuoteService { return &QuoteService{} }

var (
	ErrSameStatus        = errors.New("quote already has this status")
	ErrTerminalStatus    = errors.New("quote status is terminal")
	ErrInvalidTransition = errors.New("status transition not allowed")
)

// allowedTransitions is the full lifecycle: CREATE -> PROCESSING ->
// {ORDERED | REJECTED}. Terminal states have no outgoing edges.
var allowedTransitions = map[models.QuoteStatus]map[models.QuoteStatus]bool{
	models.QuoteStatusCreate:     {models.QuoteStatusProcessing: true},
	models.QuoteStatusProcessing: {models.QuoteStatusOrdered: true, models.QuoteStatusRejected: true},
	models.QuoteStatusOrdered:    {},
	models.QuoteStatusRejected:   {},
}

// CheckTransition validates a requested status change. Self-transitions and
// moves out of a terminal state are rejected before the table lookup so the
// caller can distinguish the three failure modes.
func (s *QuoteService) CheckTransition(from, to models.QuoteStatus) error {
	if from == to {
		return ErrSameStatus
	}
	if from.Terminal() {
		return ErrTerminalStatus
	}
	if !allowedTransitions[from][to] {
		return ErrInvalidTransition
	}
	return nil
}

// Editable reports whether full updates to the quote body are still allowed.
func (s *QuoteService) Editable(q *models.Quote) bool {
	return q.Status == models.QuoteStatusCreate
}

// Deletable reports whether the quote may still be removed (non-terminal only).
func (s *QuoteService) Deletable(q *models.Quote) bool {
	return !q.Status.Terminal()
}

// ComputeTotal computes the quote total from its details. Assumes each
// detail has VehicleTypeDetail preloaded for the unit price.
func (s *QuoteService) ComputeTotal(q *models.Quote) float64 {
	if q == nil {
		return 0
	}
	var total float64
	for _, d := range q.Details {
		qty := d.Quantity
		if qty < 1 {
			qty = 1
		}
		total += float64(qty)*d.VehicleTypeDetail.UnitPrice + d.FeeTotal()
	}
	return total
}
