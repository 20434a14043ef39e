package client

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// QuoteForm accumulates a draft quote: one customer and a list of vehicle
// lines. Nothing is persisted until Submit; removing lines or abandoning the
// form needs no cleanup. The same vehicleTypeDetailId may appear on several
// lines (distinct batches with different fee overrides are a legitimate use).
type QuoteForm struct {
	api        *Client
	customerID uint
	lines      []QuotationDetail
}

// FeeOverrides optionally overrides the defaults of a new line (quantity 1,
// every fee 0). Zero values mean "keep the default".
type FeeOverrides struct {
	Quantity                      int
	RegistrationTax               float64
	LicensePlateFee               float64
	RegistrationFee               float64
	CompulsoryInsurance           float64
	MaterialInsurance             float64
	RoadMaintenanceFee            float64
	VehicleRegistrationServiceFee float64
}

func NewQuoteForm(api *Client) *QuoteForm {
	return &QuoteForm{api: api}
}

// SelectCustomer records the customer the quote is for.
func (f *QuoteForm) SelectCustomer(customerID uint) {
	f.customerID = customerID
}

func (f *QuoteForm) CustomerID() uint { return f.customerID }

// Lines returns a copy of the current draft lines.
func (f *QuoteForm) Lines() []QuotationDetail {
	out := make([]QuotationDetail, len(f.lines))
	copy(out, f.lines)
	return out
}

// AddLine appends a line for a completed vehicle selection.
func (f *QuoteForm) AddLine(sel Selection, overrides FeeOverrides) error {
	if sel.VehicleTypeDetailID == 0 {
		return validationErr("vehicleTypeDetailId", "required")
	}
	line := QuotationDetail{
		VehicleTypeDetailID:           sel.VehicleTypeDetailID,
		Quantity:                      1,
		RegistrationTax:               overrides.RegistrationTax,
		LicensePlateFee:               overrides.LicensePlateFee,
		RegistrationFee:               overrides.RegistrationFee,
		CompulsoryInsurance:           overrides.CompulsoryInsurance,
		MaterialInsurance:             overrides.MaterialInsurance,
		RoadMaintenanceFee:            overrides.RoadMaintenanceFee,
		VehicleRegistrationServiceFee: overrides.VehicleRegistrationServiceFee,
	}
	if overrides.Quantity > 0 {
		line.Quantity = overrides.Quantity
	}
	f.lines = append(f.lines, line)
	return nil
}

// RemoveLine removes a line by position.
func (f *QuoteForm) RemoveLine(index int) error {
	if index < 0 || index >= len(f.lines) {
		return fmt.Errorf("line index %d out of range", index)
	}
	f.lines = append(f.lines[:index], f.lines[index+1:]...)
	return nil
}

// SetLineField updates one field of a line from raw user input. Numeric
// fields fall back to 0 on unparseable input; quantity falls back to 1.
func (f *QuoteForm) SetLineField(index int, field, value string) error {
	if index < 0 || index >= len(f.lines) {
		return fmt.Errorf("line index %d out of range", index)
	}
	line := &f.lines[index]
	if field == "quantity" {
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || n < 1 {
			n = 1
		}
		line.Quantity = n
		return nil
	}
	amount, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || amount < 0 {
		amount = 0
	}
	switch field {
	case "registrationTax":
		line.RegistrationTax = amount
	case "licensePlateFee":
		line.LicensePlateFee = amount
	case "registrationFee":
		line.RegistrationFee = amount
	case "compulsoryInsurance":
		line.CompulsoryInsurance = amount
	case "materialInsurance":
		line.MaterialInsurance = amount
	case "roadMaintenanceFee":
		line.RoadMaintenanceFee = amount
	case "vehicleRegistrationServiceFee":
		line.VehicleRegistrationServiceFee = amount
	default:
		return fmt.Errorf("unknown line field %q", field)
	}
	return nil
}

// quoteCreateRequest is the POST /quote body.
type quoteCreateRequest struct {
	CustomerID uint              `json:"customerId"`
	Status     string            `json:"status"`
	Details    []QuotationDetail `json:"quotationDetailRequestDTOs"`
}

// Submit validates the draft and creates the quote. With a missing customer
// or an empty line list it returns a ValidationError without touching the
// network. The created quote is returned but not retained; callers refetch
// when they need to display it.
func (f *QuoteForm) Submit(ctx context.Context) (*Quote, error) {
	violations := map[string]string{}
	if f.customerID == 0 {
		violations["customerId"] = "required"
	}
	if len(f.lines) == 0 {
		violations["quotationDetailRequestDTOs"] = "required"
	}
	if len(violations) > 0 {
		return nil, &ValidationError{Violations: violations}
	}
	req := quoteCreateRequest{
		CustomerID: f.customerID,
		Status:     string(QuoteStatusCreate),
		Details:    f.Lines(),
	}
	raw, err := f.api.do(ctx, http.MethodPost, "/quote", nil, req)
	if err != nil {
		return nil, err
	}
	var out Quote
	if err := decodeItem(raw, &out); err != nil {
		return nil, fmt.Errorf("decode created quote: %w", err)
	}
	return &out, nil
}
