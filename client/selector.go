package client

import (
	"context"
	"fmt"
)

// SelectorStep is the state of a two-step vehicle picker run.
type SelectorStep int

const (
	StepChooseType   SelectorStep = iota // listing vehicle types
	StepChooseDetail                     // listing details of the chosen type
	StepDone                             // a selection was emitted
	StepClosed                           // cancelled, nothing emitted
)

// Selector walks a user through type -> detail without exposing the full
// cross-product. Exactly one Selection is delivered per completed run, via
// the callback; cancelling at any step delivers nothing. Fetch failures keep
// the selector at its current step so the user may retry.
type Selector struct {
	api      *Client
	onSelect func(Selection)

	step    SelectorStep
	types   []VehicleType
	chosen  *VehicleType
	details []VehicleTypeDetail
	emitted bool
}

// NewSelector creates a selector delivering its single result to onSelect.
func NewSelector(api *Client, onSelect func(Selection)) *Selector {
	return &Selector{api: api, onSelect: onSelect, step: StepChooseType}
}

func (s *Selector) Step() SelectorStep { return s.step }

// Types returns the step-1 list. Empty after a failed or not-yet-run Load.
func (s *Selector) Types() []VehicleType { return s.types }

// Details returns the step-2 list for the chosen type.
func (s *Selector) Details() []VehicleTypeDetail { return s.details }

// NoData reports whether the current step's list loaded but is empty, so the
// caller renders an explicit empty state instead of a blank list.
func (s *Selector) NoData() bool {
	switch s.step {
	case StepChooseType:
		return s.types != nil && len(s.types) == 0
	case StepChooseDetail:
		return s.details != nil && len(s.details) == 0
	}
	return false
}

// Load fetches the vehicle types for step 1. On error the selector stays at
// step 1 with whatever list it previously had.
func (s *Selector) Load(ctx context.Context) error {
	if s.step != StepChooseType {
		return fmt.Errorf("selector is not at the type step")
	}
	page, err := s.api.ListVehicleTypes(ctx, 1, 100)
	if err != nil {
		return err
	}
	if page.Items == nil {
		page.Items = []VehicleType{}
	}
	s.types = page.Items
	return nil
}

// ChooseType advances to step 2 by fetching the details of the given type.
// On fetch error the selector remains at step 1 and the chosen type is
// discarded.
func (s *Selector) ChooseType(ctx context.Context, vehicleTypeID uint) error {
	if s.step != StepChooseType {
		return fmt.Errorf("selector is not at the type step")
	}
	var chosen *VehicleType
	for i := range s.types {
		if s.types[i].ID == vehicleTypeID {
			chosen = &s.types[i]
			break
		}
	}
	if chosen == nil {
		return fmt.Errorf("vehicle type %d is not in the listed types", vehicleTypeID)
	}
	page, err := s.api.ListVehicleDetails(ctx, vehicleTypeID, 1, 100)
	if err != nil {
		return err
	}
	if page.Items == nil {
		page.Items = []VehicleTypeDetail{}
	}
	s.chosen = chosen
	s.details = page.Items
	s.step = StepChooseDetail
	return nil
}

// Back returns from step 2 to step 1, discarding the step-2 list and the
// chosen type.
func (s *Selector) Back() {
	if s.step != StepChooseDetail {
		return
	}
	s.chosen = nil
	s.details = nil
	s.step = StepChooseType
}

// ChooseDetail completes the run: it emits the single Selection and
// terminates the selector.
func (s *Selector) ChooseDetail(vehicleTypeDetailID uint) (Selection, error) {
	if s.step != StepChooseDetail {
		return Selection{}, fmt.Errorf("selector is not at the detail step")
	}
	var detail *VehicleTypeDetail
	for i := range s.details {
		if s.details[i].ID == vehicleTypeDetailID {
			detail = &s.details[i]
			break
		}
	}
	if detail == nil {
		return Selection{}, fmt.Errorf("vehicle detail %d is not in the listed details", vehicleTypeDetailID)
	}
	sel := Selection{
		VehicleTypeID:       s.chosen.ID,
		VehicleTypeName:     s.chosen.Name,
		VehicleTypeDetailID: detail.ID,
		Version:             detail.Version,
		Color:               detail.Color,
		Configuration:       detail.Configuration,
		Features:            detail.Features,
		Image:               detail.Image,
	}
	s.step = StepDone
	if !s.emitted && s.onSelect != nil {
		s.emitted = true
		s.onSelect(sel)
	}
	return sel, nil
}

// Close cancels the run at any step. All transient state is discarded and no
// selection is emitted, ever, from this selector afterwards.
func (s *Selector) Close() {
	if s.step == StepDone {
		return
	}
	s.chosen = nil
	s.details = nil
	s.types = nil
	s.step = StepClosed
}
