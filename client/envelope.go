package client

import (
	"encoding/json"
	"fmt"
)

// The backend has historically answered with several envelope shapes:
// {"success":true,"data":...}, Spring-style {"content":[...],
// "totalElements":N}, the newer {"items":[...],"total":N}, and occasionally a
// bare array. This file is the single place that knows about all of them;
// everything else in the package sees one canonical Page.

// Page is the canonical list result.
type Page[T any] struct {
	Items []T
	Total int64
}

type rawEnvelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
	Items   json.RawMessage `json:"items"`
	Content json.RawMessage `json:"content"`
	Total   *int64          `json:"total"`
	TotalEl *int64          `json:"totalElements"`
}

// decodePage normalizes any known list shape into a Page.
func decodePage[T any](raw []byte) (Page[T], error) {
	var page Page[T]
	// Bare array first: cheapest check and unambiguous.
	if len(raw) > 0 && raw[0] == '[' {
		if err := json.Unmarshal(raw, &page.Items); err != nil {
			return page, fmt.Errorf("decode list: %w", err)
		}
		page.Total = int64(len(page.Items))
		return page, nil
	}
	var env rawEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return page, fmt.Errorf("decode envelope: %w", err)
	}
	// {"success":..,"data":...} wraps one of the other shapes; recurse once.
	if env.Success != nil && len(env.Data) > 0 {
		return decodePage[T](env.Data)
	}
	items := env.Items
	total := env.Total
	if items == nil {
		items = env.Content
		total = env.TotalEl
	}
	if items == nil {
		return page, fmt.Errorf("unrecognized list envelope")
	}
	if err := json.Unmarshal(items, &page.Items); err != nil {
		return page, fmt.Errorf("decode items: %w", err)
	}
	if total != nil {
		page.Total = *total
	} else {
		page.Total = int64(len(page.Items))
	}
	return page, nil
}

// decodeItem unwraps a single object from either {"success":..,"data":{...}}
// or a bare object.
func decodeItem[T any](raw []byte, out *T) error {
	var env rawEnvelope
	if len(raw) > 0 && raw[0] == '{' {
		if err := json.Unmarshal(raw, &env); err == nil && env.Success != nil && len(env.Data) > 0 {
			return json.Unmarshal(env.Data, out)
		}
	}
	return json.Unmarshal(raw, out)
}
