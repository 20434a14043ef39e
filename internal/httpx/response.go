package httpx

import (
	"encoding/json"
	"net/http"
)

// Canonical response envelope. Every success response is
// {"success":true,"data":...}; every error is
// {"success":false,"error":CODE,"details":...}. Historically the backend
// mixed several list shapes; new code emits only this one.
type Envelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data,omitempty"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// ListPayload is the canonical paginated list body carried inside Envelope.Data.
type ListPayload struct {
	Items any   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Size  int   `json:"size"`
}

func JSON(w http.ResponseWriter, status int, data any) {
	write(w, status, Envelope{Success: true, Data: data})
}

// JSONList writes a canonical paginated list response.
func JSONList(w http.ResponseWriter, status int, items any, total int64, page, size int) {
	write(w, status, Envelope{Success: true, Data: ListPayload{Items: items, Total: total, Page: page, Size: size}})
}

func JSONError(w http.ResponseWriter, status int, msg string, details any) {
	write(w, status, ErrorResponse{Success: false, Error: msg, Details: details})
}

func write(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	body, err := json.Marshal(payload)
	if err != nil {
		// best-effort error response; avoid writing partial JSON
		http.Error(w, `{"success":false,"error":"encode_error"}`, http.StatusInternalServerError)
		return
	}
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		// nothing we can do at this point
		_ = err
	}
}
