package models

import "time"

// LabResult is attached to an order once lab work begins. It is not gated by
// the order state machine beyond the order existing.
type LabResult struct {
	ID             string    `json:"id"`
	OrderID        string    `json:"order_id"`
	LabTestID      string    `json:"lab_test_id"`
	Value          string    `json:"value"`
	ReferenceRange string    `json:"reference_range,omitempty"`
	Unit           string    `json:"unit,omitempty"`
	Notes          string    `json:"notes,omitempty"`
	DocumentURL    string    `json:"document_url,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
