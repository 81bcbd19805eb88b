package models

import (
	"time"
)

type LabOrderStatus string

const (
	LabOrderNewRequest         LabOrderStatus = "new_request"
	LabOrderAwaitingPayment    LabOrderStatus = "awaiting_payment"
	LabOrderPaid               LabOrderStatus = "paid"
	LabOrderAwaitingSamples    LabOrderStatus = "awaiting_samples"
	LabOrderInProgress         LabOrderStatus = "in_progress"
	LabOrderResultsReady       LabOrderStatus = "results_ready"
	LabOrderCompleted          LabOrderStatus = "completed"
	LabOrderCancelledByPatient LabOrderStatus = "cancelled_by_patient"
	LabOrderRejectedByLab      LabOrderStatus = "rejected_by_lab"
)

func (s LabOrderStatus) IsTerminal() bool {
	return s == LabOrderCompleted || s == LabOrderCancelledByPatient || s == LabOrderRejectedByLab
}

type SampleCollectionType string

const (
	SampleCollectionClinicVisit SampleCollectionType = "clinic_visit"
	SampleCollectionHomeVisit   SampleCollectionType = "home_sample_collection"
)

// LabOrder is mutated only through guarded status transitions. The cost
// fields are snapshots taken at confirmation and never recomputed.
type LabOrder struct {
	ID                           string               `json:"id"`
	PrescriptionID               string               `json:"prescription_id"`
	LaboratoryID                 string               `json:"laboratory_id"`
	PatientID                    string               `json:"patient_id"`
	Status                       LabOrderStatus       `json:"status"`
	SampleCollectionType         SampleCollectionType `json:"sample_collection_type"`
	TestsTotalCost               float64              `json:"tests_total_cost"`
	SampleCollectionDeliveryCost float64              `json:"sample_collection_delivery_cost"`
	CancellationReason           string               `json:"cancellation_reason,omitempty"`
	RejectionReason              string               `json:"rejection_reason,omitempty"`
	CreatedAt                    time.Time            `json:"created_at"`
	UpdatedAt                    time.Time            `json:"updated_at"`
	ConfirmedByLabAt             *time.Time           `json:"confirmed_by_lab_at,omitempty"`
	PaidAt                       *time.Time           `json:"paid_at,omitempty"`
	SamplesCollectedAt           *time.Time           `json:"samples_collected_at,omitempty"`
	CancelledAt                  *time.Time           `json:"cancelled_at,omitempty"`
	RejectedAt                   *time.Time           `json:"rejected_at,omitempty"`
}
