package responses

import "time"

// LabOrder is the externally visible order representation, joined from the
// order row, the prescription items, the catalog and the owning parties.
type LabOrder struct {
	ID                           string         `json:"id"`
	Status                       string         `json:"status"`
	PrescriptionID               string         `json:"prescription_id"`
	PatientID                    string         `json:"patient_id"`
	PatientName                  string         `json:"patient_name"`
	LaboratoryID                 string         `json:"laboratory_id"`
	LaboratoryName               string         `json:"laboratory_name"`
	SampleCollectionType         string         `json:"sample_collection_type"`
	Tests                        []LabOrderTest `json:"tests"`
	TestsTotalCost               float64        `json:"tests_total_cost"`
	SampleCollectionDeliveryCost float64        `json:"sample_collection_delivery_cost"`
	CancellationReason           string         `json:"cancellation_reason,omitempty"`
	RejectionReason              string         `json:"rejection_reason,omitempty"`
	CreatedAt                    time.Time      `json:"created_at"`
	ConfirmedByLabAt             *time.Time     `json:"confirmed_by_lab_at,omitempty"`
	PaidAt                       *time.Time     `json:"paid_at,omitempty"`
	SamplesCollectedAt           *time.Time     `json:"samples_collected_at,omitempty"`
	CancelledAt                  *time.Time     `json:"cancelled_at,omitempty"`
	RejectedAt                   *time.Time     `json:"rejected_at,omitempty"`
}

type LabOrderTest struct {
	LabTestID      string  `json:"lab_test_id"`
	Name           string  `json:"name"`
	Category       string  `json:"category"`
	Price          float64 `json:"price"`
	PhysicianNotes string  `json:"physician_notes,omitempty"`
}
