package requests

type CreateLabOrder struct {
	PrescriptionID       string `json:"prescription_id" validate:"required"`
	LaboratoryID         string `json:"laboratory_id" validate:"required"`
	SampleCollectionType string `json:"sample_collection_type" validate:"required,sample_collection_type"`
}

type LabOrderQuery struct {
	PatientID    string
	LaboratoryID string
	Status       string
}

type CancelLabOrder struct {
	Reason string `json:"reason" validate:"required,min=3"`
}

type RejectLabOrder struct {
	Reason string `json:"reason" validate:"required,min=3"`
}
