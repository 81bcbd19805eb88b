package requests

type CreateLabResult struct {
	LabTestID      string `json:"lab_test_id" validate:"required"`
	Value          string `json:"value" validate:"required"`
	ReferenceRange string `json:"reference_range"`
	Unit           string `json:"unit"`
	Notes          string `json:"notes"`
}

type UpdateLabResult struct {
	Value          string `json:"value" validate:"required"`
	ReferenceRange string `json:"reference_range"`
	Unit           string `json:"unit"`
	Notes          string `json:"notes"`
}
