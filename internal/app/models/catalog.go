package models

type Laboratory struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	HasHomeCollection bool    `json:"has_home_collection"`
	HomeCollectionFee float64 `json:"home_collection_fee"`
}

type LabTest struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// LabTestPrice is the laboratory specific price for one test, keyed by the
// (laboratory, test) pair.
type LabTestPrice struct {
	LaboratoryID string  `json:"laboratory_id"`
	LabTestID    string  `json:"lab_test_id"`
	Price        float64 `json:"price"`
}

type Patient struct {
	ID       string `json:"id"`
	UserID   string `json:"user_id"`
	FullName string `json:"full_name"`
}
