package constvars

const (
	URLParamOrderID        = "orderID"
	URLParamPaymentID      = "paymentID"
	URLParamLabResultID    = "labResultID"
	URLParamPrescriptionID = "prescriptionID"
)

const (
	QueryParamPage       = "page"
	QueryParamPageSize   = "page_size"
	QueryParamPatient    = "patient_id"
	QueryParamLaboratory = "laboratory_id"
	QueryParamStatus     = "status"
)
