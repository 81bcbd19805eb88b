package constvars

const (
	SuccessCreateLabOrder        = "lab order created successfully"
	SuccessGetLabOrder           = "lab order retrieved successfully"
	SuccessGetLabOrders          = "lab orders retrieved successfully"
	SuccessConfirmLabOrder       = "lab order confirmed successfully"
	SuccessMarkLabOrderPaid      = "lab order marked as paid"
	SuccessMarkSamplesCollected  = "lab order samples marked as collected"
	SuccessStartLabWork          = "lab work started"
	SuccessMarkResultsReady      = "lab order results marked as ready"
	SuccessCompleteLabOrder      = "lab order completed successfully"
	SuccessCancelLabOrder        = "lab order cancelled successfully"
	SuccessRejectLabOrder        = "lab order rejected successfully"
	SuccessDeleteLabOrder        = "lab order removed successfully"
	SuccessCreateLabPrescription = "lab prescription created successfully"
	SuccessGetLabPrescription    = "lab prescription retrieved successfully"
	SuccessCreateLabResult       = "lab result created successfully"
	SuccessUpdateLabResult       = "lab result updated successfully"
	SuccessUploadResultDocument  = "lab result document uploaded successfully"
	SuccessGetLabResults         = "lab results retrieved successfully"
	SuccessInitiatePayment       = "payment initiated successfully"
	SuccessConfirmPayment        = "payment confirmed successfully"
	SuccessCancelPayment         = "payment cancelled successfully"
	SuccessRefundPayment         = "payment refunded successfully"
	SuccessGetPayment            = "payment retrieved successfully"
)
