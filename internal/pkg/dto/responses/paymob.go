package responses

// GatewayWebhookPayload carries the transaction fields the provider includes
// in its webhook. The field set mirrors the provider's HMAC concatenation
// contract.
type GatewayWebhookPayload struct {
	ID                   int64  `json:"id"`
	AmountCents          int64  `json:"amount_cents"`
	CreatedAt            string `json:"created_at"`
	Currency             string `json:"currency"`
	ErrorOccured         bool   `json:"error_occured"`
	HasParentTransaction bool   `json:"has_parent_transaction"`
	IntegrationID        int64  `json:"integration_id"`
	Is3DSecure           bool   `json:"is_3d_secure"`
	IsAuth               bool   `json:"is_auth"`
	IsCapture            bool   `json:"is_capture"`
	IsRefunded           bool   `json:"is_refunded"`
	IsStandalonePayment  bool   `json:"is_standalone_payment"`
	IsVoided             bool   `json:"is_voided"`
	Order                GatewayWebhookOrder `json:"order"`
	Owner                int64  `json:"owner"`
	Pending              bool   `json:"pending"`
	SourceData           GatewaySourceData `json:"source_data"`
	Success              bool   `json:"success"`
}

type GatewayWebhookOrder struct {
	ID              int64  `json:"id"`
	MerchantOrderID string `json:"merchant_order_id"`
}

type GatewaySourceData struct {
	Pan     string `json:"pan"`
	SubType string `json:"sub_type"`
	Type    string `json:"type"`
}

type GatewayAuthResponse struct {
	Token string `json:"token"`
}

type GatewayOrderResponse struct {
	ID int64 `json:"id"`
}

type GatewayPaymentKeyResponse struct {
	Token string `json:"token"`
}
