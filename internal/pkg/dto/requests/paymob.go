package requests

type GatewayCreateOrder struct {
	AmountCents     int64  `json:"amount_cents"`
	MerchantOrderID string `json:"merchant_order_id"`
	ItemName        string `json:"item_name"`
	ItemDescription string `json:"item_description"`
}

type GatewayPaymentKey struct {
	GatewayOrderID string `json:"gateway_order_id"`
	AmountCents    int64  `json:"amount_cents"`
	IntegrationID  string `json:"integration_id"`
	Billing        GatewayBillingInfo `json:"billing"`
}

type GatewayBillingInfo struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	City        string `json:"city"`
	Country     string `json:"country"`
}
