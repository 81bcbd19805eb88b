package requests

import "medilab-service/internal/pkg/dto/responses"

type InitiatePayment struct {
	OrderType string  `json:"order_type" validate:"required,oneof=LabOrder PharmacyOrder"`
	OrderID   string  `json:"order_id" validate:"required"`
	Amount    float64 `json:"amount" validate:"required,gt=0"`
	Method    string  `json:"method" validate:"required,payment_method"`
	Provider  string  `json:"provider"`
}

type RefundPayment struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
	Reason string  `json:"reason" validate:"required,min=3"`
}

// PaymentCallback is the webhook body delivered by the payment gateway. The
// HMAC travels as a query parameter and is verified before the payload is
// trusted.
type PaymentCallback struct {
	HMAC    string                          `json:"hmac" validate:"required"`
	Payload *responses.GatewayWebhookPayload `json:"obj" validate:"required"`
}
