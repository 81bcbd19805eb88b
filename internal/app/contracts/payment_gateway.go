package contracts

import (
	"context"
	"medilab-service/internal/pkg/dto/requests"
	"medilab-service/internal/pkg/dto/responses"
)

// PaymentGatewayService is the client for the external payment provider.
// Amounts cross this boundary in integer minor units (cents).
type PaymentGatewayService interface {
	Authenticate(ctx context.Context) (string, error)
	CreateOrder(ctx context.Context, token string, request *requests.GatewayCreateOrder) (string, error)
	GeneratePaymentKey(ctx context.Context, token string, request *requests.GatewayPaymentKey) (string, error)
	IframeURL(paymentToken string) string
	VerifyWebhookSignature(receivedSignature string, payload *responses.GatewayWebhookPayload) bool
}
