package payment_gateway

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"medilab-service/internal/app/config"
	"medilab-service/internal/pkg/dto/responses"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func signPayload(secret string) string {
	// amount_cents, created_at, currency, error_occured,
	// has_parent_transaction, id, integration_id, is_3d_secure, is_auth,
	// is_capture, is_refunded, is_standalone_payment, is_voided, order,
	// owner, pending, source_data_pan, source_data_sub_type,
	// source_data_type, success
	concatenated := "27000" +
		"2026-08-29T10:00:00" +
		"EGP" +
		"false" +
		"false" +
		"555" +
		"42" +
		"true" +
		"false" +
		"false" +
		"false" +
		"true" +
		"false" +
		"77001" +
		"9" +
		"false" +
		"2346" +
		"MasterCard" +
		"card" +
		"true"

	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write([]byte(concatenated))
	return hex.EncodeToString(mac.Sum(nil))
}

func webhookPayload() *responses.GatewayWebhookPayload {
	return &responses.GatewayWebhookPayload{
		ID:                  555,
		AmountCents:         27000,
		CreatedAt:           "2026-08-29T10:00:00",
		Currency:            "EGP",
		IntegrationID:       42,
		Is3DSecure:          true,
		IsStandalonePayment: true,
		Order:               responses.GatewayWebhookOrder{ID: 77001, MerchantOrderID: "payment-1"},
		Owner:               9,
		SourceData:          responses.GatewaySourceData{Pan: "2346", SubType: "MasterCard", Type: "card"},
		Success:             true,
	}
}

func newTestPaymobService(secret string) *paymobService {
	internalConfig := &config.InternalConfig{}
	internalConfig.PaymentGateway.HMACSecret = secret
	internalConfig.PaymentGateway.IframeID = "11223"
	internalConfig.PaymentGateway.BaseUrl = "https://accept.paymob.com/api"
	return &paymobService{
		InternalConfig: internalConfig,
		Log:            zap.NewNop(),
	}
}

func TestVerifyWebhookSignature(t *testing.T) {
	secret := "hmac-test-secret"
	service := newTestPaymobService(secret)

	t.Run("accepts a correctly signed payload", func(t *testing.T) {
		assert.True(t, service.VerifyWebhookSignature(signPayload(secret), webhookPayload()))
	})

	t.Run("rejects a tampered payload", func(t *testing.T) {
		payload := webhookPayload()
		payload.AmountCents = 1
		assert.False(t, service.VerifyWebhookSignature(signPayload(secret), payload))
	})

	t.Run("rejects a signature made with another secret", func(t *testing.T) {
		assert.False(t, service.VerifyWebhookSignature(signPayload("wrong-secret"), webhookPayload()))
	})

	t.Run("rejects an empty signature", func(t *testing.T) {
		assert.False(t, service.VerifyWebhookSignature("", webhookPayload()))
	})

	t.Run("rejects a nil payload", func(t *testing.T) {
		assert.False(t, service.VerifyWebhookSignature(signPayload(secret), nil))
	})
}

func TestIframeURL(t *testing.T) {
	service := newTestPaymobService("unused")

	url := service.IframeURL("tok-123")

	assert.Equal(t, "https://accept.paymob.com/api/acceptance/iframes/11223?payment_token=tok-123", url)
}
