package payment_gateway

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"medilab-service/internal/app/config"
	"medilab-service/internal/app/contracts"
	"medilab-service/internal/pkg/constvars"
	"medilab-service/internal/pkg/dto/requests"
	"medilab-service/internal/pkg/dto/responses"
	"medilab-service/internal/pkg/exceptions"
	"net/http"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type paymobService struct {
	HTTPClient     *http.Client
	InternalConfig *config.InternalConfig
	Log            *zap.Logger
}

func NewPaymobService(internalConfig *config.InternalConfig, logger *zap.Logger) contracts.PaymentGatewayService {
	return &paymobService{
		HTTPClient: &http.Client{
			Timeout: time.Duration(internalConfig.App.PaymentGatewayRequestTimeoutInSeconds) * time.Second,
		},
		InternalConfig: internalConfig,
		Log:            logger,
	}
}

func (s *paymobService) Authenticate(ctx context.Context) (string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.Log.Info("paymobService.Authenticate called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	payload := map[string]string{
		"api_key": s.InternalConfig.PaymentGateway.ApiKey,
	}

	var authResponse responses.GatewayAuthResponse
	err := s.postJSON(ctx, constvars.PaymobAuthEndpoint, payload, &authResponse)
	if err != nil {
		return "", err
	}

	return authResponse.Token, nil
}

func (s *paymobService) CreateOrder(ctx context.Context, token string, request *requests.GatewayCreateOrder) (string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.Log.Info("paymobService.CreateOrder called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOrderIDKey, request.MerchantOrderID),
		zap.Int64("amount_cents", request.AmountCents),
	)

	payload := map[string]interface{}{
		"auth_token":        token,
		"delivery_needed":   "false",
		"amount_cents":      strconv.FormatInt(request.AmountCents, 10),
		"currency":          constvars.PaymobCurrency,
		"merchant_order_id": request.MerchantOrderID,
		"items": []map[string]interface{}{
			{
				"name":         request.ItemName,
				"description":  request.ItemDescription,
				"amount_cents": strconv.FormatInt(request.AmountCents, 10),
				"quantity":     "1",
			},
		},
	}

	var orderResponse responses.GatewayOrderResponse
	err := s.postJSON(ctx, constvars.PaymobOrderEndpoint, payload, &orderResponse)
	if err != nil {
		return "", err
	}

	return strconv.FormatInt(orderResponse.ID, 10), nil
}

func (s *paymobService) GeneratePaymentKey(ctx context.Context, token string, request *requests.GatewayPaymentKey) (string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.Log.Info("paymobService.GeneratePaymentKey called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingGatewayOrderIDKey, request.GatewayOrderID),
	)

	payload := map[string]interface{}{
		"auth_token":     token,
		"amount_cents":   strconv.FormatInt(request.AmountCents, 10),
		"expiration":     3600,
		"order_id":       request.GatewayOrderID,
		"currency":       constvars.PaymobCurrency,
		"integration_id": request.IntegrationID,
		"billing_data": map[string]string{
			"first_name":   request.Billing.FirstName,
			"last_name":    request.Billing.LastName,
			"email":        request.Billing.Email,
			"phone_number": request.Billing.PhoneNumber,
			"city":         request.Billing.City,
			"country":      request.Billing.Country,
			"apartment":    "NA",
			"floor":        "NA",
			"street":       "NA",
			"building":     "NA",
			"state":        "NA",
		},
	}

	var keyResponse responses.GatewayPaymentKeyResponse
	err := s.postJSON(ctx, constvars.PaymobPaymentKeyEndpoint, payload, &keyResponse)
	if err != nil {
		return "", err
	}

	return keyResponse.Token, nil
}

func (s *paymobService) IframeURL(paymentToken string) string {
	return fmt.Sprintf(
		constvars.PaymobIframeUrlFormat,
		s.InternalConfig.PaymentGateway.BaseUrl,
		s.InternalConfig.PaymentGateway.IframeID,
		paymentToken,
	)
}

// VerifyWebhookSignature recomputes the provider HMAC over the transaction
// fields in the provider defined order and compares in constant time.
func (s *paymobService) VerifyWebhookSignature(receivedSignature string, payload *responses.GatewayWebhookPayload) bool {
	if receivedSignature == "" || payload == nil {
		return false
	}

	values := map[string]string{
		"amount_cents":           strconv.FormatInt(payload.AmountCents, 10),
		"created_at":             payload.CreatedAt,
		"currency":               payload.Currency,
		"error_occured":          strconv.FormatBool(payload.ErrorOccured),
		"has_parent_transaction": strconv.FormatBool(payload.HasParentTransaction),
		"id":                     strconv.FormatInt(payload.ID, 10),
		"integration_id":         strconv.FormatInt(payload.IntegrationID, 10),
		"is_3d_secure":           strconv.FormatBool(payload.Is3DSecure),
		"is_auth":                strconv.FormatBool(payload.IsAuth),
		"is_capture":             strconv.FormatBool(payload.IsCapture),
		"is_refunded":            strconv.FormatBool(payload.IsRefunded),
		"is_standalone_payment":  strconv.FormatBool(payload.IsStandalonePayment),
		"is_voided":              strconv.FormatBool(payload.IsVoided),
		"order":                  strconv.FormatInt(payload.Order.ID, 10),
		"owner":                  strconv.FormatInt(payload.Owner, 10),
		"pending":                strconv.FormatBool(payload.Pending),
		"source_data_pan":        payload.SourceData.Pan,
		"source_data_sub_type":   payload.SourceData.SubType,
		"source_data_type":       payload.SourceData.Type,
		"success":                strconv.FormatBool(payload.Success),
	}

	var concatenated bytes.Buffer
	for _, field := range constvars.PaymobHMACFields {
		concatenated.WriteString(values[field])
	}

	mac := hmac.New(sha512.New, []byte(s.InternalConfig.PaymentGateway.HMACSecret))
	mac.Write(concatenated.Bytes())
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(receivedSignature))
}

func (s *paymobService) postJSON(ctx context.Context, endpoint string, payload interface{}, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	url := s.InternalConfig.PaymentGateway.BaseUrl + endpoint
	httpRequest, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return exceptions.ErrCreateHTTPRequest(err)
	}
	httpRequest.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)

	httpResponse, err := s.HTTPClient.Do(httpRequest)
	if err != nil {
		return exceptions.ErrPaymentGatewayRequest(err, endpoint)
	}
	defer httpResponse.Body.Close()

	if httpResponse.StatusCode < http.StatusOK || httpResponse.StatusCode >= http.StatusMultipleChoices {
		return exceptions.ErrPaymentGatewayResponse(fmt.Errorf("unexpected status %d from %s", httpResponse.StatusCode, endpoint))
	}

	err = json.NewDecoder(httpResponse.Body).Decode(out)
	if err != nil {
		return exceptions.ErrPaymentGatewayResponse(err)
	}
	return nil
}
