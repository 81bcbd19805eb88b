package constvars

const (
	PaymobAuthEndpoint       = "/auth/tokens"
	PaymobOrderEndpoint      = "/ecommerce/orders"
	PaymobPaymentKeyEndpoint = "/acceptance/payment_keys"
	PaymobIframeUrlFormat    = "%s/acceptance/iframes/%s?payment_token=%s"
)

const (
	PaymobTrxSuccessValue = "true"
	PaymobCurrency        = "EGP"
)

// Field order of the HMAC concatenation is provider defined and must not be
// changed.
var PaymobHMACFields = []string{
	"amount_cents",
	"created_at",
	"currency",
	"error_occured",
	"has_parent_transaction",
	"id",
	"integration_id",
	"is_3d_secure",
	"is_auth",
	"is_capture",
	"is_refunded",
	"is_standalone_payment",
	"is_voided",
	"order",
	"owner",
	"pending",
	"source_data_pan",
	"source_data_sub_type",
	"source_data_type",
	"success",
}
