package constvars

// Validation messages, map it with respective tag field
var CustomValidationErrorMessages = map[string]string{
	"required": "is required",
	"min":      "must be at least %s characters long",
	"max":      "maximum at %s characters long",
	"gt":       "must be greater than %s",
	"gte":      "must be greater than or equal %s",
	"oneof":    "must be one of: %s",
	"uuid":     "must be a valid identifier",
	"sample_collection_type": "must be either clinic_visit or home_sample_collection",
	"payment_method":         "must be either cash_on_delivery or card_online",
}

var TagsWithParams = map[string]bool{
	"min":   true,
	"max":   true,
	"gt":    true,
	"gte":   true,
	"oneof": true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientNotAuthorized                 = "you can't access this feature"
	ErrClientOrderNotFound                 = "lab order not found"
	ErrClientPrescriptionNotFound          = "lab prescription not found"
	ErrClientLaboratoryNotFound            = "laboratory not found"
	ErrClientLabTestNotFound               = "lab test not found"
	ErrClientLabResultNotFound             = "lab result not found"
	ErrClientPaymentNotFound               = "payment not found"
	ErrClientOrderInvalidState             = "the order does not allow this action in its current status"
	ErrClientPaymentInvalidState           = "the payment does not allow this action in its current status"
	ErrClientPrescriptionAlreadyOrdered    = "an order already exists for this prescription"
	ErrClientReasonRequired                = "a reason is required for this action"
	ErrClientTestNotPriced                 = "one or more requested tests are not priced by this laboratory"
	ErrClientHomeCollectionUnavailable     = "this laboratory does not offer home sample collection"
	ErrClientRefundExceedsBalance          = "refund amount exceeds the remaining refundable balance"
	ErrClientProviderTrxConflict           = "the provider transaction is already recorded against another payment"
	ErrClientPaymentGatewayFailure         = "the payment provider could not process the request"
	ErrClientInvalidWebhookSignature       = "invalid webhook signature"
)

// Error messages for developers
const (
	ErrDevInvalidInput          = "invalid input"
	ErrDevCannotParseJSON       = "cannot parse JSON"
	ErrDevCannotMarshalJSON     = "cannot marshal JSON"
	ErrDevValidationFailed      = "validation failed"
	ErrDevInvalidRequestPayload = "invalid request payload"
	ErrDevCreateHTTPRequest     = "failed to create HTTP request"
	ErrDevSendHTTPRequest       = "failed to send HTTP request"

	// State machine messages
	ErrDevOrderNotFound          = "lab order not found"
	ErrDevOrderGuardFailed       = "lab order status guard failed"
	ErrDevOrderLaboratoryMismatch = "caller laboratory does not own the order"
	ErrDevPaymentOwnerMismatch    = "caller does not own the payment"
	ErrDevPaymentGuardFailed      = "payment status guard failed"
	ErrDevProviderTrxConflict     = "provider transaction id already bound to another payment"
	ErrDevPrescriptionAlreadyOrdered = "prescription already has an order"
	ErrDevTestNotPriced              = "laboratory has no price for requested test"
	ErrDevRefundExceedsBalance       = "refund amount exceeds remaining balance"
	ErrDevReasonRequired             = "reason must not be empty"

	// Authentication messages
	ErrDevAuthSigningMethod  = "Unexpected signing method"
	ErrDevAuthTokenInvalid   = "invalid token"
	ErrDevAuthTokenMissing   = "token missing"
	ErrDevAuthInvalidSession = "invalid session"

	// Database messages
	ErrDevDBFailedToFindData      = "failed when do find data on database"
	ErrDevDBFailedToInsertData    = "failed to insert data into database"
	ErrDevDBFailedToUpdateData    = "failed to update data into database"
	ErrDevDBFailedToDeleteData    = "failed to delete data from database"
	ErrDevDBFailedToIterateDataset = "failed to iterate dataset from database"
	ErrDevDBFailedToBeginTx        = "failed to begin database transaction"
	ErrDevDBFailedToCommitTx       = "failed to commit database transaction"
	ErrDevDBFailedToInsertDocument = "failed to insert document into database"
	ErrDevDBFailedToFindDocument   = "failed when do find document on database"
	ErrDevDBFailedToCountDocuments = "failed to count documents on database"

	// Redis messages
	ErrDevRedisGetData       = "failed to get data from redis"
	ErrDevRedisSetData       = "failed to set data into redis"
	ErrDevRedisDeleteData    = "failed to delete data from redis"
	ErrDevRedisSetNX         = "failed to set data with NX into redis"
	ErrDevRedisUnlock        = "failed to release redis lock"

	// RabbitMQ messages
	ErrDevRabbitMQPublish = "failed to publish message to rabbitmq queue"

	// Minio messages
	ErrDevMinioFailedToCreateObject    = "failed to create object on bucket %s"
	ErrDevMinioFailedToPresignedObject = "failed to build presigned url for object on bucket %s"

	// Payment gateway messages
	ErrDevGatewayAuthenticate       = "failed to authenticate against payment gateway"
	ErrDevGatewayCreateOrder        = "failed to register order at payment gateway"
	ErrDevGatewayPaymentKey         = "failed to generate payment key at payment gateway"
	ErrDevGatewayUnexpectedResponse = "unexpected response shape from payment gateway"
	ErrDevGatewayInvalidSignature   = "webhook signature verification failed"

	// Server messages
	ErrDevServerDeadlineExceeded = "deadline exceeded"
	ErrDevServerParseSessionData = "failed to parse session data"
)

const (
	ResponseUnknown = "unknown"
)
