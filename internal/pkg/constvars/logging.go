package constvars

const (
	LoggingRequestIDKey      = "request_id"
	LoggingDataKey           = "data"
	LoggingSessionDataKey    = "session_data"
	LoggingQueryParamsKey    = "query_params"
	LoggingResponseKey       = "response"
	LoggingRequestKey        = "request"
	LoggingResponseCountKey  = "response_count"
	LoggingResponseLengthKey = "response_length"
)

const (
	LoggingMethodKey     = "method"
	LoggingEndpointKey   = "endpoint"
	LoggingQueryKey      = "query"
	LoggingRemoteAddrKey = "remote_addr"
	LoggingUserAgentKey  = "user_agent"
	LoggingStatusCodeKey = "status_code"
	LoggingDurationKey   = "duration"
	LoggingSuccessKey    = "success"
	LoggingErrorTypeKey  = "error_type"
)

const (
	LoggingOrderIDKey         = "order_id"
	LoggingOrderStatusKey     = "order_status"
	LoggingPrescriptionIDKey  = "prescription_id"
	LoggingLaboratoryIDKey    = "laboratory_id"
	LoggingPatientIDKey       = "patient_id"
	LoggingUserIDKey          = "user_id"
	LoggingLabTestIDKey       = "lab_test_id"
	LoggingLabResultIDKey     = "lab_result_id"
	LoggingPaymentIDKey       = "payment_id"
	LoggingPaymentStatusKey   = "payment_status"
	LoggingOrderTypeKey       = "order_type"
	LoggingAmountKey          = "amount"
	LoggingProviderKey        = "provider"
	LoggingProviderTrxIDKey   = "provider_transaction_id"
	LoggingGatewayOrderIDKey  = "gateway_order_id"
	LoggingNotificationTypeKey = "notification_type"
	LoggingRedisKey            = "redis_key"
	LoggingLockValueKey        = "lock_value"
	LoggingLockExpirationTimeKey = "lock_expiration_time"
	LoggingBucketNameKey         = "bucket_name"
	LoggingObjectNameKey         = "object_name"
)
