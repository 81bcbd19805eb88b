package exceptions

import (
	"fmt"
	"medilab-service/internal/pkg/constvars"
)

var (
	ErrURLParamIDValidation = func(err error, paramName string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, fmt.Sprintf("url param %s validation failed", paramName))
	}
	ErrInputValidation = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, FormatFirstValidationError(err), constvars.ErrDevValidationFailed)
	}
	ErrCannotParseJSON = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, constvars.ErrDevCannotParseJSON)
	}
	ErrCannotMarshalJSON = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevCannotMarshalJSON)
	}
	ErrServerDeadlineExceeded = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusGatewayTimeout, constvars.ErrClientServerLongRespond, constvars.ErrDevServerDeadlineExceeded)
	}
	ErrMissingRequestID = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, "request id missing from context")
	}

	// Not found
	ErrLabOrderNotFound = func(orderID string) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusNotFound, constvars.ErrClientOrderNotFound, fmt.Sprintf("%s: %s", constvars.ErrDevOrderNotFound, orderID))
	}
	ErrLabPrescriptionNotFound = func(prescriptionID string) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusNotFound, constvars.ErrClientPrescriptionNotFound, fmt.Sprintf("lab prescription not found: %s", prescriptionID))
	}
	ErrLaboratoryNotFound = func(laboratoryID string) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusNotFound, constvars.ErrClientLaboratoryNotFound, fmt.Sprintf("laboratory not found: %s", laboratoryID))
	}
	ErrLabTestNotFound = func(labTestID string) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusNotFound, constvars.ErrClientLabTestNotFound, fmt.Sprintf("lab test not found: %s", labTestID))
	}
	ErrLabResultNotFound = func(labResultID string) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusNotFound, constvars.ErrClientLabResultNotFound, fmt.Sprintf("lab result not found: %s", labResultID))
	}
	ErrPaymentNotFound = func(paymentID string) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusNotFound, constvars.ErrClientPaymentNotFound, fmt.Sprintf("payment not found: %s", paymentID))
	}

	// Invalid state. The current and required states travel in the client
	// message so callers can render the conflict without a second lookup.
	ErrLabOrderInvalidState = func(current string, allowed []string) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusConflict,
			fmt.Sprintf("%s (current: %s, required: %s)", constvars.ErrClientOrderInvalidState, current, joinStates(allowed)),
			fmt.Sprintf("%s: current=%s required=%s", constvars.ErrDevOrderGuardFailed, current, joinStates(allowed)))
	}
	ErrPaymentInvalidState = func(current string, allowed []string) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusConflict,
			fmt.Sprintf("%s (current: %s, required: %s)", constvars.ErrClientPaymentInvalidState, current, joinStates(allowed)),
			fmt.Sprintf("%s: current=%s required=%s", constvars.ErrDevPaymentGuardFailed, current, joinStates(allowed)))
	}
	ErrProviderTransactionConflict = func(providerTrxID, paymentID string) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusConflict, constvars.ErrClientProviderTrxConflict,
			fmt.Sprintf("%s: trx=%s payment=%s", constvars.ErrDevProviderTrxConflict, providerTrxID, paymentID))
	}

	// Unauthorized
	ErrOrderLaboratoryMismatch = func(orderID, laboratoryID string) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusForbidden, constvars.ErrClientNotAuthorized,
			fmt.Sprintf("%s: order=%s laboratory=%s", constvars.ErrDevOrderLaboratoryMismatch, orderID, laboratoryID))
	}
	ErrPaymentOwnerMismatch = func(paymentID, userID string) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusForbidden, constvars.ErrClientNotAuthorized,
			fmt.Sprintf("%s: payment=%s user=%s", constvars.ErrDevPaymentOwnerMismatch, paymentID, userID))
	}

	// Validation
	ErrPrescriptionAlreadyOrdered = func(prescriptionID string) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusBadRequest, constvars.ErrClientPrescriptionAlreadyOrdered,
			fmt.Sprintf("%s: %s", constvars.ErrDevPrescriptionAlreadyOrdered, prescriptionID))
	}
	ErrLabTestNotPriced = func(laboratoryID, labTestID string) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusBadRequest, constvars.ErrClientTestNotPriced,
			fmt.Sprintf("%s: laboratory=%s test=%s", constvars.ErrDevTestNotPriced, laboratoryID, labTestID))
	}
	ErrHomeCollectionUnavailable = func(laboratoryID string) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusBadRequest, constvars.ErrClientHomeCollectionUnavailable,
			fmt.Sprintf("laboratory %s has no home collection configured", laboratoryID))
	}
	ErrReasonRequired = func() *CustomError {
		return BuildNewCustomError(nil, constvars.StatusBadRequest, constvars.ErrClientReasonRequired, constvars.ErrDevReasonRequired)
	}
	ErrRefundExceedsBalance = func(requested, remaining float64) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusBadRequest, constvars.ErrClientRefundExceedsBalance,
			fmt.Sprintf("%s: requested=%.2f remaining=%.2f", constvars.ErrDevRefundExceedsBalance, requested, remaining))
	}
	ErrInvalidWebhookSignature = func() *CustomError {
		return BuildNewCustomError(nil, constvars.StatusUnauthorized, constvars.ErrClientInvalidWebhookSignature, constvars.ErrDevGatewayInvalidSignature)
	}

	// Payment gateway
	ErrPaymentGatewayRequest = func(err error, operation string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadGateway, constvars.ErrClientPaymentGatewayFailure, operation)
	}
	ErrPaymentGatewayResponse = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadGateway, constvars.ErrClientPaymentGatewayFailure, constvars.ErrDevGatewayUnexpectedResponse)
	}

	// Session
	ErrTokenMissing = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusUnauthorized, constvars.ErrClientNotAuthorized, constvars.ErrDevAuthTokenMissing)
	}
	ErrTokenInvalidOrExpired = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusUnauthorized, constvars.ErrClientNotAuthorized, constvars.ErrDevAuthTokenInvalid)
	}
	ErrParseSessionData = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusUnauthorized, constvars.ErrClientNotAuthorized, constvars.ErrDevServerParseSessionData)
	}
	ErrInvalidAPIKey = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusUnauthorized, constvars.ErrClientNotAuthorized, "API key is missing or does not match")
	}
	ErrRoleNotAllowed = func(role string) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusForbidden, constvars.ErrClientNotAuthorized, fmt.Sprintf("role %s is not allowed to access this resource", role))
	}

	// Postgres DB
	ErrPostgresDBFindData = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToFindData)
	}
	ErrPostgresDBInsertData = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToInsertData)
	}
	ErrPostgresDBUpdateData = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToUpdateData)
	}
	ErrPostgresDBDeleteData = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToDeleteData)
	}
	ErrPostgresDBIterateDataset = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToIterateDataset)
	}
	ErrPostgresDBBeginTx = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToBeginTx)
	}
	ErrPostgresDBCommitTx = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToCommitTx)
	}

	// Mongo DB
	ErrMongoDBInsertDocument = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToInsertDocument)
	}
	ErrMongoDBFindDocument = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToFindDocument)
	}
	ErrMongoDBCountDocuments = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToCountDocuments)
	}

	// Redis
	ErrRedisGet = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisGetData)
	}
	ErrRedisSet = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisSetData)
	}
	ErrRedisDelete = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisDeleteData)
	}
	ErrRedisSetNX = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisSetNX)
	}
	ErrRedisUnlock = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisUnlock)
	}

	// RabbitMQ
	ErrRabbitMQPublishMessage = func(err error, queueName string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf("%s: %s", constvars.ErrDevRabbitMQPublish, queueName))
	}

	// Minio
	ErrMinioCreateObject = func(err error, bucketName string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevMinioFailedToCreateObject, bucketName))
	}
	ErrMinioFindObjectPresignedURL = func(err error, bucketName string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevMinioFailedToPresignedObject, bucketName))
	}

	// HTTP
	ErrCreateHTTPRequest = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientCannotProcessRequest, constvars.ErrDevCreateHTTPRequest)
	}
	ErrSendHTTPRequest = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientCannotProcessRequest, constvars.ErrDevSendHTTPRequest)
	}
)

func joinStates(states []string) string {
	out := ""
	for i, s := range states {
		if i > 0 {
			out += ", "
		}
		out += s
	}
	return out
}
