package constvars

type ContextKey string

const (
	ResourceLabOrders        = "lab-orders"
	ResourceLabPrescriptions = "lab-prescriptions"
	ResourceLabResults       = "lab-results"
	ResourcePayments         = "payments"
	ResourceLaboratories     = "laboratories"
	ResourceLabTests         = "lab-tests"
)

const (
	AppPaginationUrlFormat = "%s?page=%d&page_size=%d"
)

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_SESSION_DATA_KEY         ContextKey = "session_data"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
)

const (
	REQUEST_ID_PREFIX = "MEDILAB_SVC_"
)

const (
	RoleAdmin      = "admin"
	RolePatient    = "patient"
	RoleLaboratory = "laboratory"
)

const (
	// Reason stored when an administrator force-removes an order. Orders are
	// never physically deleted, the audit trail survives as a rejection.
	LabOrderDeletedByAdminReason = "Deleted by administrator"
)

const (
	OrderTypeLabOrder      = "LabOrder"
	OrderTypePharmacyOrder = "PharmacyOrder"
)

const (
	RedisLabTestPriceKeyFormat = "catalog:price:%s:%s"
	RedisPaymentCallbackLock   = "payments:callback:%s"
)

const (
	MongoCollectionPaymentLedger = "payment_ledger"
)

const (
	NotificationTypeOrderConfirmed   = "lab_order_confirmed"
	NotificationTypeOrderPaid        = "lab_order_paid"
	NotificationTypeOrderInProgress  = "lab_order_in_progress"
	NotificationTypeResultsReady     = "lab_order_results_ready"
	NotificationTypeOrderCompleted   = "lab_order_completed"
	NotificationTypeOrderCancelled   = "lab_order_cancelled"
	NotificationTypeOrderRejected    = "lab_order_rejected"
	NotificationTypePaymentRefunded  = "payment_refunded"
	NotificationTypePaymentCancelled = "payment_cancelled"
)

const (
	NotificationPriorityNormal = "normal"
	NotificationPriorityHigh   = "high"
)
