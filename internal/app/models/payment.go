package models

import "time"

type PaymentStatus string

const (
	PaymentPending       PaymentStatus = "pending"
	PaymentProcessing    PaymentStatus = "processing"
	PaymentCompleted     PaymentStatus = "completed"
	PaymentCancelled     PaymentStatus = "cancelled"
	PaymentRefunded      PaymentStatus = "refunded"
	PaymentPartialRefund PaymentStatus = "partial_refund"
)

type PaymentMethod string

const (
	PaymentMethodCashOnDelivery PaymentMethod = "cash_on_delivery"
	PaymentMethodCardOnline     PaymentMethod = "card_online"
)

type Payment struct {
	ID                    string        `json:"id"`
	UserID                string        `json:"user_id"`
	OrderType             string        `json:"order_type"`
	OrderID               string        `json:"order_id"`
	Amount                float64       `json:"amount"`
	RefundedAmount        float64       `json:"refunded_amount"`
	Method                PaymentMethod `json:"method"`
	Provider              string        `json:"provider,omitempty"`
	Status                PaymentStatus `json:"status"`
	ProviderTransactionID string        `json:"provider_transaction_id,omitempty"`
	CreatedAt             time.Time     `json:"created_at"`
	UpdatedAt             time.Time     `json:"updated_at"`
}

type PaymentTransactionType string

const (
	PaymentTransactionInitiation   PaymentTransactionType = "initiation"
	PaymentTransactionConfirmation PaymentTransactionType = "confirmation"
	PaymentTransactionRefund       PaymentTransactionType = "refund"
)

// PaymentTransaction is one append-only ledger entry. Entries are never
// updated or deleted, they are the durable audit trail for a payment.
type PaymentTransaction struct {
	ID        string                 `json:"id" bson:"_id"`
	PaymentID string                 `json:"payment_id" bson:"payment_id"`
	Type      PaymentTransactionType `json:"type" bson:"type"`
	Amount    float64                `json:"amount" bson:"amount"`
	Metadata  map[string]string      `json:"metadata,omitempty" bson:"metadata,omitempty"`
	CreatedAt time.Time              `json:"created_at" bson:"created_at"`
}
