package responses

import "time"

type Payment struct {
	ID                    string    `json:"id"`
	UserID                string    `json:"user_id"`
	OrderType             string    `json:"order_type"`
	OrderID               string    `json:"order_id"`
	Amount                float64   `json:"amount"`
	RefundedAmount        float64   `json:"refunded_amount"`
	Method                string    `json:"method"`
	Provider              string    `json:"provider,omitempty"`
	Status                string    `json:"status"`
	ProviderTransactionID string    `json:"provider_transaction_id,omitempty"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

type InitiatePayment struct {
	Payment          Payment `json:"payment"`
	RequiresRedirect bool    `json:"requires_redirect"`
	RedirectURL      string  `json:"redirect_url,omitempty"`
}
