package contracts

import (
	"context"
	"medilab-service/internal/app/models"
	"medilab-service/internal/pkg/dto/requests"
	"medilab-service/internal/pkg/dto/responses"
)

type PaymentRepository interface {
	CreatePayment(ctx context.Context, payment *models.Payment) (*models.Payment, error)
	FindByID(ctx context.Context, paymentID string) (*models.Payment, error)
	FindByProviderTransactionID(ctx context.Context, providerTransactionID string) (*models.Payment, error)
	UpdatePayment(ctx context.Context, payment *models.Payment) (*models.Payment, error)
}

// PaymentLedgerRepository is append-only. Entries are never mutated after
// creation.
type PaymentLedgerRepository interface {
	AppendEntry(ctx context.Context, entry *models.PaymentTransaction) (*models.PaymentTransaction, error)
	FindByPaymentID(ctx context.Context, paymentID string) ([]models.PaymentTransaction, error)
	CountByPaymentIDAndType(ctx context.Context, paymentID string, entryType models.PaymentTransactionType) (int64, error)
}

type PaymentUsecase interface {
	InitiatePayment(ctx context.Context, userID string, request *requests.InitiatePayment) (*responses.InitiatePayment, error)
	ConfirmPayment(ctx context.Context, request *requests.PaymentCallback) (*responses.Payment, error)
	CancelPayment(ctx context.Context, paymentID, userID string) (*responses.Payment, error)
	RefundPayment(ctx context.Context, paymentID, adminUserID string, request *requests.RefundPayment) (*responses.Payment, error)
	FindByID(ctx context.Context, paymentID string) (*responses.Payment, error)
}
