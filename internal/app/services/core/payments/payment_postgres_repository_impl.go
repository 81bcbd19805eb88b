package payments

import (
	"context"
	"database/sql"
	"medilab-service/internal/app/contracts"
	"medilab-service/internal/app/models"
	"medilab-service/internal/pkg/exceptions"
	"medilab-service/internal/pkg/queries"
)

type paymentPostgresRepository struct {
	DB *sql.DB
}

func NewPaymentPostgresRepository(db *sql.DB) contracts.PaymentRepository {
	return &paymentPostgresRepository{
		DB: db,
	}
}

func (repo *paymentPostgresRepository) CreatePayment(ctx context.Context, payment *models.Payment) (*models.Payment, error) {
	query := queries.InsertPayment
	var inserted models.Payment
	err := repo.DB.QueryRowContext(ctx, query,
		payment.ID,
		payment.UserID,
		payment.OrderType,
		payment.OrderID,
		payment.Amount,
		payment.Method,
		payment.Provider,
		payment.Status,
	).Scan(scanTargets(&inserted)...)
	if err != nil {
		return nil, exceptions.ErrPostgresDBInsertData(err)
	}
	return &inserted, nil
}

func (repo *paymentPostgresRepository) FindByID(ctx context.Context, paymentID string) (*models.Payment, error) {
	query := queries.GetPaymentByID
	var payment models.Payment
	err := repo.DB.QueryRowContext(ctx, query, paymentID).Scan(scanTargets(&payment)...)
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return &payment, nil
}

func (repo *paymentPostgresRepository) FindByProviderTransactionID(ctx context.Context, providerTransactionID string) (*models.Payment, error) {
	query := queries.GetPaymentByProviderTransactionID
	var payment models.Payment
	err := repo.DB.QueryRowContext(ctx, query, providerTransactionID).Scan(scanTargets(&payment)...)
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return &payment, nil
}

func (repo *paymentPostgresRepository) UpdatePayment(ctx context.Context, payment *models.Payment) (*models.Payment, error) {
	query := queries.UpdatePayment
	var updated models.Payment
	err := repo.DB.QueryRowContext(ctx, query,
		payment.ID,
		payment.RefundedAmount,
		payment.Status,
		payment.ProviderTransactionID,
		payment.UpdatedAt,
	).Scan(scanTargets(&updated)...)
	if err != nil {
		return nil, exceptions.ErrPostgresDBUpdateData(err)
	}
	return &updated, nil
}

func scanTargets(payment *models.Payment) []interface{} {
	return []interface{}{
		&payment.ID,
		&payment.UserID,
		&payment.OrderType,
		&payment.OrderID,
		&payment.Amount,
		&payment.RefundedAmount,
		&payment.Method,
		&payment.Provider,
		&payment.Status,
		&payment.ProviderTransactionID,
		&payment.CreatedAt,
		&payment.UpdatedAt,
	}
}
