package queries

const (
	paymentColumns = `
		id,
		user_id,
		order_type,
		order_id,
		amount,
		refunded_amount,
		method,
		provider,
		status,
		provider_transaction_id,
		created_at,
		updated_at
	`

	InsertPayment = `
		INSERT INTO payments (
			id,
			user_id,
			order_type,
			order_id,
			amount,
			method,
			provider,
			status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING` + paymentColumns

	GetPaymentByID = `
		SELECT` + paymentColumns + `
		FROM payments
		WHERE id = $1
	`

	GetPaymentByProviderTransactionID = `
		SELECT` + paymentColumns + `
		FROM payments
		WHERE provider_transaction_id = $1
	`

	UpdatePayment = `
		UPDATE payments SET
			refunded_amount = $2,
			status = $3,
			provider_transaction_id = $4,
			updated_at = $5
		WHERE id = $1
		RETURNING` + paymentColumns
)
