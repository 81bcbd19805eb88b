package queries

const (
	labOrderColumns = `
		id,
		prescription_id,
		laboratory_id,
		patient_id,
		status,
		sample_collection_type,
		tests_total_cost,
		sample_collection_delivery_cost,
		cancellation_reason,
		rejection_reason,
		created_at,
		updated_at,
		confirmed_by_lab_at,
		paid_at,
		samples_collected_at,
		cancelled_at,
		rejected_at
	`

	InsertLabOrder = `
		INSERT INTO lab_orders (
			id,
			prescription_id,
			laboratory_id,
			patient_id,
			status,
			sample_collection_type
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING` + labOrderColumns

	GetLabOrderByID = `
		SELECT` + labOrderColumns + `
		FROM lab_orders
		WHERE id = $1
	`

	// FOR UPDATE pins the row for the duration of the guarded transition
	// transaction, serializing concurrent transitions on the same order.
	GetLabOrderByIDForUpdate = `
		SELECT` + labOrderColumns + `
		FROM lab_orders
		WHERE id = $1
		FOR UPDATE
	`

	GetLabOrderByPrescriptionID = `
		SELECT` + labOrderColumns + `
		FROM lab_orders
		WHERE prescription_id = $1
	`

	GetLabOrdersByPatientID = `
		SELECT` + labOrderColumns + `
		FROM lab_orders
		WHERE patient_id = $1
		ORDER BY created_at DESC
	`

	GetLabOrdersByLaboratoryID = `
		SELECT` + labOrderColumns + `
		FROM lab_orders
		WHERE laboratory_id = $1
		ORDER BY created_at DESC
	`

	UpdateLabOrder = `
		UPDATE lab_orders SET
			status = $2,
			tests_total_cost = $3,
			sample_collection_delivery_cost = $4,
			cancellation_reason = $5,
			rejection_reason = $6,
			updated_at = $7,
			confirmed_by_lab_at = $8,
			paid_at = $9,
			samples_collected_at = $10,
			cancelled_at = $11,
			rejected_at = $12
		WHERE id = $1
		RETURNING` + labOrderColumns
)
