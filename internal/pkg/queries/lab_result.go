package queries

const (
	labResultColumns = `
		id,
		order_id,
		lab_test_id,
		value,
		reference_range,
		unit,
		notes,
		document_url,
		created_at,
		updated_at
	`

	InsertLabResult = `
		INSERT INTO lab_results (
			id,
			order_id,
			lab_test_id,
			value,
			reference_range,
			unit,
			notes
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING` + labResultColumns

	GetLabResultByID = `
		SELECT` + labResultColumns + `
		FROM lab_results
		WHERE id = $1
	`

	GetLabResultsByOrderID = `
		SELECT` + labResultColumns + `
		FROM lab_results
		WHERE order_id = $1
		ORDER BY created_at ASC
	`

	UpdateLabResult = `
		UPDATE lab_results SET
			value = $2,
			reference_range = $3,
			unit = $4,
			notes = $5,
			document_url = $6,
			updated_at = $7
		WHERE id = $1
		RETURNING` + labResultColumns
)
