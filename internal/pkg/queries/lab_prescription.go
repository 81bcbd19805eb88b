package queries

const (
	InsertLabPrescription = `
		INSERT INTO lab_prescriptions (
			id,
			appointment_id,
			patient_id,
			doctor_id
		) VALUES ($1, $2, $3, $4)
		RETURNING id, appointment_id, patient_id, doctor_id, created_at
	`

	InsertLabPrescriptionItem = `
		INSERT INTO lab_prescription_items (
			id,
			prescription_id,
			lab_test_id,
			physician_notes
		) VALUES ($1, $2, $3, $4)
	`

	GetLabPrescriptionByID = `
		SELECT
			id,
			appointment_id,
			patient_id,
			doctor_id,
			created_at
		FROM lab_prescriptions
		WHERE id = $1
	`

	GetLabPrescriptionItemsByPrescriptionID = `
		SELECT
			id,
			prescription_id,
			lab_test_id,
			physician_notes
		FROM lab_prescription_items
		WHERE prescription_id = $1
	`
)
