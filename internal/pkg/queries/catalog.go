package queries

const (
	GetLaboratoryByID = `
		SELECT
			id,
			name,
			has_home_collection,
			home_collection_fee
		FROM laboratories
		WHERE id = $1
	`

	GetLabTestByID = `
		SELECT
			id,
			name,
			category
		FROM lab_tests
		WHERE id = $1
	`

	GetLabTestPriceByLaboratoryAndTest = `
		SELECT
			laboratory_id,
			lab_test_id,
			price
		FROM lab_test_prices
		WHERE laboratory_id = $1 AND lab_test_id = $2
	`

	GetPatientByID = `
		SELECT
			id,
			user_id,
			full_name
		FROM patients
		WHERE id = $1
	`
)
