package requests

type CreateLabPrescription struct {
	AppointmentID string                      `json:"appointment_id" validate:"required"`
	PatientID     string                      `json:"patient_id" validate:"required"`
	DoctorID      string                      `json:"doctor_id" validate:"required"`
	Items         []CreateLabPrescriptionItem `json:"items" validate:"required,min=1,dive"`
}

type CreateLabPrescriptionItem struct {
	LabTestID      string `json:"lab_test_id" validate:"required"`
	PhysicianNotes string `json:"physician_notes"`
}
