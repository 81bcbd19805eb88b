package responses

import "time"

type LabPrescription struct {
	ID            string                `json:"id"`
	AppointmentID string                `json:"appointment_id"`
	PatientID     string                `json:"patient_id"`
	DoctorID      string                `json:"doctor_id"`
	Items         []LabPrescriptionItem `json:"items"`
	CreatedAt     time.Time             `json:"created_at"`
}

type LabPrescriptionItem struct {
	ID             string `json:"id"`
	LabTestID      string `json:"lab_test_id"`
	TestName       string `json:"test_name"`
	PhysicianNotes string `json:"physician_notes,omitempty"`
}
