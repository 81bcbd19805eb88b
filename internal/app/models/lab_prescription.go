package models

import "time"

// LabPrescription groups the tests a physician requested for one appointment.
// At most one LabOrder may reference a prescription.
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
	PrescriptionID string `json:"prescription_id"`
	LabTestID      string `json:"lab_test_id"`
	PhysicianNotes string `json:"physician_notes,omitempty"`
}
