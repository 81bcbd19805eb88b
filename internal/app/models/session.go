package models

import "time"

type Session struct {
	SessionID    string
	UserID       string
	Role         string
	PatientID    string
	LaboratoryID string
	ExpiresAt    time.Time
}

func (s *Session) IsPatient() bool {
	return s.Role == "patient"
}

func (s *Session) IsLaboratory() bool {
	return s.Role == "laboratory"
}

func (s *Session) IsAdmin() bool {
	return s.Role == "admin"
}
