package models

import (
	"strings"
	"time"
)

const (
	HIGH_PRIORITY   = "High"
	MEDIUM_PRIORITY = "Medium"
	LOW_PRIORITY    = "Low"
)

// EmergencyCase is an emergency intake record. PatientID is only set
// when the case was raised by a High priority patient registration;
// cases filed directly have no linked patient row.
type EmergencyCase struct {
	BaseModel
	PatientID       *uint     `json:"patient_id"`
	PatientName     string    `json:"patient_name" gorm:"not null"`
	PatientProof    string    `json:"patient_proof" gorm:"not null"`
	ContactPhone    string    `json:"contact_phone"`
	EmergencyReason string    `json:"emergency_reason"`
	AssignedDoctor  string    `json:"assigned_doctor"`
	Priority        string    `json:"priority" gorm:"not null"`
	ReportedAt      time.Time `json:"reported_at" gorm:"not null"`
}

func CreateEmergencyCase(emergencyCase *EmergencyCase) error {
	if emergencyCase.Priority == "" {
		emergencyCase.Priority = MEDIUM_PRIORITY
	}
	if emergencyCase.ReportedAt.IsZero() {
		emergencyCase.ReportedAt = time.Now()
	}

	return db.Create(emergencyCase).Error
}

// FetchEmergencyCases lists every case, most recently reported first.
func FetchEmergencyCases() ([]EmergencyCase, error) {
	cases := []EmergencyCase{}
	err := db.Order("reported_at DESC, id DESC").Find(&cases).Error
	if err != nil {
		return nil, err
	}

	return cases, nil
}

// SearchEmergencyCases filters cases whose patient name or proof
// contains term, case-insensitively. An empty term returns the full
// list in the same order as FetchEmergencyCases.
func SearchEmergencyCases(term string) ([]EmergencyCase, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return FetchEmergencyCases()
	}

	pattern := "%" + strings.ToLower(term) + "%"
	cases := []EmergencyCase{}
	err := db.
		Where("LOWER(patient_name) LIKE ? OR LOWER(patient_proof) LIKE ?", pattern, pattern).
		Order("reported_at DESC, id DESC").
		Find(&cases).Error
	if err != nil {
		return nil, err
	}

	return cases, nil
}

func ValidPriority(priority string) bool {
	return priority == HIGH_PRIORITY || priority == MEDIUM_PRIORITY || priority == LOW_PRIORITY
}
