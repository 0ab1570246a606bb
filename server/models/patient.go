package models

import "github.com/pkg/errors"

type Patient struct {
	BaseModel
	Name         string `json:"name" gorm:"not null"`
	Proof        string `json:"proof" gorm:"not null"`
	ContactPhone string `json:"contact_phone"`
}

// PatientRegistration carries the validated fields of one registration
// form submission.
type PatientRegistration struct {
	Name            string
	Proof           string
	ContactPhone    string
	EmergencyReason string
	AssignedDoctor  string
	Priority        string
}

func CreatePatient(patient *Patient) error {
	return db.Create(patient).Error
}

// RegisterPatient inserts the patient row and, for High priority,
// a dependent emergency case referencing it.
//
// The two inserts are deliberately not one transaction: a failed second
// insert leaves the patient committed and returns ErrEmergencyEscalation,
// so callers can report "patient saved, escalation failed" instead of
// masking it as a total failure.
func RegisterPatient(params PatientRegistration) (*Patient, *EmergencyCase, error) {
	patient := &Patient{
		Name:         params.Name,
		Proof:        params.Proof,
		ContactPhone: params.ContactPhone,
	}

	if err := db.Create(patient).Error; err != nil {
		return nil, nil, errors.Wrap(err, "RegisterPatient")
	}

	if params.Priority != HIGH_PRIORITY {
		return patient, nil, nil
	}

	emergencyCase := &EmergencyCase{
		PatientID:       &patient.ID,
		PatientName:     params.Name,
		PatientProof:    params.Proof,
		ContactPhone:    params.ContactPhone,
		EmergencyReason: params.EmergencyReason,
		AssignedDoctor:  params.AssignedDoctor,
		Priority:        params.Priority,
	}

	if err := CreateEmergencyCase(emergencyCase); err != nil {
		logg.Errorf("emergency escalation failed for patient %v: %v", patient.ID, err)
		return patient, nil, ErrEmergencyEscalation
	}

	return patient, emergencyCase, nil
}

// FetchPatientsByName lists all patients ordered by name, for the
// laboratory/medical-record dropdowns.
func FetchPatientsByName() ([]Patient, error) {
	patients := []Patient{}
	err := db.Order("name ASC").Find(&patients).Error
	if err != nil {
		return nil, err
	}

	return patients, nil
}

// FetchNormalPatients lists patients with no emergency case referencing
// them, newest first. The anti-join is recomputed on every read; the
// subquery skips null back-references so direct-intake cases cannot
// blank the whole list.
func FetchNormalPatients() ([]Patient, error) {
	patients := []Patient{}
	err := db.
		Where("id NOT IN (?)", db.Model(&EmergencyCase{}).Select("patient_id").Where("patient_id IS NOT NULL")).
		Order("id DESC").
		Find(&patients).Error
	if err != nil {
		return nil, err
	}

	return patients, nil
}
