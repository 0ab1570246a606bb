package models

type MedicalRecord struct {
	BaseModel
	PatientID  uint   `json:"patient_id" gorm:"not null"`
	Diagnosis  string `json:"diagnosis" gorm:"not null"`
	Treatment  string `json:"treatment" gorm:"not null"`
	RecordDate string `json:"record_date" gorm:"not null"`
}

// MedicalRecordEntry is a medical record joined with the name of the
// patient it belongs to, for display.
type MedicalRecordEntry struct {
	MedicalRecord
	PatientName string `json:"patient_name"`
}

func CreateMedicalRecord(record *MedicalRecord) error {
	return db.Create(record).Error
}

// FetchMedicalRecords lists records joined against their patient,
// newest record date first. Records whose patient is gone drop out of
// the view via the inner join rather than erroring.
func FetchMedicalRecords() ([]MedicalRecordEntry, error) {
	entries := []MedicalRecordEntry{}
	err := db.Table("medical_records").
		Select("medical_records.*, patients.name AS patient_name").
		Joins("INNER JOIN patients ON patients.id = medical_records.patient_id").
		Order("medical_records.record_date DESC, medical_records.id DESC").
		Scan(&entries).Error
	if err != nil {
		return nil, err
	}

	return entries, nil
}
