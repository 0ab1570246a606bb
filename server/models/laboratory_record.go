package models

type LaboratoryRecord struct {
	BaseModel
	TestName  string `json:"test_name" gorm:"not null"`
	PatientID uint   `json:"patient_id" gorm:"not null"`
	Result    string `json:"result" gorm:"not null"`
	TestDate  string `json:"test_date" gorm:"not null"`
}

func CreateLaboratoryRecord(record *LaboratoryRecord) error {
	return db.Create(record).Error
}

// FetchLaboratoryRecords lists lab results newest first.
func FetchLaboratoryRecords() ([]LaboratoryRecord, error) {
	records := []LaboratoryRecord{}
	err := db.Order("id DESC").Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}
