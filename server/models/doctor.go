package models

type Doctor struct {
	BaseModel
	Name      string `json:"name" gorm:"not null"`
	Specialty string `json:"specialty" gorm:"not null"`
	Phone     string `json:"phone" gorm:"not null"`
}

func CreateDoctor(doctor *Doctor) error {
	return db.Create(doctor).Error
}

// FetchDoctors lists every doctor ordered by name, the order the
// roster page renders in.
func FetchDoctors() ([]Doctor, error) {
	doctors := []Doctor{}
	err := db.Order("name ASC").Find(&doctors).Error
	if err != nil {
		return nil, err
	}

	return doctors, nil
}
