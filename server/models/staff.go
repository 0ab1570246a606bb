package models

type Staff struct {
	BaseModel
	Name  string `json:"name" gorm:"not null"`
	Role  string `json:"role" gorm:"not null"`
	Phone string `json:"phone" gorm:"not null"`
	Email string `json:"email" gorm:"not null"`
}

// TableName keeps the table singular-free; gorm would otherwise
// pluralize Staff to "staffs".
func (Staff) TableName() string {
	return "staff"
}

func CreateStaff(staff *Staff) error {
	return db.Create(staff).Error
}

func FetchStaff() ([]Staff, error) {
	staffMembers := []Staff{}
	err := db.Order("name ASC").Find(&staffMembers).Error
	if err != nil {
		return nil, err
	}

	return staffMembers, nil
}
