package models

import (
	"github.com/RASHMI-2005/hospital-management-system/server/auth"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// User is an administrative account. Rows are created at signup and
// never updated or deleted through this surface.
type User struct {
	BaseModel
	Username     string `json:"username" gorm:"not null;unique"`
	Email        string `json:"email" gorm:"not null;unique"`
	PasswordHash string `json:"-" gorm:"not null"`
}

// CreateUser stores a new account with a bcrypt hash of password.
// Returns ErrDuplicateIdentity without writing when the username or
// email is already taken.
func CreateUser(user *User, password string) error {
	taken, err := identityTaken(user.Username, user.Email)
	if err != nil {
		return errors.Wrap(err, "CreateUser")
	}
	if taken {
		return ErrDuplicateIdentity
	}

	user.PasswordHash, err = auth.HashPassword(password)
	if err != nil {
		return errors.Wrap(err, "CreateUser")
	}

	return db.Create(user).Error
}

// FindUserByIdentifier looks an account up by username or email.
func FindUserByIdentifier(identifier string) (*User, error) {
	user := User{}
	err := db.First(&user, "username = ? OR email = ?", identifier, identifier).Error
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func identityTaken(username, email string) (bool, error) {
	err := db.Select("id").First(&User{}, "username = ? OR email = ?", username, email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}

	if err != nil {
		return false, err
	}

	return true, nil
}
