package models

import "time"

// Session binds an opaque cookie token to an authenticated account.
// Nothing beyond the token itself is trusted from the client.
type Session struct {
	BaseModel
	Token     string    `json:"-" gorm:"not null;unique"`
	UserID    uint      `json:"user_id" gorm:"not null"`
	User      User      `json:"-"`
	ExpiresAt time.Time `json:"expires_at" gorm:"not null"`
}

func CreateSession(session *Session) error {
	return db.Create(session).Error
}

// FindSessionByToken returns the session for token with its user loaded.
func FindSessionByToken(token string) (*Session, error) {
	session := Session{}
	err := db.Preload("User").First(&session, "token = ?", token).Error
	if err != nil {
		return nil, err
	}

	return &session, nil
}

func DeleteSessionByToken(token string) error {
	return db.Where("token = ?", token).Delete(&Session{}).Error
}

// DeleteExpiredSessions removes every session past its expiry and
// reports how many were dropped.
func DeleteExpiredSessions() (int64, error) {
	result := db.Where("expires_at <= ?", time.Now()).Delete(&Session{})
	return result.RowsAffected, result.Error
}
