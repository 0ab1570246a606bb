package session

import (
	"time"

	"github.com/RASHMI-2005/hospital-management-system/server/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Identity is what a valid session resolves a request to.
type Identity struct {
	UserID   uint
	Username string
}

// Store issues and resolves opaque session tokens persisted alongside
// the rest of the data. Handlers receive it explicitly rather than
// reaching for ambient global state.
type Store struct {
	lifetime time.Duration
}

func NewStore(lifetime time.Duration) *Store {
	return &Store{lifetime: lifetime}
}

// Create starts a session for user and returns the token to hand to
// the client. The token is the only thing the client holds.
func (store *Store) Create(user *models.User) (string, error) {
	session := &models.Session{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(store.lifetime),
	}

	if err := models.CreateSession(session); err != nil {
		return "", err
	}

	return session.Token, nil
}

// Get resolves token to the identity it was issued for. Expired
// sessions are deleted on sight and treated as absent.
func (store *Store) Get(token string) (*Identity, error) {
	session, err := models.FindSessionByToken(token)
	if err != nil {
		return nil, err
	}

	if time.Now().After(session.ExpiresAt) {
		models.DeleteSessionByToken(token)
		return nil, gorm.ErrRecordNotFound
	}

	return &Identity{UserID: session.UserID, Username: session.User.Username}, nil
}

// Destroy invalidates token server-side.
func (store *Store) Destroy(token string) error {
	return models.DeleteSessionByToken(token)
}

// PurgeExpired drops every expired session and reports the count.
func (store *Store) PurgeExpired() (int64, error) {
	return models.DeleteExpiredSessions()
}
