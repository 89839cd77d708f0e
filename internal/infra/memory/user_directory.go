package memory

import (
	"context"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"quiz-rooms-service/internal/domain"
)

// UserDirectory is a map-backed user store used when Mongo is not configured
// and in tests. Passwords are bcrypt-hashed like the Mongo implementation.
type UserDirectory struct {
	mu    sync.RWMutex
	users map[string]userRecord
}

type userRecord struct {
	user domain.User
	hash []byte
}

func NewUserDirectory() *UserDirectory {
	return &UserDirectory{users: make(map[string]userRecord)}
}

func (d *UserDirectory) Authenticate(_ context.Context, identifier, password string) (domain.User, error) {
	d.mu.RLock()
	rec, ok := d.users[identifier]
	d.mu.RUnlock()
	if !ok {
		return domain.User{}, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(rec.hash, []byte(password)); err != nil {
		return domain.User{}, domain.ErrInvalidCredentials
	}
	return rec.user, nil
}

func (d *UserDirectory) Create(_ context.Context, user domain.User, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.users[user.ID]; ok {
		return domain.ErrUserExists
	}
	d.users[user.ID] = userRecord{user: user, hash: hash}
	return nil
}

func (d *UserDirectory) Update(_ context.Context, identifier string, fields domain.UserUpdate) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	rec, ok := d.users[identifier]
	if !ok {
		return domain.ErrUserNotFound
	}
	rec.user.Avatar = fields.Avatar
	rec.user.Genres = fields.Genres
	rec.user.FirstName = fields.FirstName
	rec.user.LastName = fields.LastName
	rec.user.Name = fields.FirstName + " " + fields.LastName
	d.users[identifier] = rec
	return nil
}
