package service

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"

	"github.com/dentware/clinicdesk/internal/domain"
)

// CredentialVerifier is the pluggable credential check. Implementations
// return the matched identity, or false with no hint of whether the email
// or the password was wrong.
type CredentialVerifier interface {
	Verify(email, password string) (domain.User, bool)
}

// Directory is a verifier that can also resolve users by id, which token
// refresh needs.
type Directory interface {
	CredentialVerifier
	ByID(id string) (domain.User, bool)
}

// StaticDirectory is the demo-grade fixed user list: plaintext passwords,
// exact case-sensitive match. Not a security boundary; swap in
// HashedDirectory (or a real user store) behind the same interface when
// that changes.
type StaticDirectory struct {
	users []domain.User
}

func NewStaticDirectory(users []domain.User) *StaticDirectory {
	return &StaticDirectory{users: users}
}

// DefaultDirectory covers the seed dataset: one admin and one account per
// seeded patient.
func DefaultDirectory() *StaticDirectory {
	return NewStaticDirectory([]domain.User{
		{ID: "1", Role: domain.RoleAdmin, Email: "admin@entnt.in", Password: "admin123"},
		{ID: "2", Role: domain.RolePatient, Email: "john.doe@entnt.in", Password: "patient123", PatientID: "p1"},
	})
}

func (d *StaticDirectory) Verify(email, password string) (domain.User, bool) {
	for _, u := range d.users {
		if u.Email != email {
			continue
		}
		if subtle.ConstantTimeCompare([]byte(u.Password), []byte(password)) == 1 {
			return u, true
		}
		return domain.User{}, false
	}
	return domain.User{}, false
}

func (d *StaticDirectory) ByID(id string) (domain.User, bool) {
	for _, u := range d.users {
		if u.ID == id {
			return u, true
		}
	}
	return domain.User{}, false
}

// HashedDirectory is the same fixed list with bcrypt password hashes, for
// deployments that outgrow plaintext demo credentials.
type HashedDirectory struct {
	users []domain.User // Password holds the bcrypt hash
}

func NewHashedDirectory(users []domain.User) *HashedDirectory {
	return &HashedDirectory{users: users}
}

// HashPassword produces a bcrypt hash suitable for HashedDirectory
// entries.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (d *HashedDirectory) Verify(email, password string) (domain.User, bool) {
	for _, u := range d.users {
		if u.Email != email {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) == nil {
			return u, true
		}
		return domain.User{}, false
	}
	// Dummy hash comparison keeps the timing of unknown-email and
	// wrong-password failures indistinguishable.
	_, _ = bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return domain.User{}, false
}

func (d *HashedDirectory) ByID(id string) (domain.User, bool) {
	for _, u := range d.users {
		if u.ID == id {
			return u, true
		}
	}
	return domain.User{}, false
}
