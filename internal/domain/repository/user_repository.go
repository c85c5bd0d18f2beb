package repository

import (
	"errors"

	"github.com/prowtech/complet-users/internal/domain/entity"
)

var (
	// ErrNotFound is returned when no row matches the given email.
	ErrNotFound = errors.New("user not found")
	// ErrDuplicateEmail is returned when an insert violates the unique
	// constraint on email. The service pre-checks for duplicates, but the
	// constraint is the actual guarantee under concurrent creates.
	ErrDuplicateEmail = errors.New("email already exists")
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	FindAll() ([]entity.User, error)
	FindByEmail(email string) (*entity.User, error)
	Create(u *entity.User) error
	UpdateAge(email string, age int) (*entity.User, error)
	Delete(email string) (*entity.User, error)
}
