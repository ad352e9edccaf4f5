package repository

import (
	"context"
	"errors"
	"time"

	"github.com/oksasatya/coursehub-user-service/internal/domain/entity"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("email already in use")
)

// UserRepository defines the interface for user-related storage operations.
// Create must enforce email uniqueness itself and report ErrDuplicateEmail.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	UpdateProfile(ctx context.Context, u *entity.User) error
	UpdatePassword(ctx context.Context, id, hash string) error
	SetResetToken(ctx context.Context, id, token string, expiry time.Time) error
}
