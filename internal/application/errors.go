package application

import (
	"errors"

	"github.com/oksasatya/coursehub-user-service/internal/domain/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrDuplicateEmail     = repository.ErrDuplicateEmail
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailNotFound      = errors.New("email not found")
	ErrVerification       = errors.New("password verification failed")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrIncorrectPassword  = errors.New("current password is incorrect")
	ErrMailDispatch       = errors.New("failed to send reset email")
)
