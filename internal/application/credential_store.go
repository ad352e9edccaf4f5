package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/coursehub-user-service/internal/domain/entity"
	repo "github.com/oksasatya/coursehub-user-service/internal/domain/repository"
)

// SecretHasher is satisfied by helpers.PasswordHasher.
type SecretHasher interface {
	Hash(plain string) (string, error)
	Compare(hash, plain string) (bool, error)
}

// CredentialStore owns user persistence and one-way secret handling.
// Plaintext secrets never leave this type.
type CredentialStore struct {
	Repo   repo.UserRepository
	Hasher SecretHasher
	NewID  func() string
}

func NewCredentialStore(r repo.UserRepository, h SecretHasher) *CredentialStore {
	return &CredentialStore{Repo: r, Hasher: h, NewID: uuid.NewString}
}

// CreateUser hashes plain and inserts the user. Email uniqueness is enforced by
// the repository, so concurrent creates for one email yield ErrDuplicateEmail.
func (s *CredentialStore) CreateUser(ctx context.Context, name, email, plain string, role entity.Role) (*entity.User, error) {
	if !role.Valid() {
		return nil, entity.ErrInvalidRole
	}
	hash, err := s.Hasher.Hash(plain)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &entity.User{
		ID:           s.NewID(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *CredentialStore) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return s.find(s.Repo.GetByEmail(ctx, email))
}

func (s *CredentialStore) FindByID(ctx context.Context, id string) (*entity.User, error) {
	return s.find(s.Repo.GetByID(ctx, id))
}

func (s *CredentialStore) find(u *entity.User, err error) (*entity.User, error) {
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// VerifySecret reports whether candidate matches the stored hash. A hash that
// cannot be evaluated returns false together with ErrVerification.
func (s *CredentialStore) VerifySecret(u *entity.User, candidate string) (bool, error) {
	ok, err := s.Hasher.Compare(u.PasswordHash, candidate)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrVerification, err)
	}
	return ok, nil
}

// UpdateSecret replaces the stored hash with a hash of plain.
func (s *CredentialStore) UpdateSecret(ctx context.Context, id, plain string) error {
	hash, err := s.Hasher.Hash(plain)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.Repo.UpdatePassword(ctx, id, hash); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

func (s *CredentialStore) SetResetToken(ctx context.Context, id, token string, expiry time.Time) error {
	if err := s.Repo.SetResetToken(ctx, id, token, expiry); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

func (s *CredentialStore) UpdateProfile(ctx context.Context, u *entity.User) error {
	if err := s.Repo.UpdateProfile(ctx, u); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}
