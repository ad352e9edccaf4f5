package entity

import (
	"time"
)

// User is the aggregate root for the user domain.
// PasswordHash holds an argon2id (or legacy bcrypt) encoding, never the plaintext.
type User struct {
	ID               string
	Name             string
	Email            string
	PasswordHash     string
	Role             Role
	ResetToken       *string
	ResetTokenExpiry *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Identity returns the user without any secret material.
func (u *User) Identity() AuthenticatedUser {
	return AuthenticatedUser{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// AuthenticatedUser is the caller resolved by the access gate.
// It is the only identity downstream handlers see.
type AuthenticatedUser struct {
	ID        string
	Name      string
	Email     string
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (a AuthenticatedUser) Can(c Capability) bool { return a.Role.Can(c) }
