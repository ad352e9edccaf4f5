package entity

import (
	"errors"
	"strings"
)

// Role is the authorization role carried by a user and its session token.
type Role string

const (
	RoleStudent    Role = "student"
	RoleInstructor Role = "instructor"
)

var ErrInvalidRole = errors.New("invalid role")

// ParseRole maps raw input to a Role. Empty input yields the default student role.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return RoleStudent, nil
	case RoleStudent:
		return RoleStudent, nil
	case RoleInstructor:
		return RoleInstructor, nil
	}
	return "", ErrInvalidRole
}

func (r Role) Valid() bool { return r == RoleStudent || r == RoleInstructor }

func (r Role) String() string { return string(r) }

// Capability names an operation guarded by the access gate.
type Capability string

const (
	CapProfileRead    Capability = "profile:read"
	CapProfileUpdate  Capability = "profile:update"
	CapPasswordChange Capability = "password:change"
	CapCoursesManage  Capability = "courses:manage"
)

var roleCapabilities = map[Role][]Capability{
	RoleStudent:    {CapProfileRead, CapProfileUpdate, CapPasswordChange},
	RoleInstructor: {CapProfileRead, CapProfileUpdate, CapPasswordChange, CapCoursesManage},
}

func (r Role) Can(c Capability) bool {
	for _, have := range roleCapabilities[r] {
		if have == c {
			return true
		}
	}
	return false
}

// Capabilities returns a copy of the capabilities granted to r.
func (r Role) Capabilities() []Capability {
	caps := roleCapabilities[r]
	out := make([]Capability, len(caps))
	copy(out, caps)
	return out
}
