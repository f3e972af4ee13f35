package user

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNoSession    = errors.New("no active session")
	ErrRoleMismatch = errors.New("session role does not match route")
	ErrInvalidRole  = errors.New("invalid role")
)

// Role is the closed set of account kinds a session can carry.
type Role string

const (
	RoleInfluencer Role = "influencer"
	RoleCreator    Role = "creator"
	RoleAdmin      Role = "admin"
)

// ParseRole accepts canonical names and the legacy customer/team aliases.
func ParseRole(raw string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "influencer", "customer":
		return RoleInfluencer, nil
	case "creator", "team":
		return RoleCreator, nil
	case "admin":
		return RoleAdmin, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, raw)
	}
}

func (r Role) Valid() bool {
	switch r {
	case RoleInfluencer, RoleCreator, RoleAdmin:
		return true
	default:
		return false
	}
}

// AuthPath is the sign-in page a denied request is sent to.
func (r Role) AuthPath() string {
	switch r {
	case RoleCreator:
		return "/auth/creator"
	case RoleAdmin:
		return "/auth/admin"
	default:
		return "/auth/influencer"
	}
}

func (r Role) String() string {
	return string(r)
}

type Principal struct {
	UserID string
	Email  string
	Role   Role
}

// Authorize is the single route guard: a session must be present and carry
// the role the route expects.
func Authorize(p Principal, present bool, want Role) error {
	if !present || strings.TrimSpace(p.UserID) == "" {
		return ErrNoSession
	}
	if p.Role != want {
		return fmt.Errorf("%w: have %s, want %s", ErrRoleMismatch, p.Role, want)
	}
	return nil
}
