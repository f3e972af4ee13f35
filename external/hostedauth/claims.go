package hostedauth

import (
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/riskibarqy/creator-booking/internal/domain/user"
)

// sessionClaims mirrors the access token issued by the hosted auth service.
// The top-level role is the database role ("authenticated"); the app role
// lives in the metadata objects.
type sessionClaims struct {
	Email        string         `json:"email,omitempty"`
	Role         string         `json:"role,omitempty"`
	AppMetadata  map[string]any `json:"app_metadata,omitempty"`
	UserMetadata map[string]any `json:"user_metadata,omitempty"`
	jwt.RegisteredClaims
}

var databaseRoles = map[string]struct{}{
	"authenticated": {},
	"anon":          {},
	"service_role":  {},
}

// resolveRole picks the app role from app_metadata, then user_metadata, then
// the top-level claim. user_metadata is writable by the account holder, so it
// can never grant admin.
func resolveRole(appMetadata, userMetadata map[string]any, topLevel string) (user.Role, error) {
	if role, ok := metadataRole(appMetadata); ok {
		return user.ParseRole(role)
	}
	if role, ok := metadataRole(userMetadata); ok {
		parsed, err := user.ParseRole(role)
		if err != nil {
			return "", err
		}
		if parsed == user.RoleAdmin {
			return "", fmt.Errorf("%w: admin cannot be self-assigned", user.ErrInvalidRole)
		}
		return parsed, nil
	}

	topLevel = strings.TrimSpace(topLevel)
	if _, ignored := databaseRoles[strings.ToLower(topLevel)]; ignored || topLevel == "" {
		return "", fmt.Errorf("%w: session carries no app role", user.ErrInvalidRole)
	}
	return user.ParseRole(topLevel)
}

func metadataRole(metadata map[string]any) (string, bool) {
	if metadata == nil {
		return "", false
	}
	raw, ok := metadata["role"].(string)
	if !ok || strings.TrimSpace(raw) == "" {
		return "", false
	}
	return raw, true
}
