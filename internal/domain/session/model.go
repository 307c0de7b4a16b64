package session

import (
	"context"
	"strings"
)

type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleCoach  Role = "COACH"
	RoleViewer Role = "VIEWER"
)

func NormalizeRole(value string) Role {
	return Role(strings.ToUpper(strings.TrimSpace(value)))
}

// User is the signed-in dashboard user.
type User struct {
	ID       string
	Username string
	Role     Role
}

// Store persists the signed-in user between process runs.
type Store interface {
	Load(ctx context.Context) (User, bool, error)
	Save(ctx context.Context, user User) error
	Clear(ctx context.Context) error
}
