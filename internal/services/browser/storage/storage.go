package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound reports a missing record.
var ErrNotFound = errors.New("not found")

// ErrConflict reports a uniqueness violation.
var ErrConflict = errors.New("conflict")

// User is one console login.
type User struct {
	ID           string
	Email        string
	PasswordHash []byte
	Active       bool
	CreatedAt    time.Time
}

// ServerGroup is a user-owned folder of server descriptors shown at the root
// of the browser tree.
type ServerGroup struct {
	ID     int64
	UserID string
	Name   string
}

// UserStore persists console users.
type UserStore interface {
	GetUser(ctx context.Context, id string) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	CreateUser(ctx context.Context, user User) error
}

// SettingStore persists per-user key/value settings.
type SettingStore interface {
	// GetSetting returns fallback when the user has no value for key.
	GetSetting(ctx context.Context, userID, key, fallback string) (string, error)
	SetSetting(ctx context.Context, userID, key, value string) error
}

// ServerGroupStore persists server groups.
type ServerGroupStore interface {
	ListServerGroups(ctx context.Context, userID string) ([]ServerGroup, error)
	// EnsureServerGroup creates the named group for the user when absent.
	EnsureServerGroup(ctx context.Context, userID, name string) (ServerGroup, error)
}

// Store is the full browser persistence contract.
type Store interface {
	UserStore
	SettingStore
	ServerGroupStore
	Close() error
}
