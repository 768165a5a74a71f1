package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/pgconsole/pgconsole/internal/services/browser/storage"
)

// UserWriter creates users.
type UserWriter interface {
	UserReader
	CreateUser(ctx context.Context, user storage.User) error
}

// EnsureUser returns the user with email, creating an active account with a
// bcrypt hash of password when none exists. An existing account keeps its
// password.
func EnsureUser(ctx context.Context, users UserWriter, email, password string) (storage.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return storage.User{}, fmt.Errorf("bootstrap user email and password are required")
	}
	existing, err := users.GetUserByEmail(ctx, email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return storage.User{}, fmt.Errorf("load bootstrap user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return storage.User{}, fmt.Errorf("hash bootstrap password: %w", err)
	}
	user := storage.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Active:       true,
	}
	if err := users.CreateUser(ctx, user); err != nil {
		return storage.User{}, fmt.Errorf("create bootstrap user: %w", err)
	}
	return user, nil
}
