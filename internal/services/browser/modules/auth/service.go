package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/pgconsole/pgconsole/internal/services/browser/platform/errors"
	"github.com/pgconsole/pgconsole/internal/services/browser/storage"
)

// signedIn is the outcome of a successful sign-in.
type signedIn struct {
	Token string
	TTL   time.Duration
}

type service struct {
	users  UserReader
	issuer TokenIssuer
}

func newService(users UserReader, issuer TokenIssuer) service {
	return service{users: users, issuer: issuer}
}

// signIn verifies the credentials and issues a session token. Unknown users,
// inactive users and wrong passwords fail identically.
func (s service) signIn(ctx context.Context, email, password string) (signedIn, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return signedIn{}, apperrors.EK(apperrors.KindInvalidInput, "error.login.required", "email and password are required")
	}
	if s.users == nil || s.issuer == nil {
		return signedIn{}, apperrors.E(apperrors.KindUnavailable, "sign-in is not configured")
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if errors.Is(err, storage.ErrNotFound) {
		return signedIn{}, invalidCredentials()
	}
	if err != nil {
		return signedIn{}, apperrors.Wrap(apperrors.KindUnavailable, "load user", err)
	}
	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return signedIn{}, invalidCredentials()
	}
	if !user.Active {
		return signedIn{}, invalidCredentials()
	}

	token, err := s.issuer.Issue(user.ID, user.Email)
	if err != nil {
		return signedIn{}, err
	}
	return signedIn{Token: token, TTL: s.issuer.TTL()}, nil
}

func invalidCredentials() error {
	return apperrors.EK(apperrors.KindUnauthorized, "error.login.invalid", "invalid credentials")
}
