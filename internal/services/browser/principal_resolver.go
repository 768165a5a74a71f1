package browser

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/pgconsole/pgconsole/internal/platform/logging"
	"github.com/pgconsole/pgconsole/internal/platform/requestctx"
	"github.com/pgconsole/pgconsole/internal/services/browser/platform/sessioncookie"
	"github.com/pgconsole/pgconsole/internal/services/browser/session"
	"github.com/pgconsole/pgconsole/internal/services/browser/storage"
)

type sessionVerifier interface {
	Verify(token string) (session.Claims, error)
}

type userLookup interface {
	GetUser(ctx context.Context, id string) (storage.User, error)
}

type principalResolver struct {
	sessions sessionVerifier
	users    userLookup
	logger   *zap.Logger
}

func newPrincipalResolver(sessions sessionVerifier, users userLookup, logger *zap.Logger) principalResolver {
	return principalResolver{sessions: sessions, users: users, logger: logging.OrNop(logger)}
}

// resolve maps the session cookie to an active user. The token alone is not
// trusted: deactivated or deleted users lose access before their token
// expires.
func (p principalResolver) resolve(r *http.Request) (requestctx.Principal, bool) {
	if r == nil || p.sessions == nil || p.users == nil {
		return requestctx.Principal{}, false
	}
	token, ok := sessioncookie.Read(r)
	if !ok {
		return requestctx.Principal{}, false
	}
	claims, err := p.sessions.Verify(token)
	if err != nil {
		p.logger.Debug("session rejected", zap.Error(err))
		return requestctx.Principal{}, false
	}
	user, err := p.users.GetUser(r.Context(), claims.UserID)
	if err != nil {
		p.logger.Debug("session user lookup failed", zap.String("user_id", claims.UserID), zap.Error(err))
		return requestctx.Principal{}, false
	}
	if !user.Active {
		return requestctx.Principal{}, false
	}
	return requestctx.Principal{UserID: user.ID, Email: user.Email}, true
}
