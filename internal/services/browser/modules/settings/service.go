package settings

import (
	"context"
	"strings"

	apperrors "github.com/pgconsole/pgconsole/internal/services/browser/platform/errors"
)

// maxValueBytes bounds a stored setting value; saved layouts are the largest.
const maxValueBytes = 256 << 10

type service struct {
	store Store
}

func newService(store Store) service {
	return service{store: store}
}

func (s service) get(ctx context.Context, userID, key string) (string, error) {
	key, err := normalizeKey(key)
	if err != nil {
		return "", err
	}
	if s.store == nil {
		return "", apperrors.E(apperrors.KindUnavailable, "settings store is not configured")
	}
	value, err := s.store.GetSetting(ctx, userID, key, "")
	if err != nil {
		return "", apperrors.Wrap(apperrors.KindUnknown, "load setting", err)
	}
	return value, nil
}

func (s service) set(ctx context.Context, userID, key, value string) error {
	key, err := normalizeKey(key)
	if err != nil {
		return err
	}
	if len(value) > maxValueBytes {
		return apperrors.E(apperrors.KindInvalidInput, "setting value is too large")
	}
	if s.store == nil {
		return apperrors.E(apperrors.KindUnavailable, "settings store is not configured")
	}
	if err := s.store.SetSetting(ctx, userID, key, value); err != nil {
		return apperrors.Wrap(apperrors.KindUnknown, "store setting", err)
	}
	return nil
}

func normalizeKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", apperrors.E(apperrors.KindInvalidInput, "setting name is required")
	}
	return key, nil
}
