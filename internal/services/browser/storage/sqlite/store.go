package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	sqlitemigrate "github.com/pgconsole/pgconsole/internal/platform/storage/sqlitemigrate"
	"github.com/pgconsole/pgconsole/internal/services/browser/storage"
	"github.com/pgconsole/pgconsole/internal/services/browser/storage/sqlite/migrations"
)

var _ storage.Store = (*Store)(nil)

// Store provides SQLite-backed persistence for browser data.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

// Open opens and migrates a browser SQLite store.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	if dir := filepath.Dir(filepath.Clean(path)); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}
	dsn := "file:" + filepath.Clean(path) +
		"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &Store{sqlDB: sqlDB, now: time.Now}
	if err := sqlitemigrate.ApplyMigrations(ctx, sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return store, nil
}

// Close releases the underlying SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) ready() error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	return nil
}

// GetUser loads a user by id.
func (s *Store) GetUser(ctx context.Context, id string) (storage.User, error) {
	if err := s.ready(); err != nil {
		return storage.User{}, err
	}
	return s.scanUser(s.sqlDB.QueryRowContext(ctx,
		`SELECT id, email, password_hash, active, created_at FROM users WHERE id = ?`,
		strings.TrimSpace(id),
	))
}

// GetUserByEmail loads a user by case-insensitive email.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (storage.User, error) {
	if err := s.ready(); err != nil {
		return storage.User{}, err
	}
	return s.scanUser(s.sqlDB.QueryRowContext(ctx,
		`SELECT id, email, password_hash, active, created_at FROM users WHERE email = ?`,
		strings.TrimSpace(email),
	))
}

func (s *Store) scanUser(row *sql.Row) (storage.User, error) {
	var (
		user      storage.User
		active    int64
		createdAt int64
	)
	if err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &active, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.User{}, storage.ErrNotFound
		}
		return storage.User{}, fmt.Errorf("get user: %w", err)
	}
	user.Active = active != 0
	user.CreatedAt = time.UnixMilli(createdAt).UTC()
	return user, nil
}

// CreateUser inserts a new user.
func (s *Store) CreateUser(ctx context.Context, user storage.User) error {
	if err := s.ready(); err != nil {
		return err
	}
	user.ID = strings.TrimSpace(user.ID)
	user.Email = strings.TrimSpace(user.Email)
	if user.ID == "" || user.Email == "" {
		return fmt.Errorf("user id and email are required")
	}
	if len(user.PasswordHash) == 0 {
		return fmt.Errorf("user password hash is required")
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = s.now().UTC()
	}
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO users (id, email, password_hash, active, created_at) VALUES (?, ?, ?, ?, ?)`,
		user.ID, user.Email, user.PasswordHash, boolToInt(user.Active), user.CreatedAt.UnixMilli(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create user %s: %w", user.Email, storage.ErrConflict)
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// GetSetting returns the stored value or fallback.
func (s *Store) GetSetting(ctx context.Context, userID, key, fallback string) (string, error) {
	if err := s.ready(); err != nil {
		return "", err
	}
	var value string
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE user_id = ? AND setting = ?`,
		strings.TrimSpace(userID), strings.TrimSpace(key),
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return fallback, nil
	}
	if err != nil {
		return "", fmt.Errorf("get setting %s: %w", key, err)
	}
	return value, nil
}

// SetSetting upserts a setting value.
func (s *Store) SetSetting(ctx context.Context, userID, key, value string) error {
	if err := s.ready(); err != nil {
		return err
	}
	userID = strings.TrimSpace(userID)
	key = strings.TrimSpace(key)
	if userID == "" || key == "" {
		return fmt.Errorf("setting user and key are required")
	}
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO settings (user_id, setting, value) VALUES (?, ?, ?)
		 ON CONFLICT(user_id, setting) DO UPDATE SET value = excluded.value`,
		userID, key, value,
	)
	if err != nil {
		return fmt.Errorf("set setting %s: %w", key, err)
	}
	return nil
}

// ListServerGroups returns the user's groups ordered by id.
func (s *Store) ListServerGroups(ctx context.Context, userID string) ([]storage.ServerGroup, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT id, user_id, name FROM server_groups WHERE user_id = ? ORDER BY id`,
		strings.TrimSpace(userID),
	)
	if err != nil {
		return nil, fmt.Errorf("list server groups: %w", err)
	}
	defer rows.Close()

	groups := []storage.ServerGroup{}
	for rows.Next() {
		var group storage.ServerGroup
		if err := rows.Scan(&group.ID, &group.UserID, &group.Name); err != nil {
			return nil, fmt.Errorf("scan server group: %w", err)
		}
		groups = append(groups, group)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate server groups: %w", err)
	}
	return groups, nil
}

// EnsureServerGroup creates the named group when absent and returns it.
func (s *Store) EnsureServerGroup(ctx context.Context, userID, name string) (storage.ServerGroup, error) {
	if err := s.ready(); err != nil {
		return storage.ServerGroup{}, err
	}
	userID = strings.TrimSpace(userID)
	name = strings.TrimSpace(name)
	if userID == "" || name == "" {
		return storage.ServerGroup{}, fmt.Errorf("server group user and name are required")
	}
	if _, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO server_groups (user_id, name) VALUES (?, ?) ON CONFLICT(user_id, name) DO NOTHING`,
		userID, name,
	); err != nil {
		return storage.ServerGroup{}, fmt.Errorf("ensure server group: %w", err)
	}
	group := storage.ServerGroup{UserID: userID, Name: name}
	if err := s.sqlDB.QueryRowContext(ctx,
		`SELECT id FROM server_groups WHERE user_id = ? AND name = ?`,
		userID, name,
	).Scan(&group.ID); err != nil {
		return storage.ServerGroup{}, fmt.Errorf("load server group: %w", err)
	}
	return group, nil
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
