// Package directory is the SQLite user directory behind the admin screens and
// sign-in.
package directory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // registers the sqlite3 driver
	"golang.org/x/crypto/bcrypt"

	"tableflip.dev/pilot/pkg/admin"
	"tableflip.dev/pilot/pkg/auth"
	"tableflip.dev/pilot/pkg/logging"
)

// ErrNotFound is returned for an unknown user id.
var ErrNotFound = errors.New("directory: user not found")

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            TEXT PRIMARY KEY,
	email         TEXT NOT NULL UNIQUE,
	full_name     TEXT NOT NULL DEFAULT '',
	password_hash TEXT NOT NULL,
	created_at    DATETIME NOT NULL,
	last_sign_in  DATETIME NOT NULL,
	is_suspended  BOOLEAN NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS notifications (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	title      TEXT NOT NULL,
	message    TEXT NOT NULL,
	created_at DATETIME NOT NULL,
	is_global  BOOLEAN NOT NULL DEFAULT 1
);
CREATE TABLE IF NOT EXISTS activity (
	user_id TEXT NOT NULL,
	kind    TEXT NOT NULL,
	at      DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS activity_at ON activity (at);
`

// Directory stores users, notifications and usage activity.
type Directory struct {
	db  *sqlx.DB
	log *slog.Logger
}

// Open connects to the database file at path and applies the schema.
func Open(path string, log *slog.Logger) (*Directory, error) {
	db, err := sqlx.Connect("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("directory: connect %s: %w", path, err)
	}
	// One writer keeps sqlite from reporting the database as locked.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("directory: apply schema: %w", err)
	}
	log = logging.OrDiscard(log)
	log.Debug("directory opened", "path", path)
	return &Directory{db: db, log: log}, nil
}

// Close releases the database.
func (d *Directory) Close() error {
	return d.db.Close()
}

// ListUsers returns users newest first.
func (d *Directory) ListUsers(ctx context.Context, limit int) ([]admin.User, error) {
	if limit <= 0 {
		limit = admin.DefaultLimit
	}
	users := []admin.User{}
	err := d.db.SelectContext(ctx, &users, `
		SELECT id, email, full_name, created_at, last_sign_in, is_suspended
		FROM users ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("directory: list users: %w", err)
	}
	return users, nil
}

// User returns one user.
func (d *Directory) User(ctx context.Context, id string) (admin.User, error) {
	var u admin.User
	err := d.db.GetContext(ctx, &u, `
		SELECT id, email, full_name, created_at, last_sign_in, is_suspended
		FROM users WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return admin.User{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return admin.User{}, fmt.Errorf("directory: get user %s: %w", id, err)
	}
	return u, nil
}

// SetSuspended flags or clears a suspension.
func (d *Directory) SetSuspended(ctx context.Context, id string, suspended bool) error {
	res, err := d.db.ExecContext(ctx, `UPDATE users SET is_suspended = ? WHERE id = ?`, suspended, id)
	if err != nil {
		return fmt.Errorf("directory: suspend %s: %w", id, err)
	}
	return affected(res, id)
}

// DeleteUser removes a user and their activity.
func (d *Directory) DeleteUser(ctx context.Context, id string) error {
	tx, err := d.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("directory: delete %s: %w", id, err)
	}
	defer func() { _ = tx.Rollback() }()
	if _, err := tx.ExecContext(ctx, `DELETE FROM activity WHERE user_id = ?`, id); err != nil {
		return fmt.Errorf("directory: delete activity %s: %w", id, err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("directory: delete %s: %w", id, err)
	}
	if err := affected(res, id); err != nil {
		return err
	}
	return tx.Commit()
}

func affected(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// CreateUser adds a user with a bcrypt hash of password. A blank id is
// filled with a new uuid.
func (d *Directory) CreateUser(ctx context.Context, u admin.User, password string) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	if u.Email == "" {
		return errors.New("directory: email is required")
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("directory: hash password: %w", err)
	}
	var exists int
	if err := d.db.GetContext(ctx, &exists, `SELECT COUNT(*) FROM users WHERE email = ?`, u.Email); err != nil {
		return fmt.Errorf("directory: create user: %w", err)
	}
	if exists > 0 {
		return fmt.Errorf("%w: %s", admin.ErrDuplicate, u.Email)
	}
	row := struct {
		admin.User
		PasswordHash string `db:"password_hash"`
	}{User: u, PasswordHash: string(hash)}
	row.CreatedAt = row.CreatedAt.UTC()
	row.LastSignIn = row.LastSignIn.UTC()
	_, err = d.db.NamedExecContext(ctx, `
		INSERT INTO users (id, email, full_name, password_hash, created_at, last_sign_in, is_suspended)
		VALUES (:id, :email, :full_name, :password_hash, :created_at, :last_sign_in, :is_suspended)`, row)
	if err != nil {
		return fmt.Errorf("directory: create user %s: %w", u.Email, err)
	}
	d.log.Info("user created", "id", u.ID, "email", u.Email)
	return nil
}

// Verify checks a password and stamps the sign-in time.
func (d *Directory) Verify(ctx context.Context, email, password string) (string, error) {
	var row struct {
		ID        string `db:"id"`
		Hash      string `db:"password_hash"`
		Suspended bool   `db:"is_suspended"`
	}
	err := d.db.GetContext(ctx, &row, `SELECT id, password_hash, is_suspended FROM users WHERE email = ?`,
		strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, sql.ErrNoRows) {
		return "", auth.ErrInvalidCredentials
	}
	if err != nil {
		return "", fmt.Errorf("directory: verify: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(row.Hash), []byte(password)) != nil {
		return "", auth.ErrInvalidCredentials
	}
	if row.Suspended {
		return "", auth.ErrSuspended
	}
	now := time.Now().UTC()
	if _, err := d.db.ExecContext(ctx, `UPDATE users SET last_sign_in = ? WHERE id = ?`, now, row.ID); err != nil {
		return "", fmt.Errorf("directory: stamp sign-in: %w", err)
	}
	return row.ID, nil
}

// InsertNotification stores a notification.
func (d *Directory) InsertNotification(ctx context.Context, n admin.Notification) error {
	n.CreatedAt = n.CreatedAt.UTC()
	_, err := d.db.NamedExecContext(ctx, `
		INSERT INTO notifications (title, message, created_at, is_global)
		VALUES (:title, :message, :created_at, :is_global)`, n)
	if err != nil {
		return fmt.Errorf("directory: insert notification: %w", err)
	}
	return nil
}

// Notifications returns stored notifications, newest first.
func (d *Directory) Notifications(ctx context.Context, limit int) ([]admin.Notification, error) {
	if limit <= 0 {
		limit = admin.DefaultLimit
	}
	out := []admin.Notification{}
	err := d.db.SelectContext(ctx, &out, `
		SELECT id, title, message, created_at, is_global
		FROM notifications ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("directory: list notifications: %w", err)
	}
	return out, nil
}

// RecordActivity logs one usage event for the statistics.
func (d *Directory) RecordActivity(ctx context.Context, userID, kind string, at time.Time) error {
	_, err := d.db.ExecContext(ctx, `INSERT INTO activity (user_id, kind, at) VALUES (?, ?, ?)`, userID, kind, at.UTC())
	if err != nil {
		return fmt.Errorf("directory: record activity: %w", err)
	}
	return nil
}
