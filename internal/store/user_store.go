package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/mattn/go-sqlite3"

	"github.com/ArieGerard/OdersApp/internal/models"
)

// UserStore is the data-access interface for user records.
type UserStore interface {
	ByID(ctx context.Context, id int64) (models.User, error)
	ByUsername(ctx context.Context, username string) (models.User, error)
	All(ctx context.Context) ([]models.User, error)
	Insert(ctx context.Context, user models.User) (models.User, error)
	Update(ctx context.Context, user models.User) (models.User, error)
	Delete(ctx context.Context, id int64) error
}

// SQLUserStore implements UserStore against the users table.
type SQLUserStore struct {
	db *sql.DB
}

// NewUserStore creates a new SQLUserStore.
func NewUserStore(db *sql.DB) *SQLUserStore {
	return &SQLUserStore{db: db}
}

var userColumns = []string{"id", "username", "password_hash", "role", "enabled"}

func scanUser(row sq.RowScanner) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.Enabled)
	return u, err
}

// ByID retrieves a single user by id.
func (s *SQLUserStore) ByID(ctx context.Context, id int64) (models.User, error) {
	row := sq.Select(userColumns...).From("users").
		Where(sq.Eq{"id": id}).
		RunWith(s.db).QueryRowContext(ctx)

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, fmt.Errorf("query user by id: %w", err)
	}
	return user, nil
}

// ByUsername retrieves a single user by username, including the password hash.
func (s *SQLUserStore) ByUsername(ctx context.Context, username string) (models.User, error) {
	row := sq.Select(userColumns...).From("users").
		Where(sq.Eq{"username": username}).
		RunWith(s.db).QueryRowContext(ctx)

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, fmt.Errorf("query user by username: %w", err)
	}
	return user, nil
}

// All returns every user record, ordered by id.
func (s *SQLUserStore) All(ctx context.Context) ([]models.User, error) {
	rows, err := sq.Select(userColumns...).From("users").
		OrderBy("id").
		RunWith(s.db).QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return users, nil
}

// Insert persists a new user and returns it with the assigned id.
// A collision on the username unique index is reported as ErrUsernameTaken.
func (s *SQLUserStore) Insert(ctx context.Context, user models.User) (models.User, error) {
	res, err := sq.Insert("users").
		Columns("username", "password_hash", "role", "enabled").
		Values(user.Username, user.PasswordHash, user.Role, user.Enabled).
		RunWith(s.db).ExecContext(ctx)
	if err != nil {
		if isUniqueViolation(err) {
			return models.User{}, ErrUsernameTaken
		}
		return models.User{}, fmt.Errorf("insert user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return models.User{}, fmt.Errorf("read inserted user id: %w", err)
	}
	user.ID = id
	return user, nil
}

// Update overwrites the record identified by user.ID.
func (s *SQLUserStore) Update(ctx context.Context, user models.User) (models.User, error) {
	res, err := sq.Update("users").
		Set("username", user.Username).
		Set("password_hash", user.PasswordHash).
		Set("role", user.Role).
		Set("enabled", user.Enabled).
		Where(sq.Eq{"id": user.ID}).
		RunWith(s.db).ExecContext(ctx)
	if err != nil {
		if isUniqueViolation(err) {
			return models.User{}, ErrUsernameTaken
		}
		return models.User{}, fmt.Errorf("update user: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return models.User{}, fmt.Errorf("read affected rows: %w", err)
	}
	if affected == 0 {
		return models.User{}, ErrUserNotFound
	}
	return user, nil
}

// Delete removes the record identified by id.
func (s *SQLUserStore) Delete(ctx context.Context, id int64) error {
	res, err := sq.Delete("users").
		Where(sq.Eq{"id": id}).
		RunWith(s.db).ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}
