package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/ArieGerard/OdersApp/internal/auth"
	"github.com/ArieGerard/OdersApp/internal/models"
	"github.com/ArieGerard/OdersApp/internal/store"
)

// Hasher abstracts the credential hashing primitive.
type Hasher interface {
	Hash(password string) (string, error)
	Check(password, hash string) bool
}

// UserServiceProvider defines the interface for user management.
type UserServiceProvider interface {
	Register(ctx context.Context, reg models.Registration) (models.User, error)
	Authenticate(ctx context.Context, username, password string) (auth.Identity, error)
	GetAll(ctx context.Context) ([]models.User, error)
	GetByID(ctx context.Context, id int64) (models.User, error)
	Create(ctx context.Context, user models.User, password string) (models.User, error)
	Update(ctx context.Context, user models.User, password string) (models.User, error)
	Delete(ctx context.Context, id int64) error
	EnsureAdmin(ctx context.Context, username, password string) error
}

// UserService provides business logic for registration, authentication
// and user administration.
type UserService struct {
	store  store.UserStore
	hasher Hasher
}

// NewUserService creates a new UserService.
func NewUserService(store store.UserStore, hasher Hasher) *UserService {
	return &UserService{store: store, hasher: hasher}
}

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9._-]{3,32}$`)

const minPasswordLen = 6

// Register validates a registration submission and, if it passes,
// stores a new enabled base-role account with a freshly hashed
// password. Every failure path returns a *ValidationError and leaves
// the store untouched.
func (s *UserService) Register(ctx context.Context, reg models.Registration) (models.User, error) {
	fields := make(map[string]string)
	if !usernamePattern.MatchString(reg.Username) {
		fields["username"] = "Username must be 3-32 characters (letters, digits, . _ -)"
	}
	if len(reg.Password) < minPasswordLen {
		fields["password"] = fmt.Sprintf("Password must be at least %d characters", minPasswordLen)
	}
	if len(fields) > 0 {
		return models.User{}, &ValidationError{Fields: fields}
	}

	if reg.Password != reg.ConfirmPassword {
		return models.User{}, fieldError("confirmPassword", "Passwords do not match")
	}

	_, err := s.store.ByUsername(ctx, reg.Username)
	switch {
	case err == nil:
		return models.User{}, fieldError("username", "Username already exists")
	case !errors.Is(err, store.ErrUserNotFound):
		return models.User{}, fmt.Errorf("check username: %w", err)
	}

	hash, err := s.hasher.Hash(reg.Password)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.store.Insert(ctx, models.User{
		Username:     reg.Username,
		PasswordHash: hash,
		Role:         models.RoleUser,
		Enabled:      true,
	})
	if err != nil {
		// The pre-check above is not atomic with the insert; the unique
		// index is the authoritative arbiter of a registration race.
		if errors.Is(err, store.ErrUsernameTaken) {
			return models.User{}, fieldError("username", "Username already exists")
		}
		return models.User{}, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Authenticate verifies a username/password pair and returns the
// caller's identity. Unknown usernames, wrong passwords and disabled
// accounts all fail with ErrInvalidCredentials.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (auth.Identity, error) {
	user, err := s.store.ByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return auth.Identity{}, ErrInvalidCredentials
		}
		return auth.Identity{}, fmt.Errorf("look up user: %w", err)
	}

	if !user.Enabled {
		return auth.Identity{}, ErrInvalidCredentials
	}
	if !s.hasher.Check(password, user.PasswordHash) {
		return auth.Identity{}, ErrInvalidCredentials
	}

	return auth.Identity{Username: user.Username, Role: user.Role}, nil
}

// GetAll returns every user record.
func (s *UserService) GetAll(ctx context.Context) ([]models.User, error) {
	return s.store.All(ctx)
}

// GetByID returns a single user record.
func (s *UserService) GetByID(ctx context.Context, id int64) (models.User, error) {
	return s.store.ByID(ctx, id)
}

// Create stores a new user with the given plaintext password hashed.
// Used by the admin "new user" form.
func (s *UserService) Create(ctx context.Context, user models.User, password string) (models.User, error) {
	if !usernamePattern.MatchString(user.Username) {
		return models.User{}, fieldError("username", "Username must be 3-32 characters (letters, digits, . _ -)")
	}
	if len(password) < minPasswordLen {
		return models.User{}, fieldError("password", fmt.Sprintf("Password must be at least %d characters", minPasswordLen))
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = hash
	if user.Role == "" {
		user.Role = models.RoleUser
	}

	created, err := s.store.Insert(ctx, user)
	if err != nil {
		if errors.Is(err, store.ErrUsernameTaken) {
			return models.User{}, fieldError("username", "Username already exists")
		}
		return models.User{}, fmt.Errorf("create user: %w", err)
	}
	return created, nil
}

// Update overwrites the record identified by user.ID. The submitted
// password is stored verbatim when it is already a hash round-tripped
// from the edit form, and hashed exactly once otherwise.
func (s *UserService) Update(ctx context.Context, user models.User, password string) (models.User, error) {
	if auth.LooksHashed(password) {
		user.PasswordHash = password
	} else {
		hash, err := s.hasher.Hash(password)
		if err != nil {
			return models.User{}, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = hash
	}

	updated, err := s.store.Update(ctx, user)
	if err != nil {
		if errors.Is(err, store.ErrUsernameTaken) {
			return models.User{}, fieldError("username", "Username already exists")
		}
		return models.User{}, err
	}
	return updated, nil
}

// Delete removes the record identified by id.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	return s.store.Delete(ctx, id)
}

// EnsureAdmin creates the bootstrap admin account if no user with the
// given username exists yet.
func (s *UserService) EnsureAdmin(ctx context.Context, username, password string) error {
	_, err := s.store.ByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, store.ErrUserNotFound) {
		return fmt.Errorf("look up admin user: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	_, err = s.store.Insert(ctx, models.User{
		Username:     username,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
		Enabled:      true,
	})
	if err != nil {
		return fmt.Errorf("create admin user: %w", err)
	}
	return nil
}
