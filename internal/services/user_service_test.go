package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ArieGerard/OdersApp/internal/models"
	"github.com/ArieGerard/OdersApp/internal/store"
)

// fakeUserStore is an in-memory UserStore that enforces username
// uniqueness the way the sqlite index does.
type fakeUserStore struct {
	users  map[int64]models.User
	nextID int64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[int64]models.User), nextID: 1}
}

func (f *fakeUserStore) ByID(ctx context.Context, id int64) (models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return models.User{}, store.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserStore) ByUsername(ctx context.Context, username string) (models.User, error) {
	for _, user := range f.users {
		if user.Username == username {
			return user, nil
		}
	}
	return models.User{}, store.ErrUserNotFound
}

func (f *fakeUserStore) All(ctx context.Context) ([]models.User, error) {
	users := make([]models.User, 0, len(f.users))
	for _, user := range f.users {
		users = append(users, user)
	}
	return users, nil
}

func (f *fakeUserStore) Insert(ctx context.Context, user models.User) (models.User, error) {
	if _, err := f.ByUsername(ctx, user.Username); err == nil {
		return models.User{}, store.ErrUsernameTaken
	}
	user.ID = f.nextID
	f.nextID++
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeUserStore) Update(ctx context.Context, user models.User) (models.User, error) {
	if _, ok := f.users[user.ID]; !ok {
		return models.User{}, store.ErrUserNotFound
	}
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeUserStore) Delete(ctx context.Context, id int64) error {
	if _, ok := f.users[id]; !ok {
		return store.ErrUserNotFound
	}
	delete(f.users, id)
	return nil
}

// stubHasher produces recognizable fake bcrypt output and counts Hash calls.
type stubHasher struct {
	hashCalls int
}

func (h *stubHasher) Hash(password string) (string, error) {
	h.hashCalls++
	return "$2a$10$" + password, nil
}

func (h *stubHasher) Check(password, hash string) bool {
	return hash == "$2a$10$"+password
}

func newTestService() (*UserService, *fakeUserStore, *stubHasher) {
	st := newFakeUserStore()
	hasher := &stubHasher{}
	return NewUserService(st, hasher), st, hasher
}

func validationFields(t *testing.T, err error) map[string]string {
	t.Helper()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	return verr.Fields
}

func TestRegisterSuccess(t *testing.T) {
	svc, st, hasher := newTestService()

	user, err := svc.Register(context.Background(), models.Registration{
		Username:        "alice",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	})
	require.NoError(t, err)

	assert.Equal(t, models.RoleUser, user.Role)
	assert.True(t, user.Enabled)
	assert.NotEqual(t, "secret1", user.PasswordHash)
	assert.True(t, strings.HasPrefix(user.PasswordHash, "$2a$"))
	assert.Equal(t, 1, hasher.hashCalls)
	assert.Len(t, st.users, 1)
}

func TestRegisterPasswordMismatch(t *testing.T) {
	svc, st, hasher := newTestService()

	_, err := svc.Register(context.Background(), models.Registration{
		Username:        "alice",
		Password:        "secret1",
		ConfirmPassword: "secret2",
	})

	fields := validationFields(t, err)
	assert.Contains(t, fields, "confirmPassword")
	assert.Empty(t, st.users)
	assert.Zero(t, hasher.hashCalls)
}

func TestRegisterUsernameTaken(t *testing.T) {
	svc, st, hasher := newTestService()
	st.users[1] = models.User{ID: 1, Username: "alice", PasswordHash: "$2a$10$x", Role: models.RoleUser, Enabled: true}
	st.nextID = 2

	_, err := svc.Register(context.Background(), models.Registration{
		Username:        "alice",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	})

	fields := validationFields(t, err)
	assert.Contains(t, fields, "username")
	assert.Len(t, st.users, 1)
	assert.Zero(t, hasher.hashCalls)
}

func TestRegisterInvalidInput(t *testing.T) {
	svc, st, _ := newTestService()

	_, err := svc.Register(context.Background(), models.Registration{
		Username:        "a!",
		Password:        "pw",
		ConfirmPassword: "pw",
	})

	fields := validationFields(t, err)
	assert.Contains(t, fields, "username")
	assert.Contains(t, fields, "password")
	assert.Empty(t, st.users)
}

func TestUpdateHashesPlaintextOnce(t *testing.T) {
	svc, st, hasher := newTestService()
	st.users[1] = models.User{ID: 1, Username: "bob", PasswordHash: "$2a$10$old", Role: models.RoleUser, Enabled: true}
	st.nextID = 2

	updated, err := svc.Update(context.Background(), models.User{
		ID:       1,
		Username: "bob",
		Role:     models.RoleUser,
		Enabled:  true,
	}, "newpassword")
	require.NoError(t, err)

	assert.Equal(t, 1, hasher.hashCalls)
	assert.Equal(t, "$2a$10$newpassword", updated.PasswordHash)
}

func TestUpdateKeepsSubmittedHashVerbatim(t *testing.T) {
	svc, st, hasher := newTestService()
	st.users[1] = models.User{ID: 1, Username: "bob", PasswordHash: "$2a$10$old", Role: models.RoleUser, Enabled: true}
	st.nextID = 2

	updated, err := svc.Update(context.Background(), models.User{
		ID:       1,
		Username: "bob",
		Role:     models.RoleAdmin,
		Enabled:  true,
	}, "$2a$10$old")
	require.NoError(t, err)

	assert.Zero(t, hasher.hashCalls)
	assert.Equal(t, "$2a$10$old", updated.PasswordHash)
	assert.Equal(t, models.RoleAdmin, st.users[1].Role)
}

func TestUpdateUnknownID(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Update(context.Background(), models.User{ID: 99, Username: "ghost"}, "password1")
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestAuthenticateSuccess(t *testing.T) {
	svc, st, _ := newTestService()
	st.users[1] = models.User{ID: 1, Username: "alice", PasswordHash: "$2a$10$secret1", Role: models.RoleUser, Enabled: true}

	identity, err := svc.Authenticate(context.Background(), "alice", "secret1")
	require.NoError(t, err)

	assert.Equal(t, "alice", identity.Username)
	assert.Equal(t, models.RoleUser, identity.Role)
}

func TestAuthenticateFailures(t *testing.T) {
	svc, st, _ := newTestService()
	st.users[1] = models.User{ID: 1, Username: "alice", PasswordHash: "$2a$10$secret1", Role: models.RoleUser, Enabled: true}
	st.users[2] = models.User{ID: 2, Username: "mallory", PasswordHash: "$2a$10$secret1", Role: models.RoleUser, Enabled: false}

	testCases := []struct {
		name     string
		username string
		password string
	}{
		{"unknown user", "nobody", "secret1"},
		{"wrong password", "alice", "wrong"},
		{"disabled account", "mallory", "secret1"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Authenticate(context.Background(), tc.username, tc.password)
			assert.True(t, errors.Is(err, ErrInvalidCredentials))
		})
	}
}

func TestCreateHashesPassword(t *testing.T) {
	svc, st, hasher := newTestService()

	created, err := svc.Create(context.Background(), models.User{Username: "carol", Role: models.RoleAdmin, Enabled: true}, "password1")
	require.NoError(t, err)

	assert.Equal(t, 1, hasher.hashCalls)
	assert.Equal(t, "$2a$10$password1", created.PasswordHash)
	assert.Equal(t, models.RoleAdmin, st.users[created.ID].Role)
}

func TestEnsureAdminIsIdempotent(t *testing.T) {
	svc, st, hasher := newTestService()

	require.NoError(t, svc.EnsureAdmin(context.Background(), "admin", "admin12345"))
	require.NoError(t, svc.EnsureAdmin(context.Background(), "admin", "admin12345"))

	assert.Len(t, st.users, 1)
	assert.Equal(t, 1, hasher.hashCalls)

	admin, err := st.ByUsername(context.Background(), "admin")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, admin.Role)
	assert.True(t, admin.Enabled)
}
