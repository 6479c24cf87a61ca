package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeUserStore is an in-memory userStore that counts writes, so tests
// can assert that an unchanged login performs no write at all.
type fakeUserStore struct {
	users   map[string]*User
	nextID  uint
	creates int
	updates int
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*User), nextID: 1}
}

func (f *fakeUserStore) GetUserByExternalUID(uid string) (*User, error) {
	u, ok := f.users[uid]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserStore) CreateUser(u *User) error {
	u.ID = f.nextID
	f.nextID++
	copied := *u
	f.users[u.ExternalUID] = &copied
	f.creates++
	return nil
}

func (f *fakeUserStore) UpdateUser(u *User) error {
	copied := *u
	f.users[u.ExternalUID] = &copied
	f.updates++
	return nil
}

func TestEnsureUserCreatesOnFirstLogin(t *testing.T) {
	store := newFakeUserStore()

	u, err := ensureUser(store, "firebase-uid-1", "  Rohan@Example.COM ", "Rohan")
	require.NoError(t, err)
	assert.Equal(t, 1, store.creates)
	assert.Equal(t, "firebase-uid-1", u.ExternalUID)
	require.NotNil(t, u.Email)
	assert.Equal(t, "rohan@example.com", *u.Email, "email is lowercased and trimmed")
	assert.Equal(t, "Rohan", u.DisplayName)
}

func TestEnsureUserUpdatesChangedClaims(t *testing.T) {
	store := newFakeUserStore()

	_, err := ensureUser(store, "uid", "old@example.com", "Old Name")
	require.NoError(t, err)

	u, err := ensureUser(store, "uid", "new@example.com", "New Name")
	require.NoError(t, err)
	assert.Equal(t, 1, store.updates)
	require.NotNil(t, u.Email)
	assert.Equal(t, "new@example.com", *u.Email)
	assert.Equal(t, "New Name", u.DisplayName)

	stored, err := store.GetUserByExternalUID("uid")
	require.NoError(t, err)
	assert.Equal(t, "New Name", stored.DisplayName)
}

func TestEnsureUserUnchangedClaimsNoWrite(t *testing.T) {
	store := newFakeUserStore()

	created, err := ensureUser(store, "uid", "same@example.com", "Same Name")
	require.NoError(t, err)

	u, err := ensureUser(store, "uid", "same@example.com", "Same Name")
	require.NoError(t, err)
	assert.Zero(t, store.updates, "unchanged claims must not write")
	assert.Equal(t, 1, store.creates)
	assert.Equal(t, created.ID, u.ID)

	// Case-insensitive equal email is also unchanged after normalizing.
	_, err = ensureUser(store, "uid", "SAME@example.com", "Same Name")
	require.NoError(t, err)
	assert.Zero(t, store.updates)
}

func TestEnsureUserEmptyClaims(t *testing.T) {
	store := newFakeUserStore()

	// A provider without an email claim leaves Email nil.
	u, err := ensureUser(store, "uid", "", "Anon")
	require.NoError(t, err)
	assert.Nil(t, u.Email)

	// Empty claims on a later login never erase stored values.
	_, err = ensureUser(store, "uid", "anon@example.com", "Anon")
	require.NoError(t, err)

	u, err = ensureUser(store, "uid", "", "")
	require.NoError(t, err)
	require.NotNil(t, u.Email)
	assert.Equal(t, "anon@example.com", *u.Email)
	assert.Equal(t, "Anon", u.DisplayName)
	assert.Equal(t, 1, store.updates)
}
