package auth

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/RohanMehta-11/ligo/internal/user"
)

type fakeAuthRepo struct {
	mu     sync.Mutex
	nextID uint
	tokens map[uint]*RefreshToken
}

func newFakeAuthRepo() *fakeAuthRepo {
	return &fakeAuthRepo{tokens: map[uint]*RefreshToken{}}
}

func (f *fakeAuthRepo) SaveRefreshToken(token *RefreshToken) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	token.ID = f.nextID
	cp := *token
	f.tokens[token.ID] = &cp
	return nil
}

func (f *fakeAuthRepo) GetRefreshTokenByHash(hash string) (*RefreshToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, rt := range f.tokens {
		if rt.TokenHash == hash {
			cp := *rt
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAuthRepo) RevokeRefreshToken(id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if rt, ok := f.tokens[id]; ok && rt.RevokedAt == nil {
		now := time.Now()
		rt.RevokedAt = &now
	}
	return nil
}

func (f *fakeAuthRepo) RevokeAllRefreshTokensForUser(userID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now()
	for _, rt := range f.tokens {
		if rt.UserID == userID && rt.RevokedAt == nil {
			rt.RevokedAt = &now
		}
	}
	return nil
}

func (f *fakeAuthRepo) RotateRefreshToken(oldID uint, replacement *RefreshToken) error {
	if err := f.RevokeRefreshToken(oldID); err != nil {
		return err
	}
	return f.SaveRefreshToken(replacement)
}

type fakeUserRepo struct {
	users map[uint]*user.User
}

func (f *fakeUserRepo) GetUserByID(id uint) (*user.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetUserByExternalUID(uid string) (*user.User, error) {
	for _, u := range f.users {
		if u.ExternalUID == uid {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) CreateUser(u *user.User) error {
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) UpdateUser(u *user.User) error {
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) EnsureUser(externalUID, email, displayName string) (*user.User, error) {
	if u, err := f.GetUserByExternalUID(externalUID); err == nil {
		return u, nil
	}
	u := &user.User{ExternalUID: externalUID, DisplayName: displayName}
	u.ID = uint(len(f.users) + 1)
	f.users[u.ID] = u
	return u, nil
}

func newTestTokenService(repo AuthRepository) *TokenService {
	users := &fakeUserRepo{users: map[uint]*user.User{}}
	u := &user.User{ExternalUID: "firebase-uid-1", DisplayName: "Test User"}
	u.ID = 1
	users.users[1] = u
	return NewTokenService(repo, users, "test-secret", 30)
}

func TestHashRefreshSecretDeterministic(t *testing.T) {
	secret, err := GenerateRefreshSecret()
	require.NoError(t, err)
	assert.Equal(t, HashRefreshSecret(secret), HashRefreshSecret(secret))

	other, err := GenerateRefreshSecret()
	require.NoError(t, err)
	assert.NotEqual(t, HashRefreshSecret(secret), HashRefreshSecret(other))
	assert.Len(t, HashRefreshSecret(secret), 64)
}

func TestIssueStoresOnlyHash(t *testing.T) {
	repo := newFakeAuthRepo()
	svc := newTestTokenService(repo)

	access, refresh, err := svc.Issue(1, "firebase-uid-1")
	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)

	stored, err := repo.GetRefreshTokenByHash(HashRefreshSecret(refresh))
	require.NoError(t, err)
	assert.NotEqual(t, refresh, stored.TokenHash)
	assert.True(t, stored.Usable())
}

func TestRefreshRotatesToken(t *testing.T) {
	repo := newFakeAuthRepo()
	svc := newTestTokenService(repo)

	_, refresh, err := svc.Issue(1, "firebase-uid-1")
	require.NoError(t, err)

	access2, refresh2, err := svc.Refresh(refresh)
	require.NoError(t, err)
	assert.NotEmpty(t, access2)
	assert.NotEqual(t, refresh, refresh2)

	// Presenting the superseded token again must fail.
	_, _, err = svc.Refresh(refresh)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)

	// The replacement still works.
	_, _, err = svc.Refresh(refresh2)
	assert.NoError(t, err)
}

func TestRefreshRejectsUnknownToken(t *testing.T) {
	svc := newTestTokenService(newFakeAuthRepo())
	_, _, err := svc.Refresh("not-a-real-token")
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestRefreshRejectsExpiredToken(t *testing.T) {
	repo := newFakeAuthRepo()
	svc := newTestTokenService(repo)

	expired := &RefreshToken{
		UserID:    1,
		TokenHash: HashRefreshSecret("stale-secret"),
		ExpiresAt: time.Now().Add(-time.Hour),
	}
	require.NoError(t, repo.SaveRefreshToken(expired))

	_, _, err := svc.Refresh("stale-secret")
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestRevokeThenRefreshFails(t *testing.T) {
	repo := newFakeAuthRepo()
	svc := newTestTokenService(repo)

	_, refresh, err := svc.Issue(1, "firebase-uid-1")
	require.NoError(t, err)

	require.NoError(t, svc.Revoke(refresh))
	_, _, err = svc.Refresh(refresh)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestRevokeAllForUser(t *testing.T) {
	repo := newFakeAuthRepo()
	svc := newTestTokenService(repo)

	_, refreshA, err := svc.Issue(1, "firebase-uid-1")
	require.NoError(t, err)
	_, refreshB, err := svc.Issue(1, "firebase-uid-1")
	require.NoError(t, err)

	require.NoError(t, svc.RevokeAllForUser(1))

	_, _, err = svc.Refresh(refreshA)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
	_, _, err = svc.Refresh(refreshB)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestRefreshTokenUsable(t *testing.T) {
	now := time.Now()
	revoked := now.Add(-time.Minute)

	cases := []struct {
		name  string
		token RefreshToken
		want  bool
	}{
		{"live", RefreshToken{ExpiresAt: now.Add(time.Hour)}, true},
		{"expired", RefreshToken{ExpiresAt: now.Add(-time.Hour)}, false},
		{"revoked", RefreshToken{ExpiresAt: now.Add(time.Hour), RevokedAt: &revoked}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.token.Usable())
		})
	}
}
