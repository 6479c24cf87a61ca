package invite

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/RohanMehta-11/ligo/internal/access"
)

// fakeInviteRepo mimics the storage semantics the service relies on:
// unique codes, a mutex-guarded conditional use increment, and
// membership rows.
type fakeInviteRepo struct {
	mu          sync.Mutex
	teamCodes   map[uint]*InvitationCode
	leagueCodes map[uint]*LeagueInvitation
	memberships []access.Membership
	nextID      uint
}

func newFakeInviteRepo() *fakeInviteRepo {
	return &fakeInviteRepo{
		teamCodes:   make(map[uint]*InvitationCode),
		leagueCodes: make(map[uint]*LeagueInvitation),
		nextID:      1,
	}
}

func (f *fakeInviteRepo) CreateTeamCode(code *InvitationCode) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.teamCodes {
		if c.Code == code.Code {
			return gorm.ErrDuplicatedKey
		}
	}
	code.ID = f.nextID
	f.nextID++
	copied := *code
	f.teamCodes[code.ID] = &copied
	return nil
}

func (f *fakeInviteRepo) GetTeamCodeByCode(code string) (*InvitationCode, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.teamCodes {
		if c.Code == code {
			copied := *c
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeInviteRepo) GetTeamCodeByID(id uint) (*InvitationCode, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.teamCodes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *c
	return &copied, nil
}

func (f *fakeInviteRepo) ListTeamCodes(teamID uint, activeOnly bool, page, limit int) ([]InvitationCode, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []InvitationCode
	for _, c := range f.teamCodes {
		if c.TeamID == teamID && (!activeOnly || c.IsActive) {
			out = append(out, *c)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeInviteRepo) RevokeTeamCode(id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c, ok := f.teamCodes[id]; ok {
		c.IsActive = false
	}
	return nil
}

func (f *fakeInviteRepo) RedeemTeamCode(codeID, userID uint, role access.Role) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.teamCodes[codeID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	// Same guard as the single conditional UPDATE.
	if !c.IsActive || c.Uses >= c.MaxUses || c.IsExpired() {
		return ErrCodeExhausted
	}
	c.Uses++
	if c.Uses >= c.MaxUses {
		c.IsActive = false
	}
	f.memberships = append(f.memberships, access.Membership{UserID: userID, Role: role, TeamID: &c.TeamID})
	return nil
}

func (f *fakeInviteRepo) CreateLeagueInvitation(code *LeagueInvitation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.leagueCodes {
		if c.Code == code.Code {
			return gorm.ErrDuplicatedKey
		}
	}
	code.ID = f.nextID
	f.nextID++
	copied := *code
	f.leagueCodes[code.ID] = &copied
	return nil
}

func (f *fakeInviteRepo) GetLeagueInvitationByCode(code string) (*LeagueInvitation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.leagueCodes {
		if c.Code == code {
			copied := *c
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeInviteRepo) GetLeagueInvitationByID(id uint) (*LeagueInvitation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.leagueCodes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *c
	return &copied, nil
}

func (f *fakeInviteRepo) ListLeagueInvitations(leagueID uint, activeOnly bool, page, limit int) ([]LeagueInvitation, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []LeagueInvitation
	for _, c := range f.leagueCodes {
		if c.LeagueID == leagueID && (!activeOnly || c.IsActive) {
			out = append(out, *c)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeInviteRepo) RevokeLeagueInvitation(id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c, ok := f.leagueCodes[id]; ok {
		c.IsActive = false
	}
	return nil
}

func (f *fakeInviteRepo) RedeemLeagueInvitation(codeID, userID uint, role access.Role) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.leagueCodes[codeID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if !c.IsActive || c.Uses >= c.MaxUses || c.IsExpired() {
		return ErrCodeExhausted
	}
	c.Uses++
	if c.Uses >= c.MaxUses {
		c.IsActive = false
	}
	f.memberships = append(f.memberships, access.Membership{UserID: userID, Role: role, LeagueID: &c.LeagueID})
	return nil
}

func (f *fakeInviteRepo) HasAnyMembership(userID uint, scope access.Scope) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.memberships {
		if m.UserID != userID {
			continue
		}
		if scope.TeamID != nil && (m.TeamID == nil || *m.TeamID != *scope.TeamID) {
			continue
		}
		if scope.LeagueID != nil && (m.LeagueID == nil || *m.LeagueID != *scope.LeagueID) {
			continue
		}
		return true, nil
	}
	return false, nil
}

func TestCreateTeamCodeDefaults(t *testing.T) {
	repo := newFakeInviteRepo()
	svc := NewService(repo)
	creator := uint(1)

	code, err := svc.CreateTeamCode(10, &creator, CreateCodeRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, code.MaxUses)
	assert.Equal(t, 0, code.Uses)
	assert.True(t, code.IsActive)
	assert.Equal(t, access.RolePlayer, code.GrantRole)
	assert.Len(t, code.Code, codeLength)
}

func TestCreateTeamCodeRejectsPrivilegedRole(t *testing.T) {
	svc := NewService(newFakeInviteRepo())

	for _, role := range []string{"ADMIN", "MASTER", "FAN", "WIZARD"} {
		_, err := svc.CreateTeamCode(10, nil, CreateCodeRequest{GrantRole: role})
		assert.ErrorIs(t, err, ErrInvalidGrantRole, "role %s", role)
	}
}

func TestRedeemTeamCodeSingleUse(t *testing.T) {
	repo := newFakeInviteRepo()
	svc := NewService(repo)

	code, err := svc.CreateTeamCode(10, nil, CreateCodeRequest{MaxUses: 1})
	require.NoError(t, err)

	// First redemption grants membership and deactivates the code in
	// the same step.
	redeemed, err := svc.RedeemTeamCode(code.Code, 7)
	require.NoError(t, err)
	assert.Equal(t, 1, redeemed.Uses)
	assert.False(t, redeemed.IsActive)

	member, err := repo.HasAnyMembership(7, access.TeamScope(10))
	require.NoError(t, err)
	assert.True(t, member)

	// A second user sees the code as spent.
	_, err = svc.RedeemTeamCode(code.Code, 8)
	assert.ErrorIs(t, err, ErrCodeExhausted)
}

func TestRedeemTeamCodeErrors(t *testing.T) {
	repo := newFakeInviteRepo()
	svc := NewService(repo)

	_, err := svc.RedeemTeamCode("NOSUCH99", 1)
	assert.ErrorIs(t, err, ErrCodeNotFound)

	past := time.Now().Add(-time.Minute)
	expired, err := svc.CreateTeamCode(10, nil, CreateCodeRequest{ExpiresAt: &past})
	require.NoError(t, err)
	_, err = svc.RedeemTeamCode(expired.Code, 1)
	assert.ErrorIs(t, err, ErrCodeExpired)

	revoked, err := svc.CreateTeamCode(10, nil, CreateCodeRequest{})
	require.NoError(t, err)
	require.NoError(t, svc.RevokeTeamCode(revoked.ID))
	_, err = svc.RedeemTeamCode(revoked.Code, 1)
	assert.ErrorIs(t, err, ErrCodeInactive)
}

func TestRedeemTeamCodeAlreadyMember(t *testing.T) {
	repo := newFakeInviteRepo()
	svc := NewService(repo)

	code, err := svc.CreateTeamCode(10, nil, CreateCodeRequest{MaxUses: 5})
	require.NoError(t, err)

	_, err = svc.RedeemTeamCode(code.Code, 7)
	require.NoError(t, err)

	// Redeeming into a scope the user already belongs to is rejected
	// and does not burn a use.
	_, err = svc.RedeemTeamCode(code.Code, 7)
	assert.ErrorIs(t, err, ErrAlreadyMember)

	current, err := repo.GetTeamCodeByID(code.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, current.Uses)
}

func TestRedeemTeamCodeConcurrentCap(t *testing.T) {
	repo := newFakeInviteRepo()
	svc := NewService(repo)

	const maxUses = 5
	const attempts = 20

	code, err := svc.CreateTeamCode(10, nil, CreateCodeRequest{MaxUses: maxUses})
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(userID uint) {
			defer wg.Done()
			_, err := svc.RedeemTeamCode(code.Code, userID)
			results <- err
		}(uint(100 + i))
	}
	wg.Wait()
	close(results)

	successes := 0
	for err := range results {
		if err == nil {
			successes++
		}
	}
	assert.Equal(t, maxUses, successes, "exactly maxUses redemptions may succeed")

	final, err := repo.GetTeamCodeByID(code.ID)
	require.NoError(t, err)
	assert.Equal(t, maxUses, final.Uses)
	assert.False(t, final.IsActive)
}

func TestRevokeTeamCodeIdempotent(t *testing.T) {
	repo := newFakeInviteRepo()
	svc := NewService(repo)

	code, err := svc.CreateTeamCode(10, nil, CreateCodeRequest{MaxUses: 3})
	require.NoError(t, err)

	require.NoError(t, svc.RevokeTeamCode(code.ID))
	require.NoError(t, svc.RevokeTeamCode(code.ID))

	assert.ErrorIs(t, svc.RevokeTeamCode(9999), ErrCodeNotFound)
}

func TestCreateTeamCodeRetriesOnDuplicate(t *testing.T) {
	repo := newFakeInviteRepo()
	svc := NewService(repo)

	// Fill the repo with one code, then force the next create to
	// collide once by pre-inserting every possible... not feasible;
	// instead verify the retry path by wrapping the repo.
	wrapped := &collideOnceRepo{InviteRepository: repo}
	svc = NewService(wrapped)

	code, err := svc.CreateTeamCode(10, nil, CreateCodeRequest{})
	require.NoError(t, err)
	assert.NotEmpty(t, code.Code)
	assert.Equal(t, 2, wrapped.calls, "first attempt collides, second succeeds")
}

// collideOnceRepo fails the first CreateTeamCode with a duplicate-key
// error.
type collideOnceRepo struct {
	InviteRepository
	calls int
}

func (c *collideOnceRepo) CreateTeamCode(code *InvitationCode) error {
	c.calls++
	if c.calls == 1 {
		return gorm.ErrDuplicatedKey
	}
	return c.InviteRepository.CreateTeamCode(code)
}

// staleLookupRepo reports a future deadline on lookup while the stored
// record has already expired, standing in for a code that lapses
// between the service's validity check and the conditional update.
type staleLookupRepo struct {
	InviteRepository
}

func (s *staleLookupRepo) GetTeamCodeByCode(code string) (*InvitationCode, error) {
	c, err := s.InviteRepository.GetTeamCodeByCode(code)
	if err != nil {
		return nil, err
	}
	future := time.Now().Add(time.Hour)
	c.ExpiresAt = &future
	return c, nil
}

func TestRedeemTeamCodeExpiryRace(t *testing.T) {
	repo := newFakeInviteRepo()
	svc := NewService(&staleLookupRepo{InviteRepository: repo})

	past := time.Now().Add(-time.Minute)
	code, err := svc.CreateTeamCode(10, nil, CreateCodeRequest{MaxUses: 3, ExpiresAt: &past})
	require.NoError(t, err)

	// The conditional update re-checks the deadline, so the redemption
	// fails even though the earlier lookup saw a valid code.
	_, err = svc.RedeemTeamCode(code.Code, 7)
	assert.ErrorIs(t, err, ErrCodeExhausted)

	current, err := repo.GetTeamCodeByID(code.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, current.Uses)

	member, err := repo.HasAnyMembership(7, access.TeamScope(10))
	require.NoError(t, err)
	assert.False(t, member)
}

func TestGetTeamCode(t *testing.T) {
	repo := newFakeInviteRepo()
	svc := NewService(repo)

	created, err := svc.CreateTeamCode(10, nil, CreateCodeRequest{})
	require.NoError(t, err)

	code, err := svc.GetTeamCode(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Code, code.Code)
	assert.EqualValues(t, 10, code.TeamID)

	_, err = svc.GetTeamCode(9999)
	assert.ErrorIs(t, err, ErrCodeNotFound)
}

func TestGetLeagueInvitation(t *testing.T) {
	repo := newFakeInviteRepo()
	svc := NewService(repo)

	created, err := svc.CreateLeagueInvitation(3, nil, CreateCodeRequest{})
	require.NoError(t, err)

	code, err := svc.GetLeagueInvitation(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Code, code.Code)
	assert.EqualValues(t, 3, code.LeagueID)

	_, err = svc.GetLeagueInvitation(9999)
	assert.ErrorIs(t, err, ErrCodeNotFound)
}

func TestRedeemLeagueInvitation(t *testing.T) {
	repo := newFakeInviteRepo()
	svc := NewService(repo)

	code, err := svc.CreateLeagueInvitation(3, nil, CreateCodeRequest{})
	require.NoError(t, err)
	assert.Equal(t, access.RoleManager, code.GrantRole)

	redeemed, err := svc.RedeemLeagueInvitation(code.Code, 7)
	require.NoError(t, err)
	assert.Equal(t, 1, redeemed.Uses)

	member, err := repo.HasAnyMembership(7, access.LeagueScope(3))
	require.NoError(t, err)
	assert.True(t, member)
}
