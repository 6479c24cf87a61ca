package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeMembershipRepo is an in-memory MembershipRepository.
type fakeMembershipRepo struct {
	memberships []Membership
	nextID      uint
}

func newFakeMembershipRepo() *fakeMembershipRepo {
	return &fakeMembershipRepo{nextID: 1}
}

func scopeEqual(a, b Scope) bool {
	uintPtrEqual := func(x, y *uint) bool {
		if x == nil || y == nil {
			return x == y
		}
		return *x == *y
	}
	return uintPtrEqual(a.TeamID, b.TeamID) && uintPtrEqual(a.LeagueID, b.LeagueID)
}

func (f *fakeMembershipRepo) HasMembership(userID uint, role Role, scope Scope) (bool, error) {
	for _, m := range f.memberships {
		if m.UserID == userID && m.Role == role && scopeEqual(m.Scope(), scope) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeMembershipRepo) CreateMembership(m *Membership) (bool, error) {
	if ok, _ := f.HasMembership(m.UserID, m.Role, m.Scope()); ok {
		return false, nil
	}
	m.ID = f.nextID
	f.nextID++
	f.memberships = append(f.memberships, *m)
	return true, nil
}

func (f *fakeMembershipRepo) DeleteMembership(userID uint, role Role, scope Scope) error {
	kept := f.memberships[:0]
	for _, m := range f.memberships {
		if !(m.UserID == userID && m.Role == role && scopeEqual(m.Scope(), scope)) {
			kept = append(kept, m)
		}
	}
	f.memberships = kept
	return nil
}

func (f *fakeMembershipRepo) GetMembershipsByUser(userID uint) ([]Membership, error) {
	var out []Membership
	for _, m := range f.memberships {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMembershipRepo) GetMembershipsByScope(scope Scope) ([]Membership, error) {
	var out []Membership
	for _, m := range f.memberships {
		if scopeEqual(m.Scope(), scope) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMembershipRepo) CountMembershipsByUser(userID uint) (int64, error) {
	ms, _ := f.GetMembershipsByUser(userID)
	return int64(len(ms)), nil
}

func newTestService(t *testing.T) (*Service, *fakeMembershipRepo) {
	t.Helper()
	repo := newFakeMembershipRepo()
	return NewService(repo), repo
}

func TestRoleOrdering(t *testing.T) {
	ordered := []Role{RoleMaster, RoleAdmin, RoleLeagueManager, RoleManager, RoleMatchManager, RoleAssistant, RolePlayer, RoleFan}
	for i := 0; i < len(ordered); i++ {
		for j := i; j < len(ordered); j++ {
			assert.True(t, ordered[i].AtLeast(ordered[j]), "%s should be at least %s", ordered[i], ordered[j])
		}
		for j := 0; j < i; j++ {
			assert.False(t, ordered[i].AtLeast(ordered[j]), "%s should not be at least %s", ordered[i], ordered[j])
		}
	}
	// MATCH_MANAGER and REFEREE_COMMISSION share a rank.
	assert.True(t, RoleMatchManager.AtLeast(RoleRefereeCommission))
	assert.True(t, RoleRefereeCommission.AtLeast(RoleMatchManager))
}

func TestScopeValid(t *testing.T) {
	teamID, leagueID := uint(1), uint(2)
	assert.True(t, GlobalScope().Valid())
	assert.True(t, TeamScope(teamID).Valid())
	assert.True(t, LeagueScope(leagueID).Valid())
	assert.False(t, Scope{TeamID: &teamID, LeagueID: &leagueID}.Valid())
}

func TestHasRoleExactMatch(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.Grant(1, RoleManager, TeamScope(10))
	require.NoError(t, err)
	assert.True(t, created)

	ok, err := svc.HasRole(1, RoleManager, TeamScope(10))
	require.NoError(t, err)
	assert.True(t, ok)

	// Same role in a different team is not held.
	ok, err = svc.HasRole(1, RoleManager, TeamScope(11))
	require.NoError(t, err)
	assert.False(t, ok)

	// Absence is a normal false, not an error.
	ok, err = svc.HasRole(99, RolePlayer, TeamScope(10))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGlobalAdminCascade(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Grant(1, RoleAdmin, GlobalScope())
	require.NoError(t, err)

	// A global admin satisfies any scoped check without a stored duplicate.
	for _, check := range []struct {
		name string
		fn   func() (bool, error)
	}{
		{"HasRole manager", func() (bool, error) { return svc.HasRole(1, RoleManager, TeamScope(7)) }},
		{"CanManageTeam", func() (bool, error) { return svc.CanManageTeam(1, 7) }},
		{"CanManageLeague", func() (bool, error) { return svc.CanManageLeague(1, 3) }},
		{"CanManageMatch", func() (bool, error) { return svc.CanManageMatch(1, 3) }},
		{"CanRemovePlayer", func() (bool, error) { return svc.CanRemovePlayer(1, 7) }},
	} {
		ok, err := check.fn()
		require.NoError(t, err, check.name)
		assert.True(t, ok, check.name)
	}

	// The cascade does not apply to global checks for other users.
	ok, err := svc.HasRole(2, RoleManager, TeamScope(7))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTeamCheckMonotonicity(t *testing.T) {
	const teamID = 5

	cases := []struct {
		role      Role
		canManage bool
		canAssist bool
		canView   bool
	}{
		{RoleManager, true, true, true},
		{RoleAssistant, false, true, true},
		{RolePlayer, false, false, true},
	}

	for _, tc := range cases {
		t.Run(string(tc.role), func(t *testing.T) {
			svc, _ := newTestService(t)
			_, err := svc.Grant(1, tc.role, TeamScope(teamID))
			require.NoError(t, err)

			ok, err := svc.CanManageTeam(1, teamID)
			require.NoError(t, err)
			assert.Equal(t, tc.canManage, ok, "CanManageTeam")

			ok, err = svc.CanAssistTeam(1, teamID)
			require.NoError(t, err)
			assert.Equal(t, tc.canAssist, ok, "CanAssistTeam")

			ok, err = svc.CanViewTeam(1, teamID)
			require.NoError(t, err)
			assert.Equal(t, tc.canView, ok, "CanViewTeam")
		})
	}
}

func TestCanRemovePlayerExcludesAssistant(t *testing.T) {
	svc, _ := newTestService(t)
	const teamID = 5

	_, err := svc.Grant(1, RoleAssistant, TeamScope(teamID))
	require.NoError(t, err)

	// Assistants assist and view but never remove players.
	ok, err := svc.CanAssistTeam(1, teamID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.CanRemovePlayer(1, teamID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPlayerPromotedToManagerCanRemove(t *testing.T) {
	svc, _ := newTestService(t)
	const teamID = 9

	_, err := svc.Grant(1, RolePlayer, TeamScope(teamID))
	require.NoError(t, err)

	ok, err := svc.CanRemovePlayer(1, teamID)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = svc.Grant(1, RoleManager, TeamScope(teamID))
	require.NoError(t, err)

	ok, err = svc.CanRemovePlayer(1, teamID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCanManageMatchRoles(t *testing.T) {
	const leagueID = 2

	for _, role := range []Role{RoleLeagueManager, RoleMatchManager, RoleRefereeCommission} {
		svc, _ := newTestService(t)
		_, err := svc.Grant(1, role, LeagueScope(leagueID))
		require.NoError(t, err)

		ok, err := svc.CanManageMatch(1, leagueID)
		require.NoError(t, err)
		assert.True(t, ok, "role %s", role)
	}

	svc, _ := newTestService(t)
	_, err := svc.Grant(1, RolePlayer, TeamScope(4))
	require.NoError(t, err)
	ok, err := svc.CanManageMatch(1, leagueID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGrantIdempotent(t *testing.T) {
	svc, repo := newTestService(t)

	created, err := svc.Grant(1, RolePlayer, TeamScope(3))
	require.NoError(t, err)
	assert.True(t, created)

	created, err = svc.Grant(1, RolePlayer, TeamScope(3))
	require.NoError(t, err)
	assert.False(t, created)

	count, err := repo.CountMembershipsByUser(1)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestGrantValidation(t *testing.T) {
	svc, _ := newTestService(t)
	teamID, leagueID := uint(1), uint(2)

	_, err := svc.Grant(1, RoleManager, Scope{TeamID: &teamID, LeagueID: &leagueID})
	assert.ErrorIs(t, err, ErrInvalidScope)

	_, err = svc.Grant(1, Role("SUPERHERO"), TeamScope(1))
	assert.ErrorIs(t, err, ErrInvalidRole)

	_, err = svc.Grant(1, RoleFan, TeamScope(1))
	assert.ErrorIs(t, err, ErrFanNotGrantable)

	// Global grants are reserved for MASTER/ADMIN.
	_, err = svc.Grant(1, RoleManager, GlobalScope())
	assert.ErrorIs(t, err, ErrGlobalRoleRestricted)

	_, err = svc.Grant(1, RoleMaster, GlobalScope())
	assert.NoError(t, err)
}

func TestGrantScopedAdminRejected(t *testing.T) {
	svc, repo := newTestService(t)

	// MASTER/ADMIN only exist globally; a scoped row would never be
	// consulted by the admin checks.
	for _, role := range []Role{RoleMaster, RoleAdmin} {
		_, err := svc.Grant(1, role, TeamScope(3))
		assert.ErrorIs(t, err, ErrScopedAdminRole)

		_, err = svc.Grant(1, role, LeagueScope(4))
		assert.ErrorIs(t, err, ErrScopedAdminRole)
	}

	count, err := repo.CountMembershipsByUser(1)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestRevokeRemovesGrant(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Grant(1, RoleManager, TeamScope(4))
	require.NoError(t, err)

	require.NoError(t, svc.Revoke(1, RoleManager, TeamScope(4)))

	ok, err := svc.CanManageTeam(1, 4)
	require.NoError(t, err)
	assert.False(t, ok)

	// Revoking again is a no-op.
	require.NoError(t, svc.Revoke(1, RoleManager, TeamScope(4)))
}

func TestEffectiveRolesDefaultFan(t *testing.T) {
	svc, _ := newTestService(t)

	roles, err := svc.EffectiveRoles(42)
	require.NoError(t, err)
	require.Len(t, roles, 1)
	assert.Equal(t, RoleFan, roles[0].Role)
	assert.Zero(t, roles[0].ID, "implicit FAN must not look persisted")

	_, err = svc.Grant(42, RolePlayer, TeamScope(1))
	require.NoError(t, err)

	roles, err = svc.EffectiveRoles(42)
	require.NoError(t, err)
	require.Len(t, roles, 1)
	assert.Equal(t, RolePlayer, roles[0].Role)
}
