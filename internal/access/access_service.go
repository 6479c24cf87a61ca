package access

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidScope = errors.New("scope may reference at most one of team or league")
	ErrInvalidRole  = errors.New("unknown role")
	// ErrGlobalRoleRestricted: global grants are reserved for MASTER/ADMIN.
	ErrGlobalRoleRestricted = errors.New("only MASTER and ADMIN may be granted globally")
	// ErrScopedAdminRole: the converse also holds, MASTER/ADMIN exist
	// only as global grants. A team- or league-scoped admin row would be
	// inert but confusing.
	ErrScopedAdminRole = errors.New("MASTER and ADMIN can only be granted globally")
	// ErrFanNotGrantable: FAN is the implicit default, never persisted.
	ErrFanNotGrantable = errors.New("FAN is implicit and cannot be granted")
)

// Service answers "can user U perform action A in context C". It is a
// pure predicate/mutation layer: callers gate Grant/Revoke themselves.
// A missing membership is a normal false, never an error.
type Service struct {
	repo MembershipRepository
}

func NewService(repo MembershipRepository) *Service {
	return &Service{repo: repo}
}

// IsAdmin reports a global MASTER or ADMIN grant.
func (s *Service) IsAdmin(userID uint) (bool, error) {
	for _, role := range []Role{RoleMaster, RoleAdmin} {
		ok, err := s.repo.HasMembership(userID, role, GlobalScope())
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// HasRole checks for an exact (role, scope) membership. For scoped
// checks a global admin grant cascades: admins satisfy every scoped
// check without holding a stored duplicate.
func (s *Service) HasRole(userID uint, role Role, scope Scope) (bool, error) {
	if !scope.Valid() {
		return false, ErrInvalidScope
	}
	if !role.Valid() {
		return false, fmt.Errorf("%w: %s", ErrInvalidRole, role)
	}

	ok, err := s.repo.HasMembership(userID, role, scope)
	if err != nil || ok {
		return ok, err
	}
	if scope.IsGlobal() {
		return false, nil
	}
	return s.IsAdmin(userID)
}

// CanManageLeague: admin, or LEAGUE_MANAGER of the league.
func (s *Service) CanManageLeague(userID, leagueID uint) (bool, error) {
	if ok, err := s.IsAdmin(userID); ok || err != nil {
		return ok, err
	}
	return s.repo.HasMembership(userID, RoleLeagueManager, LeagueScope(leagueID))
}

// CanManageTeam: admin, or MANAGER of the team.
func (s *Service) CanManageTeam(userID, teamID uint) (bool, error) {
	if ok, err := s.IsAdmin(userID); ok || err != nil {
		return ok, err
	}
	return s.repo.HasMembership(userID, RoleManager, TeamScope(teamID))
}

// CanAssistTeam: anyone who can manage, plus ASSISTANTs.
func (s *Service) CanAssistTeam(userID, teamID uint) (bool, error) {
	if ok, err := s.CanManageTeam(userID, teamID); ok || err != nil {
		return ok, err
	}
	return s.repo.HasMembership(userID, RoleAssistant, TeamScope(teamID))
}

// CanViewTeam: anyone who can assist, plus PLAYERs.
func (s *Service) CanViewTeam(userID, teamID uint) (bool, error) {
	if ok, err := s.CanAssistTeam(userID, teamID); ok || err != nil {
		return ok, err
	}
	return s.repo.HasMembership(userID, RolePlayer, TeamScope(teamID))
}

// CanRemovePlayer deliberately breaks the assist chain: ASSISTANTs may
// view and assist but not remove players. Only admins and the team
// MANAGER qualify.
func (s *Service) CanRemovePlayer(userID, teamID uint) (bool, error) {
	return s.CanManageTeam(userID, teamID)
}

// CanManageMatch: admin, league manager, or a league-scoped
// MATCH_MANAGER / REFEREE_COMMISSION grant.
func (s *Service) CanManageMatch(userID, leagueID uint) (bool, error) {
	if ok, err := s.CanManageLeague(userID, leagueID); ok || err != nil {
		return ok, err
	}
	for _, role := range []Role{RoleMatchManager, RoleRefereeCommission} {
		ok, err := s.repo.HasMembership(userID, role, LeagueScope(leagueID))
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// EffectiveRoles returns the user's memberships, or the implicit FAN
// grant when none exist. FAN lives here so every caller computes the
// default the same way.
func (s *Service) EffectiveRoles(userID uint) ([]Membership, error) {
	memberships, err := s.repo.GetMembershipsByUser(userID)
	if err != nil {
		return nil, err
	}
	if len(memberships) == 0 {
		return []Membership{{UserID: userID, Role: RoleFan}}, nil
	}
	return memberships, nil
}

// Grant creates a membership. Granting an already-held (role, scope) is
// an idempotent no-op; created reports whether a new row was written.
func (s *Service) Grant(userID uint, role Role, scope Scope) (created bool, err error) {
	if !scope.Valid() {
		return false, ErrInvalidScope
	}
	if !role.Valid() {
		return false, fmt.Errorf("%w: %s", ErrInvalidRole, role)
	}
	if role == RoleFan {
		return false, ErrFanNotGrantable
	}
	if scope.IsGlobal() && role != RoleMaster && role != RoleAdmin {
		return false, ErrGlobalRoleRestricted
	}
	if !scope.IsGlobal() && (role == RoleMaster || role == RoleAdmin) {
		return false, ErrScopedAdminRole
	}

	exists, err := s.repo.HasMembership(userID, role, scope)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	return s.repo.CreateMembership(&Membership{
		UserID:   userID,
		Role:     role,
		TeamID:   scope.TeamID,
		LeagueID: scope.LeagueID,
	})
}

// Revoke removes a membership. Revoking an absent grant is a no-op.
func (s *Service) Revoke(userID uint, role Role, scope Scope) error {
	if !scope.Valid() {
		return ErrInvalidScope
	}
	return s.repo.DeleteMembership(userID, role, scope)
}
