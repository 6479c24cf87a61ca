package invite

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/RohanMehta-11/ligo/internal/access"
)

var (
	ErrCodeNotFound  = errors.New("invitation code not found")
	ErrCodeInactive  = errors.New("invitation code has been revoked")
	ErrCodeExpired   = errors.New("invitation code has expired")
	ErrCodeExhausted = errors.New("invitation code has no uses left")
	// ErrAlreadyMember: redeeming into a scope the user already belongs
	// to is rejected, not silently ignored.
	ErrAlreadyMember    = errors.New("user already holds membership in this scope")
	ErrInvalidGrantRole = errors.New("invitation cannot grant this role")
)

const (
	defaultMaxUses = 1
	// A fresh code colliding with an existing one is rare (~2^40 space)
	// but not impossible; regenerate instead of surfacing a 500.
	maxGenerateAttempts = 3
)

type Service struct {
	repo InviteRepository
}

func NewService(repo InviteRepository) *Service {
	return &Service{repo: repo}
}

func normalizeGrantRole(raw string, fallback access.Role) (access.Role, error) {
	if raw == "" {
		return fallback, nil
	}
	role := access.Role(raw)
	if !role.Valid() || role == access.RoleFan ||
		role == access.RoleMaster || role == access.RoleAdmin {
		return "", fmt.Errorf("%w: %s", ErrInvalidGrantRole, raw)
	}
	return role, nil
}

// CreateTeamCode issues a redeemable code for a team. MaxUses defaults
// to 1, the granted role to PLAYER.
func (s *Service) CreateTeamCode(teamID uint, createdBy *uint, req CreateCodeRequest) (*InvitationCode, error) {
	role, err := normalizeGrantRole(req.GrantRole, access.RolePlayer)
	if err != nil {
		return nil, err
	}
	maxUses := req.MaxUses
	if maxUses < 1 {
		maxUses = defaultMaxUses
	}

	for attempt := 0; attempt < maxGenerateAttempts; attempt++ {
		codeStr, err := GenerateCode()
		if err != nil {
			return nil, err
		}
		code := &InvitationCode{
			TeamID: teamID,
			CodeDetails: CodeDetails{
				Code:      codeStr,
				CreatedBy: createdBy,
				GrantRole: role,
				MaxUses:   maxUses,
				IsActive:  true,
				ExpiresAt: req.ExpiresAt,
			},
		}
		err = s.repo.CreateTeamCode(code)
		if err == nil {
			return code, nil
		}
		if !IsDuplicateCode(err) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("could not generate a unique invitation code after %d attempts", maxGenerateAttempts)
}

// RedeemTeamCode exchanges a raw code for team membership. Validity
// failures are distinguished so the caller can render a precise
// message.
func (s *Service) RedeemTeamCode(rawCode string, userID uint) (*InvitationCode, error) {
	code, err := s.repo.GetTeamCodeByCode(rawCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCodeNotFound
		}
		return nil, err
	}

	if err := checkRedeemable(&code.CodeDetails); err != nil {
		return nil, err
	}

	member, err := s.repo.HasAnyMembership(userID, code.Scope())
	if err != nil {
		return nil, err
	}
	if member {
		return nil, ErrAlreadyMember
	}

	if err := s.repo.RedeemTeamCode(code.ID, userID, code.GrantRole); err != nil {
		return nil, err
	}
	return s.repo.GetTeamCodeByID(code.ID)
}

// GetTeamCode loads a code by ID, mapping a missing row to
// ErrCodeNotFound.
func (s *Service) GetTeamCode(id uint) (*InvitationCode, error) {
	code, err := s.repo.GetTeamCodeByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCodeNotFound
		}
		return nil, err
	}
	return code, nil
}

// RevokeTeamCode deactivates a code regardless of remaining uses.
// Revoking an inactive code succeeds.
func (s *Service) RevokeTeamCode(id uint) error {
	if _, err := s.GetTeamCode(id); err != nil {
		return err
	}
	return s.repo.RevokeTeamCode(id)
}

func (s *Service) ListTeamCodes(teamID uint, activeOnly bool, page, limit int) ([]InvitationCode, int64, error) {
	return s.repo.ListTeamCodes(teamID, activeOnly, page, limit)
}

// CreateLeagueInvitation issues a code granting a league-scoped role,
// LEAGUE_MANAGER-adjacent roles excluded; defaults to MANAGER.
func (s *Service) CreateLeagueInvitation(leagueID uint, createdBy *uint, req CreateCodeRequest) (*LeagueInvitation, error) {
	role, err := normalizeGrantRole(req.GrantRole, access.RoleManager)
	if err != nil {
		return nil, err
	}
	maxUses := req.MaxUses
	if maxUses < 1 {
		maxUses = defaultMaxUses
	}

	for attempt := 0; attempt < maxGenerateAttempts; attempt++ {
		codeStr, err := GenerateCode()
		if err != nil {
			return nil, err
		}
		code := &LeagueInvitation{
			LeagueID: leagueID,
			CodeDetails: CodeDetails{
				Code:      codeStr,
				CreatedBy: createdBy,
				GrantRole: role,
				MaxUses:   maxUses,
				IsActive:  true,
				ExpiresAt: req.ExpiresAt,
			},
		}
		err = s.repo.CreateLeagueInvitation(code)
		if err == nil {
			return code, nil
		}
		if !IsDuplicateCode(err) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("could not generate a unique invitation code after %d attempts", maxGenerateAttempts)
}

func (s *Service) RedeemLeagueInvitation(rawCode string, userID uint) (*LeagueInvitation, error) {
	code, err := s.repo.GetLeagueInvitationByCode(rawCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCodeNotFound
		}
		return nil, err
	}

	if err := checkRedeemable(&code.CodeDetails); err != nil {
		return nil, err
	}

	member, err := s.repo.HasAnyMembership(userID, code.Scope())
	if err != nil {
		return nil, err
	}
	if member {
		return nil, ErrAlreadyMember
	}

	if err := s.repo.RedeemLeagueInvitation(code.ID, userID, code.GrantRole); err != nil {
		return nil, err
	}
	return s.repo.GetLeagueInvitationByID(code.ID)
}

// GetLeagueInvitation loads an invitation by ID, mapping a missing row
// to ErrCodeNotFound.
func (s *Service) GetLeagueInvitation(id uint) (*LeagueInvitation, error) {
	code, err := s.repo.GetLeagueInvitationByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCodeNotFound
		}
		return nil, err
	}
	return code, nil
}

func (s *Service) RevokeLeagueInvitation(id uint) error {
	if _, err := s.GetLeagueInvitation(id); err != nil {
		return err
	}
	return s.repo.RevokeLeagueInvitation(id)
}

func (s *Service) ListLeagueInvitations(leagueID uint, activeOnly bool, page, limit int) ([]LeagueInvitation, int64, error) {
	return s.repo.ListLeagueInvitations(leagueID, activeOnly, page, limit)
}

// checkRedeemable distinguishes which validity condition failed.
// Exhaustion is checked first: the use that reaches the cap also flips
// IsActive off, and callers should hear "no uses left" rather than
// "revoked" for such codes.
func checkRedeemable(c *CodeDetails) error {
	if !c.HasAvailableUses() {
		return ErrCodeExhausted
	}
	if !c.IsActive {
		return ErrCodeInactive
	}
	if c.IsExpired() {
		return ErrCodeExpired
	}
	return nil
}
