package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	domainauth "github.com/datalabs-io/platform-api/internal/domain/auth"
	apperrors "github.com/datalabs-io/platform-api/internal/errors"
	"github.com/datalabs-io/platform-api/internal/ports"
)

// TeamServiceOptions groups dependencies for TeamService.
type TeamServiceOptions struct {
	Teams  ports.TeamRepository // Required: team persistence
	Users  ports.UserRepository // Required: member resolution by email
	Logger *slog.Logger         // Optional: structured logger
}

// TeamService manages teams and memberships. All operations require the
// SuperAdmin role; the acting identity comes from the request authorizer.
type TeamService struct {
	teams  ports.TeamRepository
	users  ports.UserRepository
	logger *slog.Logger
}

// NewTeamService constructs a TeamService.
func NewTeamService(opts TeamServiceOptions) (*TeamService, error) {
	if opts.Teams == nil {
		return nil, errors.New("TeamRepository is required")
	}
	if opts.Users == nil {
		return nil, errors.New("UserRepository is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &TeamService{
		teams:  opts.Teams,
		users:  opts.Users,
		logger: logger.With("component", "team_service"),
	}, nil
}

// CreateTeam creates a team record. SuperAdmin only.
func (s *TeamService) CreateTeam(ctx context.Context, actor domainauth.Context, name string) (domainauth.Team, error) {
	if err := requireSuperAdmin(actor); err != nil {
		return domainauth.Team{}, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return domainauth.Team{}, apperrors.Validation("team name is required")
	}

	team := domainauth.Team{Name: name}
	if err := s.teams.PutTeam(ctx, team); err != nil {
		return domainauth.Team{}, err
	}

	s.logger.InfoContext(ctx, "team created", "team", name, "actor", actor.UserID)
	return team, nil
}

// AddMember adds a user, resolved by email, to an existing team. SuperAdmin
// only.
func (s *TeamService) AddMember(
	ctx context.Context,
	actor domainauth.Context,
	teamName, email string,
	memberType domainauth.MemberType,
) (domainauth.TeamMember, error) {
	if err := requireSuperAdmin(actor); err != nil {
		return domainauth.TeamMember{}, err
	}
	if !domainauth.ValidMemberType(memberType) {
		return domainauth.TeamMember{}, apperrors.Validationf("invalid member type %q", memberType)
	}

	if _, err := s.teams.FindTeam(ctx, teamName); err != nil {
		return domainauth.TeamMember{}, err
	}
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return domainauth.TeamMember{}, err
	}

	member := domainauth.TeamMember{
		TeamName: teamName,
		UserID:   user.ID,
		Type:     memberType,
	}
	if err := s.teams.PutMember(ctx, member); err != nil {
		return domainauth.TeamMember{}, err
	}

	s.logger.InfoContext(ctx, "team member added",
		"team", teamName,
		"user_id", user.ID,
		"member_type", memberType,
		"actor", actor.UserID,
	)
	return member, nil
}

// MembershipsFor returns the teams the given user belongs to.
func (s *TeamService) MembershipsFor(ctx context.Context, userID string) ([]domainauth.TeamMember, error) {
	return s.teams.TeamsForUser(ctx, userID)
}

func requireSuperAdmin(actor domainauth.Context) error {
	if actor.Role != domainauth.RoleSuperAdmin {
		return apperrors.Unauthorized("requires SuperAdmin role")
	}
	return nil
}
