package data

import (
	"context"
	"errors"

	domainauth "github.com/datalabs-io/platform-api/internal/domain/auth"
	apperrors "github.com/datalabs-io/platform-api/internal/errors"
	"github.com/datalabs-io/platform-api/internal/store"
)

const attrMemberType = "member_type"

// TeamRepo reads and writes teams and team memberships.
type TeamRepo struct {
	store store.Store
}

// NewTeamRepo creates a TeamRepo over the given store.
func NewTeamRepo(s store.Store) *TeamRepo {
	return &TeamRepo{store: s}
}

// PutTeam writes a team record.
func (r *TeamRepo) PutTeam(ctx context.Context, t domainauth.Team) error {
	return r.store.Put(ctx, store.Item{
		Key:        store.TeamKey(t.Name),
		Attributes: map[string]string{},
	})
}

// FindTeam looks up a team by name.
func (r *TeamRepo) FindTeam(ctx context.Context, name string) (domainauth.Team, error) {
	_, err := r.store.Get(ctx, store.TeamKey(name))
	if errors.Is(err, store.ErrNotFound) {
		return domainauth.Team{}, apperrors.NotFoundf("no team %s", name)
	}
	if err != nil {
		return domainauth.Team{}, err
	}
	return domainauth.Team{Name: name}, nil
}

// PutMember writes a membership record. The member's index entry points back
// at the user so TeamsForUser can walk memberships from the other side.
func (r *TeamRepo) PutMember(ctx context.Context, m domainauth.TeamMember) error {
	return r.store.Put(ctx, store.Item{
		Key:        store.TeamMemberKey(m.TeamName, m.UserID),
		GSI1PK:     store.UserPartition(m.UserID),
		GSI1SK:     store.TeamKey(m.TeamName).PK,
		Attributes: map[string]string{attrMemberType: string(m.Type)},
	})
}

// TeamsForUser returns the user's memberships across all teams.
func (r *TeamRepo) TeamsForUser(ctx context.Context, userID string) ([]domainauth.TeamMember, error) {
	items, err := r.store.Query(ctx, store.Query{
		Index:      store.IndexGSI1,
		Partition:  store.UserPartition(userID),
		SortPrefix: store.TeamSortPrefix(),
	})
	if err != nil {
		return nil, err
	}

	members := make([]domainauth.TeamMember, 0, len(items))
	for _, it := range items {
		m, decErr := decodeMember(it)
		if decErr != nil {
			return nil, decErr
		}
		members = append(members, m)
	}
	return members, nil
}

// DeleteMember removes a membership record. Absent records are fine.
func (r *TeamRepo) DeleteMember(ctx context.Context, teamName, userID string) error {
	return r.store.Delete(ctx, store.TeamMemberKey(teamName, userID))
}

func decodeMember(it store.Item) (domainauth.TeamMember, error) {
	teamName, ok := store.ParseTeamName(it.PK)
	if !ok {
		return domainauth.TeamMember{}, apperrors.Internal("malformed membership item key " + it.PK)
	}
	userID, ok := store.ParseUserID(it.SK)
	if !ok {
		return domainauth.TeamMember{}, apperrors.Internal("malformed membership item key " + it.SK)
	}
	return domainauth.TeamMember{
		TeamName: teamName,
		UserID:   userID,
		Type:     domainauth.MemberType(it.Attribute(attrMemberType)),
	}, nil
}
