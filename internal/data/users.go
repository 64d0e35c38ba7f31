package data

// Package data maps domain records onto keyed store items. Each repository
// owns the encoding for one record kind; nothing above this layer touches
// key prefixes or attribute names.

import (
	"context"
	"errors"

	domainauth "github.com/datalabs-io/platform-api/internal/domain/auth"
	apperrors "github.com/datalabs-io/platform-api/internal/errors"
	"github.com/datalabs-io/platform-api/internal/store"
)

const (
	attrUserType = "user_type"
	attrStatus   = "status"
)

// UserRepo reads and writes user records. Users are provisioned out of band;
// the write path exists for seeding and tests.
type UserRepo struct {
	store store.Store
}

// NewUserRepo creates a UserRepo over the given store.
func NewUserRepo(s store.Store) *UserRepo {
	return &UserRepo{store: s}
}

// FindByEmail resolves a user through the email index. Exactly one item must
// match: zero is NotFound, more than one is a MultiplicityViolation and is
// never resolved by picking a winner.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (domainauth.User, error) {
	items, err := r.store.Query(ctx, store.Query{
		Index:     store.IndexGSI1,
		Partition: store.EmailPartition(email),
		Filter:    store.UserKeyFilter(),
	})
	if err != nil {
		return domainauth.User{}, err
	}
	switch len(items) {
	case 0:
		return domainauth.User{}, apperrors.NotFoundf("no user for email %s", email)
	case 1:
		return decodeUser(items[0])
	default:
		return domainauth.User{}, apperrors.Multiplicityf("%d users share email %s", len(items), email)
	}
}

// FindByID looks up a user by primary key.
func (r *UserRepo) FindByID(ctx context.Context, userID string) (domainauth.User, error) {
	item, err := r.store.Get(ctx, store.UserKey(userID))
	if errors.Is(err, store.ErrNotFound) {
		return domainauth.User{}, apperrors.NotFoundf("no user %s", userID)
	}
	if err != nil {
		return domainauth.User{}, err
	}
	return decodeUser(item)
}

// Put writes the user record, replacing any existing record with the same id.
func (r *UserRepo) Put(ctx context.Context, u domainauth.User) error {
	return r.store.Put(ctx, encodeUser(u))
}

func encodeUser(u domainauth.User) store.Item {
	email := store.EmailPartition(u.Email)
	return store.Item{
		Key:    store.UserKey(u.ID),
		GSI1PK: email,
		GSI1SK: email,
		Attributes: map[string]string{
			attrUserType: string(u.Role),
			attrStatus:   string(u.Status),
		},
	}
}

func decodeUser(it store.Item) (domainauth.User, error) {
	id, ok := store.ParseUserID(it.PK)
	if !ok {
		return domainauth.User{}, apperrors.Internal("malformed user item key " + it.PK)
	}
	email, _ := store.ParseEmail(it.GSI1PK)
	return domainauth.User{
		ID:     id,
		Email:  email,
		Role:   domainauth.Role(it.Attribute(attrUserType)),
		Status: domainauth.Status(it.Attribute(attrStatus)),
	}, nil
}
