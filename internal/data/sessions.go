package data

import (
	"context"
	"time"

	domainauth "github.com/datalabs-io/platform-api/internal/domain/auth"
	apperrors "github.com/datalabs-io/platform-api/internal/errors"
	"github.com/datalabs-io/platform-api/internal/store"
)

const (
	attrCode      = "code"
	attrCSRFToken = "csrf_token"
)

// SessionRepo reads and writes one-time login codes and authenticated
// sessions. Both record kinds live under the owning user's partition and
// carry an expiry.
type SessionRepo struct {
	store store.Store
}

// NewSessionRepo creates a SessionRepo over the given store.
func NewSessionRepo(s store.Store) *SessionRepo {
	return &SessionRepo{store: s}
}

// PutAuthSession writes a one-time login code record.
func (r *SessionRepo) PutAuthSession(ctx context.Context, as domainauth.AuthSession) error {
	userPartition := store.UserPartition(as.UserID)
	return r.store.Put(ctx, store.Item{
		Key:        store.AuthSessionKey(as.UserID, as.ID),
		GSI1PK:     userPartition,
		GSI1SK:     userPartition,
		Attributes: map[string]string{attrCode: as.Code},
		ExpiresAt:  expiryEpoch(as.Expiry),
	})
}

// AuthSessionsForUser returns the user's outstanding login codes. Expired
// codes are already filtered out by the store.
func (r *SessionRepo) AuthSessionsForUser(ctx context.Context, userID string) ([]domainauth.AuthSession, error) {
	items, err := r.store.Query(ctx, store.Query{
		Index:     store.IndexGSI1,
		Partition: store.UserPartition(userID),
		Filter:    store.AuthSessionKeyFilter(),
	})
	if err != nil {
		return nil, err
	}

	sessions := make([]domainauth.AuthSession, 0, len(items))
	for _, it := range items {
		as, decErr := decodeAuthSession(it)
		if decErr != nil {
			return nil, decErr
		}
		sessions = append(sessions, as)
	}
	return sessions, nil
}

// DeleteAuthSession removes a login code record. Absent records are fine.
func (r *SessionRepo) DeleteAuthSession(ctx context.Context, userID, id string) error {
	return r.store.Delete(ctx, store.AuthSessionKey(userID, id))
}

// PutSession writes an authenticated session record.
func (r *SessionRepo) PutSession(ctx context.Context, s domainauth.Session) error {
	sessionPartition := store.SessionPartition(s.ID)
	return r.store.Put(ctx, store.Item{
		Key:        store.SessionKey(s.UserID, s.ID),
		GSI1PK:     sessionPartition,
		GSI1SK:     sessionPartition,
		Attributes: map[string]string{attrCSRFToken: s.CSRFToken},
		ExpiresAt:  expiryEpoch(s.Expiry),
	})
}

// FindSessionByID resolves a session through the session-id index. Exactly
// one item must match: zero is NotFound, more than one is a
// MultiplicityViolation.
func (r *SessionRepo) FindSessionByID(ctx context.Context, sessionID string) (domainauth.Session, error) {
	items, err := r.store.Query(ctx, store.Query{
		Index:     store.IndexGSI1,
		Partition: store.SessionPartition(sessionID),
		Filter:    store.SessionKeyFilter(),
	})
	if err != nil {
		return domainauth.Session{}, err
	}
	switch len(items) {
	case 0:
		return domainauth.Session{}, apperrors.NotFound("no such session")
	case 1:
		return decodeSession(items[0])
	default:
		return domainauth.Session{}, apperrors.Multiplicityf("%d sessions share one id", len(items))
	}
}

// DeleteSession removes a session record. Absent records are fine.
func (r *SessionRepo) DeleteSession(ctx context.Context, userID, id string) error {
	return r.store.Delete(ctx, store.SessionKey(userID, id))
}

func decodeAuthSession(it store.Item) (domainauth.AuthSession, error) {
	userID, ok := store.ParseUserID(it.PK)
	if !ok {
		return domainauth.AuthSession{}, apperrors.Internal("malformed auth session item key " + it.PK)
	}
	id, ok := store.ParseAuthSessionID(it.SK)
	if !ok {
		return domainauth.AuthSession{}, apperrors.Internal("malformed auth session item key " + it.SK)
	}
	return domainauth.AuthSession{
		ID:     id,
		UserID: userID,
		Code:   it.Attribute(attrCode),
		Expiry: expiryTime(it),
	}, nil
}

func decodeSession(it store.Item) (domainauth.Session, error) {
	userID, ok := store.ParseUserID(it.PK)
	if !ok {
		return domainauth.Session{}, apperrors.Internal("malformed session item key " + it.PK)
	}
	id, ok := store.ParseSessionID(it.SK)
	if !ok {
		return domainauth.Session{}, apperrors.Internal("malformed session item key " + it.SK)
	}
	return domainauth.Session{
		ID:        id,
		UserID:    userID,
		CSRFToken: it.Attribute(attrCSRFToken),
		Expiry:    expiryTime(it),
	}, nil
}

// expiryEpoch converts an expiry time to stored epoch seconds, with the zero
// time meaning no expiry.
func expiryEpoch(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Unix()
}

// expiryTime converts stored epoch seconds back to a time, zero meaning no
// expiry.
func expiryTime(it store.Item) time.Time {
	if it.ExpiresAt == 0 {
		return time.Time{}
	}
	return time.Unix(it.ExpiresAt, 0).UTC()
}
