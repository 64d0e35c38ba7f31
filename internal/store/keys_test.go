package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserKeyRoundTrip(t *testing.T) {
	key := UserKey("7f9c0a12")
	assert.Equal(t, "USER#7f9c0a12", key.PK)
	assert.Equal(t, key.PK, key.SK)

	id, ok := ParseUserID(key.PK)
	assert.True(t, ok)
	assert.Equal(t, "7f9c0a12", id)

	_, ok = ParseUserID("SESSION#7f9c0a12")
	assert.False(t, ok)
}

func TestSessionKeys(t *testing.T) {
	key := SessionKey("u1", "s1")
	assert.Equal(t, "USER#u1", key.PK)
	assert.Equal(t, "SESSION#s1", key.SK)

	sid, ok := ParseSessionID(key.SK)
	assert.True(t, ok)
	assert.Equal(t, "s1", sid)

	assert.Equal(t, "SESSION#s1", SessionPartition("s1"))
}

func TestAuthSessionKeys(t *testing.T) {
	key := AuthSessionKey("u1", "a1")
	assert.Equal(t, "USER#u1", key.PK)
	assert.Equal(t, "AUTHSESSION#a1", key.SK)

	id, ok := ParseAuthSessionID(key.SK)
	assert.True(t, ok)
	assert.Equal(t, "a1", id)
}

func TestEmailPartitionRoundTrip(t *testing.T) {
	p := EmailPartition("a@x.com")
	assert.Equal(t, "EMAIL#a@x.com", p)

	email, ok := ParseEmail(p)
	assert.True(t, ok)
	assert.Equal(t, "a@x.com", email)
}

func TestTeamAndToolKeys(t *testing.T) {
	assert.Equal(t, Key{PK: "TEAM#core", SK: "TEAM#core"}, TeamKey("core"))
	assert.Equal(t, Key{PK: "TEAM#core", SK: "USER#u1"}, TeamMemberKey("core", "u1"))
	assert.Equal(t, Key{PK: "USER#u1", SK: "TOOL#AB12CD34"}, ToolKey("u1", "AB12CD34"))
	assert.Equal(t, "TOOLTYPE#Jupyter", ToolTypePartition("Jupyter"))
	assert.Equal(t, "TOOLVERSION#1.2.3", ToolVersionSort("1.2.3"))
	assert.Equal(t, "TEAM#", TeamSortPrefix())

	name, ok := ParseTeamName("TEAM#core")
	assert.True(t, ok)
	assert.Equal(t, "core", name)

	toolID, ok := ParseToolID("TOOL#AB12CD34")
	assert.True(t, ok)
	assert.Equal(t, "AB12CD34", toolID)
}

func TestKeyFilters(t *testing.T) {
	user := Item{Key: UserKey("u1")}
	authSession := Item{Key: AuthSessionKey("u1", "a1")}
	session := Item{Key: SessionKey("u1", "s1")}

	assert.True(t, UserKeyFilter().Matches(user))
	assert.False(t, UserKeyFilter().Matches(authSession))

	assert.True(t, AuthSessionKeyFilter().Matches(authSession))
	assert.False(t, AuthSessionKeyFilter().Matches(session))

	assert.True(t, SessionKeyFilter().Matches(session))
	assert.False(t, SessionKeyFilter().Matches(user))
}
