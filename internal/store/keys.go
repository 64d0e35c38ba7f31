package store

import "strings"

// The single table packs distinct entity kinds into one keyspace. Each kind
// gets a typed key builder and parser here so no call site does ad hoc
// string splitting.
const (
	userPrefix        = "USER#"
	emailPrefix       = "EMAIL#"
	authSessionPrefix = "AUTHSESSION#"
	sessionPrefix     = "SESSION#"
	teamPrefix        = "TEAM#"
	toolPrefix        = "TOOL#"
	toolTypePrefix    = "TOOLTYPE#"
	toolVersionPrefix = "TOOLVERSION#"
)

// UserPartition returns the "USER#<id>" key component.
func UserPartition(userID string) string { return userPrefix + userID }

// EmailPartition returns the "EMAIL#<email>" GSI1 component indexing a user
// by email.
func EmailPartition(email string) string { return emailPrefix + email }

// SessionPartition returns the "SESSION#<id>" GSI1 component indexing a
// session by its opaque id.
func SessionPartition(sessionID string) string { return sessionPrefix + sessionID }

// UserKey addresses a user record (PK and SK are both "USER#<id>").
func UserKey(userID string) Key {
	p := UserPartition(userID)
	return Key{PK: p, SK: p}
}

// AuthSessionKey addresses a one-time login code record under its user.
func AuthSessionKey(userID, id string) Key {
	return Key{PK: UserPartition(userID), SK: authSessionPrefix + id}
}

// SessionKey addresses an authenticated session record under its user.
func SessionKey(userID, id string) Key {
	return Key{PK: UserPartition(userID), SK: sessionPrefix + id}
}

// TeamKey addresses a team record (PK and SK are both "TEAM#<name>").
func TeamKey(name string) Key {
	p := teamPrefix + name
	return Key{PK: p, SK: p}
}

// TeamSortPrefix matches the membership entries ("TEAM#...") in a user's
// GSI1 partition.
func TeamSortPrefix() string { return teamPrefix }

// TeamMemberKey addresses a membership record of a user within a team.
func TeamMemberKey(teamName, userID string) Key {
	return Key{PK: teamPrefix + teamName, SK: UserPartition(userID)}
}

// ToolKey addresses a tool record under its owning user.
func ToolKey(userID, toolID string) Key {
	return Key{PK: UserPartition(userID), SK: toolPrefix + toolID}
}

// ToolTypePartition returns the "TOOLTYPE#<type>" GSI1 component indexing
// tools by kind.
func ToolTypePartition(toolType string) string { return toolTypePrefix + toolType }

// ToolVersionSort returns the "TOOLVERSION#<version>" GSI1 sort component.
func ToolVersionSort(version string) string { return toolVersionPrefix + version }

// UserKeyFilter matches user records on the primary key (both components
// carry the USER# prefix).
func UserKeyFilter() *KeyFilter {
	return &KeyFilter{PKPrefix: userPrefix, SKPrefix: userPrefix}
}

// AuthSessionKeyFilter matches login-code records owned by any user.
func AuthSessionKeyFilter() *KeyFilter {
	return &KeyFilter{PKPrefix: userPrefix, SKPrefix: authSessionPrefix}
}

// SessionKeyFilter matches authenticated session records owned by any user.
func SessionKeyFilter() *KeyFilter {
	return &KeyFilter{PKPrefix: userPrefix, SKPrefix: sessionPrefix}
}

// ParseUserID extracts the user id from a "USER#<id>" component.
func ParseUserID(component string) (string, bool) {
	return strings.CutPrefix(component, userPrefix)
}

// ParseEmail extracts the email from an "EMAIL#<email>" component.
func ParseEmail(component string) (string, bool) {
	return strings.CutPrefix(component, emailPrefix)
}

// ParseAuthSessionID extracts the login-code id from an "AUTHSESSION#<id>"
// sort component.
func ParseAuthSessionID(component string) (string, bool) {
	return strings.CutPrefix(component, authSessionPrefix)
}

// ParseSessionID extracts the session id from a "SESSION#<id>" component.
func ParseSessionID(component string) (string, bool) {
	return strings.CutPrefix(component, sessionPrefix)
}

// ParseTeamName extracts the team name from a "TEAM#<name>" component.
func ParseTeamName(component string) (string, bool) {
	return strings.CutPrefix(component, teamPrefix)
}

// ParseToolID extracts the tool id from a "TOOL#<id>" sort component.
func ParseToolID(component string) (string, bool) {
	return strings.CutPrefix(component, toolPrefix)
}

// ParseToolType extracts the tool type from a "TOOLTYPE#<type>" component.
func ParseToolType(component string) (string, bool) {
	return strings.CutPrefix(component, toolTypePrefix)
}

// ParseToolVersion extracts the version from a "TOOLVERSION#<version>"
// component.
func ParseToolVersion(component string) (string, bool) {
	return strings.CutPrefix(component, toolVersionPrefix)
}
