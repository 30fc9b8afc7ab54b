package identity

import (
	"encoding/base64"
	"strings"
)

// GuestKey is returned when the profile fields cannot be encoded.
const GuestKey = "guest"

// Profile describes the signed-in user as far as the dashboard cares:
// enough to partition the cache and to ask the agent for topics.
type Profile struct {
	AccountID   string
	DisplayName string
	JobTitle    string
	Department  string
	Quote       string
}

// DeriveKey produces the cache partition key for a profile.
//
// An account ID wins outright so one authenticated identity maps to one
// partition across sessions. Without one the key is derived from
// "jobTitle|department" via URL-safe base64. The upstream encoder rejected
// characters outside Latin-1; that contract is kept, so any such rune yields
// the fixed GuestKey. Always returns a usable key.
func DeriveKey(accountID, jobTitle, department string) string {
	if accountID != "" {
		return accountID
	}
	if jobTitle == "" {
		jobTitle = "unknown"
	}
	if department == "" {
		department = "unknown"
	}
	raw := jobTitle + "|" + department
	buf := make([]byte, 0, len(raw))
	for _, r := range raw {
		if r > 0xFF {
			return GuestKey
		}
		buf = append(buf, byte(r))
	}
	return base64.URLEncoding.EncodeToString(buf)
}

// Key derives the profile's cache partition key.
func (p Profile) Key() string {
	return DeriveKey(p.AccountID, p.JobTitle, p.Department)
}

// IsGuest reports whether the profile has no authenticated identity.
func (p Profile) IsGuest() bool {
	return p.AccountID == ""
}

// Initials returns up to two uppercase letters for the avatar monogram.
func (p Profile) Initials() string {
	fields := strings.Fields(p.DisplayName)
	switch len(fields) {
	case 0:
		return "?"
	case 1:
		return strings.ToUpper(firstRune(fields[0]))
	default:
		return strings.ToUpper(firstRune(fields[0]) + firstRune(fields[len(fields)-1]))
	}
}

func firstRune(s string) string {
	for _, r := range s {
		return string(r)
	}
	return ""
}
