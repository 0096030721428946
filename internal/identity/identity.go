// Package identity builds the client id the CLI sends in the
// X-MindVault-Client header so server logs can tell callers apart.
package identity

import (
	"os"
	"os/user"
	"strings"
)

const (
	// FallbackUser is used when the user cannot be determined.
	FallbackUser = "unknown"
	// FallbackHostname is used when the hostname cannot be determined.
	FallbackHostname = "localhost"
)

// ClientID returns program/user@hostname for the current process.
func ClientID(program string) string {
	return Format(program, currentUser(), hostname())
}

// Format builds program/user@hostname, falling back for empty parts.
// Whitespace inside parts is replaced so the id stays a single header token.
func Format(program, usr, host string) string {
	if usr = clean(usr); usr == "" {
		usr = FallbackUser
	}
	if host = clean(host); host == "" {
		host = FallbackHostname
	}
	id := usr + "@" + host
	if program = clean(program); program != "" {
		id = program + "/" + id
	}
	return id
}

func clean(s string) string {
	return strings.Join(strings.Fields(s), "_")
}

// currentUser checks USER before falling back to user.Current.
func currentUser() string {
	if usr := os.Getenv("USER"); usr != "" {
		return usr
	}
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	return ""
}

func hostname() string {
	if h, err := os.Hostname(); err == nil {
		return h
	}
	return ""
}
