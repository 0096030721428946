package identity

import (
	"strings"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name    string
		program string
		user    string
		host    string
		want    string
	}{
		{"full", "mindvault", "alice", "macbook", "mindvault/alice@macbook"},
		{"no program", "", "dev", "server", "dev@server"},
		{"fallback user", "mindvault", "", "server", "mindvault/unknown@server"},
		{"fallback host", "mindvault", "dev", "", "mindvault/dev@localhost"},
		{"all empty", "", "", "", "unknown@localhost"},
		{"whitespace collapsed", "mind vault", " Jo  Doe ", "my host", "mind_vault/Jo_Doe@my_host"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.program, tt.user, tt.host); got != tt.want {
				t.Errorf("Format() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClientID_UsesUserEnv(t *testing.T) {
	t.Setenv("USER", "tester")

	got := ClientID("mindvault")
	if !strings.HasPrefix(got, "mindvault/tester@") {
		t.Errorf("ClientID() = %q, want prefix %q", got, "mindvault/tester@")
	}
	if strings.ContainsAny(got, " \t") {
		t.Errorf("ClientID() = %q contains whitespace", got)
	}
}
