package service

import (
	"testing"

	"github.com/aussiebroadwan/courier/internal/courier/domain"
	"github.com/stretchr/testify/require"
)

func TestGuardMessageRules(t *testing.T) {
	m := domain.Message{FromUsername: "alice", ToUsername: "bob"}

	tests := []struct {
		name    string
		id      domain.Identity
		canView bool
		canRead bool
	}{
		{"sender", "alice", true, false},
		{"recipient", "bob", true, true},
		{"third party", "carol", false, false},
		{"anonymous", domain.Anonymous, false, false},
	}

	var g Guard
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.canView, g.CanViewMessage(tt.id, m))
			require.Equal(t, tt.canRead, g.CanMarkRead(tt.id, m))
		})
	}
}

func TestGuardBrowsing_Open(t *testing.T) {
	var g Guard

	// With gating off everything is browsable, matching the historical
	// open listings.
	require.True(t, g.CanBrowseUsers(domain.Anonymous))
	require.True(t, g.CanBrowseUsers("alice"))
	require.True(t, g.CanBrowseMailbox(domain.Anonymous, "bob"))
	require.True(t, g.CanBrowseMailbox("alice", "bob"))
}

func TestGuardBrowsing_Gated(t *testing.T) {
	g := Guard{GateBrowsing: true}

	require.False(t, g.CanBrowseUsers(domain.Anonymous))
	require.True(t, g.CanBrowseUsers("alice"))

	require.True(t, g.CanBrowseMailbox("bob", "bob"))
	require.False(t, g.CanBrowseMailbox("alice", "bob"))
	require.False(t, g.CanBrowseMailbox(domain.Anonymous, "bob"))
}
