package libp2p

import (
	"testing"

	"github.com/libp2p/go-libp2p/core/peer"
	"github.com/stretchr/testify/require"

	"github.com/plprobelab/go-kadtable/key"
)

func TestPeerIDKey(t *testing.T) {
	p := NewPeerID(peer.ID("QmPeer"))

	k := p.Key()
	require.Equal(t, 256, k.BitLen())

	// key derivation is deterministic
	require.True(t, key.Equal(k, NewPeerID(peer.ID("QmPeer")).Key()))
	require.False(t, key.Equal(k, NewPeerID(peer.ID("QmOther")).Key()))
}
