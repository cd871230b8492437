package keyutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRandom160(t *testing.T) {
	k := Random160()
	require.Equal(t, 160, k.BitLen())
}

func TestRandomWithPrefix160(t *testing.T) {
	k := RandomWithPrefix160("0101")
	require.Equal(t, uint(0), k.Bit(0))
	require.Equal(t, uint(1), k.Bit(1))
	require.Equal(t, uint(0), k.Bit(2))
	require.Equal(t, uint(1), k.Bit(3))

	k = RandomWithPrefix160("1")
	require.Equal(t, uint(1), k.Bit(0))
}
