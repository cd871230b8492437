package key

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func zeroBytes(n int) []byte {
	return make([]byte, n)
}

func TestKey160String(t *testing.T) {
	zero := NewKey160(zeroBytes(20))
	require.Equal(t, strings.Repeat("00", 20), zero.String())

	ff := make([]byte, 20)
	for i := range ff {
		ff[i] = 0xff
	}
	require.Equal(t, strings.Repeat("ff", 20), NewKey160(ff).String())

	e3 := make([]byte, 20)
	for i := range e3 {
		e3[i] = 0xe3
	}
	require.Equal(t, strings.Repeat("e3", 20), NewKey160(e3).String())
}

func TestNewKey160WrongLength(t *testing.T) {
	require.Panics(t, func() {
		NewKey160([]byte{0x23, 0xe4, 0xdd})
	})
}

func TestXor(t *testing.T) {
	key0 := ZeroKey160()
	randKey := NewKey160(append([]byte{0x23, 0xe4, 0xdd, 0x03}, zeroBytes(16)...))

	require.Equal(t, key0, key0.Xor(key0))
	require.Equal(t, randKey, randKey.Xor(key0))
	require.Equal(t, randKey, key0.Xor(randKey))
	require.Equal(t, key0, randKey.Xor(randKey))
}

func TestCommonPrefixLength(t *testing.T) {
	key0 := ZeroKey160()                                        // 00000...000
	key1 := NewKey160(append(zeroBytes(19), 0x01))              // 00000...001
	key2 := NewKey160(append([]byte{0x80}, zeroBytes(19)...))   // 10000...000
	key3 := NewKey160(append([]byte{0x40}, zeroBytes(19)...))   // 01000...000

	require.Equal(t, 160, key0.CommonPrefixLength(key0))
	require.Equal(t, 159, key0.CommonPrefixLength(key1))
	require.Equal(t, 0, key0.CommonPrefixLength(key2))
	require.Equal(t, 1, key0.CommonPrefixLength(key3))
}

func TestCompare(t *testing.T) {
	keys := make([]Key160, 0, 5)
	// ascending order
	keys = append(keys, ZeroKey160())                                      // 00000...000
	keys = append(keys, NewKey160(append(zeroBytes(19), 0x01)))            // 00000...001
	keys = append(keys, NewKey160(append(zeroBytes(19), 0x02)))            // 00000...010
	keys = append(keys, NewKey160(append([]byte{0x40}, zeroBytes(19)...))) // 01000...000
	keys = append(keys, NewKey160(append([]byte{0x80}, zeroBytes(19)...))) // 10000...000

	for i := range keys {
		for j := range keys {
			res := keys[i].Compare(keys[j])
			if i < j {
				require.Equal(t, -1, res)
			} else if i > j {
				require.Equal(t, 1, res)
			} else {
				require.Equal(t, 0, res)
				require.True(t, Equal(keys[i], keys[j]))
			}
		}
	}
}

func TestBit(t *testing.T) {
	key1 := NewKey160(append(zeroBytes(19), 0x01)) // 00000...001
	for i := 0; i < 159; i++ {
		require.Equal(t, uint(0), key1.Bit(i))
	}
	require.Equal(t, uint(1), key1.Bit(159))

	key2 := NewKey160(append([]byte{0x80}, zeroBytes(19)...)) // 10000...000
	require.Equal(t, uint(1), key2.Bit(0))
	for i := 1; i < 160; i++ {
		require.Equal(t, uint(0), key2.Bit(i))
	}
}

func TestKey32(t *testing.T) {
	a := Key32(0)
	b := Key32(1) // differs in the least significant bit

	require.Equal(t, 32, a.BitLen())
	require.Equal(t, 31, a.CommonPrefixLength(b))
	require.Equal(t, b, a.Xor(b))
	require.Equal(t, -1, a.Compare(b))
	require.Equal(t, strings.Repeat("0", 31)+"1", b.BitString())
}

func TestBitString(t *testing.T) {
	key1 := NewKey160(append(zeroBytes(19), 0x01))
	bs := BitString(key1)
	require.Len(t, bs, 160)
	require.Equal(t, strings.Repeat("0", 159)+"1", bs)
}
