package key

import (
	"bytes"
	"encoding/hex"
	"math/bits"

	"github.com/plprobelab/go-kadtable/kad"
)

// Key160 is a 160-bit Kademlia key, the width used by the original Kademlia
// paper and SHA-1 based DHTs.
type Key160 struct {
	b [20]byte
}

var _ kad.Key[Key160] = Key160{}

// NewKey160 returns a 160-bit Kademlia key whose bits are set from the
// supplied bytes. It panics if data is not exactly 20 bytes long.
func NewKey160(data []byte) Key160 {
	var k Key160
	if len(data) != len(k.b) {
		panic(ErrInvalidKey(len(k.b)))
	}
	copy(k.b[:], data)
	return k
}

// ZeroKey160 returns a 160-bit Kademlia key with all bits zeroed.
func ZeroKey160() Key160 {
	return Key160{}
}

func (k Key160) BitLen() int {
	return 160
}

func (k Key160) Bit(i int) uint {
	if i < 0 || i > 159 {
		panic(bitPanicMsg)
	}
	return uint((k.b[i/8] >> (7 - i%8)) & 0x1)
}

func (k Key160) Xor(o Key160) Key160 {
	var x Key160
	for i := range k.b {
		x.b[i] = k.b[i] ^ o.b[i]
	}
	return x
}

func (k Key160) CommonPrefixLength(o Key160) int {
	return commonPrefixLength(k.b[:], o.b[:])
}

func (k Key160) Compare(o Key160) int {
	return bytes.Compare(k.b[:], o.b[:])
}

// HexString returns the hexadecimal representation of the key.
func (k Key160) HexString() string {
	return hex.EncodeToString(k.b[:])
}

func (k Key160) String() string {
	return k.HexString()
}

// Key256 is a 256-bit Kademlia key, the width produced by SHA-256 based
// identifier derivation such as libp2p peer IDs.
type Key256 struct {
	b [32]byte
}

var _ kad.Key[Key256] = Key256{}

// NewKey256 returns a 256-bit Kademlia key whose bits are set from the
// supplied bytes. It panics if data is not exactly 32 bytes long.
func NewKey256(data []byte) Key256 {
	var k Key256
	if len(data) != len(k.b) {
		panic(ErrInvalidKey(len(k.b)))
	}
	copy(k.b[:], data)
	return k
}

// ZeroKey256 returns a 256-bit Kademlia key with all bits zeroed.
func ZeroKey256() Key256 {
	return Key256{}
}

func (k Key256) BitLen() int {
	return 256
}

func (k Key256) Bit(i int) uint {
	if i < 0 || i > 255 {
		panic(bitPanicMsg)
	}
	return uint((k.b[i/8] >> (7 - i%8)) & 0x1)
}

func (k Key256) Xor(o Key256) Key256 {
	var x Key256
	for i := range k.b {
		x.b[i] = k.b[i] ^ o.b[i]
	}
	return x
}

func (k Key256) CommonPrefixLength(o Key256) int {
	return commonPrefixLength(k.b[:], o.b[:])
}

func (k Key256) Compare(o Key256) int {
	return bytes.Compare(k.b[:], o.b[:])
}

// HexString returns the hexadecimal representation of the key.
func (k Key256) HexString() string {
	return hex.EncodeToString(k.b[:])
}

func (k Key256) String() string {
	return k.HexString()
}

// Key32 is a 32-bit Kademlia key, mainly useful for testing.
type Key32 uint32

var _ kad.Key[Key32] = Key32(0)

func (k Key32) BitLen() int {
	return 32
}

func (k Key32) Bit(i int) uint {
	if i < 0 || i > 31 {
		panic(bitPanicMsg)
	}
	return uint((k >> (31 - i)) & 0x1)
}

func (k Key32) Xor(o Key32) Key32 {
	return k ^ o
}

func (k Key32) CommonPrefixLength(o Key32) int {
	return bits.LeadingZeros32(uint32(k ^ o))
}

func (k Key32) Compare(o Key32) int {
	if k < o {
		return -1
	} else if k > o {
		return 1
	}
	return 0
}

// BitString returns the binary representation of the key.
func (k Key32) BitString() string {
	return bitString32(uint32(k))
}

func (k Key32) String() string {
	return k.BitString()
}

const bitPanicMsg = "bit index out of range"

func commonPrefixLength(a, b []byte) int {
	for i := range a {
		x := a[i] ^ b[i]
		if x != 0 {
			return i*8 + bits.LeadingZeros8(x)
		}
	}
	return len(a) * 8
}

func bitString32(v uint32) string {
	b := make([]byte, 32)
	for i := 0; i < 32; i++ {
		if v&(1<<(31-i)) != 0 {
			b[i] = '1'
		} else {
			b[i] = '0'
		}
	}
	return string(b)
}
