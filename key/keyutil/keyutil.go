package keyutil

import (
	"crypto/rand"
	"encoding/binary"
	"strconv"

	"github.com/plprobelab/go-kadtable/key"
)

// Random160 returns a 160-bit key populated with random data.
func Random160() key.Key160 {
	buf := make([]byte, 20)
	if _, err := rand.Read(buf); err != nil {
		panic("Random160: failed to read enough entropy for key")
	}
	return key.NewKey160(buf)
}

// RandomWithPrefix160 returns a 160-bit key having a prefix equal to the bit
// pattern held in s. Useful for constructing keys that land in a known
// bucket of a routing table.
func RandomWithPrefix160(s string) key.Key160 {
	if s == "" {
		return Random160()
	}

	bits := len(s)
	if bits > 64 {
		panic("RandomWithPrefix160: prefix too long")
	}
	n, err := strconv.ParseInt(s, 2, 64)
	if err != nil {
		panic("RandomWithPrefix160: " + err.Error())
	}
	prefix := uint64(n) << (64 - bits)

	buf := make([]byte, 20)
	if _, err := rand.Read(buf); err != nil {
		panic("RandomWithPrefix160: failed to read enough entropy for key")
	}

	lead := binary.BigEndian.Uint64(buf)
	lead <<= bits
	lead >>= bits
	lead |= prefix
	binary.BigEndian.PutUint64(buf, lead)
	return key.NewKey160(buf)
}
