package kadtest

import "github.com/plprobelab/go-kadtable/key"

// Key160WithBit returns a 160-bit key equal to base except for the bit at
// position i (counting from the most significant bit as position 0), which
// is flipped. The returned key has a common prefix of exactly i bits with
// base, so it lands in a known routing table bucket.
func Key160WithBit(base key.Key160, i int) key.Key160 {
	buf := make([]byte, 20)
	for j := 0; j < 160; j++ {
		if base.Bit(j) == 1 {
			buf[j/8] |= 1 << (7 - j%8)
		}
	}
	buf[i/8] ^= 1 << (7 - i%8)
	return key.NewKey160(buf)
}
