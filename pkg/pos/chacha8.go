package pos

import (
	"encoding/binary"
	"math/bits"
)

// chacha8BlockSize is the size of one keystream block in bytes.
const chacha8BlockSize = 64

// chacha8 generates the DJB (64-bit counter, 64-bit nonce) ChaCha
// keystream with 8 rounds and an all-zero nonce, which is what F1 is defined
// over.
type chacha8 struct {
	input [16]uint32
}

func newChaCha8(key *[32]byte) *chacha8 {
	c := &chacha8{}
	// "expand 32-byte k"
	c.input[0] = 0x61707865
	c.input[1] = 0x3320646e
	c.input[2] = 0x79622d32
	c.input[3] = 0x6b206574
	for i := 0; i < 8; i++ {
		c.input[4+i] = binary.LittleEndian.Uint32(key[i*4:])
	}
	return c
}

func quarterRound(a, b, c, d uint32) (uint32, uint32, uint32, uint32) {
	a += b
	d = bits.RotateLeft32(d^a, 16)
	c += d
	b = bits.RotateLeft32(b^c, 12)
	a += b
	d = bits.RotateLeft32(d^a, 8)
	c += d
	b = bits.RotateLeft32(b^c, 7)
	return a, b, c, d
}

// keystream writes the keystream block at position pos into out.
func (c *chacha8) keystream(pos uint64, out *[chacha8BlockSize]byte) {
	j := c.input
	j[12] = uint32(pos)
	j[13] = uint32(pos >> 32)

	x := j
	for i := 0; i < 4; i++ {
		x[0], x[4], x[8], x[12] = quarterRound(x[0], x[4], x[8], x[12])
		x[1], x[5], x[9], x[13] = quarterRound(x[1], x[5], x[9], x[13])
		x[2], x[6], x[10], x[14] = quarterRound(x[2], x[6], x[10], x[14])
		x[3], x[7], x[11], x[15] = quarterRound(x[3], x[7], x[11], x[15])

		x[0], x[5], x[10], x[15] = quarterRound(x[0], x[5], x[10], x[15])
		x[1], x[6], x[11], x[12] = quarterRound(x[1], x[6], x[11], x[12])
		x[2], x[7], x[8], x[13] = quarterRound(x[2], x[7], x[8], x[13])
		x[3], x[4], x[9], x[14] = quarterRound(x[3], x[4], x[9], x[14])
	}

	for i := range x {
		binary.LittleEndian.PutUint32(out[i*4:], x[i]+j[i])
	}
}
