package pos

// bitString is a big-endian sequence of bits. Bit 0 is the most significant
// bit of buf[0]. Trailing bits of the last byte are always zero.
type bitString struct {
	buf []byte
	n   uint
}

// newBits returns the low n bits of v as a bitString, most significant first.
func newBits(v uint64, n uint) bitString {
	var b bitString
	b.appendUint(v, n)
	return b
}

// Len returns the number of bits held.
func (b bitString) Len() uint {
	return b.n
}

func (b *bitString) appendBit(bit byte) {
	if b.n%8 == 0 {
		b.buf = append(b.buf, 0)
	}
	if bit != 0 {
		b.buf[b.n/8] |= 0x80 >> (b.n % 8)
	}
	b.n++
}

// appendUint appends the low n bits of v, most significant first.
func (b *bitString) appendUint(v uint64, n uint) {
	for i := n; i > 0; i-- {
		b.appendBit(byte(v >> (i - 1) & 1))
	}
}

// appendBits appends every bit of o.
func (b *bitString) appendBits(o bitString) {
	for i := uint(0); i < o.n; i++ {
		b.appendBit(o.bit(i))
	}
}

func (b bitString) bit(i uint) byte {
	return b.buf[i/8] >> (7 - i%8) & 1
}

// concat returns a new bitString holding b followed by o.
func (b bitString) concat(o bitString) bitString {
	out := bitString{buf: make([]byte, 0, (b.n+o.n+7)/8)}
	out.appendBits(b)
	out.appendBits(o)
	return out
}

// slice returns bits [start, end) of b.
func (b bitString) slice(start, end uint) bitString {
	var out bitString
	for i := start; i < end; i++ {
		out.appendBit(b.bit(i))
	}
	return out
}

// Uint64 returns the value of b. Only meaningful when b holds at most 64 bits.
func (b bitString) Uint64() uint64 {
	var v uint64
	for i := uint(0); i < b.n; i++ {
		v = v<<1 | uint64(b.bit(i))
	}
	return v
}

// Bytes returns the bits packed into ceil(n/8) bytes, zero padded on the right.
func (b bitString) Bytes() []byte {
	out := make([]byte, len(b.buf))
	copy(out, b.buf)
	return out
}

// sliceUint64 reads n <= 64 bits of buf starting at bit offset start.
func sliceUint64(buf []byte, start, n uint) uint64 {
	var v uint64
	for i := start; i < start+n; i++ {
		v = v<<1 | uint64(buf[i/8]>>(7-i%8)&1)
	}
	return v
}
