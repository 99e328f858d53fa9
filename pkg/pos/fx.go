package pos

import (
	"encoding/binary"

	"lukechampine.com/blake3"
)

// B and C groups which make up a BC group. Two entries can only match when
// they sit in adjacent BC groups.
const (
	kB  = 119
	kC  = 127
	kBC = kB * kC
)

const extraBitsPow = 1 << ExtraBits

// vectorLens is the metadata width, in multiples of k, carried into each table.
var vectorLens = [8]uint{0, 0, 1, 2, 4, 4, 3, 2}

// fxCalculator evaluates F2 through F7.
type fxCalculator struct {
	k     uint8
	table uint8
}

func newFxCalculator(k, table uint8) fxCalculator {
	return fxCalculator{k: k, table: table}
}

// calculate returns the y value for the next table along with the metadata
// that must be carried into the table after it. left and right are the
// metadata of the two matched entries; y is the left entry's y.
func (f fxCalculator) calculate(y uint64, left, right bitString) (uint64, bitString) {
	k := uint(f.k)
	ySize := k + ExtraBits

	input := newBits(y, ySize)
	var c bitString
	if f.table < 4 {
		c = left.concat(right)
		input.appendBits(c)
	} else {
		input.appendBits(left)
		input.appendBits(right)
	}

	hash := blake3.Sum256(input.Bytes())
	next := binary.BigEndian.Uint64(hash[:8]) >> (64 - ySize)

	switch {
	case f.table < 4:
		// metadata is the concatenation computed above
	case f.table < 7:
		digest := bitString{buf: hash[:], n: uint(len(hash)) * 8}
		c = digest.slice(ySize, ySize+k*vectorLens[f.table+1])
	default:
		c = bitString{}
	}
	return next, c
}

// matches reports how many ways yl and yr match. A valid proof needs exactly
// one. yl must fall in the BC group right before yr's.
func matches(yl, yr uint64) int {
	bl, br := yl/kBC, yr/kBC
	if bl+1 != br {
		return 0
	}
	parity := bl % 2
	l := yl % kBC
	r := yr % kBC
	lb := l / kC

	count := 0
	for m := uint64(0); m < extraBitsPow; m++ {
		d := 2*m + parity
		target := ((lb+m)%kB)*kC + (d*d+l)%kC
		if target == r {
			count++
		}
	}
	return count
}
