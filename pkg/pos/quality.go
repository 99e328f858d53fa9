package pos

import (
	sha256 "github.com/minio/sha256-simd"
)

// qualityIndex picks which adjacent pair of plot-ordered x values is hashed
// into the quality string. It is taken from the last five bits of the challenge.
func qualityIndex(challenge *[32]byte) int {
	return int(challenge[31]&0x1f) << 1
}

// qualityString converts xs from proof ordering into plot ordering and hashes
// the two x values at the challenge's quality index together with the
// challenge.
func qualityString(k uint8, xs []uint64, challenge *[32]byte) [32]byte {
	ordered := plotOrder(xs)
	qi := qualityIndex(challenge)

	pair := newBits(ordered[qi], uint(k))
	pair.appendUint(ordered[qi+1], uint(k))

	input := make([]byte, 0, len(challenge)+len(pair.buf))
	input = append(input, challenge[:]...)
	input = append(input, pair.Bytes()...)
	return sha256.Sum256(input)
}

// plotOrder reorders proof-ordered xs bottom up: at each level adjacent
// groups are swapped so that the smaller group comes first.
func plotOrder(xs []uint64) []uint64 {
	proof := make([]uint64, len(xs))
	copy(proof, xs)

	for size := 1; size < len(proof); size *= 2 {
		next := make([]uint64, 0, len(proof))
		for j := 0; j < len(proof); j += 2 * size {
			left := proof[j : j+size]
			right := proof[j+size : j+2*size]
			if lessProofBits(left, right) {
				next = append(next, left...)
				next = append(next, right...)
			} else {
				next = append(next, right...)
				next = append(next, left...)
			}
		}
		proof = next
	}
	return proof
}

// lessProofBits compares two equally sized groups of x values, starting from
// the last value of each.
func lessProofBits(left, right []uint64) bool {
	for i := len(left) - 1; i >= 0; i-- {
		if left[i] < right[i] {
			return true
		}
		if left[i] > right[i] {
			return false
		}
	}
	return false
}
