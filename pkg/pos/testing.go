package pos

import "encoding/hex"

// SampleProof is a proof produced by the chiapos prover for a k=21 plot,
// together with the quality the prover reported for it.
var SampleProof = struct {
	Seed      string
	K         uint8
	Challenge string
	Proof     string
	Quality   string
}{
	Seed:      "022fb42c08c12de3a6af053880199806532e79515f94e83461612101f9412f9e",
	K:         21,
	Challenge: "4000000000000000000000000000000000000000000000000000000000000000",
	Proof: "99550b233d022598b09d4c8a7b057986f6775d80973a905f5a6251d628d186430cb4464b8c70ecc77101bd4d" +
		"50ef2c016cc78682a13c4b796835431edeb2231a282229c9e7322614d10193b1b87daaac0e21af5b5acc9f73b7" +
		"ddd1da2a46294a2073f2e2fc99d57f3278ea1fc0f527499267aaa3980f730cb2ea7aacc1fa3f460acca1254f92" +
		"791612e6e9ab9c3aed5aea172d7056b03bbfdf5861372d5c0ceb09e109485412376e",
	Quality: "2e0b6b4b16fcb7ce768b6eeab4a8656297f9bc9b7a8a1ea3d3f09e81294886c2",
}

// MustDecodeHex decodes s or panics. It is meant for fixtures.
func MustDecodeHex(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(err)
	}
	return b
}

// MustDecodeHex32 decodes a 32 byte hex fixture or panics.
func MustDecodeHex32(s string) [32]byte {
	var out [32]byte
	b := MustDecodeHex(s)
	if len(b) != len(out) {
		panic("fixture is not 32 bytes")
	}
	copy(out[:], b)
	return out
}
