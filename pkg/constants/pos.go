package constants

import "math"

// SeedLen is the number of bytes in a plot seed (plot id).
const SeedLen = 32

// ChallengeLen is the number of bytes in a proof-of-space challenge.
const ChallengeLen = 32

// QualityLen is the number of bytes in a quality digest.
const QualityLen = 32

// MaxProofLen is the largest proof the native verifier can be told about; its
// length parameter is a uint16.
const MaxProofLen = math.MaxUint16

// ProofBytesPerK is the proof length, in bytes, per unit of k. A proof holds 64
// x values of k bits each.
const ProofBytesPerK = 8

// DefaultMinK is the smallest difficulty accepted unless configured otherwise.
const DefaultMinK uint8 = 1

// DefaultMaxK is the largest difficulty the construction supports: table 4
// metadata (4k bits) plus a k+6 bit y must fit in one 256-bit digest.
const DefaultMaxK uint8 = 50
