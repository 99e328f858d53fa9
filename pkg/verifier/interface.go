package verifier

import (
	"github.com/filecoin-project/go-posv/pkg/pos"
)

// ProofVerifier checks a single proof. Implementations return a zero quality
// whenever they return false.
type ProofVerifier interface {
	ValidateProof(seed *Seed, k uint8, challenge *Challenge, proof []byte) (Quality, bool)
}

// GoVerifier is the pure Go backend. It is safe for concurrent use.
type GoVerifier struct{}

var _ ProofVerifier = GoVerifier{}

// ValidateProof implements ProofVerifier.
func (GoVerifier) ValidateProof(seed *Seed, k uint8, challenge *Challenge, proof []byte) (Quality, bool) {
	q, ok := pos.ValidateProof((*[32]byte)(seed), k, (*[32]byte)(challenge), proof)
	return Quality(q), ok
}
