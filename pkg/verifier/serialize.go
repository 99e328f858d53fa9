package verifier

import "sync"

// SerializedVerifier allows at most one call into the wrapped verifier at a
// time.
type SerializedVerifier struct {
	mu    sync.Mutex
	inner ProofVerifier
}

var _ ProofVerifier = (*SerializedVerifier)(nil)

// Serialize wraps pv so that concurrent callers take turns.
func Serialize(pv ProofVerifier) *SerializedVerifier {
	return &SerializedVerifier{inner: pv}
}

// ValidateProof implements ProofVerifier.
func (s *SerializedVerifier) ValidateProof(seed *Seed, k uint8, challenge *Challenge, proof []byte) (Quality, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.ValidateProof(seed, k, challenge, proof)
}
