package verifier

import (
	"sync"
)

// FakeRequest is the input last seen by a FakeVerifier.
type FakeRequest struct {
	Seed      Seed
	K         uint8
	Challenge Challenge
	Proof     []byte
}

// FakeVerifier is a simple mock ProofVerifier for testing. It returns
// Quality and Valid for every call, or panics with Panic when it is set.
type FakeVerifier struct {
	Quality Quality
	Valid   bool
	Panic   interface{}

	mu    sync.Mutex
	calls int
	// LastReceivedRequest is captured by code that calls ValidateProof
	LastReceivedRequest *FakeRequest
}

var _ ProofVerifier = (*FakeVerifier)(nil)

// ValidateProof fakes out proof verification, skipping the real checker.
func (f *FakeVerifier) ValidateProof(seed *Seed, k uint8, challenge *Challenge, proof []byte) (Quality, bool) {
	f.mu.Lock()
	f.calls++
	f.LastReceivedRequest = &FakeRequest{
		Seed:      *seed,
		K:         k,
		Challenge: *challenge,
		Proof:     append([]byte(nil), proof...),
	}
	f.mu.Unlock()

	if f.Panic != nil {
		panic(f.Panic)
	}
	return f.Quality, f.Valid
}

// Calls returns how many times ValidateProof was called.
func (f *FakeVerifier) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}
