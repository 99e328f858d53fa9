//go:build !cgo || !chiapos
// +build !cgo !chiapos

package verifier

// NativeAvailable reports whether the chiapos shim is linked in.
const NativeAvailable = false

// NativeVerifier is a placeholder for builds without the chiapos shim. It
// rejects every proof.
type NativeVerifier struct{}

var _ ProofVerifier = (*NativeVerifier)(nil)

// NewNativeVerifier always returns ErrNativeUnavailable in this build.
func NewNativeVerifier() (*NativeVerifier, error) {
	return nil, ErrNativeUnavailable
}

// ValidateProof implements ProofVerifier.
func (*NativeVerifier) ValidateProof(*Seed, uint8, *Challenge, []byte) (Quality, bool) {
	return Quality{}, false
}
