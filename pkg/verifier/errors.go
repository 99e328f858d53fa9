package verifier

import (
	"fmt"

	"golang.org/x/xerrors"
)

var (
	// ErrSeedLength means the seed is not exactly 32 bytes.
	ErrSeedLength = xerrors.New("seed must be 32 bytes")
	// ErrChallengeLength means the challenge is not exactly 32 bytes.
	ErrChallengeLength = xerrors.New("challenge must be 32 bytes")
	// ErrDifficultyRange means k is outside the configured range.
	ErrDifficultyRange = xerrors.New("k is outside the accepted range")
	// ErrProofTooLong means the proof does not fit the 16 bit length field.
	ErrProofTooLong = xerrors.New("proof is too long")

	// ErrProofInvalid means the backend rejected a well formed request.
	ErrProofInvalid = xerrors.New("proof is invalid")
	// ErrBackendPanic means the backend panicked while checking a proof.
	ErrBackendPanic = xerrors.New("verifier backend panicked")
	// ErrNativeUnavailable means the binary was built without the chiapos tag.
	ErrNativeUnavailable = xerrors.New("native verifier not built in; rebuild with -tags chiapos")
)

// ShapeError describes a request rejected before any proof work was done.
type ShapeError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: %s (%s)", e.Field, e.Err, e.Reason)
}

func (e *ShapeError) Unwrap() error {
	return e.Err
}
