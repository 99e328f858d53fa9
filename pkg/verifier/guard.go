package verifier

import (
	"fmt"

	"github.com/filecoin-project/go-posv/pkg/constants"
)

// Guard checks the shape of a request. It never reads proof contents.
type Guard struct {
	MinK uint8
	MaxK uint8
}

// DefaultGuard accepts every k the construction supports.
func DefaultGuard() Guard {
	return Guard{MinK: constants.DefaultMinK, MaxK: constants.DefaultMaxK}
}

// Check returns a *ShapeError for the first malformed field of req, testing
// seed, challenge, k and proof length in that order.
func (g Guard) Check(req Request) error {
	if len(req.Seed) != constants.SeedLen {
		return &ShapeError{Field: "seed", Reason: fmt.Sprintf("got %d bytes", len(req.Seed)), Err: ErrSeedLength}
	}
	if len(req.Challenge) != constants.ChallengeLen {
		return &ShapeError{Field: "challenge", Reason: fmt.Sprintf("got %d bytes", len(req.Challenge)), Err: ErrChallengeLength}
	}
	if req.K < g.MinK || req.K > g.MaxK {
		return &ShapeError{Field: "k", Reason: fmt.Sprintf("%d not in [%d, %d]", req.K, g.MinK, g.MaxK), Err: ErrDifficultyRange}
	}
	if len(req.Proof) > constants.MaxProofLen {
		return &ShapeError{Field: "proof", Reason: fmt.Sprintf("got %d bytes, limit %d", len(req.Proof), constants.MaxProofLen), Err: ErrProofTooLong}
	}
	return nil
}
