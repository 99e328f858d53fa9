package verifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/xerrors"

	tf "github.com/filecoin-project/go-posv/pkg/testhelpers/testflags"
)

func wellFormed() Request {
	return Request{
		Seed:      make([]byte, 32),
		K:         32,
		Challenge: make([]byte, 32),
		Proof:     make([]byte, 256),
	}
}

func TestGuardAccepts(t *testing.T) {
	tf.UnitTest(t)

	g := DefaultGuard()
	assert.NoError(t, g.Check(wellFormed()))

	for _, k := range []uint8{1, 50} {
		req := wellFormed()
		req.K = k
		assert.NoError(t, g.Check(req), "k=%d", k)
	}

	// length against k is left to the backend
	req := wellFormed()
	req.Proof = nil
	assert.NoError(t, g.Check(req))

	req.Proof = make([]byte, 65535)
	assert.NoError(t, g.Check(req))
}

func TestGuardRejects(t *testing.T) {
	tf.UnitTest(t)

	g := DefaultGuard()
	cases := []struct {
		name   string
		mutate func(*Request)
		field  string
		err    error
	}{
		{"short seed", func(r *Request) { r.Seed = r.Seed[:31] }, "seed", ErrSeedLength},
		{"long seed", func(r *Request) { r.Seed = make([]byte, 33) }, "seed", ErrSeedLength},
		{"nil seed", func(r *Request) { r.Seed = nil }, "seed", ErrSeedLength},
		{"short challenge", func(r *Request) { r.Challenge = r.Challenge[:16] }, "challenge", ErrChallengeLength},
		{"long challenge", func(r *Request) { r.Challenge = make([]byte, 64) }, "challenge", ErrChallengeLength},
		{"k zero", func(r *Request) { r.K = 0 }, "k", ErrDifficultyRange},
		{"k 51", func(r *Request) { r.K = 51 }, "k", ErrDifficultyRange},
		{"k 100", func(r *Request) { r.K = 100 }, "k", ErrDifficultyRange},
		{"k 255", func(r *Request) { r.K = 255 }, "k", ErrDifficultyRange},
		{"proof 65536", func(r *Request) { r.Proof = make([]byte, 65536) }, "proof", ErrProofTooLong},
	}

	for _, tc := range cases {
		req := wellFormed()
		tc.mutate(&req)

		err := g.Check(req)
		require.Error(t, err, tc.name)
		assert.True(t, xerrors.Is(err, tc.err), tc.name)

		var se *ShapeError
		require.True(t, xerrors.As(err, &se), tc.name)
		assert.Equal(t, tc.field, se.Field, tc.name)
		assert.Contains(t, err.Error(), tc.field, tc.name)
	}
}

func TestGuardOrder(t *testing.T) {
	tf.UnitTest(t)

	req := Request{Seed: nil, K: 0, Challenge: nil, Proof: make([]byte, 70000)}
	assert.True(t, xerrors.Is(DefaultGuard().Check(req), ErrSeedLength))

	req.Seed = make([]byte, 32)
	assert.True(t, xerrors.Is(DefaultGuard().Check(req), ErrChallengeLength))

	req.Challenge = make([]byte, 32)
	assert.True(t, xerrors.Is(DefaultGuard().Check(req), ErrDifficultyRange))

	req.K = 10
	assert.True(t, xerrors.Is(DefaultGuard().Check(req), ErrProofTooLong))
}

func TestGuardCustomRange(t *testing.T) {
	tf.UnitTest(t)

	g := Guard{MinK: 18, MaxK: 32}
	req := wellFormed()

	for k, ok := range map[uint8]bool{17: false, 18: true, 25: true, 32: true, 33: false} {
		req.K = k
		if ok {
			assert.NoError(t, g.Check(req), "k=%d", k)
		} else {
			assert.True(t, xerrors.Is(g.Check(req), ErrDifficultyRange), "k=%d", k)
		}
	}
}
