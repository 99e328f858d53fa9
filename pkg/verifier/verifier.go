package verifier

import (
	"context"
	"runtime"

	logging "github.com/ipfs/go-log/v2"
	"go.opencensus.io/tag"
	"go.opencensus.io/trace"
	"golang.org/x/sync/errgroup"
	"golang.org/x/xerrors"

	"github.com/filecoin-project/go-posv/pkg/config"
)

var log = logging.Logger("verifier")

// Verifier is the checked entry point for proof verification. Every request
// passes the Guard before the backend is called, and every failure is
// reported as a zero quality and false. It is safe for concurrent use when
// its backend is.
type Verifier struct {
	guard   Guard
	backend ProofVerifier
}

// NewVerifier returns a Verifier that checks requests with guard and
// verifies them with backend.
func NewVerifier(guard Guard, backend ProofVerifier) *Verifier {
	return &Verifier{guard: guard, backend: backend}
}

// New builds a Verifier from cfg.
func New(cfg *config.Config) (*Verifier, error) {
	if err := cfg.Validate(); err != nil {
		return nil, xerrors.Errorf("invalid config: %w", err)
	}

	backend, err := NewBackend(cfg.Verifier.Backend, cfg.Verifier.SerializeNative)
	if err != nil {
		return nil, err
	}
	if cfg.Cache != nil && cfg.Cache.Size > 0 {
		backend, err = Cached(backend, cfg.Cache.Size)
		if err != nil {
			return nil, err
		}
	}

	guard := Guard{MinK: cfg.Verifier.MinK, MaxK: cfg.Verifier.MaxK}
	log.Debugw("verifier configured", "backend", cfg.Verifier.Backend, "minK", guard.MinK, "maxK", guard.MaxK)
	return NewVerifier(guard, backend), nil
}

// NewBackend returns the named backend, "go" or "native".
func NewBackend(name string, serializeNative bool) (ProofVerifier, error) {
	switch name {
	case config.BackendGo:
		return GoVerifier{}, nil
	case config.BackendNative:
		nv, err := NewNativeVerifier()
		if err != nil {
			return nil, err
		}
		if serializeNative {
			return Serialize(nv), nil
		}
		return nv, nil
	default:
		return nil, xerrors.Errorf("unknown verifier backend %q", name)
	}
}

// Guard returns the checks applied to every request.
func (v *Verifier) Guard() Guard {
	return v.guard
}

// Verify checks req and returns its quality. On any failure it returns a
// zero quality and false.
func (v *Verifier) Verify(ctx context.Context, req Request) (Quality, bool) {
	ctx, span := trace.StartSpan(ctx, "Verify")
	defer span.End()
	span.AddAttributes(trace.Int64Attribute("k", int64(req.K)), trace.Int64Attribute("proofLen", int64(len(req.Proof))))

	q, err := v.verify(ctx, req)
	if err != nil {
		span.SetStatus(trace.Status{Code: trace.StatusCodeInvalidArgument, Message: err.Error()})
		return Quality{}, false
	}
	return q, true
}

// VerifyProof is Verify for callers that already hold fixed size values.
func (v *Verifier) VerifyProof(ctx context.Context, seed Seed, k uint8, challenge Challenge, proof []byte) (Quality, bool) {
	return v.Verify(ctx, Request{Seed: seed[:], K: k, Challenge: challenge[:], Proof: proof})
}

// Explain runs the same checks as Verify and returns why req failed, or nil.
// The error wraps one of the guard sentinels, ErrProofInvalid or
// ErrBackendPanic.
func (v *Verifier) Explain(ctx context.Context, req Request) error {
	_, err := v.verify(ctx, req)
	return err
}

// VerifyContext is Verify bounded by ctx. When ctx ends first it returns
// ctx.Err(); the call itself still runs to completion in the background so
// that any native buffer is released.
func (v *Verifier) VerifyContext(ctx context.Context, req Request) (Quality, bool, error) {
	if err := ctx.Err(); err != nil {
		return Quality{}, false, err
	}

	done := make(chan Result, 1)
	go func() {
		q, ok := v.Verify(ctx, req)
		done <- Result{Quality: q, OK: ok}
	}()

	select {
	case r := <-done:
		return r.Quality, r.OK, nil
	case <-ctx.Done():
		return Quality{}, false, ctx.Err()
	}
}

// VerifyBatch verifies reqs with up to workers concurrent calls and returns
// the results in request order. A workers value below 1 means GOMAXPROCS.
// It only fails when ctx ends before all requests were dispatched.
func (v *Verifier) VerifyBatch(ctx context.Context, reqs []Request, workers int) ([]Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(reqs) {
		workers = len(reqs)
	}

	results := make([]Result, len(reqs))
	next := make(chan int)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(next)
		for i := range reqs {
			select {
			case next <- i:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for i := range next {
				q, ok := v.Verify(gctx, reqs[i])
				results[i] = Result{Quality: q, OK: ok}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (v *Verifier) verify(ctx context.Context, req Request) (Quality, error) {
	sw := verifyDuration.Start(ctx)
	defer sw.Stop(ctx)

	if err := v.guard.Check(req); err != nil {
		field := ""
		var se *ShapeError
		if xerrors.As(err, &se) {
			field = se.Field
		}
		log.Debugw("request rejected", "field", field, "k", req.K, "proofLen", len(req.Proof), "error", err)
		tctx, terr := tag.New(ctx, tag.Upsert(fieldKey, field))
		if terr != nil {
			tctx = ctx
		}
		rejectedShapeCount.Inc(tctx, 1)
		return Quality{}, err
	}

	var (
		seed      Seed
		challenge Challenge
	)
	copy(seed[:], req.Seed)
	copy(challenge[:], req.Challenge)

	q, ok, err := v.invoke(&seed, req.K, &challenge, req.Proof)
	if err != nil {
		panicCount.Inc(ctx, 1)
		return Quality{}, err
	}
	if !ok {
		rejectedProofCount.Inc(ctx, 1)
		return Quality{}, xerrors.Errorf("k=%d, %d byte proof: %w", req.K, len(req.Proof), ErrProofInvalid)
	}
	okCount.Inc(ctx, 1)
	return q, nil
}

// invoke calls the backend once, turning a panic into ErrBackendPanic.
func (v *Verifier) invoke(seed *Seed, k uint8, challenge *Challenge, proof []byte) (q Quality, ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorw("verifier backend panicked", "k", k, "proofLen", len(proof), "panic", r)
			q, ok, err = Quality{}, false, xerrors.Errorf("%v: %w", r, ErrBackendPanic)
		}
	}()

	q, ok = v.backend.ValidateProof(seed, k, challenge, proof)
	if !ok {
		q = Quality{}
	}
	return q, ok, nil
}
