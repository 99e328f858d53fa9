package verifier

import (
	"context"
	"encoding/binary"

	lru "github.com/hashicorp/golang-lru"
	sha256 "github.com/minio/sha256-simd"
	"golang.org/x/xerrors"
)

// CachedVerifier memoizes the results of a ProofVerifier. Verification is a
// pure function of its inputs, so both outcomes are kept.
type CachedVerifier struct {
	inner ProofVerifier
	cache *lru.ARCCache
}

var _ ProofVerifier = (*CachedVerifier)(nil)

type cachedResult struct {
	quality Quality
	ok      bool
}

// Cached wraps pv with an adaptive replacement cache of the given size.
func Cached(pv ProofVerifier, size int) (*CachedVerifier, error) {
	c, err := lru.NewARC(size)
	if err != nil {
		return nil, xerrors.Errorf("creating result cache: %w", err)
	}
	return &CachedVerifier{inner: pv, cache: c}, nil
}

// ValidateProof implements ProofVerifier.
func (c *CachedVerifier) ValidateProof(seed *Seed, k uint8, challenge *Challenge, proof []byte) (Quality, bool) {
	key := cacheKey(seed, k, challenge, proof)
	if v, ok := c.cache.Get(key); ok {
		cacheHitCount.Inc(context.Background(), 1)
		r := v.(cachedResult)
		return r.quality, r.ok
	}

	q, ok := c.inner.ValidateProof(seed, k, challenge, proof)
	c.cache.Add(key, cachedResult{quality: q, ok: ok})
	return q, ok
}

// Len returns the number of cached results.
func (c *CachedVerifier) Len() int {
	return c.cache.Len()
}

func cacheKey(seed *Seed, k uint8, challenge *Challenge, proof []byte) [32]byte {
	var n [4]byte
	binary.BigEndian.PutUint32(n[:], uint32(len(proof)))

	h := sha256.New()
	_, _ = h.Write(seed[:])
	_, _ = h.Write([]byte{k})
	_, _ = h.Write(challenge[:])
	_, _ = h.Write(n[:])
	_, _ = h.Write(proof)

	var key [32]byte
	copy(key[:], h.Sum(nil))
	return key
}
