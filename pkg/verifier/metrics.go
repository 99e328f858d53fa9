package verifier

import (
	"go.opencensus.io/tag"

	"github.com/filecoin-project/go-posv/pkg/metrics"
)

var fieldKey = tag.MustNewKey("field")

var (
	okCount            = metrics.NewInt64Counter("verify_ok", "Number of proofs accepted")
	rejectedShapeCount = metrics.NewInt64Counter("verify_rejected_shape", "Number of requests rejected by the input guard", fieldKey)
	rejectedProofCount = metrics.NewInt64Counter("verify_rejected_proof", "Number of well formed proofs the backend rejected")
	panicCount         = metrics.NewInt64Counter("verify_panic", "Number of backend panics recovered")
	cacheHitCount      = metrics.NewInt64Counter("cache_hit", "Number of results served from the result cache")

	verifyDuration = metrics.NewTimerMs("verify_duration_ms", "Duration of a single proof verification")
)
