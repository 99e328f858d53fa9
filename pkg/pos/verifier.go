package pos

import (
	logging "github.com/ipfs/go-log/v2"

	"github.com/filecoin-project/go-posv/pkg/constants"
)

var log = logging.Logger("pos")

// ProofXs is the number of x values in a proof.
const ProofXs = 64

// MaxK is the largest k the f functions can be evaluated for.
const MaxK = constants.DefaultMaxK

// Verifier checks proofs of space in pure Go. The zero value is ready to use
// and safe for concurrent use; every call works on its own state.
type Verifier struct{}

// ValidateProof checks proof against seed and challenge for difficulty k. It
// returns the quality string and true if the proof is valid, or a zero
// quality and false otherwise.
func (Verifier) ValidateProof(seed *[32]byte, k uint8, challenge *[32]byte, proof []byte) ([32]byte, bool) {
	return ValidateProof(seed, k, challenge, proof)
}

// ValidateProof is the function form of Verifier.ValidateProof.
func ValidateProof(seed *[32]byte, k uint8, challenge *[32]byte, proof []byte) ([32]byte, bool) {
	if k == 0 || k > MaxK {
		return [32]byte{}, false
	}
	if len(proof) != int(k)*constants.ProofBytesPerK {
		log.Debugw("proof length does not match k", "k", k, "proofLen", len(proof))
		return [32]byte{}, false
	}

	xs := proofXs(k, proof)

	f1 := newF1Calculator(k, seed)
	ys := make([]uint64, ProofXs)
	metadata := make([]bitString, ProofXs)
	for i, x := range xs {
		ys[i] = f1.calculate(x)
		metadata[i] = newBits(x, uint(k))
	}

	// Each table halves the number of entries; adjacent entries must match.
	for table := uint8(2); table <= 7; table++ {
		fx := newFxCalculator(k, table)
		n := len(ys) / 2
		nextYs := make([]uint64, 0, n)
		nextMetadata := make([]bitString, 0, n)
		for i := 0; i < len(ys); i += 2 {
			if matches(ys[i], ys[i+1]) != 1 {
				return [32]byte{}, false
			}
			y, c := fx.calculate(ys[i], metadata[i], metadata[i+1])
			nextYs = append(nextYs, y)
			nextMetadata = append(nextMetadata, c)
		}
		ys, metadata = nextYs, nextMetadata
	}

	// The first k bits of the final y must equal the first k bits of the challenge.
	if ys[0]>>ExtraBits != sliceUint64(challenge[:], 0, uint(k)) {
		return [32]byte{}, false
	}

	return qualityString(k, xs, challenge), true
}

// proofXs splits proof into its 64 k-bit x values.
func proofXs(k uint8, proof []byte) []uint64 {
	xs := make([]uint64, ProofXs)
	for i := range xs {
		xs[i] = sliceUint64(proof, uint(i)*uint(k), uint(k))
	}
	return xs
}
