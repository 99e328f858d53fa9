package verifier

import (
	"unsafe"

	"github.com/filecoin-project/go-posv/pkg/constants"
)

// byteArray is a result buffer owned by the library that allocated it. A nil
// data pointer means the call failed and nothing was allocated.
type byteArray struct {
	data   unsafe.Pointer
	length uintptr
}

// allocatingLibrary is a verifier that returns its result in a buffer the
// caller must hand back through release exactly once.
type allocatingLibrary interface {
	validateProof(seed *Seed, k uint8, challenge *Challenge, proof []byte) byteArray
	release(byteArray)
}

// takeQuality copies the quality out of ba and releases ba. Buffers with a
// nil data pointer are never released; every other buffer is released once
// on every path, including when an unexpected length makes the call fail.
func takeQuality(lib allocatingLibrary, ba byteArray) (Quality, bool) {
	if ba.data == nil {
		return Quality{}, false
	}
	defer lib.release(ba)

	if ba.length != constants.QualityLen {
		log.Warnw("native verifier returned a buffer of unexpected size", "length", ba.length)
		return Quality{}, false
	}

	var q Quality
	copy(q[:], unsafe.Slice((*byte)(ba.data), ba.length))
	return q, true
}

// bufferVerifier presents an allocatingLibrary as a ProofVerifier.
type bufferVerifier struct {
	lib allocatingLibrary
}

// ValidateProof implements ProofVerifier.
func (b bufferVerifier) ValidateProof(seed *Seed, k uint8, challenge *Challenge, proof []byte) (Quality, bool) {
	return takeQuality(b.lib, b.lib.validateProof(seed, k, challenge, proof))
}
