//go:build cgo && chiapos
// +build cgo,chiapos

package verifier

/*
// The chiapos C shim is built separately into extern/chiapos/build. It
// must catch every C++ exception itself and report them as a nil result.
//
// -L${SRCDIR}/../../extern/chiapos/build       <- location of libchiapos_c
// -Wl,-rpath,${SRCDIR}/../../extern/chiapos/build <- runtime search path for the shared build
// -lchiapos_c -lstdc++                          <- the shim and the C++ runtime it needs
//
#cgo LDFLAGS: -L${SRCDIR}/../../extern/chiapos/build -Wl,-rpath,${SRCDIR}/../../extern/chiapos/build -lchiapos_c -lstdc++
#include <stddef.h>
#include <stdint.h>

typedef struct {
	uint8_t *data;
	size_t length;
} ByteArray;

ByteArray validate_proof(const uint8_t *seed, uint8_t k, const uint8_t *challenge, const uint8_t *proof, uint16_t proof_len);
void delete_byte_array(ByteArray array);
*/
import "C"

import (
	"unsafe"
)

// NativeAvailable reports whether the chiapos shim is linked in.
const NativeAvailable = true

// NativeVerifier checks proofs with the chiapos C++ verifier. The library is
// not known to be thread safe; wrap it with Serialize for concurrent use.
type NativeVerifier struct {
	bufferVerifier
}

var _ ProofVerifier = (*NativeVerifier)(nil)

// NewNativeVerifier returns a verifier backed by the chiapos shim.
func NewNativeVerifier() (*NativeVerifier, error) {
	return &NativeVerifier{bufferVerifier{lib: chiaposLib{}}}, nil
}

type chiaposLib struct{}

func (chiaposLib) validateProof(seed *Seed, k uint8, challenge *Challenge, proof []byte) byteArray {
	// the guard has already bounded len(proof) to the uint16 range
	var proofPtr *C.uint8_t
	if len(proof) > 0 {
		proofPtr = (*C.uint8_t)(unsafe.Pointer(&proof[0]))
	}

	res := C.validate_proof(
		(*C.uint8_t)(unsafe.Pointer(&seed[0])),
		C.uint8_t(k),
		(*C.uint8_t)(unsafe.Pointer(&challenge[0])),
		proofPtr,
		C.uint16_t(len(proof)),
	)
	return byteArray{data: unsafe.Pointer(res.data), length: uintptr(res.length)}
}

func (chiaposLib) release(ba byteArray) {
	C.delete_byte_array(C.ByteArray{data: (*C.uint8_t)(ba.data), length: C.size_t(ba.length)})
}
