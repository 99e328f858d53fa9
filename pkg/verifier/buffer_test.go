package verifier

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tf "github.com/filecoin-project/go-posv/pkg/testhelpers/testflags"
)

const poison = 0xdd

// fakeLibrary hands out result buffers and tracks their release. Released
// buffers are overwritten so that reads after release are visible.
type fakeLibrary struct {
	result []byte

	mu             sync.Mutex
	live           map[unsafe.Pointer][]byte
	released       [][]byte
	allocs         int
	releases       int
	doubleReleases int
}

func newFakeLibrary(result []byte) *fakeLibrary {
	return &fakeLibrary{result: result, live: map[unsafe.Pointer][]byte{}}
}

func (l *fakeLibrary) validateProof(*Seed, uint8, *Challenge, []byte) byteArray {
	if l.result == nil {
		return byteArray{}
	}

	// one spare byte so an empty result still has an address
	buf := make([]byte, len(l.result), len(l.result)+1)
	copy(buf, l.result)
	p := unsafe.Pointer(&buf[:1][0])

	l.mu.Lock()
	defer l.mu.Unlock()
	l.live[p] = buf
	l.allocs++
	return byteArray{data: p, length: uintptr(len(buf))}
}

func (l *fakeLibrary) release(ba byteArray) {
	l.mu.Lock()
	defer l.mu.Unlock()

	buf, ok := l.live[ba.data]
	if !ok {
		l.doubleReleases++
		return
	}
	for i := range buf {
		buf[i] = poison
	}
	delete(l.live, ba.data)
	l.released = append(l.released, buf)
	l.releases++
}

func testQuality() []byte {
	q := make([]byte, 32)
	for i := range q {
		q[i] = byte(i + 1)
	}
	return q
}

func TestTakeQualityReleasesOnce(t *testing.T) {
	tf.UnitTest(t)

	lib := newFakeLibrary(testQuality())
	bv := bufferVerifier{lib: lib}

	var seed Seed
	var challenge Challenge
	q, ok := bv.ValidateProof(&seed, 21, &challenge, make([]byte, 168))
	require.True(t, ok)

	// copied before the buffer was poisoned
	assert.Equal(t, testQuality(), q[:])
	assert.Equal(t, 1, lib.allocs)
	assert.Equal(t, 1, lib.releases)
	assert.Equal(t, 0, lib.doubleReleases)
	assert.Empty(t, lib.live)
	require.Len(t, lib.released, 1)
	assert.Equal(t, bytes.Repeat([]byte{poison}, 32), lib.released[0])
}

func TestTakeQualityNilIsNotReleased(t *testing.T) {
	tf.UnitTest(t)

	lib := newFakeLibrary(nil)
	q, ok := takeQuality(lib, lib.validateProof(nil, 0, nil, nil))
	assert.False(t, ok)
	assert.True(t, q.IsZero())
	assert.Equal(t, 0, lib.allocs)
	assert.Equal(t, 0, lib.releases)
	assert.Equal(t, 0, lib.doubleReleases)

	// a nil pointer with a stray length is still nothing to release
	q, ok = takeQuality(lib, byteArray{length: 32})
	assert.False(t, ok)
	assert.True(t, q.IsZero())
	assert.Equal(t, 0, lib.releases+lib.doubleReleases)
}

func TestTakeQualityWrongLengthStillReleases(t *testing.T) {
	tf.UnitTest(t)

	for _, n := range []int{0, 1, 31, 33, 64} {
		lib := newFakeLibrary(make([]byte, n))
		q, ok := takeQuality(lib, lib.validateProof(nil, 0, nil, nil))
		assert.False(t, ok, "length %d", n)
		assert.True(t, q.IsZero(), "length %d", n)
		assert.Equal(t, 1, lib.releases, "length %d", n)
		assert.Equal(t, 0, lib.doubleReleases, "length %d", n)
		assert.Empty(t, lib.live, "length %d", n)
	}
}

func TestBufferVerifierThroughGuard(t *testing.T) {
	tf.UnitTest(t)

	lib := newFakeLibrary(testQuality())
	v := NewVerifier(DefaultGuard(), bufferVerifier{lib: lib})
	ctx := context.Background()

	// rejected requests never reach the library
	_, ok := v.Verify(ctx, Request{Seed: make([]byte, 31), K: 21, Challenge: make([]byte, 32)})
	assert.False(t, ok)
	_, ok = v.Verify(ctx, Request{Seed: make([]byte, 32), K: 0, Challenge: make([]byte, 32)})
	assert.False(t, ok)
	assert.Equal(t, 0, lib.allocs)

	for i := 0; i < 10; i++ {
		q, ok := v.Verify(ctx, Request{Seed: make([]byte, 32), K: 21, Challenge: make([]byte, 32), Proof: make([]byte, 168)})
		require.True(t, ok)
		assert.Equal(t, testQuality(), q[:])
	}
	assert.Equal(t, 10, lib.allocs)
	assert.Equal(t, 10, lib.releases)
	assert.Equal(t, 0, lib.doubleReleases)
}

func TestBufferVerifierConcurrentReleases(t *testing.T) {
	tf.UnitTest(t)

	lib := newFakeLibrary(testQuality())
	v := NewVerifier(DefaultGuard(), Serialize(bufferVerifier{lib: lib}))

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				q, ok := v.VerifyProof(context.Background(), Seed{}, 21, Challenge{}, make([]byte, 168))
				assert.True(t, ok)
				assert.Equal(t, testQuality(), q[:])
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 400, lib.allocs)
	assert.Equal(t, 400, lib.releases)
	assert.Equal(t, 0, lib.doubleReleases)
	assert.Empty(t, lib.live)
}
