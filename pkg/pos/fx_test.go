package pos

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tf "github.com/filecoin-project/go-posv/pkg/testhelpers/testflags"
)

func TestChaCha8Keystream(t *testing.T) {
	tf.UnitTest(t)

	var block [chacha8BlockSize]byte

	var zero [32]byte
	newChaCha8(&zero).keystream(0, &block)
	assert.Equal(t, "3e00ef2f895f40d67f5bb8e81f09a5a1", hex.EncodeToString(block[:16]))

	var key [32]byte
	for i := range key {
		key[i] = byte(i)
	}
	c := newChaCha8(&key)
	c.keystream(0, &block)
	assert.Equal(t, "4015b28f6e12ab6ad9e8667b31c51233", hex.EncodeToString(block[:16]))

	// the block position spills into the high counter word
	c.keystream(1<<32+7, &block)
	assert.Equal(t, "686ecd777ff918fa3f189a821b52ab64", hex.EncodeToString(block[:16]))
}

func TestF1(t *testing.T) {
	tf.UnitTest(t)

	seed := MustDecodeHex32(SampleProof.Seed)

	f1 := newF1Calculator(21, &seed)
	assert.Equal(t, uint64(0x36ea666), f1.calculate(0x132aa1))
	assert.Equal(t, uint64(0x36ef3d9), f1.calculate(0xc8cf4))
	assert.Equal(t, uint64(0x6065d02), f1.calculate(0x112cc))
	assert.Equal(t, uint64(0x6069b16), f1.calculate(0xb09d4))

	// 24*21 bits lands 8 bits before the end of block 0
	assert.Equal(t, uint64(0x6450240), f1.calculate(24))

	var zero [32]byte
	f1 = newF1Calculator(32, &zero)
	assert.Equal(t, uint64(0x33d7ba6800), f1.calculate(0))
	assert.Equal(t, uint64(0x1252aa5840), f1.calculate(1))

	// k below ExtraBits pads x on the right
	f1 = newF1Calculator(4, &seed)
	assert.Equal(t, uint64(0xcc), f1.calculate(3))
}

func verifyFC(t *testing.T, table, k uint8, l, r, y1, y, c uint64) {
	sizes := []uint{1, 2, 4, 4, 3, 2}
	size := sizes[table-2]

	fx := newFxCalculator(k, table)
	gotY, gotC := fx.calculate(y1, newBits(l, uint(k)*size), newBits(r, uint(k)*size))
	assert.Equal(t, y, gotY, "table %d y", table)
	if c != 0 {
		require.LessOrEqual(t, gotC.Len(), uint(64))
		assert.Equal(t, c, gotC.Uint64(), "table %d metadata", table)
	}
}

func TestFx(t *testing.T) {
	tf.UnitTest(t)

	verifyFC(t, 2, 16, 0x44cb, 0x204f, 0x20a61a, 0x2af546, 0x44cb204f)
	verifyFC(t, 2, 16, 0x3c5f, 0xfda9, 0x3988ec, 0x15293b, 0x3c5ffda9)
	verifyFC(t, 3, 16, 0x35bf992d, 0x7ce42c82, 0x31e541, 0xf73b3, 0x35bf992d7ce42c82)
	verifyFC(t, 3, 16, 0x7204e52d, 0xf1fd42a2, 0x28a188, 0x3fb0b5, 0x7204e52df1fd42a2)
	verifyFC(t, 4, 16, 0x5b6e6e307d4bedc, 0x8a9a021ea648a7dd, 0x30cb4c, 0x11ad5, 0xd4bd0b144fc26138)
	verifyFC(t, 4, 16, 0xb9d179e06c0fd4f5, 0xf06d3fef701966a0, 0x1dd5b6, 0xe69a2, 0xd02115f512009d4d)
	verifyFC(t, 5, 16, 0xc2cd789a380208a9, 0x19999e3fa46d6753, 0x25f01e, 0x1f22bd, 0xabe423040a33)
	verifyFC(t, 5, 16, 0xbe3edc0a1ef2a4f0, 0x4da98f1d3099fdf5, 0x3feb18, 0x31501e, 0x7300a3a03ac5)
	verifyFC(t, 6, 16, 0xc965815a47c5, 0xf5e008d6af57, 0x1f121a, 0x1cabbe, 0xc8cc6947)
	verifyFC(t, 6, 16, 0xd420677f6cbd, 0x5894aa2ca1af, 0x2efde9, 0xc2121, 0x421bb8ec)
	verifyFC(t, 7, 16, 0x5fec898f, 0x82283d15, 0x14f410, 0x24c3c2, 0x0)
	verifyFC(t, 7, 16, 0x64ac5db9, 0x7923986, 0x590fd, 0x1c74a2, 0x0)
}

func TestFxTable7HasNoMetadata(t *testing.T) {
	tf.UnitTest(t)

	_, c := newFxCalculator(16, 7).calculate(0x14f410, newBits(0x5fec898f, 32), newBits(0x82283d15, 32))
	assert.Equal(t, uint(0), c.Len())
}

func TestMatches(t *testing.T) {
	tf.UnitTest(t)

	// the first pair of the sample proof
	assert.Equal(t, 1, matches(0x36ea666, 0x36ef3d9))

	// reversed order never matches
	assert.Equal(t, 0, matches(0x36ef3d9, 0x36ea666))

	// same BC group never matches
	assert.Equal(t, 0, matches(kBC*4+3, kBC*4+10))

	// the lookup agrees with the defining congruences
	found := 0
	for yl := uint64(0); yl < kBC; yl += 997 {
		for yr := uint64(kBC); yr < 2*kBC; yr++ {
			n := matches(yl, yr)
			require.Equal(t, checkMatch(int64(yl), int64(yr)), n > 0, "yl=%d yr=%d", yl, yr)
			found += n
		}
	}
	assert.Greater(t, found, 0)
}

// checkMatch is the naive form of the matching rule.
func checkMatch(yl, yr int64) bool {
	bl, br := yl/kBC, yr/kBC
	if bl+1 != br {
		return false
	}
	mod := func(a, m int64) int64 { return ((a % m) + m) % m }
	for m := int64(0); m < extraBitsPow; m++ {
		if mod((yr%kBC)/kC-(yl%kBC)/kC-m, kB) == 0 {
			cdiff := 2*m + bl%2
			cdiff *= cdiff
			if mod((yr%kBC)%kC-(yl%kBC)%kC-cdiff, kC) == 0 {
				return true
			}
		}
	}
	return false
}
