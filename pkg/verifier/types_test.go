package verifier

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tf "github.com/filecoin-project/go-posv/pkg/testhelpers/testflags"
)

func TestParseHex32(t *testing.T) {
	tf.UnitTest(t)

	hexSeed := "022fb42c08c12de3a6af053880199806532e79515f94e83461612101f9412f9e"

	s, err := ParseSeed(hexSeed)
	require.NoError(t, err)
	assert.Equal(t, byte(0x02), s[0])
	assert.Equal(t, byte(0x9e), s[31])
	assert.Equal(t, hexSeed, s.String())

	prefixed, err := ParseSeed("0x" + hexSeed)
	require.NoError(t, err)
	assert.Equal(t, s, prefixed)

	upper, err := ParseChallenge(" 0X" + strings.ToUpper(hexSeed) + "\n")
	require.NoError(t, err)
	assert.Equal(t, [32]byte(s), [32]byte(upper))

	_, err = ParseSeed(hexSeed[:62])
	assert.Error(t, err)
	_, err = ParseChallenge(hexSeed + "00")
	assert.Error(t, err)
	_, err = ParseQuality("zz" + hexSeed[2:])
	assert.Error(t, err)
	_, err = ParseSeed(hexSeed[:63])
	assert.Error(t, err)
}

func TestQualityText(t *testing.T) {
	tf.UnitTest(t)

	var q Quality
	assert.True(t, q.IsZero())
	assert.Equal(t, strings.Repeat("00", 32), q.String())

	q[0], q[31] = 0xab, 0x01
	assert.False(t, q.IsZero())

	out, err := json.Marshal(struct {
		Quality Quality `json:"quality"`
	}{q})
	require.NoError(t, err)
	assert.Equal(t, `{"quality":"ab`+strings.Repeat("00", 30)+`01"}`, string(out))

	var back struct {
		Quality Quality `json:"quality"`
	}
	require.NoError(t, json.Unmarshal(out, &back))
	assert.Equal(t, q, back.Quality)

	assert.Error(t, json.Unmarshal([]byte(`{"quality":"abcd"}`), &back))
}
