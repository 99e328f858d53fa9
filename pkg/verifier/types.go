package verifier

import (
	"encoding/hex"
	"strings"

	"golang.org/x/xerrors"

	"github.com/filecoin-project/go-posv/pkg/constants"
)

// Seed identifies the plot a proof was generated from.
type Seed [constants.SeedLen]byte

// Challenge is the value a proof answers.
type Challenge [constants.ChallengeLen]byte

// Quality is the digest derived from a valid proof. It is all zero whenever
// verification fails.
type Quality [constants.QualityLen]byte

// Request carries caller supplied, not yet validated inputs.
type Request struct {
	Seed      []byte
	K         uint8
	Challenge []byte
	Proof     []byte
}

// Result is the outcome of a single verification in a batch.
type Result struct {
	Quality Quality
	OK      bool
}

// IsZero reports whether q is the all zero failure value.
func (q Quality) IsZero() bool {
	return q == Quality{}
}

func (q Quality) String() string {
	return hex.EncodeToString(q[:])
}

// MarshalText implements encoding.TextMarshaler.
func (q Quality) MarshalText() ([]byte, error) {
	return []byte(q.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (q *Quality) UnmarshalText(text []byte) error {
	return decode32((*[32]byte)(q), "quality", string(text))
}

func (s Seed) String() string {
	return hex.EncodeToString(s[:])
}

// MarshalText implements encoding.TextMarshaler.
func (s Seed) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Seed) UnmarshalText(text []byte) error {
	return decode32((*[32]byte)(s), "seed", string(text))
}

func (c Challenge) String() string {
	return hex.EncodeToString(c[:])
}

// MarshalText implements encoding.TextMarshaler.
func (c Challenge) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Challenge) UnmarshalText(text []byte) error {
	return decode32((*[32]byte)(c), "challenge", string(text))
}

// ParseSeed parses a hex encoded seed with an optional 0x prefix.
func ParseSeed(s string) (Seed, error) {
	var out Seed
	err := out.UnmarshalText([]byte(s))
	return out, err
}

// ParseChallenge parses a hex encoded challenge with an optional 0x prefix.
func ParseChallenge(s string) (Challenge, error) {
	var out Challenge
	err := out.UnmarshalText([]byte(s))
	return out, err
}

// ParseQuality parses a hex encoded quality with an optional 0x prefix.
func ParseQuality(s string) (Quality, error) {
	var out Quality
	err := out.UnmarshalText([]byte(s))
	return out, err
}

// DecodeHex decodes s, ignoring surrounding space and a 0x prefix.
func DecodeHex(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, xerrors.Errorf("invalid hex: %w", err)
	}
	return b, nil
}

func decode32(dst *[32]byte, what, s string) error {
	b, err := DecodeHex(s)
	if err != nil {
		return xerrors.Errorf("%s: %w", what, err)
	}
	if len(b) != len(dst) {
		return xerrors.Errorf("%s must be %d bytes, got %d", what, len(dst), len(b))
	}
	copy(dst[:], b)
	return nil
}
