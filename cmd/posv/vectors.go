package main

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/hashicorp/go-multierror"
	"github.com/urfave/cli/v2"
	"golang.org/x/xerrors"

	"github.com/filecoin-project/go-posv/pkg/verifier"
)

var vectorsCmd = &cli.Command{
	Name:      "vectors",
	Usage:     "verify a file of known good proofs",
	ArgsUsage: "FILE",
	Description: `Each non empty line of FILE holds a comma separated
seed, k, challenge, proof and expected quality, all but k hex encoded.
Lines starting with # are ignored.`,
	Flags: []cli.Flag{
		&cli.IntFlag{Name: "workers", Usage: "concurrent verifications; 0 means one per CPU"},
	},
	Action: func(c *cli.Context) error {
		if c.NArg() != 1 {
			return xerrors.New("expected exactly one vectors file")
		}

		cfg, err := loadConfig(c)
		if err != nil {
			return err
		}
		stop, err := startMetrics(c, cfg)
		if err != nil {
			return err
		}
		defer stop()

		v, err := verifier.New(cfg)
		if err != nil {
			return err
		}

		f, err := os.Open(c.Args().First())
		if err != nil {
			return err
		}
		defer f.Close() // nolint: errcheck

		vecs, parseErr := readVectors(f)
		passed, err := checkVectors(c, v, vecs, c.Int("workers"))
		if err != nil {
			return err
		}
		summary := color.New(color.FgGreen)
		if passed != len(vecs) || parseErr != nil {
			summary = color.New(color.FgRed)
		}
		summary.Fprintf(c.App.Writer, "%d/%d vectors passed\n", passed, len(vecs)) // nolint: errcheck

		var merr *multierror.Error
		if parseErr != nil {
			merr = multierror.Append(merr, parseErr)
		}
		for _, vec := range vecs {
			if vec.err != nil {
				merr = multierror.Append(merr, vec.err)
			}
		}
		return merr.ErrorOrNil()
	},
}

type vector struct {
	line    int
	req     verifier.Request
	quality verifier.Quality
	err     error
}

// readVectors parses r. Lines that do not parse are collected in the
// returned error and left out of the vectors.
func readVectors(r io.Reader) ([]*vector, error) {
	var (
		vecs []*vector
		merr *multierror.Error
	)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		vec, err := parseVector(line)
		if err != nil {
			merr = multierror.Append(merr, xerrors.Errorf("line %d: %w", n, err))
			continue
		}
		vec.line = n
		vecs = append(vecs, vec)
	}
	if err := sc.Err(); err != nil {
		merr = multierror.Append(merr, err)
	}
	return vecs, merr.ErrorOrNil()
}

func parseVector(line string) (*vector, error) {
	fields := strings.Split(line, ",")
	if len(fields) != 5 {
		return nil, xerrors.Errorf("expected 5 fields, got %d", len(fields))
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	seed, err := verifier.DecodeHex(fields[0])
	if err != nil {
		return nil, xerrors.Errorf("seed: %w", err)
	}
	k, err := strconv.ParseUint(fields[1], 10, 8)
	if err != nil {
		return nil, xerrors.Errorf("k: %w", err)
	}
	challenge, err := verifier.DecodeHex(fields[2])
	if err != nil {
		return nil, xerrors.Errorf("challenge: %w", err)
	}
	proof, err := verifier.DecodeHex(fields[3])
	if err != nil {
		return nil, xerrors.Errorf("proof: %w", err)
	}
	quality, err := verifier.ParseQuality(fields[4])
	if err != nil {
		return nil, err
	}

	return &vector{
		req:     verifier.Request{Seed: seed, K: uint8(k), Challenge: challenge, Proof: proof},
		quality: quality,
	}, nil
}

// checkVectors verifies vecs in one batch, setting err on every vector that
// does not reproduce its quality, and returns how many passed.
func checkVectors(c *cli.Context, v *verifier.Verifier, vecs []*vector, workers int) (int, error) {
	reqs := make([]verifier.Request, len(vecs))
	for i, vec := range vecs {
		reqs[i] = vec.req
	}

	results, err := v.VerifyBatch(c.Context, reqs, workers)
	if err != nil {
		return 0, err
	}

	passed := 0
	for i, res := range results {
		vec := vecs[i]
		switch {
		case !res.OK:
			vec.err = xerrors.Errorf("line %d: proof rejected: %w", vec.line, v.Explain(c.Context, vec.req))
		case res.Quality != vec.quality:
			vec.err = xerrors.Errorf("line %d: quality %s, expected %s", vec.line, res.Quality, vec.quality)
		default:
			passed++
		}
	}
	return passed, nil
}
