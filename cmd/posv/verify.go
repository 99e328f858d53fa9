package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
	"golang.org/x/xerrors"

	"github.com/filecoin-project/go-posv/pkg/constants"
	"github.com/filecoin-project/go-posv/pkg/verifier"
)

var verifyCmd = &cli.Command{
	Name:      "verify",
	Usage:     "verify a single proof and print its quality",
	ArgsUsage: " ",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "seed", Usage: "hex plot seed", Required: true},
		&cli.StringFlag{Name: "challenge", Usage: "hex challenge", Required: true},
		&cli.StringFlag{Name: "proof", Usage: "hex proof", Required: true},
		&cli.UintFlag{Name: "k", Usage: "plot size; derived from the proof length when omitted"},
	},
	Action: func(c *cli.Context) error {
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

		req, err := verifyRequest(c.String("seed"), c.String("challenge"), c.String("proof"), c.Uint("k"), c.IsSet("k"))
		if err != nil {
			return err
		}

		q, ok := v.Verify(c.Context, req)
		if !ok {
			return xerrors.Errorf("proof rejected: %w", v.Explain(c.Context, req))
		}
		_, err = fmt.Fprintln(c.App.Writer, q)
		return err
	},
}

// verifyRequest decodes the verify flags. Without an explicit k, k is the
// proof length divided by the bytes each unit of k adds.
func verifyRequest(seedHex, challengeHex, proofHex string, k uint, kSet bool) (verifier.Request, error) {
	seed, err := verifier.DecodeHex(seedHex)
	if err != nil {
		return verifier.Request{}, xerrors.Errorf("seed: %w", err)
	}
	challenge, err := verifier.DecodeHex(challengeHex)
	if err != nil {
		return verifier.Request{}, xerrors.Errorf("challenge: %w", err)
	}
	proof, err := verifier.DecodeHex(proofHex)
	if err != nil {
		return verifier.Request{}, xerrors.Errorf("proof: %w", err)
	}

	if !kSet {
		if len(proof)%constants.ProofBytesPerK != 0 {
			return verifier.Request{}, xerrors.Errorf("cannot derive k from a %d byte proof; pass --k", len(proof))
		}
		k = uint(len(proof) / constants.ProofBytesPerK)
	}
	if k > 255 {
		return verifier.Request{}, xerrors.Errorf("k %d does not fit in a byte", k)
	}

	return verifier.Request{Seed: seed, K: uint8(k), Challenge: challenge, Proof: proof}, nil
}
