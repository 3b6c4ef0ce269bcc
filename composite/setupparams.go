package composite

import (
	"crypto/sha256"
	"encoding/binary"
	"io"
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"golang.org/x/sync/errgroup"
)

// SetupParams is a pool of public parameters referenced by index from
// statements, mirroring the teacher's PublicKey.H generator vector
// (bbs/types.go) generalized into a shared, deduplicated table: several
// statements commonly need the same generator vector or accumulator public
// key, and SPEC_FULL.md §3 requires those be declared once and referenced,
// not re-serialized per statement.
type SetupParams struct {
	entries []any
}

// NewSetupParams returns an empty parameter pool.
func NewSetupParams() *SetupParams {
	return &SetupParams{}
}

// Add appends a parameter value (a *PedersenGens, *AccumulatorPublicKey,
// etc.) and returns its index for statements to reference.
func (s *SetupParams) Add(v any) int {
	s.entries = append(s.entries, v)
	return len(s.entries) - 1
}

// Get retrieves a previously added parameter by index.
func (s *SetupParams) Get(i int) any {
	if i < 0 || i >= len(s.entries) {
		return nil
	}
	return s.entries[i]
}

// PedersenGens is a generator vector shared by Pedersen-commitment-backed
// statements (Pedersen openings, range proofs, signature blinding
// factors): g[i] commits witness i, h blinds the commitment. Generalizes
// bbs/keygen.go's GenerateGenerators to an arbitrary count.
type PedersenGens struct {
	G []G1
	H G1
}

// GenerateGenerators deterministically derives count+1 generators from a
// domain-separation seed, following bbs/utils.go's GenerateGenerators so
// that two parties deriving generators from the same seed always agree
// without needing a trusted setup or an explicit transmitted generator list.
// rnd is unused when seed is non-empty (derivation is then fully
// deterministic); it is accepted for API symmetry with the rest of the
// package's constructors and as a fallback entropy source if seed is nil.
// Table construction is data-parallel across indices (SPEC_FULL.md §5
// permits this for CompressionCore's generator table): each g[i] depends
// only on seed/i, never on another entry, so a large BitLength-sized table
// fans out one goroutine per entry via errgroup rather than deriving them
// one at a time.
func GenerateGenerators(seed []byte, count int, rnd io.Reader) (*PedersenGens, error) {
	_, _, g1Gen, _ := bls12381.Generators()

	g := make([]G1, count)
	if len(seed) == 0 {
		// Every entry falls back to drawing from rnd, which is not
		// guaranteed concurrency-safe for an arbitrary caller-supplied
		// io.Reader, so the unseeded path stays sequential.
		for i := range g {
			s, err := seedScalar(seed, "g", i, rnd)
			if err != nil {
				return nil, err
			}
			g[i] = scalarMulG1(g1Gen, s)
		}
	} else {
		var grp errgroup.Group
		for i := range g {
			i := i
			grp.Go(func() error {
				s, err := seedScalar(seed, "g", i, rnd)
				if err != nil {
					return err
				}
				g[i] = scalarMulG1(g1Gen, s)
				return nil
			})
		}
		if err := grp.Wait(); err != nil {
			return nil, err
		}
	}
	hs, err := seedScalar(seed, "h", 0, rnd)
	if err != nil {
		return nil, err
	}
	return &PedersenGens{G: g, H: scalarMulG1(g1Gen, hs)}, nil
}

// seedScalar derives a scalar deterministically from seed/tag/index via
// SHA-256, following CalculateDomain's "hash then reduce mod Order"
// pattern (bbs/utils.go). If seed is empty it instead draws fresh
// randomness from rnd.
func seedScalar(seed []byte, tag string, idx int, rnd io.Reader) (Scalar, error) {
	if len(seed) == 0 {
		return randomScalar(rnd)
	}
	h := sha256.New()
	h.Write(seed)
	h.Write([]byte(tag))
	var idxBuf [8]byte
	binary.BigEndian.PutUint64(idxBuf[:], uint64(idx))
	h.Write(idxBuf[:])
	digest := h.Sum(nil)
	s := new(big.Int).SetBytes(digest)
	s.Mod(s, Order)
	if s.Sign() == 0 {
		s.SetInt64(1)
	}
	return s, nil
}
