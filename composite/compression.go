package composite

import (
	"errors"
	"io"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc"
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// CompressionCore implements the recursive-halving compressed Σ-protocol
// proving knowledge of a Pedersen opening (x, γ) of P = MSM(g,x) + h^γ that
// additionally satisfies a public linear constraint L(x) = y, with proof
// size logarithmic in len(x) (SPEC_FULL.md §4.3). Ported from
// original_source/compressed_sigma/src/compressed_linear_form.rs.
//
// len(g)+1 must be a power of two: the extra slot carries the blinding
// response φ through the same halving recursion as the witness responses
// (see paddedLinearForm).

// ErrNotPowerOfTwoPlusOne is returned when the generator vector's length
// does not satisfy CompressionCore's size precondition.
var ErrNotPowerOfTwoPlusOne = errors.New("composite: len(g)+1 must be a power of two")

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

func randomScalar(rnd io.Reader) (Scalar, error) {
	for {
		buf := make([]byte, 48)
		if _, err := io.ReadFull(rnd, buf); err != nil {
			return nil, err
		}
		s := new(big.Int).SetBytes(buf)
		s.Mod(s, Order)
		if s.Sign() != 0 {
			return s, nil
		}
	}
}

func scalarToFr(s Scalar) fr.Element {
	var e fr.Element
	e.SetBigInt(s)
	return e
}

// msmG1 computes Σ scalars[i]·bases[i] in G1.
func msmG1(bases []G1, scalars []Scalar) G1 {
	if len(bases) == 0 {
		var zero G1
		return zero
	}
	frScalars := defaultPool.GetFrElementSlice(len(scalars))
	defer defaultPool.PutFrElementSlice(frScalars)
	for _, s := range scalars {
		frScalars = append(frScalars, scalarToFr(s))
	}
	var acc bls12381.G1Jac
	if _, err := acc.MultiExp(bases, frScalars, ecc.MultiExpConfig{}); err != nil {
		// Fall back to a direct double-and-add accumulation; MultiExp only
		// fails on malformed input lengths, which callers here never pass.
		acc.SetZero()
		for i := range bases {
			var p bls12381.G1Jac
			p.FromAffine(&bases[i])
			p.ScalarMultiplication(&p, scalars[i])
			acc.AddAssign(&p)
		}
	}
	var out G1
	out.FromJacobian(&acc)
	return out
}

// RandomScalar draws a fresh uniformly random nonzero scalar, exported so
// callers outside the package can generate blindings for the witnesses
// they hand to Prove.
func RandomScalar(rnd io.Reader) (Scalar, error) {
	return randomScalar(rnd)
}

// CommitPedersenOpening computes C = MSM(gens.G[:len(values)], values) +
// gens.H^blinding, the public commitment a PedersenStatement/RangeStatement
// declares and whose opening the matching witness proves knowledge of.
func CommitPedersenOpening(gens *PedersenGens, values []Scalar, blinding Scalar) G1 {
	return addG1(msmG1(gens.G[:len(values)], values), scalarMulG1(gens.H, blinding))
}

func addG1(a, b G1) G1 {
	ja := g1JacFromAffine(&a)
	jb := g1JacFromAffine(&b)
	ja.AddAssign(&jb)
	var out G1
	out.FromJacobian(&ja)
	return out
}

// RandomCommitment is the prover's first-message commitment to random
// blindings r and ρ, following RandomCommitment::new in the ported source.
type RandomCommitment struct {
	R   []Scalar
	Rho Scalar
	A   G1
	T   Scalar
}

// NewRandomCommitment samples fresh blindings r (one per generator in g)
// and ρ, and commits to them as AHat = MSM(g,r) + h^ρ, recording
// T = form.Eval(r) for the verifier's linear-form check.
func NewRandomCommitment(g []G1, h G1, form LinearForm, rnd io.Reader) (*RandomCommitment, error) {
	if !isPowerOfTwo(len(g) + 1) {
		return nil, ErrNotPowerOfTwoPlusOne
	}
	r := make([]Scalar, len(g))
	for i := range r {
		s, err := randomScalar(rnd)
		if err != nil {
			return nil, err
		}
		r[i] = s
	}
	rho, err := randomScalar(rnd)
	if err != nil {
		return nil, err
	}
	a := addG1(msmG1(g, r), scalarMulG1(h, rho))
	t := form.Eval(r)
	return &RandomCommitment{R: r, Rho: rho, A: a, T: t}, nil
}

// CompressionRound is one round's pair of cross-term commitments, recorded
// so the verifier can re-derive every round challenge and fold the claim
// down to a size-2 base case.
type CompressionRound struct {
	A G1
	B G1
}

// CompressedResponse is the full CompressionCore proof transcript
// contribution: the per-round (A,B) pairs plus the two base-case scalars
// the recursion bottoms out at.
type CompressedResponse struct {
	Rounds []CompressionRound
	Z0     Scalar
	Z1     Scalar
}

// Respond completes the Σ-protocol opening at the shared challenge c0 (the
// one challenge common to every statement's response in a composite proof,
// SPEC_FULL.md §4.5), then recursively compresses the resulting length-(n+1)
// response vector down to two scalars, deriving one fresh round challenge
// per halving from transcript (the range sub-protocol passes a scoped
// per-statement transcript here, not the composite one).
func (rc *RandomCommitment) Respond(x []Scalar, gamma, c0 Scalar, g []G1, h G1, form LinearForm, k G1, transcript *Transcript) (phi Scalar, resp *CompressedResponse, err error) {
	n := len(g)
	zHat := make([]Scalar, n+1)
	tmp := new(big.Int)
	for i := 0; i < n; i++ {
		tmp.Mul(x[i], c0)
		v := new(big.Int).Add(tmp, rc.R[i])
		v.Mod(v, Order)
		zHat[i] = v
	}
	phi = new(big.Int).Mul(gamma, c0)
	phi.Add(phi, rc.Rho)
	phi.Mod(phi, Order)
	zHat[n] = phi

	gHat := append(append([]G1{}, g...), h)
	paddedForm := padLinearForm(form)

	rounds, z0, z1, err := compressedResponse(gHat, zHat, paddedForm, k, transcript)
	if err != nil {
		return nil, nil, err
	}
	return phi, &CompressedResponse{Rounds: rounds, Z0: z0, Z1: z1}, nil
}

// compressedResponse is the recursive halving loop: at each round it splits
// the current (g, z, L) triple in half, forms the two cross terms
// A = MSM(g_r,z_l) + k·L_r(z_l) and B = MSM(g_l,z_r) + k·L_l(z_r), derives a
// challenge c from the transcript, and folds g, L and z down by one level.
// It terminates once exactly two coordinates remain.
func compressedResponse(g []G1, z []Scalar, form LinearForm, k G1, transcript *Transcript) ([]CompressionRound, Scalar, Scalar, error) {
	var rounds []CompressionRound

	for len(z) > 2 {
		mid := (len(z) + 1) / 2
		gl, gr := g[:mid], g[mid:]
		zl, zr := z[:mid], z[mid:]
		formL, formR := form.SplitInHalf()

		a := addG1(msmG1(gr, zl), scalarMulG1(k, formR.Eval(zl)))
		b := addG1(msmG1(gl, zr), scalarMulG1(k, formL.Eval(zr)))

		transcript.SetLabel(LabelCompressionRound)
		transcript.AppendG1("A", &a)
		transcript.AppendG1("B", &b)
		c := transcript.Challenge("c")

		// gl and gr are always equal length here: gHat starts at a power of
		// two and each round halves it exactly, so the split never leaves a
		// remainder to special-case.
		newG := make([]G1, len(gr))
		for i := range gr {
			newG[i] = addG1(scalarMulG1(gl[i], c), gr[i])
		}

		newZ := make([]Scalar, len(zr))
		for i := range zr {
			v := new(big.Int).Add(zl[i], new(big.Int).Mul(c, zr[i]))
			v.Mod(v, Order)
			newZ[i] = v
		}

		newForm := formL.FoldWith(c, formR)

		g, z, form = newG, newZ, newForm
		rounds = append(rounds, CompressionRound{A: a, B: b})
	}

	if len(z) != 2 {
		return nil, nil, nil, errors.New("composite: compression core did not reach a 2-element base case")
	}
	return rounds, z[0], z[1], nil
}

// VerifyCompression re-derives every round challenge from the transcript
// and checks the final folded claim g'·z' + k·L'(z') == Q', where Q is
// folded from Q0 = P·c0 + k·(c1·(c0·y+t)) + AHat through the same per-round
// recursion the prover used to fold g and L (is_valid_recursive in the
// ported source). c1 is fixed at 1: this engine does not batch multiple
// linear-form claims into one compression.
func VerifyCompression(g []G1, h, k G1, form LinearForm, p G1, y, c0 Scalar, commitment *RandomCommitment, resp *CompressedResponse, transcript *Transcript) bool {
	if !isPowerOfTwo(len(g) + 1) {
		return false
	}
	gHat := append(append([]G1{}, g...), h)
	paddedForm := padLinearForm(form)

	inner := new(big.Int).Mul(c0, y)
	inner.Add(inner, commitment.T)
	inner.Mod(inner, Order)
	q := addG1(addG1(scalarMulG1(p, c0), scalarMulG1(k, inner)), commitment.A)

	g, form, curQ := gHat, paddedForm, q
	for _, round := range resp.Rounds {
		transcript.SetLabel(LabelCompressionRound)
		transcript.AppendG1("A", &round.A)
		transcript.AppendG1("B", &round.B)
		c := transcript.Challenge("c")

		mid := (len(g) + 1) / 2
		gl, gr := g[:mid], g[mid:]
		formL, formR := form.SplitInHalf()

		newG := make([]G1, len(gr))
		for i := range gr {
			newG[i] = addG1(scalarMulG1(gl[i], c), gr[i])
		}
		g = newG
		form = formL.FoldWith(c, formR)

		cc := new(big.Int).Mul(c, c)
		cc.Mod(cc, Order)
		curQ = addG1(addG1(round.A, scalarMulG1(curQ, c)), scalarMulG1(round.B, cc))
	}

	if len(g) != 2 {
		return false
	}
	lhs := addG1(msmG1(g, []Scalar{resp.Z0, resp.Z1}), scalarMulG1(k, form.Eval([]Scalar{resp.Z0, resp.Z1})))
	return lhs.Equal(&curQ)
}
