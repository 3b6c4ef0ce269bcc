package composite

import (
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
)

// PairingChecker batches many pairing-equation claims of the form
// ∏ e(Aᵢ,Bᵢ) = T into a single final-exponentiation check, following
// SPEC_FULL.md §4.2 and ported directly from
// original_source/utils/src/randomized_pairing_check.rs's
// RandomizedPairingChecker. gnark-crypto's bls12381 package does not split
// the multi-Miller-loop the same way arkworks does, so the eager path
// folds each addition's Miller loop into an accumulated GT value via
// bls12381.MillerLoop, and the lazy path defers everything to one call at
// Verify.
type PairingChecker struct {
	leftMiller    bls12381.GT // accumulated eager Miller-loop output
	rightTarget   bls12381.GT // accumulated target-side sum
	random        *big.Int
	currentRandom *big.Int
	lazy          bool
	pendingG1     []bls12381.G1Affine
	pendingG2     []bls12381.G2Affine
}

// NewPairingChecker initializes the rolling exponent ρ := 1 with the given
// random scalar r (sampled by the caller; only the verifier needs
// randomness, per SPEC_FULL.md §5).
func NewPairingChecker(r *big.Int, lazy bool) *PairingChecker {
	pc := &PairingChecker{
		random:        new(big.Int).Set(r),
		currentRandom: big.NewInt(1),
		lazy:          lazy,
	}
	pc.leftMiller.SetOne()
	pc.rightTarget.SetOne()
	return pc
}

func scalarMulG1(p bls12381.G1Affine, s *big.Int) bls12381.G1Affine {
	var j bls12381.G1Jac
	j.FromAffine(&p)
	j.ScalarMultiplication(&j, s)
	var out bls12381.G1Affine
	out.FromJacobian(&j)
	return out
}

func negG1(p bls12381.G1Affine) bls12381.G1Affine {
	var j bls12381.G1Jac
	j.FromAffine(&p)
	j.Neg(&j)
	var out bls12381.G1Affine
	out.FromJacobian(&j)
	return out
}

// AddSourcesAndTarget stages the claim ∏e(Aᵢ,Bᵢ) = T: every A is scaled by
// the current ρ, the pairs are either folded immediately (eager) or queued
// (lazy), T is accumulated into the right-hand side scaled by ρ, and ρ is
// advanced to ρ·r.
func (pc *PairingChecker) AddSourcesAndTarget(a []bls12381.G1Affine, b []bls12381.G2Affine, target *bls12381.GT) {
	aScaled := make([]bls12381.G1Affine, len(a))
	for i := range a {
		aScaled[i] = scalarMulG1(a[i], pc.currentRandom)
	}

	if pc.lazy {
		pc.pendingG1 = append(pc.pendingG1, aScaled...)
		pc.pendingG2 = append(pc.pendingG2, b...)
	} else {
		ml, err := bls12381.MillerLoop(aScaled, b)
		if err == nil {
			pc.leftMiller.Mul(&pc.leftMiller, &ml)
		}
	}

	var scaledTarget bls12381.GT
	scaledTarget.Exp(*target, pc.currentRandom)
	pc.rightTarget.Mul(&pc.rightTarget, &scaledTarget)

	pc.currentRandom.Mul(pc.currentRandom, pc.random)
	pc.currentRandom.Mod(pc.currentRandom, Order)
}

// AddSources stages the claim ∏e(Aᵢ,Bᵢ) = ∏e(Cᵢ,Dᵢ) by folding A·ρ with B,
// and -C·ρ with D, into the same left-hand accumulator (no target update).
func (pc *PairingChecker) AddSources(a, c []bls12381.G1Affine, b, d []bls12381.G2Affine) {
	aScaled := make([]bls12381.G1Affine, len(a))
	for i := range a {
		aScaled[i] = scalarMulG1(a[i], pc.currentRandom)
	}
	cScaled := make([]bls12381.G1Affine, len(c))
	for i := range c {
		cScaled[i] = negG1(scalarMulG1(c[i], pc.currentRandom))
	}

	if pc.lazy {
		pc.pendingG1 = append(pc.pendingG1, aScaled...)
		pc.pendingG2 = append(pc.pendingG2, b...)
		pc.pendingG1 = append(pc.pendingG1, cScaled...)
		pc.pendingG2 = append(pc.pendingG2, d...)
	} else {
		if ml, err := bls12381.MillerLoop(aScaled, b); err == nil {
			pc.leftMiller.Mul(&pc.leftMiller, &ml)
		}
		if ml, err := bls12381.MillerLoop(cScaled, d); err == nil {
			pc.leftMiller.Mul(&pc.leftMiller, &ml)
		}
	}

	pc.currentRandom.Mul(pc.currentRandom, pc.random)
	pc.currentRandom.Mod(pc.currentRandom, Order)
}

// Verify flushes any pending pairs through one multi-Miller-loop, composes
// with the eagerly accumulated Miller output, applies the final
// exponentiation once, and compares against the accumulated target.
//
// A single boolean is returned regardless of how many staged claims failed:
// distinguishing partial failure would leak which sub-statement was wrong,
// which is soundness-equivalent to not checking it at all
// (SPEC_FULL.md §4.2 "Failure").
func (pc *PairingChecker) Verify() bool {
	left := pc.leftMiller
	if len(pc.pendingG1) > 0 {
		ml, err := bls12381.MillerLoop(pc.pendingG1, pc.pendingG2)
		if err != nil {
			return false
		}
		left.Mul(&left, &ml)
	}

	final := bls12381.FinalExponentiation(&left)
	return final.Equal(&pc.rightTarget)
}
