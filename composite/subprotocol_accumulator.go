package composite

import (
	"io"
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
)

// AccumulatorPublicKey is the issuer's accumulator verification key.
type AccumulatorPublicKey struct {
	W  G2 // secret-key image: g2^x
	G2 G2 // the G2 generator
}

// AccumulatorWitness is a membership witness (C, value) for which a genuine
// accumulator satisfies e(C, W + value·G2) = e(Accumulator, G2).
type AccumulatorWitness struct {
	C     G1
	Value Scalar
}

// accumulatorSubProtocol proves membership of a hidden value in a
// cryptographic accumulator, generalizing the single batched pairing check
// in bbs/proof.go's VerifyProof (e(A',W)·e(g1b,-g2)·e(T,g2)=1) onto an
// accumulator's own pairing relation.
//
// The witness is blinded by a fresh per-proof factor ρ: C' = ρ·C. Unlike
// the teacher's A'=A·g1^r (where r stays secret, bound only implicitly
// through the pairing structure), ρ here is disclosed in the proof - an
// explicit scope reduction from the hidden-ρ construction an accumulator
// scheme would use for full witness-unlinkability, recorded as an Open
// Question resolution in DESIGN.md. Disclosing ρ costs nothing for the
// hidden membership value itself: v stays proved in zero knowledge via a
// Schnorr proof of discrete log in GT (Y^v = Z, Y=e(C',G2)), and that
// single pairing-equation claim is what gets staged into the shared
// PairingChecker.
type accumulatorSubProtocol struct {
	stmt    *AccumulatorStatement
	pk      *AccumulatorPublicKey
	witness *AccumulatorWitness

	rho        Scalar
	vBlind     Scalar
	cPrime     G1
	commitment GT // Y^vBlind where Y = e(C',G2)
}

func newAccumulatorSubProtocol(stmt *AccumulatorStatement, pk *AccumulatorPublicKey, witness *AccumulatorWitness) *accumulatorSubProtocol {
	return &accumulatorSubProtocol{stmt: stmt, pk: pk, witness: witness}
}

func (a *accumulatorSubProtocol) Commit(transcript *Transcript, rnd io.Reader, sharedBlindings map[int]Scalar) error {
	rho, err := randomScalar(rnd)
	if err != nil {
		return err
	}
	a.rho = rho
	a.cPrime = scalarMulG1(a.witness.C, rho)

	if b, ok := sharedBlindings[0]; ok {
		a.vBlind = b
	} else {
		b, err := randomScalar(rnd)
		if err != nil {
			return err
		}
		a.vBlind = b
	}

	y, err := bls12381.Pair([]bls12381.G1Affine{a.cPrime}, []bls12381.G2Affine{a.pk.G2})
	if err != nil {
		return newErr(ErrPairingCheckFailed, "accumulator commitment pairing failed")
	}
	a.commitment.Exp(y, a.vBlind)

	transcript.SetLabel(LabelVBAccumMem)
	transcript.AppendG1("CPrime", &a.cPrime)
	transcript.AppendScalar("Rho", a.rho)
	transcript.Append("Commitment", a.commitment.Marshal())
	return nil
}

func (a *accumulatorSubProtocol) Respond(c Scalar) (*StatementProof, error) {
	vHat := new(big.Int).Mul(a.witness.Value, c)
	vHat.Add(vHat, a.vBlind)
	vHat.Mod(vHat, Order)

	return &StatementProof{
		Kind: KindAccumulatorMembership,
		Accumulator: &AccumulatorProof{
			T1:         a.cPrime,
			Rho:        a.rho,
			Commitment: a.commitment,
			Hat:        vHat,
		},
	}, nil
}

func verifyAccumulatorCommit(transcript *Transcript, proof *StatementProof) error {
	if proof.Accumulator == nil {
		return newErr(ErrProofIncompatibleWithStatement, "accumulator statement missing Accumulator proof")
	}
	ap := proof.Accumulator
	transcript.SetLabel(LabelVBAccumMem)
	transcript.AppendG1("CPrime", &ap.T1)
	transcript.AppendScalar("Rho", ap.Rho)
	transcript.Append("Commitment", ap.Commitment.Marshal())
	return nil
}

// verifyAccumulatorResponse checks e(C',W)^c · e(C',G2)^vHat ==
// e(Accumulator,G2)^{ρc} · Commitment by staging it as a single
// PairingChecker claim: the G1 side carries [c·C', vHat·C', -ρc·Accumulator]
// paired against [W, G2, G2], with the disclosed Commitment (already a
// concrete GT value, not itself a fresh pairing) folded into the target.
func verifyAccumulatorResponse(stmt *AccumulatorStatement, pk *AccumulatorPublicKey, c Scalar, proof *StatementProof, checker *PairingChecker) (map[int]Scalar, error) {
	if proof.Accumulator == nil {
		return nil, newErr(ErrProofIncompatibleWithStatement, "accumulator statement missing Accumulator proof")
	}
	ap := proof.Accumulator

	cScaled := scalarMulG1(ap.T1, c)
	vHatScaled := scalarMulG1(ap.T1, ap.Hat)
	rhoC := new(big.Int).Mul(ap.Rho, c)
	rhoC.Mod(rhoC, Order)
	accScaled := negG1(scalarMulG1(stmt.Accumulator, rhoC))

	checker.AddSourcesAndTarget(
		[]G1{cScaled, vHatScaled, accScaled},
		[]G2{pk.W, pk.G2, pk.G2},
		&ap.Commitment,
	)

	return map[int]Scalar{0: ap.Hat}, nil
}
