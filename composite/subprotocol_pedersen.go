package composite

import (
	"io"
	"math/big"
)

// pedersenSubProtocol proves knowledge of an opening (x, r) of a Pedersen
// commitment C = MSM(g,x) + h^r, the generalization of the D-commitment
// Schnorr proof embedded in bbs/proof.go's CreateProof (there D commits
// (sBlind, domainBlind, mBlind...); here it is any-length witness vector).
type pedersenSubProtocol struct {
	stmt *PedersenStatement
	gens *PedersenGens

	witnesses []Scalar
	blinding  Scalar

	xBlind []Scalar
	rBlind Scalar
	t      G1
}

func newPedersenSubProtocol(stmt *PedersenStatement, gens *PedersenGens, witnesses []Scalar, blinding Scalar) *pedersenSubProtocol {
	return &pedersenSubProtocol{stmt: stmt, gens: gens, witnesses: witnesses, blinding: blinding}
}

func (p *pedersenSubProtocol) Commit(transcript *Transcript, rnd io.Reader, sharedBlindings map[int]Scalar) error {
	p.xBlind = make([]Scalar, len(p.witnesses))
	for i := range p.xBlind {
		if s, ok := sharedBlindings[i]; ok {
			p.xBlind[i] = s
			continue
		}
		s, err := randomScalar(rnd)
		if err != nil {
			return err
		}
		p.xBlind[i] = s
	}
	rBlind, err := randomScalar(rnd)
	if err != nil {
		return err
	}
	p.rBlind = rBlind

	p.t = addG1(msmG1(p.gens.G[:len(p.witnesses)], p.xBlind), scalarMulG1(p.gens.H, p.rBlind))

	transcript.SetLabel(LabelPedersen)
	transcript.AppendG1("C", &p.stmt.Commitment)
	transcript.AppendG1("T", &p.t)
	return nil
}

func (p *pedersenSubProtocol) Respond(c Scalar) (*StatementProof, error) {
	xHat := make([]Scalar, len(p.witnesses))
	for i := range xHat {
		v := new(big.Int).Mul(c, p.witnesses[i])
		v.Add(v, p.xBlind[i])
		v.Mod(v, Order)
		xHat[i] = v
	}
	rHat := new(big.Int).Mul(c, p.blinding)
	rHat.Add(rHat, p.rBlind)
	rHat.Mod(rHat, Order)

	return &StatementProof{
		Kind: KindPedersenCommitment,
		Pedersen: &PedersenProof{
			T:    p.t,
			XHat: xHat,
			RHat: rHat,
		},
	}, nil
}

// verifyPedersenResponse checks T + c·C == MSM(g,xHat) + h^rHat and returns
// the response scalars keyed by local witness index for the driver's
// cross-statement equality check.
func verifyPedersenResponse(stmt *PedersenStatement, gens *PedersenGens, c Scalar, proof *StatementProof, _ *PairingChecker) (map[int]Scalar, error) {
	if proof.Pedersen == nil {
		return nil, newErr(ErrProofIncompatibleWithStatement, "pedersen statement missing Pedersen proof")
	}
	pp := proof.Pedersen

	lhs := addG1(pp.T, scalarMulG1(stmt.Commitment, c))
	rhs := addG1(msmG1(gens.G[:len(pp.XHat)], pp.XHat), scalarMulG1(gens.H, pp.RHat))
	if !lhs.Equal(&rhs) {
		return nil, newErr(ErrSubProofFailed, "pedersen opening response check failed")
	}

	resp := make(map[int]Scalar, len(pp.XHat))
	for i, v := range pp.XHat {
		resp[i] = v
	}
	return resp, nil
}

func verifyPedersenCommit(transcript *Transcript, stmt *PedersenStatement, proof *StatementProof) error {
	if proof.Pedersen == nil {
		return newErr(ErrProofIncompatibleWithStatement, "pedersen statement missing Pedersen proof")
	}
	transcript.SetLabel(LabelPedersen)
	transcript.AppendG1("C", &stmt.Commitment)
	transcript.AppendG1("T", &proof.Pedersen.T)
	return nil
}
