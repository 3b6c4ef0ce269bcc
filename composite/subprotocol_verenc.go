package composite

import (
	"io"
	"math/big"
)

// verEncSubProtocol proves an ElGamal-style ciphertext (c1, c2) = (g^k,
// g^m·pub^k·h^s) encrypts the same value m opened by a companion Pedersen
// commitment C = g^m·h^s, the minimal instance of a TZ-21-style verifiable
// encryption statement (SPEC_FULL.md §4.4 "VerEncStatement"). All three
// relations share the witnesses (m, s, k), so this is a three-generator
// Schnorr proof rather than a single opening, following the same blinded-
// commitment pattern as pedersenSubProtocol but over a wider witness set.
type verEncSubProtocol struct {
	stmt *VerEncStatement
	gens *PedersenGens
	pub  G1 // encryption public key g^x

	m, s, k Scalar

	mBlind, sBlind, kBlind Scalar
	t1, t2, t3             G1
}

func newVerEncSubProtocol(stmt *VerEncStatement, gens *PedersenGens, pub G1, m, s, k Scalar) *verEncSubProtocol {
	return &verEncSubProtocol{stmt: stmt, gens: gens, pub: pub, m: m, s: s, k: k}
}

func (v *verEncSubProtocol) Commit(transcript *Transcript, rnd io.Reader, sharedBlindings map[int]Scalar) error {
	blind := func(idx int) (Scalar, error) {
		if b, ok := sharedBlindings[idx]; ok {
			return b, nil
		}
		return randomScalar(rnd)
	}
	var err error
	if v.mBlind, err = blind(0); err != nil {
		return err
	}
	if v.sBlind, err = blind(1); err != nil {
		return err
	}
	if v.kBlind, err = blind(2); err != nil {
		return err
	}

	// T1 commits to C = g^m·h^s
	v.t1 = addG1(scalarMulG1(v.gens.G[0], v.mBlind), scalarMulG1(v.gens.H, v.sBlind))
	// T2 commits to c1 = g^k
	v.t2 = scalarMulG1(v.gens.G[0], v.kBlind)
	// T3 commits to c2 = g^m·pub^k·h^s (the ciphertext's second component,
	// ElGamal-blinded additively with the same h^s used by C so the
	// m,s witnesses stay shared)
	v.t3 = addG1(addG1(scalarMulG1(v.gens.G[0], v.mBlind), scalarMulG1(v.pub, v.kBlind)), scalarMulG1(v.gens.H, v.sBlind))

	transcript.SetLabel(LabelVETZ21)
	transcript.AppendG1("C", &v.stmt.Commitment)
	transcript.AppendG1("C1", &v.stmt.Ciphertext1)
	transcript.AppendG1("C2", &v.stmt.Ciphertext2)
	transcript.AppendG1("T1", &v.t1)
	transcript.AppendG1("T2", &v.t2)
	transcript.AppendG1("T3", &v.t3)
	return nil
}

func (v *verEncSubProtocol) Respond(c Scalar) (*StatementProof, error) {
	resp := func(blind, witness Scalar) Scalar {
		r := new(big.Int).Mul(c, witness)
		r.Add(r, blind)
		r.Mod(r, Order)
		return r
	}
	return &StatementProof{
		Kind: KindVerifiableEncryption,
		VerEnc: &VerEncProof{
			T1: v.t1, T2: v.t2, T3: v.t3,
			XHat: resp(v.mBlind, v.m),
			RHat: resp(v.sBlind, v.s),
			SHat: resp(v.kBlind, v.k),
		},
	}, nil
}

func verifyVerEncCommit(transcript *Transcript, stmt *VerEncStatement, proof *StatementProof) error {
	if proof.VerEnc == nil {
		return newErr(ErrProofIncompatibleWithStatement, "verifiable encryption statement missing VerEnc proof")
	}
	vp := proof.VerEnc
	transcript.SetLabel(LabelVETZ21)
	transcript.AppendG1("C", &stmt.Commitment)
	transcript.AppendG1("C1", &stmt.Ciphertext1)
	transcript.AppendG1("C2", &stmt.Ciphertext2)
	transcript.AppendG1("T1", &vp.T1)
	transcript.AppendG1("T2", &vp.T2)
	transcript.AppendG1("T3", &vp.T3)
	return nil
}

func verifyVerEncResponse(stmt *VerEncStatement, gens *PedersenGens, pub G1, c Scalar, proof *StatementProof, _ *PairingChecker) (map[int]Scalar, error) {
	if proof.VerEnc == nil {
		return nil, newErr(ErrProofIncompatibleWithStatement, "verifiable encryption statement missing VerEnc proof")
	}
	vp := proof.VerEnc

	lhs1 := addG1(vp.T1, scalarMulG1(stmt.Commitment, c))
	rhs1 := addG1(scalarMulG1(gens.G[0], vp.XHat), scalarMulG1(gens.H, vp.RHat))
	if !lhs1.Equal(&rhs1) {
		return nil, newErr(ErrSubProofFailed, "verifiable encryption commitment check failed")
	}

	lhs2 := addG1(vp.T2, scalarMulG1(stmt.Ciphertext1, c))
	rhs2 := scalarMulG1(gens.G[0], vp.SHat)
	if !lhs2.Equal(&rhs2) {
		return nil, newErr(ErrSubProofFailed, "verifiable encryption ciphertext1 check failed")
	}

	lhs3 := addG1(vp.T3, scalarMulG1(stmt.Ciphertext2, c))
	rhs3 := addG1(addG1(scalarMulG1(gens.G[0], vp.XHat), scalarMulG1(pub, vp.SHat)), scalarMulG1(gens.H, vp.RHat))
	if !lhs3.Equal(&rhs3) {
		return nil, newErr(ErrSubProofFailed, "verifiable encryption ciphertext2 check failed")
	}

	return map[int]Scalar{0: vp.XHat, 1: vp.RHat, 2: vp.SHat}, nil
}
