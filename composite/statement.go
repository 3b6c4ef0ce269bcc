package composite

import "github.com/holiman/uint256"

// Statement is one sub-proof's public description inside a ProofSpec. It is
// a closed sum type over StatementKind: exactly one of the typed payload
// fields is populated, matching the kind. A tagged struct was chosen over a
// dynamically-typed plug-in registry because the driver's witness-equality
// resolution and transcript labelling are specialized per kind and read
// better as an exhaustive switch (SPEC_FULL.md §9).
type Statement struct {
	Kind StatementKind

	Signature    *SignatureStatement
	Pedersen     *PedersenStatement
	Range        *RangeStatement
	Accumulator  *AccumulatorStatement
	VerEnc       *VerEncStatement
	R1CS         *R1CSStatement
}

// SignatureStatement proves possession of a signature over a vector of
// messages, selectively disclosing some and hiding the rest, generalizing
// bbs/proof.go's CreateProof/VerifyProof pair (SPEC_FULL.md §4.4
// "SignatureStatement").
type SignatureStatement struct {
	PublicKeyParamsIdx int // index into SetupParams for the issuer's PublicKey
	Disclosed          map[int]Scalar
	MessageCount        int
}

// PedersenStatement proves knowledge of an opening (x, blinding) of a
// commitment C = MSM(g,x) + h^blinding, generalizing the D-commitment
// construction inside bbs/proof.go's CreateProof.
type PedersenStatement struct {
	GensParamsIdx int // index into SetupParams for a *PedersenGens
	Commitment    G1
	WitnessCount  int
}

// RangeStatement proves a committed value lies in [Min, Max) via a
// bit-decomposition linear form checked through CompressionCore
// (SPEC_FULL.md §4.4 "RangeStatement"). Bounds are fixed-width uint256
// rather than big.Int: they are public inputs that must hold values up to
// 2^64 and beyond cheaply on the hot verify path, and never need the
// arbitrary precision a witness scalar does.
//
// ValueCommitment = value*gens.G[BitLength] + valueBlinding*gens.H is a
// second, standalone Pedersen opening of the same raw (unshifted) value the
// bit-decomposition commits to. Its sole purpose is to give the value a
// local witness (index 0) the driver's cross-statement equality machinery
// can reach: the compressed bit-decomposition proof folds every bit into a
// two-scalar response that carries no per-witness response a shared
// blinding could land on, so a range value could otherwise never be tied to
// another statement's witness. Generator gens.G[BitLength] must exist,
// i.e. the PedersenGens backing a RangeStatement needs BitLength+1 entries.
type RangeStatement struct {
	GensParamsIdx   int
	Commitment      G1
	ValueCommitment G1
	BitLength       int
	Min, Max        uint256.Int
}

// AccumulatorStatement proves membership of a value in a
// cryptographic accumulator via a single pairing check, generalizing the
// e(A',W)·e(g1b,-g2)·e(T,g2)=1 pattern in bbs/proof.go's VerifyProof.
type AccumulatorStatement struct {
	PublicKeyParamsIdx int
	Accumulator        G1
	NonMembership      bool
}

// VerEncStatement proves an ElGamal-style ciphertext encrypts the same
// value opened by a companion Pedersen commitment, the minimal shape of a
// TZ-21-style verifiable encryption instance.
type VerEncStatement struct {
	GensParamsIdx  int
	PubKeyParamsIdx int // index into SetupParams for a *G1 encryption public key
	Ciphertext1    G1
	Ciphertext2    G1
	Commitment     G1
}

// R1CSStatement proves a witness satisfies a Groth16-proved R1CS relation,
// eligible for batched verification through SnarkAggregator.
type R1CSStatement struct {
	VerifyingKeyParamsIdx int
	PublicInputs          []Scalar
}
