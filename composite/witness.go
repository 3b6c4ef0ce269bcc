package composite

// Witness carries one statement's secret inputs. Exactly one field is
// populated, matching the statement's kind, mirroring Statement's own
// closed-sum-type shape (SPEC_FULL.md §3).
type Witness struct {
	Signature   *SignatureWitness
	Pedersen    *PedersenWitness
	Range       *RangeWitness
	Accumulator *AccumulatorWitness
	VerEnc      *VerEncWitness
	R1CS        *R1CSWitness
}

// SignatureWitness is the signature plus the full message vector (both
// disclosed and hidden - the sub-protocol itself decides which to hide).
type SignatureWitness struct {
	Signature *Signature
	Messages  []Scalar
}

// PedersenWitness is an opening (Values, Blinding) of a Pedersen commitment.
type PedersenWitness struct {
	Values   []Scalar
	Blinding Scalar
}

// RangeWitness is the committed value, its bit-decomposition commitment
// blinding, and the blinding for the statement's standalone ValueCommitment.
type RangeWitness struct {
	Value         Scalar
	Blinding      Scalar
	ValueBlinding Scalar
}

// VerEncWitness is the triple (message, commitment blinding, encryption
// randomness) a VerEncStatement's three relations share.
type VerEncWitness struct {
	M, S, K Scalar
}

// R1CSWitness wraps a pre-generated Groth16 proof; this engine verifies
// R1CS statements but does not itself run a circuit prover (SPEC_FULL.md
// §4.4 "R1CSStatement" - proving is an external, circuit-specific step).
type R1CSWitness struct {
	ProofBytes []byte
}
