package composite

// StatementProof mirrors Statement's closed sum type: each sub-protocol
// contributes its own proof shape, all carried inside one outer tagged
// struct so Proof.Statements stays a flat, ordered slice matching
// ProofSpec.Statements by index (SPEC_FULL.md §4.6).
type StatementProof struct {
	Kind StatementKind

	Signature   *SignatureProof
	Pedersen    *PedersenProof
	Range       *RangeProof
	Accumulator *AccumulatorProof
	VerEnc      *VerEncProof
	R1CS        *R1CSProof
}

// SignatureProof is the response half of a signature possession proof,
// directly generalizing bbs/types.go's ProofOfKnowledge to an arbitrary
// message count and an externally supplied challenge.
type SignatureProof struct {
	APrime, ABar, D G1
	SHat            Scalar
	MHat            map[int]Scalar
}

// PedersenProof is a Schnorr response proving knowledge of a Pedersen
// opening, one response scalar per witness plus one for the blinding.
type PedersenProof struct {
	T       G1 // the Schnorr commitment
	XHat    []Scalar
	RHat    Scalar
}

// RangeProof carries a Pedersen opening commitment plus the compressed
// Σ-protocol transcript proving its bit decomposition sums correctly, and a
// standalone Schnorr response (ValueT, ValueHat, ValueBlindHat) opening
// ValueCommitment - the anchor the driver's cross-statement equality check
// binds the range's hidden value to.
type RangeProof struct {
	Commitment *RandomCommitment
	Response   *CompressedResponse

	ValueT        G1
	ValueHat      Scalar
	ValueBlindHat Scalar
}

// AccumulatorProof is the Schnorr-style response proving knowledge of a
// hidden accumulator membership value, paired with the staged
// pairing-check contribution the driver folds into the shared
// PairingChecker. Rho is the disclosed per-proof witness-blinding factor
// (see subprotocol_accumulator.go); Commitment is the GT-valued Schnorr
// commitment Y^vBlind.
type AccumulatorProof struct {
	T1         G1
	Rho        Scalar
	Commitment GT
	Hat        Scalar
}

// VerEncProof is the Schnorr response proving ciphertext/commitment
// consistency for a VerEncStatement.
type VerEncProof struct {
	T1, T2, T3 G1
	XHat, RHat, SHat Scalar
}

// R1CSProof wraps an opaque Groth16 proof. The public inputs it is checked
// against come from the R1CSStatement, and Verify checks it directly with
// groth16.Verify (verifyR1CSResponse), not through SnarkAggregator.
type R1CSProof struct {
	ProofBytes []byte
}
