package composite

import (
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
)

// Scalar is a field element of the BLS12-381 scalar field, represented the
// way the teacher signature library represents them: a big.Int always kept
// reduced modulo Order.
type Scalar = *big.Int

// G1 and G2 are the two source groups of the BLS12-381 pairing; GT is the
// target group. Kept as thin aliases so the rest of the package reads in
// domain terms instead of repeating the gnark-crypto import everywhere.
type (
	G1 = bls12381.G1Affine
	G2 = bls12381.G2Affine
	GT = bls12381.GT
)

// WitnessRef addresses one witness scalar inside one statement: a pair
// (statement index, local witness index) per SPEC_FULL.md §3.
type WitnessRef struct {
	StatementIndex int
	WitnessIndex   int
}

// EqualWitnesses is a non-empty set of WitnessRef that must all resolve to
// the same underlying scalar witness.
type EqualWitnesses []WitnessRef

// HasWitnessRef reports whether w is a member of this equality set.
func (e EqualWitnesses) HasWitnessRef(w WitnessRef) bool {
	for _, r := range e {
		if r == w {
			return true
		}
	}
	return false
}

// MetaStatements is a bag of raw EqualWitnesses sets as declared by the
// proof author; computeDisjointPartition transforms them into the canonical,
// pairwise-disjoint form used during proving and verification.
type MetaStatements struct {
	equalities []EqualWitnesses
}

// AddEqualWitnesses declares that every WitnessRef in eq must share a
// witness. The set must contain at least two references to be meaningful,
// but a singleton is accepted (it is simply dropped by the partition since
// it constrains nothing).
func (m *MetaStatements) AddEqualWitnesses(eq EqualWitnesses) {
	m.equalities = append(m.equalities, eq)
}

// IsEmpty reports whether any equalities have been declared.
func (m *MetaStatements) IsEmpty() bool {
	return len(m.equalities) == 0
}

// StatementKind tags which variant a Statement or StatementProof carries.
// Statements are modeled as a closed sum type rather than a dynamically
// typed plug-in registry: the driver's witness-equality and transcript-label
// logic is specialized per-variant and is best expressed by exhaustive
// matching (SPEC_FULL.md §9 design note).
type StatementKind int

const (
	KindSignaturePoK StatementKind = iota + 1
	KindPedersenCommitment
	KindRange
	KindAccumulatorMembership
	KindVerifiableEncryption
	KindR1CSGroth16
)

func (k StatementKind) String() string {
	switch k {
	case KindSignaturePoK:
		return "SignaturePoK"
	case KindPedersenCommitment:
		return "PedersenCommitment"
	case KindRange:
		return "Range"
	case KindAccumulatorMembership:
		return "AccumulatorMembership"
	case KindVerifiableEncryption:
		return "VerifiableEncryption"
	case KindR1CSGroth16:
		return "R1CSGroth16"
	default:
		return "Unknown"
	}
}
