package composite

import (
	"crypto/rand"
	"math/big"
	"testing"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

func TestProveVerifySinglePedersenStatement(t *testing.T) {
	gens, err := GenerateGenerators([]byte("driver-test/pedersen"), 2, rand.Reader)
	require.NoError(t, err)

	value, err := RandomScalar(rand.Reader)
	require.NoError(t, err)
	blinding, err := RandomScalar(rand.Reader)
	require.NoError(t, err)
	commitment := CommitPedersenOpening(gens, []Scalar{value}, blinding)

	params := NewSetupParams()
	gensIdx := params.Add(gens)

	spec := NewProofSpec(params)
	spec.AddStatement(Statement{
		Kind: KindPedersenCommitment,
		Pedersen: &PedersenStatement{
			GensParamsIdx: gensIdx,
			Commitment:    commitment,
			WitnessCount:  1,
		},
	})
	witnesses := []*Witness{
		{Pedersen: &PedersenWitness{Values: []Scalar{value}, Blinding: blinding}},
	}

	proof, err := Prove(spec, witnesses, []byte("nonce-1"), rand.Reader)
	require.NoError(t, err)
	require.NoError(t, Verify(spec, proof, []byte("nonce-1"), VerifierConfig{}, rand.Reader))

	// A nonce mismatch must be rejected: the nonce is bound into the shared
	// transcript, so re-deriving the challenge under a different nonce
	// produces a response the verifier's equation no longer satisfies.
	require.Error(t, Verify(spec, proof, []byte("wrong-nonce"), VerifierConfig{}, rand.Reader))
}

func TestProveVerifyCrossStatementWitnessEquality(t *testing.T) {
	kp, err := GenerateKeyPair(2, rand.Reader)
	require.NoError(t, err)
	messages := []Scalar{big.NewInt(42), big.NewInt(7)}
	sig, err := Sign(kp, messages, rand.Reader)
	require.NoError(t, err)

	gens, err := GenerateGenerators([]byte("driver-test/equality"), 1, rand.Reader)
	require.NoError(t, err)
	blinding, err := RandomScalar(rand.Reader)
	require.NoError(t, err)
	commitment := CommitPedersenOpening(gens, []Scalar{messages[0]}, blinding)

	params := NewSetupParams()
	pkIdx := params.Add(kp.Public)
	gensIdx := params.Add(gens)

	spec := NewProofSpec(params)
	sigIdx := spec.AddStatement(Statement{
		Kind: KindSignaturePoK,
		Signature: &SignatureStatement{
			PublicKeyParamsIdx: pkIdx,
			Disclosed:          map[int]Scalar{1: messages[1]},
			MessageCount:       2,
		},
	})
	pedersenIdx := spec.AddStatement(Statement{
		Kind: KindPedersenCommitment,
		Pedersen: &PedersenStatement{
			GensParamsIdx: gensIdx,
			Commitment:    commitment,
			WitnessCount:  1,
		},
	})
	// Message 0 is hidden in the signature statement (local witness index
	// 1+0) and tied to the Pedersen opening's sole witness (local index 0):
	// both sub-proofs must answer with the same blinded response for the
	// shared messages[0] witness.
	spec.MetaStatements.AddEqualWitnesses(EqualWitnesses{
		{StatementIndex: sigIdx, WitnessIndex: 1},
		{StatementIndex: pedersenIdx, WitnessIndex: 0},
	})

	witnesses := []*Witness{
		{Signature: &SignatureWitness{Signature: sig, Messages: messages}},
		{Pedersen: &PedersenWitness{Values: []Scalar{messages[0]}, Blinding: blinding}},
	}

	proof, err := Prove(spec, witnesses, []byte("nonce-eq"), rand.Reader)
	require.NoError(t, err)
	require.NoError(t, Verify(spec, proof, []byte("nonce-eq"), VerifierConfig{}, rand.Reader))
}

func TestProveVerifyRejectsBrokenWitnessEquality(t *testing.T) {
	kp, err := GenerateKeyPair(1, rand.Reader)
	require.NoError(t, err)
	messages := []Scalar{big.NewInt(99)}
	sig, err := Sign(kp, messages, rand.Reader)
	require.NoError(t, err)

	gens, err := GenerateGenerators([]byte("driver-test/broken-equality"), 1, rand.Reader)
	require.NoError(t, err)
	blinding, err := RandomScalar(rand.Reader)
	require.NoError(t, err)
	// Commit to a different value than the signed message: the statements
	// are individually well-formed, but the declared equality is false.
	otherValue := big.NewInt(100)
	commitment := CommitPedersenOpening(gens, []Scalar{otherValue}, blinding)

	params := NewSetupParams()
	pkIdx := params.Add(kp.Public)
	gensIdx := params.Add(gens)

	spec := NewProofSpec(params)
	sigIdx := spec.AddStatement(Statement{
		Kind: KindSignaturePoK,
		Signature: &SignatureStatement{
			PublicKeyParamsIdx: pkIdx,
			Disclosed:          map[int]Scalar{},
			MessageCount:       1,
		},
	})
	pedersenIdx := spec.AddStatement(Statement{
		Kind: KindPedersenCommitment,
		Pedersen: &PedersenStatement{
			GensParamsIdx: gensIdx,
			Commitment:    commitment,
			WitnessCount:  1,
		},
	})
	spec.MetaStatements.AddEqualWitnesses(EqualWitnesses{
		{StatementIndex: sigIdx, WitnessIndex: 1},
		{StatementIndex: pedersenIdx, WitnessIndex: 0},
	})

	witnesses := []*Witness{
		{Signature: &SignatureWitness{Signature: sig, Messages: messages}},
		{Pedersen: &PedersenWitness{Values: []Scalar{otherValue}, Blinding: blinding}},
	}

	proof, err := Prove(spec, witnesses, []byte("nonce-broken"), rand.Reader)
	require.NoError(t, err)
	// Both statements build and verify individually, but the shared
	// blinding carries through responses for two different underlying
	// values, so the cross-statement equality check must catch it.
	require.Error(t, Verify(spec, proof, []byte("nonce-broken"), VerifierConfig{}, rand.Reader))
}

func rangeFixture(t *testing.T, value int64) (*PedersenGens, *RangeStatement, *RangeWitness) {
	t.Helper()
	gens, err := GenerateGenerators([]byte("driver-test/range"), 8, rand.Reader)
	require.NoError(t, err)
	blinding, err := RandomScalar(rand.Reader)
	require.NoError(t, err)
	valueBlinding, err := RandomScalar(rand.Reader)
	require.NoError(t, err)

	v := big.NewInt(value)
	var min uint256.Int
	var span uint256.Int
	span.Lsh(uint256.NewInt(1), 7)
	var max uint256.Int
	max.Add(&min, &span)
	shifted := new(big.Int).Sub(v, min.ToBig())
	commitment := CommitPedersenOpening(gens, bitsOf(shifted, 7), blinding)
	valueCommitment := addG1(scalarMulG1(gens.G[7], v), scalarMulG1(gens.H, valueBlinding))

	stmt := &RangeStatement{
		Commitment:      commitment,
		ValueCommitment: valueCommitment,
		BitLength:       7,
		Min:             min,
		Max:             max,
	}
	wit := &RangeWitness{Value: v, Blinding: blinding, ValueBlinding: valueBlinding}
	return gens, stmt, wit
}

func TestProveVerifyRangeStatement(t *testing.T) {
	gens, stmt, wit := rangeFixture(t, 100)

	params := NewSetupParams()
	stmt.GensParamsIdx = params.Add(gens)

	spec := NewProofSpec(params)
	spec.AddStatement(Statement{Kind: KindRange, Range: stmt})
	witnesses := []*Witness{{Range: wit}}

	proof, err := Prove(spec, witnesses, []byte("nonce-range"), rand.Reader)
	require.NoError(t, err)
	require.NoError(t, Verify(spec, proof, []byte("nonce-range"), VerifierConfig{}, rand.Reader))
}

// TestProveVerifyRangeWitnessEqualityBinding mirrors the signature+range
// scenario: message index 2 of a 3-message signature is tied via
// witness-equality to a range statement's hidden value. A genuine match
// verifies; adding 1 to the range statement's ValueHat response so it no
// longer equals the signature's response must make Verify return an error.
func TestProveVerifyRangeWitnessEqualityBinding(t *testing.T) {
	kp, err := GenerateKeyPair(3, rand.Reader)
	require.NoError(t, err)
	messages := []Scalar{big.NewInt(1), big.NewInt(2), big.NewInt(42)}
	sig, err := Sign(kp, messages, rand.Reader)
	require.NoError(t, err)

	gens, stmt, wit := rangeFixture(t, 42)
	wit.Value = messages[2]
	v := messages[2]
	stmt.ValueCommitment = addG1(scalarMulG1(gens.G[7], v), scalarMulG1(gens.H, wit.ValueBlinding))
	shifted := new(big.Int).Sub(v, stmt.Min.ToBig())
	stmt.Commitment = CommitPedersenOpening(gens, bitsOf(shifted, 7), wit.Blinding)

	params := NewSetupParams()
	pkIdx := params.Add(kp.Public)
	stmt.GensParamsIdx = params.Add(gens)

	spec := NewProofSpec(params)
	sigIdx := spec.AddStatement(Statement{
		Kind: KindSignaturePoK,
		Signature: &SignatureStatement{
			PublicKeyParamsIdx: pkIdx,
			Disclosed:          map[int]Scalar{0: messages[0], 1: messages[1]},
			MessageCount:       3,
		},
	})
	rangeIdx := spec.AddStatement(Statement{Kind: KindRange, Range: stmt})
	spec.MetaStatements.AddEqualWitnesses(EqualWitnesses{
		{StatementIndex: sigIdx, WitnessIndex: 3},
		{StatementIndex: rangeIdx, WitnessIndex: 0},
	})

	witnesses := []*Witness{
		{Signature: &SignatureWitness{Signature: sig, Messages: messages}},
		{Range: wit},
	}

	proof, err := Prove(spec, witnesses, []byte("nonce-range-eq"), rand.Reader)
	require.NoError(t, err)
	require.NoError(t, Verify(spec, proof, []byte("nonce-range-eq"), VerifierConfig{}, rand.Reader))

	tampered := *proof.Statements[rangeIdx].Range
	tampered.ValueHat = new(big.Int).Add(tampered.ValueHat, big.NewInt(1))
	tamperedProof := &Proof{Statements: append([]StatementProof{}, proof.Statements...)}
	tamperedProof.Statements[rangeIdx].Range = &tampered
	require.Error(t, Verify(spec, tamperedProof, []byte("nonce-range-eq"), VerifierConfig{}, rand.Reader))
}

func TestProveVerifyAccumulatorMembership(t *testing.T) {
	x, err := RandomScalar(rand.Reader)
	require.NoError(t, err)
	value, err := RandomScalar(rand.Reader)
	require.NoError(t, err)

	_, _, g1, g2 := bls12381.Generators()
	var wJac bls12381.G2Jac
	wJac.FromAffine(&g2)
	wJac.ScalarMultiplication(&wJac, x)
	var w bls12381.G2Affine
	w.FromJacobian(&wJac)

	exponent := scalarInverse(addMod(x, value))
	c := scalarMulG1(g1, exponent)

	params := NewSetupParams()
	pkIdx := params.Add(&AccumulatorPublicKey{W: w, G2: g2})

	spec := NewProofSpec(params)
	spec.AddStatement(Statement{
		Kind: KindAccumulatorMembership,
		Accumulator: &AccumulatorStatement{
			PublicKeyParamsIdx: pkIdx,
			Accumulator:        g1,
			NonMembership:      false,
		},
	})
	witnesses := []*Witness{
		{Accumulator: &AccumulatorWitness{C: c, Value: value}},
	}

	proof, err := Prove(spec, witnesses, []byte("nonce-acc"), rand.Reader)
	require.NoError(t, err)
	require.NoError(t, Verify(spec, proof, []byte("nonce-acc"), VerifierConfig{}, rand.Reader))
	require.NoError(t, Verify(spec, proof, []byte("nonce-acc"), VerifierConfig{LazyPairingChecks: true}, rand.Reader))
}

func TestVerifyRejectsTamperedResponse(t *testing.T) {
	gens, err := GenerateGenerators([]byte("driver-test/tamper"), 1, rand.Reader)
	require.NoError(t, err)
	value, err := RandomScalar(rand.Reader)
	require.NoError(t, err)
	blinding, err := RandomScalar(rand.Reader)
	require.NoError(t, err)
	commitment := CommitPedersenOpening(gens, []Scalar{value}, blinding)

	params := NewSetupParams()
	gensIdx := params.Add(gens)
	spec := NewProofSpec(params)
	spec.AddStatement(Statement{
		Kind: KindPedersenCommitment,
		Pedersen: &PedersenStatement{
			GensParamsIdx: gensIdx,
			Commitment:    commitment,
			WitnessCount:  1,
		},
	})
	witnesses := []*Witness{
		{Pedersen: &PedersenWitness{Values: []Scalar{value}, Blinding: blinding}},
	}

	proof, err := Prove(spec, witnesses, []byte("nonce-tamper"), rand.Reader)
	require.NoError(t, err)

	tampered := *proof.Statements[0].Pedersen
	tampered.XHat = append([]Scalar{}, proof.Statements[0].Pedersen.XHat...)
	tampered.XHat[0] = new(big.Int).Add(tampered.XHat[0], big.NewInt(1))
	proof.Statements[0].Pedersen = &tampered

	require.Error(t, Verify(spec, proof, []byte("nonce-tamper"), VerifierConfig{}, rand.Reader))
}
