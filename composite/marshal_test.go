package composite

import (
	"crypto/rand"
	"math/big"
	"testing"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/stretchr/testify/require"
)

func randomG1(t *testing.T) G1 {
	t.Helper()
	s, err := RandomScalar(rand.Reader)
	require.NoError(t, err)
	_, _, g1, _ := bls12381.Generators()
	return scalarMulG1(g1, s)
}

func requireG1Equal(t *testing.T, want, got G1) {
	t.Helper()
	require.True(t, want.Equal(&got))
}

func requireProofRoundTrips(t *testing.T, proof *Proof) *Proof {
	t.Helper()
	data, err := proof.MarshalBinary()
	require.NoError(t, err)

	var out Proof
	require.NoError(t, out.UnmarshalBinary(data))
	require.Len(t, out.Statements, len(proof.Statements))
	return &out
}

func TestMarshalBinaryRoundTripSignature(t *testing.T) {
	proof := &Proof{Statements: []StatementProof{
		{
			Kind: KindSignaturePoK,
			Signature: &SignatureProof{
				APrime: randomG1(t),
				ABar:   randomG1(t),
				D:      randomG1(t),
				SHat:   big.NewInt(7),
				MHat:   map[int]Scalar{0: big.NewInt(11), 2: big.NewInt(13)},
			},
		},
	}}

	out := requireProofRoundTrips(t, proof)
	got := out.Statements[0]
	want := proof.Statements[0]
	require.Equal(t, want.Kind, got.Kind)
	requireG1Equal(t, want.Signature.APrime, got.Signature.APrime)
	requireG1Equal(t, want.Signature.ABar, got.Signature.ABar)
	requireG1Equal(t, want.Signature.D, got.Signature.D)
	require.Equal(t, 0, want.Signature.SHat.Cmp(got.Signature.SHat))
	require.Len(t, got.Signature.MHat, 2)
	for idx, v := range want.Signature.MHat {
		require.Equal(t, 0, v.Cmp(got.Signature.MHat[idx]))
	}
}

func TestMarshalBinaryRoundTripPedersen(t *testing.T) {
	proof := &Proof{Statements: []StatementProof{
		{
			Kind: KindPedersenCommitment,
			Pedersen: &PedersenProof{
				T:    randomG1(t),
				XHat: []Scalar{big.NewInt(21), big.NewInt(22), big.NewInt(23)},
				RHat: big.NewInt(24),
			},
		},
	}}

	out := requireProofRoundTrips(t, proof)
	got := out.Statements[0].Pedersen
	want := proof.Statements[0].Pedersen
	requireG1Equal(t, want.T, got.T)
	require.Len(t, got.XHat, 3)
	for i := range want.XHat {
		require.Equal(t, 0, want.XHat[i].Cmp(got.XHat[i]))
	}
	require.Equal(t, 0, want.RHat.Cmp(got.RHat))
}

func TestMarshalBinaryRoundTripRange(t *testing.T) {
	proof := &Proof{Statements: []StatementProof{
		{
			Kind: KindRange,
			Range: &RangeProof{
				Commitment: &RandomCommitment{
					A:   randomG1(t),
					R:   []Scalar{big.NewInt(1), big.NewInt(2)},
					Rho: big.NewInt(3),
					T:   big.NewInt(4),
				},
				Response: &CompressedResponse{
					Rounds: []CompressionRound{
						{A: randomG1(t), B: randomG1(t)},
						{A: randomG1(t), B: randomG1(t)},
					},
					Z0: big.NewInt(5),
					Z1: big.NewInt(6),
				},
				ValueT:        randomG1(t),
				ValueHat:      big.NewInt(7),
				ValueBlindHat: big.NewInt(8),
			},
		},
	}}

	out := requireProofRoundTrips(t, proof)
	got := out.Statements[0].Range
	want := proof.Statements[0].Range
	requireG1Equal(t, want.Commitment.A, got.Commitment.A)
	require.Len(t, got.Commitment.R, 2)
	for i := range want.Commitment.R {
		require.Equal(t, 0, want.Commitment.R[i].Cmp(got.Commitment.R[i]))
	}
	require.Equal(t, 0, want.Commitment.Rho.Cmp(got.Commitment.Rho))
	require.Equal(t, 0, want.Commitment.T.Cmp(got.Commitment.T))
	require.Len(t, got.Response.Rounds, 2)
	for i := range want.Response.Rounds {
		requireG1Equal(t, want.Response.Rounds[i].A, got.Response.Rounds[i].A)
		requireG1Equal(t, want.Response.Rounds[i].B, got.Response.Rounds[i].B)
	}
	require.Equal(t, 0, want.Response.Z0.Cmp(got.Response.Z0))
	require.Equal(t, 0, want.Response.Z1.Cmp(got.Response.Z1))
	requireG1Equal(t, want.ValueT, got.ValueT)
	require.Equal(t, 0, want.ValueHat.Cmp(got.ValueHat))
	require.Equal(t, 0, want.ValueBlindHat.Cmp(got.ValueBlindHat))
}

func TestMarshalBinaryRoundTripAccumulator(t *testing.T) {
	_, _, g1, g2 := bls12381.Generators()
	gt, err := bls12381.Pair([]bls12381.G1Affine{g1}, []bls12381.G2Affine{g2})
	require.NoError(t, err)

	proof := &Proof{Statements: []StatementProof{
		{
			Kind: KindAccumulatorMembership,
			Accumulator: &AccumulatorProof{
				T1:         randomG1(t),
				Rho:        big.NewInt(31),
				Commitment: gt,
				Hat:        big.NewInt(32),
			},
		},
	}}

	out := requireProofRoundTrips(t, proof)
	got := out.Statements[0].Accumulator
	want := proof.Statements[0].Accumulator
	requireG1Equal(t, want.T1, got.T1)
	require.Equal(t, 0, want.Rho.Cmp(got.Rho))
	require.True(t, want.Commitment.Equal(&got.Commitment))
	require.Equal(t, 0, want.Hat.Cmp(got.Hat))
}

func TestMarshalBinaryRoundTripVerEnc(t *testing.T) {
	proof := &Proof{Statements: []StatementProof{
		{
			Kind: KindVerifiableEncryption,
			VerEnc: &VerEncProof{
				T1:   randomG1(t),
				T2:   randomG1(t),
				T3:   randomG1(t),
				XHat: big.NewInt(41),
				RHat: big.NewInt(42),
				SHat: big.NewInt(43),
			},
		},
	}}

	out := requireProofRoundTrips(t, proof)
	got := out.Statements[0].VerEnc
	want := proof.Statements[0].VerEnc
	requireG1Equal(t, want.T1, got.T1)
	requireG1Equal(t, want.T2, got.T2)
	requireG1Equal(t, want.T3, got.T3)
	require.Equal(t, 0, want.XHat.Cmp(got.XHat))
	require.Equal(t, 0, want.RHat.Cmp(got.RHat))
	require.Equal(t, 0, want.SHat.Cmp(got.SHat))
}

func TestMarshalBinaryRoundTripR1CS(t *testing.T) {
	proof := &Proof{Statements: []StatementProof{
		{
			Kind: KindR1CSGroth16,
			R1CS: &R1CSProof{ProofBytes: []byte("opaque-groth16-proof-bytes")},
		},
	}}

	out := requireProofRoundTrips(t, proof)
	require.Equal(t, proof.Statements[0].R1CS.ProofBytes, out.Statements[0].R1CS.ProofBytes)
}

func TestMarshalBinaryRoundTripMultiStatement(t *testing.T) {
	proof := &Proof{Statements: []StatementProof{
		{
			Kind:     KindPedersenCommitment,
			Pedersen: &PedersenProof{T: randomG1(t), XHat: []Scalar{big.NewInt(1)}, RHat: big.NewInt(2)},
		},
		{
			Kind: KindR1CSGroth16,
			R1CS: &R1CSProof{ProofBytes: []byte("second-statement")},
		},
	}}

	out := requireProofRoundTrips(t, proof)
	require.Equal(t, KindPedersenCommitment, out.Statements[0].Kind)
	require.Equal(t, KindR1CSGroth16, out.Statements[1].Kind)
	require.Equal(t, []byte("second-statement"), out.Statements[1].R1CS.ProofBytes)
}

func TestUnmarshalBinaryRejectsTruncatedData(t *testing.T) {
	proof := &Proof{Statements: []StatementProof{
		{
			Kind:     KindPedersenCommitment,
			Pedersen: &PedersenProof{T: randomG1(t), XHat: []Scalar{big.NewInt(1)}, RHat: big.NewInt(2)},
		},
	}}
	data, err := proof.MarshalBinary()
	require.NoError(t, err)

	var out Proof
	require.Error(t, out.UnmarshalBinary(data[:len(data)-4]))
}
