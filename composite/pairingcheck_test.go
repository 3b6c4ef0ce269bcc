package composite

import (
	"math/big"
	"testing"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/stretchr/testify/require"
)

func TestPairingCheckerAcceptsValidBatchEager(t *testing.T) {
	testPairingCheckerAcceptsValidBatch(t, false)
}

func TestPairingCheckerAcceptsValidBatchLazy(t *testing.T) {
	testPairingCheckerAcceptsValidBatch(t, true)
}

func testPairingCheckerAcceptsValidBatch(t *testing.T, lazy bool) {
	_, _, g1, g2 := bls12381.Generators()

	a1 := scalarMulG1(g1, big.NewInt(3))
	target1, err := bls12381.Pair([]bls12381.G1Affine{a1}, []bls12381.G2Affine{g2})
	require.NoError(t, err)

	a2 := scalarMulG1(g1, big.NewInt(11))
	target2, err := bls12381.Pair([]bls12381.G1Affine{a2}, []bls12381.G2Affine{g2})
	require.NoError(t, err)

	checker := NewPairingChecker(big.NewInt(1234567), lazy)
	checker.AddSourcesAndTarget([]bls12381.G1Affine{a1}, []bls12381.G2Affine{g2}, &target1)
	checker.AddSourcesAndTarget([]bls12381.G1Affine{a2}, []bls12381.G2Affine{g2}, &target2)

	require.True(t, checker.Verify())
}

func TestPairingCheckerRejectsTamperedTarget(t *testing.T) {
	_, _, g1, g2 := bls12381.Generators()

	a1 := scalarMulG1(g1, big.NewInt(3))
	target1, err := bls12381.Pair([]bls12381.G1Affine{a1}, []bls12381.G2Affine{g2})
	require.NoError(t, err)

	var wrongTarget bls12381.GT
	wrongTarget.Exp(target1, big.NewInt(2))

	checker := NewPairingChecker(big.NewInt(42), false)
	checker.AddSourcesAndTarget([]bls12381.G1Affine{a1}, []bls12381.G2Affine{g2}, &wrongTarget)

	require.False(t, checker.Verify())
}

func TestPairingCheckerAddSourcesCrossEquation(t *testing.T) {
	_, _, g1, g2 := bls12381.Generators()

	a := scalarMulG1(g1, big.NewInt(5))
	c := scalarMulG1(g1, big.NewInt(5))

	checker := NewPairingChecker(big.NewInt(99), false)
	checker.AddSources([]bls12381.G1Affine{a}, []bls12381.G1Affine{c}, []bls12381.G2Affine{g2}, []bls12381.G2Affine{g2})

	require.True(t, checker.Verify())
}
