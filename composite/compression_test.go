package composite

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

// compressionFixture builds a Pedersen commitment P = MSM(g,x) + h^gamma
// over n bit generators plus one blinding generator, where x is the bit
// decomposition of value and the public linear form recovers value via
// Σ2^i·x_i - exactly the shape rangeSubProtocol builds for a RangeStatement.
func compressionFixture(t *testing.T, n int, value int64) (g []G1, h, k G1, form LinearForm, p G1, y Scalar, x []Scalar, gamma Scalar) {
	t.Helper()
	gens, err := GenerateGenerators([]byte("compression-test"), n+1, rand.Reader)
	require.NoError(t, err)
	g = gens.G[:n]
	h = gens.G[n]
	k = gens.H

	x = bitsOf(big.NewInt(value), n)
	gamma, err = randomScalar(rand.Reader)
	require.NoError(t, err)

	p = addG1(msmG1(g, x), scalarMulG1(h, gamma))
	form = PowersOfTwoLinearForm(n)
	y = big.NewInt(value)
	return
}

func runCompressionRoundTrip(t *testing.T, n int, value int64) {
	g, h, k, form, p, y, x, gamma := compressionFixture(t, n, value)

	commitment, err := NewRandomCommitment(g, h, form, rand.Reader)
	require.NoError(t, err)

	proverTranscript := NewTranscript("compression-test")
	proverTranscript.AppendG1("P", &p)
	c0 := proverTranscript.Challenge("c0")

	roundTranscript := rangeRoundTranscript(c0, commitment)
	_, resp, err := commitment.Respond(x, gamma, c0, g, h, form, k, roundTranscript)
	require.NoError(t, err)

	verifierTranscript := NewTranscript("compression-test")
	verifierTranscript.AppendG1("P", &p)
	c0Verify := verifierTranscript.Challenge("c0")
	require.Equal(t, 0, c0.Cmp(c0Verify))

	verifyTranscript := rangeRoundTranscript(c0Verify, commitment)
	ok := VerifyCompression(g, h, k, form, p, y, c0Verify, commitment, resp, verifyTranscript)
	require.True(t, ok, "compression core should accept a genuine opening at size %d", n)
}

func TestCompressionCoreRoundTrip(t *testing.T) {
	sizes := []struct {
		bits  int
		value int64
	}{
		{3, 5},
		{7, 100},
		{15, 31000},
		{31, 999999},
	}
	for _, sz := range sizes {
		sz := sz
		t.Run("", func(t *testing.T) {
			runCompressionRoundTrip(t, sz.bits, sz.value)
		})
	}
}

func TestCompressionCoreRejectsTamperedValue(t *testing.T) {
	g, h, k, form, p, _, x, gamma := compressionFixture(t, 7, 42)

	commitment, err := NewRandomCommitment(g, h, form, rand.Reader)
	require.NoError(t, err)

	transcript := NewTranscript("compression-test")
	transcript.AppendG1("P", &p)
	c0 := transcript.Challenge("c0")

	roundTranscript := rangeRoundTranscript(c0, commitment)
	_, resp, err := commitment.Respond(x, gamma, c0, g, h, form, k, roundTranscript)
	require.NoError(t, err)

	wrongY := big.NewInt(43)
	verifyTranscript := rangeRoundTranscript(c0, commitment)
	ok := VerifyCompression(g, h, k, form, p, wrongY, c0, commitment, resp, verifyTranscript)
	require.False(t, ok)
}

func TestIsPowerOfTwo(t *testing.T) {
	require.True(t, isPowerOfTwo(1))
	require.True(t, isPowerOfTwo(8))
	require.False(t, isPowerOfTwo(0))
	require.False(t, isPowerOfTwo(6))
}

func TestNewRandomCommitmentRejectsNonPowerOfTwoPlusOne(t *testing.T) {
	g := make([]G1, 5)
	_, err := NewRandomCommitment(g, G1{}, PowersOfTwoLinearForm(5), rand.Reader)
	require.ErrorIs(t, err, ErrNotPowerOfTwoPlusOne)
}
