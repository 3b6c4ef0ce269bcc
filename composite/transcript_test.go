package composite

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTranscriptChallengeDeterministic(t *testing.T) {
	build := func() Scalar {
		tr := NewTranscript("test/domain")
		tr.SetLabel("section-a")
		tr.Append("x", []byte("hello"))
		tr.AppendScalar("y", big.NewInt(7))
		return tr.Challenge("c")
	}
	require.Equal(t, 0, build().Cmp(build()))
}

func TestTranscriptChallengeSensitiveToOrder(t *testing.T) {
	tr1 := NewTranscript("test/domain")
	tr1.Append("a", []byte("1"))
	tr1.Append("b", []byte("2"))
	c1 := tr1.Challenge("c")

	tr2 := NewTranscript("test/domain")
	tr2.Append("b", []byte("2"))
	tr2.Append("a", []byte("1"))
	c2 := tr2.Challenge("c")

	require.NotEqual(t, 0, c1.Cmp(c2))
}

func TestTranscriptChallengeChainsAcrossDerivations(t *testing.T) {
	tr1 := NewTranscript("test/domain")
	tr1.Append("a", []byte("1"))
	first1 := tr1.Challenge("c1")
	tr1.Append("b", []byte("2"))
	second1 := tr1.Challenge("c2")

	tr2 := NewTranscript("test/domain")
	tr2.Append("a", []byte("1"))
	first2 := tr2.Challenge("c1")
	tr2.Append("b", []byte("2"))
	second2 := tr2.Challenge("c2")

	require.Equal(t, 0, first1.Cmp(first2))
	require.Equal(t, 0, second1.Cmp(second2))
	require.NotEqual(t, 0, first1.Cmp(second1))
}
