package composite

import (
	"encoding/binary"
	"math/big"

	"golang.org/x/crypto/sha3"
)

// Transcript is a domain-separated Fiat-Shamir sponge. It generalizes the
// teacher's one-shot "build a byte buffer then SHA-256 it"
// (ComputeProofChallenge, CalculateDomain in bbs/utils.go) into an
// incremental append log: every Append/Challenge call folds into a running
// SHAKE-256 state so that two invocations with identical append sequences
// always derive bit-identical challenges (SPEC_FULL.md §8 properties 2, 3),
// and no two distinct sequences of appends collide with overwhelming
// probability.
//
// Challenges are chained: deriving a challenge re-seeds the running state
// with the challenge bytes before any further appends, so a challenge
// drawn mid-transcript (as CompressionCore does, once per halving round)
// still binds everything that came before it.
type Transcript struct {
	state sha3.ShakeHash
	label string
}

// NewTranscript initializes a transcript under the given domain-separator
// label (SPEC_FULL.md §4.1).
func NewTranscript(domainLabel string) *Transcript {
	t := &Transcript{state: sha3.NewShake256()}
	t.state.Write([]byte(domainLabel))
	return t
}

// SetLabel switches the current domain-separation section before a
// sub-protocol's challenge_contribution call (§4.1, §6).
func (t *Transcript) SetLabel(label string) {
	t.label = label
	t.state.Write([]byte("\x00section\x00"))
	t.state.Write([]byte(label))
}

// Append writes a labelled byte string into the transcript. Order-sensitive:
// appending the same bytes under a different label, or in a different
// order, produces a different final state.
func (t *Transcript) Append(label string, data []byte) {
	var lenBuf [8]byte
	binary.BigEndian.PutUint64(lenBuf[:], uint64(len(label)))
	t.state.Write(lenBuf[:])
	t.state.Write([]byte(label))
	binary.BigEndian.PutUint64(lenBuf[:], uint64(len(data)))
	t.state.Write(lenBuf[:])
	t.state.Write(data)
}

// AppendScalar is a convenience wrapper for appending a field element.
func (t *Transcript) AppendScalar(label string, s Scalar) {
	t.Append(label, s.Bytes())
}

// AppendG1 appends a compressed G1 point.
func (t *Transcript) AppendG1(label string, p *G1) {
	t.Append(label, p.Marshal())
}

// AppendG2 appends a compressed G2 point.
func (t *Transcript) AppendG2(label string, p *G2) {
	t.Append(label, p.Marshal())
}

// Challenge derives a uniformly-distributed scalar deterministically
// determined by every prior Append/Challenge call, then re-seeds the
// running state with the derived bytes so later appends chain from it.
func (t *Transcript) Challenge(label string) Scalar {
	t.Append(label, []byte("challenge"))

	// Squeeze from a clone, not t.state itself: sha3.ShakeHash flips to
	// spongeSqueezing on the first Read and panics on any further Write,
	// so there is no supported way to absorb again after reading from the
	// same instance. The clone is discarded; t.state is re-seeded below
	// into a fresh sponge so later Append calls keep absorbing normally.
	out := make([]byte, 64)
	t.state.Clone().Read(out)

	challenge := new(big.Int).SetBytes(out)
	challenge.Mod(challenge, Order)

	t.state = sha3.NewShake256()
	t.state.Write(out)
	return challenge
}
