package composite

import (
	"bytes"
	"io"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/backend/witness"
)

// R1CSVerifyingKey wraps a Groth16 verifying key for a single circuit,
// stored in a ProofSpec's SetupParams pool like every other statement's
// key material (SPEC_FULL.md §4.4 "R1CSStatement").
type R1CSVerifyingKey struct {
	VK groth16.VerifyingKey
}

// r1csSubProtocol carries an externally-produced Groth16 proof through the
// shared three-move contract. Unlike the Sigma-protocol statements, there
// is nothing to blind and no response to compute: the proof is already a
// complete, non-interactive argument. Commit binds it into the shared
// transcript (so it contributes to the derived challenge like every other
// statement's first message) and Respond just carries it into the
// StatementProof unchanged.
type r1csSubProtocol struct {
	stmt *R1CSStatement
	w    *R1CSWitness
}

func newR1CSSubProtocol(stmt *R1CSStatement, w *R1CSWitness) subProtocol {
	return &r1csSubProtocol{stmt: stmt, w: w}
}

func (r *r1csSubProtocol) Commit(transcript *Transcript, _ io.Reader, _ map[int]Scalar) error {
	transcript.Append(LabelR1CSProof, r.w.ProofBytes)
	for _, in := range r.stmt.PublicInputs {
		transcript.AppendScalar(LabelR1CSPublicInput, in)
	}
	return nil
}

func (r *r1csSubProtocol) Respond(_ Scalar) (*StatementProof, error) {
	return &StatementProof{
		Kind: KindR1CSGroth16,
		R1CS: &R1CSProof{ProofBytes: r.w.ProofBytes},
	}, nil
}

// localWitnessRefs has no case for KindR1CSGroth16: a Groth16 proof
// exposes no witness scalar that another statement could be declared
// equal to, since its witness never leaves the circuit in the clear.

func verifyR1CSCommit(transcript *Transcript, sp *StatementProof) error {
	if sp.R1CS == nil {
		return newErr(ErrProofIncompatibleWithStatement, "missing R1CS proof payload")
	}
	transcript.Append(LabelR1CSProof, sp.R1CS.ProofBytes)
	return nil
}

// r1csPublicWitness encodes a Groth16 public witness from raw field
// elements using gnark's witness wire format (header + one 32-byte
// big-endian element per public input, zero secret inputs), letting the
// verifier reconstruct a witness.Witness without a frontend.Circuit
// struct describing this particular relation.
func r1csPublicWitness(inputs []Scalar) (witness.Witness, error) {
	const headerSize = 12
	const elementSize = 32

	n := len(inputs)
	data := make([]byte, headerSize+n*elementSize)

	curveID := uint32(ecc.BLS12_381)
	data[0] = byte(curveID)
	data[1] = byte(curveID >> 8)
	data[2] = byte(curveID >> 16)
	data[3] = byte(curveID >> 24)
	data[4] = byte(n)
	data[5] = byte(n >> 8)
	data[6] = byte(n >> 16)
	data[7] = byte(n >> 24)

	for i, in := range inputs {
		b := in.Bytes()
		offset := headerSize + i*elementSize + (elementSize - len(b))
		copy(data[offset:], b)
	}

	w, err := witness.New(ecc.BLS12_381.ScalarField())
	if err != nil {
		return nil, err
	}
	if err := w.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return w, nil
}

func verifyR1CSResponse(stmt *R1CSStatement, vk *R1CSVerifyingKey, sp *StatementProof, idx int) (map[int]Scalar, error) {
	if sp.R1CS == nil {
		return nil, newErr(ErrProofIncompatibleWithStatement, "missing R1CS proof payload")
	}

	proof := groth16.NewProof(ecc.BLS12_381)
	if _, err := proof.ReadFrom(bytes.NewReader(sp.R1CS.ProofBytes)); err != nil {
		return nil, newStmtErr(ErrSerializationError, idx, err)
	}

	publicWitness, err := r1csPublicWitness(stmt.PublicInputs)
	if err != nil {
		return nil, newStmtErr(ErrSerializationError, idx, err)
	}

	if err := groth16.Verify(proof, vk.VK, publicWitness); err != nil {
		return nil, newErr(ErrSubProofFailed, "groth16 verification failed")
	}
	return nil, nil
}
