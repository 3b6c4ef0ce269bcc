package composite

import (
	"io"

	"golang.org/x/sync/errgroup"
)

// Proof is the complete composite proof: one StatementProof per statement
// in the ProofSpec, in the same order (SPEC_FULL.md §4.6).
type Proof struct {
	Statements []StatementProof
}

// VerifierConfig tunes verification-time tradeoffs that don't affect
// soundness: LazyPairingChecks defers every staged pairing claim to one
// multi-Miller-loop at the end instead of folding each eagerly, trading
// memory for fewer, larger batches (SPEC_FULL.md §4.2).
type VerifierConfig struct {
	LazyPairingChecks bool
}

func buildSubProtocol(spec *ProofSpec, idx int, w *Witness) (subProtocol, error) {
	s := spec.Statements[idx]
	switch s.Kind {
	case KindSignaturePoK:
		if w == nil || w.Signature == nil {
			return nil, newStmtErr(ErrSubProofFailed, idx, errMissingWitness)
		}
		pk, ok := spec.SetupParams.Get(s.Signature.PublicKeyParamsIdx).(*PublicKey)
		if !ok {
			return nil, newStmtErr(ErrInvalidProofSpec, idx, errBadSetupParam)
		}
		return newSignatureSubProtocol(s.Signature, pk, w.Signature.Signature, w.Signature.Messages), nil

	case KindPedersenCommitment:
		if w == nil || w.Pedersen == nil {
			return nil, newStmtErr(ErrSubProofFailed, idx, errMissingWitness)
		}
		gens, ok := spec.SetupParams.Get(s.Pedersen.GensParamsIdx).(*PedersenGens)
		if !ok {
			return nil, newStmtErr(ErrInvalidProofSpec, idx, errBadSetupParam)
		}
		return newPedersenSubProtocol(s.Pedersen, gens, w.Pedersen.Values, w.Pedersen.Blinding), nil

	case KindRange:
		if w == nil || w.Range == nil {
			return nil, newStmtErr(ErrSubProofFailed, idx, errMissingWitness)
		}
		gens, ok := spec.SetupParams.Get(s.Range.GensParamsIdx).(*PedersenGens)
		if !ok {
			return nil, newStmtErr(ErrInvalidProofSpec, idx, errBadSetupParam)
		}
		return newRangeSubProtocol(s.Range, gens, w.Range.Value, w.Range.Blinding, w.Range.ValueBlinding), nil

	case KindAccumulatorMembership:
		if w == nil || w.Accumulator == nil {
			return nil, newStmtErr(ErrSubProofFailed, idx, errMissingWitness)
		}
		pk, ok := spec.SetupParams.Get(s.Accumulator.PublicKeyParamsIdx).(*AccumulatorPublicKey)
		if !ok {
			return nil, newStmtErr(ErrInvalidProofSpec, idx, errBadSetupParam)
		}
		return newAccumulatorSubProtocol(s.Accumulator, pk, w.Accumulator), nil

	case KindVerifiableEncryption:
		if w == nil || w.VerEnc == nil {
			return nil, newStmtErr(ErrSubProofFailed, idx, errMissingWitness)
		}
		gens, ok := spec.SetupParams.Get(s.VerEnc.GensParamsIdx).(*PedersenGens)
		if !ok {
			return nil, newStmtErr(ErrInvalidProofSpec, idx, errBadSetupParam)
		}
		pub, ok := spec.SetupParams.Get(s.VerEnc.PubKeyParamsIdx).(*G1)
		if !ok {
			return nil, newStmtErr(ErrInvalidProofSpec, idx, errBadSetupParam)
		}
		return newVerEncSubProtocol(s.VerEnc, gens, *pub, w.VerEnc.M, w.VerEnc.S, w.VerEnc.K), nil

	case KindR1CSGroth16:
		if w == nil || w.R1CS == nil {
			return nil, newStmtErr(ErrSubProofFailed, idx, errMissingWitness)
		}
		return newR1CSSubProtocol(s.R1CS, w.R1CS), nil

	default:
		return nil, newWitErr(ErrInvalidStatement, idx, -1)
	}
}

// localWitnessRefs enumerates the local witness indices a statement
// exposes for cross-statement equality, following the numbering convention
// documented in each subprotocol_*.go file.
func localWitnessRefs(s Statement) []int {
	switch s.Kind {
	case KindSignaturePoK:
		refs := []int{0}
		for i := 0; i < s.Signature.MessageCount; i++ {
			if _, disclosed := s.Signature.Disclosed[i]; !disclosed {
				refs = append(refs, 1+i)
			}
		}
		return refs
	case KindPedersenCommitment:
		refs := make([]int, s.Pedersen.WitnessCount)
		for i := range refs {
			refs[i] = i
		}
		return refs
	case KindRange:
		return []int{0}
	case KindAccumulatorMembership:
		return []int{0}
	case KindVerifiableEncryption:
		return []int{0, 1, 2}
	default:
		return nil
	}
}

// assignSharedBlindings samples one blinding scalar per disjoint equality
// class and returns, for each statement index, the local-witness-index ->
// blinding map every member of a class must commit with identically
// (SPEC_FULL.md §4.6): this is what makes the verifier's later response
// comparison succeed for a genuine shared witness.
func assignSharedBlindings(spec *ProofSpec, partition *disjointPartition, rnd io.Reader) (map[int]map[int]Scalar, error) {
	classBlinding := make([]Scalar, len(partition.classes))
	for i := range classBlinding {
		b, err := randomScalar(rnd)
		if err != nil {
			return nil, err
		}
		classBlinding[i] = b
	}

	out := make(map[int]map[int]Scalar, len(spec.Statements))
	for i, cls := range partition.classes {
		for _, ref := range cls {
			m, ok := out[ref.StatementIndex]
			if !ok {
				m = map[int]Scalar{}
				out[ref.StatementIndex] = m
			}
			m[ref.WitnessIndex] = classBlinding[i]
		}
	}
	return out, nil
}

// Prove builds a composite proof over every statement in spec, binding
// cross-statement witness equalities via shared blindings and a single
// Fiat-Shamir challenge derived once the nonce, context, and every
// statement's first message have been appended to the transcript
// (SPEC_FULL.md §4.5).
func Prove(spec *ProofSpec, witnesses []*Witness, nonce []byte, rnd io.Reader) (*Proof, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if len(witnesses) != len(spec.Statements) {
		return nil, newErr(ErrUnsatisfiedStatements, "witness count does not match statement count")
	}

	partition := computeDisjointPartition(&spec.MetaStatements)
	blindings, err := assignSharedBlindings(spec, partition, rnd)
	if err != nil {
		return nil, err
	}

	// Per-statement sub-protocol construction (setup-param lookups and the
	// witness-shaped struct each statement kind builds around its blinding
	// choices) has no cross-statement dependency, so it fans out over the
	// statement count instead of running one at a time; the sequential
	// part of proving - appending each Commit to the shared transcript in
	// order - still happens in the loop below, since transcript order is
	// part of the Fiat-Shamir binding.
	protocols := make([]subProtocol, len(spec.Statements))
	var grp errgroup.Group
	for i := range spec.Statements {
		i := i
		grp.Go(func() error {
			sp, err := buildSubProtocol(spec, i, witnesses[i])
			if err != nil {
				return err
			}
			protocols[i] = sp
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}

	transcript := NewTranscript(LabelCompositeProof)
	transcript.Append(LabelNonce, nonce)
	transcript.Append(LabelContext, spec.Context)

	for i, sp := range protocols {
		if err := sp.Commit(transcript, rnd, blindings[i]); err != nil {
			return nil, newStmtErr(ErrSubProofFailed, i, err)
		}
	}

	c := transcript.Challenge(LabelCompositeProofChallenge)

	proof := &Proof{Statements: make([]StatementProof, len(protocols))}
	for i, sp := range protocols {
		sp2, err := sp.Respond(c)
		if err != nil {
			return nil, newStmtErr(ErrSubProofFailed, i, err)
		}
		proof.Statements[i] = *sp2
	}
	return proof, nil
}

// Verify checks proof against spec: it re-derives the shared challenge from
// every statement's disclosed first message, checks each statement's
// algebraic relation (staging pairing claims into one shared
// PairingChecker), cross-checks that every declared witness equality class
// produced identical responses, and finally evaluates the batched pairing
// check (SPEC_FULL.md §4.5, §4.6, §7).
func Verify(spec *ProofSpec, proof *Proof, nonce []byte, cfg VerifierConfig, rnd io.Reader) error {
	if err := spec.Validate(); err != nil {
		return err
	}
	if len(proof.Statements) != len(spec.Statements) {
		return newErr(ErrUnsatisfiedStatements, "proof statement count does not match spec")
	}

	transcript := NewTranscript(LabelCompositeProof)
	transcript.Append(LabelNonce, nonce)
	transcript.Append(LabelContext, spec.Context)

	for i, s := range spec.Statements {
		sp := proof.Statements[i]
		if sp.Kind != s.Kind {
			return newStmtErr(ErrProofIncompatibleWithStatement, i, errKindMismatch)
		}
		if err := verifyCommitDispatch(transcript, s, &sp); err != nil {
			return newStmtErr(ErrSubProofFailed, i, err)
		}
	}

	c := transcript.Challenge(LabelCompositeProofChallenge)

	rho, err := randomScalar(rnd)
	if err != nil {
		return err
	}
	checker := NewPairingChecker(rho, cfg.LazyPairingChecks)

	partition := computeDisjointPartition(&spec.MetaStatements)
	respForEqualities := make(map[int]Scalar)

	for i, s := range spec.Statements {
		sp := proof.Statements[i]
		localResp, err := verifyResponseDispatch(spec, i, s, c, &sp, checker)
		if err != nil {
			return newStmtErr(ErrSubProofFailed, i, err)
		}
		for localIdx, v := range localResp {
			classIdx, ok := partition.classFor(WitnessRef{StatementIndex: i, WitnessIndex: localIdx})
			if !ok {
				continue
			}
			if existing, seen := respForEqualities[classIdx]; seen {
				if existing.Cmp(v) != 0 {
					return newWitErr(ErrWitnessResponseNotEqual, i, localIdx)
				}
			} else {
				respForEqualities[classIdx] = v
			}
		}
	}

	for classIdx, cls := range partition.classes {
		if _, ok := respForEqualities[classIdx]; !ok {
			ref := cls[0]
			return newWitErr(ErrUnsatisfiedWitnessEqualities, ref.StatementIndex, ref.WitnessIndex)
		}
	}

	if !checker.Verify() {
		return newErr(ErrPairingCheckFailed, "batched pairing check failed")
	}
	return nil
}

func verifyCommitDispatch(transcript *Transcript, s Statement, sp *StatementProof) error {
	switch s.Kind {
	case KindSignaturePoK:
		return verifySignatureCommit(transcript, sp)
	case KindPedersenCommitment:
		return verifyPedersenCommit(transcript, s.Pedersen, sp)
	case KindRange:
		return verifyRangeCommit(transcript, s.Range, sp)
	case KindAccumulatorMembership:
		return verifyAccumulatorCommit(transcript, sp)
	case KindVerifiableEncryption:
		return verifyVerEncCommit(transcript, s.VerEnc, sp)
	case KindR1CSGroth16:
		if err := verifyR1CSCommit(transcript, sp); err != nil {
			return err
		}
		for _, in := range s.R1CS.PublicInputs {
			transcript.AppendScalar(LabelR1CSPublicInput, in)
		}
		return nil
	default:
		return errUnknownKind
	}
}

func verifyResponseDispatch(spec *ProofSpec, idx int, s Statement, c Scalar, sp *StatementProof, checker *PairingChecker) (map[int]Scalar, error) {
	switch s.Kind {
	case KindSignaturePoK:
		pk, ok := spec.SetupParams.Get(s.Signature.PublicKeyParamsIdx).(*PublicKey)
		if !ok {
			return nil, errBadSetupParam
		}
		return verifySignatureResponse(s.Signature, pk, c, sp, checker)
	case KindPedersenCommitment:
		gens, ok := spec.SetupParams.Get(s.Pedersen.GensParamsIdx).(*PedersenGens)
		if !ok {
			return nil, errBadSetupParam
		}
		return verifyPedersenResponse(s.Pedersen, gens, c, sp, checker)
	case KindRange:
		gens, ok := spec.SetupParams.Get(s.Range.GensParamsIdx).(*PedersenGens)
		if !ok {
			return nil, errBadSetupParam
		}
		return verifyRangeResponse(s.Range, gens, c, sp, checker)
	case KindAccumulatorMembership:
		pk, ok := spec.SetupParams.Get(s.Accumulator.PublicKeyParamsIdx).(*AccumulatorPublicKey)
		if !ok {
			return nil, errBadSetupParam
		}
		return verifyAccumulatorResponse(s.Accumulator, pk, c, sp, checker)
	case KindVerifiableEncryption:
		gens, ok := spec.SetupParams.Get(s.VerEnc.GensParamsIdx).(*PedersenGens)
		if !ok {
			return nil, errBadSetupParam
		}
		pub, ok := spec.SetupParams.Get(s.VerEnc.PubKeyParamsIdx).(*G1)
		if !ok {
			return nil, errBadSetupParam
		}
		return verifyVerEncResponse(s.VerEnc, gens, *pub, c, sp, checker)
	case KindR1CSGroth16:
		vk, ok := spec.SetupParams.Get(s.R1CS.VerifyingKeyParamsIdx).(*R1CSVerifyingKey)
		if !ok {
			return nil, errBadSetupParam
		}
		return verifyR1CSResponse(s.R1CS, vk, sp, idx)
	default:
		return nil, errUnknownKind
	}
}
