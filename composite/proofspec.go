package composite

import "github.com/holiman/uint256"

// ProofSpec is the public description of a composite proof: an ordered
// list of statements, the setup parameters they reference, and the
// cross-statement witness-equality declarations that tie them together
// (SPEC_FULL.md §3). Both prover and verifier must agree on an identical
// ProofSpec; it is itself not secret.
type ProofSpec struct {
	Statements     []Statement
	SetupParams    *SetupParams
	MetaStatements MetaStatements
	Context        []byte
}

// NewProofSpec returns an empty ProofSpec over the given parameter pool.
func NewProofSpec(params *SetupParams) *ProofSpec {
	return &ProofSpec{SetupParams: params}
}

// AddStatement appends a statement and returns its index for use in
// WitnessRef / EqualWitnesses declarations.
func (p *ProofSpec) AddStatement(s Statement) int {
	p.Statements = append(p.Statements, s)
	return len(p.Statements) - 1
}

// Validate checks structural well-formedness: every SetupParams reference
// is in bounds, every range statement's bounds are representable in its
// declared bit length, and no statement requests an unsupported mode
// (SPEC_FULL.md Non-goals: detached/standalone accumulator verification is
// out of scope - every accumulator statement here is proved jointly with
// the rest of the composite proof, and non-membership witnesses are not
// yet implemented).
func (p *ProofSpec) Validate() error {
	if len(p.Statements) == 0 {
		return newErr(ErrInvalidProofSpec, "proof spec has no statements")
	}
	for i, s := range p.Statements {
		switch s.Kind {
		case KindSignaturePoK:
			if s.Signature == nil {
				return newErr(ErrInvalidStatement, "statement has Kind SignaturePoK but nil payload")
			}
			if p.SetupParams.Get(s.Signature.PublicKeyParamsIdx) == nil {
				return newErr(ErrInvalidProofSpec, "signature statement references unknown setup params")
			}
		case KindPedersenCommitment:
			if s.Pedersen == nil {
				return newErr(ErrInvalidStatement, "statement has Kind PedersenCommitment but nil payload")
			}
			gens, ok := p.SetupParams.Get(s.Pedersen.GensParamsIdx).(*PedersenGens)
			if !ok || len(gens.G) < s.Pedersen.WitnessCount {
				return newErr(ErrInvalidProofSpec, "pedersen statement references insufficient generators")
			}
		case KindRange:
			if s.Range == nil {
				return newErr(ErrInvalidStatement, "statement has Kind Range but nil payload")
			}
			if s.Range.BitLength <= 0 || s.Range.BitLength >= 256 {
				return newErr(ErrInvalidProofSpec, "range statement bit length must be in (0,256)")
			}
			var span, want uint256.Int
			span.Lsh(uint256.NewInt(1), uint(s.Range.BitLength))
			want.Add(&s.Range.Min, &span)
			if want.Cmp(&s.Range.Max) != 0 {
				return newErr(ErrInvalidProofSpec, "range statement Max must equal Min+2^BitLength")
			}
			gens, ok := p.SetupParams.Get(s.Range.GensParamsIdx).(*PedersenGens)
			if !ok || len(gens.G) < s.Range.BitLength+1 {
				return newErr(ErrInvalidProofSpec, "range statement references insufficient generators")
			}
			if !isPowerOfTwo(s.Range.BitLength + 1) {
				return newErr(ErrInputDimensionNotPowerOfTwo, "range statement bit length+1 must be a power of two")
			}
		case KindAccumulatorMembership:
			if s.Accumulator == nil {
				return newErr(ErrInvalidStatement, "statement has Kind AccumulatorMembership but nil payload")
			}
			if s.Accumulator.NonMembership {
				return newErr(ErrInvalidProofSpec, "non-membership accumulator statements are not supported")
			}
			if p.SetupParams.Get(s.Accumulator.PublicKeyParamsIdx) == nil {
				return newErr(ErrInvalidProofSpec, "accumulator statement references unknown setup params")
			}
		case KindVerifiableEncryption:
			if s.VerEnc == nil {
				return newErr(ErrInvalidStatement, "statement has Kind VerifiableEncryption but nil payload")
			}
			if p.SetupParams.Get(s.VerEnc.GensParamsIdx) == nil || p.SetupParams.Get(s.VerEnc.PubKeyParamsIdx) == nil {
				return newErr(ErrInvalidProofSpec, "verifiable encryption statement references unknown setup params")
			}
		case KindR1CSGroth16:
			if s.R1CS == nil {
				return newErr(ErrInvalidStatement, "statement has Kind R1CSGroth16 but nil payload")
			}
			if p.SetupParams.Get(s.R1CS.VerifyingKeyParamsIdx) == nil {
				return newErr(ErrInvalidProofSpec, "r1cs statement references unknown setup params")
			}
		default:
			return newWitErr(ErrInvalidStatement, i, -1)
		}
	}
	for _, eq := range p.MetaStatements.equalities {
		for _, ref := range eq {
			if ref.StatementIndex < 0 || ref.StatementIndex >= len(p.Statements) {
				return newErr(ErrInvalidProofSpec, "equality references out-of-range statement index")
			}
			valid := localWitnessRefs(p.Statements[ref.StatementIndex])
			found := false
			for _, v := range valid {
				if v == ref.WitnessIndex {
					found = true
					break
				}
			}
			if !found {
				return newWitErr(ErrInvalidProofSpec, ref.StatementIndex, ref.WitnessIndex)
			}
		}
	}
	return nil
}
